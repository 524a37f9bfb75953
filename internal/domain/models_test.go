package domain

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestUserModelTagsAndRoleAssociation(t *testing.T) {
	typ := reflect.TypeOf(User{})

	email, ok := typ.FieldByName("Email")
	if !ok {
		t.Fatal("missing User.Email field")
	}
	if !strings.Contains(email.Tag.Get("gorm"), "uniqueIndex") {
		t.Fatalf("User.Email gorm tag missing uniqueIndex: %q", email.Tag.Get("gorm"))
	}

	hash, ok := typ.FieldByName("PasswordHash")
	if !ok {
		t.Fatal("missing User.PasswordHash field")
	}
	if got := hash.Tag.Get("json"); got != "-" {
		t.Fatalf("User.PasswordHash must be hidden from JSON, got %q", got)
	}

	roles, ok := typ.FieldByName("Roles")
	if !ok {
		t.Fatal("missing User.Roles field")
	}
	if !strings.Contains(roles.Tag.Get("gorm"), "many2many:user_roles") {
		t.Fatalf("User.Roles gorm tag missing many2many:user_roles: %q", roles.Tag.Get("gorm"))
	}
}

func TestAttendanceRecordCompositeDayIndex(t *testing.T) {
	typ := reflect.TypeOf(AttendanceRecord{})
	for _, field := range []string{"EmployeeID", "Date"} {
		f, ok := typ.FieldByName(field)
		if !ok {
			t.Fatalf("missing AttendanceRecord.%s", field)
		}
		if !strings.Contains(f.Tag.Get("gorm"), "idx_attendance_employee_day") {
			t.Fatalf("AttendanceRecord.%s must join the per-day unique index: %q", field, f.Tag.Get("gorm"))
		}
	}
}

func TestAttendanceRecordStateHelpers(t *testing.T) {
	in := time.Date(2025, 3, 10, 7, 55, 0, 0, time.UTC)
	out := time.Date(2025, 3, 10, 16, 5, 0, 0, time.UTC)

	rec := AttendanceRecord{}
	if rec.Open() {
		t.Fatal("record with no check-in must not be open")
	}
	if _, ok := rec.Worked(); ok {
		t.Fatal("record with no times must not report worked duration")
	}

	rec.CheckIn = &in
	if !rec.Open() {
		t.Fatal("record with only check-in must be open")
	}

	rec.CheckOut = &out
	if rec.Open() {
		t.Fatal("closed record must not be open")
	}
	d, ok := rec.Worked()
	if !ok {
		t.Fatal("closed record must report worked duration")
	}
	if d != 8*time.Hour+10*time.Minute {
		t.Fatalf("worked duration mismatch: %v", d)
	}
}

func TestPasswordResetTokenValidity(t *testing.T) {
	now := time.Now()
	tok := PasswordResetToken{Token: "abc", ExpiresAt: now.Add(time.Hour)}

	if !tok.IsValid(now) {
		t.Fatal("fresh token must be valid")
	}
	if tok.IsValid(now.Add(2 * time.Hour)) {
		t.Fatal("expired token must be invalid even when the token string matches")
	}

	tok.Used = true
	if tok.IsValid(now) {
		t.Fatal("used token must be invalid")
	}
}

func TestParseRoleNameClosedSet(t *testing.T) {
	for _, name := range []string{"Administrador", "Empleado", "Cliente"} {
		if _, ok := ParseRoleName(name); !ok {
			t.Fatalf("expected %q to parse", name)
		}
	}
	for _, name := range []string{"", "administrador", "Usuario", "Admin"} {
		if _, ok := ParseRoleName(name); ok {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestEffectiveRoleUsesFirstAssignedRole(t *testing.T) {
	u := User{Roles: []Role{{Name: "Empleado"}, {Name: "Administrador"}}}
	role, ok := u.EffectiveRole()
	if !ok || role != RoleEmployee {
		t.Fatalf("expected first role Empleado, got %q ok=%v", role, ok)
	}

	u = User{Roles: []Role{{Name: "Usuario"}}}
	if _, ok := u.EffectiveRole(); ok {
		t.Fatal("unknown role name must not resolve")
	}

	u = User{}
	if _, ok := u.EffectiveRole(); ok {
		t.Fatal("user without roles must not resolve")
	}
}

func TestValidPaymentMethod(t *testing.T) {
	if !ValidPaymentMethod("Efectivo") {
		t.Fatal("Efectivo must be accepted")
	}
	if ValidPaymentMethod("Bitcoin") {
		t.Fatal("unknown method must be rejected")
	}
}
