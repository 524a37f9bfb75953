package domain

import "time"

// RoleName is the closed set of roles the authorization gate understands.
// Stored role rows carry the same literal names, so string comparisons stay
// in one place.
type RoleName string

const (
	RoleAdministrator RoleName = "Administrador"
	RoleEmployee      RoleName = "Empleado"
	RoleClient        RoleName = "Cliente"
)

// ParseRoleName maps a stored role name to its enum value. The second return
// is false for names outside the closed set.
func ParseRoleName(s string) (RoleName, bool) {
	switch RoleName(s) {
	case RoleAdministrator, RoleEmployee, RoleClient:
		return RoleName(s), true
	}
	return "", false
}

func (r RoleName) String() string { return string(r) }

type Role struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Permission is carried for schema parity; role name alone drives every
// authorization decision.
type Permission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserRole struct {
	UserID    uint      `gorm:"primaryKey"`
	RoleID    uint      `gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

type RolePermission struct {
	RoleID       uint `gorm:"primaryKey"`
	PermissionID uint `gorm:"primaryKey"`
}
