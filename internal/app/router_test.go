package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mecaflow/internal/domain"
	"mecaflow/internal/http/handler"
	"mecaflow/internal/http/middleware"
	"mecaflow/internal/repository"
	"mecaflow/internal/security"
	"mecaflow/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newServerForTest stands up the full HTTP surface on sqlite and miniredis.
func newServerForTest(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{}, &domain.Role{}, &domain.Permission{},
		&domain.UserRole{}, &domain.RolePermission{}, &domain.PasswordResetToken{},
		&domain.Client{}, &domain.Employee{}, &domain.Brand{}, &domain.Model{},
		&domain.Vehicle{}, &domain.AttendanceRecord{}, &domain.Diagnostic{},
		&domain.Invoice{}, &domain.Payment{}, &domain.VehicleTask{}, &domain.FinancialReport{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	log := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))

	users := repository.NewUserRepository(db)
	tokens := repository.NewPasswordResetTokenRepository(db)
	clients := repository.NewClientRepository(db)
	employees := repository.NewEmployeeRepository(db)
	attendance := repository.NewAttendanceRepository(db)
	vehicles := repository.NewVehicleRepository(db)
	diagnostics := repository.NewDiagnosticRepository(db)
	invoices := repository.NewInvoiceRepository(db)
	payments := repository.NewPaymentRepository(db)
	tasks := repository.NewVehicleTaskRepository(db)
	reports := repository.NewFinancialReportRepository(db)

	sessions := service.NewSessionStore(redisClient, 30*time.Minute)
	mailer := service.NewLogMailer(log)
	authSvc := service.NewAuthService(users, tokens, clients, employees, mailer, log, "http://localhost:8080", time.Hour)
	attendanceSvc := service.NewAttendanceService(attendance, employees, time.FixedZone("UTC-06:00", -6*3600))
	assistantSvc := service.NewAssistantService(redisClient, log, 0)
	cookies := security.NewCookieManager("", false, "lax")

	handlers := Handlers{
		Auth:        handler.NewAuthHandler(authSvc, sessions, cookies, log),
		Attendance:  handler.NewAttendanceHandler(attendanceSvc),
		Clients:     handler.NewClientHandler(service.NewClientService(clients)),
		Vehicles:    handler.NewVehicleHandler(service.NewVehicleService(vehicles, clients)),
		Employees:   handler.NewEmployeeHandler(service.NewEmployeeService(employees, users)),
		Diagnostics: handler.NewDiagnosticHandler(service.NewDiagnosticService(diagnostics, vehicles, employees, clients)),
		Billing:     handler.NewBillingHandler(service.NewBillingService(invoices, payments, clients, vehicles)),
		Tasks:       handler.NewTaskHandler(service.NewTaskService(tasks, vehicles)),
		Reports:     handler.NewReportHandler(service.NewReportService(reports)),
		Chat:        handler.NewChatHandler(assistantSvc),
	}
	router := NewRouter(handlers, middleware.NewSessionLoader(sessions, log), middleware.NewGate())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, db
}

func postJSON(t *testing.T, server *httptest.Server, path string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, server.URL+path, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func getWithCookie(t *testing.T, server *httptest.Server, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, server.URL+path, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == security.SessionCookieName {
			return c
		}
	}
	t.Fatal("expected a session cookie")
	return nil
}

func TestRegisterLoginAndSessionFlow(t *testing.T) {
	server, _ := newServerForTest(t)

	resp := postJSON(t, server, "/auth/register", map[string]string{
		"first_name":       "Laura",
		"last_name":        "Campos",
		"phone":            "8888-1234",
		"email":            "laura@example.com",
		"password":         "secret123",
		"confirm_password": "secret123",
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	resp = postJSON(t, server, "/auth/login", map[string]string{
		"email":    "laura@example.com",
		"password": "secret123",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	cookie := sessionCookie(t, resp)
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be http-only")
	}

	resp = getWithCookie(t, server, "/auth/profile", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile with session: expected 200, got %d", resp.StatusCode)
	}

	// A registered account is a client: vehicle reads pass, mutations are
	// denied by the gate.
	resp = getWithCookie(t, server, "/vehiculos", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("client vehicle list: expected 200, got %d", resp.StatusCode)
	}
	resp = postJSON(t, server, "/vehiculos", map[string]any{"plate": "X"}, cookie)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("client vehicle create must be denied, got %d", resp.StatusCode)
	}
	resp = getWithCookie(t, server, "/empleados", cookie)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("client must not reach /empleados, got %d", resp.StatusCode)
	}

	// The assistant carve-out works for any authenticated role.
	resp = postJSON(t, server, "/api/chat", map[string]string{"message": "hola"}, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("chat: expected 200, got %d", resp.StatusCode)
	}
	var chat struct {
		Data struct {
			Response string `json:"response"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		t.Fatalf("decode chat response: %v", err)
	}
	if !strings.Contains(chat.Data.Response, "asistente mecánico") {
		t.Fatalf("unexpected chat response: %q", chat.Data.Response)
	}

	// Logout invalidates the server-side session even if the cookie is
	// replayed.
	resp = postJSON(t, server, "/auth/logout", map[string]string{}, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", resp.StatusCode)
	}
	resp = getWithCookie(t, server, "/vehiculos", cookie)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("replayed cookie after logout must redirect to login, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/auth/login" {
		t.Fatalf("expected /auth/login redirect, got %q", loc)
	}
}

func TestAnonymousAccessRules(t *testing.T) {
	server, _ := newServerForTest(t)

	resp := getWithCookie(t, server, "/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", resp.StatusCode)
	}

	resp = getWithCookie(t, server, "/clientes", nil)
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/auth/login" {
		t.Fatalf("anonymous browser path must redirect to login, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp = getWithCookie(t, server, "/auth/profile", nil)
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/auth/login" {
		t.Fatalf("anonymous profile must redirect to login, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp = postJSON(t, server, "/api/chat", map[string]string{"message": "hola"}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous API path must 401, got %d", resp.StatusCode)
	}

	resp = postJSON(t, server, "/auth/login", map[string]string{"email": "ghost@x.com", "password": "nope"}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad credentials must 401, got %d", resp.StatusCode)
	}
}

func TestEmployeeCheckInOverHTTP(t *testing.T) {
	server, db := newServerForTest(t)

	// Seed an employee with a login account the way the admin flow does.
	hash, err := security.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	employee := &domain.Employee{Name: "Ana", NationalID: "101110111", Email: "ana@mecaflow.com", Active: true}
	user := &domain.User{Username: "ana@mecaflow.com", Email: "ana@mecaflow.com", PasswordHash: hash}
	if err := repository.NewEmployeeRepository(db).CreateWithUser(employee, user, domain.RoleEmployee); err != nil {
		t.Fatalf("seed employee: %v", err)
	}

	resp := postJSON(t, server, "/auth/login", map[string]string{
		"email":    "ana@mecaflow.com",
		"password": "secret123",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	cookie := sessionCookie(t, resp)

	resp = postJSON(t, server, "/asistencias/entrada", map[string]uint{"employee_id": employee.ID}, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("check-in: expected 200, got %d", resp.StatusCode)
	}

	// Second check-in the same day conflicts and reports the stored time.
	resp = postJSON(t, server, "/asistencias/entrada", map[string]uint{"employee_id": employee.ID}, cookie)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second check-in: expected 409, got %d", resp.StatusCode)
	}

	resp = postJSON(t, server, "/asistencias/salida", map[string]uint{"employee_id": employee.ID}, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("check-out: expected 200, got %d", resp.StatusCode)
	}
	resp = postJSON(t, server, "/asistencias/salida", map[string]uint{"employee_id": employee.ID}, cookie)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second check-out: expected 409, got %d", resp.StatusCode)
	}
}
