package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"mecaflow/internal/domain"
	"mecaflow/internal/repository"
	"mecaflow/internal/security"
)

type stubUserRepository struct {
	byEmail map[string]*domain.User
	byID    map[uint]*domain.User

	registered   []*domain.User
	registerErr  error
	rehashedTo   string
	rehashedUser uint
}

func (s *stubUserRepository) FindByEmail(email string) (*domain.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepository) FindByID(id uint) (*domain.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepository) EmailExists(email string) (bool, error) {
	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *stubUserRepository) UpdatePasswordHash(userID uint, hash string) error {
	s.rehashedUser = userID
	s.rehashedTo = hash
	return nil
}

func (s *stubUserRepository) RegisterClient(user *domain.User, client *domain.Client) error {
	if s.registerErr != nil {
		return s.registerErr
	}
	s.registered = append(s.registered, user)
	return nil
}

type stubTokenRepository struct {
	byToken map[string]*domain.PasswordResetToken

	issued     []domain.PasswordResetToken
	usedIDs    []uint
	nextViaIss uint
}

func (s *stubTokenRepository) Issue(userID uint, token string, expiresAt time.Time) (*domain.PasswordResetToken, error) {
	s.nextViaIss++
	record := domain.PasswordResetToken{ID: s.nextViaIss, UserID: userID, Token: token, ExpiresAt: expiresAt}
	s.issued = append(s.issued, record)
	return &record, nil
}

func (s *stubTokenRepository) FindByToken(token string) (*domain.PasswordResetToken, error) {
	if t, ok := s.byToken[token]; ok {
		return t, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubTokenRepository) MarkUsed(id uint) error {
	s.usedIDs = append(s.usedIDs, id)
	return nil
}

type stubClientDirectory struct {
	byEmail map[string]*domain.Client
}

func (s *stubClientDirectory) FindByEmail(email string) (*domain.Client, error) {
	if c, ok := s.byEmail[email]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

type stubEmployeeDirectory struct {
	byEmail     map[string]*domain.Employee
	nationalIDs map[string]bool
}

func (s *stubEmployeeDirectory) FindByEmail(email string) (*domain.Employee, error) {
	if e, ok := s.byEmail[email]; ok {
		return e, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubEmployeeDirectory) NationalIDExists(nationalID string, excludeID uint) (bool, error) {
	return s.nationalIDs[nationalID], nil
}

type stubMailer struct {
	sentTo   []string
	lastLink string
	err      error
}

func (s *stubMailer) SendPasswordReset(_ context.Context, email, link string) error {
	if s.err != nil {
		return s.err
	}
	s.sentTo = append(s.sentTo, email)
	s.lastLink = link
	return nil
}

type authFixture struct {
	users     *stubUserRepository
	tokens    *stubTokenRepository
	clients   *stubClientDirectory
	employees *stubEmployeeDirectory
	mailer    *stubMailer
	svc       *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:     &stubUserRepository{byEmail: map[string]*domain.User{}, byID: map[uint]*domain.User{}},
		tokens:    &stubTokenRepository{byToken: map[string]*domain.PasswordResetToken{}},
		clients:   &stubClientDirectory{byEmail: map[string]*domain.Client{}},
		employees: &stubEmployeeDirectory{byEmail: map[string]*domain.Employee{}, nationalIDs: map[string]bool{}},
		mailer:    &stubMailer{},
	}
	logger := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	f.svc = NewAuthService(f.users, f.tokens, f.clients, f.employees, f.mailer, logger, "http://localhost:8080/", time.Hour)
	return f
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		FirstName:       "Laura",
		LastName:        "Campos",
		NationalID:      "1-2345-6789",
		Phone:           "8888-1234",
		Email:           "laura@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func TestRegisterCreatesClientUser(t *testing.T) {
	f := newAuthFixture()

	user, err := f.svc.Register(validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Username != "laura@example.com" {
		t.Fatalf("username must be the email, got %q", user.Username)
	}
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
	if len(f.users.registered) != 1 {
		t.Fatalf("expected one registration, got %d", len(f.users.registered))
	}
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture()

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
		field  string
	}{
		{"missing first name", func(in *RegisterInput) { in.FirstName = "" }, "first_name"},
		{"national id with letters", func(in *RegisterInput) { in.NationalID = "1-23X5" }, "national_id"},
		{"missing phone", func(in *RegisterInput) { in.Phone = "" }, "phone"},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"short password", func(in *RegisterInput) { in.Password = "abc"; in.ConfirmPassword = "abc" }, "password"},
		{"mismatched confirmation", func(in *RegisterInput) { in.ConfirmPassword = "other" }, "confirm_password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRegisterInput()
			tc.mutate(&input)
			_, err := f.svc.Register(input)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, verr.Field)
			}
		})
	}
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	f := newAuthFixture()
	f.users.byEmail["laura@example.com"] = &domain.User{ID: 1, Email: "laura@example.com"}

	_, err := f.svc.Register(validRegisterInput())
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "email" {
		t.Fatalf("expected email validation error, got %v", err)
	}
}

func TestRegisterRejectsEmployeeNationalID(t *testing.T) {
	f := newAuthFixture()
	f.employees.nationalIDs["1-2345-6789"] = true

	_, err := f.svc.Register(validRegisterInput())
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "national_id" {
		t.Fatalf("expected national_id validation error, got %v", err)
	}

	// Registration without an identity number skips the collision check.
	input := validRegisterInput()
	input.NationalID = ""
	if _, err := f.svc.Register(input); err != nil {
		t.Fatalf("register without national id: %v", err)
	}
}

func TestRegisterMapsStorageConflict(t *testing.T) {
	f := newAuthFixture()
	f.users.registerErr = repository.ErrConflict

	_, err := f.svc.Register(validRegisterInput())
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "email" {
		t.Fatalf("expected email validation error on conflict, got %v", err)
	}
}

func seedLoginUser(f *authFixture, password string) *domain.User {
	hash, _ := security.HashPassword(password)
	user := &domain.User{
		ID:           7,
		Username:     "laura@example.com",
		Email:        "laura@example.com",
		PasswordHash: hash,
		Roles:        []domain.Role{{ID: 3, Name: "Cliente"}},
	}
	f.users.byEmail[user.Email] = user
	f.users.byID[user.ID] = user
	return user
}

func TestLoginResolvesCallerFromClientRow(t *testing.T) {
	f := newAuthFixture()
	seedLoginUser(f, "secret123")
	f.clients.byEmail["laura@example.com"] = &domain.Client{Name: "Laura Campos", Email: "laura@example.com"}

	caller, err := f.svc.Login(context.Background(), "laura@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if caller.Role != domain.RoleClient {
		t.Fatalf("expected Cliente role, got %q", caller.Role)
	}
	if caller.Name != "Laura Campos" {
		t.Fatalf("expected display name from client row, got %q", caller.Name)
	}
	if caller.UserID != 7 {
		t.Fatalf("wrong user id: %d", caller.UserID)
	}
}

func TestLoginFallsBackToEmployeeName(t *testing.T) {
	f := newAuthFixture()
	user := seedLoginUser(f, "secret123")
	user.Roles = []domain.Role{{ID: 2, Name: "Empleado"}}
	f.employees.byEmail[user.Email] = &domain.Employee{Name: "Laura C.", Email: user.Email}

	caller, err := f.svc.Login(context.Background(), user.Email, "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if caller.Name != "Laura C." {
		t.Fatalf("expected employee display name, got %q", caller.Name)
	}
	if caller.Role != domain.RoleEmployee {
		t.Fatalf("expected Empleado role, got %q", caller.Role)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture()
	seedLoginUser(f, "secret123")

	if _, err := f.svc.Login(context.Background(), "laura@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.svc.Login(context.Background(), "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsRolelessUser(t *testing.T) {
	f := newAuthFixture()
	user := seedLoginUser(f, "secret123")
	user.Roles = nil

	if _, err := f.svc.Login(context.Background(), user.Email, "secret123"); !errors.Is(err, ErrNoRoleAssigned) {
		t.Fatalf("expected ErrNoRoleAssigned, got %v", err)
	}
}

func TestLoginUpgradesLegacyHash(t *testing.T) {
	f := newAuthFixture()
	user := seedLoginUser(f, "ignored")
	sum := sha256.Sum256([]byte("secret123"))
	user.PasswordHash = base64.StdEncoding.EncodeToString(sum[:])

	if _, err := f.svc.Login(context.Background(), user.Email, "secret123"); err != nil {
		t.Fatalf("legacy login: %v", err)
	}
	if f.users.rehashedUser != user.ID {
		t.Fatal("legacy hash must be upgraded on login")
	}
	if security.IsLegacyHash(f.users.rehashedTo) {
		t.Fatalf("replacement hash is still legacy: %q", f.users.rehashedTo)
	}
}

func TestForgotPasswordIssuesTokenAndMailsLink(t *testing.T) {
	f := newAuthFixture()
	seedLoginUser(f, "secret123")

	if err := f.svc.ForgotPassword(context.Background(), "laura@example.com"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	if len(f.tokens.issued) != 1 {
		t.Fatalf("expected one token, got %d", len(f.tokens.issued))
	}
	token := f.tokens.issued[0]
	if token.UserID != 7 {
		t.Fatalf("token for wrong user: %d", token.UserID)
	}
	if remaining := time.Until(token.ExpiresAt); remaining < 59*time.Minute || remaining > time.Hour {
		t.Fatalf("expected ~1h expiry, got %v", remaining)
	}
	want := "http://localhost:8080/auth/reset-password?token=" + token.Token
	if f.mailer.lastLink != want {
		t.Fatalf("wrong link: %q", f.mailer.lastLink)
	}
}

func TestForgotPasswordHidesUnknownEmail(t *testing.T) {
	f := newAuthFixture()

	if err := f.svc.ForgotPassword(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("unknown email must not error, got %v", err)
	}
	if len(f.tokens.issued) != 0 || len(f.mailer.sentTo) != 0 {
		t.Fatal("unknown email must not issue a token or send mail")
	}
}

func TestResetPasswordConsumesToken(t *testing.T) {
	f := newAuthFixture()
	f.tokens.byToken["tok"] = &domain.PasswordResetToken{
		ID:        5,
		UserID:    7,
		Token:     "tok",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}

	if err := f.svc.ResetPassword("tok", "newsecret", "newsecret"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if f.users.rehashedUser != 7 {
		t.Fatal("hash must be updated for the token's user")
	}
	if !security.VerifyPassword("newsecret", f.users.rehashedTo) {
		t.Fatal("new hash must verify the new password")
	}
	if len(f.tokens.usedIDs) != 1 || f.tokens.usedIDs[0] != 5 {
		t.Fatalf("token must be marked used, got %v", f.tokens.usedIDs)
	}
}

func TestResetPasswordRejectsBadTokens(t *testing.T) {
	f := newAuthFixture()
	f.tokens.byToken["expired"] = &domain.PasswordResetToken{
		ID: 1, UserID: 7, Token: "expired", ExpiresAt: time.Now().Add(-time.Minute),
	}
	f.tokens.byToken["spent"] = &domain.PasswordResetToken{
		ID: 2, UserID: 7, Token: "spent", ExpiresAt: time.Now().Add(time.Hour), Used: true,
	}

	for _, token := range []string{"missing", "expired", "spent"} {
		if err := f.svc.ResetPassword(token, "newsecret", "newsecret"); !errors.Is(err, ErrInvalidResetToken) {
			t.Fatalf("token %q: expected ErrInvalidResetToken, got %v", token, err)
		}
	}
	if f.users.rehashedTo != "" {
		t.Fatal("rejected tokens must not change the hash")
	}
}

func TestProfileShowsOwnIdentity(t *testing.T) {
	f := newAuthFixture()
	seedLoginUser(f, "secret123")
	f.clients.byEmail["laura@example.com"] = &domain.Client{Name: "Laura Campos"}

	profile, err := f.svc.Profile(domain.Caller{UserID: 7, Role: domain.RoleClient, Email: "laura@example.com"})
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Name != "Laura Campos" || profile.Email != "laura@example.com" || profile.Role != domain.RoleClient {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}
