package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mecaflow/internal/domain"
	"mecaflow/internal/repository"
	"mecaflow/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoRoleAssigned     = errors.New("user has no role assigned")
	ErrInvalidResetToken  = errors.New("reset token is invalid or expired")
)

type UserRepositoryInterface interface {
	FindByEmail(email string) (*domain.User, error)
	FindByID(id uint) (*domain.User, error)
	EmailExists(email string) (bool, error)
	UpdatePasswordHash(userID uint, hash string) error
	RegisterClient(user *domain.User, client *domain.Client) error
}

type ResetTokenRepositoryInterface interface {
	Issue(userID uint, token string, expiresAt time.Time) (*domain.PasswordResetToken, error)
	FindByToken(token string) (*domain.PasswordResetToken, error)
	MarkUsed(id uint) error
}

type ClientDirectory interface {
	FindByEmail(email string) (*domain.Client, error)
}

type EmployeeDirectory interface {
	FindByEmail(email string) (*domain.Employee, error)
	NationalIDExists(nationalID string, excludeID uint) (bool, error)
}

// AuthService handles registration, login, and the password-reset flow.
// Session creation is the caller's job; Login only proves the identity.
type AuthService struct {
	users     UserRepositoryInterface
	tokens    ResetTokenRepositoryInterface
	clients   ClientDirectory
	employees EmployeeDirectory
	mailer    Mailer
	logger    *slog.Logger
	baseURL   string
	resetTTL  time.Duration
}

func NewAuthService(
	users UserRepositoryInterface,
	tokens ResetTokenRepositoryInterface,
	clients ClientDirectory,
	employees EmployeeDirectory,
	mailer Mailer,
	logger *slog.Logger,
	baseURL string,
	resetTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		clients:   clients,
		employees: employees,
		mailer:    mailer,
		logger:    logger,
		baseURL:   strings.TrimRight(baseURL, "/"),
		resetTTL:  resetTTL,
	}
}

type RegisterInput struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	NationalID      string `json:"national_id"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Register creates a self-service account. New accounts always get the
// Client role and a linked client row; both writes share one transaction.
func (s *AuthService) Register(input RegisterInput) (*domain.User, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	taken, err := s.users.EmailExists(input.Email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, fieldError("email", "ya existe un usuario con este correo electrónico")
	}

	// The identity number is optional on registration but must never
	// shadow an existing employee.
	if input.NationalID != "" {
		exists, err := s.employees.NationalIDExists(input.NationalID, 0)
		if err != nil {
			return nil, fmt.Errorf("register: %w", err)
		}
		if exists {
			return nil, fieldError("national_id", "ya existe un empleado registrado con esta cédula")
		}
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := &domain.User{
		Username:     input.Email,
		Email:        input.Email,
		PasswordHash: hash,
	}
	client := &domain.Client{
		Name:  strings.TrimSpace(input.FirstName + " " + input.LastName),
		Phone: input.Phone,
		Email: input.Email,
	}
	if err := s.users.RegisterClient(user, client); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fieldError("email", "ya existe un usuario con este correo electrónico")
		}
		return nil, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

func validateRegisterInput(input RegisterInput) error {
	switch {
	case input.FirstName == "" || len(input.FirstName) > 50:
		return fieldError("first_name", "el nombre es obligatorio y no puede exceder 50 caracteres")
	case input.LastName == "" || len(input.LastName) > 50:
		return fieldError("last_name", "el apellido es obligatorio y no puede exceder 50 caracteres")
	}
	if input.NationalID != "" {
		if len(input.NationalID) > 20 || !nationalIDPattern.MatchString(input.NationalID) {
			return fieldError("national_id", "la cédula solo puede contener números y guiones")
		}
	}
	if input.Phone == "" || len(input.Phone) > 20 || !phonePattern.MatchString(input.Phone) {
		return fieldError("phone", "el teléfono solo puede contener números, espacios, paréntesis, guiones y el símbolo +")
	}
	if !ValidEmail(input.Email) {
		return fieldError("email", "el formato del correo electrónico no es válido")
	}
	if len(input.Password) < 6 || len(input.Password) > 100 {
		return fieldError("password", "la contraseña debe tener al menos 6 caracteres")
	}
	if input.Password != input.ConfirmPassword {
		return fieldError("confirm_password", "las contraseñas no coinciden")
	}
	return nil
}

// Login verifies the credentials and resolves the caller identity the
// session will carry. Legacy SHA-256 hashes are upgraded to bcrypt on the
// first successful login.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Caller, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Caller{}, ErrInvalidCredentials
		}
		return domain.Caller{}, fmt.Errorf("login: %w", err)
	}
	if !security.VerifyPassword(password, user.PasswordHash) {
		return domain.Caller{}, ErrInvalidCredentials
	}

	if security.IsLegacyHash(user.PasswordHash) {
		if hash, err := security.HashPassword(password); err == nil {
			if err := s.users.UpdatePasswordHash(user.ID, hash); err != nil {
				s.logger.WarnContext(ctx, "password rehash failed",
					slog.Uint64("user_id", uint64(user.ID)),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	role, ok := user.EffectiveRole()
	if !ok {
		return domain.Caller{}, ErrNoRoleAssigned
	}

	return domain.Caller{
		UserID: user.ID,
		Role:   role,
		Email:  user.Email,
		Name:   s.displayName(user),
	}, nil
}

// displayName prefers the linked client row, then the employee row, then
// falls back to the username.
func (s *AuthService) displayName(user *domain.User) string {
	if client, err := s.clients.FindByEmail(user.Email); err == nil && client.Name != "" {
		return client.Name
	}
	if employee, err := s.employees.FindByEmail(user.Email); err == nil && employee.Name != "" {
		return employee.Name
	}
	return user.Username
}

// ForgotPassword issues a reset token for a known email and mails the link.
// Unknown emails succeed silently so the endpoint cannot be used to probe
// for accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("forgot password: %w", err)
	}

	token, err := security.NewRandomString(32)
	if err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	if _, err := s.tokens.Issue(user.ID, token, time.Now().Add(s.resetTTL)); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}

	link := s.baseURL + "/auth/reset-password?token=" + token
	if err := s.mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

// ResetPassword consumes a single-use token and sets the new bcrypt hash.
func (s *AuthService) ResetPassword(token, newPassword, confirmPassword string) error {
	if len(newPassword) < 6 || len(newPassword) > 100 {
		return fieldError("password", "la contraseña debe tener al menos 6 caracteres")
	}
	if newPassword != confirmPassword {
		return fieldError("confirm_password", "las contraseñas no coinciden")
	}

	record, err := s.tokens.FindByToken(token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("reset password: %w", err)
	}
	if !record.IsValid(time.Now()) {
		return ErrInvalidResetToken
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if err := s.users.UpdatePasswordHash(record.UserID, hash); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if err := s.tokens.MarkUsed(record.ID); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

type Profile struct {
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  domain.RoleName `json:"role"`
}

// Profile returns the caller's own identity view.
func (s *AuthService) Profile(caller domain.Caller) (*Profile, error) {
	user, err := s.users.FindByID(caller.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &Profile{
		Name:  s.displayName(user),
		Email: user.Email,
		Role:  caller.Role,
	}, nil
}
