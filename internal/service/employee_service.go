package service

import (
	"errors"
	"fmt"
	"time"

	"mecaflow/internal/domain"
	"mecaflow/internal/repository"
	"mecaflow/internal/security"
)

type EmployeeInput struct {
	Name       string     `json:"name"`
	NationalID string     `json:"national_id"`
	Email      string     `json:"email"`
	Position   string     `json:"position"`
	HiredAt    *time.Time `json:"hired_at,omitempty"`
	Active     bool       `json:"active"`
	// Password is only honored on create, where it seeds the linked
	// user account.
	Password string `json:"password,omitempty"`
}

type EmployeeService struct {
	employees *repository.EmployeeRepository
	users     *repository.UserRepository
}

func NewEmployeeService(employees *repository.EmployeeRepository, users *repository.UserRepository) *EmployeeService {
	return &EmployeeService{employees: employees, users: users}
}

func (s *EmployeeService) List() ([]domain.Employee, error) {
	return s.employees.List()
}

func (s *EmployeeService) ListActive() ([]domain.Employee, error) {
	return s.employees.ListActive()
}

func (s *EmployeeService) Get(id uint) (*domain.Employee, error) {
	return s.employees.FindByID(id)
}

// Create stores the employee together with its login account; the two
// writes share one transaction and roll back together.
func (s *EmployeeService) Create(input EmployeeInput) (*domain.Employee, error) {
	if err := s.validate(input, 0); err != nil {
		return nil, err
	}
	if len(input.Password) < 6 || len(input.Password) > 100 {
		return nil, fieldError("password", "la contraseña debe tener al menos 6 caracteres")
	}
	taken, err := s.users.EmailExists(input.Email)
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	if taken {
		return nil, fieldError("email", "ya existe un usuario con este correo")
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	employee := &domain.Employee{
		Name:       input.Name,
		NationalID: input.NationalID,
		Email:      input.Email,
		Position:   input.Position,
		HiredAt:    input.HiredAt,
		Active:     true,
	}
	user := &domain.User{
		Username:     input.Email,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.employees.CreateWithUser(employee, user, domain.RoleEmployee); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fieldError("national_id", "ya existe un empleado con esta cédula o correo")
		}
		return nil, fmt.Errorf("create employee: %w", err)
	}
	return employee, nil
}

func (s *EmployeeService) Update(id uint, input EmployeeInput) (*domain.Employee, error) {
	if err := s.validate(input, id); err != nil {
		return nil, err
	}
	employee := &domain.Employee{
		ID:         id,
		Name:       input.Name,
		NationalID: input.NationalID,
		Email:      input.Email,
		Position:   input.Position,
		HiredAt:    input.HiredAt,
		Active:     input.Active,
	}
	if err := s.employees.Update(employee); err != nil {
		return nil, err
	}
	return s.employees.FindByID(id)
}

func (s *EmployeeService) Delete(id uint) error {
	return s.employees.Delete(id)
}

func (s *EmployeeService) validate(input EmployeeInput, excludeID uint) error {
	if input.Name == "" || len(input.Name) > 100 || !lettersPattern.MatchString(input.Name) {
		return fieldError("name", "el nombre solo puede contener letras y espacios")
	}
	if input.NationalID == "" || len(input.NationalID) > 20 || !digitsPattern.MatchString(input.NationalID) {
		return fieldError("national_id", "la cédula solo puede contener dígitos")
	}
	if !ValidEmail(input.Email) {
		return fieldError("email", "el formato del correo electrónico no es válido")
	}
	if len(input.Position) > 50 {
		return fieldError("position", "el puesto no puede exceder 50 caracteres")
	}

	taken, err := s.employees.NationalIDExists(input.NationalID, excludeID)
	if err != nil {
		return fmt.Errorf("validate employee: %w", err)
	}
	if taken {
		return fieldError("national_id", "ya existe un empleado con esta cédula")
	}
	taken, err = s.employees.EmailExists(input.Email, excludeID)
	if err != nil {
		return fmt.Errorf("validate employee: %w", err)
	}
	if taken {
		return fieldError("email", "ya existe un empleado con este correo")
	}
	return nil
}
