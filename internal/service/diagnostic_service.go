package service

import (
	"errors"
	"fmt"
	"time"

	"mecaflow/internal/domain"
	"mecaflow/internal/repository"
)

type DiagnosticInput struct {
	VehicleID  uint      `json:"vehicle_id"`
	Date       time.Time `json:"date"`
	Detail     string    `json:"detail"`
	EmployeeID *uint     `json:"employee_id,omitempty"`
}

type DiagnosticService struct {
	diagnostics *repository.DiagnosticRepository
	vehicles    *repository.VehicleRepository
	employees   *repository.EmployeeRepository
	clients     *repository.ClientRepository
}

func NewDiagnosticService(
	diagnostics *repository.DiagnosticRepository,
	vehicles *repository.VehicleRepository,
	employees *repository.EmployeeRepository,
	clients *repository.ClientRepository,
) *DiagnosticService {
	return &DiagnosticService{diagnostics: diagnostics, vehicles: vehicles, employees: employees, clients: clients}
}

func (s *DiagnosticService) List(caller domain.Caller) ([]domain.Diagnostic, error) {
	if caller.Role == domain.RoleClient {
		own, err := s.clients.FindByEmail(caller.Email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return []domain.Diagnostic{}, nil
			}
			return nil, fmt.Errorf("list diagnostics: %w", err)
		}
		return s.diagnostics.ListByClient(own.ID)
	}
	return s.diagnostics.List()
}

func (s *DiagnosticService) Get(id uint) (*domain.Diagnostic, error) {
	return s.diagnostics.FindByID(id)
}

func (s *DiagnosticService) Create(input DiagnosticInput) (*domain.Diagnostic, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	diagnostic := &domain.Diagnostic{
		VehicleID:  input.VehicleID,
		Date:       input.Date,
		Detail:     input.Detail,
		EmployeeID: input.EmployeeID,
	}
	if err := s.diagnostics.Create(diagnostic); err != nil {
		return nil, fmt.Errorf("create diagnostic: %w", err)
	}
	return s.diagnostics.FindByID(diagnostic.ID)
}

func (s *DiagnosticService) Update(id uint, input DiagnosticInput) (*domain.Diagnostic, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	diagnostic := &domain.Diagnostic{
		ID:         id,
		VehicleID:  input.VehicleID,
		Date:       input.Date,
		Detail:     input.Detail,
		EmployeeID: input.EmployeeID,
	}
	if err := s.diagnostics.Update(diagnostic); err != nil {
		return nil, err
	}
	return s.diagnostics.FindByID(id)
}

func (s *DiagnosticService) Delete(id uint) error {
	return s.diagnostics.Delete(id)
}

func (s *DiagnosticService) validate(input DiagnosticInput) error {
	if len(input.Detail) > 500 {
		return fieldError("detail", "el detalle no puede exceder 500 caracteres")
	}
	if input.Date.IsZero() {
		return fieldError("date", "la fecha es obligatoria")
	}
	if _, err := s.vehicles.FindByID(input.VehicleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fieldError("vehicle_id", "el vehículo no existe")
		}
		return fmt.Errorf("validate diagnostic: %w", err)
	}
	if input.EmployeeID != nil {
		if _, err := s.employees.FindByID(*input.EmployeeID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fieldError("employee_id", "el empleado no existe")
			}
			return fmt.Errorf("validate diagnostic: %w", err)
		}
	}
	return nil
}
