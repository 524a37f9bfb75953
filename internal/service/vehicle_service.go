package service

import (
	"errors"
	"fmt"
	"time"

	"mecaflow/internal/domain"
	"mecaflow/internal/repository"
)

type VehicleInput struct {
	Plate    string `json:"plate"`
	Year     *int   `json:"year,omitempty"`
	ClientID uint   `json:"client_id"`
	BrandID  uint   `json:"brand_id"`
	ModelID  uint   `json:"model_id"`
}

type VehicleService struct {
	vehicles *repository.VehicleRepository
	clients  *repository.ClientRepository
}

func NewVehicleService(vehicles *repository.VehicleRepository, clients *repository.ClientRepository) *VehicleService {
	return &VehicleService{vehicles: vehicles, clients: clients}
}

// List returns every vehicle for staff and only the caller's own vehicles
// for client accounts.
func (s *VehicleService) List(caller domain.Caller) ([]domain.Vehicle, error) {
	if caller.Role == domain.RoleClient {
		own, err := s.clients.FindByEmail(caller.Email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return []domain.Vehicle{}, nil
			}
			return nil, fmt.Errorf("list vehicles: %w", err)
		}
		return s.vehicles.ListByClient(own.ID)
	}
	return s.vehicles.List()
}

func (s *VehicleService) Get(id uint) (*domain.Vehicle, error) {
	return s.vehicles.FindByID(id)
}

func (s *VehicleService) Brands() ([]domain.Brand, error) {
	return s.vehicles.ListBrands()
}

func (s *VehicleService) Create(input VehicleInput) (*domain.Vehicle, error) {
	if err := s.validate(input, 0); err != nil {
		return nil, err
	}
	vehicle := &domain.Vehicle{
		Plate:    input.Plate,
		Year:     input.Year,
		ClientID: input.ClientID,
		BrandID:  input.BrandID,
		ModelID:  input.ModelID,
	}
	if err := s.vehicles.Create(vehicle); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fieldError("plate", "ya existe un vehículo con esta placa")
		}
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	return s.vehicles.FindByID(vehicle.ID)
}

func (s *VehicleService) Update(id uint, input VehicleInput) (*domain.Vehicle, error) {
	if err := s.validate(input, id); err != nil {
		return nil, err
	}
	vehicle := &domain.Vehicle{
		ID:       id,
		Plate:    input.Plate,
		Year:     input.Year,
		ClientID: input.ClientID,
		BrandID:  input.BrandID,
		ModelID:  input.ModelID,
	}
	if err := s.vehicles.Update(vehicle); err != nil {
		return nil, err
	}
	return s.vehicles.FindByID(id)
}

func (s *VehicleService) Delete(id uint) error {
	return s.vehicles.Delete(id)
}

func (s *VehicleService) validate(input VehicleInput, excludeID uint) error {
	if input.Plate == "" || len(input.Plate) > 20 {
		return fieldError("plate", "la placa es obligatoria")
	}
	if input.Year != nil {
		if *input.Year < 1950 || *input.Year > time.Now().Year()+1 {
			return fieldError("year", "el año no es válido")
		}
	}

	taken, err := s.vehicles.PlateExists(input.Plate, excludeID)
	if err != nil {
		return fmt.Errorf("validate vehicle: %w", err)
	}
	if taken {
		return fieldError("plate", "ya existe un vehículo con esta placa")
	}

	if _, err := s.clients.FindByID(input.ClientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fieldError("client_id", "el cliente no existe")
		}
		return fmt.Errorf("validate vehicle: %w", err)
	}

	ok, err := s.vehicles.ModelBelongsToBrand(input.ModelID, input.BrandID)
	if err != nil {
		return fmt.Errorf("validate vehicle: %w", err)
	}
	if !ok {
		return fieldError("model_id", "el modelo no pertenece a la marca seleccionada")
	}
	return nil
}
