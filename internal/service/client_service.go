package service

import (
	"errors"
	"fmt"

	"mecaflow/internal/domain"
	"mecaflow/internal/repository"
)

type ClientInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Province string `json:"province"`
}

type ClientService struct {
	clients *repository.ClientRepository
}

func NewClientService(clients *repository.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

func (s *ClientService) List(caller domain.Caller) ([]domain.Client, error) {
	if caller.Role == domain.RoleClient {
		own, err := s.clients.FindByEmail(caller.Email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return []domain.Client{}, nil
			}
			return nil, fmt.Errorf("list clients: %w", err)
		}
		return []domain.Client{*own}, nil
	}
	return s.clients.List()
}

func (s *ClientService) Get(id uint) (*domain.Client, error) {
	return s.clients.FindByID(id)
}

func (s *ClientService) Create(input ClientInput) (*domain.Client, error) {
	if err := s.validate(input, 0); err != nil {
		return nil, err
	}
	client := &domain.Client{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Province: input.Province,
	}
	if err := s.clients.Create(client); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fieldError("name", "ya existe un cliente con este nombre o correo")
		}
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

func (s *ClientService) Update(id uint, input ClientInput) (*domain.Client, error) {
	if err := s.validate(input, id); err != nil {
		return nil, err
	}
	client := &domain.Client{
		ID:       id,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Province: input.Province,
	}
	if err := s.clients.Update(client); err != nil {
		return nil, err
	}
	return s.clients.FindByID(id)
}

func (s *ClientService) Delete(id uint) error {
	return s.clients.Delete(id)
}

func (s *ClientService) validate(input ClientInput, excludeID uint) error {
	if input.Name == "" || len(input.Name) > 100 || !lettersPattern.MatchString(input.Name) {
		return fieldError("name", "el nombre solo puede contener letras y espacios")
	}
	if !ValidEmail(input.Email) {
		return fieldError("email", "el formato del correo electrónico no es válido")
	}
	if len(input.Phone) < 8 || len(input.Phone) > 12 || !digitsPattern.MatchString(input.Phone) {
		return fieldError("phone", "el teléfono debe tener entre 8 y 12 dígitos")
	}
	if !ValidProvince(input.Province) {
		return fieldError("province", "la provincia no es válida")
	}

	taken, err := s.clients.NameExists(input.Name, excludeID)
	if err != nil {
		return fmt.Errorf("validate client: %w", err)
	}
	if taken {
		return fieldError("name", "ya existe un cliente con este nombre")
	}
	taken, err = s.clients.EmailExists(input.Email, excludeID)
	if err != nil {
		return fmt.Errorf("validate client: %w", err)
	}
	if taken {
		return fieldError("email", "ya existe un cliente con este correo")
	}
	return nil
}
