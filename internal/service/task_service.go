package service

import (
	"errors"
	"fmt"
	"time"

	"mecaflow/internal/domain"
	"mecaflow/internal/repository"
)

type TaskInput struct {
	VehicleID   uint       `json:"vehicle_id"`
	Sector      string     `json:"sector"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date,omitempty"`
}

type TaskService struct {
	tasks    *repository.VehicleTaskRepository
	vehicles *repository.VehicleRepository
}

func NewTaskService(tasks *repository.VehicleTaskRepository, vehicles *repository.VehicleRepository) *TaskService {
	return &TaskService{tasks: tasks, vehicles: vehicles}
}

func (s *TaskService) List() ([]domain.VehicleTask, error) {
	return s.tasks.List()
}

func (s *TaskService) Get(id uint) (*domain.VehicleTask, error) {
	return s.tasks.FindByID(id)
}

func (s *TaskService) Create(input TaskInput) (*domain.VehicleTask, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	task := &domain.VehicleTask{
		VehicleID:   input.VehicleID,
		Sector:      input.Sector,
		Description: input.Description,
		Date:        input.Date,
	}
	if err := s.tasks.Create(task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Update(id uint, input TaskInput) (*domain.VehicleTask, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	current, err := s.tasks.FindByID(id)
	if err != nil {
		return nil, err
	}
	current.VehicleID = input.VehicleID
	current.Sector = input.Sector
	current.Description = input.Description
	current.Date = input.Date
	if err := s.tasks.Update(current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *TaskService) SetDone(id uint, done bool) error {
	return s.tasks.SetDone(id, done)
}

func (s *TaskService) Delete(id uint) error {
	return s.tasks.Delete(id)
}

func (s *TaskService) validate(input TaskInput) error {
	if input.Description == "" || len(input.Description) > 200 {
		return fieldError("description", "la descripción es obligatoria y no puede exceder 200 caracteres")
	}
	if len(input.Sector) > 30 {
		return fieldError("sector", "el sector no puede exceder 30 caracteres")
	}
	if _, err := s.vehicles.FindByID(input.VehicleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fieldError("vehicle_id", "el vehículo no existe")
		}
		return fmt.Errorf("validate task: %w", err)
	}
	return nil
}
