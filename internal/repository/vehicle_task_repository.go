package repository

import (
	"errors"
	"fmt"

	"mecaflow/internal/domain"

	"gorm.io/gorm"
)

type VehicleTaskRepository struct {
	db *gorm.DB
}

func NewVehicleTaskRepository(db *gorm.DB) *VehicleTaskRepository {
	return &VehicleTaskRepository{db: db}
}

func (r *VehicleTaskRepository) List() ([]domain.VehicleTask, error) {
	var tasks []domain.VehicleTask
	err := r.db.Preload("Vehicle").Order("id DESC").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list vehicle tasks: %w", err)
	}
	return tasks, nil
}

func (r *VehicleTaskRepository) FindByID(id uint) (*domain.VehicleTask, error) {
	var task domain.VehicleTask
	err := r.db.Preload("Vehicle").First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find vehicle task: %w", err)
	}
	return &task, nil
}

func (r *VehicleTaskRepository) Create(task *domain.VehicleTask) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("create vehicle task: %w", err)
	}
	return nil
}

func (r *VehicleTaskRepository) Update(task *domain.VehicleTask) error {
	res := r.db.Model(&domain.VehicleTask{}).Where("id = ?", task.ID).
		Select("VehicleID", "Sector", "Description", "Date", "Done").
		Updates(task)
	if res.Error != nil {
		return fmt.Errorf("update vehicle task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDone flips only the completion flag.
func (r *VehicleTaskRepository) SetDone(id uint, done bool) error {
	res := r.db.Model(&domain.VehicleTask{}).Where("id = ?", id).Update("done", done)
	if res.Error != nil {
		return fmt.Errorf("set vehicle task done: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VehicleTaskRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.VehicleTask{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete vehicle task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
