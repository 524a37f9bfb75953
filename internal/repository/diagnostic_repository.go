package repository

import (
	"errors"
	"fmt"

	"mecaflow/internal/domain"

	"gorm.io/gorm"
)

type DiagnosticRepository struct {
	db *gorm.DB
}

func NewDiagnosticRepository(db *gorm.DB) *DiagnosticRepository {
	return &DiagnosticRepository{db: db}
}

func (r *DiagnosticRepository) List() ([]domain.Diagnostic, error) {
	var diagnostics []domain.Diagnostic
	err := r.db.Preload("Vehicle").Preload("Employee").
		Order("date DESC").Find(&diagnostics).Error
	if err != nil {
		return nil, fmt.Errorf("list diagnostics: %w", err)
	}
	return diagnostics, nil
}

// ListByClient scopes diagnostics to vehicles owned by one client.
func (r *DiagnosticRepository) ListByClient(clientID uint) ([]domain.Diagnostic, error) {
	var diagnostics []domain.Diagnostic
	err := r.db.Preload("Vehicle").Preload("Employee").
		Joins("JOIN vehicles ON vehicles.id = diagnostics.vehicle_id").
		Where("vehicles.client_id = ?", clientID).
		Order("diagnostics.date DESC").Find(&diagnostics).Error
	if err != nil {
		return nil, fmt.Errorf("list diagnostics by client: %w", err)
	}
	return diagnostics, nil
}

func (r *DiagnosticRepository) FindByID(id uint) (*domain.Diagnostic, error) {
	var diagnostic domain.Diagnostic
	err := r.db.Preload("Vehicle").Preload("Employee").First(&diagnostic, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find diagnostic: %w", err)
	}
	return &diagnostic, nil
}

func (r *DiagnosticRepository) Create(diagnostic *domain.Diagnostic) error {
	if err := r.db.Create(diagnostic).Error; err != nil {
		return fmt.Errorf("create diagnostic: %w", err)
	}
	return nil
}

func (r *DiagnosticRepository) Update(diagnostic *domain.Diagnostic) error {
	res := r.db.Model(&domain.Diagnostic{}).Where("id = ?", diagnostic.ID).
		Select("VehicleID", "Date", "Detail", "EmployeeID").
		Updates(diagnostic)
	if res.Error != nil {
		return fmt.Errorf("update diagnostic: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DiagnosticRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.Diagnostic{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete diagnostic: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
