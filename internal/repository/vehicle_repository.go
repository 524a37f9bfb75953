package repository

import (
	"errors"
	"fmt"

	"mecaflow/internal/domain"

	"gorm.io/gorm"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) List() ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	err := r.db.Preload("Client").Preload("Brand").Preload("Model").
		Order("plate").Find(&vehicles).Error
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vehicles, nil
}

// ListByClient scopes the listing to one owner; the gate uses it for
// clients, who only see their own vehicles.
func (r *VehicleRepository) ListByClient(clientID uint) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	err := r.db.Preload("Brand").Preload("Model").
		Where("client_id = ?", clientID).
		Order("plate").Find(&vehicles).Error
	if err != nil {
		return nil, fmt.Errorf("list vehicles by client: %w", err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) FindByID(id uint) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := r.db.Preload("Client").Preload("Brand").Preload("Model").First(&vehicle, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return &vehicle, nil
}

func (r *VehicleRepository) PlateExists(plate string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Vehicle{}).
		Where("plate = ? AND id <> ?", plate, excludeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count vehicles by plate: %w", err)
	}
	return count > 0, nil
}

// ModelBelongsToBrand validates the brand/model pair before a write.
func (r *VehicleRepository) ModelBelongsToBrand(modelID, brandID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Model{}).
		Where("id = ? AND brand_id = ?", modelID, brandID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check model brand: %w", err)
	}
	return count > 0, nil
}

func (r *VehicleRepository) ListBrands() ([]domain.Brand, error) {
	var brands []domain.Brand
	if err := r.db.Preload("Models").Order("name").Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}

func (r *VehicleRepository) Create(vehicle *domain.Vehicle) error {
	if err := r.db.Create(vehicle).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("create vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepository) Update(vehicle *domain.Vehicle) error {
	res := r.db.Model(&domain.Vehicle{}).Where("id = ?", vehicle.ID).
		Select("Plate", "Year", "ClientID", "BrandID", "ModelID").
		Updates(vehicle)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return ErrConflict
		}
		return fmt.Errorf("update vehicle: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VehicleRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.Vehicle{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete vehicle: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
