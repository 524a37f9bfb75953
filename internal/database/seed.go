package database

import (
	"fmt"

	"mecaflow/internal/domain"

	"gorm.io/gorm"
)

type SeedReport struct {
	CreatedRoles  int
	CreatedBrands int
	CreatedModels int
	Noop          bool
}

var seedBrands = map[string][]string{
	"Toyota":  {"Corolla", "Hilux", "Yaris"},
	"Hyundai": {"Accent", "Tucson"},
	"Nissan":  {"Sentra", "Frontier"},
	"Kia":     {"Rio", "Sportage"},
}

// SeedSync makes sure the role table and the brand/model lookups hold the
// baseline rows. Safe to run on every boot; a second run is a no-op.
func SeedSync(db *gorm.DB) (*SeedReport, error) {
	report := &SeedReport{}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, name := range []domain.RoleName{domain.RoleAdministrator, domain.RoleEmployee, domain.RoleClient} {
			var role domain.Role
			res := tx.Where("name = ?", name.String()).First(&role)
			if res.Error == gorm.ErrRecordNotFound {
				if err := tx.Create(&domain.Role{Name: name.String()}).Error; err != nil {
					return fmt.Errorf("seed role %s: %w", name, err)
				}
				report.CreatedRoles++
				continue
			}
			if res.Error != nil {
				return fmt.Errorf("lookup role %s: %w", name, res.Error)
			}
		}

		for brandName, models := range seedBrands {
			var brand domain.Brand
			res := tx.Where("name = ?", brandName).First(&brand)
			if res.Error == gorm.ErrRecordNotFound {
				brand = domain.Brand{Name: brandName}
				if err := tx.Create(&brand).Error; err != nil {
					return fmt.Errorf("seed brand %s: %w", brandName, err)
				}
				report.CreatedBrands++
			} else if res.Error != nil {
				return fmt.Errorf("lookup brand %s: %w", brandName, res.Error)
			}
			for _, modelName := range models {
				var model domain.Model
				res := tx.Where("brand_id = ? AND name = ?", brand.ID, modelName).First(&model)
				if res.Error == gorm.ErrRecordNotFound {
					if err := tx.Create(&domain.Model{Name: modelName, BrandID: brand.ID}).Error; err != nil {
						return fmt.Errorf("seed model %s %s: %w", brandName, modelName, err)
					}
					report.CreatedModels++
				} else if res.Error != nil {
					return fmt.Errorf("lookup model %s %s: %w", brandName, modelName, res.Error)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report.Noop = report.CreatedRoles == 0 && report.CreatedBrands == 0 && report.CreatedModels == 0
	return report, nil
}
