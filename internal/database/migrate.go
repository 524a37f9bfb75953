package database

import (
	"mecaflow/internal/domain"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.Permission{},
		&domain.UserRole{},
		&domain.RolePermission{},
		&domain.PasswordResetToken{},
		&domain.Client{},
		&domain.Employee{},
		&domain.Brand{},
		&domain.Model{},
		&domain.Vehicle{},
		&domain.AttendanceRecord{},
		&domain.Diagnostic{},
		&domain.Invoice{},
		&domain.Payment{},
		&domain.VehicleTask{},
		&domain.FinancialReport{},
	)
}
