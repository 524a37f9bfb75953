package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"mecaflow/internal/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRepositoryDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
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
	); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	return db
}

func createEmployeeForTest(t *testing.T, db *gorm.DB, name, nationalID string) *domain.Employee {
	t.Helper()
	emp := &domain.Employee{Name: name, NationalID: nationalID, Email: nationalID + "@mecaflow.com", Active: true}
	if err := db.Create(emp).Error; err != nil {
		t.Fatalf("create employee %s: %v", name, err)
	}
	return emp
}

func civilDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
