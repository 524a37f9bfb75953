package repository

import (
	"errors"
	"fmt"
	"time"

	"mecaflow/internal/domain"

	"gorm.io/gorm"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) FindByEmployeeAndDate(employeeID uint, date time.Time) (*domain.AttendanceRecord, error) {
	var record domain.AttendanceRecord
	err := r.db.Where("employee_id = ? AND date = ?", employeeID, date).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find attendance record: %w", err)
	}
	return &record, nil
}

// Create relies on the unique (employee, date) index to collapse the race
// between two concurrent first check-ins into one winner and one conflict.
func (r *AttendanceRepository) Create(record *domain.AttendanceRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("create attendance record: %w", err)
	}
	return nil
}

func (r *AttendanceRepository) Update(record *domain.AttendanceRecord) error {
	res := r.db.Model(&domain.AttendanceRecord{}).Where("id = ?", record.ID).
		Select("CheckIn", "CheckOut").
		Updates(record)
	if res.Error != nil {
		return fmt.Errorf("update attendance record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRange returns one employee's records between two dates inclusive,
// newest day first.
func (r *AttendanceRepository) ListRange(employeeID uint, from, to time.Time) ([]domain.AttendanceRecord, error) {
	var records []domain.AttendanceRecord
	err := r.db.
		Where("employee_id = ? AND date >= ? AND date <= ?", employeeID, from, to).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list attendance range: %w", err)
	}
	return records, nil
}

// ListByDate returns every record for one civil day with employees
// preloaded, ordered by employee name. Feeds the daily board.
func (r *AttendanceRepository) ListByDate(date time.Time) ([]domain.AttendanceRecord, error) {
	var records []domain.AttendanceRecord
	err := r.db.
		Preload("Employee").
		Joins("JOIN employees ON employees.id = attendance_records.employee_id").
		Where("attendance_records.date = ?", date).
		Order("employees.name").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list attendance by date: %w", err)
	}
	return records, nil
}

// Delete is the admin-only escape hatch; normal flows never remove records.
func (r *AttendanceRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.AttendanceRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete attendance record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
