package repository

import (
	"errors"
	"fmt"

	"mecaflow/internal/domain"

	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) List() ([]domain.Employee, error) {
	var employees []domain.Employee
	if err := r.db.Order("name").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (r *EmployeeRepository) ListActive() ([]domain.Employee, error) {
	var employees []domain.Employee
	if err := r.db.Where("active = ?", true).Order("name").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("list active employees: %w", err)
	}
	return employees, nil
}

func (r *EmployeeRepository) FindByID(id uint) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.db.First(&employee, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return &employee, nil
}

func (r *EmployeeRepository) FindActiveByID(id uint) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.db.Where("id = ? AND active = ?", id, true).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find active employee: %w", err)
	}
	return &employee, nil
}

func (r *EmployeeRepository) FindByEmail(email string) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.db.Where("email = ?", email).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find employee by email: %w", err)
	}
	return &employee, nil
}

func (r *EmployeeRepository) NationalIDExists(nationalID string, excludeID uint) (bool, error) {
	return r.exists("national_id = ? AND id <> ?", nationalID, excludeID)
}

func (r *EmployeeRepository) EmailExists(email string, excludeID uint) (bool, error) {
	return r.exists("email = ? AND id <> ?", email, excludeID)
}

func (r *EmployeeRepository) exists(query string, args ...any) (bool, error) {
	var count int64
	if err := r.db.Model(&domain.Employee{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count employees: %w", err)
	}
	return count > 0, nil
}

// CreateWithUser writes the employee row plus its login account (user +
// role link) in one transaction, rolling everything back on any failure.
func (r *EmployeeRepository) CreateWithUser(employee *domain.Employee, user *domain.User, role domain.RoleName) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(employee).Error; err != nil {
			return fmt.Errorf("create employee: %w", err)
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("create employee user: %w", err)
		}
		roleRow, err := findOrCreateRole(tx, role)
		if err != nil {
			return err
		}
		if err := tx.Create(&domain.UserRole{UserID: user.ID, RoleID: roleRow.ID}).Error; err != nil {
			return fmt.Errorf("assign employee role: %w", err)
		}
		return nil
	})
	if err != nil && isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (r *EmployeeRepository) Update(employee *domain.Employee) error {
	res := r.db.Model(&domain.Employee{}).Where("id = ?", employee.ID).
		Select("Name", "NationalID", "Email", "Position", "HiredAt", "Active").
		Updates(employee)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return ErrConflict
		}
		return fmt.Errorf("update employee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.Employee{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete employee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
