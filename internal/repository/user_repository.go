package repository

import (
	"errors"
	"fmt"
	"strings"

	"mecaflow/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail loads a user with roles preloaded in ID order, so the
// "first assigned role" resolution is deterministic.
func (r *UserRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.db.
		Preload("Roles", func(db *gorm.DB) *gorm.DB { return db.Order("roles.id") }).
		Where("email = ?", email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.
		Preload("Roles", func(db *gorm.DB) *gorm.DB { return db.Order("roles.id") }).
		First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&domain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) UpdatePasswordHash(userID uint, hash string) error {
	res := r.db.Model(&domain.User{}).Where("id = ?", userID).Update("password_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("update password hash: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RegisterClient creates the user row, assigns the Client role and creates
// the linked client record in one transaction. Partial failure rolls back
// every write in the group.
func (r *UserRepository) RegisterClient(user *domain.User, client *domain.Client) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		role, err := findOrCreateRole(tx, domain.RoleClient)
		if err != nil {
			return err
		}
		if err := tx.Create(&domain.UserRole{UserID: user.ID, RoleID: role.ID}).Error; err != nil {
			return fmt.Errorf("assign role: %w", err)
		}
		if err := tx.Create(client).Error; err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		return nil
	})
	if err != nil && isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func findOrCreateRole(tx *gorm.DB, name domain.RoleName) (*domain.Role, error) {
	var role domain.Role
	err := tx.Where("name = ?", name.String()).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		role = domain.Role{Name: name.String()}
		if err := tx.Create(&role).Error; err != nil {
			return nil, fmt.Errorf("create role %s: %w", name, err)
		}
		return &role, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find role %s: %w", name, err)
	}
	return &role, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
