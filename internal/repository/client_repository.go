package repository

import (
	"errors"
	"fmt"

	"mecaflow/internal/domain"

	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) List() ([]domain.Client, error) {
	var clients []domain.Client
	if err := r.db.Order("name").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (r *ClientRepository) FindByID(id uint) (*domain.Client, error) {
	var client domain.Client
	err := r.db.First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	return &client, nil
}

func (r *ClientRepository) FindByEmail(email string) (*domain.Client, error) {
	var client domain.Client
	err := r.db.Where("email = ?", email).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find client by email: %w", err)
	}
	return &client, nil
}

func (r *ClientRepository) NameExists(name string, excludeID uint) (bool, error) {
	return r.exists("name = ? AND id <> ?", name, excludeID)
}

func (r *ClientRepository) EmailExists(email string, excludeID uint) (bool, error) {
	return r.exists("email = ? AND id <> ?", email, excludeID)
}

func (r *ClientRepository) exists(query string, args ...any) (bool, error) {
	var count int64
	if err := r.db.Model(&domain.Client{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count clients: %w", err)
	}
	return count > 0, nil
}

func (r *ClientRepository) Create(client *domain.Client) error {
	if err := r.db.Create(client).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

// Update writes the mutable fields guarded by the primary key, mapping a
// vanished row to ErrNotFound so concurrent deletes surface cleanly.
func (r *ClientRepository) Update(client *domain.Client) error {
	res := r.db.Model(&domain.Client{}).Where("id = ?", client.ID).
		Select("Name", "Email", "Phone", "Province").
		Updates(client)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return ErrConflict
		}
		return fmt.Errorf("update client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.Client{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
