package repository

import (
	"errors"
	"fmt"
	"time"

	"mecaflow/internal/domain"

	"gorm.io/gorm"
)

type PasswordResetTokenRepository struct {
	db *gorm.DB
}

func NewPasswordResetTokenRepository(db *gorm.DB) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{db: db}
}

// Issue invalidates every prior unused token for the user and stores the
// new one, atomically. Reissuing always leaves at most one live token.
func (r *PasswordResetTokenRepository) Issue(userID uint, token string, expiresAt time.Time) (*domain.PasswordResetToken, error) {
	record := &domain.PasswordResetToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.PasswordResetToken{}).
			Where("user_id = ? AND used = ?", userID, false).
			Update("used", true).Error; err != nil {
			return fmt.Errorf("invalidate prior tokens: %w", err)
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("create reset token: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *PasswordResetTokenRepository) FindByToken(token string) (*domain.PasswordResetToken, error) {
	var record domain.PasswordResetToken
	err := r.db.Where("token = ?", token).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find reset token: %w", err)
	}
	return &record, nil
}

func (r *PasswordResetTokenRepository) MarkUsed(id uint) error {
	res := r.db.Model(&domain.PasswordResetToken{}).Where("id = ?", id).Update("used", true)
	if res.Error != nil {
		return fmt.Errorf("mark token used: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
