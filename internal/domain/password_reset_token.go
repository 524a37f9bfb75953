package domain

import "time"

// PasswordResetToken is a single-use credential for the forgot-password
// flow. Issuing a new token marks every prior unused token for the same
// user as used.
type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;size:255;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
}

// IsValid reports whether the token can still redeem a password reset:
// never used and not yet expired at the given instant.
func (t *PasswordResetToken) IsValid(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
