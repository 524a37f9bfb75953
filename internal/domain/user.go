package domain

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Roles        []Role    `gorm:"many2many:user_roles" json:"roles,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// EffectiveRole resolves the role the gate uses for this user. A user can
// hold several roles but login honors only the first assigned one; roles are
// loaded ordered by ID so the result is at least deterministic.
func (u *User) EffectiveRole() (RoleName, bool) {
	if len(u.Roles) == 0 {
		return "", false
	}
	return ParseRoleName(u.Roles[0].Name)
}
