package domain

import "time"

type Employee struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"size:100;not null" json:"name"`
	NationalID string     `gorm:"uniqueIndex;size:20;not null" json:"national_id"`
	Email      string     `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Position   string     `gorm:"size:50" json:"position"`
	HiredAt    *time.Time `json:"hired_at,omitempty"`
	Active     bool       `gorm:"default:true" json:"active"`
	CreatedAt  time.Time  `json:"created_at"`

	Attendance  []AttendanceRecord `json:"attendance,omitempty"`
	Diagnostics []Diagnostic       `json:"diagnostics,omitempty"`
}
