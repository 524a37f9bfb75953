package domain

import "time"

type VehicleTask struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	VehicleID   uint       `gorm:"index;not null" json:"vehicle_id"`
	Sector      string     `gorm:"size:30" json:"sector"`
	Description string     `gorm:"size:200" json:"description"`
	Date        *time.Time `json:"date,omitempty"`
	Done        bool       `gorm:"default:false" json:"done"`

	Vehicle *Vehicle `json:"vehicle,omitempty"`
}
