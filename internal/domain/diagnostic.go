package domain

import "time"

type Diagnostic struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	VehicleID  uint      `gorm:"index;not null" json:"vehicle_id"`
	Date       time.Time `gorm:"not null" json:"date"`
	Detail     string    `gorm:"size:500" json:"detail"`
	EmployeeID *uint     `gorm:"index" json:"employee_id,omitempty"`

	Vehicle  *Vehicle  `json:"vehicle,omitempty"`
	Employee *Employee `json:"employee,omitempty"`
}
