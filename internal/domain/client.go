package domain

import "time"

type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone     string    `gorm:"size:20;not null" json:"phone"`
	Province  string    `gorm:"size:200;not null" json:"province"`
	CreatedAt time.Time `json:"created_at"`

	Vehicles []Vehicle `json:"vehicles,omitempty"`
	Invoices []Invoice `json:"invoices,omitempty"`
}
