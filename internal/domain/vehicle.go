package domain

import "time"

type Brand struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Name   string  `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Models []Model `json:"models,omitempty"`
}

type Model struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:50;not null" json:"name"`
	BrandID uint   `gorm:"index;not null" json:"brand_id"`
}

type Vehicle struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Plate     string    `gorm:"uniqueIndex;size:20;not null" json:"plate"`
	Year      *int      `json:"year,omitempty"`
	ClientID  uint      `gorm:"index;not null" json:"client_id"`
	BrandID   uint      `gorm:"not null" json:"brand_id"`
	ModelID   uint      `gorm:"not null" json:"model_id"`
	CreatedAt time.Time `json:"created_at"`

	Client *Client `json:"client,omitempty"`
	Brand  *Brand  `json:"brand,omitempty"`
	Model  *Model  `json:"model,omitempty"`

	Diagnostics []Diagnostic  `json:"diagnostics,omitempty"`
	Tasks       []VehicleTask `json:"tasks,omitempty"`
}
