package domain

import "time"

type FinancialReport struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Date          time.Time `gorm:"index;not null" json:"date"`
	TotalIncome   float64   `json:"total_income"`
	TotalExpenses float64   `json:"total_expenses"`
	Notes         string    `gorm:"size:500" json:"notes"`
}

// FinancialSummary aggregates report rows over a date range.
type FinancialSummary struct {
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	TotalIncome   float64   `json:"total_income"`
	TotalExpenses float64   `json:"total_expenses"`
	Balance       float64   `json:"balance"`
	Rows          int       `json:"rows"`
}
