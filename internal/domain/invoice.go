package domain

import "time"

// PaymentMethods is the closed set accepted on invoices and payments.
var PaymentMethods = []string{"Efectivo", "Tarjeta", "Transferencia", "Sinpe"}

func ValidPaymentMethod(m string) bool {
	for _, v := range PaymentMethods {
		if v == m {
			return true
		}
	}
	return false
}

type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClientID  uint      `gorm:"index;not null" json:"client_id"`
	VehicleID uint      `gorm:"index;not null" json:"vehicle_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	Total     float64   `gorm:"not null" json:"total"`
	Method    string    `gorm:"size:20" json:"method"`

	Client   *Client   `json:"client,omitempty"`
	Vehicle  *Vehicle  `json:"vehicle,omitempty"`
	Payments []Payment `json:"payments,omitempty"`
}

type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	InvoiceID uint      `gorm:"index;not null" json:"invoice_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Method    string    `gorm:"size:50" json:"method"`

	Invoice *Invoice `json:"invoice,omitempty"`
}
