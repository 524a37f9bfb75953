package repository

import (
	"errors"
	"fmt"

	"mecaflow/internal/domain"

	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) List() ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.Preload("Client").Preload("Vehicle").Preload("Payments").
		Order("date DESC").Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

func (r *InvoiceRepository) ListByClient(clientID uint) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.Preload("Vehicle").Preload("Payments").
		Where("client_id = ?", clientID).
		Order("date DESC").Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("list invoices by client: %w", err)
	}
	return invoices, nil
}

func (r *InvoiceRepository) FindByID(id uint) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.Preload("Client").Preload("Vehicle").Preload("Payments").First(&invoice, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return &invoice, nil
}

func (r *InvoiceRepository) Create(invoice *domain.Invoice) error {
	if err := r.db.Create(invoice).Error; err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) Update(invoice *domain.Invoice) error {
	res := r.db.Model(&domain.Invoice{}).Where("id = ?", invoice.ID).
		Select("ClientID", "VehicleID", "Date", "Total", "Method").
		Updates(invoice)
	if res.Error != nil {
		return fmt.Errorf("update invoice: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *InvoiceRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.Invoice{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete invoice: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) List() ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.Preload("Invoice").Order("date DESC").Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

func (r *PaymentRepository) FindByID(id uint) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.Preload("Invoice").First(&payment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return &payment, nil
}

func (r *PaymentRepository) Create(payment *domain.Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) Update(payment *domain.Payment) error {
	res := r.db.Model(&domain.Payment{}).Where("id = ?", payment.ID).
		Select("InvoiceID", "Date", "Amount", "Method").
		Updates(payment)
	if res.Error != nil {
		return fmt.Errorf("update payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PaymentRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.Payment{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
