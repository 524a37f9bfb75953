package service

import (
	"errors"
	"fmt"
	"time"

	"mecaflow/internal/domain"
	"mecaflow/internal/repository"
)

type InvoiceInput struct {
	ClientID  uint      `json:"client_id"`
	VehicleID uint      `json:"vehicle_id"`
	Date      time.Time `json:"date"`
	Total     float64   `json:"total"`
	Method    string    `json:"method"`
}

type PaymentInput struct {
	InvoiceID uint      `json:"invoice_id"`
	Date      time.Time `json:"date"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
}

// BillingService covers invoices and their payments.
type BillingService struct {
	invoices *repository.InvoiceRepository
	payments *repository.PaymentRepository
	clients  *repository.ClientRepository
	vehicles *repository.VehicleRepository
}

func NewBillingService(
	invoices *repository.InvoiceRepository,
	payments *repository.PaymentRepository,
	clients *repository.ClientRepository,
	vehicles *repository.VehicleRepository,
) *BillingService {
	return &BillingService{invoices: invoices, payments: payments, clients: clients, vehicles: vehicles}
}

func (s *BillingService) ListInvoices(caller domain.Caller) ([]domain.Invoice, error) {
	if caller.Role == domain.RoleClient {
		own, err := s.clients.FindByEmail(caller.Email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return []domain.Invoice{}, nil
			}
			return nil, fmt.Errorf("list invoices: %w", err)
		}
		return s.invoices.ListByClient(own.ID)
	}
	return s.invoices.List()
}

func (s *BillingService) GetInvoice(id uint) (*domain.Invoice, error) {
	return s.invoices.FindByID(id)
}

func (s *BillingService) CreateInvoice(input InvoiceInput) (*domain.Invoice, error) {
	if err := s.validateInvoice(input); err != nil {
		return nil, err
	}
	invoice := &domain.Invoice{
		ClientID:  input.ClientID,
		VehicleID: input.VehicleID,
		Date:      input.Date,
		Total:     input.Total,
		Method:    input.Method,
	}
	if err := s.invoices.Create(invoice); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return s.invoices.FindByID(invoice.ID)
}

func (s *BillingService) UpdateInvoice(id uint, input InvoiceInput) (*domain.Invoice, error) {
	if err := s.validateInvoice(input); err != nil {
		return nil, err
	}
	invoice := &domain.Invoice{
		ID:        id,
		ClientID:  input.ClientID,
		VehicleID: input.VehicleID,
		Date:      input.Date,
		Total:     input.Total,
		Method:    input.Method,
	}
	if err := s.invoices.Update(invoice); err != nil {
		return nil, err
	}
	return s.invoices.FindByID(id)
}

func (s *BillingService) DeleteInvoice(id uint) error {
	return s.invoices.Delete(id)
}

func (s *BillingService) ListPayments() ([]domain.Payment, error) {
	return s.payments.List()
}

func (s *BillingService) GetPayment(id uint) (*domain.Payment, error) {
	return s.payments.FindByID(id)
}

func (s *BillingService) CreatePayment(input PaymentInput) (*domain.Payment, error) {
	if err := s.validatePayment(input); err != nil {
		return nil, err
	}
	payment := &domain.Payment{
		InvoiceID: input.InvoiceID,
		Date:      input.Date,
		Amount:    input.Amount,
		Method:    input.Method,
	}
	if err := s.payments.Create(payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return payment, nil
}

func (s *BillingService) UpdatePayment(id uint, input PaymentInput) (*domain.Payment, error) {
	if err := s.validatePayment(input); err != nil {
		return nil, err
	}
	payment := &domain.Payment{
		ID:        id,
		InvoiceID: input.InvoiceID,
		Date:      input.Date,
		Amount:    input.Amount,
		Method:    input.Method,
	}
	if err := s.payments.Update(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *BillingService) DeletePayment(id uint) error {
	return s.payments.Delete(id)
}

func (s *BillingService) validateInvoice(input InvoiceInput) error {
	if input.Total < 0 {
		return fieldError("total", "el total no puede ser negativo")
	}
	if input.Date.IsZero() {
		return fieldError("date", "la fecha es obligatoria")
	}
	if !domain.ValidPaymentMethod(input.Method) {
		return fieldError("method", "el método de pago no es válido")
	}
	if _, err := s.clients.FindByID(input.ClientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fieldError("client_id", "el cliente no existe")
		}
		return fmt.Errorf("validate invoice: %w", err)
	}
	vehicle, err := s.vehicles.FindByID(input.VehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fieldError("vehicle_id", "el vehículo no existe")
		}
		return fmt.Errorf("validate invoice: %w", err)
	}
	if vehicle.ClientID != input.ClientID {
		return fieldError("vehicle_id", "el vehículo no pertenece al cliente")
	}
	return nil
}

func (s *BillingService) validatePayment(input PaymentInput) error {
	if input.Amount <= 0 {
		return fieldError("amount", "el monto debe ser mayor que cero")
	}
	if input.Date.IsZero() {
		return fieldError("date", "la fecha es obligatoria")
	}
	if !domain.ValidPaymentMethod(input.Method) {
		return fieldError("method", "el método de pago no es válido")
	}
	if _, err := s.invoices.FindByID(input.InvoiceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fieldError("invoice_id", "la factura no existe")
		}
		return fmt.Errorf("validate payment: %w", err)
	}
	return nil
}
