package handler

import (
	"net/http"

	"mecaflow/internal/http/middleware"
	"mecaflow/internal/http/response"
	"mecaflow/internal/service"
)

// BillingHandler serves both the invoice and the payment routes.
type BillingHandler struct {
	billing *service.BillingService
}

func NewBillingHandler(billing *service.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

func (h *BillingHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CallerFromContext(r.Context())
	invoices, err := h.billing.ListInvoices(caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, invoices)
}

func (h *BillingHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "el identificador no es válido", nil)
		return
	}
	invoice, err := h.billing.GetInvoice(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, invoice)
}

func (h *BillingHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var input service.InvoiceInput
	if !decodeBody(w, r, &input) {
		return
	}
	invoice, err := h.billing.CreateInvoice(input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, invoice)
}

func (h *BillingHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "el identificador no es válido", nil)
		return
	}
	var input service.InvoiceInput
	if !decodeBody(w, r, &input) {
		return
	}
	invoice, err := h.billing.UpdateInvoice(id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, invoice)
}

func (h *BillingHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "el identificador no es válido", nil)
		return
	}
	if err := h.billing.DeleteInvoice(id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *BillingHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.billing.ListPayments()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, payments)
}

func (h *BillingHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "el identificador no es válido", nil)
		return
	}
	payment, err := h.billing.GetPayment(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, payment)
}

func (h *BillingHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var input service.PaymentInput
	if !decodeBody(w, r, &input) {
		return
	}
	payment, err := h.billing.CreatePayment(input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, payment)
}

func (h *BillingHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "el identificador no es válido", nil)
		return
	}
	var input service.PaymentInput
	if !decodeBody(w, r, &input) {
		return
	}
	payment, err := h.billing.UpdatePayment(id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, payment)
}

func (h *BillingHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "el identificador no es válido", nil)
		return
	}
	if err := h.billing.DeletePayment(id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}
