package service

import (
	"fmt"
	"time"

	"mecaflow/internal/domain"
	"mecaflow/internal/repository"
)

type ReportInput struct {
	Date          time.Time `json:"date"`
	TotalIncome   float64   `json:"total_income"`
	TotalExpenses float64   `json:"total_expenses"`
	Notes         string    `json:"notes"`
}

type ReportService struct {
	reports *repository.FinancialReportRepository
}

func NewReportService(reports *repository.FinancialReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

func (s *ReportService) ListRange(from, to time.Time) ([]domain.FinancialReport, error) {
	return s.reports.ListRange(from, to)
}

func (s *ReportService) Get(id uint) (*domain.FinancialReport, error) {
	return s.reports.FindByID(id)
}

// Summary aggregates income, expenses, and the resulting balance between
// two dates, inclusive.
func (s *ReportService) Summary(from, to time.Time) (*domain.FinancialSummary, error) {
	if to.Before(from) {
		return nil, fieldError("to", "el rango de fechas no es válido")
	}
	summary, err := s.reports.Summarize(from, to)
	if err != nil {
		return nil, fmt.Errorf("summarize reports: %w", err)
	}
	return summary, nil
}

func (s *ReportService) Create(input ReportInput) (*domain.FinancialReport, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	report := &domain.FinancialReport{
		Date:          input.Date,
		TotalIncome:   input.TotalIncome,
		TotalExpenses: input.TotalExpenses,
		Notes:         input.Notes,
	}
	if err := s.reports.Create(report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return report, nil
}

func (s *ReportService) Update(id uint, input ReportInput) (*domain.FinancialReport, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	report := &domain.FinancialReport{
		ID:            id,
		Date:          input.Date,
		TotalIncome:   input.TotalIncome,
		TotalExpenses: input.TotalExpenses,
		Notes:         input.Notes,
	}
	if err := s.reports.Update(report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) Delete(id uint) error {
	return s.reports.Delete(id)
}

func (s *ReportService) validate(input ReportInput) error {
	if input.Date.IsZero() {
		return fieldError("date", "la fecha es obligatoria")
	}
	if input.TotalIncome < 0 {
		return fieldError("total_income", "los ingresos no pueden ser negativos")
	}
	if input.TotalExpenses < 0 {
		return fieldError("total_expenses", "los gastos no pueden ser negativos")
	}
	if len(input.Notes) > 500 {
		return fieldError("notes", "las notas no pueden exceder 500 caracteres")
	}
	return nil
}
