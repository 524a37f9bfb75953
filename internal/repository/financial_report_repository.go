package repository

import (
	"errors"
	"fmt"
	"time"

	"mecaflow/internal/domain"

	"gorm.io/gorm"
)

type FinancialReportRepository struct {
	db *gorm.DB
}

func NewFinancialReportRepository(db *gorm.DB) *FinancialReportRepository {
	return &FinancialReportRepository{db: db}
}

func (r *FinancialReportRepository) ListRange(from, to time.Time) ([]domain.FinancialReport, error) {
	var reports []domain.FinancialReport
	err := r.db.Where("date >= ? AND date <= ?", from, to).
		Order("date DESC").Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("list financial reports: %w", err)
	}
	return reports, nil
}

func (r *FinancialReportRepository) FindByID(id uint) (*domain.FinancialReport, error) {
	var report domain.FinancialReport
	err := r.db.First(&report, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find financial report: %w", err)
	}
	return &report, nil
}

// Summarize aggregates totals and the balance over a date range in one
// query; the rows themselves are for the export collaborators.
func (r *FinancialReportRepository) Summarize(from, to time.Time) (*domain.FinancialSummary, error) {
	var agg struct {
		TotalIncome   float64
		TotalExpenses float64
		RowCount      int64
	}
	err := r.db.Model(&domain.FinancialReport{}).
		Select("COALESCE(SUM(total_income),0) AS total_income, COALESCE(SUM(total_expenses),0) AS total_expenses, COUNT(*) AS row_count").
		Where("date >= ? AND date <= ?", from, to).
		Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("summarize financial reports: %w", err)
	}
	return &domain.FinancialSummary{
		From:          from,
		To:            to,
		TotalIncome:   agg.TotalIncome,
		TotalExpenses: agg.TotalExpenses,
		Balance:       agg.TotalIncome - agg.TotalExpenses,
		Rows:          int(agg.RowCount),
	}, nil
}

func (r *FinancialReportRepository) Create(report *domain.FinancialReport) error {
	if err := r.db.Create(report).Error; err != nil {
		return fmt.Errorf("create financial report: %w", err)
	}
	return nil
}

func (r *FinancialReportRepository) Update(report *domain.FinancialReport) error {
	res := r.db.Model(&domain.FinancialReport{}).Where("id = ?", report.ID).
		Select("Date", "TotalIncome", "TotalExpenses", "Notes").
		Updates(report)
	if res.Error != nil {
		return fmt.Errorf("update financial report: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FinancialReportRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.FinancialReport{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete financial report: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
