package handler

import (
	"net/http"
	"time"

	"mecaflow/internal/http/response"
	"mecaflow/internal/service"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// rangeFromQuery parses from/to, defaulting to the current month.
func rangeFromQuery(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var err error
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = time.Parse("2006-01-02", raw); err != nil {
			return from, to, err
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = time.Parse("2006-01-02", raw); err != nil {
			return from, to, err
		}
	}
	return from, to, nil
}

func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := rangeFromQuery(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "las fechas deben tener formato AAAA-MM-DD", nil)
		return
	}
	reports, err := h.reports.ListRange(from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, reports)
}

func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	from, to, err := rangeFromQuery(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "las fechas deben tener formato AAAA-MM-DD", nil)
		return
	}
	summary, err := h.reports.Summary(from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, summary)
}

func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "el identificador no es válido", nil)
		return
	}
	report, err := h.reports.Get(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, report)
}

func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.ReportInput
	if !decodeBody(w, r, &input) {
		return
	}
	report, err := h.reports.Create(input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, report)
}

func (h *ReportHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "el identificador no es válido", nil)
		return
	}
	var input service.ReportInput
	if !decodeBody(w, r, &input) {
		return
	}
	report, err := h.reports.Update(id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, report)
}

func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "el identificador no es válido", nil)
		return
	}
	if err := h.reports.Delete(id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}
