package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"mecaflow/internal/http/middleware"
	"mecaflow/internal/http/response"
	"mecaflow/internal/service"
)

type AttendanceHandler struct {
	attendance *service.AttendanceService
}

func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

type checkRequest struct {
	EmployeeID uint `json:"employee_id"`
}

func (h *AttendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var input checkRequest
	if !decodeBody(w, r, &input) {
		return
	}
	result, err := h.attendance.CheckIn(input.EmployeeID, time.Now())
	if err != nil {
		h.writeAttendanceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, result)
}

func (h *AttendanceHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	var input checkRequest
	if !decodeBody(w, r, &input) {
		return
	}
	result, err := h.attendance.CheckOut(input.EmployeeID, time.Now())
	if err != nil {
		h.writeAttendanceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, result)
}

// List returns the caller's records for a range, defaulting to the current
// month. Administrators may pass any employee_id.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "inicia sesión para continuar", nil)
		return
	}

	employeeID64, err := strconv.ParseUint(r.URL.Query().Get("employee_id"), 10, 64)
	if err != nil || employeeID64 == 0 {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "employee_id no es válido", nil)
		return
	}

	from, to := h.attendance.DefaultRange(time.Now())
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = time.Parse("2006-01-02", raw); err != nil {
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "from debe tener formato AAAA-MM-DD", nil)
			return
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = time.Parse("2006-01-02", raw); err != nil {
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "to debe tener formato AAAA-MM-DD", nil)
			return
		}
	}

	records, err := h.attendance.ListRange(caller, uint(employeeID64), from, to)
	if err != nil {
		h.writeAttendanceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, records)
}

// Today returns every record of the current civil day ordered by employee
// name, the staff check-in board.
func (h *AttendanceHandler) Today(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendance.TodayBoard(time.Now())
	if err != nil {
		h.writeAttendanceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, records)
}

// writeAttendanceError keeps state-machine violations user-facing: they are
// conflict answers with the stored time, never 500s.
func (h *AttendanceHandler) writeAttendanceError(w http.ResponseWriter, r *http.Request, err error) {
	var alreadyIn *service.AlreadyCheckedInError
	var alreadyOut *service.AlreadyCheckedOutError
	switch {
	case errors.As(err, &alreadyIn):
		response.Error(w, r, http.StatusConflict, "ALREADY_CHECKED_IN",
			"ya marcaste tu entrada a las "+alreadyIn.At.Format("15:04"), nil)
	case errors.As(err, &alreadyOut):
		response.Error(w, r, http.StatusConflict, "ALREADY_CHECKED_OUT",
			"ya marcaste tu salida a las "+alreadyOut.At.Format("15:04"), nil)
	case errors.Is(err, service.ErrNoOpenCheckIn):
		response.Error(w, r, http.StatusConflict, "NO_OPEN_CHECK_IN", "no has marcado tu entrada hoy", nil)
	case errors.Is(err, service.ErrCheckOutBeforeCheckIn):
		response.Error(w, r, http.StatusConflict, "CHECK_OUT_BEFORE_CHECK_IN", "la salida debe ser posterior a la entrada", nil)
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "el empleado no existe o está inactivo", nil)
	default:
		writeServiceError(w, r, err)
	}
}
