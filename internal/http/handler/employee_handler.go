package handler

import (
	"net/http"

	"mecaflow/internal/http/response"
	"mecaflow/internal/service"
)

type EmployeeHandler struct {
	employees *service.EmployeeService
}

func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("active") == "true" {
		list, err := h.employees.ListActive()
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, list)
		return
	}
	list, err := h.employees.List()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, list)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "el identificador no es válido", nil)
		return
	}
	employee, err := h.employees.Get(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, employee)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.EmployeeInput
	if !decodeBody(w, r, &input) {
		return
	}
	employee, err := h.employees.Create(input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, employee)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "el identificador no es válido", nil)
		return
	}
	var input service.EmployeeInput
	if !decodeBody(w, r, &input) {
		return
	}
	employee, err := h.employees.Update(id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "el identificador no es válido", nil)
		return
	}
	if err := h.employees.Delete(id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}
