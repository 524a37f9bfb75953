package handler

import (
	"net/http"

	"mecaflow/internal/http/middleware"
	"mecaflow/internal/http/response"
	"mecaflow/internal/service"
)

type DiagnosticHandler struct {
	diagnostics *service.DiagnosticService
}

func NewDiagnosticHandler(diagnostics *service.DiagnosticService) *DiagnosticHandler {
	return &DiagnosticHandler{diagnostics: diagnostics}
}

func (h *DiagnosticHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CallerFromContext(r.Context())
	diagnostics, err := h.diagnostics.List(caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, diagnostics)
}

func (h *DiagnosticHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "el identificador no es válido", nil)
		return
	}
	diagnostic, err := h.diagnostics.Get(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, diagnostic)
}

func (h *DiagnosticHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.DiagnosticInput
	if !decodeBody(w, r, &input) {
		return
	}
	diagnostic, err := h.diagnostics.Create(input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, diagnostic)
}

func (h *DiagnosticHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "el identificador no es válido", nil)
		return
	}
	var input service.DiagnosticInput
	if !decodeBody(w, r, &input) {
		return
	}
	diagnostic, err := h.diagnostics.Update(id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, diagnostic)
}

func (h *DiagnosticHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "el identificador no es válido", nil)
		return
	}
	if err := h.diagnostics.Delete(id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}
