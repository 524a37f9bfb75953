package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mecaflow/internal/http/response"
	"mecaflow/internal/repository"
	"mecaflow/internal/service"
)

func urlID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "el cuerpo de la solicitud no es válido", nil)
		return false
	}
	return true
}

// writeServiceError maps the service and repository error taxonomy onto the
// response surface.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(w, r, http.StatusUnprocessableEntity, "VALIDATION", verr.Message, verr)
	case errors.Is(err, repository.ErrNotFound):
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "el registro no existe", nil)
	case errors.Is(err, repository.ErrConflict):
		response.Error(w, r, http.StatusConflict, "CONFLICT", "el registro fue modificado por otra operación", nil)
	case errors.Is(err, service.ErrForbidden):
		response.Error(w, r, http.StatusForbidden, "FORBIDDEN", "no tienes acceso a este recurso", nil)
	default:
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "ocurrió un error inesperado", nil)
	}
}
