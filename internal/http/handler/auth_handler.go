package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"mecaflow/internal/http/middleware"
	"mecaflow/internal/http/response"
	"mecaflow/internal/security"
	"mecaflow/internal/service"
)

type AuthHandler struct {
	auth     *service.AuthService
	sessions *service.SessionStore
	cookies  *security.CookieManager
	logger   *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, sessions *service.SessionStore, cookies *security.CookieManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, cookies: cookies, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if !decodeBody(w, r, &input) {
		return
	}
	user, err := h.auth.Register(input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, map[string]any{
		"id":    user.ID,
		"email": user.Email,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginRequest
	if !decodeBody(w, r, &input) {
		return
	}
	caller, err := h.auth.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrNoRoleAssigned) {
			response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "correo o contraseña incorrectos", nil)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	sessionID, err := h.sessions.Create(r.Context(), caller)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "session create failed", slog.String("error", err.Error()))
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "no se pudo iniciar la sesión", nil)
		return
	}
	h.cookies.SetSessionCookie(w, sessionID, h.sessions.TTL())

	response.JSON(w, r, http.StatusOK, map[string]any{
		"name":  caller.Name,
		"email": caller.Email,
		"role":  caller.Role,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id := middleware.SessionIDFromContext(r.Context()); id != "" {
		if err := h.sessions.Destroy(r.Context(), id); err != nil {
			h.logger.WarnContext(r.Context(), "session destroy failed", slog.String("error", err.Error()))
		}
	}
	h.cookies.ClearSessionCookie(w)
	response.JSON(w, r, http.StatusOK, map[string]string{"status": "logged_out"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var input forgotPasswordRequest
	if !decodeBody(w, r, &input) {
		return
	}
	if err := h.auth.ForgotPassword(r.Context(), input.Email); err != nil {
		h.logger.ErrorContext(r.Context(), "forgot password failed", slog.String("error", err.Error()))
	}
	// Always the same answer, known email or not.
	response.JSON(w, r, http.StatusOK, map[string]string{
		"message": "si el correo existe, recibirás un enlace para restablecer tu contraseña",
	})
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var input resetPasswordRequest
	if !decodeBody(w, r, &input) {
		return
	}
	if err := h.auth.ResetPassword(input.Token, input.Password, input.ConfirmPassword); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			response.Error(w, r, http.StatusBadRequest, "INVALID_OR_EXPIRED_TOKEN", "el enlace ya no es válido, solicita uno nuevo", nil)
			return
		}
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]string{"message": "contraseña actualizada"})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	// The gate only routes authenticated sessions here.
	caller, _ := middleware.CallerFromContext(r.Context())
	profile, err := h.auth.Profile(caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, profile)
}

// Denied is the access-denied landing for browser navigation.
func (h *AuthHandler) Denied(w http.ResponseWriter, r *http.Request) {
	response.Error(w, r, http.StatusForbidden, "FORBIDDEN", "no tienes acceso a este módulo", nil)
}
