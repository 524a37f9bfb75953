package handler

import (
	"net/http"

	"mecaflow/internal/http/middleware"
	"mecaflow/internal/http/response"
	"mecaflow/internal/service"
)

type ChatHandler struct {
	assistant *service.AssistantService
}

func NewChatHandler(assistant *service.AssistantService) *ChatHandler {
	return &ChatHandler{assistant: assistant}
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var input chatRequest
	if !decodeBody(w, r, &input) {
		return
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	reply := h.assistant.Reply(r.Context(), sessionID, input.Message)
	response.JSON(w, r, http.StatusOK, reply)
}

func (h *ChatHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.assistant.Reset(r.Context(), middleware.SessionIDFromContext(r.Context()))
	response.JSON(w, r, http.StatusOK, map[string]string{"status": "reset"})
}
