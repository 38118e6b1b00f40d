package agent

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/voice-ai/chat", h.Chat)
}

type chatPayload struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (h *Handler) Chat(c echo.Context) error {
	var payload chatPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if payload.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	reply, sessionID, err := h.svc.Chat(c.Request().Context(), payload.SessionID, payload.Message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"session_id": sessionID,
		"reply":      reply,
	})
}
