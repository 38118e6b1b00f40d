package webhookevent

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/occucare/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the ingestion route on the root group (vendors post
// to /webhooks/:source without the API prefix) and the listing under the
// API group.
func (h *Handler) RegisterRoutes(root *echo.Group, api *echo.Group) {
	root.POST("/webhooks/:source", h.Ingest)
	api.GET("/webhook-events", h.List)
}

func (h *Handler) Ingest(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		payload = []byte(`{}`)
	}

	e := h.svc.Ingest(c.Request().Context(), c.Param("source"), payload)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"received": true,
		"outcome":  e.Outcome,
	})
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), c.QueryParam("source"), pg.Limit, pg.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	if items == nil {
		items = []*Event{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
