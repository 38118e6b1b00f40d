package osmind

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the manual EHR re-sync route used when the automatic sync
// on patient creation failed and staff want to retry by hand.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/osmind/patients/sync", h.SyncPatient)
}

func (h *Handler) SyncPatient(c echo.Context) error {
	var rec PatientRecord
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if rec.ExternalID == "" || rec.FirstName == "" || rec.LastName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "externalId, firstName and lastName are required")
	}

	result, err := h.client.SyncPatient(c.Request().Context(), &rec)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"result":  result,
	})
}
