package doctor

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/occucare/clinic/internal/platform/auth"
	"github.com/occucare/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "physician"))
	g.POST("/doctor/notes", h.CreateNote)
	g.GET("/doctor/notes", h.ListNotes)
	g.POST("/doctor/erx", h.SendPrescription)
	g.POST("/doctor/secure-email", h.SendSecureEmail)
}

func (h *Handler) CreateNote(c echo.Context) error {
	var n ClinicalNote
	if err := c.Bind(&n); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if n.IntakeID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "intakeId is required")
	}
	if n.Body == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "body is required")
	}

	if err := h.svc.CreateNote(c.Request().Context(), &n); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"note":    n,
	})
}

func (h *Handler) ListNotes(c echo.Context) error {
	intakeID := uuid.Nil
	if param := c.QueryParam("intakeId"); param != "" {
		id, err := uuid.Parse(param)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid intakeId")
		}
		intakeID = id
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListNotes(c.Request().Context(), intakeID, pg.Limit, pg.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	if items == nil {
		items = []*ClinicalNote{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) SendPrescription(c echo.Context) error {
	var p Prescription
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if p.PatientID == uuid.Nil || p.Medication == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "patientId and medication are required")
	}

	conf, err := h.svc.SendPrescription(c.Request().Context(), &p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"confirmation": conf,
	})
}

func (h *Handler) SendSecureEmail(c echo.Context) error {
	var m SecureEmail
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if m.To == "" || m.Subject == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "to and subject are required")
	}

	conf, err := h.svc.SendSecureEmail(c.Request().Context(), &m)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"confirmation": conf,
	})
}
