package intake

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/occucare/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/intake", h.Create)
	api.GET("/intake", h.GetOrList)
	api.GET("/intake/:id", h.Get)
	api.GET("/intake/:id/pipeline", h.GetPipeline)
	api.PATCH("/intake/:id/pipeline", h.SetPipeline)
	api.PATCH("/intake/:id/status", h.SetStatus)
}

func (h *Handler) Create(c echo.Context) error {
	var sub Submission
	if err := c.Bind(&sub); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	if err := h.svc.Create(c.Request().Context(), &sub); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":   true,
		"intakeId":  sub.ID,
		"diagnoses": sub.AIDiagnoses,
		"message":   "Intake submitted successfully",
	})
}

// GetOrList serves both the ?id= single-record form and the paginated list
// form of GET /intake, mirroring the original query-parameter surface.
func (h *Handler) GetOrList(c echo.Context) error {
	if idParam := c.QueryParam("id"); idParam != "" {
		id, err := uuid.Parse(idParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
		}
		return h.getByID(c, id)
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	if items == nil {
		items = []*Submission{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"records": items,
		"total":   total,
		"limit":   pg.Limit,
		"offset":  pg.Offset,
	})
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return h.getByID(c, id)
}

func (h *Handler) getByID(c echo.Context, id uuid.UUID) error {
	sub, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "intake submission not found")
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusOK, sub)
}

func (h *Handler) GetPipeline(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sub, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "intake submission not found")
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"pipeline_status": sub.PipelineStatus,
	})
}

type setPipelineRequest struct {
	Pipeline *PipelineStatus `json:"pipeline"`
}

func (h *Handler) SetPipeline(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req setPipelineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Pipeline == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "pipeline is required")
	}
	sub, err := h.svc.SetPipeline(c.Request().Context(), id, req.Pipeline)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "intake submission not found")
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusOK, sub)
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) SetStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}
	sub, err := h.svc.SetStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "intake submission not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, sub)
}
