package rcm

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/occucare/clinic/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "billing"))
	g.POST("/rcm/eligibility", h.CheckEligibility)
	g.POST("/rcm/export", h.Export)
}

func (h *Handler) CheckEligibility(c echo.Context) error {
	var req EligibilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.svc.CheckEligibility(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"eligibility": resp,
	})
}

func (h *Handler) Export(c echo.Context) error {
	var req ExportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Table == "" || req.Format == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "table and format are required")
	}

	out, contentType, err := h.svc.Export(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, ErrBadRequest) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+req.Table+`.`+req.Format+`"`)
	return c.Blob(http.StatusOK, contentType, out)
}
