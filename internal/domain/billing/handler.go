package billing

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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
	g := api.Group("", auth.RequireRole("admin", "billing"))
	g.POST("/invoices", h.CreateInvoice)
	g.GET("/invoices", h.ListInvoices)
	g.GET("/invoices/:id", h.GetInvoice)
	g.PATCH("/invoices/:id/status", h.SetInvoiceStatus)
	g.POST("/payments", h.RecordPayment)
	g.GET("/payments", h.ListPayments)
	g.GET("/remittances", h.ListRemittances)
}

func (h *Handler) CreateInvoice(c echo.Context) error {
	var inv Invoice
	if err := c.Bind(&inv); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if inv.PatientID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "patientId is required")
	}
	if inv.AmountCents <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amountCents must be positive")
	}

	if err := h.svc.CreateInvoice(c.Request().Context(), &inv); err != nil {
		// The local row may exist (push failure); the remote error is
		// reported either way.
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
			"invoice": inv,
		})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"invoice": inv,
	})
}

func (h *Handler) ListInvoices(c echo.Context) error {
	filter := InvoiceFilter{Status: c.QueryParam("status")}
	if from := c.QueryParam("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from date, want YYYY-MM-DD")
		}
		filter.From = t
	}
	if to := c.QueryParam("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to date, want YYYY-MM-DD")
		}
		filter.To = t.Add(24*time.Hour - time.Nanosecond)
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListInvoices(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	if items == nil {
		items = []*Invoice{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetInvoice(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	inv, err := h.svc.GetInvoice(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "invoice not found")
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusOK, inv)
}

type setInvoiceStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) SetInvoiceStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req setInvoiceStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	inv, err := h.svc.SetInvoiceStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "invoice not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) RecordPayment(c echo.Context) error {
	var p Payment
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if p.InvoiceID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invoiceId is required")
	}
	if p.AmountCents <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amountCents must be positive")
	}
	if p.ReceivedAt.IsZero() {
		p.ReceivedAt = time.Now().UTC()
	}

	if err := h.svc.RecordPayment(c.Request().Context(), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "invoice not found")
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"payment": p,
	})
}

func (h *Handler) ListPayments(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPayments(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	if items == nil {
		items = []*Payment{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListRemittances(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListRemittances(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	if items == nil {
		items = []*Remittance{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
