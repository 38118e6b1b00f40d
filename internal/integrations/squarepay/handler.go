package squarepay

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler exposes passthrough routes over the Square client for back-office
// tooling that talks to Square directly rather than through billing.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/square")
	g.POST("/invoices", h.CreateInvoice)
	g.GET("/invoices/:id", h.GetInvoice)
	g.GET("/payments", h.ListPayments)
}

func remoteFailure(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

func (h *Handler) CreateInvoice(c echo.Context) error {
	var inv Invoice
	if err := c.Bind(&inv); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if inv.OrderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "order_id is required")
	}
	created, err := h.client.CreateInvoice(c.Request().Context(), &inv)
	if err != nil {
		return remoteFailure(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"invoice": created,
	})
}

func (h *Handler) GetInvoice(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	inv, err := h.client.GetInvoice(c.Request().Context(), id)
	if err != nil {
		return remoteFailure(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"invoice": inv,
	})
}

func (h *Handler) ListPayments(c echo.Context) error {
	begin := time.Now().AddDate(0, 0, -30)
	if b := c.QueryParam("begin"); b != "" {
		t, err := time.Parse("2006-01-02", b)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid begin date, want YYYY-MM-DD")
		}
		begin = t
	}
	payments, err := h.client.ListPayments(c.Request().Context(), begin)
	if err != nil {
		return remoteFailure(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"payments": payments,
	})
}
