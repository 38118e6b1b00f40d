package firecrawl

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// Handler exposes the scrape passthrough used to pull payer policy pages
// into the billing workspace.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/firecrawl/scrape", h.Scrape)
}

type scrapeRequest struct {
	URL string `json:"url"`
}

func (h *Handler) Scrape(c echo.Context) error {
	var req scrapeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	parsed, err := url.Parse(req.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url must be absolute")
	}

	result, err := h.client.Scrape(c.Request().Context(), req.URL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}
