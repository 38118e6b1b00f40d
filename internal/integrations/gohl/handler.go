package gohl

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler exposes thin passthrough routes over the CRM client. Each route
// forwards one call and reshapes the response; remote failures come back as
// 500 with the upstream message.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/ghl")
	g.GET("/contacts", h.SearchContacts)
	g.POST("/contacts", h.UpsertContact)
	g.GET("/users", h.ListUsers)
	g.GET("/calendars/events", h.ListCalendarEvents)
	g.POST("/calendars/events", h.CreateCalendarEvent)
}

func remoteFailure(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

func (h *Handler) SearchContacts(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	contacts, err := h.client.SearchContacts(c.Request().Context(), query, 20)
	if err != nil {
		return remoteFailure(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"contacts": contacts,
	})
}

func (h *Handler) UpsertContact(c echo.Context) error {
	var contact Contact
	if err := c.Bind(&contact); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if contact.FirstName == "" || contact.LastName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "firstName and lastName are required")
	}
	created, err := h.client.UpsertContact(c.Request().Context(), &contact)
	if err != nil {
		return remoteFailure(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"contact": created,
	})
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.client.ListUsers(c.Request().Context())
	if err != nil {
		return remoteFailure(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   users,
	})
}

func (h *Handler) ListCalendarEvents(c echo.Context) error {
	calendarID := c.QueryParam("calendarId")
	if calendarID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "calendarId is required")
	}
	start := time.Now()
	end := start.AddDate(0, 0, 7)
	if s := c.QueryParam("start"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid start, want RFC3339")
		}
		start = t
	}
	if e := c.QueryParam("end"); e != "" {
		t, err := time.Parse(time.RFC3339, e)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid end, want RFC3339")
		}
		end = t
	}

	events, err := h.client.ListCalendarEvents(c.Request().Context(), calendarID, start, end)
	if err != nil {
		return remoteFailure(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"events":  events,
	})
}

func (h *Handler) CreateCalendarEvent(c echo.Context) error {
	var ev CalendarEvent
	if err := c.Bind(&ev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if ev.CalendarID == "" || ev.StartTime == "" || ev.EndTime == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "calendarId, startTime and endTime are required")
	}
	created, err := h.client.CreateCalendarEvent(c.Request().Context(), &ev)
	if err != nil {
		return remoteFailure(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"event":   created,
	})
}
