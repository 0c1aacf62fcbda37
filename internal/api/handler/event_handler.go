package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/volunteerhub/volunteerhub-api/internal/api/metrics"
	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
	"github.com/volunteerhub/volunteerhub-api/internal/core/ports"
)

type EventHandler struct {
	eventService ports.EventService
}

func NewEventHandler(eventService ports.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create proposes a new event. It enters the review queue as pending.
//
// @Summary      Propose a new event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      201   {object}  ports.EventView
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.eventService.Create(c.Request().Context(), ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		Category:    req.Category,
		Image:       req.Image,
		Capacity:    req.Capacity,
	}, subject)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, view)
}

// List returns a page of events. Anonymous and regular callers see only
// approved events; reviewers and admins see every status.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        keyword  query     string  false  "Search in title and description"
// @Param        page     query     int     false  "Page number (1-based)"
// @Param        limit    query     int     false  "Page size"
// @Success      200      {object}  ports.ListEventsResult
// @Router       /v1/events [get]
func (h *EventHandler) List(c echo.Context) error {
	authorities := ctxAuthorities(c)

	result, err := h.eventService.List(c.Request().Context(), ports.ListEventsInput{
		AdminView: authorities.HasAny(domain.PermApproveEvent, domain.RoleTag(domain.RoleAdmin)),
		Keyword:   c.QueryParam("keyword"),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// ListMine returns all events created by the caller, regardless of status.
//
// @Summary      List my events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.EventView
// @Router       /v1/events/mine [get]
func (h *EventHandler) ListMine(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	views, err := h.eventService.ListMine(c.Request().Context(), subject)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, views)
}

// Get returns a single event by ID.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  ports.EventView
// @Failure      404  {object}  map[string]string
// @Router       /v1/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	view, err := h.eventService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Update edits an event. Any content edit sends the event back to the
// review queue.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Event ID"
// @Param        body  body      updateEventRequest  true  "Fields to change"
// @Success      200   {object}  ports.EventView
// @Failure      404   {object}  map[string]string
// @Router       /v1/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req updateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := h.eventService.Update(c.Request().Context(), c.Param("id"), ports.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		Category:    req.Category,
		Image:       req.Image,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}

// Approve decides a pending event.
//
// @Summary      Approve or reject a pending event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Event ID"
// @Param        body  body      approveEventRequest  true  "Review decision"
// @Success      200   {object}  ports.EventView
// @Failure      422   {object}  map[string]string
// @Router       /v1/events/{id}/approval [post]
func (h *EventHandler) Approve(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req approveEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.eventService.Approve(c.Request().Context(), c.Param("id"), subject, domain.EventStatus(req.Decision))
	if err != nil {
		return err
	}
	metrics.EventReviewsTotal.WithLabelValues(req.Decision).Inc()

	return c.JSON(http.StatusOK, view)
}

// Delete removes an event.
//
// @Summary      Delete an event
// @Tags         events
// @Security     BearerAuth
// @Param        id  path  string  true  "Event ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.eventService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// queryInt parses a non-negative integer query parameter, zero on absence
// or garbage. Services apply their own defaults and caps.
func queryInt(c echo.Context, name string) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
