package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/volunteerhub/volunteerhub-api/internal/api/metrics"
	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
	"github.com/volunteerhub/volunteerhub-api/internal/core/ports"
)

type RegistrationHandler struct {
	registrationService ports.RegistrationService
}

func NewRegistrationHandler(registrationService ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// Create registers the caller for an event. Duplicate attempts and full
// events are rejected with 409.
//
// @Summary      Register for an event
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRegistrationRequest  true  "Target event"
// @Success      201   {object}  domain.Registration
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/registrations [post]
func (h *RegistrationHandler) Create(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req createRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	registration, err := h.registrationService.Register(c.Request().Context(), req.EventID, subject)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationResult(err)).Inc()
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("created").Inc()

	return c.JSON(http.StatusCreated, registration)
}

// Get returns a single registration.
//
// @Summary      Get a registration
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Registration ID"
// @Success      200  {object}  domain.Registration
// @Failure      404  {object}  map[string]string
// @Router       /v1/registrations/{id} [get]
func (h *RegistrationHandler) Get(c echo.Context) error {
	registration, err := h.registrationService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, registration)
}

// UpdateStatus transitions a registration. Only the parent event's
// creator may do this.
//
// @Summary      Update registration status
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Registration ID"
// @Param        body  body      updateRegistrationRequest  true  "New status"
// @Success      200   {object}  domain.Registration
// @Failure      403   {object}  map[string]string
// @Router       /v1/registrations/{id} [patch]
func (h *RegistrationHandler) UpdateStatus(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req updateRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	registration, err := h.registrationService.UpdateStatus(
		c.Request().Context(), c.Param("id"), domain.RegistrationStatus(req.Status), subject)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, registration)
}

// Delete withdraws a registration. The service checks ownership: the
// registrant, the event creator, or an admin may delete.
//
// @Summary      Delete a registration
// @Tags         registrations
// @Security     BearerAuth
// @Param        id  path  string  true  "Registration ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /v1/registrations/{id} [delete]
func (h *RegistrationHandler) Delete(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	if err := h.registrationService.Delete(c.Request().Context(), c.Param("id"), subject, ctxAuthorities(c)); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ListMine returns all of the caller's registrations.
//
// @Summary      List my registrations
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Registration
// @Router       /v1/registrations/mine [get]
func (h *RegistrationHandler) ListMine(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	registrations, err := h.registrationService.ListByUser(c.Request().Context(), subject)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, registrations)
}

// registrationResult buckets a registration failure for the attempts
// counter.
func registrationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "duplicate"
	case errors.Is(err, domain.ErrEventFull):
		return "full"
	default:
		return "error"
	}
}

// ListByEvent returns all registrations for an event.
//
// @Summary      List registrations for an event
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Event ID"
// @Success      200  {array}  domain.Registration
// @Router       /v1/events/{id}/registrations [get]
func (h *RegistrationHandler) ListByEvent(c echo.Context) error {
	registrations, err := h.registrationService.ListByEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, registrations)
}
