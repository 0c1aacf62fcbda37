package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/volunteerhub/volunteerhub-api/internal/core/ports"
)

type RoleHandler struct {
	roleService ports.RoleService
}

func NewRoleHandler(roleService ports.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// Create adds a new role to the registry.
//
// @Summary      Create a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoleRequest  true  "Role definition"
// @Success      201   {object}  domain.Role
// @Failure      409   {object}  map[string]string
// @Router       /v1/roles [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	role, err := h.roleService.Create(c.Request().Context(), ports.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, role)
}

// List returns every role and its permissions.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Role
// @Router       /v1/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.roleService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// Grant unions new permissions into a role. Holders pick them up on
// their next request, no re-login needed.
//
// @Summary      Grant permissions to a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string                   true  "Role name"
// @Param        body  body      grantPermissionsRequest  true  "Permissions to add"
// @Success      200   {object}  domain.Role
// @Failure      404   {object}  map[string]string
// @Router       /v1/roles/{name}/permissions [patch]
func (h *RoleHandler) Grant(c echo.Context) error {
	var req grantPermissionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	role, err := h.roleService.Grant(c.Request().Context(), c.Param("name"), req.Permissions)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, role)
}

// Delete removes a role. Users still holding the name simply resolve to
// nothing for it afterwards.
//
// @Summary      Delete a role
// @Tags         roles
// @Security     BearerAuth
// @Param        name  path  string  true  "Role name"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/roles/{name} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	if err := h.roleService.Delete(c.Request().Context(), c.Param("name")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
