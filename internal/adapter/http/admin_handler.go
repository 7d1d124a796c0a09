package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lendtracker/internal/usecase/admin"
)

type AdminHandler struct{ svc *admin.Service }

func NewAdminHandler(svc *admin.Service) *AdminHandler { return &AdminHandler{svc: svc} }

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) ToggleUserActive(c echo.Context) error {
	u, err := h.svc.ToggleActive(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) GrantAdmin(c echo.Context) error {
	u, err := h.svc.GrantAdmin(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) RevokeAdmin(c echo.Context) error {
	u, err := h.svc.RevokeAdmin(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) SystemStats(c echo.Context) error {
	stats, err := h.svc.SystemStats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
