package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tennistrivia/internal/service"
)

// PicksHandler serves the authenticated /me/picks endpoints.
type PicksHandler struct {
	picks service.PicksService
}

// NewPicksHandler creates a new picks handler.
func NewPicksHandler(picks service.PicksService) *PicksHandler {
	return &PicksHandler{picks: picks}
}

// Get handles GET /me/picks. data is null when the user has never set picks.
func (h *PicksHandler) Get(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	picks, err := h.picks.Get(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	if picks == nil {
		return c.JSON(http.StatusOK, echo.Map{"data": nil})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": picks})
}

// Set handles PUT /me/picks with tri-state patch semantics per slot.
func (h *PicksHandler) Set(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	var update service.PicksUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	picks, err := h.picks.Set(c.Request().Context(), user.ID, update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": picks})
}
