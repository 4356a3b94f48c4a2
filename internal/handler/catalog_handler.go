package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tennistrivia/internal/repository"
	"tennistrivia/internal/service"
)

// CatalogHandler serves public read-only catalog endpoints.
type CatalogHandler struct {
	catalog service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListTournaments handles GET /tournaments.
func (h *CatalogHandler) ListTournaments(c echo.Context) error {
	limit, offset := pagination(c)
	var isGrandSlam *bool
	if v := c.QueryParam("isGrandSlam"); v != "" {
		flag := v == "true"
		isGrandSlam = &flag
	}
	tournaments, err := h.catalog.ListTournaments(c.Request().Context(), isGrandSlam, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": tournaments})
}

// GetTournament handles GET /tournaments/:id.
func (h *CatalogHandler) GetTournament(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	tournament, err := h.catalog.GetTournament(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tournament)
}

// ListPlayers handles GET /players with an optional case-insensitive
// substring search over name and slug.
func (h *CatalogHandler) ListPlayers(c echo.Context) error {
	limit, offset := pagination(c)
	players, err := h.catalog.ListPlayers(c.Request().Context(), c.QueryParam("search"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": players})
}

// GetPlayer handles GET /players/:id.
func (h *CatalogHandler) GetPlayer(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	player, err := h.catalog.GetPlayer(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, player)
}

// ListMatches handles GET /matches with entity filters.
func (h *CatalogHandler) ListMatches(c echo.Context) error {
	limit, offset := pagination(c)

	var filter repository.MatchFilter
	if v := c.QueryParam("tournamentId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid tournamentId")
		}
		filter.TournamentID = &id
	}
	if v := c.QueryParam("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
		}
		filter.Year = &year
	}
	if v := c.QueryParam("bestOf"); v != "" {
		bestOf, err := strconv.Atoi(v)
		if err != nil || (bestOf != 3 && bestOf != 5) {
			return echo.NewHTTPError(http.StatusBadRequest, "bestOf must be 3 or 5")
		}
		filter.BestOf = &bestOf
	}
	if v := c.QueryParam("isFinal"); v != "" {
		flag := v == "true"
		filter.IsFinal = &flag
	}
	filter.Category = c.QueryParam("category")

	matches, err := h.catalog.ListMatches(c.Request().Context(), filter, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": matches})
}

// GetMatch handles GET /matches/:id.
func (h *CatalogHandler) GetMatch(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	match, err := h.catalog.GetMatch(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, match)
}

// ListMatchesByPlayer handles GET /matches/player/:playerId.
func (h *CatalogHandler) ListMatchesByPlayer(c echo.Context) error {
	id, err := parseIDParam(c, "playerId")
	if err != nil {
		return err
	}
	matches, err := h.catalog.ListMatchesByPlayer(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(matches), "data": matches})
}

// ListMatchesByPlayerSlug handles GET /matches/player/slug/:slug.
func (h *CatalogHandler) ListMatchesByPlayerSlug(c echo.Context) error {
	matches, err := h.catalog.ListMatchesByPlayerSlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(matches), "data": matches})
}

func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
