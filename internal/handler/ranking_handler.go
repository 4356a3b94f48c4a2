package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tennistrivia/internal/model"
	"tennistrivia/internal/service"
)

// RankingHandler serves the authenticated /me/rankings endpoints.
type RankingHandler struct {
	rankings service.RankingService
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(rankings service.RankingService) *RankingHandler {
	return &RankingHandler{rankings: rankings}
}

// MatchIDsRequest carries an ordered list of match ids. An empty list clears
// the ranking.
type MatchIDsRequest struct {
	MatchIDs []uuid.UUID `json:"matchIds" validate:"required"`
}

// PlayerIDsRequest carries an ordered list of player ids.
type PlayerIDsRequest struct {
	PlayerIDs []uuid.UUID `json:"playerIds" validate:"required"`
}

// Get returns a GET handler for the given ranking kind.
func (h *RankingHandler) Get(kind model.RankingKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}
		ranking, err := h.rankings.Get(c.Request().Context(), user.ID, kind)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, rankingResponse(kind, ranking))
	}
}

// Set returns a PUT handler for the given ranking kind.
func (h *RankingHandler) Set(kind model.RankingKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}

		var ids []uuid.UUID
		if kind.RanksPlayers() {
			var req PlayerIDsRequest
			if err := c.Bind(&req); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
			}
			if err := c.Validate(&req); err != nil {
				return err
			}
			ids = req.PlayerIDs
		} else {
			var req MatchIDsRequest
			if err := c.Bind(&req); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
			}
			if err := c.Validate(&req); err != nil {
				return err
			}
			ids = req.MatchIDs
		}

		ranking, err := h.rankings.Set(c.Request().Context(), user.ID, kind, ids)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, rankingResponse(kind, ranking))
	}
}

func rankingResponse(kind model.RankingKind, ranking *service.Ranking) echo.Map {
	if kind.RanksPlayers() {
		return echo.Map{"data": ranking.Players}
	}
	return echo.Map{"data": ranking.Matches}
}
