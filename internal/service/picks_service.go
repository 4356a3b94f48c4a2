package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tennistrivia/internal/errors"
	"tennistrivia/internal/model"
	"tennistrivia/internal/repository"
)

// PicksUpdate is a tri-state patch over the four pick slots. An unset field
// leaves its slot untouched; an explicit null clears it.
type PicksUpdate struct {
	FavoritePlayerID          OptionalUUID `json:"favoritePlayerId"`
	FavoriteBestOf5MatchID    OptionalUUID `json:"favoriteBestOf5MatchId"`
	FavoriteBestOf3MatchID    OptionalUUID `json:"favoriteBestOf3MatchId"`
	BestGrandSlamFinalMatchID OptionalUUID `json:"bestGrandSlamFinalMatchId"`
}

// PicksService manages the per-user singleton picks row.
type PicksService interface {
	// Get returns the user's picks with references expanded, or nil if the
	// user has never set any (no implicit row creation on read).
	Get(ctx context.Context, userID uuid.UUID) (*model.UserPicks, error)
	Set(ctx context.Context, userID uuid.UUID, update PicksUpdate) (*model.UserPicks, error)
}

type picksService struct {
	picksRepo  repository.PicksRepository
	playerRepo repository.PlayerRepository
	matchRepo  repository.MatchRepository
}

// NewPicksService creates a new picks service.
func NewPicksService(picksRepo repository.PicksRepository, playerRepo repository.PlayerRepository, matchRepo repository.MatchRepository) PicksService {
	return &picksService{
		picksRepo:  picksRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
	}
}

func (s *picksService) Get(ctx context.Context, userID uuid.UUID) (*model.UserPicks, error) {
	picks, err := s.picksRepo.FindByUser(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("load picks: %w", err)
	}
	return picks, nil
}

func (s *picksService) Set(ctx context.Context, userID uuid.UUID, update PicksUpdate) (*model.UserPicks, error) {
	values := map[string]interface{}{}

	if update.FavoritePlayerID.Set {
		if update.FavoritePlayerID.Value != nil {
			if _, err := s.playerRepo.FindByID(ctx, *update.FavoritePlayerID.Value); err != nil {
				if err == gorm.ErrRecordNotFound {
					return nil, errors.BadRequest("Invalid favoritePlayerId", "INVALID_PICK")
				}
				return nil, fmt.Errorf("validate favoritePlayerId: %w", err)
			}
		}
		values["favorite_player_id"] = update.FavoritePlayerID.Value
	}

	if update.FavoriteBestOf5MatchID.Set {
		if update.FavoriteBestOf5MatchID.Value != nil {
			match, err := s.findMatch(ctx, *update.FavoriteBestOf5MatchID.Value, "favoriteBestOf5MatchId")
			if err != nil {
				return nil, err
			}
			if match.BestOf != 5 {
				return nil, errors.BadRequest("Invalid or not best-of-5 match for favoriteBestOf5MatchId", "INVALID_PICK")
			}
		}
		values["favorite_best_of5_match_id"] = update.FavoriteBestOf5MatchID.Value
	}

	if update.FavoriteBestOf3MatchID.Set {
		if update.FavoriteBestOf3MatchID.Value != nil {
			match, err := s.findMatch(ctx, *update.FavoriteBestOf3MatchID.Value, "favoriteBestOf3MatchId")
			if err != nil {
				return nil, err
			}
			if match.BestOf != 3 || match.Category != model.CategoryMenSingles {
				return nil, errors.BadRequest("Invalid or not best-of-3 men's singles match for favoriteBestOf3MatchId", "INVALID_PICK")
			}
		}
		values["favorite_best_of3_match_id"] = update.FavoriteBestOf3MatchID.Value
	}

	if update.BestGrandSlamFinalMatchID.Set {
		if update.BestGrandSlamFinalMatchID.Value != nil {
			match, err := s.findMatch(ctx, *update.BestGrandSlamFinalMatchID.Value, "bestGrandSlamFinalMatchId")
			if err != nil {
				return nil, err
			}
			if !match.IsFinal || !match.Tournament.IsGrandSlam {
				return nil, errors.BadRequest("Invalid or not Grand Slam final for bestGrandSlamFinalMatchId", "INVALID_PICK")
			}
		}
		values["best_grand_slam_final_match_id"] = update.BestGrandSlamFinalMatchID.Value
	}

	if err := s.picksRepo.Upsert(ctx, userID, values); err != nil {
		return nil, fmt.Errorf("upsert picks: %w", err)
	}
	return s.picksRepo.FindByUser(ctx, userID)
}

func (s *picksService) findMatch(ctx context.Context, id uuid.UUID, slot string) (*model.Match, error) {
	match, err := s.matchRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.BadRequest(fmt.Sprintf("Invalid match for %s", slot), "INVALID_PICK")
		}
		return nil, fmt.Errorf("validate %s: %w", slot, err)
	}
	return match, nil
}
