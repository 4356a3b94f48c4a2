package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tennistrivia/internal/cache"
	"tennistrivia/internal/errors"
	"tennistrivia/internal/model"
	"tennistrivia/internal/repository"
)

// Catalog entities are immutable reference data, so cached copies never go
// stale within the TTL.
const catalogCacheTTL = 10 * time.Minute

// CatalogService exposes read-only queries over tournaments, players and
// matches.
type CatalogService interface {
	ListTournaments(ctx context.Context, isGrandSlam *bool, limit, offset int) ([]model.Tournament, error)
	GetTournament(ctx context.Context, id uuid.UUID) (*model.Tournament, error)

	ListPlayers(ctx context.Context, search string, limit, offset int) ([]model.Player, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*model.Player, error)

	ListMatches(ctx context.Context, filter repository.MatchFilter, limit, offset int) ([]model.Match, error)
	GetMatch(ctx context.Context, id uuid.UUID) (*model.Match, error)
	ListMatchesByPlayer(ctx context.Context, playerID uuid.UUID) ([]model.Match, error)
	ListMatchesByPlayerSlug(ctx context.Context, slug string) ([]model.Match, error)
}

type catalogService struct {
	tournamentRepo repository.TournamentRepository
	playerRepo     repository.PlayerRepository
	matchRepo      repository.MatchRepository
	cache          *cache.Client
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(tournamentRepo repository.TournamentRepository, playerRepo repository.PlayerRepository, matchRepo repository.MatchRepository, cache *cache.Client) CatalogService {
	return &catalogService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
		cache:          cache,
	}
}

func (s *catalogService) ListTournaments(ctx context.Context, isGrandSlam *bool, limit, offset int) ([]model.Tournament, error) {
	return s.tournamentRepo.List(ctx, isGrandSlam, limit, offset)
}

func (s *catalogService) GetTournament(ctx context.Context, id uuid.UUID) (*model.Tournament, error) {
	key := "tournament:" + id.String()
	var cached model.Tournament
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	tournament, err := s.tournamentRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("Tournament not found")
		}
		return nil, fmt.Errorf("load tournament: %w", err)
	}

	s.cache.PutJSON(ctx, key, tournament, catalogCacheTTL)
	return tournament, nil
}

func (s *catalogService) ListPlayers(ctx context.Context, search string, limit, offset int) ([]model.Player, error) {
	return s.playerRepo.List(ctx, search, limit, offset)
}

func (s *catalogService) GetPlayer(ctx context.Context, id uuid.UUID) (*model.Player, error) {
	key := "player:" + id.String()
	var cached model.Player
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	player, err := s.playerRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("Player not found")
		}
		return nil, fmt.Errorf("load player: %w", err)
	}

	s.cache.PutJSON(ctx, key, player, catalogCacheTTL)
	return player, nil
}

func (s *catalogService) ListMatches(ctx context.Context, filter repository.MatchFilter, limit, offset int) ([]model.Match, error) {
	return s.matchRepo.List(ctx, filter, limit, offset)
}

func (s *catalogService) GetMatch(ctx context.Context, id uuid.UUID) (*model.Match, error) {
	key := "match:" + id.String()
	var cached model.Match
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	match, err := s.matchRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("Match not found")
		}
		return nil, fmt.Errorf("load match: %w", err)
	}

	s.cache.PutJSON(ctx, key, match, catalogCacheTTL)
	return match, nil
}

// ListMatchesByPlayer returns a player's matches; no matches is a 404, which
// doubles as the existence check for the player id.
func (s *catalogService) ListMatchesByPlayer(ctx context.Context, playerID uuid.UUID) ([]model.Match, error) {
	matches, err := s.matchRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list matches by player: %w", err)
	}
	if len(matches) == 0 {
		return nil, errors.NotFound("No matches found for this player")
	}
	return matches, nil
}

// ListMatchesByPlayerSlug resolves the player first, so an unknown slug is a
// 404 while a known player with no matches yields an empty list.
func (s *catalogService) ListMatchesByPlayerSlug(ctx context.Context, slug string) ([]model.Match, error) {
	player, err := s.playerRepo.FindBySlug(ctx, slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("Player not found")
		}
		return nil, fmt.Errorf("load player by slug: %w", err)
	}
	matches, err := s.matchRepo.ListByPlayer(ctx, player.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches by player: %w", err)
	}
	return matches, nil
}
