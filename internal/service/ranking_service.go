package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tennistrivia/internal/errors"
	"tennistrivia/internal/model"
	"tennistrivia/internal/repository"
)

// RankedMatch is one position of a match-kind ranking, entity expanded.
type RankedMatch struct {
	Position int         `json:"position"`
	Match    model.Match `json:"match"`
}

// RankedPlayer is one position of the players ranking, entity expanded.
type RankedPlayer struct {
	Position int          `json:"position"`
	Player   model.Player `json:"player"`
}

// Ranking is an ordered list of one kind, ready for serialization. Exactly
// one of Matches/Players is populated depending on the kind.
type Ranking struct {
	Matches []RankedMatch
	Players []RankedPlayer
}

// RankingService manages the four per-user top-N lists.
type RankingService interface {
	Get(ctx context.Context, userID uuid.UUID, kind model.RankingKind) (*Ranking, error)
	// Set validates and atomically replaces the user's list for the kind.
	// An empty input clears the list.
	Set(ctx context.Context, userID uuid.UUID, kind model.RankingKind, ids []uuid.UUID) (*Ranking, error)
}

type rankingService struct {
	rankingRepo repository.RankingRepository
	playerRepo  repository.PlayerRepository
	matchRepo   repository.MatchRepository
}

// NewRankingService creates a new ranking service.
func NewRankingService(rankingRepo repository.RankingRepository, playerRepo repository.PlayerRepository, matchRepo repository.MatchRepository) RankingService {
	return &rankingService{
		rankingRepo: rankingRepo,
		playerRepo:  playerRepo,
		matchRepo:   matchRepo,
	}
}

func (s *rankingService) Get(ctx context.Context, userID uuid.UUID, kind model.RankingKind) (*Ranking, error) {
	entries, err := s.rankingRepo.List(ctx, kind, userID)
	if err != nil {
		return nil, fmt.Errorf("list %s ranking: %w", kind, err)
	}
	return s.expand(ctx, kind, entries)
}

func (s *rankingService) Set(ctx context.Context, userID uuid.UUID, kind model.RankingKind, ids []uuid.UUID) (*Ranking, error) {
	if len(ids) > kind.MaxEntries() {
		return nil, errors.BadRequest(fmt.Sprintf("At most %d entries allowed", kind.MaxEntries()), "RANKING_TOO_LONG")
	}
	if err := s.checkDuplicates(ids); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, kind, ids); err != nil {
		return nil, err
	}
	if err := s.rankingRepo.Replace(ctx, kind, userID, ids); err != nil {
		return nil, fmt.Errorf("replace %s ranking: %w", kind, err)
	}
	return s.Get(ctx, userID, kind)
}

// checkDuplicates rejects repeated ids up front rather than inferring them
// from a validated-set size mismatch.
func (s *rankingService) checkDuplicates(ids []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return errors.BadRequest(fmt.Sprintf("Duplicate id: %s", id), "DUPLICATE_IDS")
		}
		seen[id] = struct{}{}
	}
	return nil
}

// validate checks that every id exists and satisfies the kind's predicate,
// naming the offenders on failure.
func (s *rankingService) validate(ctx context.Context, kind model.RankingKind, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	if kind.RanksPlayers() {
		players, err := s.playerRepo.FindByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("validate player ids: %w", err)
		}
		valid := make(map[uuid.UUID]struct{}, len(players))
		for _, p := range players {
			valid[p.ID] = struct{}{}
		}
		if missing := missingIDs(ids, valid); len(missing) > 0 {
			return errors.BadRequest("Invalid player IDs: "+joinIDs(missing), "INVALID_IDS")
		}
		return nil
	}

	matches, err := s.matchRepo.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("validate match ids: %w", err)
	}
	valid := make(map[uuid.UUID]struct{}, len(matches))
	for _, m := range matches {
		if matchesKind(kind, m) {
			valid[m.ID] = struct{}{}
		}
	}
	if missing := missingIDs(ids, valid); len(missing) > 0 {
		return errors.BadRequest(kindViolationMessage(kind)+": "+joinIDs(missing), "INVALID_IDS")
	}
	return nil
}

func matchesKind(kind model.RankingKind, m model.Match) bool {
	switch kind {
	case model.RankingBestOf5:
		return m.BestOf == 5
	case model.RankingBestOf3:
		return m.BestOf == 3 && m.Category == model.CategoryMenSingles
	case model.RankingGrandSlamFinals:
		return m.IsFinal && m.Tournament.IsGrandSlam
	}
	return false
}

func kindViolationMessage(kind model.RankingKind) string {
	switch kind {
	case model.RankingBestOf5:
		return "Invalid or not best-of-5 match IDs"
	case model.RankingBestOf3:
		return "Invalid or not best-of-3 men's singles match IDs"
	case model.RankingGrandSlamFinals:
		return "Invalid or not Grand Slam final match IDs"
	}
	return "Invalid IDs"
}

func (s *rankingService) expand(ctx context.Context, kind model.RankingKind, entries []model.RankingEntry) (*Ranking, error) {
	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.EntityID
	}

	if kind.RanksPlayers() {
		players, err := s.playerRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("expand players: %w", err)
		}
		byID := make(map[uuid.UUID]model.Player, len(players))
		for _, p := range players {
			byID[p.ID] = p
		}
		ranked := make([]RankedPlayer, 0, len(entries))
		for _, e := range entries {
			if p, ok := byID[e.EntityID]; ok {
				ranked = append(ranked, RankedPlayer{Position: e.Position, Player: p})
			}
		}
		return &Ranking{Players: ranked}, nil
	}

	matches, err := s.matchRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("expand matches: %w", err)
	}
	byID := make(map[uuid.UUID]model.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}
	ranked := make([]RankedMatch, 0, len(entries))
	for _, e := range entries {
		if m, ok := byID[e.EntityID]; ok {
			ranked = append(ranked, RankedMatch{Position: e.Position, Match: m})
		}
	}
	return &Ranking{Matches: ranked}, nil
}

func missingIDs(ids []uuid.UUID, valid map[uuid.UUID]struct{}) []uuid.UUID {
	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := valid[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
