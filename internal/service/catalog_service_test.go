package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tennistrivia/internal/cache"
	"tennistrivia/internal/errors"
	"tennistrivia/internal/model"
	"tennistrivia/internal/repository"
)

func newCatalogService(t *testing.T) (CatalogService, catalogFixture, *miniredis.Miniredis, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	fixture := seedCatalog(t, db)

	mr := miniredis.RunT(t)
	svc := NewCatalogService(
		repository.NewTournamentRepository(db),
		repository.NewPlayerRepository(db),
		repository.NewMatchRepository(db),
		cache.New(mr.Addr(), "", 0),
	)
	return svc, fixture, mr, db
}

func TestCatalogService_ListTournamentsFilter(t *testing.T) {
	ctx := context.Background()
	svc, f, _, _ := newCatalogService(t)

	all, err := svc.ListTournaments(ctx, nil, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	grandSlam := true
	slams, err := svc.ListTournaments(ctx, &grandSlam, 20, 0)
	require.NoError(t, err)
	require.Len(t, slams, 1)
	assert.Equal(t, f.Wimbledon.ID, slams[0].ID)

	grandSlam = false
	others, err := svc.ListTournaments(ctx, &grandSlam, 20, 0)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, f.Rotterdam.ID, others[0].ID)
}

func TestCatalogService_ListPlayersSearch(t *testing.T) {
	ctx := context.Background()
	svc, f, _, _ := newCatalogService(t)

	players, err := svc.ListPlayers(ctx, "FEDER", 20, 0)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, f.Federer.ID, players[0].ID)

	none, err := svc.ListPlayers(ctx, "djokovic", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCatalogService_ListMatchesFilters(t *testing.T) {
	ctx := context.Background()
	svc, f, _, _ := newCatalogService(t)

	bestOf := 5
	matches, err := svc.ListMatches(ctx, repository.MatchFilter{BestOf: &bestOf}, 20, 0)
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	isFinal := true
	year := 2018
	matches, err = svc.ListMatches(ctx, repository.MatchFilter{Year: &year, IsFinal: &isFinal}, 20, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, f.BestOf3.ID, matches[0].ID)
	// Relations are expanded on list.
	assert.Equal(t, "Rotterdam Open", matches[0].Tournament.Name)
	assert.Equal(t, "Roger Federer", matches[0].Player1.Name)

	matches, err = svc.ListMatches(ctx, repository.MatchFilter{TournamentID: &f.Wimbledon.ID, Category: model.CategoryMenSingles}, 20, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, f.BestOf5.ID, matches[0].ID)
}

func TestCatalogService_GetTournamentCached(t *testing.T) {
	ctx := context.Background()
	svc, f, mr, db := newCatalogService(t)

	got, err := svc.GetTournament(ctx, f.Wimbledon.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wimbledon", got.Name)
	assert.True(t, mr.Exists("tournament:"+f.Wimbledon.ID.String()))

	// Second read is served from the cache, not the database.
	require.NoError(t, db.Delete(&model.Match{}, "tournament_id = ?", f.Wimbledon.ID).Error)
	require.NoError(t, db.Delete(&model.Tournament{}, "id = ?", f.Wimbledon.ID).Error)
	cached, err := svc.GetTournament(ctx, f.Wimbledon.ID)
	require.NoError(t, err)
	assert.Equal(t, f.Wimbledon.ID, cached.ID)

	// Once the cached copy expires the miss surfaces.
	mr.FlushAll()
	_, err = svc.GetTournament(ctx, f.Wimbledon.ID)
	var httpErr *errors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.StatusCode)
}

func TestCatalogService_CorruptCacheEntryFallsThrough(t *testing.T) {
	ctx := context.Background()
	svc, f, mr, _ := newCatalogService(t)

	require.NoError(t, mr.Set("player:"+f.Federer.ID.String(), "{not json"))

	player, err := svc.GetPlayer(ctx, f.Federer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Roger Federer", player.Name)
}

func TestCatalogService_GetPlayerAndMatchNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newCatalogService(t)

	_, err := svc.GetPlayer(ctx, uuid.New())
	var httpErr *errors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.StatusCode)

	_, err = svc.GetMatch(ctx, uuid.New())
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.StatusCode)
}

func TestCatalogService_GetMatchExpanded(t *testing.T) {
	ctx := context.Background()
	svc, f, mr, _ := newCatalogService(t)

	match, err := svc.GetMatch(ctx, f.BestOf5.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wimbledon", match.Tournament.Name)
	assert.Equal(t, "Rafael Nadal", match.Player2.Name)
	assert.True(t, mr.Exists("match:"+f.BestOf5.ID.String()))
}

func TestCatalogService_MatchesByPlayer(t *testing.T) {
	ctx := context.Background()
	svc, f, _, db := newCatalogService(t)

	matches, err := svc.ListMatchesByPlayer(ctx, f.Nadal.ID)
	require.NoError(t, err)
	assert.Len(t, matches, 4)
	// Newest year first.
	assert.Equal(t, 2019, matches[0].Year)

	// A player with no matches reads as not found on the id route.
	_, err = svc.ListMatchesByPlayer(ctx, uuid.New())
	var httpErr *errors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.StatusCode)

	// The slug route distinguishes a missing player from an empty record.
	idle := model.Player{Name: "Gael Monfils", Slug: "gael-monfils", CountryCode: "FRA"}
	require.NoError(t, db.Create(&idle).Error)

	empty, err := svc.ListMatchesByPlayerSlug(ctx, "gael-monfils")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = svc.ListMatchesByPlayerSlug(ctx, "no-such-player")
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.StatusCode)
}
