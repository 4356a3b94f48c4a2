package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tennistrivia/internal/model"
)

// setupTestDB opens an in-memory sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Tournament{},
		&model.Player{},
		&model.Match{},
		&model.UserPicks{},
		&model.Forum{},
		&model.Thread{},
		&model.Post{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	for _, kind := range model.RankingKinds {
		if err := db.Table(kind.TableName()).AutoMigrate(&model.RankingEntry{}); err != nil {
			t.Fatalf("failed to migrate %s: %v", kind.TableName(), err)
		}
	}
	return db
}

type catalogFixture struct {
	Wimbledon model.Tournament
	Rotterdam model.Tournament
	Federer   model.Player
	Nadal     model.Player
	BestOf5   model.Match // Grand Slam final, best of 5
	BestOf3   model.Match // men's singles, best of 3
	Doubles3  model.Match // best of 3 but not men's singles
	NonSlamSF model.Match // best of 5, not a final
}

// seedCatalog inserts a small catalog covering every ranking and picks
// predicate.
func seedCatalog(t *testing.T, db *gorm.DB) catalogFixture {
	t.Helper()

	f := catalogFixture{
		Wimbledon: model.Tournament{Name: "Wimbledon", Slug: "wimbledon", IsGrandSlam: true},
		Rotterdam: model.Tournament{Name: "Rotterdam Open", Slug: "rotterdam-open"},
		Federer:   model.Player{Name: "Roger Federer", Slug: "roger-federer", CountryCode: "SUI"},
		Nadal:     model.Player{Name: "Rafael Nadal", Slug: "rafael-nadal", CountryCode: "ESP"},
	}
	for _, rec := range []interface{}{&f.Wimbledon, &f.Rotterdam, &f.Federer, &f.Nadal} {
		if err := db.Create(rec).Error; err != nil {
			t.Fatalf("seed catalog: %v", err)
		}
	}

	f.BestOf5 = model.Match{
		TournamentID: f.Wimbledon.ID,
		Year:         2008,
		Round:        "F",
		IsFinal:      true,
		BestOf:       5,
		Category:     model.CategoryMenSingles,
		Player1ID:    f.Federer.ID,
		Player2ID:    f.Nadal.ID,
		Score:        "6-4 6-4 6-7 6-7 9-7",
		Title:        "Wimbledon 2008 Final",
	}
	f.BestOf3 = model.Match{
		TournamentID: f.Rotterdam.ID,
		Year:         2018,
		Round:        "F",
		IsFinal:      true,
		BestOf:       3,
		Category:     model.CategoryMenSingles,
		Player1ID:    f.Federer.ID,
		Player2ID:    f.Nadal.ID,
		Score:        "6-2 6-2",
		Title:        "Rotterdam 2018 Final",
	}
	f.Doubles3 = model.Match{
		TournamentID: f.Rotterdam.ID,
		Year:         2018,
		Round:        "SF",
		BestOf:       3,
		Category:     "men_doubles",
		Player1ID:    f.Federer.ID,
		Player2ID:    f.Nadal.ID,
		Score:        "7-5 7-5",
		Title:        "Rotterdam 2018 Doubles SF",
	}
	f.NonSlamSF = model.Match{
		TournamentID: f.Rotterdam.ID,
		Year:         2019,
		Round:        "SF",
		BestOf:       5,
		Category:     model.CategoryMenSingles,
		Player1ID:    f.Nadal.ID,
		Player2ID:    f.Federer.ID,
		Score:        "3-1 ret.",
		Title:        "Rotterdam 2019 SF",
	}
	for _, rec := range []*model.Match{&f.BestOf5, &f.BestOf3, &f.Doubles3, &f.NonSlamSF} {
		if err := db.Create(rec).Error; err != nil {
			t.Fatalf("seed matches: %v", err)
		}
	}
	return f
}

// seedUser inserts a bare user row.
func seedUser(t *testing.T, db *gorm.DB, email string) model.User {
	t.Helper()
	user := model.User{Email: email, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func uuids(ids ...uuid.UUID) []uuid.UUID { return ids }
