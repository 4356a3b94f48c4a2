package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"tennistrivia/internal/config"
	"tennistrivia/internal/db"
	"tennistrivia/internal/model"
)

// PlayerData is one row of players.json.
type PlayerData struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	CountryCode string `json:"countryCode"`
}

// TournamentData is one row of tournaments.json.
type TournamentData struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	IsGrandSlam bool   `json:"isGrandSlam"`
}

// MatchData is one row of matches.json; references are by slug.
type MatchData struct {
	TournamentSlug string `json:"tournamentSlug"`
	Year           int    `json:"year"`
	Round          string `json:"round"`
	IsFinal        bool   `json:"isFinal"`
	BestOf         int    `json:"bestOf"`
	Category       string `json:"category"`
	Player1Slug    string `json:"player1Slug"`
	Player2Slug    string `json:"player2Slug"`
	Score          string `json:"score"`
	Title          string `json:"title"`
}

func main() {
	dataDir := flag.String("data", "data", "directory with tournaments.json, players.json, matches.json")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	cfg := config.Load()

	gormDB, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.Tournament{}, &model.Player{}, &model.Match{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	var tournaments []TournamentData
	var players []PlayerData
	var matches []MatchData
	if err := readJSON(filepath.Join(*dataDir, "tournaments.json"), &tournaments); err != nil {
		log.Fatalf("read tournaments: %v", err)
	}
	if err := readJSON(filepath.Join(*dataDir, "players.json"), &players); err != nil {
		log.Fatalf("read players: %v", err)
	}
	if err := readJSON(filepath.Join(*dataDir, "matches.json"), &matches); err != nil {
		log.Fatalf("read matches: %v", err)
	}

	// Clear catalog tables in reverse dependency order.
	log.Println("clearing existing catalog data...")
	if err := gormDB.Exec("DELETE FROM matches").Error; err != nil {
		log.Fatalf("clear matches: %v", err)
	}
	if err := gormDB.Exec("DELETE FROM players").Error; err != nil {
		log.Fatalf("clear players: %v", err)
	}
	if err := gormDB.Exec("DELETE FROM tournaments").Error; err != nil {
		log.Fatalf("clear tournaments: %v", err)
	}

	log.Printf("seeding %d tournaments...", len(tournaments))
	tournamentIDs := make(map[string]uuid.UUID, len(tournaments))
	for _, t := range tournaments {
		record := model.Tournament{Name: t.Name, Slug: t.Slug, IsGrandSlam: t.IsGrandSlam}
		if err := gormDB.Create(&record).Error; err != nil {
			log.Fatalf("create tournament %s: %v", t.Slug, err)
		}
		tournamentIDs[t.Slug] = record.ID
	}

	log.Printf("seeding %d players...", len(players))
	playerIDs := make(map[string]uuid.UUID, len(players))
	for _, p := range players {
		record := model.Player{Name: p.Name, Slug: p.Slug, CountryCode: p.CountryCode}
		if err := gormDB.Create(&record).Error; err != nil {
			log.Fatalf("create player %s: %v", p.Slug, err)
		}
		playerIDs[p.Slug] = record.ID
	}

	log.Printf("seeding %d matches...", len(matches))
	skipped := 0
	for i, m := range matches {
		tournamentID, okT := tournamentIDs[m.TournamentSlug]
		player1ID, ok1 := playerIDs[m.Player1Slug]
		player2ID, ok2 := playerIDs[m.Player2Slug]
		if !okT || !ok1 || !ok2 {
			log.Printf("skipping match %d: missing reference (tournament=%s, p1=%s, p2=%s)",
				i, m.TournamentSlug, m.Player1Slug, m.Player2Slug)
			skipped++
			continue
		}
		record := model.Match{
			TournamentID: tournamentID,
			Year:         m.Year,
			Round:        m.Round,
			IsFinal:      m.IsFinal,
			BestOf:       m.BestOf,
			Category:     m.Category,
			Player1ID:    player1ID,
			Player2ID:    player2ID,
			Score:        m.Score,
			Title:        m.Title,
		}
		if err := gormDB.Create(&record).Error; err != nil {
			log.Fatalf("create match %d: %v", i, err)
		}
	}

	log.Printf("seed complete (%d matches skipped)", skipped)
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
