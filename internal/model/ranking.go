package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RankingKind selects one of the four per-user ranking lists. Each kind lives
// in its own table; all share the RankingEntry row shape.
type RankingKind string

const (
	RankingBestOf5         RankingKind = "best-of-5"
	RankingBestOf3         RankingKind = "best-of-3"
	RankingPlayers         RankingKind = "players"
	RankingGrandSlamFinals RankingKind = "grand-slam-finals"
)

// RankingKinds lists every kind, in route order.
var RankingKinds = []RankingKind{
	RankingBestOf5,
	RankingBestOf3,
	RankingPlayers,
	RankingGrandSlamFinals,
}

// TableName returns the physical table backing the kind.
func (k RankingKind) TableName() string {
	switch k {
	case RankingBestOf5:
		return "user_top10_best_of5_matches"
	case RankingBestOf3:
		return "user_top10_best_of3_matches"
	case RankingPlayers:
		return "user_top10_players"
	case RankingGrandSlamFinals:
		return "user_top5_grand_slam_finals"
	}
	return ""
}

// MaxEntries returns the count bound for a set operation on the kind.
func (k RankingKind) MaxEntries() int {
	if k == RankingGrandSlamFinals {
		return 5
	}
	return 10
}

// RanksPlayers reports whether entries reference players rather than matches.
func (k RankingKind) RanksPlayers() bool {
	return k == RankingPlayers
}

// RankingEntry is one row of a user's ordered list: the referenced entity (a
// match or a player depending on the kind) at a 1-based position. The whole
// set for a (user, kind) is replaced atomically, never patched.
type RankingEntry struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null;index"`
	EntityID  uuid.UUID `json:"entityId" gorm:"type:char(36);not null"`
	Position  int       `json:"position" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (e *RankingEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
