package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserPicks is a user's single row of favorite selections, overwritten in
// place. Each reference is validated against its slot's predicate at write
// time and may be cleared with an explicit null.
type UserPicks struct {
	ID                        uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID                    uuid.UUID  `json:"userId" gorm:"type:char(36);uniqueIndex;not null"`
	FavoritePlayerID          *uuid.UUID `json:"favoritePlayerId" gorm:"type:char(36)"`
	FavoriteBestOf5MatchID    *uuid.UUID `json:"favoriteBestOf5MatchId" gorm:"type:char(36)"`
	FavoriteBestOf3MatchID    *uuid.UUID `json:"favoriteBestOf3MatchId" gorm:"type:char(36)"`
	BestGrandSlamFinalMatchID *uuid.UUID `json:"bestGrandSlamFinalMatchId" gorm:"type:char(36)"`
	CreatedAt                 time.Time  `json:"createdAt"`
	UpdatedAt                 time.Time  `json:"updatedAt"`

	FavoritePlayer       *Player `json:"favoritePlayer,omitempty" gorm:"foreignKey:FavoritePlayerID"`
	FavoriteBestOf5Match *Match  `json:"favoriteBestOf5Match,omitempty" gorm:"foreignKey:FavoriteBestOf5MatchID"`
	FavoriteBestOf3Match *Match  `json:"favoriteBestOf3Match,omitempty" gorm:"foreignKey:FavoriteBestOf3MatchID"`
	BestGrandSlamFinal   *Match  `json:"bestGrandSlamFinal,omitempty" gorm:"foreignKey:BestGrandSlamFinalMatchID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *UserPicks) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
