package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryMenSingles is the match category eligible for best-of-3 picks and
// rankings.
const CategoryMenSingles = "men_singles"

// Tournament is read-only reference data.
type Tournament struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	IsGrandSlam bool      `json:"isGrandSlam" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Tournament) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Player is read-only reference data.
type Player struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null;index"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	CountryCode string    `json:"countryCode" gorm:"size:3;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Player) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Match is immutable reference data; there is no update path.
type Match struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	TournamentID uuid.UUID `json:"tournamentId" gorm:"type:char(36);not null;index"`
	Year         int       `json:"year" gorm:"not null;index"`
	Round        string    `json:"round" gorm:"size:50;not null"`
	IsFinal      bool      `json:"isFinal" gorm:"default:false;index"`
	BestOf       int       `json:"bestOf" gorm:"not null;index"` // 3 or 5
	Category     string    `json:"category" gorm:"size:50;not null;index"`
	Player1ID    uuid.UUID `json:"player1Id" gorm:"type:char(36);not null;index"`
	Player2ID    uuid.UUID `json:"player2Id" gorm:"type:char(36);not null;index"`
	Score        string    `json:"score" gorm:"size:100;not null"`
	Title        string    `json:"title" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Tournament Tournament `json:"tournament,omitempty" gorm:"foreignKey:TournamentID"`
	Player1    Player     `json:"player1,omitempty" gorm:"foreignKey:Player1ID"`
	Player2    Player     `json:"player2,omitempty" gorm:"foreignKey:Player2ID"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
