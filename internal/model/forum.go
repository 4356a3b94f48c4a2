package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Forum groups discussion threads under a unique slug.
type Forum struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	Description *string   `json:"description" gorm:"size:2000"`
	CreatedByID uuid.UUID `json:"createdById" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// ThreadCount is computed by the listing queries, never stored.
	ThreadCount int64 `json:"threadCount" gorm:"->;-:migration"`

	Creator User `json:"creator,omitempty" gorm:"foreignKey:CreatedByID"`
}

// BeforeCreate sets UUID before creating the record.
func (f *Forum) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Thread is a topic inside a forum. A non-empty body at creation time is
// denormalized into the thread's first post.
type Thread struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ForumID   uuid.UUID `json:"forumId" gorm:"type:char(36);not null;index"`
	AuthorID  uuid.UUID `json:"authorId" gorm:"type:char(36);not null;index"`
	Title     string    `json:"title" gorm:"size:300;not null"`
	Body      *string   `json:"body" gorm:"size:10000"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// PostCount is computed by the listing queries, never stored.
	PostCount int64 `json:"postCount" gorm:"->;-:migration"`

	Forum  Forum `json:"forum,omitempty" gorm:"foreignKey:ForumID"`
	Author User  `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Thread) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Post is a single message inside a thread. Only the author may edit it.
type Post struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ThreadID  uuid.UUID `json:"threadId" gorm:"type:char(36);not null;index"`
	AuthorID  uuid.UUID `json:"authorId" gorm:"type:char(36);not null;index"`
	Body      string    `json:"body" gorm:"size:10000;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
