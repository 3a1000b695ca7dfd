// Package model defines the persistence schema. Entities are mapped to and
// from these rows by the repository adapters.
package model

import (
	"time"

	"gorm.io/datatypes"
)

// Deck is the decks table row.
type Deck struct {
	ID               int64  `gorm:"primaryKey"`
	UserID           int64  `gorm:"uniqueIndex:idx_decks_user_name;not null"`
	Name             string `gorm:"size:255;uniqueIndex:idx_decks_user_name;not null"`
	Description      string
	DailyNewCards    uint32 `gorm:"not null"`
	DailyReviewCards uint32 `gorm:"not null"`
	DailyResetHour   int    `gorm:"not null"`
	EnableReverse    bool   `gorm:"not null"`

	RequestRetention float64 `gorm:"not null"`
	MaximumInterval  uint32  `gorm:"not null"`
	LearningSteps    datatypes.JSON
	RelearningSteps  datatypes.JSON

	OverrideDate        *time.Time
	OverrideNewCards    *uint32
	OverrideReviewCards *uint32

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Schedule is one direction's scheduling state, embedded twice in Card.
type Schedule struct {
	State         string `gorm:"size:16;not null"`
	Due           *time.Time
	Stability     *float64
	Difficulty    *float64
	ElapsedDays   uint32 `gorm:"not null"`
	ScheduledDays uint32 `gorm:"not null"`
	Reps          uint32 `gorm:"not null"`
	Lapses        uint32 `gorm:"not null"`
	LastReview    *time.Time
	LearningStep  uint32 `gorm:"not null"`
}

// Card is the cards table row. The two study directions are stored inline
// with column prefixes so a single versioned row covers both.
type Card struct {
	ID       int64          `gorm:"primaryKey"`
	DeckID   int64          `gorm:"index;not null"`
	Front    string         `gorm:"size:512;not null"`
	Meanings datatypes.JSON `gorm:"column:meanings"`

	Forward Schedule `gorm:"embedded;embeddedPrefix:forward_"`
	Reverse Schedule `gorm:"embedded;embeddedPrefix:reverse_"`

	Version int64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewLog is the append-only review_logs table row.
type ReviewLog struct {
	ID         int64     `gorm:"primaryKey"`
	DeckID     int64     `gorm:"index:idx_review_logs_deck_time;not null"`
	CardID     int64     `gorm:"index;not null"`
	Direction  string    `gorm:"size:16;not null"`
	Rating     string    `gorm:"size:16;not null"`
	ReviewedAt time.Time `gorm:"index:idx_review_logs_deck_time;not null"`

	PrevState      string `gorm:"size:16;not null"`
	PrevStability  *float64
	PrevDifficulty *float64
	NewState       string `gorm:"size:16;not null"`
	NewStability   float64
	NewDifficulty  float64
	ScheduledDays  uint32
}
