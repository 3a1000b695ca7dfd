package entity

import (
	"strings"
	"time"
)

// Card is a single flashcard. Its displayed content is shared between the
// forward and reverse presentations, but each direction carries a fully
// independent scheduling state.
type Card struct {
	ID       int64
	DeckID   int64
	Front    string
	Meanings []Meaning
	Forward  CardSchedule
	Reverse  CardSchedule

	// Version guards the read-modify-write cycle of review submissions.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Meaning is one sense of a card's front, with an optional set of examples.
type Meaning struct {
	Gloss    string   `json:"gloss"`
	Examples []string `json:"examples,omitempty"`
}

// CardSchedule is the spaced-repetition state of one direction of a card.
type CardSchedule struct {
	State         CardState
	Due           *time.Time
	Stability     *float64
	Difficulty    *float64
	ElapsedDays   uint32
	ScheduledDays uint32
	Reps          uint32
	Lapses        uint32
	LastReview    *time.Time
	LearningStep  uint32
}

// NewSchedule returns the zeroed schedule every freshly created card starts with.
func NewSchedule() CardSchedule {
	return CardSchedule{State: StateNew}
}

// Schedule returns the scheduling state for the given direction.
func (c *Card) Schedule(dir Direction) CardSchedule {
	if dir == DirectionReverse {
		return c.Reverse
	}
	return c.Forward
}

// SetSchedule replaces the scheduling state for the given direction only.
func (c *Card) SetSchedule(dir Direction, sched CardSchedule) {
	if dir == DirectionReverse {
		c.Reverse = sched
		return
	}
	c.Forward = sched
}

// Normalize ensures defaults & constraints before persistence.
func (c *Card) Normalize(now time.Time) {
	c.Front = strings.TrimSpace(c.Front)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	if c.Meanings == nil {
		c.Meanings = []Meaning{}
	}
	if c.Forward.State == 0 {
		c.Forward = NewSchedule()
	}
	if c.Reverse.State == 0 {
		c.Reverse = NewSchedule()
	}
}
