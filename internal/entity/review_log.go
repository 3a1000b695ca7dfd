package entity

import "time"

// ReviewLogEntry is the append-only record written for every rating
// submission. It is the source of truth for daily quota accounting and is
// never mutated or deleted.
type ReviewLogEntry struct {
	ID             int64
	DeckID         int64
	CardID         int64
	Direction      Direction
	Rating         Rating
	ReviewedAt     time.Time
	PrevState      CardState
	PrevStability  *float64
	PrevDifficulty *float64
	NewState       CardState
	NewStability   float64
	NewDifficulty  float64
	ScheduledDays  uint32
}

// StudyCounts splits a day's review log entries by whether the card was new
// before the review.
type StudyCounts struct {
	New    int64
	Review int64
}

// Total returns the combined number of reviews.
func (c StudyCounts) Total() int64 { return c.New + c.Review }
