package entity

import (
	"strings"
	"time"

	"github.com/eslsoft/flashdeck/pkg/studytime"
)

// Deck groups cards studied together and carries all per-deck study settings.
type Deck struct {
	ID               int64
	UserID           int64
	Name             string
	Description      string
	DailyNewCards    uint32
	DailyReviewCards uint32
	DailyResetHour   int
	EnableReverse    bool
	Oracle           OracleConfig

	// One-day quota override. Active only while OverrideDate equals the
	// current study-day start; it expires on its own at the next rollover.
	OverrideDate        *time.Time
	OverrideNewCards    *uint32
	OverrideReviewCards *uint32

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OracleConfig is the per-deck configuration handed to the scheduling oracle.
type OracleConfig struct {
	RequestRetention float64
	MaximumInterval  uint32 // days
	LearningSteps    []time.Duration
	RelearningSteps  []time.Duration
}

// DailyLimits holds the effective new/review caps for one study day.
type DailyLimits struct {
	NewCards    uint32
	ReviewCards uint32
}

// Normalize ensures defaults & constraints before persistence.
func (d *Deck) Normalize(now time.Time) {
	d.Name = strings.TrimSpace(d.Name)
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
	if d.DailyNewCards == 0 {
		d.DailyNewCards = 20
	}
	if d.DailyReviewCards == 0 {
		d.DailyReviewCards = 100
	}
	if d.Oracle.RequestRetention == 0 {
		d.Oracle.RequestRetention = 0.9
	}
	if d.Oracle.MaximumInterval == 0 {
		d.Oracle.MaximumInterval = 365
	}
	if d.Oracle.LearningSteps == nil {
		d.Oracle.LearningSteps = []time.Duration{time.Minute, 10 * time.Minute}
	}
	if d.Oracle.RelearningSteps == nil {
		d.Oracle.RelearningSteps = []time.Duration{10 * time.Minute}
	}
}

// Validate checks the settings a caller may set on a deck.
func (d *Deck) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrInvalidDeckName
	}
	if d.DailyResetHour < 0 || d.DailyResetHour > 23 {
		return ErrInvalidResetHour
	}
	if d.Oracle.RequestRetention < 0 || d.Oracle.RequestRetention > 1 {
		return ErrInvalidRetention
	}
	return nil
}

// StudyDayStart returns the start instant of the study day containing now,
// using this deck's configured reset hour.
func (d *Deck) StudyDayStart(now time.Time) time.Time {
	return studytime.StartOfDay(now, d.DailyResetHour)
}

// EffectiveLimits resolves today's new/review caps. An active override can
// only raise a cap, never lower it below the stored default.
func (d *Deck) EffectiveLimits(now time.Time) DailyLimits {
	limits := DailyLimits{
		NewCards:    d.DailyNewCards,
		ReviewCards: d.DailyReviewCards,
	}
	if d.OverrideDate == nil || !d.OverrideDate.Equal(d.StudyDayStart(now)) {
		return limits
	}
	if d.OverrideNewCards != nil && *d.OverrideNewCards > limits.NewCards {
		limits.NewCards = *d.OverrideNewCards
	}
	if d.OverrideReviewCards != nil && *d.OverrideReviewCards > limits.ReviewCards {
		limits.ReviewCards = *d.OverrideReviewCards
	}
	return limits
}
