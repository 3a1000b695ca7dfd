package entity

import (
	"testing"
	"time"
)

func TestEffectiveLimitsNoOverride(t *testing.T) {
	deck := Deck{DailyNewCards: 20, DailyReviewCards: 100}
	now := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)

	limits := deck.EffectiveLimits(now)
	if limits.NewCards != 20 || limits.ReviewCards != 100 {
		t.Fatalf("limits = %+v, want 20/100", limits)
	}
}

func TestEffectiveLimitsOverrideRaisesOnly(t *testing.T) {
	now := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)
	deck := Deck{DailyNewCards: 20, DailyReviewCards: 100}
	day := deck.StudyDayStart(now)
	higher := uint32(35)
	lower := uint32(10)
	deck.OverrideDate = &day
	deck.OverrideNewCards = &higher
	deck.OverrideReviewCards = &lower

	limits := deck.EffectiveLimits(now)
	if limits.NewCards != 35 {
		t.Errorf("NewCards = %d, want 35", limits.NewCards)
	}
	if limits.ReviewCards != 100 {
		t.Errorf("ReviewCards = %d, want raised to stay at 100", limits.ReviewCards)
	}
}

func TestEffectiveLimitsOverrideExpires(t *testing.T) {
	now := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)
	deck := Deck{DailyNewCards: 20, DailyReviewCards: 100, DailyResetHour: 4}
	day := deck.StudyDayStart(now)
	higher := uint32(50)
	deck.OverrideDate = &day
	deck.OverrideNewCards = &higher

	if got := deck.EffectiveLimits(now).NewCards; got != 50 {
		t.Errorf("same day NewCards = %d, want 50", got)
	}
	tomorrow := now.Add(24 * time.Hour)
	if got := deck.EffectiveLimits(tomorrow).NewCards; got != 20 {
		t.Errorf("next day NewCards = %d, want 20", got)
	}
	// Before the reset hour it is still yesterday's study day, so an
	// override stamped yesterday would not match either.
	yesterday := now.Add(-24 * time.Hour)
	if got := deck.EffectiveLimits(yesterday).NewCards; got != 20 {
		t.Errorf("previous day NewCards = %d, want 20", got)
	}
}

func TestStudyDayStartUsesResetHour(t *testing.T) {
	deck := Deck{DailyResetHour: 4}

	early := time.Date(2026, 1, 20, 2, 30, 0, 0, time.UTC)
	if got := deck.StudyDayStart(early); got.Day() != 19 || got.Hour() != 4 {
		t.Errorf("2:30 start = %v, want Jan 19 04:00", got)
	}
	late := time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)
	if got := deck.StudyDayStart(late); got.Day() != 20 || got.Hour() != 4 {
		t.Errorf("9:00 start = %v, want Jan 20 04:00", got)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	now := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)
	deck := Deck{Name: " vocab "}
	deck.Normalize(now)

	if deck.Name != "vocab" {
		t.Errorf("name = %q", deck.Name)
	}
	if deck.DailyNewCards != 20 || deck.DailyReviewCards != 100 {
		t.Errorf("limits = %d/%d", deck.DailyNewCards, deck.DailyReviewCards)
	}
	if deck.Oracle.RequestRetention != 0.9 || deck.Oracle.MaximumInterval != 365 {
		t.Errorf("oracle = %+v", deck.Oracle)
	}
	if !deck.CreatedAt.Equal(now) || !deck.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v/%v", deck.CreatedAt, deck.UpdatedAt)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		deck Deck
		want error
	}{
		{"ok", Deck{Name: "vocab", Oracle: OracleConfig{RequestRetention: 0.9}}, nil},
		{"blank name", Deck{Name: "  "}, ErrInvalidDeckName},
		{"reset hour too high", Deck{Name: "x", DailyResetHour: 24}, ErrInvalidResetHour},
		{"negative reset hour", Deck{Name: "x", DailyResetHour: -1}, ErrInvalidResetHour},
		{"retention above one", Deck{Name: "x", Oracle: OracleConfig{RequestRetention: 1.2}}, ErrInvalidRetention},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.deck.Validate(); err != tc.want {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}
