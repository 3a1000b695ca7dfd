package studytime

import (
	"testing"
	"time"
)

func TestStartOfDayBeforeReset(t *testing.T) {
	now := time.Date(2026, 1, 20, 2, 30, 0, 0, time.UTC)
	got := StartOfDay(now, 4)
	want := time.Date(2026, 1, 19, 4, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfDay(%v, 4) = %v, want %v", now, got, want)
	}
}

func TestStartOfDayAfterReset(t *testing.T) {
	now := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)
	got := StartOfDay(now, 4)
	want := time.Date(2026, 1, 20, 4, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfDay(%v, 4) = %v, want %v", now, got, want)
	}
}

func TestStartOfDayAtExactResetInstant(t *testing.T) {
	now := time.Date(2026, 1, 20, 4, 0, 0, 0, time.UTC)
	got := StartOfDay(now, 4)
	if !got.Equal(now) {
		t.Errorf("exact reset instant should count as rolled over, got %v", got)
	}
}

func TestStartOfDayMidnightReset(t *testing.T) {
	now := time.Date(2026, 1, 20, 0, 0, 0, 1, time.UTC)
	got := StartOfDay(now, 0)
	want := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfDay(%v, 0) = %v, want %v", now, got, want)
	}
}

func TestStartOfDayIdempotent(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		now := time.Date(2026, 3, 15, 13, 45, 12, 0, time.UTC)
		first := StartOfDay(now, hour)
		second := StartOfDay(first, hour)
		if !first.Equal(second) {
			t.Errorf("resetHour=%d: StartOfDay not idempotent: %v then %v", hour, first, second)
		}
	}
}

func TestStartOfDayBounds(t *testing.T) {
	times := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC),
		time.Date(2026, 2, 28, 3, 59, 59, 999999999, time.UTC),
		time.Date(2026, 12, 31, 4, 0, 0, 0, time.UTC),
	}
	for _, now := range times {
		for hour := 0; hour < 24; hour++ {
			start := StartOfDay(now, hour)
			if start.After(now) {
				t.Errorf("resetHour=%d now=%v: start %v is after now", hour, now, start)
			}
			if !now.Before(start.Add(24 * time.Hour)) {
				t.Errorf("resetHour=%d now=%v: now not within 24h of start %v", hour, now, start)
			}
		}
	}
}
