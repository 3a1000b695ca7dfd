// Package studytime maps wall-clock instants onto pedagogical study days.
//
// A study day is a 24-hour accounting window that starts at a configurable
// hour-of-day rather than midnight, so a late-evening session and the
// following early-morning session count against the same daily quota.
package studytime

import "time"

// StartOfDay returns the start instant of the study day containing now.
// resetHour is the hour-of-day (0-23) at which the study day rolls over,
// evaluated in now's location. An instant exactly at the reset hour counts
// as already rolled over.
func StartOfDay(now time.Time, resetHour int) time.Time {
	candidate := time.Date(now.Year(), now.Month(), now.Day(), resetHour, 0, 0, 0, now.Location())
	if now.Before(candidate) {
		candidate = candidate.AddDate(0, 0, -1)
	}
	return candidate
}
