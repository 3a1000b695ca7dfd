package entity

import "time"

// StudyQueueItem is one presentation in a study session queue. It is
// assembled per session and never persisted.
type StudyQueueItem struct {
	CardID    int64
	Front     string
	Meanings  []Meaning
	State     CardState
	IsNew     bool
	Direction Direction
}

// ReviewResult is returned to the caller after a rating has been applied.
type ReviewResult struct {
	CardID int64
	Rating Rating
	Due    time.Time
	State  CardState
}

// StudySummary reports a deck's current workload and today's progress.
type StudySummary struct {
	TotalCards         int64
	NewCount           int64
	ReviewCount        int64
	TodayStudied       int64
	TodayNewStudied    int64
	TodayReviewStudied int64
	DailyNewCards      uint32
	DailyReviewCards   uint32
}
