package repository

import (
	"context"
	"time"

	"github.com/eslsoft/flashdeck/internal/entity"
)

// ReviewLogRepository abstracts the append-only review history.
type ReviewLogRepository interface {
	Append(ctx context.Context, entry *entity.ReviewLogEntry) (*entity.ReviewLogEntry, error)
	// CountSince counts a deck's log entries with reviewedAt >= since, split
	// by whether the card was new before the review. Both directions count
	// against the same budget.
	CountSince(ctx context.Context, deckID int64, since time.Time) (entity.StudyCounts, error)
	ListByCard(ctx context.Context, cardID int64) ([]entity.ReviewLogEntry, error)
}
