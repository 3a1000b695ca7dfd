package repository

import (
	"context"
	"time"

	"github.com/eslsoft/flashdeck/internal/entity"
)

// ListCardQuery holds parameters for listing cards in a deck.
type ListCardQuery struct {
	Pagination
	FilterOrder

	DeckID int64
}

// CardRepository abstracts persistence for cards, including the ordered,
// limited queue queries and the versioned schedule update that guards
// concurrent review submissions.
type CardRepository interface {
	Create(ctx context.Context, card *entity.Card) (*entity.Card, error)
	GetByID(ctx context.Context, id int64) (*entity.Card, error)
	List(ctx context.Context, query *ListCardQuery) ([]entity.Card, int64, error)
	Delete(ctx context.Context, deckID, id int64) error

	// ListDue returns up to limit non-new cards of the given direction with
	// due <= now, earliest due first.
	ListDue(ctx context.Context, deckID int64, dir entity.Direction, now time.Time, limit int) ([]entity.Card, error)
	// ListNew returns up to limit cards whose given direction is still new,
	// oldest created first.
	ListNew(ctx context.Context, deckID int64, dir entity.Direction, limit int) ([]entity.Card, error)

	CountByDeck(ctx context.Context, deckID int64) (int64, error)
	CountNew(ctx context.Context, deckID int64, dir entity.Direction) (int64, error)
	CountDue(ctx context.Context, deckID int64, dir entity.Direction, now time.Time) (int64, error)

	// UpdateSchedule persists sched onto the given direction of the card iff
	// the card's version still equals expectedVersion, bumping the version.
	// A lost race yields entity.ErrReviewConflict.
	UpdateSchedule(ctx context.Context, cardID int64, dir entity.Direction, sched entity.CardSchedule, expectedVersion int64) error
}
