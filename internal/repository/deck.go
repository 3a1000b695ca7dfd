package repository

import (
	"context"

	"github.com/eslsoft/flashdeck/internal/entity"
)

// ListDeckQuery holds parameters for listing a user's decks.
type ListDeckQuery struct {
	Pagination

	UserID int64
}

// DeckRepository abstracts persistence for decks. GetByID is deliberately
// unscoped so usecases can distinguish a missing deck from a foreign one.
type DeckRepository interface {
	Create(ctx context.Context, deck *entity.Deck) (*entity.Deck, error)
	Update(ctx context.Context, deck *entity.Deck) (*entity.Deck, error)
	GetByID(ctx context.Context, id int64) (*entity.Deck, error)
	List(ctx context.Context, query *ListDeckQuery) ([]entity.Deck, int64, error)
	Delete(ctx context.Context, id int64) error
}
