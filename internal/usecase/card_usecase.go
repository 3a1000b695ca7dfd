package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/eslsoft/flashdeck/internal/entity"
	"github.com/eslsoft/flashdeck/internal/repository"
)

// CardUsecase encapsulates business logic for managing cards within a deck.
type CardUsecase interface {
	CreateCard(ctx context.Context, userID, deckID int64, card *entity.Card) (*entity.Card, error)
	GetCard(ctx context.Context, userID, deckID, id int64) (*entity.Card, error)
	ListCards(ctx context.Context, userID int64, query *repository.ListCardQuery) ([]entity.Card, int64, error)
	DeleteCard(ctx context.Context, userID, deckID, id int64) error
}

// NewCardUsecase wires the repositories with default behaviour.
func NewCardUsecase(decks repository.DeckRepository, cards repository.CardRepository) CardUsecase {
	return &cardUsecase{
		decks: decks,
		cards: cards,
		clock: time.Now,
	}
}

type cardUsecase struct {
	decks repository.DeckRepository
	cards repository.CardRepository
	clock func() time.Time
}

func (u *cardUsecase) CreateCard(ctx context.Context, userID, deckID int64, card *entity.Card) (*entity.Card, error) {
	if card == nil || strings.TrimSpace(card.Front) == "" {
		return nil, entity.ErrInvalidCardFront
	}
	if _, err := u.authorizeDeck(ctx, userID, deckID); err != nil {
		return nil, err
	}

	copy := *card
	copy.DeckID = deckID
	// Both directions start as independent new items.
	copy.Forward = entity.NewSchedule()
	copy.Reverse = entity.NewSchedule()
	copy.Normalize(u.clock())

	return u.cards.Create(ctx, &copy)
}

func (u *cardUsecase) GetCard(ctx context.Context, userID, deckID, id int64) (*entity.Card, error) {
	if _, err := u.authorizeDeck(ctx, userID, deckID); err != nil {
		return nil, err
	}
	return u.loadDeckCard(ctx, deckID, id)
}

func (u *cardUsecase) ListCards(ctx context.Context, userID int64, query *repository.ListCardQuery) ([]entity.Card, int64, error) {
	if query == nil {
		return nil, 0, entity.ErrInvalidDeckID
	}
	if _, err := u.authorizeDeck(ctx, userID, query.DeckID); err != nil {
		return nil, 0, err
	}
	return u.cards.List(ctx, query)
}

func (u *cardUsecase) DeleteCard(ctx context.Context, userID, deckID, id int64) error {
	if _, err := u.authorizeDeck(ctx, userID, deckID); err != nil {
		return err
	}
	if id <= 0 {
		return entity.ErrCardNotFound
	}
	return u.cards.Delete(ctx, deckID, id)
}

func (u *cardUsecase) authorizeDeck(ctx context.Context, userID, deckID int64) (*entity.Deck, error) {
	if deckID <= 0 {
		return nil, entity.ErrDeckNotFound
	}
	deck, err := u.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if deck.UserID != userID {
		return nil, entity.ErrForbidden
	}
	return deck, nil
}

func (u *cardUsecase) loadDeckCard(ctx context.Context, deckID, id int64) (*entity.Card, error) {
	if id <= 0 {
		return nil, entity.ErrCardNotFound
	}
	card, err := u.cards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if card.DeckID != deckID {
		return nil, entity.ErrCardNotFound
	}
	return card, nil
}
