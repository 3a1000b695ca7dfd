package usecase

import (
	"context"
	"time"

	"github.com/eslsoft/flashdeck/internal/entity"
	"github.com/eslsoft/flashdeck/internal/repository"
)

// DeckUsecase encapsulates business logic for managing a user's decks.
type DeckUsecase interface {
	CreateDeck(ctx context.Context, userID int64, deck *entity.Deck) (*entity.Deck, error)
	GetDeck(ctx context.Context, userID, id int64) (*entity.Deck, error)
	ListDecks(ctx context.Context, query *repository.ListDeckQuery) ([]entity.Deck, int64, error)
	UpdateDeck(ctx context.Context, userID int64, deck *entity.Deck) (*entity.Deck, error)
	DeleteDeck(ctx context.Context, userID, id int64) error
}

// NewDeckUsecase wires the repository with default behaviour.
func NewDeckUsecase(repo repository.DeckRepository) DeckUsecase {
	return &deckUsecase{
		repo:  repo,
		clock: time.Now,
	}
}

type deckUsecase struct {
	repo  repository.DeckRepository
	clock func() time.Time
}

func (u *deckUsecase) CreateDeck(ctx context.Context, userID int64, deck *entity.Deck) (*entity.Deck, error) {
	if deck == nil {
		return nil, entity.ErrInvalidDeckName
	}
	if err := deck.Validate(); err != nil {
		return nil, err
	}

	copy := *deck
	copy.UserID = userID
	copy.Normalize(u.clock())
	return u.repo.Create(ctx, &copy)
}

func (u *deckUsecase) GetDeck(ctx context.Context, userID, id int64) (*entity.Deck, error) {
	return u.authorize(ctx, userID, id)
}

func (u *deckUsecase) ListDecks(ctx context.Context, query *repository.ListDeckQuery) ([]entity.Deck, int64, error) {
	return u.repo.List(ctx, query)
}

func (u *deckUsecase) UpdateDeck(ctx context.Context, userID int64, deck *entity.Deck) (*entity.Deck, error) {
	if deck == nil || deck.ID <= 0 {
		return nil, entity.ErrDeckNotFound
	}

	existing, err := u.authorize(ctx, userID, deck.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = deck.Name
	existing.Description = deck.Description
	existing.DailyNewCards = deck.DailyNewCards
	existing.DailyReviewCards = deck.DailyReviewCards
	existing.DailyResetHour = deck.DailyResetHour
	existing.EnableReverse = deck.EnableReverse
	existing.Oracle = deck.Oracle
	if err := existing.Validate(); err != nil {
		return nil, err
	}
	existing.Normalize(u.clock())

	return u.repo.Update(ctx, existing)
}

func (u *deckUsecase) DeleteDeck(ctx context.Context, userID, id int64) error {
	if _, err := u.authorize(ctx, userID, id); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}

func (u *deckUsecase) authorize(ctx context.Context, userID, id int64) (*entity.Deck, error) {
	if id <= 0 {
		return nil, entity.ErrDeckNotFound
	}
	deck, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if deck.UserID != userID {
		return nil, entity.ErrForbidden
	}
	return deck, nil
}
