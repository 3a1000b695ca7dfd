package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eslsoft/flashdeck/internal/entity"
	"github.com/eslsoft/flashdeck/internal/repository"
)

type cardFixture struct {
	decks *fakeDeckRepo
	cards *fakeCardRepo
	uc    *cardUsecase
	deck  *entity.Deck
}

func newCardFixture(t *testing.T) *cardFixture {
	t.Helper()
	f := &cardFixture{
		decks: newFakeDeckRepo(),
		cards: newFakeCardRepo(),
	}
	f.uc = NewCardUsecase(f.decks, f.cards).(*cardUsecase)
	f.uc.clock = func() time.Time { return studyNow }

	deck := &entity.Deck{UserID: 1, Name: "vocab"}
	deck.Normalize(studyNow)
	created, err := f.decks.Create(context.Background(), deck)
	if err != nil {
		t.Fatalf("seed deck: %v", err)
	}
	f.deck = created
	return f
}

func TestCreateCardResetsSchedules(t *testing.T) {
	f := newCardFixture(t)

	stability := 9.9
	card := &entity.Card{
		Front:    "apple",
		Meanings: []entity.Meaning{{Gloss: "fruit", Examples: []string{"an apple a day"}}},
		Forward:  entity.CardSchedule{State: entity.StateReview, Stability: &stability},
	}
	created, err := f.uc.CreateCard(context.Background(), 1, f.deck.ID, card)
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}
	if created.DeckID != f.deck.ID {
		t.Errorf("deckID = %d, want %d", created.DeckID, f.deck.ID)
	}
	if created.Forward.State != entity.StateNew || created.Reverse.State != entity.StateNew {
		t.Errorf("schedules = %v/%v, want new/new", created.Forward.State, created.Reverse.State)
	}
	if created.Forward.Stability != nil {
		t.Error("caller-supplied schedule data leaked into the stored card")
	}
	if len(created.Meanings) != 1 || created.Meanings[0].Gloss != "fruit" {
		t.Errorf("meanings = %+v", created.Meanings)
	}
}

func TestCreateCardValidation(t *testing.T) {
	f := newCardFixture(t)

	if _, err := f.uc.CreateCard(context.Background(), 1, f.deck.ID, nil); !errors.Is(err, entity.ErrInvalidCardFront) {
		t.Errorf("nil card: err = %v, want ErrInvalidCardFront", err)
	}
	if _, err := f.uc.CreateCard(context.Background(), 1, f.deck.ID, &entity.Card{Front: "  "}); !errors.Is(err, entity.ErrInvalidCardFront) {
		t.Errorf("blank front: err = %v, want ErrInvalidCardFront", err)
	}
	if _, err := f.uc.CreateCard(context.Background(), 2, f.deck.ID, &entity.Card{Front: "apple"}); !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("other user: err = %v, want ErrForbidden", err)
	}
	if _, err := f.uc.CreateCard(context.Background(), 1, 404, &entity.Card{Front: "apple"}); !errors.Is(err, entity.ErrDeckNotFound) {
		t.Errorf("missing deck: err = %v, want ErrDeckNotFound", err)
	}
}

func TestGetCardChecksDeckMembership(t *testing.T) {
	f := newCardFixture(t)

	other := &entity.Deck{UserID: 1, Name: "other"}
	other.Normalize(studyNow)
	otherDeck, err := f.decks.Create(context.Background(), other)
	if err != nil {
		t.Fatalf("seed deck: %v", err)
	}

	created, err := f.uc.CreateCard(context.Background(), 1, f.deck.ID, &entity.Card{Front: "apple"})
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}

	got, err := f.uc.GetCard(context.Background(), 1, f.deck.ID, created.ID)
	if err != nil {
		t.Fatalf("GetCard: %v", err)
	}
	if got.Front != "apple" {
		t.Errorf("front = %q", got.Front)
	}

	if _, err := f.uc.GetCard(context.Background(), 1, otherDeck.ID, created.ID); !errors.Is(err, entity.ErrCardNotFound) {
		t.Errorf("wrong deck: err = %v, want ErrCardNotFound", err)
	}
}

func TestListCards(t *testing.T) {
	f := newCardFixture(t)

	for _, front := range []string{"a", "b", "c"} {
		if _, err := f.uc.CreateCard(context.Background(), 1, f.deck.ID, &entity.Card{Front: front}); err != nil {
			t.Fatalf("CreateCard: %v", err)
		}
	}

	cards, total, err := f.uc.ListCards(context.Background(), 1, &repository.ListCardQuery{DeckID: f.deck.ID})
	if err != nil {
		t.Fatalf("ListCards: %v", err)
	}
	if total != 3 || len(cards) != 3 {
		t.Fatalf("got %d/%d cards, want 3", len(cards), total)
	}

	if _, _, err := f.uc.ListCards(context.Background(), 1, nil); !errors.Is(err, entity.ErrInvalidDeckID) {
		t.Errorf("nil query: err = %v, want ErrInvalidDeckID", err)
	}
	if _, _, err := f.uc.ListCards(context.Background(), 2, &repository.ListCardQuery{DeckID: f.deck.ID}); !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("other user: err = %v, want ErrForbidden", err)
	}
}

func TestDeleteCard(t *testing.T) {
	f := newCardFixture(t)

	created, err := f.uc.CreateCard(context.Background(), 1, f.deck.ID, &entity.Card{Front: "apple"})
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}

	if err := f.uc.DeleteCard(context.Background(), 2, f.deck.ID, created.ID); !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("other user: err = %v, want ErrForbidden", err)
	}
	if err := f.uc.DeleteCard(context.Background(), 1, f.deck.ID, created.ID); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}
	if err := f.uc.DeleteCard(context.Background(), 1, f.deck.ID, created.ID); !errors.Is(err, entity.ErrCardNotFound) {
		t.Errorf("second delete: err = %v, want ErrCardNotFound", err)
	}
}
