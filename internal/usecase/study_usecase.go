package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/flashdeck/internal/entity"
	"github.com/eslsoft/flashdeck/internal/repository"
	"github.com/eslsoft/flashdeck/pkg/spacing"
)

// queueMinSpacing is the minimum number of positions kept between the forward
// and reverse presentations of the same card within one session queue.
const queueMinSpacing = 3

// Oracle computes the next per-direction schedule from a rating. It must be
// total, deterministic and side-effect free; any error it returns is treated
// as fatal to the submission.
type Oracle interface {
	Advance(sched entity.CardSchedule, rating entity.Rating, now time.Time, cfg entity.OracleConfig) (entity.CardSchedule, error)
}

// StudyUsecase drives study sessions: queue building, rating submissions,
// progress summaries and the one-day quota override.
type StudyUsecase interface {
	BuildQueue(ctx context.Context, userID, deckID int64) ([]entity.StudyQueueItem, error)
	SubmitReview(ctx context.Context, userID, deckID, cardID int64, rating entity.Rating, dir entity.Direction) (*entity.ReviewResult, error)
	GetSummary(ctx context.Context, userID, deckID int64) (*entity.StudySummary, error)
	SetDailyOverride(ctx context.Context, userID, deckID int64, newCards, reviewCards *uint32) (*entity.DailyLimits, error)
}

// NewStudyUsecase wires the repositories and the scheduling oracle.
func NewStudyUsecase(decks repository.DeckRepository, cards repository.CardRepository, logs repository.ReviewLogRepository, oracle Oracle) StudyUsecase {
	return &studyUsecase{
		decks:  decks,
		cards:  cards,
		logs:   logs,
		oracle: oracle,
		clock:  time.Now,
	}
}

type studyUsecase struct {
	decks  repository.DeckRepository
	cards  repository.CardRepository
	logs   repository.ReviewLogRepository
	oracle Oracle
	clock  func() time.Time
}

// authorizeDeck loads the deck and verifies ownership.
func (u *studyUsecase) authorizeDeck(ctx context.Context, userID, deckID int64) (*entity.Deck, error) {
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

func (u *studyUsecase) BuildQueue(ctx context.Context, userID, deckID int64) ([]entity.StudyQueueItem, error) {
	deck, err := u.authorizeDeck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	limits := deck.EffectiveLimits(now)
	studied, err := u.logs.CountSince(ctx, deck.ID, deck.StudyDayStart(now))
	if err != nil {
		return nil, err
	}

	remainingNew := remaining(limits.NewCards, studied.New)
	remainingReview := remaining(limits.ReviewCards, studied.Review)

	// Candidate order: forward due, reverse due, forward new, reverse new.
	// Each direction gets the full remaining allotment; the daily budget is
	// shared, not split.
	var queue []entity.StudyQueueItem
	if remainingReview > 0 {
		due, err := u.cards.ListDue(ctx, deck.ID, entity.DirectionForward, now, remainingReview)
		if err != nil {
			return nil, err
		}
		queue = append(queue, toQueueItems(due, entity.DirectionForward)...)

		if deck.EnableReverse {
			due, err = u.cards.ListDue(ctx, deck.ID, entity.DirectionReverse, now, remainingReview)
			if err != nil {
				return nil, err
			}
			queue = append(queue, toQueueItems(due, entity.DirectionReverse)...)
		}
	}
	if remainingNew > 0 {
		fresh, err := u.cards.ListNew(ctx, deck.ID, entity.DirectionForward, remainingNew)
		if err != nil {
			return nil, err
		}
		queue = append(queue, toQueueItems(fresh, entity.DirectionForward)...)

		if deck.EnableReverse {
			fresh, err = u.cards.ListNew(ctx, deck.ID, entity.DirectionReverse, remainingNew)
			if err != nil {
				return nil, err
			}
			queue = append(queue, toQueueItems(fresh, entity.DirectionReverse)...)
		}
	}

	return spacing.Shuffle(queue, queueMinSpacing, func(item entity.StudyQueueItem) int64 {
		return item.CardID
	}), nil
}

func (u *studyUsecase) SubmitReview(ctx context.Context, userID, deckID, cardID int64, rating entity.Rating, dir entity.Direction) (*entity.ReviewResult, error) {
	if !rating.IsValid() {
		return nil, entity.ErrInvalidRating
	}
	if dir == 0 {
		dir = entity.DirectionForward
	}
	if !dir.IsValid() {
		return nil, entity.ErrInvalidDirection
	}

	deck, err := u.authorizeDeck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}
	if dir == entity.DirectionReverse && !deck.EnableReverse {
		return nil, entity.ErrReverseDisabled
	}

	now := u.clock()

	// Optimistic read-compute-write; one internal retry on a lost race.
	for attempt := 0; ; attempt++ {
		card, err := u.loadDeckCard(ctx, deck.ID, cardID)
		if err != nil {
			return nil, err
		}

		prev := card.Schedule(dir)
		next, err := u.oracle.Advance(prev, rating, now, deck.Oracle)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrOracleFailure, err)
		}

		err = u.cards.UpdateSchedule(ctx, card.ID, dir, next, card.Version)
		if errors.Is(err, entity.ErrReviewConflict) && attempt == 0 {
			continue
		}
		if err != nil {
			return nil, err
		}

		entry := &entity.ReviewLogEntry{
			DeckID:         deck.ID,
			CardID:         card.ID,
			Direction:      dir,
			Rating:         rating,
			ReviewedAt:     now,
			PrevState:      prev.State,
			PrevStability:  prev.Stability,
			PrevDifficulty: prev.Difficulty,
			NewState:       next.State,
			NewStability:   derefFloat(next.Stability),
			NewDifficulty:  derefFloat(next.Difficulty),
			ScheduledDays:  next.ScheduledDays,
		}
		if _, err := u.logs.Append(ctx, entry); err != nil {
			return nil, err
		}

		return &entity.ReviewResult{
			CardID: card.ID,
			Rating: rating,
			Due:    derefTime(next.Due),
			State:  next.State,
		}, nil
	}
}

func (u *studyUsecase) GetSummary(ctx context.Context, userID, deckID int64) (*entity.StudySummary, error) {
	deck, err := u.authorizeDeck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	limits := deck.EffectiveLimits(now)

	total, err := u.cards.CountByDeck(ctx, deck.ID)
	if err != nil {
		return nil, err
	}
	newCount, err := u.cards.CountNew(ctx, deck.ID, entity.DirectionForward)
	if err != nil {
		return nil, err
	}
	reviewCount, err := u.cards.CountDue(ctx, deck.ID, entity.DirectionForward, now)
	if err != nil {
		return nil, err
	}
	if deck.EnableReverse {
		n, err := u.cards.CountNew(ctx, deck.ID, entity.DirectionReverse)
		if err != nil {
			return nil, err
		}
		newCount += n
		r, err := u.cards.CountDue(ctx, deck.ID, entity.DirectionReverse, now)
		if err != nil {
			return nil, err
		}
		reviewCount += r
	}

	studied, err := u.logs.CountSince(ctx, deck.ID, deck.StudyDayStart(now))
	if err != nil {
		return nil, err
	}

	return &entity.StudySummary{
		TotalCards:         total,
		NewCount:           newCount,
		ReviewCount:        reviewCount,
		TodayStudied:       studied.Total(),
		TodayNewStudied:    studied.New,
		TodayReviewStudied: studied.Review,
		DailyNewCards:      limits.NewCards,
		DailyReviewCards:   limits.ReviewCards,
	}, nil
}

func (u *studyUsecase) SetDailyOverride(ctx context.Context, userID, deckID int64, newCards, reviewCards *uint32) (*entity.DailyLimits, error) {
	deck, err := u.authorizeDeck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	dayStart := deck.StudyDayStart(now)
	deck.OverrideDate = &dayStart
	deck.OverrideNewCards = newCards
	deck.OverrideReviewCards = reviewCards
	deck.UpdatedAt = now

	updated, err := u.decks.Update(ctx, deck)
	if err != nil {
		return nil, err
	}

	limits := updated.EffectiveLimits(now)
	return &limits, nil
}

// loadDeckCard fetches a card and verifies it belongs to the deck.
func (u *studyUsecase) loadDeckCard(ctx context.Context, deckID, cardID int64) (*entity.Card, error) {
	if cardID <= 0 {
		return nil, entity.ErrCardNotFound
	}
	card, err := u.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.DeckID != deckID {
		return nil, entity.ErrCardNotFound
	}
	return card, nil
}

func remaining(limit uint32, used int64) int {
	left := int64(limit) - used
	if left < 0 {
		return 0
	}
	return int(left)
}

func toQueueItems(cards []entity.Card, dir entity.Direction) []entity.StudyQueueItem {
	return lo.Map(cards, func(card entity.Card, _ int) entity.StudyQueueItem {
		sched := card.Schedule(dir)
		return entity.StudyQueueItem{
			CardID:    card.ID,
			Front:     card.Front,
			Meanings:  card.Meanings,
			State:     sched.State,
			IsNew:     sched.State == entity.StateNew,
			Direction: dir,
		}
	})
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefTime(v *time.Time) time.Time {
	if v == nil {
		return time.Time{}
	}
	return *v
}
