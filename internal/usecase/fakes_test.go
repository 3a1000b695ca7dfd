package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/eslsoft/flashdeck/internal/entity"
	"github.com/eslsoft/flashdeck/internal/repository"
)

// In-memory fakes shared by the usecase tests.

type fakeDeckRepo struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]*entity.Deck
}

func newFakeDeckRepo() *fakeDeckRepo {
	return &fakeDeckRepo{items: make(map[int64]*entity.Deck)}
}

func (r *fakeDeckRepo) Create(ctx context.Context, deck *entity.Deck) (*entity.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	copy := cloneDeck(deck)
	copy.ID = r.seq
	r.items[copy.ID] = copy
	return cloneDeck(copy), nil
}

func (r *fakeDeckRepo) Update(ctx context.Context, deck *entity.Deck) (*entity.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[deck.ID]; !ok {
		return nil, entity.ErrDeckNotFound
	}
	copy := cloneDeck(deck)
	r.items[copy.ID] = copy
	return cloneDeck(copy), nil
}

func (r *fakeDeckRepo) GetByID(ctx context.Context, id int64) (*entity.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	deck, ok := r.items[id]
	if !ok {
		return nil, entity.ErrDeckNotFound
	}
	return cloneDeck(deck), nil
}

func (r *fakeDeckRepo) List(ctx context.Context, query *repository.ListDeckQuery) ([]entity.Deck, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []entity.Deck
	for _, deck := range r.items {
		if deck.UserID == query.UserID {
			result = append(result, *cloneDeck(deck))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

func (r *fakeDeckRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return entity.ErrDeckNotFound
	}
	delete(r.items, id)
	return nil
}

func cloneDeck(src *entity.Deck) *entity.Deck {
	if src == nil {
		return nil
	}
	copy := *src
	if src.OverrideDate != nil {
		v := *src.OverrideDate
		copy.OverrideDate = &v
	}
	if src.OverrideNewCards != nil {
		v := *src.OverrideNewCards
		copy.OverrideNewCards = &v
	}
	if src.OverrideReviewCards != nil {
		v := *src.OverrideReviewCards
		copy.OverrideReviewCards = &v
	}
	copy.Oracle.LearningSteps = append([]time.Duration(nil), src.Oracle.LearningSteps...)
	copy.Oracle.RelearningSteps = append([]time.Duration(nil), src.Oracle.RelearningSteps...)
	return &copy
}

type fakeCardRepo struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]*entity.Card

	listDueCalls int
	listNewCalls int

	// failUpdates makes the next n UpdateSchedule calls lose the race.
	failUpdates int
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{items: make(map[int64]*entity.Card)}
}

func (r *fakeCardRepo) Create(ctx context.Context, card *entity.Card) (*entity.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	copy := cloneCard(card)
	copy.ID = r.seq
	r.items[copy.ID] = copy
	return cloneCard(copy), nil
}

func (r *fakeCardRepo) GetByID(ctx context.Context, id int64) (*entity.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	card, ok := r.items[id]
	if !ok {
		return nil, entity.ErrCardNotFound
	}
	return cloneCard(card), nil
}

func (r *fakeCardRepo) List(ctx context.Context, query *repository.ListCardQuery) ([]entity.Card, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []entity.Card
	for _, card := range r.items {
		if card.DeckID == query.DeckID {
			result = append(result, *cloneCard(card))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

func (r *fakeCardRepo) Delete(ctx context.Context, deckID, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	card, ok := r.items[id]
	if !ok || card.DeckID != deckID {
		return entity.ErrCardNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeCardRepo) ListDue(ctx context.Context, deckID int64, dir entity.Direction, now time.Time, limit int) ([]entity.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.listDueCalls++
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()
	var due []entity.Card
	for _, card := range r.items {
		sched := card.Schedule(dir)
		if card.DeckID != deckID || sched.State == entity.StateNew {
			continue
		}
		if sched.Due == nil || sched.Due.After(now) {
			continue
		}
		due = append(due, *cloneCard(card))
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].Schedule(dir).Due.Before(*due[j].Schedule(dir).Due)
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (r *fakeCardRepo) ListNew(ctx context.Context, deckID int64, dir entity.Direction, limit int) ([]entity.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.listNewCalls++
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()
	var fresh []entity.Card
	for _, card := range r.items {
		if card.DeckID != deckID || card.Schedule(dir).State != entity.StateNew {
			continue
		}
		fresh = append(fresh, *cloneCard(card))
	}
	sort.Slice(fresh, func(i, j int) bool {
		if fresh[i].CreatedAt.Equal(fresh[j].CreatedAt) {
			return fresh[i].ID < fresh[j].ID
		}
		return fresh[i].CreatedAt.Before(fresh[j].CreatedAt)
	})
	if len(fresh) > limit {
		fresh = fresh[:limit]
	}
	return fresh, nil
}

func (r *fakeCardRepo) CountByDeck(ctx context.Context, deckID int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, card := range r.items {
		if card.DeckID == deckID {
			n++
		}
	}
	return n, nil
}

func (r *fakeCardRepo) CountNew(ctx context.Context, deckID int64, dir entity.Direction) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, card := range r.items {
		if card.DeckID == deckID && card.Schedule(dir).State == entity.StateNew {
			n++
		}
	}
	return n, nil
}

func (r *fakeCardRepo) CountDue(ctx context.Context, deckID int64, dir entity.Direction, now time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, card := range r.items {
		sched := card.Schedule(dir)
		if card.DeckID != deckID || sched.State == entity.StateNew {
			continue
		}
		if sched.Due != nil && !sched.Due.After(now) {
			n++
		}
	}
	return n, nil
}

func (r *fakeCardRepo) UpdateSchedule(ctx context.Context, cardID int64, dir entity.Direction, sched entity.CardSchedule, expectedVersion int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdates > 0 {
		r.failUpdates--
		return entity.ErrReviewConflict
	}
	card, ok := r.items[cardID]
	if !ok {
		return entity.ErrCardNotFound
	}
	if card.Version != expectedVersion {
		return entity.ErrReviewConflict
	}
	card.SetSchedule(dir, sched)
	card.Version++
	return nil
}

func cloneCard(src *entity.Card) *entity.Card {
	if src == nil {
		return nil
	}
	copy := *src
	if src.Meanings != nil {
		copy.Meanings = append([]entity.Meaning(nil), src.Meanings...)
	}
	copy.Forward = cloneSched(src.Forward)
	copy.Reverse = cloneSched(src.Reverse)
	return &copy
}

func cloneSched(src entity.CardSchedule) entity.CardSchedule {
	out := src
	if src.Due != nil {
		v := *src.Due
		out.Due = &v
	}
	if src.Stability != nil {
		v := *src.Stability
		out.Stability = &v
	}
	if src.Difficulty != nil {
		v := *src.Difficulty
		out.Difficulty = &v
	}
	if src.LastReview != nil {
		v := *src.LastReview
		out.LastReview = &v
	}
	return out
}

type fakeLogRepo struct {
	mu      sync.RWMutex
	seq     int64
	entries []entity.ReviewLogEntry
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{}
}

func (r *fakeLogRepo) Append(ctx context.Context, entry *entity.ReviewLogEntry) (*entity.ReviewLogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	copy := *entry
	copy.ID = r.seq
	r.entries = append(r.entries, copy)
	return &copy, nil
}

func (r *fakeLogRepo) CountSince(ctx context.Context, deckID int64, since time.Time) (entity.StudyCounts, error) {
	if err := ctx.Err(); err != nil {
		return entity.StudyCounts{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var counts entity.StudyCounts
	for _, e := range r.entries {
		if e.DeckID != deckID || e.ReviewedAt.Before(since) {
			continue
		}
		if e.PrevState == entity.StateNew {
			counts.New++
		} else {
			counts.Review++
		}
	}
	return counts, nil
}

func (r *fakeLogRepo) ListByCard(ctx context.Context, cardID int64) ([]entity.ReviewLogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []entity.ReviewLogEntry
	for _, e := range r.entries {
		if e.CardID == cardID {
			result = append(result, e)
		}
	}
	return result, nil
}

// stubOracle lets tests control schedule transitions precisely.
type stubOracle struct {
	advance func(sched entity.CardSchedule, rating entity.Rating, now time.Time, cfg entity.OracleConfig) (entity.CardSchedule, error)
}

func (o *stubOracle) Advance(sched entity.CardSchedule, rating entity.Rating, now time.Time, cfg entity.OracleConfig) (entity.CardSchedule, error) {
	return o.advance(sched, rating, now, cfg)
}
