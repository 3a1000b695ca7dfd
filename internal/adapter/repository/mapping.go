package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/eslsoft/flashdeck/internal/entity"
	"github.com/eslsoft/flashdeck/internal/infrastructure/database/model"
)

const uniqueViolationCode = "23505"

// isUniqueViolation detects duplicate-key failures across both drivers.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func deckToModel(deck *entity.Deck) (*model.Deck, error) {
	learning, err := stepsToJSON(deck.Oracle.LearningSteps)
	if err != nil {
		return nil, fmt.Errorf("encode learning steps: %w", err)
	}
	relearning, err := stepsToJSON(deck.Oracle.RelearningSteps)
	if err != nil {
		return nil, fmt.Errorf("encode relearning steps: %w", err)
	}

	return &model.Deck{
		ID:                  deck.ID,
		UserID:              deck.UserID,
		Name:                deck.Name,
		Description:         deck.Description,
		DailyNewCards:       deck.DailyNewCards,
		DailyReviewCards:    deck.DailyReviewCards,
		DailyResetHour:      deck.DailyResetHour,
		EnableReverse:       deck.EnableReverse,
		RequestRetention:    deck.Oracle.RequestRetention,
		MaximumInterval:     deck.Oracle.MaximumInterval,
		LearningSteps:       learning,
		RelearningSteps:     relearning,
		OverrideDate:        deck.OverrideDate,
		OverrideNewCards:    deck.OverrideNewCards,
		OverrideReviewCards: deck.OverrideReviewCards,
		CreatedAt:           deck.CreatedAt,
		UpdatedAt:           deck.UpdatedAt,
	}, nil
}

func deckFromModel(row *model.Deck) (*entity.Deck, error) {
	learning, err := stepsFromJSON(row.LearningSteps)
	if err != nil {
		return nil, fmt.Errorf("decode learning steps: %w", err)
	}
	relearning, err := stepsFromJSON(row.RelearningSteps)
	if err != nil {
		return nil, fmt.Errorf("decode relearning steps: %w", err)
	}

	return &entity.Deck{
		ID:               row.ID,
		UserID:           row.UserID,
		Name:             row.Name,
		Description:      row.Description,
		DailyNewCards:    row.DailyNewCards,
		DailyReviewCards: row.DailyReviewCards,
		DailyResetHour:   row.DailyResetHour,
		EnableReverse:    row.EnableReverse,
		Oracle: entity.OracleConfig{
			RequestRetention: row.RequestRetention,
			MaximumInterval:  row.MaximumInterval,
			LearningSteps:    learning,
			RelearningSteps:  relearning,
		},
		OverrideDate:        row.OverrideDate,
		OverrideNewCards:    row.OverrideNewCards,
		OverrideReviewCards: row.OverrideReviewCards,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}, nil
}

// Step durations are stored as whole seconds in JSON.
func stepsToJSON(steps []time.Duration) (datatypes.JSON, error) {
	seconds := make([]int64, len(steps))
	for i, step := range steps {
		seconds[i] = int64(step / time.Second)
	}
	raw, err := json.Marshal(seconds)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func stepsFromJSON(raw datatypes.JSON) ([]time.Duration, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var seconds []int64
	if err := json.Unmarshal(raw, &seconds); err != nil {
		return nil, err
	}
	steps := make([]time.Duration, len(seconds))
	for i, s := range seconds {
		steps[i] = time.Duration(s) * time.Second
	}
	return steps, nil
}

func cardToModel(card *entity.Card) (*model.Card, error) {
	meanings, err := json.Marshal(card.Meanings)
	if err != nil {
		return nil, fmt.Errorf("encode meanings: %w", err)
	}

	return &model.Card{
		ID:        card.ID,
		DeckID:    card.DeckID,
		Front:     card.Front,
		Meanings:  datatypes.JSON(meanings),
		Forward:   scheduleToModel(card.Forward),
		Reverse:   scheduleToModel(card.Reverse),
		Version:   card.Version,
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}, nil
}

func cardFromModel(row *model.Card) (*entity.Card, error) {
	var meanings []entity.Meaning
	if len(row.Meanings) > 0 {
		if err := json.Unmarshal(row.Meanings, &meanings); err != nil {
			return nil, fmt.Errorf("decode meanings: %w", err)
		}
	}

	return &entity.Card{
		ID:        row.ID,
		DeckID:    row.DeckID,
		Front:     row.Front,
		Meanings:  meanings,
		Forward:   scheduleFromModel(row.Forward),
		Reverse:   scheduleFromModel(row.Reverse),
		Version:   row.Version,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func scheduleToModel(sched entity.CardSchedule) model.Schedule {
	return model.Schedule{
		State:         sched.State.String(),
		Due:           sched.Due,
		Stability:     sched.Stability,
		Difficulty:    sched.Difficulty,
		ElapsedDays:   sched.ElapsedDays,
		ScheduledDays: sched.ScheduledDays,
		Reps:          sched.Reps,
		Lapses:        sched.Lapses,
		LastReview:    sched.LastReview,
		LearningStep:  sched.LearningStep,
	}
}

func scheduleFromModel(row model.Schedule) entity.CardSchedule {
	return entity.CardSchedule{
		State:         entity.ParseCardState(row.State),
		Due:           row.Due,
		Stability:     row.Stability,
		Difficulty:    row.Difficulty,
		ElapsedDays:   row.ElapsedDays,
		ScheduledDays: row.ScheduledDays,
		Reps:          row.Reps,
		Lapses:        row.Lapses,
		LastReview:    row.LastReview,
		LearningStep:  row.LearningStep,
	}
}

func reviewLogToModel(entry *entity.ReviewLogEntry) *model.ReviewLog {
	return &model.ReviewLog{
		ID:             entry.ID,
		DeckID:         entry.DeckID,
		CardID:         entry.CardID,
		Direction:      entry.Direction.String(),
		Rating:         entry.Rating.String(),
		ReviewedAt:     entry.ReviewedAt,
		PrevState:      entry.PrevState.String(),
		PrevStability:  entry.PrevStability,
		PrevDifficulty: entry.PrevDifficulty,
		NewState:       entry.NewState.String(),
		NewStability:   entry.NewStability,
		NewDifficulty:  entry.NewDifficulty,
		ScheduledDays:  entry.ScheduledDays,
	}
}

func reviewLogFromModel(row *model.ReviewLog) (*entity.ReviewLogEntry, error) {
	var dir entity.Direction
	if err := dir.UnmarshalText([]byte(row.Direction)); err != nil {
		return nil, err
	}
	var rating entity.Rating
	if err := rating.UnmarshalText([]byte(row.Rating)); err != nil {
		return nil, err
	}

	return &entity.ReviewLogEntry{
		ID:             row.ID,
		DeckID:         row.DeckID,
		CardID:         row.CardID,
		Direction:      dir,
		Rating:         rating,
		ReviewedAt:     row.ReviewedAt,
		PrevState:      entity.ParseCardState(row.PrevState),
		PrevStability:  row.PrevStability,
		PrevDifficulty: row.PrevDifficulty,
		NewState:       entity.ParseCardState(row.NewState),
		NewStability:   row.NewStability,
		NewDifficulty:  row.NewDifficulty,
		ScheduledDays:  row.ScheduledDays,
	}, nil
}
