package httpapi

import (
	"time"

	"github.com/eslsoft/flashdeck/internal/entity"
)

// Step durations cross the wire as whole seconds.

type oracleConfigDTO struct {
	RequestRetention float64 `json:"request_retention"`
	MaximumInterval  uint32  `json:"maximum_interval"`
	LearningSteps    []int64 `json:"learning_steps"`
	RelearningSteps  []int64 `json:"relearning_steps"`
}

type deckRequest struct {
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	DailyNewCards    uint32           `json:"daily_new_cards"`
	DailyReviewCards uint32           `json:"daily_review_cards"`
	DailyResetHour   int              `json:"daily_reset_hour"`
	EnableReverse    bool             `json:"enable_reverse"`
	Oracle           *oracleConfigDTO `json:"oracle,omitempty"`
}

type deckResponse struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	DailyNewCards    uint32          `json:"daily_new_cards"`
	DailyReviewCards uint32          `json:"daily_review_cards"`
	DailyResetHour   int             `json:"daily_reset_hour"`
	EnableReverse    bool            `json:"enable_reverse"`
	Oracle           oracleConfigDTO `json:"oracle"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type deckListResponse struct {
	Decks []deckResponse `json:"decks"`
	Total int64          `json:"total"`
}

type cardRequest struct {
	Front    string           `json:"front"`
	Meanings []entity.Meaning `json:"meanings"`
}

type scheduleDTO struct {
	State         entity.CardState `json:"state"`
	Due           *time.Time       `json:"due,omitempty"`
	Stability     *float64         `json:"stability,omitempty"`
	Difficulty    *float64         `json:"difficulty,omitempty"`
	ScheduledDays uint32           `json:"scheduled_days"`
	Reps          uint32           `json:"reps"`
	Lapses        uint32           `json:"lapses"`
	LastReview    *time.Time       `json:"last_review,omitempty"`
}

type cardResponse struct {
	ID        int64            `json:"id"`
	DeckID    int64            `json:"deck_id"`
	Front     string           `json:"front"`
	Meanings  []entity.Meaning `json:"meanings,omitempty"`
	Forward   scheduleDTO      `json:"forward"`
	Reverse   scheduleDTO      `json:"reverse"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type cardListResponse struct {
	Cards []cardResponse `json:"cards"`
	Total int64          `json:"total"`
}

type queueItemDTO struct {
	CardID    int64            `json:"card_id"`
	Front     string           `json:"front"`
	Meanings  []entity.Meaning `json:"meanings,omitempty"`
	State     entity.CardState `json:"state"`
	IsNew     bool             `json:"is_new"`
	Direction entity.Direction `json:"direction"`
}

type queueResponse struct {
	Items []queueItemDTO `json:"items"`
}

type reviewRequest struct {
	CardID    int64  `json:"card_id"`
	Rating    string `json:"rating"`
	Direction string `json:"direction"`
}

type reviewResponse struct {
	CardID int64            `json:"card_id"`
	Rating entity.Rating    `json:"rating"`
	Due    time.Time        `json:"due"`
	State  entity.CardState `json:"state"`
}

type summaryResponse struct {
	TotalCards         int64  `json:"total_cards"`
	NewCount           int64  `json:"new_count"`
	ReviewCount        int64  `json:"review_count"`
	TodayStudied       int64  `json:"today_studied"`
	TodayNewStudied    int64  `json:"today_new_studied"`
	TodayReviewStudied int64  `json:"today_review_studied"`
	DailyNewCards      uint32 `json:"daily_new_cards"`
	DailyReviewCards   uint32 `json:"daily_review_cards"`
}

type overrideRequest struct {
	NewCards    *uint32 `json:"new_cards"`
	ReviewCards *uint32 `json:"review_cards"`
}

type limitsResponse struct {
	NewCards    uint32 `json:"new_cards"`
	ReviewCards uint32 `json:"review_cards"`
}

func stepsToSeconds(steps []time.Duration) []int64 {
	seconds := make([]int64, len(steps))
	for i, step := range steps {
		seconds[i] = int64(step / time.Second)
	}
	return seconds
}

func stepsFromSeconds(seconds []int64) []time.Duration {
	if seconds == nil {
		return nil
	}
	steps := make([]time.Duration, len(seconds))
	for i, s := range seconds {
		steps[i] = time.Duration(s) * time.Second
	}
	return steps
}

func deckFromRequest(req *deckRequest) *entity.Deck {
	deck := &entity.Deck{
		Name:             req.Name,
		Description:      req.Description,
		DailyNewCards:    req.DailyNewCards,
		DailyReviewCards: req.DailyReviewCards,
		DailyResetHour:   req.DailyResetHour,
		EnableReverse:    req.EnableReverse,
	}
	if req.Oracle != nil {
		deck.Oracle = entity.OracleConfig{
			RequestRetention: req.Oracle.RequestRetention,
			MaximumInterval:  req.Oracle.MaximumInterval,
			LearningSteps:    stepsFromSeconds(req.Oracle.LearningSteps),
			RelearningSteps:  stepsFromSeconds(req.Oracle.RelearningSteps),
		}
	}
	return deck
}

func deckToResponse(deck *entity.Deck) deckResponse {
	return deckResponse{
		ID:               deck.ID,
		Name:             deck.Name,
		Description:      deck.Description,
		DailyNewCards:    deck.DailyNewCards,
		DailyReviewCards: deck.DailyReviewCards,
		DailyResetHour:   deck.DailyResetHour,
		EnableReverse:    deck.EnableReverse,
		Oracle: oracleConfigDTO{
			RequestRetention: deck.Oracle.RequestRetention,
			MaximumInterval:  deck.Oracle.MaximumInterval,
			LearningSteps:    stepsToSeconds(deck.Oracle.LearningSteps),
			RelearningSteps:  stepsToSeconds(deck.Oracle.RelearningSteps),
		},
		CreatedAt: deck.CreatedAt,
		UpdatedAt: deck.UpdatedAt,
	}
}

func scheduleToDTO(sched entity.CardSchedule) scheduleDTO {
	return scheduleDTO{
		State:         sched.State,
		Due:           sched.Due,
		Stability:     sched.Stability,
		Difficulty:    sched.Difficulty,
		ScheduledDays: sched.ScheduledDays,
		Reps:          sched.Reps,
		Lapses:        sched.Lapses,
		LastReview:    sched.LastReview,
	}
}

func cardToResponse(card *entity.Card) cardResponse {
	return cardResponse{
		ID:        card.ID,
		DeckID:    card.DeckID,
		Front:     card.Front,
		Meanings:  card.Meanings,
		Forward:   scheduleToDTO(card.Forward),
		Reverse:   scheduleToDTO(card.Reverse),
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
}
