package entity

import "errors"

// Domain errors for decks, cards and study sessions.
var (
	ErrDeckNotFound     = errors.New("deck not found")
	ErrCardNotFound     = errors.New("card not found")
	ErrForbidden        = errors.New("deck belongs to another user")
	ErrDeckNameTaken    = errors.New("deck name already in use")
	ErrReviewConflict   = errors.New("concurrent review detected")
	ErrOracleFailure    = errors.New("scheduling oracle failed")
	ErrReverseDisabled  = errors.New("reverse study is disabled for this deck")
	ErrInvalidDeckName  = errors.New("invalid deck name")
	ErrInvalidDeckID    = errors.New("invalid deck ID")
	ErrInvalidCardID    = errors.New("invalid card ID")
	ErrInvalidCardFront = errors.New("invalid card front text")
	ErrInvalidRating    = errors.New("invalid rating")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidCardState = errors.New("invalid card state")
	ErrInvalidResetHour = errors.New("daily reset hour must be between 0 and 23")
	ErrInvalidRetention = errors.New("request retention must be in (0, 1]")
)
