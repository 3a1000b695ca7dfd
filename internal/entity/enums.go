package entity

import (
	"encoding"
	"fmt"
	"strings"
)

// Rating is the learner's self-assessment submitted with a review.
type Rating int

const (
	RatingUnknown    Rating = iota + 1 // no recall
	RatingUnfamiliar                   // recalled with difficulty
	RatingKnown                        // recalled
)

var (
	ratingNames  = [...]string{RatingUnknown: "unknown", RatingUnfamiliar: "unfamiliar", RatingKnown: "known"}
	ratingByName = map[string]Rating{
		"unknown":    RatingUnknown,
		"unfamiliar": RatingUnfamiliar,
		"known":      RatingKnown,
	}
)

var (
	_ fmt.Stringer             = Rating(0)
	_ encoding.TextMarshaler   = Rating(0)
	_ encoding.TextUnmarshaler = (*Rating)(nil)
)

// IsValid reports whether r is one of the three defined ratings.
func (r Rating) IsValid() bool {
	return r >= RatingUnknown && r <= RatingKnown
}

func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRating, int(r))
	}
	return []byte(ratingNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rating) UnmarshalText(text []byte) error {
	v, ok := ratingByName[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidRating, text)
	}
	*r = v
	return nil
}

// Direction identifies which presentation of a card is being studied.
// Forward shows the front and asks for the meaning; reverse is the inverse.
type Direction int

const (
	DirectionForward Direction = iota + 1
	DirectionReverse
)

var (
	directionNames  = [...]string{DirectionForward: "forward", DirectionReverse: "reverse"}
	directionByName = map[string]Direction{
		"forward": DirectionForward,
		"reverse": DirectionReverse,
	}
)

var (
	_ fmt.Stringer             = Direction(0)
	_ encoding.TextMarshaler   = Direction(0)
	_ encoding.TextUnmarshaler = (*Direction)(nil)
)

// IsValid reports whether d is forward or reverse.
func (d Direction) IsValid() bool {
	return d == DirectionForward || d == DirectionReverse
}

func (d Direction) String() string {
	if d.IsValid() {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	v, ok := directionByName[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, text)
	}
	*d = v
	return nil
}

// CardState is the learning stage of one direction of a card.
type CardState int

const (
	StateNew        CardState = iota + 1 // never studied
	StateLearning                        // in initial learning steps
	StateReview                          // graduated to the long-term review cycle
	StateRelearning                      // lapsed, relearning
)

var (
	stateNames  = [...]string{StateNew: "new", StateLearning: "learning", StateReview: "review", StateRelearning: "relearning"}
	stateByName = map[string]CardState{
		"new":        StateNew,
		"learning":   StateLearning,
		"review":     StateReview,
		"relearning": StateRelearning,
	}
)

var (
	_ fmt.Stringer             = CardState(0)
	_ encoding.TextMarshaler   = CardState(0)
	_ encoding.TextUnmarshaler = (*CardState)(nil)
)

// IsValid reports whether s is a defined card state.
func (s CardState) IsValid() bool {
	return s >= StateNew && s <= StateRelearning
}

func (s CardState) String() string {
	if s.IsValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("CardState(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s CardState) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCardState, int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *CardState) UnmarshalText(text []byte) error {
	v, ok := stateByName[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidCardState, text)
	}
	*s = v
	return nil
}

// ParseCardState converts a stored state string into a CardState.
// Unrecognised values fall back to StateNew.
func ParseCardState(code string) CardState {
	if v, ok := stateByName[strings.ToLower(strings.TrimSpace(code))]; ok {
		return v
	}
	return StateNew
}
