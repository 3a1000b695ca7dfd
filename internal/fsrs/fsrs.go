// Package fsrs implements the FSRS v6 spaced-repetition algorithm as the
// default scheduling oracle. Advance is pure and deterministic: the same
// schedule, rating, instant and config always produce the same next schedule.
package fsrs

import (
	"errors"
	"math"
	"time"

	"github.com/eslsoft/flashdeck/internal/entity"
)

// Sentinel errors for the fsrs package.
var (
	ErrInvalidWeights = errors.New("fsrs: weights out of bounds")
	ErrInvalidRating  = errors.New("fsrs: invalid rating")
)

// grade is the internal four-valued FSRS rating scale. The public three-valued
// rating maps onto it; easy is kept so the algorithm stays faithful to FSRS.
type grade int

const (
	gradeAgain grade = iota + 1
	gradeHard
	gradeGood
	gradeEasy
)

func gradeOf(r entity.Rating) (grade, error) {
	switch r {
	case entity.RatingUnknown:
		return gradeAgain, nil
	case entity.RatingUnfamiliar:
		return gradeHard, nil
	case entity.RatingKnown:
		return gradeGood, nil
	default:
		return 0, ErrInvalidRating
	}
}

// Scheduler computes schedule transitions from FSRS weights. Per-deck knobs
// (retention target, maximum interval, step sequences) arrive with each call.
type Scheduler struct {
	w      [21]float64
	decay  float64 // -w[20]
	factor float64 // 0.9^(1/decay) - 1
}

// NewScheduler returns a Scheduler using the default FSRS v6 weights.
func NewScheduler() *Scheduler {
	s, _ := NewSchedulerWithWeights(DefaultWeights)
	return s
}

// NewSchedulerWithWeights returns a Scheduler using custom weights.
func NewSchedulerWithWeights(w [21]float64) (*Scheduler, error) {
	if err := validateWeights(w); err != nil {
		return nil, err
	}
	decay := -w[20]
	return &Scheduler{
		w:      w,
		decay:  decay,
		factor: math.Pow(0.9, 1.0/decay) - 1.0,
	}, nil
}

// Advance applies one rating to a per-direction schedule and returns the next
// schedule. The input schedule is not mutated.
func (s *Scheduler) Advance(sched entity.CardSchedule, rating entity.Rating, now time.Time, cfg entity.OracleConfig) (entity.CardSchedule, error) {
	g, err := gradeOf(rating)
	if err != nil {
		return entity.CardSchedule{}, err
	}

	retention := cfg.RequestRetention
	if retention <= 0 || retention > 1 {
		retention = 0.9
	}
	maxInterval := int(cfg.MaximumInterval)
	if maxInterval <= 0 {
		maxInterval = 36500
	}

	next := cloneSchedule(sched)

	var elapsed float64
	if next.LastReview != nil {
		elapsed = now.Sub(*next.LastReview).Hours() / 24.0
		if elapsed < 0 {
			elapsed = 0
		}
	}

	s.updateMemory(&next, g, elapsed)

	if next.State == entity.StateReview && g == gradeAgain {
		next.Lapses++
	}
	next.Reps++

	if next.State == entity.StateNew {
		next.State = entity.StateLearning
		next.LearningStep = 0
	}

	interval := s.transition(&next, g, cfg, retention, maxInterval)

	next.ScheduledDays = uint32(interval.Hours() / 24.0)
	next.ElapsedDays = uint32(elapsed)
	due := now.Add(interval)
	next.Due = &due
	last := now
	next.LastReview = &last

	return next, nil
}

func cloneSchedule(sched entity.CardSchedule) entity.CardSchedule {
	out := sched
	if sched.Due != nil {
		v := *sched.Due
		out.Due = &v
	}
	if sched.Stability != nil {
		v := *sched.Stability
		out.Stability = &v
	}
	if sched.Difficulty != nil {
		v := *sched.Difficulty
		out.Difficulty = &v
	}
	if sched.LastReview != nil {
		v := *sched.LastReview
		out.LastReview = &v
	}
	return out
}

// updateMemory updates stability and difficulty for the review.
func (s *Scheduler) updateMemory(sched *entity.CardSchedule, g grade, elapsed float64) {
	if sched.Stability == nil || sched.Difficulty == nil {
		// First review: initialize S and D.
		setFloat(&sched.Stability, s.initStability(g))
		setFloat(&sched.Difficulty, s.initDifficulty(g, true))
		return
	}

	stability := *sched.Stability
	difficulty := *sched.Difficulty

	if elapsed < 1 {
		// Same-day review.
		setFloat(&sched.Stability, s.shortTermStability(stability, g))
	} else {
		r := s.retrievability(elapsed, stability)
		setFloat(&sched.Stability, s.nextStability(difficulty, stability, r, g))
	}
	setFloat(&sched.Difficulty, s.nextDifficulty(difficulty, g))
}

func setFloat(dst **float64, v float64) {
	*dst = &v
}

// transition applies the learning-step state machine and returns the interval
// until the next review.
func (s *Scheduler) transition(sched *entity.CardSchedule, g grade, cfg entity.OracleConfig, retention float64, maxInterval int) time.Duration {
	switch sched.State {
	case entity.StateLearning:
		return s.transitionSteps(sched, g, cfg.LearningSteps, retention, maxInterval)
	case entity.StateRelearning:
		return s.transitionSteps(sched, g, cfg.RelearningSteps, retention, maxInterval)
	default:
		return s.transitionReview(sched, g, cfg.RelearningSteps, retention, maxInterval)
	}
}

func (s *Scheduler) transitionSteps(sched *entity.CardSchedule, g grade, steps []time.Duration, retention float64, maxInterval int) time.Duration {
	step := int(sched.LearningStep)

	if len(steps) == 0 || (step >= len(steps) && g != gradeAgain) {
		return s.graduate(sched, retention, maxInterval)
	}

	switch g {
	case gradeAgain:
		sched.LearningStep = 0
		return steps[0]

	case gradeHard:
		if step == 0 && len(steps) == 1 {
			return time.Duration(float64(steps[0]) * 1.5)
		}
		if step == 0 && len(steps) >= 2 {
			return (steps[0] + steps[1]) / 2
		}
		return steps[step]

	case gradeGood:
		if step+1 >= len(steps) {
			return s.graduate(sched, retention, maxInterval)
		}
		sched.LearningStep = uint32(step + 1)
		return steps[step+1]

	default:
		return s.graduate(sched, retention, maxInterval)
	}
}

func (s *Scheduler) transitionReview(sched *entity.CardSchedule, g grade, relearningSteps []time.Duration, retention float64, maxInterval int) time.Duration {
	if g == gradeAgain && len(relearningSteps) > 0 {
		sched.State = entity.StateRelearning
		sched.LearningStep = 0
		return relearningSteps[0]
	}

	// Successful recall, or a lapse with no relearning steps configured.
	sched.LearningStep = 0
	days := s.nextInterval(*sched.Stability, retention, maxInterval)
	return time.Duration(days) * 24 * time.Hour
}

func (s *Scheduler) graduate(sched *entity.CardSchedule, retention float64, maxInterval int) time.Duration {
	sched.State = entity.StateReview
	sched.LearningStep = 0
	days := s.nextInterval(*sched.Stability, retention, maxInterval)
	return time.Duration(days) * 24 * time.Hour
}

// retrievability computes R(t, S) = (1 + FACTOR * t / S) ^ DECAY.
func (s *Scheduler) retrievability(elapsedDays, stability float64) float64 {
	return math.Pow(1+s.factor*elapsedDays/stability, s.decay)
}

// initStability returns S₀(G) = clamp_s(w[G-1]).
func (s *Scheduler) initStability(g grade) float64 {
	return clampStability(s.w[g-1])
}

// initDifficulty returns D₀(G) = w[4] - e^(w[5] * (G - 1)) + 1.
func (s *Scheduler) initDifficulty(g grade, clamp bool) float64 {
	d := s.w[4] - math.Exp(s.w[5]*float64(g-1)) + 1
	if clamp {
		return clampDifficulty(d)
	}
	return d
}

// nextInterval computes round((S / FACTOR) * (r^(1/DECAY) - 1)), clamped to
// [1, maxInterval] days.
func (s *Scheduler) nextInterval(stability, retention float64, maxInterval int) int {
	ivl := stability / s.factor * (math.Pow(retention, 1.0/s.decay) - 1)
	days := int(math.Round(ivl))
	if days < 1 {
		days = 1
	}
	if days > maxInterval {
		days = maxInterval
	}
	return days
}

// shortTermStability computes the same-day review stability update.
func (s *Scheduler) shortTermStability(stability float64, g grade) float64 {
	inc := math.Exp(s.w[17]*(float64(g)-3+s.w[18])) * math.Pow(stability, -s.w[19])
	if g == gradeGood || g == gradeEasy {
		inc = math.Max(inc, 1.0)
	}
	return clampStability(stability * inc)
}

// nextDifficulty applies linear damping and mean reversion toward D₀(Easy).
func (s *Scheduler) nextDifficulty(difficulty float64, g grade) float64 {
	deltaD := -s.w[6] * (float64(g) - 3)
	dPrime := difficulty + (10-difficulty)*deltaD/9
	d0Easy := s.initDifficulty(gradeEasy, false)
	return clampDifficulty(s.w[7]*d0Easy + (1-s.w[7])*dPrime)
}

func (s *Scheduler) nextStability(d, stability, r float64, g grade) float64 {
	if g == gradeAgain {
		return s.forgetStability(d, stability, r)
	}
	return s.recallStability(d, stability, r, g)
}

// recallStability computes stability after a successful recall.
func (s *Scheduler) recallStability(d, stability, r float64, g grade) float64 {
	hardPenalty := 1.0
	if g == gradeHard {
		hardPenalty = s.w[15]
	}
	easyBonus := 1.0
	if g == gradeEasy {
		easyBonus = s.w[16]
	}
	return stability * (1 + math.Exp(s.w[8])*
		(11-d)*
		math.Pow(stability, -s.w[9])*
		(math.Exp((1-r)*s.w[10])-1)*
		hardPenalty*easyBonus)
}

// forgetStability computes stability after a lapse.
func (s *Scheduler) forgetStability(d, stability, r float64) float64 {
	long := s.w[11] *
		math.Pow(d, -s.w[12]) *
		(math.Pow(stability+1, s.w[13]) - 1) *
		math.Exp((1-r)*s.w[14])
	short := stability / math.Exp(s.w[17]*s.w[18])
	return math.Min(long, short)
}

func clampStability(v float64) float64 {
	return math.Max(v, 0.001)
}

func clampDifficulty(v float64) float64 {
	return math.Min(math.Max(v, 1), 10)
}
