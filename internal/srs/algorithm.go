// Package srs implements the SM-2 family scheduler that spaces flashcard
// reviews. All date math is day-granular and routed through the shared
// clock so review timing is testable.
package srs

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

const (
	// MinEaseFactor is the floor below which a card's ease never drops.
	MinEaseFactor = 1.3
	// DefaultEaseFactor is assigned to newly authored cards.
	DefaultEaseFactor = 2.5
)

// Rating is the four-way recall quality grade.
type Rating string

const (
	RatingAgain Rating = "again"
	RatingHard  Rating = "hard"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

// Ratings lists the valid grades in display order.
var Ratings = []Rating{RatingAgain, RatingHard, RatingGood, RatingEasy}

// ErrInvalidRating marks a rating outside the four-valued enum. That is
// a caller bug, not a runtime condition, so Review fails loudly.
var ErrInvalidRating = errors.New("srs: invalid rating")

// Card is one flashcard with its scheduling state. Only Review mutates
// the scheduling fields.
type Card struct {
	ID           string  `json:"id"`
	UserID       string  `json:"userId"`
	Deck         string  `json:"deck"`
	Front        string  `json:"front"`
	Back         string  `json:"back"`
	IntervalDays int     `json:"intervalDays"`
	EaseFactor   float64 `json:"easeFactor"`
	NextReview   string  `json:"nextReview"`
	LastReviewed string  `json:"lastReviewed,omitempty"`
	ReviewCount  int     `json:"reviewCount"`
}

// Review applies a rating to a card and returns the updated card. The
// receiver is not mutated.
func Review(clock timeutil.Clock, card Card, rating Rating) (Card, error) {
	interval, ease, err := project(card, rating)
	if err != nil {
		return Card{}, err
	}

	today := clock.Today()
	card.IntervalDays = interval
	card.EaseFactor = ease
	card.ReviewCount++
	card.LastReviewed = today
	card.NextReview = clock.Now().AddDate(0, 0, interval).Format(timeutil.DateLayout)
	return card, nil
}

// project computes the interval and ease a rating would produce, without
// touching the card.
func project(card Card, rating Rating) (int, float64, error) {
	interval := card.IntervalDays
	ease := card.EaseFactor

	switch rating {
	case RatingAgain:
		interval = 1
		ease = math.Max(MinEaseFactor, ease-0.2)
	case RatingHard:
		interval = int(math.Max(1, math.Round(float64(interval)*1.2)))
		ease = math.Max(MinEaseFactor, ease-0.15)
	case RatingGood:
		switch interval {
		case 0:
			interval = 1
		case 1:
			interval = 6
		default:
			interval = int(math.Round(float64(interval) * ease))
		}
	case RatingEasy:
		switch interval {
		case 0:
			interval = 4
		case 1:
			interval = 10
		default:
			interval = int(math.Round(float64(interval) * ease * 1.3))
		}
		ease += 0.15
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRating, rating)
	}
	return interval, ease, nil
}

// IsDue reports whether the card should be reviewed today. Due means
// the next review date is today or any past date.
func IsDue(clock timeutil.Clock, card Card) bool {
	return card.NextReview <= clock.Today()
}

// NewCard authors a card due immediately.
func NewCard(clock timeutil.Clock, deck, front, back string) Card {
	return Card{
		ID:           newCardID(clock),
		Deck:         deck,
		Front:        front,
		Back:         back,
		IntervalDays: 0,
		EaseFactor:   DefaultEaseFactor,
		NextReview:   clock.Today(),
		ReviewCount:  0,
	}
}

func newCardID(clock timeutil.Clock) string {
	return fmt.Sprintf("srs-%d-%06x", clock.Now().UnixMilli(), rand.Intn(1<<24))
}

// ProjectIntervals returns the interval each rating would schedule,
// without mutating the card. Hosts use it to caption the rating buttons.
func ProjectIntervals(card Card) map[Rating]int {
	out := make(map[Rating]int, len(Ratings))
	for _, rating := range Ratings {
		interval, _, err := project(card, rating)
		if err != nil {
			continue
		}
		out[rating] = interval
	}
	return out
}

// FormatInterval renders a day count for the rating buttons.
func FormatInterval(days int) string {
	switch {
	case days == 0:
		return "Now"
	case days == 1:
		return "1d"
	case days < 30:
		return fmt.Sprintf("%dd", days)
	case days < 365:
		return fmt.Sprintf("%dmo", int(math.Round(float64(days)/30)))
	default:
		return fmt.Sprintf("%.1fy", float64(days)/365)
	}
}
