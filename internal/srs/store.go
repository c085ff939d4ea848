package srs

import (
	"math"
	"sort"
	"strings"

	"github.com/billyribeiro-ux/cognition-os/internal/storage"
	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

// StorageKey is where the full card list is persisted as one JSON blob.
const StorageKey = "cognition-os-srs"

// DeckSummary aggregates card counts per deck for the deck picker.
type DeckSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Total int    `json:"total"`
	Due   int    `json:"due"`
}

// Store owns the card collection and the running review session tallies.
// It is the sole mutator of its cards; persistence is a best-effort side
// effect of every mutation.
type Store struct {
	clock timeutil.Clock
	kv    storage.KV

	cards           []Card
	currentIndex    int
	sessionReviewed int
	sessionCorrect  int
}

// NewStore loads the persisted card list. A missing or corrupt blob
// starts an empty collection.
func NewStore(clock timeutil.Clock, kv storage.KV) *Store {
	s := &Store{clock: clock, kv: kv}
	var cards []Card
	if storage.LoadJSON(kv, StorageKey, &cards) {
		s.cards = cards
	}
	return s
}

func (s *Store) persist() {
	_ = storage.SaveJSON(s.kv, StorageKey, s.cards)
}

// Cards returns a copy of the full collection.
func (s *Store) Cards() []Card {
	return append([]Card(nil), s.cards...)
}

// DueCards returns the cards due for review today.
func (s *Store) DueCards() []Card {
	var due []Card
	for _, c := range s.cards {
		if IsDue(s.clock, c) {
			due = append(due, c)
		}
	}
	return due
}

// DueCount returns how many cards are due.
func (s *Store) DueCount() int {
	return len(s.DueCards())
}

// CurrentCard returns the card under review, or false when the session
// has exhausted the due queue.
func (s *Store) CurrentCard() (Card, bool) {
	due := s.DueCards()
	if s.currentIndex >= len(due) {
		return Card{}, false
	}
	return due[s.currentIndex], true
}

// Rate grades the current card. Rating a card reschedules it out of the
// due queue, so the index stays put and naturally points at the next due
// card. Good and easy count as correct recalls for the session tally.
func (s *Store) Rate(rating Rating) error {
	card, ok := s.CurrentCard()
	if !ok {
		return nil
	}

	updated, err := Review(s.clock, card, rating)
	if err != nil {
		return err
	}
	for i := range s.cards {
		if s.cards[i].ID == card.ID {
			s.cards[i] = updated
			break
		}
	}
	s.persist()

	s.sessionReviewed++
	if rating == RatingGood || rating == RatingEasy {
		s.sessionCorrect++
	}
	return nil
}

// RateCard grades a specific card by ID regardless of session position.
func (s *Store) RateCard(id string, rating Rating) (Card, bool, error) {
	for i := range s.cards {
		if s.cards[i].ID != id {
			continue
		}
		updated, err := Review(s.clock, s.cards[i], rating)
		if err != nil {
			return Card{}, true, err
		}
		s.cards[i] = updated
		s.persist()
		s.sessionReviewed++
		if rating == RatingGood || rating == RatingEasy {
			s.sessionCorrect++
		}
		return updated, true, nil
	}
	return Card{}, false, nil
}

// AddCard authors a new card and persists the collection.
func (s *Store) AddCard(deck, front, back string) Card {
	card := NewCard(s.clock, deck, front, back)
	s.cards = append(s.cards, card)
	s.persist()
	return card
}

// Get returns a card by ID.
func (s *Store) Get(id string) (Card, bool) {
	for _, c := range s.cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// DeleteCard removes a card. Explicit user action is the only path that
// deletes cards.
func (s *Store) DeleteCard(id string) {
	kept := s.cards[:0]
	for _, c := range s.cards {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.cards = kept
	s.persist()
}

// SeedIfEmpty loads starter cards into an empty collection.
func (s *Store) SeedIfEmpty(cards []Card) {
	if len(s.cards) > 0 {
		return
	}
	s.cards = append(s.cards, cards...)
	s.persist()
}

// ResetSession clears the review-session tallies.
func (s *Store) ResetSession() {
	s.currentIndex = 0
	s.sessionReviewed = 0
	s.sessionCorrect = 0
}

// SessionReviewed returns how many cards were graded this session.
func (s *Store) SessionReviewed() int { return s.sessionReviewed }

// SessionAccuracy is the percentage of reviews graded good or easy.
func (s *Store) SessionAccuracy() int {
	if s.sessionReviewed == 0 {
		return 0
	}
	return int(math.Round(float64(s.sessionCorrect) / float64(s.sessionReviewed) * 100))
}

// Decks summarizes the collection grouped by deck, sorted by ID.
func (s *Store) Decks() []DeckSummary {
	byID := make(map[string]*DeckSummary)
	for _, c := range s.cards {
		summary, ok := byID[c.Deck]
		if !ok {
			summary = &DeckSummary{ID: c.Deck, Name: deckName(c.Deck)}
			byID[c.Deck] = summary
		}
		summary.Total++
		if IsDue(s.clock, c) {
			summary.Due++
		}
	}

	out := make([]DeckSummary, 0, len(byID))
	for _, summary := range byID {
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// deckName turns a deck ID like "cognitive-science" into a display name.
func deckName(id string) string {
	words := strings.Split(id, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
