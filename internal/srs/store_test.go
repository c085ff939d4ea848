package srs

import (
	"testing"
	"time"

	"github.com/billyribeiro-ux/cognition-os/internal/storage"
	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

func newTestStore(t *testing.T) (*Store, storage.KV) {
	t.Helper()
	kv := storage.NewMemory()
	return NewStore(testClock, kv), kv
}

func TestStoreDueFiltering(t *testing.T) {
	s, _ := newTestStore(t)

	due := s.AddCard("deck-a", "due", "x")
	future := NewCard(testClock, "deck-a", "future", "y")
	future.NextReview = "2026-12-31"
	s.cards = append(s.cards, future)

	if got := s.DueCount(); got != 1 {
		t.Fatalf("DueCount = %d, want 1", got)
	}
	current, ok := s.CurrentCard()
	if !ok {
		t.Fatal("expected a current card")
	}
	if current.ID != due.ID {
		t.Fatalf("current card = %q, want %q", current.ID, due.ID)
	}
}

func TestStoreRateAdvancesQueue(t *testing.T) {
	s, _ := newTestStore(t)
	first := s.AddCard("deck-a", "one", "1")
	second := s.AddCard("deck-a", "two", "2")

	if err := s.Rate(RatingGood); err != nil {
		t.Fatalf("Rate: %v", err)
	}

	// Rating reschedules the card out of the due queue, so the next due
	// card slides into the same index.
	current, ok := s.CurrentCard()
	if !ok {
		t.Fatal("expected a second due card")
	}
	if current.ID != second.ID {
		t.Fatalf("current card = %q, want %q", current.ID, second.ID)
	}

	updated, ok := s.Get(first.ID)
	if !ok {
		t.Fatal("rated card missing from collection")
	}
	if updated.IntervalDays != 1 || updated.ReviewCount != 1 {
		t.Fatalf("rated card not rescheduled: %+v", updated)
	}
}

func TestStoreRateExhaustedQueue(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Rate(RatingGood); err != nil {
		t.Fatalf("Rate on empty queue: %v", err)
	}
	if s.SessionReviewed() != 0 {
		t.Fatalf("SessionReviewed = %d, want 0", s.SessionReviewed())
	}
}

func TestStoreSessionAccuracy(t *testing.T) {
	s, _ := newTestStore(t)
	for i := 0; i < 3; i++ {
		s.AddCard("deck-a", "q", "a")
	}

	if got := s.SessionAccuracy(); got != 0 {
		t.Fatalf("accuracy before any review = %d, want 0", got)
	}

	for _, rating := range []Rating{RatingGood, RatingAgain, RatingEasy} {
		if err := s.Rate(rating); err != nil {
			t.Fatalf("Rate(%s): %v", rating, err)
		}
	}

	if got := s.SessionReviewed(); got != 3 {
		t.Fatalf("SessionReviewed = %d, want 3", got)
	}
	if got := s.SessionAccuracy(); got != 67 {
		t.Fatalf("SessionAccuracy = %d, want 67", got)
	}

	s.ResetSession()
	if s.SessionReviewed() != 0 || s.SessionAccuracy() != 0 {
		t.Fatal("ResetSession did not clear tallies")
	}
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	s, kv := newTestStore(t)
	card := s.AddCard("deck-a", "q", "a")

	reloaded := NewStore(testClock, kv)
	got, ok := reloaded.Get(card.ID)
	if !ok {
		t.Fatal("card missing after reload")
	}
	if got.Front != "q" || got.Back != "a" {
		t.Fatalf("reloaded card = %+v", got)
	}
}

func TestStoreCorruptBlobStartsEmpty(t *testing.T) {
	kv := storage.NewMemory()
	kv.Set(StorageKey, "{not json")

	s := NewStore(testClock, kv)
	if len(s.Cards()) != 0 {
		t.Fatalf("expected empty collection, got %d cards", len(s.Cards()))
	}
}

func TestStoreSeedIfEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	seed := []Card{
		NewCard(testClock, "deck-a", "q1", "a1"),
		NewCard(testClock, "deck-b", "q2", "a2"),
	}

	s.SeedIfEmpty(seed)
	if len(s.Cards()) != 2 {
		t.Fatalf("expected 2 seeded cards, got %d", len(s.Cards()))
	}

	// A non-empty collection is never reseeded.
	s.SeedIfEmpty(seed)
	if len(s.Cards()) != 2 {
		t.Fatalf("reseed changed collection, got %d cards", len(s.Cards()))
	}
}

func TestStoreDeleteCard(t *testing.T) {
	s, _ := newTestStore(t)
	keep := s.AddCard("deck-a", "keep", "1")
	drop := s.AddCard("deck-a", "drop", "2")

	s.DeleteCard(drop.ID)
	if _, ok := s.Get(drop.ID); ok {
		t.Fatal("deleted card still present")
	}
	if _, ok := s.Get(keep.ID); !ok {
		t.Fatal("surviving card missing")
	}
}

func TestStoreDeckSummaries(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCard("peak-performance", "q1", "a1")
	s.AddCard("cognitive-science", "q2", "a2")
	future := NewCard(testClock, "cognitive-science", "q3", "a3")
	future.NextReview = "2026-12-31"
	s.cards = append(s.cards, future)

	decks := s.Decks()
	if len(decks) != 2 {
		t.Fatalf("expected 2 decks, got %d", len(decks))
	}
	if decks[0].ID != "cognitive-science" || decks[1].ID != "peak-performance" {
		t.Fatalf("decks not sorted by ID: %+v", decks)
	}
	if decks[0].Name != "Cognitive Science" {
		t.Fatalf("deck name = %q, want %q", decks[0].Name, "Cognitive Science")
	}
	if decks[0].Total != 2 || decks[0].Due != 1 {
		t.Fatalf("cognitive-science counts = %d/%d, want 2 total 1 due", decks[0].Total, decks[0].Due)
	}
}

func TestRateCardByID(t *testing.T) {
	s, _ := newTestStore(t)
	card := s.AddCard("deck-a", "q", "a")

	updated, found, err := s.RateCard(card.ID, RatingEasy)
	if err != nil {
		t.Fatalf("RateCard: %v", err)
	}
	if !found {
		t.Fatal("card not found")
	}
	if updated.IntervalDays != 4 {
		t.Fatalf("interval = %d, want 4", updated.IntervalDays)
	}

	if _, found, _ := s.RateCard("missing", RatingGood); found {
		t.Fatal("expected missing card to report not found")
	}
}

func TestSeedFileCards(t *testing.T) {
	file := &SeedFile{Decks: []SeedDeck{{
		ID:   "test-deck",
		Name: "Test Deck",
		Cards: []struct {
			Front string `yaml:"front"`
			Back  string `yaml:"back"`
		}{{Front: "q", Back: "a"}},
	}}}

	clock := timeutil.FixedClock{Time: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	cards := file.SeedCards(clock)
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	if cards[0].Deck != "test-deck" || cards[0].Front != "q" {
		t.Fatalf("seed card = %+v", cards[0])
	}
}
