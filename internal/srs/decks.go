package srs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

// SeedDeck is one starter deck as declared in the decks YAML file.
type SeedDeck struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Cards       []struct {
		Front string `yaml:"front"`
		Back  string `yaml:"back"`
	} `yaml:"cards"`
}

// SeedFile is the top-level structure of the decks YAML file.
type SeedFile struct {
	Decks []SeedDeck `yaml:"decks"`
}

// LoadSeedDecks reads and parses the starter deck file.
func LoadSeedDecks(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file: %w", err)
	}

	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deck YAML: %w", err)
	}
	return &file, nil
}

// SeedCards flattens the seed decks into freshly authored cards, all due
// immediately.
func (f *SeedFile) SeedCards(clock timeutil.Clock) []Card {
	var cards []Card
	for _, deck := range f.Decks {
		for _, c := range deck.Cards {
			cards = append(cards, NewCard(clock, deck.ID, c.Front, c.Back))
		}
	}
	return cards
}
