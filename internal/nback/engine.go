package nback

import (
	"math"
	"math/rand"
	"time"
)

// Round is one stimulus in a drill sequence: a grid cell plus a symbol.
// The match flags record whether each channel equals the round presented
// backDistance steps earlier.
type Round struct {
	Position        int    `json:"position"`
	Symbol          string `json:"symbol"`
	IsPositionMatch bool   `json:"isPositionMatch"`
	IsSymbolMatch   bool   `json:"isSymbolMatch"`
}

// Engine generates stimulus sequences. It owns its random source so
// sessions and tests can seed it deterministically.
type Engine struct {
	cfg Config
	rng *rand.Rand
}

// NewEngine builds an engine from cfg. A nil rng gets a time-seeded one.
func NewEngine(cfg Config, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{cfg: cfg.normalized(), rng: rng}
}

// GenerateRounds produces totalRounds rounds for the given back
// distance. Rounds before index backDistance can never match; from then
// on each channel independently matches the round backDistance steps
// earlier with the configured probability, and is guaranteed to differ
// otherwise.
func (e *Engine) GenerateRounds(backDistance, totalRounds int) []Round {
	rounds := make([]Round, 0, totalRounds)

	for i := 0; i < totalRounds; i++ {
		position := e.rng.Intn(e.cfg.gridPositions())
		symbol := e.cfg.Symbols[e.rng.Intn(len(e.cfg.Symbols))]
		isPositionMatch := false
		isSymbolMatch := false

		if i >= backDistance {
			back := rounds[i-backDistance]

			if e.rng.Float64() < e.cfg.MatchProbability {
				position = back.Position
				isPositionMatch = true
			} else {
				for position == back.Position {
					position = e.rng.Intn(e.cfg.gridPositions())
				}
			}

			if e.rng.Float64() < e.cfg.MatchProbability {
				symbol = back.Symbol
				isSymbolMatch = true
			} else {
				for symbol == back.Symbol {
					symbol = e.cfg.Symbols[e.rng.Intn(len(e.cfg.Symbols))]
				}
			}
		}

		rounds = append(rounds, Round{
			Position:        position,
			Symbol:          symbol,
			IsPositionMatch: isPositionMatch,
			IsSymbolMatch:   isSymbolMatch,
		})
	}

	return rounds
}

// Evaluate scores one round. A channel is correct when the press state
// equals the match flag, so true negatives count the same as hits.
func Evaluate(round Round, pressedPosition, pressedSymbol bool) (positionCorrect, symbolCorrect bool) {
	return pressedPosition == round.IsPositionMatch, pressedSymbol == round.IsSymbolMatch
}

// Accuracy holds rounded per-channel percentages and their rounded
// average.
type Accuracy struct {
	Position int `json:"positionAccuracy"`
	Symbol   int `json:"symbolAccuracy"`
	Overall  int `json:"overallAccuracy"`
}

// CalculateAccuracy aggregates per-channel counters. Each channel is
// rounded independently and the overall value is the rounded average of
// the two rounded channels. The two-stage rounding is deliberate: the
// adaptive leveling thresholds were tuned against it, so collapsing it
// into a single combined ratio would shift boundary sessions. Channels
// with no attempts report 0.
func CalculateAccuracy(positionCorrect, positionIncorrect, symbolCorrect, symbolIncorrect int) Accuracy {
	var acc Accuracy
	if total := positionCorrect + positionIncorrect; total > 0 {
		acc.Position = int(math.Round(float64(positionCorrect) / float64(total) * 100))
	}
	if total := symbolCorrect + symbolIncorrect; total > 0 {
		acc.Symbol = int(math.Round(float64(symbolCorrect) / float64(total) * 100))
	}
	acc.Overall = int(math.Round(float64(acc.Position+acc.Symbol) / 2))
	return acc
}
