package rules

import (
	"errors"
	"fmt"

	"DouDizhu/internal/game/card"
)

var (
	ErrInvalidCombination = errors.New("cards do not form a valid combination")
	ErrCannotBeat         = errors.New("play does not beat the cards on the table")
)

// CanPlay reports whether candidate may be played on top of last.
// first means the table is empty and any valid combination leads.
func CanPlay(candidate, last []card.Card, first bool) bool {
	return Check(candidate, last, first) == nil
}

// Check is CanPlay with a reason.
func Check(candidate, last []card.Card, first bool) error {
	cand := Classify(candidate)
	if !cand.IsValid() {
		return ErrInvalidCombination
	}
	if first || len(last) == 0 {
		return nil
	}
	if !Beats(cand, Classify(last)) {
		return fmt.Errorf("%w: %s(%d) vs table", ErrCannotBeat, cand.Category, cand.Value)
	}
	return nil
}

// Beats compares two classified combinations.
func Beats(cand, prev Combination) bool {
	switch {
	case !cand.IsValid():
		return false
	case cand.Category == Rocket:
		return true
	case prev.Category == Rocket:
		return false
	case cand.Category == Bomb:
		return prev.Category != Bomb || cand.Value > prev.Value
	case cand.Category == prev.Category:
		return cand.Size == prev.Size && cand.Value > prev.Value
	}
	return false
}

// Doubles reports whether a play of this category doubles the wager.
func (c Combination) Doubles() bool {
	return c.Category == Bomb || c.Category == Rocket
}
