package rules

import (
	"sort"

	"DouDizhu/internal/game/card"
)

// Category is the shape of a set of cards; its string form goes on the wire.
type Category string

const (
	Invalid            Category = "invalid"
	Single             Category = "single"
	Pair               Category = "pair"
	Triple             Category = "triple"
	TripleWithOne      Category = "triple_with_one"
	Straight           Category = "straight"
	PairStraight       Category = "pair_straight"
	FourOfAKind        Category = "four_of_a_kind" // never produced: four of a rank is a bomb
	FourOfAKindWithOne Category = "four_of_a_kind_with_one"
	Bomb               Category = "bomb"
	Rocket             Category = "rocket"
)

const (
	RocketValue          = 18
	minStraightLen       = 5
	minPairStraightRanks = 3
)

// Combination is a classified play.
type Combination struct {
	Category Category
	// Value compares combinations of the same category: the rank that decides it.
	Value int
	Size  int
}

func (c Combination) IsValid() bool {
	return c.Category != Invalid
}

// Classify recognises the shape of cards. Order matters: rocket and bomb are
// checked before the plain shapes.
func Classify(cards []card.Card) Combination {
	n := len(cards)
	invalid := Combination{Category: Invalid, Size: n}
	if n == 0 {
		return invalid
	}
	for _, c := range cards {
		if c.IsHidden() {
			return invalid
		}
	}

	counts := card.Counts(cards)
	ranks := sortedRanks(counts)
	top := int(ranks[len(ranks)-1])

	switch {
	case n == 2 && counts[card.RankLowJoker] == 1 && counts[card.RankHighJoker] == 1:
		return Combination{Category: Rocket, Value: RocketValue, Size: n}
	case n == 4 && len(ranks) == 1:
		return Combination{Category: Bomb, Value: top, Size: n}
	case n == 1:
		return Combination{Category: Single, Value: top, Size: n}
	case n == 2 && len(ranks) == 1:
		return Combination{Category: Pair, Value: top, Size: n}
	case n == 3 && len(ranks) == 1:
		return Combination{Category: Triple, Value: top, Size: n}
	}

	if n == 4 && len(ranks) == 2 {
		if r, ok := rankWithCount(counts, 3); ok {
			return Combination{Category: TripleWithOne, Value: int(r), Size: n}
		}
	}
	if n == 5 && len(ranks) == 2 {
		if r, ok := rankWithCount(counts, 4); ok {
			return Combination{Category: FourOfAKindWithOne, Value: int(r), Size: n}
		}
	}
	if n >= minStraightLen && len(ranks) == n && sequenceOK(ranks) {
		return Combination{Category: Straight, Value: top, Size: n}
	}
	if n >= 2*minPairStraightRanks && n%2 == 0 && len(ranks) == n/2 && sequenceOK(ranks) {
		for _, r := range ranks {
			if counts[r] != 2 {
				return invalid
			}
		}
		return Combination{Category: PairStraight, Value: top, Size: n}
	}
	return invalid
}

func sortedRanks(counts map[card.Rank]int) []card.Rank {
	ranks := make([]card.Rank, 0, len(counts))
	for r := range counts {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })
	return ranks
}

func rankWithCount(counts map[card.Rank]int, want int) (card.Rank, bool) {
	for r, n := range counts {
		if n == want {
			return r, true
		}
	}
	return 0, false
}

// sequenceOK reports whether sorted distinct ranks are consecutive and stay below 2.
func sequenceOK(ranks []card.Rank) bool {
	for i, r := range ranks {
		if r >= card.Rank2 {
			return false
		}
		if i > 0 && r != ranks[i-1]+1 {
			return false
		}
	}
	return true
}
