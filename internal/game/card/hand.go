package card

import "sort"

// Sort orders cards by ascending rank, suit breaking ties.
func Sort(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Rank != cards[j].Rank {
			return cards[i].Rank < cards[j].Rank
		}
		return cards[i].Suit < cards[j].Suit
	})
}

// Counts tallies cards per rank.
func Counts(cards []Card) map[Rank]int {
	counts := make(map[Rank]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}

// Contains reports whether every card in sub is present in hand, respecting multiplicity.
func Contains(hand, sub []Card) bool {
	have := make(map[Card]int, len(hand))
	for _, c := range hand {
		have[c]++
	}
	for _, c := range sub {
		if have[c] == 0 {
			return false
		}
		have[c]--
	}
	return true
}

// Remove returns hand without the given cards. Cards not present are ignored.
func Remove(hand, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return hand
	}

	removeCounts := make(map[Card]int, len(toRemove))
	for _, c := range toRemove {
		removeCounts[c]++
	}

	updated := make([]Card, 0, len(hand))
	for _, c := range hand {
		if n := removeCounts[c]; n > 0 {
			removeCounts[c] = n - 1
			continue
		}
		updated = append(updated, c)
	}
	return updated
}

// Conceal replaces every card with the hidden sentinel.
func Conceal(cards []Card) []Card {
	return make([]Card, len(cards))
}

func Strings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
