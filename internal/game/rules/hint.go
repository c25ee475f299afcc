package rules

import "DouDizhu/internal/game/card"

// ValidPlays lists simple plays from hand that are legal against last:
// one single, pair, triple and bomb per rank, plus the rocket.
// Kicker and sequence shapes are not suggested.
func ValidPlays(hand, last []card.Card, first bool) [][]card.Card {
	sorted := append([]card.Card(nil), hand...)
	card.Sort(sorted)

	byRank := make(map[card.Rank][]card.Card)
	var order []card.Rank
	for _, c := range sorted {
		if _, ok := byRank[c.Rank]; !ok {
			order = append(order, c.Rank)
		}
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}

	var plays [][]card.Card
	for size := 1; size <= 4; size++ {
		for _, r := range order {
			group := byRank[r]
			if len(group) < size {
				continue
			}
			play := append([]card.Card(nil), group[:size]...)
			if CanPlay(play, last, first) {
				plays = append(plays, play)
			}
		}
	}

	if len(byRank[card.RankLowJoker]) > 0 && len(byRank[card.RankHighJoker]) > 0 {
		rocket := []card.Card{card.LowJoker, card.HighJoker}
		if CanPlay(rocket, last, first) {
			plays = append(plays, rocket)
		}
	}
	return plays
}
