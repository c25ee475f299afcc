package dealer

import (
	"testing"
	"time"

	"DouDizhu/internal/game/card"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 工具：检查是否有重复牌
func hasDuplicates(cards []card.Card) bool {
	seen := make(map[card.Card]bool)
	for _, c := range cards {
		if seen[c] {
			return true
		}
		seen[c] = true
	}
	return false
}

func TestNewDeck(t *testing.T) {
	d := NewDealer(time.Now().UnixNano())
	d.NewDeck()

	if len(d.deck) != 54 {
		t.Fatalf("expected 54 cards, got %d", len(d.deck))
	}
	if hasDuplicates(d.deck) {
		t.Fatalf("deck should not contain duplicates")
	}
	assert.ElementsMatch(t, card.All(), d.deck)
}

func TestShuffleChangesOrder(t *testing.T) {
	d1 := NewDealer(42)
	d1.NewDeck()
	d2 := NewDealer(42)
	d2.NewDeck()

	// same seed, same sequence
	for i := range d1.deck {
		if d1.deck[i] != d2.deck[i] {
			t.Fatalf("expected identical decks for same seed")
		}
	}

	d3 := NewDealer(99)
	d3.NewDeck()
	diff := false
	for i := range d1.deck {
		if d1.deck[i] != d3.deck[i] {
			diff = true
			break
		}
	}
	if !diff {
		t.Fatalf("expected deck with different seed to differ")
	}
}

// Every card should be able to land in every position; a biased shuffle
// pins the last slot far too often.
func TestShuffleSpreadsPositions(t *testing.T) {
	d := NewDealer(7)
	firstSeen := make(map[card.Card]bool)
	for i := 0; i < 2000; i++ {
		d.NewDeck()
		firstSeen[d.deck[0]] = true
	}
	assert.Len(t, firstSeen, 54)
}

func TestDealRoundConservesDeck(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		d := NewDealer(seed)
		deal := d.DealRound()

		all := make([]card.Card, 0, 54)
		for seat, hand := range deal.Hands {
			require.Len(t, hand, HandSize, "seat %d", seat)
			all = append(all, hand...)
		}
		require.Len(t, deal.Bottom, BottomCount)
		all = append(all, deal.Bottom...)

		assert.False(t, hasDuplicates(all))
		assert.ElementsMatch(t, card.All(), all)
		assert.Equal(t, 0, d.Remaining())
	}
}

func TestDealRoundRevealCardBelongsToSeat(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		deal := NewDealer(seed).DealRound()

		require.GreaterOrEqual(t, deal.RevealSeat, 0)
		require.Less(t, deal.RevealSeat, Seats)
		assert.Contains(t, deal.Hands[deal.RevealSeat], deal.Reveal)
		assert.NotContains(t, deal.Bottom, deal.Reveal)
	}
}

func TestDealRoundAlwaysUsesOneFreshDeck(t *testing.T) {
	d := NewDealer(3)
	first := d.DealRound()
	require.Equal(t, 0, d.Remaining())

	second := d.DealRound()
	require.Equal(t, 0, d.Remaining())

	for _, deal := range []Deal{first, second} {
		all := append([]card.Card{}, deal.Bottom...)
		for _, hand := range deal.Hands {
			all = append(all, hand...)
		}
		assert.Len(t, all, 54)
		assert.ElementsMatch(t, card.All(), all)
	}
}
