package rules

import (
	"fmt"
	"testing"

	"DouDizhu/internal/game/card"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cards = card.MustParse

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		cards []card.Card
		cat   Category
		value int
	}{
		{"single", cards("3♠"), Single, 3},
		{"single joker", cards("JOKER-HIGH"), Single, 17},
		{"pair", cards("7♠", "7♥"), Pair, 7},
		{"triple", cards("5♠", "5♥", "5♦"), Triple, 5},
		{"bomb", cards("9♠", "9♥", "9♦", "9♣"), Bomb, 9},
		{"rocket", cards("JOKER-LOW", "JOKER-HIGH"), Rocket, 18},
		{"triple with one", cards("K♠", "K♥", "K♦", "4♣"), TripleWithOne, 13},
		{"four with one", cards("Q♠", "Q♥", "Q♦", "Q♣", "3♣"), FourOfAKindWithOne, 12},
		{"straight", cards("3♠", "4♠", "5♠", "6♠", "7♠"), Straight, 7},
		{"straight to ace", cards("10♠", "J♥", "Q♠", "K♦", "A♠"), Straight, 14},
		{"pair straight", cards("3♠", "3♥", "4♠", "4♥", "5♦", "5♣"), PairStraight, 5},

		{"empty", nil, Invalid, 0},
		{"straight with 2", cards("3♠", "4♠", "5♠", "6♠", "2♠"), Invalid, 0},
		{"short straight", cards("3♠", "4♠", "5♠", "6♠"), Invalid, 0},
		{"gap straight", cards("3♠", "4♠", "5♠", "6♠", "8♠"), Invalid, 0},
		{"straight with joker", cards("J♠", "Q♠", "K♠", "A♠", "JOKER-LOW"), Invalid, 0},
		{"two pairs", cards("3♠", "3♥", "4♠", "4♥"), Invalid, 0},
		{"mixed pair", cards("3♠", "4♥"), Invalid, 0},
		{"pair straight with 2", cards("K♠", "K♥", "A♠", "A♥", "2♦", "2♣"), Invalid, 0},
		{"pair straight with triple", cards("3♠", "3♥", "3♦", "4♠", "4♥", "5♦", "5♣", "6♦"), Invalid, 0},
		{"four with two", cards("Q♠", "Q♥", "Q♦", "Q♣", "3♣", "4♣"), Invalid, 0},
		{"hidden", []card.Card{card.Hidden}, Invalid, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.cards)
			assert.Equal(t, tt.cat, got.Category)
			if tt.cat != Invalid {
				assert.Equal(t, tt.value, got.Value)
				assert.Equal(t, len(tt.cards), got.Size)
			}
		})
	}
}

func TestClassifyNeverProducesFourOfAKind(t *testing.T) {
	for r := card.Rank3; r <= card.Rank2; r++ {
		quad := []card.Card{
			card.New(r, card.Spades), card.New(r, card.Clubs),
			card.New(r, card.Diamonds), card.New(r, card.Hearts),
		}
		assert.Equal(t, Bomb, Classify(quad).Category)
	}
}

func TestCanPlay(t *testing.T) {
	tests := []struct {
		name      string
		candidate []card.Card
		last      []card.Card
		first     bool
		want      bool
	}{
		{"higher single", cards("7♠"), cards("6♠"), false, true},
		{"lower single", cards("6♠"), cards("7♠"), false, false},
		{"equal single", cards("7♥"), cards("7♠"), false, false},
		{"rocket over bomb", cards("JOKER-LOW", "JOKER-HIGH"), cards("2♠", "2♥", "2♦", "2♣"), false, true},
		{"rocket over single", cards("JOKER-LOW", "JOKER-HIGH"), cards("3♠"), false, true},
		{"bomb over rocket", cards("2♠", "2♥", "2♦", "2♣"), cards("JOKER-LOW", "JOKER-HIGH"), false, false},
		{"higher bomb", cards("9♠", "9♥", "9♦", "9♣"), cards("7♠", "7♥", "7♦", "7♣"), false, true},
		{"lower bomb", cards("7♠", "7♥", "7♦", "7♣"), cards("9♠", "9♥", "9♦", "9♣"), false, false},
		{"bomb over straight", cards("3♠", "3♥", "3♦", "3♣"), cards("8♠", "9♠", "10♠", "J♠", "Q♠"), false, true},
		{"pair over triple", cards("8♠", "8♥"), cards("3♠", "3♥", "3♦"), false, false},
		{"longer straight", cards("4♠", "5♠", "6♠", "7♠", "8♠", "9♠"), cards("3♠", "4♥", "5♥", "6♥", "7♥"), false, false},
		{"same length straight", cards("4♠", "5♠", "6♠", "7♠", "8♠"), cards("3♥", "4♥", "5♥", "6♥", "7♥"), false, true},
		{"triple with one", cards("9♠", "9♥", "9♦", "3♣"), cards("8♠", "8♥", "8♦", "A♣"), false, true},
		{"invalid lead", cards("3♠", "4♥"), nil, true, false},
		{"any lead", cards("3♠", "3♥", "3♦", "4♣"), nil, true, true},
		{"lead ignores last", cards("3♠"), cards("2♠"), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPlay(tt.candidate, tt.last, tt.first))
		})
	}
}

func TestCheckReasons(t *testing.T) {
	err := Check(cards("3♠", "5♥"), nil, true)
	assert.ErrorIs(t, err, ErrInvalidCombination)

	err = Check(cards("3♠", "5♥"), cards("4♠"), false)
	assert.ErrorIs(t, err, ErrInvalidCombination)

	err = Check(cards("4♠"), cards("5♠"), false)
	assert.ErrorIs(t, err, ErrCannotBeat)

	assert.NoError(t, Check(cards("6♠"), cards("5♠"), false))
}

func TestDoubles(t *testing.T) {
	assert.True(t, Classify(cards("JOKER-LOW", "JOKER-HIGH")).Doubles())
	assert.True(t, Classify(cards("5♠", "5♥", "5♦", "5♣")).Doubles())
	assert.False(t, Classify(cards("5♠", "5♥", "5♦", "6♣")).Doubles())
}

func TestValidPlaysLead(t *testing.T) {
	hand := cards("3♠", "3♥", "5♦", "9♠", "9♥", "9♦", "9♣", "JOKER-LOW", "JOKER-HIGH")
	plays := ValidPlays(hand, nil, true)

	var got []string
	for _, p := range plays {
		c := Classify(p)
		require.True(t, c.IsValid())
		got = append(got, fmt.Sprintf("%s:%d", c.Category, c.Value))
	}
	assert.Equal(t, []string{
		"single:3", "single:5", "single:9", "single:16", "single:17",
		"pair:3", "pair:9",
		"triple:9",
		"bomb:9",
		"rocket:18",
	}, got)
}

func TestValidPlaysFollowsTable(t *testing.T) {
	hand := cards("3♠", "3♥", "8♦", "K♠", "K♥")
	last := cards("7♠", "7♥")

	plays := ValidPlays(hand, last, false)
	require.Len(t, plays, 1)
	assert.Equal(t, cards("K♠", "K♥"), plays[0])

	assert.Empty(t, ValidPlays(hand, cards("JOKER-LOW", "JOKER-HIGH"), false))
}
