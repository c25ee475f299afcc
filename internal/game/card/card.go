package card

import (
	"errors"
	"fmt"
	"strings"
)

// Rank is ordered by game strength: 3 lowest, high joker highest.
type Rank int

const (
	Rank3 Rank = iota + 3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
	Rank2
	RankLowJoker
	RankHighJoker
)

type Suit int

const (
	SuitNone Suit = iota
	Spades
	Clubs
	Diamonds
	Hearts
)

const (
	LowJokerToken  = "JOKER-LOW"
	HighJokerToken = "JOKER-HIGH"
	HiddenToken    = "HIDDEN"
)

var ErrUnknownCard = errors.New("unknown card")

var (
	suitGlyphs = map[Suit]string{Spades: "♠", Clubs: "♣", Diamonds: "♦", Hearts: "♥"}
	rankTokens = map[Rank]string{
		Rank3: "3", Rank4: "4", Rank5: "5", Rank6: "6", Rank7: "7", Rank8: "8", Rank9: "9",
		Rank10: "10", RankJ: "J", RankQ: "Q", RankK: "K", RankA: "A", Rank2: "2",
	}
)

// Card is a value type; the zero value is the concealed card.
type Card struct {
	Rank Rank
	Suit Suit
}

var (
	LowJoker  = Card{Rank: RankLowJoker}
	HighJoker = Card{Rank: RankHighJoker}
	Hidden    = Card{}
)

func New(r Rank, s Suit) Card {
	return Card{Rank: r, Suit: s}
}

func (c Card) IsJoker() bool {
	return c.Rank == RankLowJoker || c.Rank == RankHighJoker
}

func (c Card) IsHidden() bool {
	return c == Hidden
}

func (r Rank) String() string {
	switch r {
	case RankLowJoker:
		return LowJokerToken
	case RankHighJoker:
		return HighJokerToken
	}
	if t, ok := rankTokens[r]; ok {
		return t
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

func (c Card) String() string {
	switch {
	case c.IsHidden():
		return HiddenToken
	case c.IsJoker():
		return c.Rank.String()
	}
	return rankTokens[c.Rank] + suitGlyphs[c.Suit]
}

// Parse reads the wire token of a card, e.g. "10♥" or "JOKER-LOW".
func Parse(s string) (Card, error) {
	s = strings.TrimSpace(s)
	switch s {
	case LowJokerToken:
		return LowJoker, nil
	case HighJokerToken:
		return HighJoker, nil
	case HiddenToken:
		return Hidden, nil
	}
	for suit, glyph := range suitGlyphs {
		token, ok := strings.CutSuffix(s, glyph)
		if !ok {
			continue
		}
		for rank, rt := range rankTokens {
			if rt == token {
				return Card{Rank: rank, Suit: suit}, nil
			}
		}
	}
	return Card{}, fmt.Errorf("%w: %q", ErrUnknownCard, s)
}

func ParseAll(tokens []string) ([]Card, error) {
	out := make([]Card, 0, len(tokens))
	for _, t := range tokens {
		c, err := Parse(t)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// MustParse is for tests and fixtures.
func MustParse(tokens ...string) []Card {
	cards, err := ParseAll(tokens)
	if err != nil {
		panic(err)
	}
	return cards
}

func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// All returns the 54 distinct cards in rank order.
func All() []Card {
	deck := make([]Card, 0, 54)
	for r := Rank3; r <= Rank2; r++ {
		for _, s := range []Suit{Spades, Clubs, Diamonds, Hearts} {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return append(deck, LowJoker, HighJoker)
}
