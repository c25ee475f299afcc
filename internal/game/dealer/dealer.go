package dealer

import (
	"math/rand"

	"DouDizhu/internal/game/card"
)

const (
	Seats       = 3
	HandSize    = 17
	BottomCount = 3
)

// Deal is the result of one round's deal.
type Deal struct {
	Hands  [Seats][]card.Card
	Bottom []card.Card
	// Reveal is the face-up card shown to everyone; its owner opens the bidding.
	Reveal     card.Card
	RevealSeat int
}

// Dealer only shuffles and deals; it knows nothing about rules.
type Dealer struct {
	deck []card.Card
	rnd  *rand.Rand
}

func NewDealer(seed int64) *Dealer {
	return &Dealer{
		deck: make([]card.Card, 0, 54),
		rnd:  rand.New(rand.NewSource(seed)),
	}
}

// NewDeck resets to a full 54-card deck and shuffles it.
func (d *Dealer) NewDeck() {
	d.deck = card.All()
	d.shuffle()
}

// Fisher-Yates; every permutation is equally likely.
func (d *Dealer) shuffle() {
	for i := len(d.deck) - 1; i > 0; i-- {
		j := d.rnd.Intn(i + 1)
		d.deck[i], d.deck[j] = d.deck[j], d.deck[i]
	}
}

// DealRound shuffles a fresh deck, deals 17 cards to each seat round-robin,
// sets the last 3 aside and picks the face-up reveal card among the dealt ones.
func (d *Dealer) DealRound() Deal {
	d.NewDeck()

	var out Deal
	dealt := d.deck[:Seats*HandSize]
	for i, c := range dealt {
		out.Hands[i%Seats] = append(out.Hands[i%Seats], c)
	}
	out.Bottom = append([]card.Card(nil), d.deck[Seats*HandSize:Seats*HandSize+BottomCount]...)
	d.deck = d.deck[Seats*HandSize+BottomCount:]

	idx := d.rnd.Intn(len(dealt))
	out.Reveal = dealt[idx]
	out.RevealSeat = idx % Seats

	for i := range out.Hands {
		card.Sort(out.Hands[i])
	}
	return out
}

// Remaining reports how many cards are left undealt.
func (d *Dealer) Remaining() int {
	return len(d.deck)
}
