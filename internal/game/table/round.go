package table

import (
	"DouDizhu/internal/game/bidding"
	"DouDizhu/internal/game/card"
	"DouDizhu/internal/game/dealer"
	"DouDizhu/internal/game/rules"
	"DouDizhu/internal/game/wager"
)

type PlayResult struct {
	Seat  int
	Cards []card.Card
	Combo rules.Combination
	Next  int
	// Settlement is set when the play emptied the hand.
	Settlement *Settlement
}

type PassResult struct {
	Seat    int
	Next    int
	Cleared bool
}

// Settlement is the outcome of a finished round.
type Settlement struct {
	Round       int            `json:"round"`
	Winner      string         `json:"winner"`
	Landlord    string         `json:"landlord"`
	LandlordWon bool           `json:"landlordWon"`
	Multiplier  int            `json:"multiplier"`
	Deltas      map[string]int `json:"deltas"`
}

// Deal starts a round from the lobby: LOBBY → DEALING.
func (t *Table) Deal() (dealer.Deal, error) {
	if !t.Allows(ActDeal) {
		return dealer.Deal{}, ErrWrongPhase
	}
	return t.deal()
}

// NextRound starts another round with the same seats: ROUND_OVER → DEALING.
func (t *Table) NextRound() (dealer.Deal, error) {
	if !t.Allows(ActNextRound) {
		return dealer.Deal{}, ErrWrongPhase
	}
	return t.deal()
}

func (t *Table) deal() (dealer.Deal, error) {
	if len(t.Seats) < Size {
		return dealer.Deal{}, ErrNotEnoughPlayers
	}
	t.clearRound()

	d := t.dealer.DealRound()
	for i, s := range t.Seats {
		s.Hand = d.Hands[i]
	}
	t.Bottom = d.Bottom
	t.Reveal = d.Reveal
	t.RevealSeat = d.RevealSeat
	t.Round++
	t.Phase = PhaseDealing
	return d, nil
}

// OpenBidding offers the bottom cards to the reveal card's owner: DEALING → BIDDING.
func (t *Table) OpenBidding() error {
	if t.Phase != PhaseDealing || t.Paused {
		return ErrWrongPhase
	}
	t.bid = bidding.New(t.RevealSeat)
	t.Phase = PhaseBidding
	return nil
}

// Pickup applies a take/decline decision for the bottom cards.
func (t *Table) Pickup(seat int, take bool) (bidding.Outcome, error) {
	if !t.Allows(ActPickup) || t.bid == nil {
		return bidding.Outcome{}, ErrWrongPhase
	}
	if seat != t.bid.Pick() {
		return bidding.Outcome{}, ErrOutOfTurn
	}

	out := t.bid.Decide(seat, take)
	if out.Result == bidding.Assigned {
		t.assignLandlord(out.Landlord, out.Doubled)
	}
	return out, nil
}

// 地主拿底牌并先出
func (t *Table) assignLandlord(seat int, double bool) {
	s := t.Seats[seat]
	s.Hand = append(s.Hand, t.Bottom...)
	card.Sort(s.Hand)
	if double {
		t.wager.Double()
	}
	t.Landlord = seat
	t.Turn = seat
	t.clearTrick()
	t.Phase = PhasePlaying
}

// Play lays cards from the current seat's hand. Rejections leave the table untouched.
func (t *Table) Play(seat int, cards []card.Card) (PlayResult, error) {
	if !t.Allows(ActPlay) {
		return PlayResult{}, ErrWrongPhase
	}
	if seat != t.Turn {
		return PlayResult{}, ErrOutOfTurn
	}
	s := t.Seats[seat]
	if len(cards) == 0 || !card.Contains(s.Hand, cards) {
		return PlayResult{}, ErrNotInHand
	}
	if err := rules.Check(cards, t.LastPlay, len(t.LastPlay) == 0); err != nil {
		return PlayResult{}, err
	}

	played := append([]card.Card(nil), cards...)
	card.Sort(played)
	combo := rules.Classify(played)

	s.Hand = card.Remove(s.Hand, played)
	t.Played = append(t.Played, played...)
	t.LastPlay = played
	t.LastCombo = combo
	t.LastSeat = seat
	t.Passes = 0
	if combo.Doubles() {
		t.wager.Double()
	}

	res := PlayResult{Seat: seat, Cards: played, Combo: combo}
	if len(s.Hand) == 0 {
		st := t.settle(seat)
		res.Settlement = &st
		res.Next = -1
		return res, nil
	}
	t.Turn = next(seat)
	res.Next = t.Turn
	return res, nil
}

// Pass declines to beat the table. Two passes in a row clear it.
func (t *Table) Pass(seat int) (PassResult, error) {
	if !t.Allows(ActPass) {
		return PassResult{}, ErrWrongPhase
	}
	if seat != t.Turn {
		return PassResult{}, ErrOutOfTurn
	}
	if len(t.LastPlay) == 0 {
		return PassResult{}, ErrMustLead
	}

	res := PassResult{Seat: seat}
	t.Passes++
	if t.Passes >= Size-1 {
		t.clearTrick()
		res.Cleared = true
	}
	t.Turn = next(seat)
	res.Next = t.Turn
	return res, nil
}

// Hint lists simple legal plays for seat against the current table.
func (t *Table) Hint(seat int) ([][]card.Card, error) {
	if !t.Allows(ActHint) {
		return nil, ErrWrongPhase
	}
	s := t.Seat(seat)
	if s == nil {
		return nil, ErrUnknownSeat
	}
	return rules.ValidPlays(s.Hand, t.LastPlay, len(t.LastPlay) == 0), nil
}

// settle scores the round for winner, then clears the round state.
func (t *Table) settle(winner int) Settlement {
	m := t.wager.Value()
	landlordWon := winner == t.Landlord
	deltas := wager.Settle(Size, t.Landlord, landlordWon, m)

	st := Settlement{
		Round:       t.Round,
		Winner:      t.Seats[winner].Name,
		Landlord:    t.NameOf(t.Landlord),
		LandlordWon: landlordWon,
		Multiplier:  m,
		Deltas:      make(map[string]int, Size),
	}
	for i, s := range t.Seats {
		s.Score += deltas[i]
		st.Deltas[s.Name] = deltas[i]
	}

	t.clearRound()
	t.Phase = PhaseRoundOver
	return st
}

// Accounted returns hands, cards played this round and unclaimed bottom cards
// together. While a round runs this is always the full deck.
func (t *Table) Accounted() []card.Card {
	var all []card.Card
	for _, s := range t.Seats {
		all = append(all, s.Hand...)
	}
	all = append(all, t.Played...)
	if t.Landlord < 0 {
		all = append(all, t.Bottom...)
	}
	return all
}
