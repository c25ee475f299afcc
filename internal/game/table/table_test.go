package table

import (
	"testing"

	"DouDizhu/internal/game/bidding"
	"DouDizhu/internal/game/card"
	"DouDizhu/internal/game/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cards = card.MustParse

func seated(t *testing.T) *Table {
	t.Helper()
	tb := New("room-1", "The Pitstop", 1)
	for _, n := range []string{"ann", "bob", "cat"} {
		_, err := tb.AddSeat(n)
		require.NoError(t, err)
	}
	return tb
}

func bidding3(t *testing.T) *Table {
	t.Helper()
	tb := seated(t)
	_, err := tb.Deal()
	require.NoError(t, err)
	require.NoError(t, tb.OpenBidding())
	return tb
}

// rig puts the table into PLAYING with fixed hands, seat 0 as landlord and on turn.
func rig(t *testing.T, hands ...[]card.Card) *Table {
	t.Helper()
	tb := bidding3(t)
	_, err := tb.Pickup(tb.Bidding().Pick(), true)
	require.NoError(t, err)

	for i, h := range hands {
		tb.Seats[i].Hand = h
	}
	tb.Landlord = 0
	tb.Turn = 0
	tb.Played = nil
	return tb
}

func TestAllows(t *testing.T) {
	assert.True(t, Allows(PhaseLobby, false, ActDeal))
	assert.False(t, Allows(PhaseLobby, false, ActPlay))
	assert.True(t, Allows(PhaseBidding, false, ActPickup))
	assert.False(t, Allows(PhaseBidding, false, ActPlay))
	assert.True(t, Allows(PhasePlaying, false, ActPass))
	assert.True(t, Allows(PhaseRoundOver, false, ActNextRound))
	assert.False(t, Allows(PhasePlaying, false, ActReset))

	for _, p := range []Phase{PhaseDealing, PhaseBidding, PhasePlaying} {
		assert.True(t, p.Active())
		assert.False(t, Allows(p, true, ActPlay))
		assert.False(t, Allows(p, true, ActPass))
		assert.False(t, Allows(p, true, ActPickup))
		assert.False(t, Allows(p, true, ActNextRound))
		assert.True(t, Allows(p, true, ActReset))
		assert.True(t, Allows(p, true, ActJoin))
	}
	assert.False(t, PhaseLobby.Active())
	assert.False(t, PhaseRoundOver.Active())
}

func TestSeats(t *testing.T) {
	tb := seated(t)
	assert.True(t, tb.Full())
	_, err := tb.AddSeat("dan")
	assert.ErrorIs(t, err, ErrFull)

	assert.Equal(t, 1, tb.SeatOf("bob"))
	assert.Equal(t, -1, tb.SeatOf("dan"))

	require.NoError(t, tb.RemoveSeat("bob"))
	assert.Equal(t, []string{"ann", "cat"}, []string{tb.NameOf(0), tb.NameOf(1)})
	assert.ErrorIs(t, tb.RemoveSeat("bob"), ErrUnknownSeat)
}

func TestDealNeedsThreeSeats(t *testing.T) {
	tb := New("r", "r", 1)
	_, _ = tb.AddSeat("ann")
	_, err := tb.Deal()
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)
	assert.Equal(t, PhaseLobby, tb.Phase)
}

func TestDealAndBidding(t *testing.T) {
	tb := seated(t)
	d, err := tb.Deal()
	require.NoError(t, err)
	assert.Equal(t, PhaseDealing, tb.Phase)
	assert.Equal(t, 1, tb.Round)
	assert.ElementsMatch(t, card.All(), tb.Accounted())
	assert.Equal(t, d.RevealSeat, tb.RevealSeat)
	assert.ErrorIs(t, tb.RemoveSeat("ann"), ErrWrongPhase)

	require.NoError(t, tb.OpenBidding())
	assert.Equal(t, PhaseBidding, tb.Phase)
	assert.Equal(t, tb.RevealSeat, tb.Bidding().Pick())

	pick := tb.Bidding().Pick()
	_, err = tb.Pickup(next(pick), true)
	assert.ErrorIs(t, err, ErrOutOfTurn)

	out, err := tb.Pickup(pick, true)
	require.NoError(t, err)
	assert.Equal(t, bidding.Assigned, out.Result)
	assert.Equal(t, PhasePlaying, tb.Phase)
	assert.Equal(t, pick, tb.Landlord)
	assert.Equal(t, pick, tb.Turn)
	assert.Len(t, tb.Seats[pick].Hand, 20)
	assert.Equal(t, 2, tb.Wager().Multiplier)
	assert.ElementsMatch(t, card.All(), tb.Accounted())
	assert.Subset(t, tb.Seats[pick].Hand, tb.Bottom)
}

func TestForcedLandlordKeepsMultiplier(t *testing.T) {
	tb := bidding3(t)
	origin := tb.Bidding().Pick()

	for i := 0; i < 3; i++ {
		out, err := tb.Pickup(tb.Bidding().Pick(), false)
		require.NoError(t, err)
		if i == 2 {
			assert.Equal(t, bidding.Revealed, out.Result)
		}
	}
	snap := tb.Snapshot(origin)
	for _, hand := range snap.Hands {
		for _, c := range hand {
			assert.False(t, c.IsHidden())
		}
	}

	_, err := tb.Pickup(origin, false)
	require.NoError(t, err)
	out, err := tb.Pickup(next(origin), false)
	require.NoError(t, err)
	assert.True(t, out.Forced)
	assert.Equal(t, next(next(origin)), tb.Landlord)
	assert.Equal(t, 1, tb.Wager().Multiplier)
}

func TestPlayRejectionsLeaveStateUntouched(t *testing.T) {
	tb := rig(t,
		cards("3♠", "3♥", "5♦", "9♠"),
		cards("4♠", "6♥"),
		cards("8♠", "K♥"),
	)

	_, err := tb.Play(1, cards("4♠"))
	assert.ErrorIs(t, err, ErrOutOfTurn)

	_, err = tb.Play(0, cards("A♠"))
	assert.ErrorIs(t, err, ErrNotInHand)

	_, err = tb.Play(0, cards("3♠", "3♠"))
	assert.ErrorIs(t, err, ErrNotInHand)

	_, err = tb.Play(0, cards("3♠", "5♦"))
	assert.ErrorIs(t, err, rules.ErrInvalidCombination)

	_, err = tb.Pass(0)
	assert.ErrorIs(t, err, ErrMustLead)

	assert.Equal(t, 0, tb.Turn)
	assert.Empty(t, tb.LastPlay)
	assert.Len(t, tb.Seats[0].Hand, 4)

	res, err := tb.Play(0, cards("9♠"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Next)
	assert.Equal(t, rules.Single, res.Combo.Category)

	_, err = tb.Play(1, cards("6♥"))
	assert.ErrorIs(t, err, rules.ErrCannotBeat)
	assert.Equal(t, cards("9♠"), tb.LastPlay)
	assert.Equal(t, 1, tb.Turn)
}

func TestTwoPassesClearTable(t *testing.T) {
	tb := rig(t,
		cards("3♠", "7♥", "9♠"),
		cards("4♠", "6♥"),
		cards("8♠", "K♥"),
	)

	_, err := tb.Play(0, cards("7♥"))
	require.NoError(t, err)

	res, err := tb.Pass(1)
	require.NoError(t, err)
	assert.False(t, res.Cleared)
	assert.Equal(t, 1, tb.Passes)

	res, err = tb.Pass(2)
	require.NoError(t, err)
	assert.True(t, res.Cleared)
	assert.Equal(t, 0, res.Next)
	assert.Empty(t, tb.LastPlay)
	assert.Equal(t, 0, tb.Passes)

	// the table is empty again, so anything valid leads
	_, err = tb.Play(0, cards("3♠"))
	require.NoError(t, err)
}

func TestPlayResetsPassCounter(t *testing.T) {
	tb := rig(t,
		cards("3♠", "7♥", "9♠"),
		cards("4♠", "8♥"),
		cards("10♠", "K♥"),
	)
	_, err := tb.Play(0, cards("3♠"))
	require.NoError(t, err)
	_, err = tb.Pass(1)
	require.NoError(t, err)
	_, err = tb.Play(2, cards("10♠"))
	require.NoError(t, err)
	assert.Equal(t, 0, tb.Passes)

	res, err := tb.Pass(0)
	require.NoError(t, err)
	assert.False(t, res.Cleared)
}

func TestBombDoublesAndLandlordWins(t *testing.T) {
	tb := rig(t,
		cards("9♠", "9♥", "9♦", "9♣"),
		cards("4♠", "6♥"),
		cards("8♠", "K♥"),
	)
	before := tb.Wager().Multiplier

	res, err := tb.Play(0, cards("9♠", "9♥", "9♦", "9♣"))
	require.NoError(t, err)
	require.NotNil(t, res.Settlement)

	m := before * 2
	st := res.Settlement
	assert.Equal(t, "ann", st.Winner)
	assert.Equal(t, "ann", st.Landlord)
	assert.True(t, st.LandlordWon)
	assert.Equal(t, m, st.Multiplier)
	assert.Equal(t, map[string]int{"ann": 2 * m, "bob": -m, "cat": -m}, st.Deltas)

	assert.Equal(t, PhaseRoundOver, tb.Phase)
	assert.Equal(t, 2*m, tb.Seats[0].Score)
	assert.Equal(t, -1, tb.Landlord)
	assert.Equal(t, 1, tb.Wager().Multiplier)
	for _, s := range tb.Seats {
		assert.Empty(t, s.Hand)
	}
}

func TestFarmerWins(t *testing.T) {
	tb := rig(t,
		cards("3♠", "7♥"),
		cards("4♠"),
		cards("8♠", "K♥"),
	)
	m := tb.Wager().Multiplier

	_, err := tb.Play(0, cards("3♠"))
	require.NoError(t, err)
	res, err := tb.Play(1, cards("4♠"))
	require.NoError(t, err)
	require.NotNil(t, res.Settlement)

	assert.False(t, res.Settlement.LandlordWon)
	assert.Equal(t, map[string]int{"ann": -2 * m, "bob": m, "cat": m}, res.Settlement.Deltas)

	_, err = tb.NextRound()
	require.NoError(t, err)
	assert.Equal(t, PhaseDealing, tb.Phase)
	assert.Equal(t, 2, tb.Round)
	assert.Equal(t, m, tb.Seats[2].Score)
}

func TestPausedBlocksPlay(t *testing.T) {
	tb := rig(t, cards("3♠"), cards("4♠"), cards("5♠"))
	tb.Paused = true

	_, err := tb.Play(0, cards("3♠"))
	assert.ErrorIs(t, err, ErrWrongPhase)
	_, err = tb.Hint(0)
	assert.ErrorIs(t, err, ErrWrongPhase)
	assert.Equal(t, cards("3♠"), tb.Seats[0].Hand)
}

func TestResetDropsVacatedSeats(t *testing.T) {
	tb := rig(t, cards("3♠"), cards("4♠"), cards("5♠"))
	tb.Seats[0].Score = 6
	tb.SetConnected(1, false)
	tb.Paused = true
	assert.Equal(t, []string{"bob"}, tb.Vacated())

	dropped := tb.Reset()
	assert.Equal(t, []string{"bob"}, dropped)
	assert.Equal(t, PhaseLobby, tb.Phase)
	assert.False(t, tb.Paused)
	require.Len(t, tb.Seats, 2)
	assert.Equal(t, 0, tb.Seats[0].Score)
	assert.Empty(t, tb.Seats[0].Hand)
}

func TestSnapshotConcealsOtherHands(t *testing.T) {
	tb := rig(t, cards("3♠", "4♥"), cards("4♠"), cards("5♠", "6♦", "7♣"))
	_, err := tb.Play(0, cards("3♠"))
	require.NoError(t, err)

	snap := tb.Snapshot(1)
	assert.Equal(t, "bob", snap.You)
	assert.Equal(t, cards("4♠"), snap.Hand)
	assert.Equal(t, cards("4♠"), snap.Hands["bob"])
	assert.Equal(t, []card.Card{card.Hidden}, snap.Hands["ann"])
	assert.Len(t, snap.Hands["cat"], 3)
	assert.Equal(t, "bob", snap.CurrentTurn)
	assert.Equal(t, "ann", snap.Landlord)
	assert.Equal(t, "ann", snap.Table.Player)
	assert.Equal(t, "single", snap.Table.Category)
	assert.Equal(t, PhasePlaying, snap.Phase)
	assert.Nil(t, snap.Bidding)
	assert.Len(t, snap.Bottom, 3)
}

func TestHint(t *testing.T) {
	tb := rig(t, cards("3♠", "3♥", "9♠"), cards("4♠"), cards("5♠"))
	plays, err := tb.Hint(0)
	require.NoError(t, err)
	assert.Len(t, plays, 3)
}
