package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"DouDizhu/internal/game/bidding"
	"DouDizhu/internal/game/card"
	"DouDizhu/internal/game/dealer"
	"DouDizhu/internal/game/rules"
	"DouDizhu/internal/game/table"
	"DouDizhu/internal/record"

	"github.com/google/uuid"
)

const saveTimeout = 5 * time.Second

// reject tells the acting seat why a play failed. Turn and phase violations are
// dropped without a reply.
func (e *Engine) reject(connID string, err error) {
	if errors.Is(err, table.ErrOutOfTurn) || errors.Is(err, table.ErrWrongPhase) {
		e.log.Debug("action ignored", "conn", connID, "err", err)
		return
	}
	e.Monitor.IncPlaysRejected(reasonCode(err))
	e.sendTo(connID, OutPlayRejected, rejected{Reason: err.Error()})
}

func reasonCode(err error) string {
	switch {
	case errors.Is(err, table.ErrNotInHand):
		return "not_in_hand"
	case errors.Is(err, table.ErrMustLead):
		return "must_lead"
	case errors.Is(err, rules.ErrInvalidCombination):
		return "invalid_combination"
	case errors.Is(err, rules.ErrCannotBeat):
		return "cannot_beat"
	case errors.Is(err, card.ErrUnknownCard):
		return "unknown_card"
	}
	return "other"
}

// --------------------------
//         发牌 / 叫地主
// --------------------------

func (e *Engine) startRound(next bool) {
	var (
		deal dealer.Deal
		err  error
	)
	if next {
		deal, err = e.Table.NextRound()
	} else {
		deal, err = e.Table.Deal()
	}
	if err != nil {
		e.log.Warn("cannot start round", "err", err)
		if errors.Is(err, table.ErrNotEnoughPlayers) {
			e.message("Waiting for three players")
		}
		return
	}
	e.Monitor.IncRoundsStarted()

	owner := e.Table.NameOf(deal.RevealSeat)
	e.log.Info("round dealt", "round", e.Table.Round, "reveal", deal.Reveal, "owner", owner)

	for i, s := range e.Table.Seats {
		e.sendToSeat(i, OutDealPreview, dealPreview{
			Hand:   append([]card.Card{}, s.Hand...),
			Hands:  e.Table.HandsFor(i),
			Reveal: table.RevealView{Card: deal.Reveal, Owner: owner},
		})
	}

	if err := e.Table.OpenBidding(); err != nil {
		e.log.Error("open bidding", "err", err)
		return
	}
	e.broadcastWager()
	e.broadcastPlayerList()
	e.broadcastBidTurn()
	e.message(fmt.Sprintf("%s holds the face-up %s and may pick up the bottom cards", owner, deal.Reveal))
}

func (e *Engine) broadcastBidTurn() {
	b := e.Table.Bidding()
	e.broadcast(OutBidTurn, bidTurn{
		Name:     e.Table.NameOf(b.Pick()),
		Attempts: b.Attempts(),
		Revealed: b.IsRevealed(),
	})
}

func (e *Engine) handlePickup(a Action, seat int) {
	var p PickupPayload
	if err := json.Unmarshal(a.Data, &p); err != nil {
		e.log.Debug("bad pickup payload", "conn", a.ConnID, "err", err)
		return
	}
	out, err := e.Table.Pickup(seat, p.Take)
	if err != nil {
		e.reject(a.ConnID, err)
		return
	}

	name := e.Table.NameOf(seat)
	switch out.Result {
	case bidding.Continue:
		e.message(fmt.Sprintf("%s declined the bottom cards", name))
		e.broadcastBidTurn()
	case bidding.Revealed:
		e.log.Info("nobody picked up, revealing hands")
		e.broadcast(OutHandsRevealed, map[string]any{"hands": e.Table.HandsFor(-1)})
		e.message("Nobody picked up: every hand is revealed")
		e.broadcastBidTurn()
	case bidding.Assigned:
		e.beginPlay(out.Forced)
	}
}

func (e *Engine) beginPlay(forced bool) {
	landlord := e.Table.NameOf(e.Table.Landlord)
	e.log.Info("landlord assigned", "landlord", landlord, "forced", forced, "multiplier", e.Table.Wager().Multiplier)

	for i, s := range e.Table.Seats {
		e.sendToSeat(i, OutStartGame, startGame{
			Hand:     append([]card.Card{}, s.Hand...),
			YourTurn: i == e.Table.Turn,
			Landlord: landlord,
			Bottom:   e.Table.Bottom,
			Forced:   forced,
		})
	}
	e.broadcastWager()
	e.broadcastPlayerList()
	e.broadcast(OutTurnUpdate, turnUpdate{CurrentPlayer: landlord})
	e.message(fmt.Sprintf("%s is the landlord", landlord))
}

// --------------------------
//         出牌 / 过牌
// --------------------------

func (e *Engine) handlePlay(a Action, seat int) {
	var p PlayPayload
	if err := json.Unmarshal(a.Data, &p); err != nil {
		e.reject(a.ConnID, rules.ErrInvalidCombination)
		return
	}
	cards, err := card.ParseAll(p.Cards)
	if err != nil {
		e.reject(a.ConnID, err)
		return
	}

	res, err := e.Table.Play(seat, cards)
	if err != nil {
		e.reject(a.ConnID, err)
		return
	}
	e.Monitor.IncCardsPlayed(string(res.Combo.Category))

	name := e.Table.NameOf(seat)
	e.broadcast(OutCardsPlayed, cardsPlayed{
		Player:     name,
		Cards:      res.Cards,
		Category:   string(res.Combo.Category),
		NextPlayer: e.Table.NameOf(res.Next),
	})

	if res.Settlement != nil {
		e.finishRound(*res.Settlement)
		return
	}
	if res.Combo.Doubles() {
		e.broadcastWager()
	}
	e.broadcastPlayerList()
	next := e.Table.NameOf(res.Next)
	e.broadcast(OutTurnUpdate, turnUpdate{CurrentPlayer: next})
	e.message(fmt.Sprintf("%s's turn", next))
}

func (e *Engine) handlePass(a Action, seat int) {
	res, err := e.Table.Pass(seat)
	if err != nil {
		e.reject(a.ConnID, err)
		return
	}

	next := e.Table.NameOf(res.Next)
	e.broadcast(OutPlayerPassed, playerPassed{
		Player:       e.Table.NameOf(seat),
		NextPlayer:   next,
		TableCleared: res.Cleared,
	})
	e.broadcast(OutTurnUpdate, turnUpdate{CurrentPlayer: next})
	if res.Cleared {
		e.message(fmt.Sprintf("Table cleared, %s leads", next))
	} else {
		e.message(fmt.Sprintf("%s's turn", next))
	}
}

func (e *Engine) handleHint(a Action, seat int) {
	plays, err := e.Table.Hint(seat)
	if err != nil {
		e.reject(a.ConnID, err)
		return
	}
	if plays == nil {
		plays = [][]card.Card{}
	}
	e.sendTo(a.ConnID, OutHint, hintPayload{Plays: plays})
}

func (e *Engine) handleNextRound(a Action) {
	if !e.Table.Allows(table.ActNextRound) {
		e.log.Debug("next round ignored", "conn", a.ConnID, "phase", e.Table.Phase, "paused", e.Table.Paused)
		return
	}
	e.startRound(true)
}

// --------------------------
//           结算
// --------------------------

func (e *Engine) finishRound(st table.Settlement) {
	e.Monitor.IncRoundsFinished(st.LandlordWon)
	e.log.Info("round over", "round", st.Round, "winner", st.Winner, "landlord", st.Landlord,
		"landlordWon", st.LandlordWon, "multiplier", st.Multiplier)

	e.broadcast(OutRoundOver, st)
	side := "the farmers"
	if st.LandlordWon {
		side = "the landlord"
	}
	e.message(fmt.Sprintf("%s wins the round for %s", st.Winner, side))
	e.broadcastPlayerList()
	e.broadcastWager()
	e.saveRecord(st)
}

// saveRecord 异步写入，失败只记录日志，不影响房间循环
func (e *Engine) saveRecord(st table.Settlement) {
	if e.Records == nil {
		return
	}
	rec := record.Round{
		ID:          uuid.NewString(),
		Room:        e.Table.ID,
		Number:      st.Round,
		Landlord:    st.Landlord,
		Winner:      st.Winner,
		LandlordWon: st.LandlordWon,
		Multiplier:  st.Multiplier,
		Deltas:      st.Deltas,
		EndedAt:     time.Now().UTC(),
	}
	repo := e.Records
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := repo.Save(ctx, rec); err != nil {
			e.log.Error("save round record", "round", rec.Number, "err", err)
		}
	}()
}
