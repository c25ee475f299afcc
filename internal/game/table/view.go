package table

import (
	"DouDizhu/internal/game/card"
	"DouDizhu/internal/game/wager"
)

type PlayerInfo struct {
	Name      string `json:"name"`
	Cards     int    `json:"cards"`
	Score     int    `json:"score"`
	Connected bool   `json:"connected"`
	Landlord  bool   `json:"landlord"`
}

type PlayerList struct {
	Room     string       `json:"room"`
	Players  []PlayerInfo `json:"players"`
	Landlord string       `json:"landlord,omitempty"`
}

type TableView struct {
	Player   string      `json:"player,omitempty"`
	Cards    []card.Card `json:"cards"`
	Category string      `json:"category,omitempty"`
	Passes   int         `json:"passes"`
}

type BiddingView struct {
	Pick     string `json:"pick"`
	Attempts int    `json:"attempts"`
	Revealed bool   `json:"revealed"`
}

// Snapshot is everything a seat needs to redraw the game, e.g. after a rejoin.
type Snapshot struct {
	Room        string                 `json:"room"`
	Phase       Phase                  `json:"phase"`
	Paused      bool                   `json:"paused"`
	Round       int                    `json:"round"`
	You         string                 `json:"you"`
	Hand        []card.Card            `json:"hand"`
	Hands       map[string][]card.Card `json:"hands"`
	Players     PlayerList             `json:"players"`
	Table       TableView              `json:"table"`
	CurrentTurn string                 `json:"currentTurn,omitempty"`
	Landlord    string                 `json:"landlord,omitempty"`
	Bottom      []card.Card            `json:"bottom,omitempty"`
	Wager       wager.Stakes           `json:"wager"`
	Bidding     *BiddingView           `json:"bidding,omitempty"`
	Reveal      *RevealView            `json:"reveal,omitempty"`
}

type RevealView struct {
	Card  card.Card `json:"card"`
	Owner string    `json:"owner"`
}

func (t *Table) PlayerList() PlayerList {
	pl := PlayerList{Room: t.Name, Players: make([]PlayerInfo, 0, len(t.Seats)), Landlord: t.NameOf(t.Landlord)}
	for i, s := range t.Seats {
		pl.Players = append(pl.Players, PlayerInfo{
			Name:      s.Name,
			Cards:     len(s.Hand),
			Score:     s.Score,
			Connected: s.Connected,
			Landlord:  i == t.Landlord,
		})
	}
	return pl
}

func (t *Table) TableView() TableView {
	v := TableView{Player: t.NameOf(t.LastSeat), Cards: t.LastPlay, Passes: t.Passes}
	if len(t.LastPlay) > 0 {
		v.Category = string(t.LastCombo.Category)
	}
	if v.Cards == nil {
		v.Cards = []card.Card{}
	}
	return v
}

func (t *Table) BiddingView() *BiddingView {
	if t.bid == nil || t.Phase != PhaseBidding {
		return nil
	}
	return &BiddingView{
		Pick:     t.NameOf(t.bid.Pick()),
		Attempts: t.bid.Attempts(),
		Revealed: t.bid.IsRevealed(),
	}
}

// HandsFor shows seat its own hand and everyone else's as hidden cards,
// unless the bidding has revealed every hand.
func (t *Table) HandsFor(seat int) map[string][]card.Card {
	revealed := t.bid != nil && t.bid.IsRevealed() && t.Phase == PhaseBidding
	out := make(map[string][]card.Card, len(t.Seats))
	for i, s := range t.Seats {
		if i == seat || revealed {
			out[s.Name] = append([]card.Card{}, s.Hand...)
			continue
		}
		out[s.Name] = card.Conceal(s.Hand)
	}
	return out
}

// Snapshot builds the full view for seat.
func (t *Table) Snapshot(seat int) Snapshot {
	snap := Snapshot{
		Room:        t.Name,
		Phase:       t.Phase,
		Paused:      t.Paused,
		Round:       t.Round,
		You:         t.NameOf(seat),
		Hands:       t.HandsFor(seat),
		Players:     t.PlayerList(),
		Table:       t.TableView(),
		CurrentTurn: t.NameOf(t.Turn),
		Landlord:    t.NameOf(t.Landlord),
		Wager:       t.Wager(),
		Bidding:     t.BiddingView(),
	}
	if s := t.Seat(seat); s != nil {
		snap.Hand = append([]card.Card{}, s.Hand...)
	}
	if t.Landlord >= 0 {
		snap.Bottom = t.Bottom
	}
	if t.Phase == PhaseBidding && t.RevealSeat >= 0 {
		snap.Reveal = &RevealView{Card: t.Reveal, Owner: t.NameOf(t.RevealSeat)}
	}
	return snap
}
