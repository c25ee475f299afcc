package table

import (
	"errors"
	"fmt"
	"time"

	"DouDizhu/internal/game/bidding"
	"DouDizhu/internal/game/card"
	"DouDizhu/internal/game/dealer"
	"DouDizhu/internal/game/rules"
	"DouDizhu/internal/game/wager"
)

const Size = dealer.Seats

var (
	ErrNotInHand        = errors.New("cards are not in your hand")
	ErrMustLead         = errors.New("you lead this trick and must play")
	ErrOutOfTurn        = errors.New("not your turn")
	ErrWrongPhase       = errors.New("action not allowed now")
	ErrFull             = errors.New("table is full")
	ErrNotEnoughPlayers = errors.New("need three players")
	ErrUnknownSeat      = errors.New("no such seat")
)

// Seat 是一个固定的玩家身份：名字是重连时的识别键，连接可以暂时缺失。
type Seat struct {
	Name      string
	Hand      []card.Card
	Score     int
	Connected bool
}

// Table holds one room's round state. It does no I/O and no locking; the
// owning engine serialises every call.
type Table struct {
	ID        string
	Name      string
	CreatedAt time.Time

	Seats  []*Seat
	Phase  Phase
	Paused bool
	Round  int

	dealer *dealer.Dealer
	bid    *bidding.Bidding
	wager  *wager.Multiplier

	Bottom     []card.Card
	Reveal     card.Card
	RevealSeat int
	Landlord   int
	Turn       int

	LastPlay  []card.Card
	LastCombo rules.Combination
	LastSeat  int
	Passes    int
	// Played collects every card played this round.
	Played []card.Card
}

func New(id, name string, seed int64) *Table {
	return &Table{
		ID:         id,
		Name:       name,
		CreatedAt:  time.Now(),
		Seats:      make([]*Seat, 0, Size),
		Phase:      PhaseLobby,
		dealer:     dealer.NewDealer(seed),
		wager:      wager.NewMultiplier(),
		Landlord:   -1,
		LastSeat:   -1,
		Turn:       -1,
		RevealSeat: -1,
	}
}

func (t *Table) Allows(a Action) bool {
	return Allows(t.Phase, t.Paused, a)
}

func (t *Table) Full() bool {
	return len(t.Seats) >= Size
}

// SeatOf returns the seat index for name, or -1.
func (t *Table) SeatOf(name string) int {
	for i, s := range t.Seats {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func (t *Table) Seat(i int) *Seat {
	if i < 0 || i >= len(t.Seats) {
		return nil
	}
	return t.Seats[i]
}

// NameOf returns the name at seat i, or "" for an unset seat.
func (t *Table) NameOf(i int) string {
	if s := t.Seat(i); s != nil {
		return s.Name
	}
	return ""
}

// AddSeat appends a new connected seat.
func (t *Table) AddSeat(name string) (int, error) {
	if t.Full() {
		return -1, ErrFull
	}
	t.Seats = append(t.Seats, &Seat{Name: name, Connected: true})
	return len(t.Seats) - 1, nil
}

// RemoveSeat frees a seat for good. Only possible while no round is active.
func (t *Table) RemoveSeat(name string) error {
	if t.Phase.Active() {
		return ErrWrongPhase
	}
	i := t.SeatOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSeat, name)
	}
	t.Seats = append(t.Seats[:i], t.Seats[i+1:]...)
	if t.Phase == PhaseRoundOver {
		// 人不齐了，回大厅等第三个人
		t.Phase = PhaseLobby
	}
	return nil
}

func (t *Table) SetConnected(i int, connected bool) {
	if s := t.Seat(i); s != nil {
		s.Connected = connected
	}
}

// Vacated lists the names of seats without a live connection.
func (t *Table) Vacated() []string {
	var out []string
	for _, s := range t.Seats {
		if !s.Connected {
			out = append(out, s.Name)
		}
	}
	return out
}

func (t *Table) Wager() wager.Stakes {
	return t.wager.Stakes()
}

func (t *Table) Bidding() *bidding.Bidding {
	return t.bid
}

// Reset drops every disconnected seat, zeroes scores and returns to the lobby.
func (t *Table) Reset() []string {
	var dropped []string
	kept := t.Seats[:0]
	for _, s := range t.Seats {
		if !s.Connected {
			dropped = append(dropped, s.Name)
			continue
		}
		s.Score = 0
		kept = append(kept, s)
	}
	t.Seats = kept
	t.clearRound()
	t.Phase = PhaseLobby
	t.Paused = false
	return dropped
}

func (t *Table) clearRound() {
	for _, s := range t.Seats {
		s.Hand = nil
	}
	t.Bottom = nil
	t.Reveal = card.Hidden
	t.RevealSeat = -1
	t.bid = nil
	t.wager.Reset()
	t.Landlord = -1
	t.Turn = -1
	t.clearTrick()
	t.Played = nil
}

func (t *Table) clearTrick() {
	t.LastPlay = nil
	t.LastCombo = rules.Combination{}
	t.LastSeat = -1
	t.Passes = 0
}

func next(i int) int {
	return (i + 1) % Size
}
