package engine

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"DouDizhu/internal/game/table"
	"DouDizhu/internal/game/wager"
	"DouDizhu/internal/monitor"
	"DouDizhu/internal/record"
	"DouDizhu/internal/utils"
	"DouDizhu/internal/websocket"

	"github.com/charmbracelet/log"
)

var (
	ErrRoomFull       = errors.New("room is full")
	ErrNameTaken      = errors.New("name is already seated")
	ErrTicketMismatch = errors.New("name does not match your ticket")
	ErrNameRequired   = errors.New("name is required")
	ErrAlreadySeated  = errors.New("connection already holds a seat")
	ErrStopped        = errors.New("engine stopped")
)

// ---------------------
//   ACTION DEFINITION
// ---------------------

type Action struct {
	ConnID string
	Ticket string
	Event  string
	Data   json.RawMessage

	internal bool
	gen      uint64
	exec     func()
}

// ---------------------
//       ENGINE
// ---------------------

// Engine owns one room. Every action and query runs on its loop goroutine,
// so the table is never touched concurrently.
type Engine struct {
	Table        *table.Table
	Hub          websocket.HubInterface
	Records      record.Repo
	Monitor      *monitor.Monitor
	PauseTimeout time.Duration

	log        *log.Logger
	actionChan chan Action
	quit       chan struct{}
	done       chan struct{}
	startOnce  sync.Once
	stopOnce   sync.Once
	started    bool

	nameByConn map[string]string // connection id → player name
	connByName map[string]string

	pauseTimer *time.Timer
	pauseGen   uint64
}

type Option func(*Engine)

func WithRecords(r record.Repo) Option {
	return func(e *Engine) { e.Records = r }
}

func WithMonitor(m *monitor.Monitor) Option {
	return func(e *Engine) { e.Monitor = m }
}

// WithPauseTimeout arms a reset deadline whenever the room pauses. Zero keeps the pause open indefinitely.
func WithPauseTimeout(d time.Duration) Option {
	return func(e *Engine) { e.PauseTimeout = d }
}

func NewEngine(t *table.Table, hub websocket.HubInterface, opts ...Option) *Engine {
	e := &Engine{
		Table:      t,
		Hub:        hub,
		log:        utils.Log.With("room", t.ID),
		actionChan: make(chan Action, 32), // 防止死锁
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		nameByConn: make(map[string]string),
		connByName: make(map[string]string),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Start 启动 action loop
func (e *Engine) Start() {
	e.startOnce.Do(func() {
		e.started = true
		go e.actionLoop()
	})
}

// Stop ends the loop and cancels any pending pause deadline.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.quit) })
	if e.started {
		<-e.done
	}
}

func (e *Engine) actionLoop() {
	defer close(e.done)
	for {
		select {
		case act := <-e.actionChan:
			start := time.Now()
			e.handleAction(act)
			e.Monitor.ObserveActionLatency(time.Since(start))
		case <-e.quit:
			e.cancelPause()
			e.log.Debug("engine stopped")
			return
		}
	}
}

// EnqueueAction 玩家动作入口（GameManager 调用）
func (e *Engine) EnqueueAction(a Action) bool {
	select {
	case <-e.quit:
		return false
	default:
	}
	select {
	case e.actionChan <- a:
		return true
	case <-e.quit:
		return false
	}
}

// Disconnect reports that a connection is gone.
func (e *Engine) Disconnect(connID string) bool {
	return e.EnqueueAction(Action{ConnID: connID, Event: evDisconnect, internal: true})
}

// Do runs fn on the loop after every action queued before it, and waits.
func (e *Engine) Do(fn func(t *table.Table)) error {
	done := make(chan struct{})
	ok := e.EnqueueAction(Action{internal: true, exec: func() {
		fn(e.Table)
		close(done)
	}})
	if !ok {
		return ErrStopped
	}
	select {
	case <-done:
		return nil
	case <-e.quit:
		return ErrStopped
	}
}

// Summary is the public state of a room, for HTTP listings.
type Summary struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Phase     table.Phase        `json:"phase"`
	Paused    bool               `json:"paused"`
	Round     int                `json:"round"`
	Players   []table.PlayerInfo `json:"players"`
	Landlord  string             `json:"landlord,omitempty"`
	Wager     wager.Stakes       `json:"wager"`
	CreatedAt time.Time          `json:"createdAt"`
}

func (e *Engine) Summary() (Summary, error) {
	var s Summary
	err := e.Do(func(t *table.Table) {
		pl := t.PlayerList()
		s = Summary{
			ID:        t.ID,
			Name:      t.Name,
			Phase:     t.Phase,
			Paused:    t.Paused,
			Round:     t.Round,
			Players:   pl.Players,
			Landlord:  pl.Landlord,
			Wager:     t.Wager(),
			CreatedAt: t.CreatedAt,
		}
	})
	return s, err
}

// 分发玩家动作
func (e *Engine) handleAction(a Action) {
	if a.internal {
		switch {
		case a.exec != nil:
			a.exec()
		case a.Event == evDisconnect:
			e.handleDisconnect(a.ConnID)
		case a.Event == evPauseExpired:
			e.handlePauseExpired(a.gen)
		}
		return
	}

	switch a.Event {
	case EvJoin:
		e.handleJoin(a)
		return
	}

	name, ok := e.nameByConn[a.ConnID]
	if !ok {
		e.log.Debug("action from unseated connection", "conn", a.ConnID, "event", a.Event)
		return
	}
	seat := e.Table.SeatOf(name)

	switch a.Event {
	case EvPlayerList:
		e.sendTo(a.ConnID, OutPlayerList, e.Table.PlayerList())
	case EvPickup:
		e.handlePickup(a, seat)
	case EvPlay:
		e.handlePlay(a, seat)
	case EvPass:
		e.handlePass(a, seat)
	case EvHint:
		e.handleHint(a, seat)
	case EvReset:
		e.handleReset(name)
	case EvNextRound:
		e.handleNextRound(a)
	default:
		e.log.Debug("unknown event", "conn", a.ConnID, "event", a.Event)
	}
}

// --------------------------
//         发送工具
// --------------------------

// conns returns the live connections of seated players in seat order.
func (e *Engine) conns() []string {
	out := make([]string, 0, len(e.Table.Seats))
	for _, s := range e.Table.Seats {
		if id, ok := e.connByName[s.Name]; ok {
			out = append(out, id)
		}
	}
	return out
}

func (e *Engine) broadcast(event string, data any) {
	e.Hub.BroadcastToPlayers(e.conns(), websocket.OutgoingMessage{Event: event, Data: data})
}

func (e *Engine) broadcastExcept(skip, event string, data any) {
	ids := make([]string, 0, len(e.Table.Seats))
	for _, id := range e.conns() {
		if id != skip {
			ids = append(ids, id)
		}
	}
	e.Hub.BroadcastToPlayers(ids, websocket.OutgoingMessage{Event: event, Data: data})
}

func (e *Engine) sendTo(connID, event string, data any) {
	e.Hub.SendToPlayer(connID, websocket.OutgoingMessage{Event: event, Data: data})
}

// sendToSeat is a no-op for a vacated seat.
func (e *Engine) sendToSeat(seat int, event string, data any) {
	if id, ok := e.connByName[e.Table.NameOf(seat)]; ok {
		e.sendTo(id, event, data)
	}
}

func (e *Engine) message(text string) {
	e.broadcast(OutGameMessage, text)
}

func (e *Engine) broadcastPlayerList() {
	e.broadcast(OutPlayerList, e.Table.PlayerList())
}

func (e *Engine) broadcastWager() {
	e.broadcast(OutWager, e.Table.Wager())
}
