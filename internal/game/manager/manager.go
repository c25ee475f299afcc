package manager

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"DouDizhu/internal/game/engine"
	"DouDizhu/internal/game/table"
	"DouDizhu/internal/monitor"
	"DouDizhu/internal/record"
	"DouDizhu/internal/utils"
	"DouDizhu/internal/websocket"
)

var (
	ErrTooManyRooms = errors.New("no more rooms can be opened")
	ErrRoomNotFound = errors.New("room not found")
)

type Options struct {
	DefaultRoom  string
	MaxRooms     int
	PauseTimeout time.Duration
	Records      record.Repo
	Monitor      *monitor.Monitor
}

// GameManager 管理所有房间：roomID → engine，连接 → roomID
type GameManager struct {
	mu         sync.RWMutex
	engines    map[string]*engine.Engine // roomID → engine
	connToRoom map[string]string         // connection id → roomID
	hub        websocket.HubInterface
	opts       Options
}

func NewGameManager(hub websocket.HubInterface, opts Options) *GameManager {
	if opts.DefaultRoom == "" {
		opts.DefaultRoom = "The Pitstop"
	}
	return &GameManager{
		engines:    make(map[string]*engine.Engine),
		connToRoom: make(map[string]string),
		hub:        hub,
		opts:       opts,
	}
}

// RoomID turns a display name into a url-safe id: "The Pitstop" → "the-pitstop".
func RoomID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// Records exposes the round record repository, or nil.
func (m *GameManager) Records() record.Repo {
	return m.opts.Records
}

// OpenRoom returns the room's engine, creating and starting it on first use.
func (m *GameManager) OpenRoom(name string) (*engine.Engine, error) {
	id := RoomID(name)
	if id == "" {
		return nil, fmt.Errorf("%w: empty name", ErrRoomNotFound)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if eng, ok := m.engines[id]; ok {
		return eng, nil
	}
	if m.opts.MaxRooms > 0 && len(m.engines) >= m.opts.MaxRooms {
		return nil, ErrTooManyRooms
	}

	t := table.New(id, strings.TrimSpace(name), time.Now().UnixNano())
	eng := engine.NewEngine(t, m.hub,
		engine.WithRecords(m.opts.Records),
		engine.WithMonitor(m.opts.Monitor),
		engine.WithPauseTimeout(m.opts.PauseTimeout),
	)
	m.engines[id] = eng
	eng.Start()

	m.opts.Monitor.SetActiveRooms(len(m.engines))
	utils.Log.Info("room opened", "room", id, "name", t.Name)
	return eng, nil
}

func (m *GameManager) Room(id string) (*engine.Engine, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	eng, ok := m.engines[id]
	return eng, ok
}

// HandlePlayerMessage 统一入口（来自 Hub.OnIncoming）
func (m *GameManager) HandlePlayerMessage(msg websocket.IncomingMessage) {
	if !engine.IsInbound(msg.Event) {
		utils.Log.Debug("dropping unknown event", "conn", msg.From, "event", msg.Event)
		return
	}
	act := engine.Action{
		ConnID: msg.From,
		Ticket: msg.Ticket,
		Event:  msg.Event,
		Data:   msg.Data,
	}

	if msg.Event == engine.EvJoin {
		m.handleJoin(msg, act)
		return
	}

	m.mu.RLock()
	roomID := m.connToRoom[msg.From]
	eng := m.engines[roomID]
	m.mu.RUnlock()

	if eng == nil {
		utils.Log.Debug("message from connection without room", "conn", msg.From, "event", msg.Event)
		return
	}
	eng.EnqueueAction(act)
}

func (m *GameManager) handleJoin(msg websocket.IncomingMessage, act engine.Action) {
	var p engine.JoinPayload
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			utils.Log.Debug("bad join payload", "conn", msg.From, "err", err)
			m.rejectJoin(msg.From, "malformed join payload")
			return
		}
	}

	m.mu.RLock()
	current, seated := m.connToRoom[msg.From]
	m.mu.RUnlock()

	name := p.Room
	if strings.TrimSpace(name) == "" {
		name = m.opts.DefaultRoom
	}
	// 已在某个房间的连接只能在原房间内重发 join
	if seated && current != RoomID(name) {
		m.rejectJoin(msg.From, fmt.Sprintf("already in room %s", current))
		return
	}

	eng, err := m.OpenRoom(name)
	if err != nil {
		utils.Log.Warn("cannot open room", "room", name, "err", err)
		m.rejectJoin(msg.From, err.Error())
		return
	}

	m.mu.Lock()
	m.connToRoom[msg.From] = eng.Table.ID
	m.mu.Unlock()

	eng.EnqueueAction(act)
}

func (m *GameManager) rejectJoin(connID, reason string) {
	m.hub.SendToPlayer(connID, websocket.OutgoingMessage{
		Event: engine.OutJoinRejected,
		Data:  map[string]string{"reason": reason},
	})
}

// HandleDisconnect 来自 Hub.OnLeave
func (m *GameManager) HandleDisconnect(connID string) {
	m.mu.Lock()
	roomID, ok := m.connToRoom[connID]
	delete(m.connToRoom, connID)
	eng := m.engines[roomID]
	m.mu.Unlock()

	if !ok || eng == nil {
		return
	}
	eng.Disconnect(connID)
}

// Summaries lists every room, sorted by id.
func (m *GameManager) Summaries() []engine.Summary {
	m.mu.RLock()
	engines := make([]*engine.Engine, 0, len(m.engines))
	for _, eng := range m.engines {
		engines = append(engines, eng)
	}
	m.mu.RUnlock()

	out := make([]engine.Summary, 0, len(engines))
	for _, eng := range engines {
		s, err := eng.Summary()
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Shutdown stops every room loop.
func (m *GameManager) Shutdown() {
	m.mu.Lock()
	engines := m.engines
	m.engines = make(map[string]*engine.Engine)
	m.connToRoom = make(map[string]string)
	m.mu.Unlock()

	for id, eng := range engines {
		eng.Stop()
		utils.Log.Debug("room stopped", "room", id)
	}
	m.opts.Monitor.SetActiveRooms(0)
}
