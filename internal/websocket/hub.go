package websocket

import (
	"sync"

	"DouDizhu/internal/monitor"
	"DouDizhu/internal/utils"
)

type HubInterface interface {
	BroadcastToPlayers(ids []string, msg OutgoingMessage)
	ClientByID(id string) (*Client, bool)
	SendToPlayer(id string, msg OutgoingMessage)
	Close()
}

type Hub struct {
	clients    map[string]*Client // connection id -> client
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastReq
	sendOne    chan sendReq
	incoming   chan IncomingMessage
	quit       chan struct{}
	closeOnce  sync.Once
	mu         sync.RWMutex

	// OnIncoming 把玩家消息转发给游戏层（GameManager）
	OnIncoming func(IncomingMessage)
	// OnLeave 在连接断开后调用一次
	OnLeave func(id string)
	Monitor *monitor.Monitor
}

type broadcastReq struct {
	IDs     []string
	Message OutgoingMessage
}

type sendReq struct {
	ID      string
	Message OutgoingMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastReq, 64),
		sendOne:    make(chan sendReq, 64),
		incoming:   make(chan IncomingMessage, 64),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	utils.Log.Info("hub started")

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			n := len(h.clients)
			h.mu.Unlock()
			h.Monitor.IncOnlinePlayers()
			utils.Log.Debug("hub register", "conn", c.ID, "ticket", c.Name, "clients", n)

		case c := <-h.unregister:
			h.mu.Lock()
			_, ok := h.clients[c.ID]
			if ok {
				delete(h.clients, c.ID)
				close(c.Send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			if !ok {
				continue
			}
			h.Monitor.DecOnlinePlayers()
			utils.Log.Debug("hub unregister", "conn", c.ID, "clients", n)
			if h.OnLeave != nil {
				h.OnLeave(c.ID)
			}

		case req := <-h.broadcast:
			for _, id := range req.IDs {
				h.deliver(id, req.Message)
			}

		case req := <-h.sendOne:
			h.deliver(req.ID, req.Message)

		case req := <-h.incoming:
			if h.OnIncoming != nil {
				h.OnIncoming(req)
			}

		case <-h.quit:
			h.mu.Lock()
			for id, c := range h.clients {
				close(c.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			utils.Log.Info("hub stopped")
			return
		}
	}
}

// deliver 不阻塞：慢客户端的消息直接丢弃
func (h *Hub) deliver(id string, msg OutgoingMessage) {
	h.mu.RLock()
	client, ok := h.clients[id]
	h.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case client.Send <- msg:
	default:
		utils.Log.Warn("dropping message for slow client", "conn", id, "event", msg.Event)
	}
}

// BroadcastToPlayers sends msg to every listed connection.
func (h *Hub) BroadcastToPlayers(ids []string, msg OutgoingMessage) {
	select {
	case h.broadcast <- broadcastReq{IDs: ids, Message: msg}:
	case <-h.quit:
	}
}

// SendToPlayer sends msg to one connection.
func (h *Hub) SendToPlayer(id string, msg OutgoingMessage) {
	select {
	case h.sendOne <- sendReq{ID: id, Message: msg}:
	case <-h.quit:
	}
}

func (h *Hub) ClientByID(id string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[id]
	return c, ok
}

// Count returns the number of live connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.quit) })
}
