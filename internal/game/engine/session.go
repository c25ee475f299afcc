package engine

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"DouDizhu/internal/game/table"
)

func (e *Engine) bind(connID, name string) {
	e.nameByConn[connID] = name
	e.connByName[name] = connID
}

func (e *Engine) unbind(connID string) (string, bool) {
	name, ok := e.nameByConn[connID]
	if !ok {
		return "", false
	}
	delete(e.nameByConn, connID)
	if e.connByName[name] == connID {
		delete(e.connByName, name)
	}
	return name, true
}

func (e *Engine) rejectJoin(connID string, err error) {
	e.log.Info("join rejected", "conn", connID, "err", err)
	e.sendTo(connID, OutJoinRejected, rejected{Reason: err.Error()})
}

func (e *Engine) handleJoin(a Action) {
	var p JoinPayload
	if len(a.Data) > 0 {
		if err := json.Unmarshal(a.Data, &p); err != nil {
			e.rejectJoin(a.ConnID, ErrNameRequired)
			return
		}
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		e.rejectJoin(a.ConnID, ErrNameRequired)
		return
	}
	if a.Ticket != "" && a.Ticket != name {
		e.rejectJoin(a.ConnID, ErrTicketMismatch)
		return
	}

	if bound, ok := e.nameByConn[a.ConnID]; ok {
		if bound == name {
			e.sendTo(a.ConnID, OutState, e.Table.Snapshot(e.Table.SeatOf(name)))
			return
		}
		e.rejectJoin(a.ConnID, ErrAlreadySeated)
		return
	}

	if seat := e.Table.SeatOf(name); seat >= 0 {
		if e.Table.Seats[seat].Connected {
			e.rejectJoin(a.ConnID, ErrNameTaken)
			return
		}
		e.rejoin(a.ConnID, seat)
		return
	}

	if e.Table.Full() || e.Table.Phase.Active() {
		e.log.Info("room full", "conn", a.ConnID, "name", name)
		e.sendTo(a.ConnID, OutRoomFull, e.Table.PlayerList())
		return
	}

	if _, err := e.Table.AddSeat(name); err != nil {
		e.sendTo(a.ConnID, OutRoomFull, e.Table.PlayerList())
		return
	}
	e.bind(a.ConnID, name)
	e.log.Info("player joined", "name", name, "conn", a.ConnID, "seats", len(e.Table.Seats))

	e.broadcastPlayerList()
	e.sendTo(a.ConnID, OutWager, e.Table.Wager())

	if !e.Table.Full() {
		e.message(fmt.Sprintf("Waiting for players (%d/%d)", len(e.Table.Seats), table.Size))
		return
	}
	if e.Table.Phase == table.PhaseLobby {
		e.startRound(false)
	}
}

// rejoin 把断线的座位绑定到新连接，并只给重连者发送完整快照
func (e *Engine) rejoin(connID string, seat int) {
	name := e.Table.NameOf(seat)
	e.bind(connID, name)
	e.Table.SetConnected(seat, true)

	resumed := false
	if e.Table.Paused && len(e.Table.Vacated()) == 0 {
		e.Table.Paused = false
		e.cancelPause()
		e.Monitor.DecPausedRooms()
		resumed = true
	}
	e.log.Info("player rejoined", "name", name, "conn", connID, "resumed", resumed)

	e.sendTo(connID, OutState, e.Table.Snapshot(seat))
	if resumed {
		e.broadcastExcept(connID, OutGameResumed, gameResumed{Name: name})
	}
	e.broadcastPlayerList()
}

func (e *Engine) handleDisconnect(connID string) {
	name, ok := e.unbind(connID)
	if !ok {
		return
	}
	seat := e.Table.SeatOf(name)
	if seat < 0 {
		return
	}

	if !e.Table.Phase.Active() {
		if err := e.Table.RemoveSeat(name); err != nil {
			e.log.Warn("remove seat", "name", name, "err", err)
		}
		e.log.Info("player left", "name", name)
		e.broadcastPlayerList()
		e.message(fmt.Sprintf("%s left the room", name))
		return
	}

	e.Table.SetConnected(seat, false)
	if !e.Table.Paused {
		e.Table.Paused = true
		e.Monitor.IncPausedRooms()
	}
	e.armPause()
	e.log.Warn("player disconnected, game paused", "name", name, "phase", e.Table.Phase)

	e.broadcast(OutGamePaused, gamePaused{Name: name, Timeout: int(e.PauseTimeout / time.Second)})
	e.broadcastPlayerList()
}

func (e *Engine) handleReset(by string) {
	if !e.Table.Allows(table.ActReset) {
		e.log.Debug("reset ignored", "by", by, "phase", e.Table.Phase, "paused", e.Table.Paused)
		return
	}
	e.log.Info("reset requested", "by", by)
	e.reset()
}

func (e *Engine) handlePauseExpired(gen uint64) {
	if gen != e.pauseGen || !e.Table.Paused {
		e.log.Debug("stale pause expiry", "gen", gen, "current", e.pauseGen)
		return
	}
	e.log.Info("pause expired")
	e.message("Nobody came back in time, the game was reset")
	e.reset()
}

// reset 丢弃空座、清零分数并回到大厅
func (e *Engine) reset() {
	if e.Table.Paused {
		e.Monitor.DecPausedRooms()
	}
	e.cancelPause()
	dropped := e.Table.Reset()

	e.broadcast(OutGameReset, map[string]any{"dropped": dropped})
	e.broadcastPlayerList()
	e.broadcastWager()
}

// armPause 每次暂停都重新计时；旧的计时器通过代数作废
func (e *Engine) armPause() {
	e.pauseGen++
	gen := e.pauseGen
	if e.pauseTimer != nil {
		e.pauseTimer.Stop()
		e.pauseTimer = nil
	}
	if e.PauseTimeout <= 0 {
		return
	}
	e.pauseTimer = time.AfterFunc(e.PauseTimeout, func() {
		e.EnqueueAction(Action{Event: evPauseExpired, gen: gen, internal: true})
	})
}

func (e *Engine) cancelPause() {
	e.pauseGen++
	if e.pauseTimer != nil {
		e.pauseTimer.Stop()
		e.pauseTimer = nil
	}
}
