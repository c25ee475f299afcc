package engine

import (
	"DouDizhu/internal/game/card"
	"DouDizhu/internal/game/table"
)

// Inbound event names.
const (
	EvJoin       = "join"
	EvPlayerList = "playerList"
	EvPickup     = "pickup"
	EvPlay       = "play"
	EvPass       = "pass"
	EvReset      = "reset"
	EvNextRound  = "nextRound"
	EvHint       = "hint"

	// internal; only honoured on actions the engine builds itself
	evDisconnect   = "disconnect"
	evPauseExpired = "pauseExpired"
)

// IsInbound reports whether a client may send event.
func IsInbound(event string) bool {
	switch event {
	case EvJoin, EvPlayerList, EvPickup, EvPlay, EvPass, EvReset, EvNextRound, EvHint:
		return true
	}
	return false
}

// Outbound event names.
const (
	OutPlayerList    = "playerList"
	OutWager         = "wager"
	OutDealPreview   = "dealPreview"
	OutBidTurn       = "bidTurn"
	OutHandsRevealed = "handsRevealed"
	OutStartGame     = "startGame"
	OutGameMessage   = "gameMessage"
	OutCardsPlayed   = "cardsPlayed"
	OutPlayerPassed  = "playerPassed"
	OutTurnUpdate    = "turnUpdate"
	OutPlayRejected  = "playRejected"
	OutGamePaused    = "gamePaused"
	OutGameResumed   = "gameResumed"
	OutState         = "state"
	OutGameReset     = "gameReset"
	OutRoundOver     = "roundOver"
	OutRoomFull      = "roomFull"
	OutJoinRejected  = "joinRejected"
	OutHint          = "hint"
)

type JoinPayload struct {
	Name string `json:"name"`
	Room string `json:"room,omitempty"`
}

type PickupPayload struct {
	Take bool `json:"take"`
}

type PlayPayload struct {
	Cards []string `json:"cards"`
}

type dealPreview struct {
	Hand   []card.Card            `json:"hand"`
	Hands  map[string][]card.Card `json:"hands"`
	Reveal table.RevealView       `json:"reveal"`
}

type bidTurn struct {
	Name     string `json:"name"`
	Attempts int    `json:"attempts"`
	Revealed bool   `json:"revealed"`
}

type startGame struct {
	Hand     []card.Card `json:"hand"`
	YourTurn bool        `json:"yourTurn"`
	Landlord string      `json:"landlord"`
	Bottom   []card.Card `json:"bottom"`
	Forced   bool        `json:"forced"`
}

type cardsPlayed struct {
	Player     string      `json:"player"`
	Cards      []card.Card `json:"cards"`
	Category   string      `json:"category"`
	NextPlayer string      `json:"nextPlayer,omitempty"`
}

type playerPassed struct {
	Player       string `json:"player"`
	NextPlayer   string `json:"nextPlayer"`
	TableCleared bool   `json:"tableCleared"`
}

type turnUpdate struct {
	CurrentPlayer string `json:"currentPlayer"`
}

type rejected struct {
	Reason string `json:"reason"`
}

type gamePaused struct {
	Name    string `json:"name"`
	Timeout int    `json:"timeout"`
}

type gameResumed struct {
	Name string `json:"name"`
}

type hintPayload struct {
	Plays [][]card.Card `json:"plays"`
}
