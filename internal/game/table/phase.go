package table

// Phase 是一局的阶段；PAUSED 是叠加在任意阶段上的标志，不是独立阶段。
type Phase string

const (
	PhaseLobby     Phase = "LOBBY"
	PhaseDealing   Phase = "DEALING"
	PhaseBidding   Phase = "BIDDING"
	PhasePlaying   Phase = "PLAYING"
	PhaseRoundOver Phase = "ROUND_OVER"
)

// Active phases are the ones a disconnect pauses instead of freeing the seat.
func (p Phase) Active() bool {
	return p == PhaseDealing || p == PhaseBidding || p == PhasePlaying
}

// Action is anything a player (or the room) can ask the table to do.
type Action string

const (
	ActJoin      Action = "join"
	ActLeave     Action = "leave"
	ActDeal      Action = "deal"
	ActPickup    Action = "pickup"
	ActPlay      Action = "play"
	ActPass      Action = "pass"
	ActHint      Action = "hint"
	ActNextRound Action = "nextRound"
	ActReset     Action = "reset"
)

var transitions = map[Phase][]Action{
	PhaseLobby:     {ActJoin, ActLeave, ActDeal},
	PhaseDealing:   {ActJoin, ActLeave},
	PhaseBidding:   {ActJoin, ActLeave, ActPickup},
	PhasePlaying:   {ActJoin, ActLeave, ActPlay, ActPass, ActHint},
	PhaseRoundOver: {ActJoin, ActLeave, ActNextRound, ActDeal},
}

// 暂停时只允许重连、离开和重置
var pausedActions = []Action{ActJoin, ActLeave, ActReset}

// Allows reports whether action a is legal in phase p with the given pause state.
func Allows(p Phase, paused bool, a Action) bool {
	allowed := transitions[p]
	if paused {
		allowed = pausedActions
	}
	for _, x := range allowed {
		if x == a {
			return true
		}
	}
	return false
}
