package nakama

import "adrenaline/internal/app"

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"
	// RpcSeatToken exchanges a valid seat token for a fresh one.
	RpcSeatToken = "seat_token"

	// MatchNameAdrenaline is the authoritative match handler name registered with Nakama.
	MatchNameAdrenaline = "adrenaline_match"

	// LeaderboardPoints ranks accounts by lifetime points.
	LeaderboardPoints = "adrenaline_points"

	// MetadataSeatToken is the join metadata key carrying a seat token on reconnect.
	MetadataSeatToken = "seat_token"

	tickRate = 1
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame int64 = 1

	OpAction          int64 = 10
	OpMove            int64 = 11
	OpGrabAmmo        int64 = 12
	OpGrabWeapon      int64 = 13
	OpSwapWeapon      int64 = 14
	OpReload          int64 = 15
	OpWeapon          int64 = 16
	OpActivatePowerup int64 = 17
	OpPowerup         int64 = 18
	OpPayment         int64 = 19
	OpSpawn           int64 = 20
	OpEndTurn         int64 = 21

	// Server -> Client events
	OpLobbyState         int64 = 100
	OpMatchStarted       int64 = 101
	OpTurnStarted        int64 = 102
	OpBoardSnapshot      int64 = 103
	OpKillShot           int64 = 104
	OpFrenzyStarted      int64 = 105
	OpPlayerDisconnected int64 = 106
	OpPlayerReconnected  int64 = 107
	OpMatchEnded         int64 = 108
	OpMatchAborted       int64 = 109
	OpSeatToken          int64 = 110 // send privately
	OpAsk                int64 = 120 // send privately
	OpGameError          int64 = 199 // send privately
)

var messageKinds = map[int64]app.MessageKind{
	OpAction:          app.MsgAction,
	OpMove:            app.MsgMove,
	OpGrabAmmo:        app.MsgGrabAmmo,
	OpGrabWeapon:      app.MsgGrabWeapon,
	OpSwapWeapon:      app.MsgSwapWeapon,
	OpReload:          app.MsgReload,
	OpWeapon:          app.MsgWeapon,
	OpActivatePowerup: app.MsgActivatePowerup,
	OpPowerup:         app.MsgPowerup,
	OpPayment:         app.MsgPayment,
	OpSpawn:           app.MsgSpawn,
	OpEndTurn:         app.MsgEndTurn,
}

var broadcastOpCodes = map[app.EventKind]int64{
	app.EventMatchStarted:       OpMatchStarted,
	app.EventTurnStarted:        OpTurnStarted,
	app.EventBoardSnapshot:      OpBoardSnapshot,
	app.EventKillShot:           OpKillShot,
	app.EventFrenzyStarted:      OpFrenzyStarted,
	app.EventPlayerDisconnected: OpPlayerDisconnected,
	app.EventPlayerReconnected:  OpPlayerReconnected,
	app.EventMatchEnded:         OpMatchEnded,
	app.EventMatchAborted:       OpMatchAborted,
}

// eventOpCode maps an event to its op code. Every ask shares OpAsk and is
// told apart by its kind field.
func eventOpCode(kind app.EventKind) (int64, bool) {
	if kind.IsAsk() {
		return OpAsk, true
	}
	op, ok := broadcastOpCodes[kind]
	return op, ok
}
