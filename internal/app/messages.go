package app

import "adrenaline/internal/domain"

// MessageKind identifies an inbound player message.
type MessageKind string

const (
	MsgAction          MessageKind = "ACTION"
	MsgMove            MessageKind = "MOVE"
	MsgGrabAmmo        MessageKind = "GRAB_AMMO"
	MsgGrabWeapon      MessageKind = "GRAB_WEAPON"
	MsgSwapWeapon      MessageKind = "SWAP_WEAPON"
	MsgReload          MessageKind = "RELOAD"
	MsgWeapon          MessageKind = "WEAPON"
	MsgActivatePowerup MessageKind = "ACTIVATE_POWERUP"
	MsgPowerup         MessageKind = "POWERUP"
	MsgPayment         MessageKind = "PAYMENT"
	MsgSpawn           MessageKind = "SPAWN"
	MsgEndTurn         MessageKind = "END_TURN"
)

// MessageSubtype distinguishes answers from requests of the same kind.
type MessageSubtype int

const (
	SubtypeAnswer MessageSubtype = iota
	// SubtypeRequest asks the engine for a list, e.g. the reload list at end of turn.
	SubtypeRequest
)

// Message is one inbound player message. Only the fields used by Kind are read.
type Message struct {
	Player  string
	Kind    MessageKind
	Subtype MessageSubtype

	// Index is the option index of the answered question. For SPAWN it is
	// the index of the powerup to discard.
	Index int
	// Coordinates is the MOVE destination.
	Coordinates domain.Coordinates
	// Discard is the SWAP_WEAPON index of the owned weapon to give up.
	Discard int
	// Powerups and Price carry a PAYMENT.
	Powerups []int
	Price    domain.Price
}
