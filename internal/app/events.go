package app

import "adrenaline/internal/domain"

// EventKind identifies emitted events for Nakama dispatch.
type EventKind string

const (
	EventAskSpawn             EventKind = "ask_spawn"
	EventAskAction            EventKind = "ask_action"
	EventAskMove              EventKind = "ask_move"
	EventAskGrabWeapon        EventKind = "ask_grab_weapon"
	EventAskSwapWeapon        EventKind = "ask_swap_weapon"
	EventAskReload            EventKind = "ask_reload"
	EventAskShoot             EventKind = "ask_shoot"
	EventAskWeaponChoice      EventKind = "ask_weapon_choice"
	EventAskPowerupActivation EventKind = "ask_powerup_activation"
	EventAskPowerupChoice     EventKind = "ask_powerup_choice"
	EventAskToPay             EventKind = "ask_to_pay"
	EventAskEnd               EventKind = "ask_end"

	EventMatchStarted       EventKind = "match_started"
	EventTurnStarted        EventKind = "turn_started"
	EventBoardSnapshot      EventKind = "board_snapshot"
	EventKillShot           EventKind = "kill_shot"
	EventFrenzyStarted      EventKind = "frenzy_started"
	EventPlayerDisconnected EventKind = "player_disconnected"
	EventPlayerReconnected  EventKind = "player_reconnected"
	EventMatchEnded         EventKind = "match_ended"
	EventMatchAborted       EventKind = "match_aborted"
)

// IsAsk reports whether the event is a question addressed to one player.
func (k EventKind) IsAsk() bool {
	switch k {
	case EventAskSpawn, EventAskAction, EventAskMove, EventAskGrabWeapon, EventAskSwapWeapon,
		EventAskReload, EventAskShoot, EventAskWeaponChoice, EventAskPowerupActivation,
		EventAskPowerupChoice, EventAskToPay, EventAskEnd:
		return true
	}
	return false
}

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // nicknames; empty means broadcast
}

// AskPayload is the body of every ask. Answers index into Question.
type AskPayload struct {
	QuestionID string
	Player     string
	Question   domain.QuestionContainer

	// UseCase is set on powerup activation asks.
	UseCase string
	// Price and CanAffordWithAmmo are set on payment asks.
	Price             domain.Price
	CanAffordWithAmmo bool
	// CanActivatePowerup and CanReload are hints for action and end asks.
	CanActivatePowerup bool
	CanReload          bool
}

type MatchStartedPayload struct {
	Players []string
	Skulls  int
	Frenzy  bool
}

type TurnStartedPayload struct {
	Player    string
	Status    string
	Remaining int
}

type KillShotPayload struct {
	Victim   string
	Shooter  string
	Overkill bool
}

type FrenzyStartedPayload struct {
	TurnsLeft int
}

type PlayerConnectionPayload struct {
	Player string
}

type MatchEndedPayload struct {
	Leaderboard []domain.LeaderboardSlot
	Reason      string
}

type MatchAbortedPayload struct {
	Reason string
}

// BoardSnapshot is the public view of a match.
type BoardSnapshot struct {
	Players           []PlayerSnapshot
	Queue             []string
	Skulls            int
	KillShots         []domain.KillShot
	Frenzy            bool
	TurnsLeftInFrenzy int
}

type PlayerSnapshot struct {
	Nickname   string
	Connected  bool
	TurnStatus string
	Status     string
	Position   *domain.Coordinates
	Ammo       [3]int
	Weapons    []WeaponSnapshot
	Powerups   int
	Damage     []string
	Marks      map[string]int
	Points     int
	Deaths     int
	Flipped    bool
}

type WeaponSnapshot struct {
	Name   string
	Loaded bool
}

// Snapshot builds the public view of b.
func Snapshot(b *domain.GameBoard) BoardSnapshot {
	s := BoardSnapshot{
		Queue:             b.Queue(),
		Skulls:            b.RemainingSkulls(),
		KillShots:         append([]domain.KillShot(nil), b.KillShots...),
		Frenzy:            b.IsFrenzyStarted(),
		TurnsLeftInFrenzy: b.TurnsLeftInFrenzy,
	}
	for _, p := range b.Players() {
		ps := PlayerSnapshot{
			Nickname:   p.Nickname,
			Connected:  p.Connected,
			TurnStatus: p.TurnStatus.String(),
			Status:     p.Status.Kind().String(),
			Ammo:       p.Board.Ammo,
			Powerups:   len(p.Board.Powerups),
			Damage:     append([]string(nil), p.Board.Damage.Damage...),
			Marks:      make(map[string]int, len(p.Board.Damage.Marks)),
			Points:     p.Board.Points,
			Deaths:     p.Board.Deaths,
			Flipped:    p.Board.Flipped,
		}
		if pos, ok := b.Map.Position(p); ok {
			ps.Position = &pos
		}
		for _, w := range p.Board.Weapons {
			ps.Weapons = append(ps.Weapons, WeaponSnapshot{Name: w.Name(), Loaded: w.Loaded})
		}
		for shooter, n := range p.Board.Damage.Marks {
			ps.Marks[shooter] = n
		}
		s.Players = append(s.Players, ps)
	}
	return s
}
