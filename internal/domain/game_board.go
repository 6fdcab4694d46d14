package domain

import (
	"errors"
	"math/rand"
	"sort"
)

var ErrInvalidSkulls = errors.New("skull count out of range")

// KillShot is one entry of the killshot track.
type KillShot struct {
	Shooter  string
	Overkill bool
}

// GameBoard is the whole state of a match: players, rotation, map, decks
// and the killshot track.
type GameBoard struct {
	Map *GameMap

	players []*Player
	queue   []*Player

	weapons   *Deck[*Weapon]
	powerups  *Deck[*Powerup]
	ammoCards *Deck[*AmmoCard]

	KillShots          []KillShot
	DoubleKills        []string
	TurnsLeftInFrenzy  int
	KillShotInThisTurn bool

	skulls int
	frenzy bool
}

// NewGameBoard seats nicknames in order; the first one plays first.
func NewGameBoard(layout MapLayout, nicknames []string, skulls int, rng *rand.Rand) (*GameBoard, error) {
	if len(nicknames) < MinPlayers {
		return nil, ErrTooFewPlayers
	}
	if len(nicknames) > MaxPlayers {
		return nil, ErrTooManyPlayers
	}
	if skulls < MinSkulls || skulls > MaxSkulls {
		return nil, ErrInvalidSkulls
	}
	seen := make(map[string]bool, len(nicknames))
	b := &GameBoard{
		Map:               NewGameMap(layout),
		TurnsLeftInFrenzy: len(nicknames),
		skulls:            skulls,
	}
	for _, n := range nicknames {
		if seen[n] {
			return nil, ErrDuplicatePlayer
		}
		seen[n] = true
		b.players = append(b.players, NewPlayer(n))
	}
	b.queue = append([]*Player(nil), b.players...)
	b.Map.Register(b.players...)

	var weapons []*Weapon
	for _, def := range WeaponCatalog {
		weapons = append(weapons, NewWeapon(def))
	}
	b.weapons = NewDeck(weapons, false, rng)
	b.powerups = NewDeck(NewPowerupCards(), true, rng)
	b.ammoCards = NewDeck(NewAmmoCards(), true, rng)
	b.RefillSquares()
	return b, nil
}

// Players returns every player in seat order.
func (b *GameBoard) Players() []*Player {
	return append([]*Player(nil), b.players...)
}

// Player looks a player up by nickname.
func (b *GameBoard) Player(nickname string) (*Player, bool) {
	for _, p := range b.players {
		if p.Nickname == nickname {
			return p, true
		}
	}
	return nil, false
}

// CurrentPlayer is the head of the rotation.
func (b *GameBoard) CurrentPlayer() *Player { return b.queue[0] }

// FirstPlayer is the player who opened the match.
func (b *GameBoard) FirstPlayer() *Player { return b.players[0] }

// RemainingSkulls is the number of skulls left on the track.
func (b *GameBoard) RemainingSkulls() int { return b.skulls }

// SkullsFinished reports whether the skull track is empty.
func (b *GameBoard) SkullsFinished() bool { return b.skulls <= 0 }

// IsFrenzyStarted reports whether final frenzy is on.
func (b *GameBoard) IsFrenzyStarted() bool { return b.frenzy }

// CanGameContinue reports whether another turn may be played.
func (b *GameBoard) CanGameContinue() bool { return b.TurnsLeftInFrenzy >= 0 }

// ConnectedPlayers counts the connected players.
func (b *GameBoard) ConnectedPlayers() int {
	n := 0
	for _, p := range b.players {
		if p.Connected {
			n++
		}
	}
	return n
}

// NextPlayerTurn rotates the queue, skipping disconnected players. Every
// seat passed during frenzy consumes one frenzy turn.
func (b *GameBoard) NextPlayerTurn() {
	if head := b.queue[0]; head.TurnStatus == YourTurn {
		head.TurnStatus = Idle
	}
	for i := 0; i < len(b.queue); i++ {
		b.queue = append(b.queue[1:], b.queue[0])
		if b.frenzy {
			b.TurnsLeftInFrenzy--
		}
		if b.queue[0].Connected {
			return
		}
	}
}

// StartFrenzy turns final frenzy on. Players who still play before the first
// player get FrenzyBefore, the first player and those after get FrenzyAfter,
// as the board game rules say, rather than everyone counting as after.
// Boards without damage flip.
func (b *GameBoard) StartFrenzy() {
	b.frenzy = true
	first := b.FirstPlayer()
	after := false
	for i := 1; i <= len(b.queue); i++ {
		p := b.queue[i%len(b.queue)]
		if p == first {
			after = true
		}
		if after {
			p.Status = NewDamageStatus(FrenzyAfter)
		} else {
			p.Status = NewDamageStatus(FrenzyBefore)
		}
	}
	b.FlipPlayersWithNoDamage()
}

// FlipPlayersWithNoDamage flips the boards of undamaged players.
func (b *GameBoard) FlipPlayersWithNoDamage() {
	for _, p := range b.players {
		if len(p.Board.Damage.Damage) == 0 {
			p.Board.Flipped = true
		}
	}
}

// SetCorrectDamageStatus picks the status a player starts the turn with.
func (b *GameBoard) SetCorrectDamageStatus(p *Player) {
	switch {
	case p.TurnStatus == PreSpawn:
		p.Status = NewDamageStatus(LowDamage)
	case b.frenzy:
		p.Status.Refill()
	default:
		p.Status = NewDamageStatus(StatusForDamage(len(p.Board.Damage.Damage)))
	}
}

// DrawPowerup gives p the top powerup, respecting the inventory limit.
func (b *GameBoard) DrawPowerup(p *Player) bool {
	if len(p.Board.Powerups) >= MaxPowerups {
		return false
	}
	return b.drawPowerup(p)
}

// DrawSpawnPowerups deals the cards a player chooses a spawn square from:
// two before the first spawn, one after a death. The hand may hold one card
// over the limit, which the spawn discard takes back.
func (b *GameBoard) DrawSpawnPowerups(p *Player) {
	n := 1
	if p.TurnStatus == PreSpawn {
		n = FirstSpawnDraw
	}
	for i := 0; i < n && len(p.Board.Powerups) <= MaxPowerups; i++ {
		b.drawPowerup(p)
	}
}

// ReturnSpawnDraw discards the newest cards of a player who left without
// spawning until the hand is within the limit again.
func (b *GameBoard) ReturnSpawnDraw(p *Player) {
	for len(p.Board.Powerups) > MaxPowerups {
		if _, err := b.DiscardPowerup(p, len(p.Board.Powerups)-1); err != nil {
			invariant("%s: cannot discard spawn draw: %v", p.Nickname, err)
		}
	}
}

func (b *GameBoard) drawPowerup(p *Player) bool {
	pu, ok := b.powerups.Draw()
	if !ok {
		return false
	}
	p.Board.Powerups = append(p.Board.Powerups, pu)
	return true
}

// DiscardPowerup removes a powerup from p and puts it on the discard pile.
func (b *GameBoard) DiscardPowerup(p *Player, index int) (*Powerup, error) {
	pu, err := p.Board.RemovePowerup(index)
	if err != nil {
		return nil, err
	}
	pu.Reset()
	b.powerups.Discard(pu)
	return pu, nil
}

// Spawn discards a powerup and places p on the spawn square of its colour.
func (b *GameBoard) Spawn(p *Player, powerupIndex int) (Coordinates, error) {
	pu, err := b.DiscardPowerup(p, powerupIndex)
	if err != nil {
		return Coordinates{}, err
	}
	c := b.Map.SpawnCoordinates(pu.Ammo)
	b.Map.MovePlayerTo(p, c)
	if p == b.CurrentPlayer() {
		p.TurnStatus = YourTurn
	} else {
		p.TurnStatus = Idle
	}
	return c, nil
}

// RefillSquares puts weapons on spawn squares and ammo cards on the others.
func (b *GameBoard) RefillSquares() {
	for _, sq := range b.Map.Squares() {
		if sq.Spawn {
			for len(sq.Weapons) < WeaponsPerSpawn {
				w, ok := b.weapons.Draw()
				if !ok {
					break
				}
				sq.Weapons = append(sq.Weapons, w)
			}
			continue
		}
		if sq.Ammo == nil {
			if card, ok := b.ammoCards.Draw(); ok {
				sq.Ammo = card
			}
		}
	}
}

func (b *GameBoard) squareOf(p *Player) *Square {
	pos, ok := b.Map.Position(p)
	if !ok {
		invariant("%s is not on the map", p.Nickname)
	}
	sq, _ := b.Map.Square(pos)
	return sq
}

// IsOnSpawn reports whether p stands on a spawn square.
func (b *GameBoard) IsOnSpawn(p *Player) bool {
	return b.squareOf(p).Spawn
}

// GrabAmmo takes the ammo card under p. It returns false on an empty square.
func (b *GameBoard) GrabAmmo(p *Player) bool {
	sq := b.squareOf(p)
	if sq.Spawn || sq.Ammo == nil {
		return false
	}
	card := sq.Ammo
	sq.Ammo = nil
	p.Board.Ammo.Add(card.Ammo...)
	if card.Powerup {
		b.DrawPowerup(p)
	}
	b.ammoCards.Discard(card)
	return true
}

// SquareWeapons lists the weapons on p's square.
func (b *GameBoard) SquareWeapons(p *Player) []*Weapon {
	return append([]*Weapon(nil), b.squareOf(p).Weapons...)
}

// GrabbableWeapons lists indexes of square weapons p can pay for with
// ammo and powerups.
func (b *GameBoard) GrabbableWeapons(p *Player) []int {
	var out []int
	for i, w := range b.squareOf(p).Weapons {
		if p.Board.CanAffordWithPowerups(w.Def.GrabPrice()) {
			out = append(out, i)
		}
	}
	return out
}

// GrabWeapon moves a weapon from p's square into p's inventory, loaded.
func (b *GameBoard) GrabWeapon(p *Player, squareIndex int) error {
	sq := b.squareOf(p)
	if squareIndex < 0 || squareIndex >= len(sq.Weapons) {
		return ErrInvalidIndex
	}
	if len(p.Board.Weapons) >= MaxWeapons {
		return ErrInventoryFull
	}
	w := sq.Weapons[squareIndex]
	sq.Weapons = append(sq.Weapons[:squareIndex:squareIndex], sq.Weapons[squareIndex+1:]...)
	w.Reset()
	w.Load()
	return p.Board.AddWeapon(w)
}

// SwapWeapon exchanges one of p's weapons with one on the square.
func (b *GameBoard) SwapWeapon(p *Player, discardIndex, squareIndex int) error {
	sq := b.squareOf(p)
	if squareIndex < 0 || squareIndex >= len(sq.Weapons) {
		return ErrInvalidIndex
	}
	old, err := p.Board.RemoveWeapon(discardIndex)
	if err != nil {
		return err
	}
	w := sq.Weapons[squareIndex]
	w.Reset()
	w.Load()
	old.Reset()
	sq.Weapons[squareIndex] = old
	return p.Board.AddWeapon(w)
}

// Reload loads one of p's weapons. Payment is handled by the caller.
func (b *GameBoard) Reload(p *Player, index int) error {
	if index < 0 || index >= len(p.Board.Weapons) {
		return ErrInvalidIndex
	}
	p.Board.Weapons[index].Load()
	return nil
}

// Pay covers price with the powerups at powerupIndexes and the rest with
// ammo. Nothing changes when it fails.
func (b *GameBoard) Pay(p *Player, price Price, powerupIndexes []int) error {
	used := make(map[int]bool, len(powerupIndexes))
	remaining := append(Price(nil), price...)
	for _, i := range powerupIndexes {
		if i < 0 || i >= len(p.Board.Powerups) || used[i] {
			return ErrInvalidIndex
		}
		used[i] = true
		a := p.Board.Powerups[i].Ammo
		if !remaining.Contains(a) {
			return ErrInvalidChoice
		}
		remaining = remaining.Without(a)
	}
	if !p.Board.Ammo.CanAfford(remaining) {
		return ErrNotEnoughAmmo
	}

	desc := append([]int(nil), powerupIndexes...)
	sort.Sort(sort.Reverse(sort.IntSlice(desc)))
	for _, i := range desc {
		if _, err := b.DiscardPowerup(p, i); err != nil {
			invariant("discarding powerup %d of %s: %v", i, p.Nickname, err)
		}
	}
	if err := p.Board.Ammo.Pay(remaining); err != nil {
		invariant("%s cannot pay %s after validation", p.Nickname, remaining)
	}
	return nil
}

// DealDamage gives target damage and marks from shooter and returns the
// number of damage tokens placed.
func (b *GameBoard) DealDamage(shooter, target *Player, damage, marks int) int {
	placed, err := target.Board.Damage.AddDamage(shooter.Nickname, damage)
	if err != nil {
		invariant("damage from %s to %s: %v", shooter.Nickname, target.Nickname, err)
	}
	if err := target.Board.Damage.AddMarks(shooter.Nickname, marks); err != nil {
		invariant("marks from %s to %s: %v", shooter.Nickname, target.Nickname, err)
	}
	return placed
}

// Queue lists nicknames in rotation order, current player first.
func (b *GameBoard) Queue() []string {
	return nicknames(b.queue)
}
