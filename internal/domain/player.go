package domain

// TurnStatus is where a player stands in the turn rotation.
type TurnStatus int

const (
	PreSpawn TurnStatus = iota
	YourTurn
	Idle
	Dead
)

func (t TurnStatus) String() string {
	return [...]string{"PRE_SPAWN", "YOUR_TURN", "IDLE", "DEAD"}[t]
}

// Player is a participant of a match.
type Player struct {
	Nickname      string
	Connected     bool
	TurnStatus    TurnStatus
	Status        *DamageStatus
	Board         *PlayerBoard
	FiringWeapon  int
	ActivePowerup int
}

// NewPlayer returns a connected player waiting to spawn.
func NewPlayer(nickname string) *Player {
	return &Player{
		Nickname:      nickname,
		Connected:     true,
		TurnStatus:    PreSpawn,
		Status:        NewDamageStatus(LowDamage),
		Board:         NewPlayerBoard(),
		FiringWeapon:  -1,
		ActivePowerup: -1,
	}
}

// IsShooting reports whether a weapon is mid-activation.
func (p *Player) IsShooting() bool { return p.FiringWeapon != -1 }

// IsUsingPowerup reports whether a powerup is mid-activation.
func (p *Player) IsUsingPowerup() bool { return p.ActivePowerup != -1 }

// CurrentWeapon returns the weapon being fired.
func (p *Player) CurrentWeapon() *Weapon {
	if !p.IsShooting() {
		invariant("%s: no weapon firing", p.Nickname)
	}
	return p.Board.Weapons[p.FiringWeapon]
}

// CurrentPowerup returns the powerup being activated.
func (p *Player) CurrentPowerup() *Powerup {
	if !p.IsUsingPowerup() {
		invariant("%s: no powerup in execution", p.Nickname)
	}
	return p.Board.Powerups[p.ActivePowerup]
}

// PlayerBoard is everything a player owns.
type PlayerBoard struct {
	Ammo     Ammo
	Weapons  []*Weapon
	Powerups []*Powerup
	Damage   DamageBoard
	Points   int
	Deaths   int
	Flipped  bool
}

// NewPlayerBoard returns the starting board.
func NewPlayerBoard() *PlayerBoard {
	return &PlayerBoard{Ammo: NewAmmo(), Damage: NewDamageBoard()}
}

// AddWeapon adds w to the inventory.
func (b *PlayerBoard) AddWeapon(w *Weapon) error {
	if len(b.Weapons) >= MaxWeapons {
		return ErrInventoryFull
	}
	b.Weapons = append(b.Weapons, w)
	return nil
}

// RemoveWeapon takes the weapon at index out of the inventory.
func (b *PlayerBoard) RemoveWeapon(index int) (*Weapon, error) {
	if index < 0 || index >= len(b.Weapons) {
		return nil, ErrInvalidIndex
	}
	w := b.Weapons[index]
	b.Weapons = append(b.Weapons[:index:index], b.Weapons[index+1:]...)
	return w, nil
}

// AddPowerup adds pu to the inventory.
func (b *PlayerBoard) AddPowerup(pu *Powerup) error {
	if len(b.Powerups) >= MaxPowerups {
		return ErrInventoryFull
	}
	b.Powerups = append(b.Powerups, pu)
	return nil
}

// RemovePowerup takes the powerup at index out of the inventory.
func (b *PlayerBoard) RemovePowerup(index int) (*Powerup, error) {
	if index < 0 || index >= len(b.Powerups) {
		return nil, ErrInvalidIndex
	}
	pu := b.Powerups[index]
	b.Powerups = append(b.Powerups[:index:index], b.Powerups[index+1:]...)
	return pu, nil
}

// PowerupAmmo returns the associated ammo of every powerup held.
func (b *PlayerBoard) PowerupAmmo() Price {
	out := make(Price, len(b.Powerups))
	for i, pu := range b.Powerups {
		out[i] = pu.Ammo
	}
	return out
}

// CanAffordWithPowerups reports whether ammo plus powerups converted to ammo cover p.
func (b *PlayerBoard) CanAffordWithPowerups(p Price) bool {
	pool := b.Ammo
	for _, a := range b.PowerupAmmo() {
		pool[a]++
	}
	return pool.CanAfford(p)
}

// CanUsePowerupToPay reports whether any held powerup matches a unit of p.
func (b *PlayerBoard) CanUsePowerupToPay(p Price) bool {
	for _, pu := range b.Powerups {
		if p.Contains(pu.Ammo) {
			return true
		}
	}
	return false
}

// LoadableWeapons lists indexes of unloaded weapons whose reload price is affordable.
func (b *PlayerBoard) LoadableWeapons() []int {
	var out []int
	for i, w := range b.Weapons {
		if !w.Loaded && b.CanAffordWithPowerups(w.Def.ReloadPrice) {
			out = append(out, i)
		}
	}
	return out
}

// HasLoadedWeapons reports whether any weapon is loaded.
func (b *PlayerBoard) HasLoadedWeapons() bool {
	for _, w := range b.Weapons {
		if w.Loaded {
			return true
		}
	}
	return false
}

// resetAfterDeath clears damage, counts the death and keeps marks.
func (b *PlayerBoard) resetAfterDeath() {
	b.Damage.ClearDamage()
	b.Deaths++
}
