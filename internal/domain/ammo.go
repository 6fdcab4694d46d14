package domain

import "strings"

// AmmoType is one of the three ammo colours.
type AmmoType int

const (
	AmmoRed AmmoType = iota
	AmmoBlue
	AmmoYellow
)

// AmmoTypes lists every colour in a stable order.
var AmmoTypes = []AmmoType{AmmoRed, AmmoBlue, AmmoYellow}

func (a AmmoType) String() string {
	switch a {
	case AmmoRed:
		return "RED"
	case AmmoBlue:
		return "BLUE"
	case AmmoYellow:
		return "YELLOW"
	default:
		return "UNKNOWN"
	}
}

// ParseAmmoType maps a colour name back to its AmmoType.
func ParseAmmoType(s string) (AmmoType, bool) {
	for _, a := range AmmoTypes {
		if strings.EqualFold(a.String(), s) {
			return a, true
		}
	}
	return 0, false
}

// Price is an ordered list of ammo units.
type Price []AmmoType

// Count returns how many units of a are in the price.
func (p Price) Count(a AmmoType) int {
	n := 0
	for _, t := range p {
		if t == a {
			n++
		}
	}
	return n
}

// Contains reports whether at least one unit of a is in the price.
func (p Price) Contains(a AmmoType) bool {
	return p.Count(a) > 0
}

// Without returns a copy of p with the first unit of a removed.
func (p Price) Without(a AmmoType) Price {
	out := make(Price, 0, len(p))
	removed := false
	for _, t := range p {
		if !removed && t == a {
			removed = true
			continue
		}
		out = append(out, t)
	}
	return out
}

// Equal compares two prices as multisets.
func (p Price) Equal(o Price) bool {
	if len(p) != len(o) {
		return false
	}
	for _, a := range AmmoTypes {
		if p.Count(a) != o.Count(a) {
			return false
		}
	}
	return true
}

func (p Price) String() string {
	parts := make([]string, len(p))
	for i, a := range p {
		parts[i] = a.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Ammo is a player's ammo pool, indexed by AmmoType.
type Ammo [3]int

// NewAmmo returns the starting pool: one unit of each colour.
func NewAmmo() Ammo {
	return Ammo{1, 1, 1}
}

// Add adds units, capped at MaxAmmoPerType per colour.
func (a *Ammo) Add(units ...AmmoType) {
	for _, u := range units {
		if a[u] < MaxAmmoPerType {
			a[u]++
		}
	}
}

// CanAfford reports whether the pool covers p.
func (a Ammo) CanAfford(p Price) bool {
	for _, t := range AmmoTypes {
		if a[t] < p.Count(t) {
			return false
		}
	}
	return true
}

// Pay removes p from the pool.
func (a *Ammo) Pay(p Price) error {
	if !a.CanAfford(p) {
		return ErrNotEnoughAmmo
	}
	for _, u := range p {
		a[u]--
	}
	return nil
}

// Total returns the number of units in the pool.
func (a Ammo) Total() int {
	return a[AmmoRed] + a[AmmoBlue] + a[AmmoYellow]
}

// Owned lists colours with at least one unit.
func (a Ammo) Owned() []AmmoType {
	var out []AmmoType
	for _, t := range AmmoTypes {
		if a[t] > 0 {
			out = append(out, t)
		}
	}
	return out
}
