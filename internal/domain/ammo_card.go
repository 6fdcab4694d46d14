package domain

// AmmoCard lies on a non-spawn square: some ammo and, optionally, a powerup draw.
type AmmoCard struct {
	Ammo    Price
	Powerup bool
}

// NewAmmoCards returns the full ammo deck.
func NewAmmoCards() []*AmmoCard {
	var out []*AmmoCard
	for _, a := range AmmoTypes {
		for _, b := range AmmoTypes {
			if a == b {
				continue
			}
			for i := 0; i < 3; i++ {
				out = append(out, &AmmoCard{Ammo: Price{a, a, b}})
			}
		}
	}
	for _, a := range AmmoTypes {
		for i := 0; i < 2; i++ {
			out = append(out, &AmmoCard{Ammo: Price{a, a}, Powerup: true})
		}
	}
	for i, a := range AmmoTypes {
		for _, b := range AmmoTypes[i+1:] {
			for j := 0; j < 4; j++ {
				out = append(out, &AmmoCard{Ammo: Price{a, b}, Powerup: true})
			}
		}
	}
	return out
}
