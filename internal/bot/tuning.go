package bot

// Tuning weighs the macro-actions and targets of AggressiveBot.
type Tuning struct {
	ShootWeight  float64
	GrabWeight   float64
	MoveWeight   float64
	ReloadWeight float64
	// MovePerSquare rewards longer moves, scaled by the move distance.
	MovePerSquare float64
	// VisibleEnemyWeight scores a square by the enemies seen from it.
	VisibleEnemyWeight float64
	// DamageFocus prefers targets closer to death.
	DamageFocus float64
}

// DefaultTuning shoots whenever it can, grabs otherwise, and hunts the most
// damaged enemy.
var DefaultTuning = Tuning{
	ShootWeight:        10.0,
	GrabWeight:         4.0,
	MoveWeight:         1.0,
	ReloadWeight:       2.0,
	MovePerSquare:      0.25,
	VisibleEnemyWeight: 1.5,
	DamageFocus:        1.0,
}
