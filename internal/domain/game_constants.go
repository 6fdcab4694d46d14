package domain

// Match setup bounds.
const (
	MinPlayers = 3
	MaxPlayers = 5
	MinSkulls  = 5
	MaxSkulls  = 8
)

// Board rules.
const (
	// DeathDamage is the number of damage tokens that kills a player.
	// Token DeathDamage-1 is the killshot, token DeathDamage the overkill.
	DeathDamage = 10

	// MaxDamageTokens caps the damage track; tokens beyond the overkill are discarded.
	MaxDamageTokens    = DeathDamage + 1
	MaxMarksPerShooter = 3

	MediumDamageThreshold = 3
	HighDamageThreshold   = 6

	MaxWeapons       = 3
	MaxPowerups      = 3
	MaxAmmoPerType   = 3
	WeaponsPerSpawn  = 3
	FirstSpawnDraw   = 2
	FirstBloodPoints = 1
	DoubleKillPoints = 1
)

// Actions per turn for each damage status.
const (
	ActionsPerTurn             = 3
	FrenzyBeforeActionsPerTurn = 2
	FrenzyAfterActionsPerTurn  = 1
)

var (
	// PlayerScores is indexed by shooter rank, shifted by the number of previous deaths.
	PlayerScores = []int{8, 6, 4, 2, 1, 1}

	// FrenzyScores is used for flipped boards.
	FrenzyScores = []int{2, 1, 1, 1}

	// KillShotScores is indexed by rank on the killshot track.
	KillShotScores = []int{8, 6, 4, 2, 2}
)
