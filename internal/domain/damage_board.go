package domain

import "sort"

// DamageBoard is a player's ledger of damage tokens and marks, keyed by shooter nickname.
type DamageBoard struct {
	Damage []string
	Marks  map[string]int
}

// NewDamageBoard returns an empty board.
func NewDamageBoard() DamageBoard {
	return DamageBoard{Marks: make(map[string]int)}
}

// AddDamage places amount tokens from shooter, then converts the shooter's marks
// into extra tokens. Returns the number of tokens actually placed.
func (b *DamageBoard) AddDamage(shooter string, amount int) (int, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	if amount == 0 {
		return 0, nil
	}
	total := amount + b.Marks[shooter]
	delete(b.Marks, shooter)

	placed := 0
	for i := 0; i < total && len(b.Damage) < MaxDamageTokens; i++ {
		b.Damage = append(b.Damage, shooter)
		placed++
	}
	return placed, nil
}

// AddMarks gives amount marks from shooter, capped at MaxMarksPerShooter.
func (b *DamageBoard) AddMarks(shooter string, amount int) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	if b.Marks == nil {
		b.Marks = make(map[string]int)
	}
	n := b.Marks[shooter] + amount
	if n > MaxMarksPerShooter {
		n = MaxMarksPerShooter
	}
	if n > 0 {
		b.Marks[shooter] = n
	}
	return nil
}

// IsDead reports whether the board reached the death threshold.
func (b *DamageBoard) IsDead() bool {
	return len(b.Damage) >= DeathDamage
}

// Killer returns the shooter holding the killshot token.
func (b *DamageBoard) Killer() (string, bool) {
	if !b.IsDead() {
		return "", false
	}
	return b.Damage[DeathDamage-1], true
}

// IsOverkill reports whether the killer also holds the token after the killshot.
func (b *DamageBoard) IsOverkill() bool {
	killer, ok := b.Killer()
	if !ok || len(b.Damage) <= DeathDamage {
		return false
	}
	return b.Damage[DeathDamage] == killer
}

// FirstBlood returns the shooter of the first damage token.
func (b *DamageBoard) FirstBlood() (string, bool) {
	if len(b.Damage) == 0 {
		return "", false
	}
	return b.Damage[0], true
}

// ShooterTally is the number of damage tokens a shooter placed on a board.
type ShooterTally struct {
	Shooter string
	Tokens  int
}

// Tally counts tokens per shooter ordered by count, descending. Shooters with
// equal counts keep the order of their first token.
func (b *DamageBoard) Tally() []ShooterTally {
	weights := make([]int, len(b.Damage))
	for i := range weights {
		weights[i] = 1
	}
	return tallyStable(b.Damage, weights)
}

// ClearDamage empties the damage track and keeps marks.
func (b *DamageBoard) ClearDamage() {
	b.Damage = nil
}

// tallyStable sums weights per key in encounter order and sorts by total,
// descending, without reordering equal totals.
func tallyStable(keys []string, weights []int) []ShooterTally {
	var out []ShooterTally
	index := make(map[string]int)
	for i, key := range keys {
		j, ok := index[key]
		if !ok {
			j = len(out)
			index[key] = j
			out = append(out, ShooterTally{Shooter: key})
		}
		out[j].Tokens += weights[i]
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Tokens > out[b].Tokens })
	return out
}
