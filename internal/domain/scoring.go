package domain

import "sort"

// AddKillShot records a kill on the track. A second kill by the current
// player in the same turn is a double kill.
func (b *GameBoard) AddKillShot(shooter *Player, overkill bool) {
	b.KillShots = append(b.KillShots, KillShot{Shooter: shooter.Nickname, Overkill: overkill})
	if shooter == b.CurrentPlayer() {
		if b.KillShotInThisTurn {
			b.DoubleKills = append(b.DoubleKills, shooter.Nickname)
			shooter.Board.Points += DoubleKillPoints
		}
		b.KillShotInThisTurn = true
	}
	if !b.SkullsFinished() {
		b.skulls--
	}
}

// ScoreDeadPlayer records the killshot on a dead board, awards its points
// and takes the player off the map until they spawn again.
func (b *GameBoard) ScoreDeadPlayer(p *Player) KillShot {
	killerName, ok := p.Board.Damage.Killer()
	if !ok {
		invariant("scoring %s, who is not dead", p.Nickname)
	}
	killer, ok := b.Player(killerName)
	if !ok {
		invariant("killer %s of %s is not in the match", killerName, p.Nickname)
	}
	overkill := p.Board.Damage.IsOverkill()
	b.AddKillShot(killer, overkill)
	if overkill {
		// revenge mark
		if err := killer.Board.Damage.AddMarks(p.Nickname, 1); err != nil {
			invariant("revenge mark on %s: %v", killer.Nickname, err)
		}
	}

	b.awardPoints(p)
	p.Board.resetAfterDeath()
	if b.frenzy {
		p.Board.Flipped = true
	} else {
		p.Status = NewDamageStatus(LowDamage)
	}
	p.TurnStatus = Dead
	b.Map.RemovePlayer(p)
	return KillShot{Shooter: killer.Nickname, Overkill: overkill}
}

// ScoreDeadPlayers scores every dead board in seat order and closes the
// turn's double kill window.
func (b *GameBoard) ScoreDeadPlayers() []*Player {
	var dead []*Player
	for _, p := range b.players {
		if p.Board.Damage.IsDead() {
			b.ScoreDeadPlayer(p)
			dead = append(dead, p)
		}
	}
	b.KillShotInThisTurn = false
	return dead
}

// awardPoints pays the shooters on p's board by rank, plus first blood on
// boards that are not flipped.
func (b *GameBoard) awardPoints(p *Player) {
	table := PlayerScores[min(p.Board.Deaths, len(PlayerScores)-1):]
	if p.Board.Flipped {
		table = FrenzyScores
	}
	for i, t := range p.Board.Damage.Tally() {
		if shooter, ok := b.Player(t.Shooter); ok {
			shooter.Board.Points += table[min(i, len(table)-1)]
		}
	}
	if p.Board.Flipped {
		return
	}
	if first, ok := p.Board.Damage.FirstBlood(); ok {
		if shooter, ok := b.Player(first); ok {
			shooter.Board.Points += FirstBloodPoints
		}
	}
}

// KillShotTally counts the track per shooter, overkills twice, ordered by
// count with ties in order of first appearance.
func (b *GameBoard) KillShotTally() []ShooterTally {
	keys := make([]string, len(b.KillShots))
	weights := make([]int, len(b.KillShots))
	for i, k := range b.KillShots {
		keys[i] = k.Shooter
		weights[i] = 1
		if k.Overkill {
			weights[i] = 2
		}
	}
	return tallyStable(keys, weights)
}

// LeaderboardSlot is one position of the final ranking; more than one
// player in a slot is a tie.
type LeaderboardSlot struct {
	Players []string
	Points  int
}

// EndGame scores every damaged board one last time, pays the killshot track
// and returns the final ranking.
func (b *GameBoard) EndGame() []LeaderboardSlot {
	for _, p := range b.players {
		if len(p.Board.Damage.Damage) > 0 {
			b.awardPoints(p)
		}
	}
	for i, t := range b.KillShotTally() {
		if p, ok := b.Player(t.Shooter); ok {
			p.Board.Points += KillShotScores[min(i, len(KillShotScores)-1)]
		}
	}
	return b.Ranking()
}

// Ranking groups players by points, descending, then breaks ties by the
// earliest appearance on the killshot track. Tied players who never
// appear on the track stay tied after the others.
func (b *GameBoard) Ranking() []LeaderboardSlot {
	var groups [][]*Player
	for _, p := range b.players {
		placed := false
		for i, g := range groups {
			if g[0].Board.Points == p.Board.Points {
				groups[i] = append(g, p)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []*Player{p})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i][0].Board.Points > groups[j][0].Board.Points
	})

	var out []LeaderboardSlot
	for _, g := range groups {
		points := g[0].Board.Points
		if len(g) == 1 {
			out = append(out, LeaderboardSlot{Players: []string{g[0].Nickname}, Points: points})
			continue
		}
		tied := nicknames(g)
		for _, k := range b.KillShots {
			for i, n := range tied {
				if n == k.Shooter {
					out = append(out, LeaderboardSlot{Players: []string{n}, Points: points})
					tied = append(tied[:i:i], tied[i+1:]...)
					break
				}
			}
		}
		if len(tied) > 0 {
			out = append(out, LeaderboardSlot{Players: tied, Points: points})
		}
	}
	return out
}
