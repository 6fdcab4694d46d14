package domain

import "sort"

// MapLayout describes a board: one string per row, one room letter per square
// ('-' for no square), the doors connecting squares of different rooms, and
// the spawn square of each ammo colour.
type MapLayout struct {
	Name   string
	Rows   []string
	Doors  [][2]Coordinates
	Spawns map[AmmoType]Coordinates
}

// SmallMap is the built-in ten-square board.
var SmallMap = MapLayout{
	Name: "small",
	Rows: []string{
		"BBB-",
		"RRRY",
		"-WWY",
	},
	Doors: [][2]Coordinates{
		{{Row: 0, Col: 0}, {Row: 1, Col: 0}},
		{{Row: 0, Col: 2}, {Row: 1, Col: 2}},
		{{Row: 1, Col: 1}, {Row: 2, Col: 1}},
		{{Row: 1, Col: 2}, {Row: 1, Col: 3}},
		{{Row: 2, Col: 2}, {Row: 2, Col: 3}},
	},
	Spawns: map[AmmoType]Coordinates{
		AmmoRed:    {Row: 1, Col: 0},
		AmmoBlue:   {Row: 0, Col: 2},
		AmmoYellow: {Row: 2, Col: 3},
	},
}

// Square is one cell of the map. Spawn squares hold weapons, the others an ammo card.
type Square struct {
	Coords  Coordinates
	Room    byte
	Spawn   bool
	Ammo    *AmmoCard
	Weapons []*Weapon
}

// GameMap holds the squares and the position of every player on them.
type GameMap struct {
	layout    MapLayout
	squares   map[Coordinates]*Square
	doors     map[[2]Coordinates]bool
	players   []*Player
	positions map[*Player]Coordinates
}

// NewGameMap builds a map from a layout.
func NewGameMap(layout MapLayout) *GameMap {
	m := &GameMap{
		layout:    layout,
		squares:   make(map[Coordinates]*Square),
		doors:     make(map[[2]Coordinates]bool),
		positions: make(map[*Player]Coordinates),
	}
	for r, row := range layout.Rows {
		for c := 0; c < len(row); c++ {
			if row[c] == '-' {
				continue
			}
			coords := Coordinates{Row: r, Col: c}
			m.squares[coords] = &Square{Coords: coords, Room: row[c]}
		}
	}
	for _, spawn := range layout.Spawns {
		if sq, ok := m.squares[spawn]; ok {
			sq.Spawn = true
		}
	}
	for _, d := range layout.Doors {
		m.doors[d] = true
		m.doors[[2]Coordinates{d[1], d[0]}] = true
	}
	return m
}

// Register adds players in turn order so lookups stay deterministic.
func (m *GameMap) Register(players ...*Player) {
	m.players = append(m.players, players...)
}

// Square returns the square at c.
func (m *GameMap) Square(c Coordinates) (*Square, bool) {
	sq, ok := m.squares[c]
	return sq, ok
}

// Squares returns every square ordered by row then column.
func (m *GameMap) Squares() []*Square {
	out := make([]*Square, 0, len(m.squares))
	for _, sq := range m.squares {
		out = append(out, sq)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i].Coords, out[j].Coords) })
	return out
}

// SpawnCoordinates returns the spawn square of an ammo colour.
func (m *GameMap) SpawnCoordinates(a AmmoType) Coordinates {
	c, ok := m.layout.Spawns[a]
	if !ok {
		invariant("map %s has no %s spawn", m.layout.Name, a)
	}
	return c
}

// Position returns where p stands; false when p is not on the map.
func (m *GameMap) Position(p *Player) (Coordinates, bool) {
	c, ok := m.positions[p]
	return c, ok
}

// MovePlayerTo places p on c.
func (m *GameMap) MovePlayerTo(p *Player, c Coordinates) {
	if _, ok := m.squares[c]; !ok {
		invariant("moving %s to missing square %s", p.Nickname, c)
	}
	m.positions[p] = c
}

// RemovePlayer takes p off the map.
func (m *GameMap) RemovePlayer(p *Player) {
	delete(m.positions, p)
}

// PlayersAt lists players on c in turn order.
func (m *GameMap) PlayersAt(c Coordinates) []*Player {
	var out []*Player
	for _, p := range m.players {
		if pos, ok := m.positions[p]; ok && pos == c {
			out = append(out, p)
		}
	}
	return out
}

// adjacent lists squares one step from c, through open edges or doors.
func (m *GameMap) adjacent(c Coordinates) []Coordinates {
	from, ok := m.squares[c]
	if !ok {
		return nil
	}
	var out []Coordinates
	for _, d := range []Coordinates{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}} {
		n := Coordinates{Row: c.Row + d.Row, Col: c.Col + d.Col}
		to, ok := m.squares[n]
		if !ok {
			continue
		}
		if to.Room == from.Room || m.doors[[2]Coordinates{c, n}] {
			out = append(out, n)
		}
	}
	return out
}

// Distances returns the walking distance from c to every square within max steps.
func (m *GameMap) Distances(c Coordinates, max int) map[Coordinates]int {
	dist := map[Coordinates]int{c: 0}
	frontier := []Coordinates{c}
	for step := 1; step <= max && len(frontier) > 0; step++ {
		var next []Coordinates
		for _, f := range frontier {
			for _, n := range m.adjacent(f) {
				if _, seen := dist[n]; !seen {
					dist[n] = step
					next = append(next, n)
				}
			}
		}
		frontier = next
	}
	return dist
}

// ReachableFrom lists squares within distance steps of c, c included.
func (m *GameMap) ReachableFrom(c Coordinates, distance int) []Coordinates {
	if _, ok := m.squares[c]; !ok {
		return nil
	}
	return sortedKeys(m.Distances(c, distance))
}

// ReachableCoordinates lists squares p can reach within distance steps,
// including the square p stands on.
func (m *GameMap) ReachableCoordinates(p *Player, distance int) []Coordinates {
	pos, ok := m.positions[p]
	if !ok {
		return nil
	}
	return m.ReachableFrom(pos, distance)
}

// ReachablePlayers lists the other players within distance steps of p.
func (m *GameMap) ReachablePlayers(p *Player, distance int) []*Player {
	pos, ok := m.positions[p]
	if !ok {
		return nil
	}
	dist := m.Distances(pos, distance)
	var out []*Player
	for _, o := range m.players {
		if o == p {
			continue
		}
		if opos, ok := m.positions[o]; ok {
			if _, in := dist[opos]; in {
				out = append(out, o)
			}
		}
	}
	return out
}

// IsVisible reports whether target can be seen from observer: same room, or a
// room that a door opens onto from the observer's square.
func (m *GameMap) IsVisible(observer, target Coordinates) bool {
	from, ok := m.squares[observer]
	if !ok {
		return false
	}
	to, ok := m.squares[target]
	if !ok {
		return false
	}
	if from.Room == to.Room {
		return true
	}
	for _, n := range m.adjacent(observer) {
		if m.squares[n].Room == to.Room {
			return true
		}
	}
	return false
}

// VisibleCoordinates lists squares visible from c.
func (m *GameMap) VisibleCoordinates(c Coordinates) []Coordinates {
	var out []Coordinates
	for _, sq := range m.Squares() {
		if m.IsVisible(c, sq.Coords) {
			out = append(out, sq.Coords)
		}
	}
	return out
}

// VisiblePlayersFrom lists players visible from c, excluding exclude.
func (m *GameMap) VisiblePlayersFrom(c Coordinates, exclude *Player) []*Player {
	var out []*Player
	for _, o := range m.players {
		if o == exclude {
			continue
		}
		if opos, ok := m.positions[o]; ok && m.IsVisible(c, opos) {
			out = append(out, o)
		}
	}
	return out
}

// VisiblePlayers lists the players p can see.
func (m *GameMap) VisiblePlayers(p *Player) []*Player {
	pos, ok := m.positions[p]
	if !ok {
		return nil
	}
	return m.VisiblePlayersFrom(pos, p)
}

// CanSee reports whether observer sees target.
func (m *GameMap) CanSee(observer, target *Player) bool {
	from, ok := m.positions[observer]
	if !ok {
		return false
	}
	to, ok := m.positions[target]
	if !ok {
		return false
	}
	return m.IsVisible(from, to)
}

// StraightLine lists squares reachable from c moving up to max steps in a
// single direction, c excluded.
func (m *GameMap) StraightLine(c Coordinates, max int) []Coordinates {
	var out []Coordinates
	for _, d := range []Coordinates{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}} {
		cur := c
		for step := 0; step < max; step++ {
			n := Coordinates{Row: cur.Row + d.Row, Col: cur.Col + d.Col}
			if !containsCoords(m.adjacent(cur), n) {
				break
			}
			out = append(out, n)
			cur = n
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func less(a, b Coordinates) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

func sortedKeys(m map[Coordinates]int) []Coordinates {
	out := make([]Coordinates, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func containsCoords(list []Coordinates, c Coordinates) bool {
	for _, o := range list {
		if o == c {
			return true
		}
	}
	return false
}
