package domain

// StatusKind tags a damage status. All kinds share the same operations and
// differ only in the data found in statusTable.
type StatusKind int

const (
	LowDamage StatusKind = iota
	MediumDamage
	HighDamage
	FrenzyBefore
	FrenzyAfter
)

func (k StatusKind) String() string {
	switch k {
	case LowDamage:
		return "LOW_DAMAGE"
	case MediumDamage:
		return "MEDIUM_DAMAGE"
	case HighDamage:
		return "HIGH_DAMAGE"
	case FrenzyBefore:
		return "FRENZY_BEFORE"
	case FrenzyAfter:
		return "FRENZY_AFTER"
	default:
		return "UNKNOWN"
	}
}

// IsFrenzy reports whether the kind belongs to frenzy mode.
func (k StatusKind) IsFrenzy() bool {
	return k == FrenzyBefore || k == FrenzyAfter
}

// ActionKind is one step of a macro-action.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionGrab
	ActionReload
	ActionShoot
	ActionEnd
)

func (a ActionKind) String() string {
	return [...]string{"MOVE", "GRAB", "RELOAD", "SHOOT", "END"}[a]
}

// MacroAction is one turn-level choice granted by a damage status.
type MacroAction struct {
	Name     string
	Movement int
	Grab     bool
	Reload   bool
	Shoot    bool
}

// Steps returns the ordered steps the macro-action entails, ending with ActionEnd.
func (m MacroAction) Steps() []ActionKind {
	var steps []ActionKind
	if m.Movement > 0 {
		steps = append(steps, ActionMove)
	}
	if m.Grab {
		steps = append(steps, ActionGrab)
	}
	if m.Reload {
		steps = append(steps, ActionReload)
	}
	if m.Shoot {
		steps = append(steps, ActionShoot)
	}
	return append(steps, ActionEnd)
}

type statusRow struct {
	actions        []MacroAction
	actionsPerTurn int
}

var statusTable = map[StatusKind]statusRow{
	LowDamage: {
		actions: []MacroAction{
			{Name: "Move", Movement: 3},
			{Name: "Grab", Movement: 1, Grab: true},
			{Name: "Shoot", Shoot: true},
		},
		actionsPerTurn: ActionsPerTurn,
	},
	MediumDamage: {
		actions: []MacroAction{
			{Name: "Move", Movement: 3},
			{Name: "Grab", Movement: 2, Grab: true},
			{Name: "Shoot", Shoot: true},
		},
		actionsPerTurn: ActionsPerTurn,
	},
	HighDamage: {
		actions: []MacroAction{
			{Name: "Move", Movement: 3},
			{Name: "Grab", Movement: 2, Grab: true},
			{Name: "Shoot", Movement: 1, Shoot: true},
		},
		actionsPerTurn: ActionsPerTurn,
	},
	FrenzyBefore: {
		actions: []MacroAction{
			{Name: "Shoot", Movement: 1, Reload: true, Shoot: true},
			{Name: "Move", Movement: 4},
			{Name: "Grab", Movement: 2, Grab: true},
		},
		actionsPerTurn: FrenzyBeforeActionsPerTurn,
	},
	FrenzyAfter: {
		actions: []MacroAction{
			{Name: "Shoot", Movement: 2, Reload: true, Shoot: true},
			{Name: "Grab", Movement: 3, Grab: true},
		},
		actionsPerTurn: FrenzyAfterActionsPerTurn,
	},
}

// DamageStatus is the per-turn action policy of a player. Replace it with
// NewDamageStatus when the kind changes; only the budget and cursor mutate.
type DamageStatus struct {
	kind      StatusKind
	remaining int
	cursor    int
	step      int
}

// NewDamageStatus returns a full-budget status of the given kind.
func NewDamageStatus(kind StatusKind) *DamageStatus {
	if _, ok := statusTable[kind]; !ok {
		invariant("unknown damage status %d", kind)
	}
	return &DamageStatus{
		kind:      kind,
		remaining: statusTable[kind].actionsPerTurn,
		cursor:    -1,
	}
}

// StatusForDamage picks the non-frenzy kind for a number of damage tokens.
func StatusForDamage(tokens int) StatusKind {
	switch {
	case tokens < MediumDamageThreshold:
		return LowDamage
	case tokens < HighDamageThreshold:
		return MediumDamage
	default:
		return HighDamage
	}
}

func (s *DamageStatus) Kind() StatusKind { return s.kind }

// Actions returns the macro-actions available with this status.
func (s *DamageStatus) Actions() []MacroAction {
	return append([]MacroAction(nil), statusTable[s.kind].actions...)
}

func (s *DamageStatus) ActionsPerTurn() int { return statusTable[s.kind].actionsPerTurn }

// Remaining is the number of macro-actions still allowed this turn.
func (s *DamageStatus) Remaining() int { return s.remaining }

// Cursor is the index of the executing macro-action, -1 when none.
func (s *DamageStatus) Cursor() int { return s.cursor }

// Select starts the macro-action at index, spending one unit of budget.
func (s *DamageStatus) Select(index int) error {
	if index < 0 || index >= len(statusTable[s.kind].actions) {
		return ErrInvalidIndex
	}
	if s.remaining == 0 {
		invariant("%s: action budget already zero", s.kind)
	}
	s.remaining--
	s.cursor = index
	s.step = 0
	return nil
}

// Current returns the executing macro-action.
func (s *DamageStatus) Current() (MacroAction, bool) {
	if s.cursor == -1 {
		return MacroAction{}, false
	}
	return statusTable[s.kind].actions[s.cursor], true
}

// NextStep returns the next step of the executing macro-action and advances.
// ActionEnd is returned once every step ran, and the cursor is reset.
func (s *DamageStatus) NextStep() ActionKind {
	action, ok := s.Current()
	if !ok {
		invariant("%s: no macro-action in execution", s.kind)
	}
	steps := action.Steps()
	step := steps[s.step]
	s.step++
	if step == ActionEnd {
		s.EndAction()
	}
	return step
}

// EndAction clears the cursor.
func (s *DamageStatus) EndAction() {
	s.cursor = -1
	s.step = 0
}

// Drain drops the remaining budget, used when a turn is cancelled.
func (s *DamageStatus) Drain() {
	s.remaining = 0
	s.EndAction()
}

// Refill restores the full budget for a new turn.
func (s *DamageStatus) Refill() {
	s.remaining = s.ActionsPerTurn()
	s.EndAction()
}
