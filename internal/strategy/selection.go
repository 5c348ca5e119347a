package strategy

import (
	"sort"
	"time"
)

// Selection tracks which action plans the user has checked and how each
// one will be executed. It holds three maps keyed by strategy id (and
// action index): the selection sets, the per-action modes, and the
// start-date overlays. Overlays never touch the Strategy itself, so a
// reset always recovers the authored default.
type Selection struct {
	strategies []Strategy
	selected   map[int]map[int]bool
	modes      map[int]map[int]Mode
	bulkModes  map[int]Mode
	overlays   map[int]time.Time
	resolver   DateResolver
}

// NewSelection starts a session from a generation batch. The default is
// maximal inclusion: every action selected, every mode direct.
func NewSelection(strategies []Strategy, resolver DateResolver) *Selection {
	sel := &Selection{
		strategies: strategies,
		selected:   make(map[int]map[int]bool),
		modes:      make(map[int]map[int]Mode),
		bulkModes:  make(map[int]Mode),
		overlays:   make(map[int]time.Time),
		resolver:   resolver,
	}
	for _, s := range strategies {
		set := make(map[int]bool, len(s.ActionPlans))
		for i := range s.ActionPlans {
			set[i] = true
		}
		sel.selected[s.ID] = set
		sel.bulkModes[s.ID] = ModeDirect
	}
	return sel
}

func (sel *Selection) strategyByID(id int) *Strategy {
	for i := range sel.strategies {
		if sel.strategies[i].ID == id {
			return &sel.strategies[i]
		}
	}
	return nil
}

// ToggleAction flips whether one action is included in the schedule.
func (sel *Selection) ToggleAction(strategyID, actionIndex int) {
	set := sel.selected[strategyID]
	if set == nil {
		set = make(map[int]bool)
		sel.selected[strategyID] = set
	}
	if set[actionIndex] {
		delete(set, actionIndex)
	} else {
		set[actionIndex] = true
	}
}

// ActionMode reports the execution mode of one action, defaulting to direct.
func (sel *Selection) ActionMode(strategyID, actionIndex int) Mode {
	if m, ok := sel.modes[strategyID][actionIndex]; ok {
		return m
	}
	return ModeDirect
}

// ToggleActionMode flips one action between direct and expert without
// touching its siblings or the strategy-level flag.
func (sel *Selection) ToggleActionMode(strategyID, actionIndex int) {
	modes := sel.modes[strategyID]
	if modes == nil {
		modes = make(map[int]Mode)
		sel.modes[strategyID] = modes
	}
	if sel.ActionMode(strategyID, actionIndex) == ModeDirect {
		modes[actionIndex] = ModeExpert
	} else {
		modes[actionIndex] = ModeDirect
	}
}

// StrategyMode reports the strategy-level mode flag set by the last
// accepted bulk switch.
func (sel *Selection) StrategyMode(strategyID int) Mode {
	if m, ok := sel.bulkModes[strategyID]; ok {
		return m
	}
	return ModeDirect
}

// BulkSetStrategyMode switches every action of a strategy to mode at
// once. The switch only applies when all actions are currently selected;
// a partial selection rejects the call and leaves state untouched.
func (sel *Selection) BulkSetStrategyMode(strategyID int, mode Mode) bool {
	s := sel.strategyByID(strategyID)
	if s == nil {
		return false
	}
	if len(sel.selected[strategyID]) != len(s.ActionPlans) {
		return false
	}
	modes := make(map[int]Mode, len(s.ActionPlans))
	for i := range s.ActionPlans {
		modes[i] = mode
	}
	sel.modes[strategyID] = modes
	sel.bulkModes[strategyID] = mode
	return true
}

// SelectAll marks every action of a strategy as included.
func (sel *Selection) SelectAll(strategyID int) {
	s := sel.strategyByID(strategyID)
	if s == nil {
		return
	}
	set := make(map[int]bool, len(s.ActionPlans))
	for i := range s.ActionPlans {
		set[i] = true
	}
	sel.selected[strategyID] = set
}

// DeselectAll clears a strategy's selection set.
func (sel *Selection) DeselectAll(strategyID int) {
	sel.selected[strategyID] = make(map[int]bool)
}

// SetSelected replaces a strategy's selection set wholesale. Indices
// outside the strategy's action range are ignored.
func (sel *Selection) SetSelected(strategyID int, indices []int) {
	s := sel.strategyByID(strategyID)
	if s == nil {
		return
	}
	set := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(s.ActionPlans) {
			set[idx] = true
		}
	}
	sel.selected[strategyID] = set
}

// SetActionMode pins one action's mode directly.
func (sel *Selection) SetActionMode(strategyID, actionIndex int, mode Mode) {
	modes := sel.modes[strategyID]
	if modes == nil {
		modes = make(map[int]Mode)
		sel.modes[strategyID] = modes
	}
	modes[actionIndex] = mode
}

// SelectedCount reports how many actions of a strategy are included.
func (sel *Selection) SelectedCount(strategyID int) int {
	return len(sel.selected[strategyID])
}

// IsSelected reports whether one action is included.
func (sel *Selection) IsSelected(strategyID, actionIndex int) bool {
	return sel.selected[strategyID][actionIndex]
}

// SetStartDate overrides a strategy's anchor date for this session.
func (sel *Selection) SetStartDate(strategyID int, date time.Time) {
	sel.overlays[strategyID] = date
}

// ResetStartDate drops the overlay, restoring the authored default.
func (sel *Selection) ResetStartDate(strategyID int) {
	delete(sel.overlays, strategyID)
}

// StartOverlay returns the session's anchor override for a strategy, or
// nil when none is set.
func (sel *Selection) StartOverlay(strategyID int) *time.Time {
	if d, ok := sel.overlays[strategyID]; ok {
		return &d
	}
	return nil
}

// Materialize resolves every selected action to a dated ScheduledAction.
// Emission order is strategy order, then ascending action index. The
// selection set alone decides inclusion.
func (sel *Selection) Materialize() []ScheduledAction {
	var out []ScheduledAction
	for _, s := range sel.strategies {
		set := sel.selected[s.ID]
		if len(set) == 0 {
			continue
		}
		dates := sel.resolver.Resolve(s, sel.StartOverlay(s.ID))

		indices := make([]int, 0, len(set))
		for idx := range set {
			indices = append(indices, idx)
		}
		sort.Ints(indices)

		for _, idx := range indices {
			if idx < 0 || idx >= len(s.ActionPlans) {
				continue
			}
			plan := s.ActionPlans[idx]
			out = append(out, ScheduledAction{
				StrategyID:        s.ID,
				StrategyCode:      s.Code,
				StrategyTitle:     s.Title,
				ActionIndex:       idx,
				ActionTitle:       plan.Title,
				ActionIcon:        plan.Icon,
				ActionDescription: plan.Description,
				Date:              dates[idx],
				Mode:              sel.ActionMode(s.ID, idx),
				Section:           plan.Section,
			})
		}
	}
	return out
}

// TotalSelected counts included actions across all strategies.
func (sel *Selection) TotalSelected() int {
	n := 0
	for _, set := range sel.selected {
		n += len(set)
	}
	return n
}
