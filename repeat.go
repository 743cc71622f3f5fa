package gmsf

import "sort"

// RepeatAction is a resolved jump-back instruction attached to a column.
// Total is how many rows stacked a repeat end here with the same start
// column; Remaining counts how many of those uses the current walk has
// consumed.
type RepeatAction struct {
	Start     int
	Remaining int
	Total     int
}

// resolveRepeats collapses the raw per-column start positions recorded
// during the grid scan into ordered actions. Markers from different rows
// sharing a start column stack, each extra row adding one use; distinct
// start columns stay separate actions, ordered ascending.
func resolveRepeats(raw [][]int) [][]RepeatAction {
	resolved := make([][]RepeatAction, len(raw))
	for x, starts := range raw {
		if len(starts) == 0 {
			continue
		}
		sort.Ints(starts)
		var actions []RepeatAction
		for _, start := range starts {
			if n := len(actions); n > 0 && actions[n-1].Start == start {
				actions[n-1].Total++
				continue
			}
			actions = append(actions, RepeatAction{Start: start, Total: 1})
		}
		resolved[x] = actions
	}
	return resolved
}
