package toc

import "github.com/samber/oops"

// OrderedIndexState holds the running heading count per level for
// ordered-list numbering. Counts never decrease; a fresh state is created
// for every build.
type OrderedIndexState map[int]int

// increaseIndex bumps the counter for curLevel and returns the new count.
// prevLevel is accepted so a renderer-accurate reset-on-level-change policy
// can be layered in later without changing the call contract; counters
// currently advance independently per level.
func increaseIndex(state OrderedIndexState, prevLevel, curLevel int, dialect Dialect) (int, error) {
	if prevLevel == 0 {
		prevLevel = curLevel
	}
	_ = prevLevel

	state[curLevel]++

	if dialect.rules == githubRules && state[curLevel] > maxOrderedListMarker {
		return 0, oops.
			Code("OVERFLOW_ORDERED_LIST_MARKER").
			With("level", curLevel).
			With("max", maxOrderedListMarker).
			Wrapf(ErrOrderedListMarkerOverflow, "ordered list marker exceeds %d", maxOrderedListMarker)
	}

	return state[curLevel], nil
}
