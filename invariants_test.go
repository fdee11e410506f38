package patrie

import "testing"

// checkInvariants walks t and reports the first violation of I1-I4 it
// finds, or "" if none. It is meant to be called on the result of every
// mutating operation a property test exercises.
//
//   - I1: no Arc is dead (no value and an Empty child), and no Arc below
//     the root has an empty prefix without a value (newArc would collapse
//     it into its child).
//   - I2: an Arc without a value never has an Arc child (two adjacent arcs
//     must be fused into one); an Arc holding a value may sit directly
//     above another Arc.
//   - I3: a Branch's own commonPrefix never re-derives a shorter common
//     prefix between its two children (branchMerge peels off the shared
//     part before branching).
//   - I4: a Branch's left and right are never nil.
func checkInvariants[E Elem, V any](t *node[E, V]) string {
	return checkInvariants_(t, true)
}

func checkInvariants_[E Elem, V any](t *node[E, V], isRoot bool) string {
	if t == nil {
		return ""
	}
	if !t.isBranch {
		if !t.hasValue && t.child == nil {
			return "I1: dead arc with no value and no child"
		}
		if len(t.prefix) == 0 && !t.hasValue && !isRoot {
			return "I1: dead empty-prefix arc with no value"
		}
		if !t.hasValue && t.child != nil && !t.child.isBranch {
			return "I2: valueless arc directly above arc"
		}
		return checkInvariants_(t.child, false)
	}
	if t.left == nil || t.right == nil {
		return "I4: branch with an empty side"
	}
	if firstElem(t.left) == firstElem(t.right) {
		return "I3: branch children agree on the branching element"
	}
	if s := checkInvariants_(t.left, false); s != "" {
		return s
	}
	return checkInvariants_(t.right, false)
}

func mustBeValid[E Elem, V any](tb testing.TB, t *node[E, V]) {
	tb.Helper()
	if s := checkInvariants(t); s != "" {
		tb.Fatalf("invariant violated: %s", s)
	}
}
