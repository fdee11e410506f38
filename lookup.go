package patrie

// lookupBy_ is the single navigation primitive every read-only traversal
// (lookup, submap, the terminal step of match) is built from. It descends t
// consuming elements of q and dispatches to exactly one of three
// continuations:
//
//   - onExact, when q is fully consumed exactly at the end of an Arc's
//     prefix;
//   - onAbsent, when q diverges from the trie's structure;
//   - onPartial, when q runs out strictly inside an Arc's prefix or a
//     Branch's commonPrefix, or exactly where a Branch's commonPrefix ends
//     (branches hold no value) — the remainder node returned to onPartial is
//     always relative to the already-consumed part of q (its own prefix
//     field holds only what comes after q), so callers that need to
//     re-attach q on top (submap) can do so with a single newArc call.
func lookupBy_[E Elem, V any, R any](
	t *node[E, V],
	q []E,
	onExact func(hasValue bool, value V, child *node[E, V]) R,
	onAbsent func() R,
	onPartial func(remainder *node[E, V]) R,
) R {
	if t == nil {
		return onAbsent()
	}

	if !t.isBranch {
		_, qRest, pRest := commonPrefixE(q, t.prefix)
		switch {
		case len(pRest) == 0 && len(qRest) == 0:
			return onExact(t.hasValue, t.value, t.child)
		case len(pRest) == 0:
			return lookupBy_(t.child, qRest, onExact, onAbsent, onPartial)
		case len(qRest) == 0:
			return onPartial(newArc(pRest, t.hasValue, t.value, t.child))
		default:
			return onAbsent()
		}
	}

	_, qRest, cpRest := commonPrefixE(q, t.prefix)
	switch {
	case len(cpRest) != 0 && len(qRest) != 0:
		return onAbsent()
	case len(cpRest) != 0:
		return onPartial(&node[E, V]{isBranch: true, prefix: cpRest, mask: t.mask, left: t.left, right: t.right})
	case len(qRest) == 0:
		return onPartial(&node[E, V]{isBranch: true, mask: t.mask, left: t.left, right: t.right})
	default:
		e := headE(qRest)
		if zeroBit(e, t.mask) {
			return lookupBy_(t.left, qRest, onExact, onAbsent, onPartial)
		}
		return lookupBy_(t.right, qRest, onExact, onAbsent, onPartial)
	}
}

type lookupOutcome[V any] struct {
	value V
	found bool
}

// lookup returns the value bound to q, if any.
func lookup[E Elem, V any](t *node[E, V], q []E) (V, bool) {
	r := lookupBy_(t, q,
		func(hasValue bool, value V, _ *node[E, V]) lookupOutcome[V] {
			return lookupOutcome[V]{value: value, found: hasValue}
		},
		func() lookupOutcome[V] { return lookupOutcome[V]{} },
		func(_ *node[E, V]) lookupOutcome[V] { return lookupOutcome[V]{} },
	)
	return r.value, r.found
}

// member reports whether q is bound in t.
func member[E Elem, V any](t *node[E, V], q []E) bool {
	_, found := lookup(t, q)
	return found
}

// submap returns the sub-trie of all bindings whose key has q as a prefix,
// rekeyed so those keys retain their original spelling: the already
// consumed part of q (i.e. q itself) is put back on top of whatever
// lookupBy_ hands back.
func submap[E Elem, V any](t *node[E, V], q []E) *node[E, V] {
	var zero V
	relative := lookupBy_(t, q,
		func(hasValue bool, value V, child *node[E, V]) *node[E, V] {
			return newArc[E, V](nil, hasValue, value, child)
		},
		func() *node[E, V] { return nil },
		func(remainder *node[E, V]) *node[E, V] { return remainder },
	)
	if relative == nil {
		return nil
	}
	return newArc(q, false, zero, relative)
}

// deleteSubmap removes every binding whose key has q as a prefix, in one
// direct structural pass: it walks the spine down to the point where q is
// fully consumed and splices in Empty there, letting the smart
// constructors re-establish invariants back up to the root. This replaces
// the source's placeholder "enumerate the submap's keys and delete them
// one by one", which is quadratic (see Design Notes, Open Question).
func deleteSubmap[E Elem, V any](t *node[E, V], q []E) *node[E, V] {
	if t == nil {
		return nil
	}

	if !t.isBranch {
		_, qRest, pRest := commonPrefixE(q, t.prefix)
		switch {
		case len(pRest) == 0 && len(qRest) == 0:
			// q names this arc's own key exactly: drop the whole subtrie.
			return nil
		case len(pRest) == 0:
			return newArc(t.prefix, t.hasValue, t.value, deleteSubmap(t.child, qRest))
		case len(qRest) == 0:
			// q ends strictly inside this arc's prefix: everything under
			// this node has q as a prefix.
			return nil
		default:
			// q diverges from this arc: nothing here has q as a prefix.
			return t
		}
	}

	_, qRest, cpRest := commonPrefixE(q, t.prefix)
	switch {
	case len(cpRest) != 0 && len(qRest) != 0:
		return t
	case len(cpRest) != 0:
		return nil
	case len(qRest) == 0:
		return nil
	default:
		e := headE(qRest)
		if zeroBit(e, t.mask) {
			return newBranch(t.prefix, t.mask, deleteSubmap(t.left, qRest), t.right)
		}
		return newBranch(t.prefix, t.mask, t.left, deleteSubmap(t.right, qRest))
	}
}
