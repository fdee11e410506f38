package patrie

import "iter"

// matches_ walks t consuming q, calling yield(n, x) for every node along the
// way that binds a value at a prefix of q of length n, in increasing order
// of n. depth is the length of query already consumed by the caller before
// reaching t. It returns false as soon as yield does, propagating an early
// stop back up the call stack without building any intermediate slice.
func matches_[E Elem, V any](t *node[E, V], q []E, depth int, yield func(n int, value V) bool) bool {
	if t == nil {
		return true
	}

	if !t.isBranch {
		_, qRest, pRest := commonPrefixE(q, t.prefix)
		switch {
		case len(pRest) != 0:
			// q diverges from, or ends strictly inside, this arc's prefix:
			// nothing further to emit either way.
			return true
		case t.hasValue:
			if !yield(depth+len(t.prefix), t.value) {
				return false
			}
		}
		if len(qRest) == 0 {
			return true
		}
		return matches_(t.child, qRest, depth+len(t.prefix), yield)
	}

	_, qRest, cpRest := commonPrefixE(q, t.prefix)
	if len(cpRest) != 0 || len(qRest) == 0 {
		// Branches never hold a value themselves, so either q diverges
		// inside the commonPrefix or ends exactly on it: no more hits.
		return true
	}

	e := headE(qRest)
	if zeroBit(e, t.mask) {
		return matches_(t.left, qRest, depth+len(t.prefix), yield)
	}
	return matches_(t.right, qRest, depth+len(t.prefix), yield)
}

// match_ returns the longest stored key that is a prefix of q, i.e. the
// last hit matches_ would yield.
func match_[E Elem, V any](t *node[E, V], q []E) (n int, value V, found bool) {
	matches_(t, q, 0, func(ln int, v V) bool {
		n, value, found = ln, v, true
		return true
	})
	return
}

// matchesSeq adapts matches_ to a lazy iter.Seq2, so a consumer's range loop
// that breaks early does no work past the break.
func matchesSeq[E Elem, V any](t *node[E, V], q []E) iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		matches_(t, q, 0, yield)
	}
}
