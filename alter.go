package patrie

// alterBy is the generic single-key rewrite every other write (insert,
// delete, adjust, the public AlterBy) is built from. f is called with the
// value currently bound at q (or the zero value) and whether it was found;
// it returns the value to store and whether to keep a binding at all.
//
// The source threads an "impossible sentinel" value through this path so
// delete's rewrite function is never actually asked to invent a value. A
// strict language can express the same two-path shape directly: insertOnMiss
// tells the miss branch whether f is even consulted, so delete (insertOnMiss
// == false) never calls f where q diverges from or ends inside the trie's
// structure, and its rewrite function is never asked to fabricate a value
// it will never use. Where q lands exactly on an Arc that holds no value,
// f is still called, with found == false.
func alterBy[E Elem, V any](
	t *node[E, V],
	q []E,
	f func(oldValue V, found bool) (newValue V, keep bool),
	insertOnMiss bool,
) *node[E, V] {
	var zero V

	missHere := func(buildKeep func(newValue V) *node[E, V], buildMiss func() *node[E, V]) *node[E, V] {
		if !insertOnMiss {
			return buildMiss()
		}
		newValue, keep := f(zero, false)
		if !keep {
			return buildMiss()
		}
		return buildKeep(newValue)
	}

	if t == nil {
		return missHere(
			func(newValue V) *node[E, V] { return newArc(q, true, newValue, nil) },
			func() *node[E, V] { return nil },
		)
	}

	if !t.isBranch {
		shared, qRest, pRest := commonPrefixE(q, t.prefix)
		switch {
		case len(pRest) == 0 && len(qRest) == 0:
			newValue, keep := f(t.value, t.hasValue)
			if !keep {
				return newArc[E, V](t.prefix, false, zero, t.child)
			}
			return newArc(t.prefix, true, newValue, t.child)
		case len(pRest) == 0:
			return newArc(t.prefix, t.hasValue, t.value, alterBy(t.child, qRest, f, insertOnMiss))
		case len(qRest) == 0:
			// q ends strictly inside this arc's own prefix.
			return missHere(
				func(newValue V) *node[E, V] {
					remainder := newArc(pRest, t.hasValue, t.value, t.child)
					return newArc(q, true, newValue, remainder)
				},
				func() *node[E, V] { return t },
			)
		default:
			// q diverges from this arc's prefix.
			return missHere(
				func(newValue V) *node[E, V] {
					oldArm := newArc(pRest, t.hasValue, t.value, t.child)
					newArm := newArc(qRest, true, newValue, nil)
					return newArc(shared, false, zero, branchMerge(pRest, oldArm, qRest, newArm))
				},
				func() *node[E, V] { return t },
			)
		}
	}

	shared, qRest, cpRest := commonPrefixE(q, t.prefix)
	switch {
	case len(cpRest) != 0 && len(qRest) != 0:
		return missHere(
			func(newValue V) *node[E, V] {
				oldArm := &node[E, V]{isBranch: true, prefix: cpRest, mask: t.mask, left: t.left, right: t.right}
				newArm := newArc(qRest, true, newValue, nil)
				return newArc(shared, false, zero, branchMerge(cpRest, oldArm, qRest, newArm))
			},
			func() *node[E, V] { return t },
		)
	case len(cpRest) != 0:
		return missHere(
			func(newValue V) *node[E, V] {
				stripped := &node[E, V]{isBranch: true, prefix: cpRest, mask: t.mask, left: t.left, right: t.right}
				return newArc(q, true, newValue, stripped)
			},
			func() *node[E, V] { return t },
		)
	case len(qRest) == 0:
		// q lands exactly on the branch's commonPrefix; branches never hold
		// values directly, so this is always a miss.
		return missHere(
			func(newValue V) *node[E, V] {
				stripped := &node[E, V]{isBranch: true, mask: t.mask, left: t.left, right: t.right}
				return newArc(q, true, newValue, stripped)
			},
			func() *node[E, V] { return t },
		)
	default:
		e := headE(qRest)
		if b := firstElem(t.left); !matchPrefix(e, b, t.mask) {
			// q parts from every key under this branch above its mask: the
			// new key becomes a sibling of the whole branch.
			return missHere(
				func(newValue V) *node[E, V] {
					oldArm := &node[E, V]{isBranch: true, mask: t.mask, left: t.left, right: t.right}
					newArm := newArc(qRest, true, newValue, nil)
					return newArc(t.prefix, false, zero, branchMerge([]E{b}, oldArm, qRest, newArm))
				},
				func() *node[E, V] { return t },
			)
		}
		if zeroBit(e, t.mask) {
			return newBranch(t.prefix, t.mask, alterBy(t.left, qRest, f, insertOnMiss), t.right)
		}
		return newBranch(t.prefix, t.mask, t.left, alterBy(t.right, qRest, f, insertOnMiss))
	}
}

func insertKey[E Elem, V any](t *node[E, V], k []E, v V) *node[E, V] {
	return alterBy(t, k, func(_ V, _ bool) (V, bool) { return v, true }, true)
}

func deleteKey[E Elem, V any](t *node[E, V], k []E) *node[E, V] {
	return alterBy(t, k, func(old V, _ bool) (V, bool) { return old, false }, false)
}

// adjustBy applies f to the value bound at k, leaving t untouched on a
// miss. f is never invoked on a miss, matching the spec's promise that the
// fallback branch's value is never demanded.
func adjustBy[E Elem, V any](t *node[E, V], k []E, f func(V) V) *node[E, V] {
	return alterBy(t, k, func(old V, found bool) (V, bool) {
		if !found {
			return old, false
		}
		return f(old), true
	}, false)
}
