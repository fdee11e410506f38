package patrie

// mapBy rebuilds t with every bound value replaced by f(key, value), key
// being the full path from the root down to that value. The shape of t is
// untouched — f is total, it cannot drop a binding — so the result is
// built directly rather than through the smart constructors: no invariant
// the original t satisfied can be broken by a pure value substitution.
func mapBy[E Elem, V, W any](f func(key []E, value V) W, t *node[E, V], prefix []E) *node[E, W] {
	if t == nil {
		return nil
	}
	if !t.isBranch {
		full := concatE(prefix, t.prefix)
		var value W
		if t.hasValue {
			value = f(full, t.value)
		}
		return &node[E, W]{
			isBranch: false,
			prefix:   t.prefix,
			hasValue: t.hasValue,
			value:    value,
			child:    mapBy(f, t.child, full),
		}
	}
	full := concatE(prefix, t.prefix)
	return &node[E, W]{
		isBranch: true,
		prefix:   t.prefix,
		mask:     t.mask,
		left:     mapBy(f, t.left, full),
		right:    mapBy(f, t.right, full),
	}
}

// filterMap rebuilds t with every bound value replaced by f(key, value),
// or dropped when f reports keep == false. Unlike mapBy, deletions here
// can turn an Arc's own binding into a dead spot or strand a Branch with
// one Empty side, so every node is rebuilt through the smart constructors.
func filterMap[E Elem, V, W any](f func(key []E, value V) (W, bool), t *node[E, V], prefix []E) *node[E, W] {
	if t == nil {
		return nil
	}
	if !t.isBranch {
		full := concatE(prefix, t.prefix)
		var zero W
		hasValue, value := false, zero
		if t.hasValue {
			if w, keep := f(full, t.value); keep {
				hasValue, value = true, w
			}
		}
		return newArc(t.prefix, hasValue, value, filterMap(f, t.child, full))
	}
	full := concatE(prefix, t.prefix)
	return newBranch(t.prefix, t.mask, filterMap(f, t.left, full), filterMap(f, t.right, full))
}
