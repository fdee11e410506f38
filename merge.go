package patrie

// mergeBy combines t1 and t2. Whenever both tries bind the same key, f is
// called with t1's value first; if f reports the key absent, it is dropped
// from the result.
//
// The recursion dispatches on the shape pair exactly as described in the
// design: Empty,_ and _,Empty are trivial; Arc,Arc combines values at a
// shared prefix point and recurses on the remainder; Arc,Branch/Branch,Arc
// normalize the arc against the branch's prefix and route into the
// matching side (branches never hold a value themselves, so no f call is
// ever needed in that case); Branch,Branch recurses pointwise when masks
// and prefixes align, or descends into whichever branch's split happens
// closer to the root otherwise. Whenever the two operands' keys part above
// the branch mask(s) involved, both are joined under a new branch instead.
func mergeBy[E Elem, V any](f func(x, y V) (newValue V, keep bool), t1, t2 *node[E, V]) *node[E, V] {
	if t1 == nil {
		return t2
	}
	if t2 == nil {
		return t1
	}

	switch {
	case !t1.isBranch && !t2.isBranch:
		return mergeArcArc(f, t1, t2)
	case !t1.isBranch && t2.isBranch:
		return mergeArcBranch(f, t1, t2)
	case t1.isBranch && !t2.isBranch:
		// mergeArcBranch takes the arc first; flip f so t1's value still
		// comes first.
		return mergeArcBranch(func(x, y V) (V, bool) { return f(y, x) }, t2, t1)
	default:
		return mergeBranchBranch(f, t1, t2)
	}
}

func combineValues[V any](f func(V, V) (V, bool), hv1 bool, v1 V, hv2 bool, v2 V) (bool, V) {
	var zero V
	switch {
	case hv1 && hv2:
		nv, keep := f(v1, v2)
		if !keep {
			return false, zero
		}
		return true, nv
	case hv1:
		return true, v1
	case hv2:
		return true, v2
	default:
		return false, zero
	}
}

func mergeArcArc[E Elem, V any](f func(V, V) (V, bool), t1, t2 *node[E, V]) *node[E, V] {
	var zero V
	s, r1, r2 := commonPrefixE(t1.prefix, t2.prefix)
	switch {
	case len(r1) == 0 && len(r2) == 0:
		hv, v := combineValues(f, t1.hasValue, t1.value, t2.hasValue, t2.value)
		merged := mergeBy(f, t1.child, t2.child)
		return newArc(s, hv, v, merged)
	case len(r1) == 0:
		rest2 := newArc(r2, t2.hasValue, t2.value, t2.child)
		merged := mergeBy(f, t1.child, rest2)
		return newArc(s, t1.hasValue, t1.value, merged)
	case len(r2) == 0:
		rest1 := newArc(r1, t1.hasValue, t1.value, t1.child)
		merged := mergeBy(f, rest1, t2.child)
		return newArc(s, t2.hasValue, t2.value, merged)
	default:
		arm1 := newArc(r1, t1.hasValue, t1.value, t1.child)
		arm2 := newArc(r2, t2.hasValue, t2.value, t2.child)
		return newArc(s, false, zero, branchMerge(r1, arm1, r2, arm2))
	}
}

// mergeArcBranch merges an Arc against a Branch. Branches never hold a
// value, so the only value ever propagated here is the arc's own.
func mergeArcBranch[E Elem, V any](f func(V, V) (V, bool), arc, branch *node[E, V]) *node[E, V] {
	var zero V
	s, r1, r2 := commonPrefixE(arc.prefix, branch.prefix)
	switch {
	case len(r1) == 0 && len(r2) == 0:
		stripped := &node[E, V]{isBranch: true, mask: branch.mask, left: branch.left, right: branch.right}
		merged := mergeBy(f, arc.child, stripped)
		return newArc(s, arc.hasValue, arc.value, merged)
	case len(r1) == 0:
		branchRel := &node[E, V]{isBranch: true, prefix: r2, mask: branch.mask, left: branch.left, right: branch.right}
		merged := mergeBy(f, arc.child, branchRel)
		return newArc(s, arc.hasValue, arc.value, merged)
	case len(r2) == 0:
		arcRel := newArc(r1, arc.hasValue, arc.value, arc.child)
		e := headE(r1)
		if b := firstElem(branch.left); !matchPrefix(e, b, branch.mask) {
			stripped := &node[E, V]{isBranch: true, mask: branch.mask, left: branch.left, right: branch.right}
			return newArc(s, false, zero, branchMerge(r1, arcRel, []E{b}, stripped))
		}
		if zeroBit(e, branch.mask) {
			return newArc(s, false, zero, newBranch[E, V](nil, branch.mask, mergeBy(f, arcRel, branch.left), branch.right))
		}
		return newArc(s, false, zero, newBranch[E, V](nil, branch.mask, branch.left, mergeBy(f, arcRel, branch.right)))
	default:
		arm1 := newArc(r1, arc.hasValue, arc.value, arc.child)
		arm2 := &node[E, V]{isBranch: true, prefix: r2, mask: branch.mask, left: branch.left, right: branch.right}
		return newArc(s, false, zero, branchMerge(r1, arm1, r2, arm2))
	}
}

func mergeBranchBranch[E Elem, V any](f func(V, V) (V, bool), t1, t2 *node[E, V]) *node[E, V] {
	var zero V
	s, r1, r2 := commonPrefixE(t1.prefix, t2.prefix)
	switch {
	case len(r1) == 0 && len(r2) == 0:
		if e1, e2 := firstElem(t1.left), firstElem(t2.left); !matchPrefix(e1, e2, max(t1.mask, t2.mask)) {
			arm1 := &node[E, V]{isBranch: true, mask: t1.mask, left: t1.left, right: t1.right}
			arm2 := &node[E, V]{isBranch: true, mask: t2.mask, left: t2.left, right: t2.right}
			return newArc(s, false, zero, branchMerge([]E{e1}, arm1, []E{e2}, arm2))
		}
		if t1.mask == t2.mask {
			return newBranch(s, t1.mask, mergeBy(f, t1.left, t2.left), mergeBy(f, t1.right, t2.right))
		}
		if t1.mask > t2.mask {
			e := firstElem(t2.left)
			if zeroBit(e, t1.mask) {
				return newBranch(s, t1.mask, mergeBy(f, t1.left, t2), t1.right)
			}
			return newBranch(s, t1.mask, t1.left, mergeBy(f, t1.right, t2))
		}
		e := firstElem(t1.left)
		if zeroBit(e, t2.mask) {
			return newBranch(s, t2.mask, mergeBy(f, t1, t2.left), t2.right)
		}
		return newBranch(s, t2.mask, t2.left, mergeBy(f, t1, t2.right))
	case len(r1) == 0:
		t2Rel := &node[E, V]{isBranch: true, prefix: r2, mask: t2.mask, left: t2.left, right: t2.right}
		e := headE(r2)
		if zeroBit(e, t1.mask) {
			return newBranch(s, t1.mask, mergeBy(f, t1.left, t2Rel), t1.right)
		}
		return newBranch(s, t1.mask, t1.left, mergeBy(f, t1.right, t2Rel))
	case len(r2) == 0:
		t1Rel := &node[E, V]{isBranch: true, prefix: r1, mask: t1.mask, left: t1.left, right: t1.right}
		e := headE(r1)
		if zeroBit(e, t2.mask) {
			return newBranch(s, t2.mask, mergeBy(f, t1Rel, t2.left), t2.right)
		}
		return newBranch(s, t2.mask, t2.left, mergeBy(f, t1Rel, t2.right))
	default:
		arm1 := &node[E, V]{isBranch: true, prefix: r1, mask: t1.mask, left: t1.left, right: t1.right}
		arm2 := &node[E, V]{isBranch: true, prefix: r2, mask: t2.mask, left: t2.left, right: t2.right}
		return newArc(s, false, zero, branchMerge(r1, arm1, r2, arm2))
	}
}
