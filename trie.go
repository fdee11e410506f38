package patrie

import "iter"

// Trie is a persistent, immutable map keyed by sequences of E. Construct
// one with Empty, Singleton or FromList; every other operation returns a
// new Trie rather than mutating the receiver.
type Trie[E Elem, V any] struct {
	root *node[E, V]
}

// Empty returns the trie with no bindings.
func Empty[E Elem, V any]() *Trie[E, V] {
	return &Trie[E, V]{}
}

// Singleton returns the trie binding k to v and nothing else.
func Singleton[E Elem, V any](k []E, v V) *Trie[E, V] {
	return &Trie[E, V]{root: insertKey[E, V](nil, k, v)}
}

// Null reports whether t has no bindings.
func (t *Trie[E, V]) Null() bool {
	return t.root == nil
}

// Size counts t's bindings. It is a fold over every value, not a cached
// field (see Design Notes).
func (t *Trie[E, V]) Size() int {
	return size(t.root)
}

// Lookup returns the value bound to k, if any.
func (t *Trie[E, V]) Lookup(k []E) (V, bool) {
	return lookup(t.root, k)
}

// Member reports whether k is bound in t.
func (t *Trie[E, V]) Member(k []E) bool {
	return member(t.root, k)
}

// Submap returns the sub-trie of every binding whose key has k as a
// prefix, with keys unchanged.
func (t *Trie[E, V]) Submap(k []E) *Trie[E, V] {
	return &Trie[E, V]{root: submap(t.root, k)}
}

// DeleteSubmap removes every binding whose key has k as a prefix.
func (t *Trie[E, V]) DeleteSubmap(k []E) *Trie[E, V] {
	return &Trie[E, V]{root: deleteSubmap(t.root, k)}
}

// Match returns the value bound to the longest stored key that is a
// prefix of q, along with the unmatched suffix of q.
func (t *Trie[E, V]) Match(q []E) (value V, leftover []E, found bool) {
	n, v, ok := match_(t.root, q)
	if !ok {
		var zero V
		return zero, q, false
	}
	return v, q[n:], true
}

// Matches lazily enumerates, in increasing length, every (leftover, value)
// pair for a stored key that is a prefix of q. Breaking out of the range
// loop stops the walk without having built an intermediate slice.
func (t *Trie[E, V]) Matches(q []E) iter.Seq2[[]E, V] {
	return func(yield func([]E, V) bool) {
		matchesSeq(t.root, q)(func(n int, v V) bool {
			return yield(q[n:], v)
		})
	}
}

// Insert returns a new trie with k bound to v, replacing any prior binding.
func (t *Trie[E, V]) Insert(k []E, v V) *Trie[E, V] {
	return &Trie[E, V]{root: insertKey(t.root, k, v)}
}

// Adjust returns a new trie with k's bound value replaced by f(v), or t
// unchanged if k is not bound. f is never called on a miss.
func (t *Trie[E, V]) Adjust(k []E, f func(V) V) *Trie[E, V] {
	return &Trie[E, V]{root: adjustBy(t.root, k, f)}
}

// Delete returns a new trie with any binding at k removed.
func (t *Trie[E, V]) Delete(k []E) *Trie[E, V] {
	return &Trie[E, V]{root: deleteKey(t.root, k)}
}

// AlterBy is the general single-key rewrite: f receives k itself along
// with the value currently bound there (or the zero value) and whether it
// was found, and returns the value to store and whether to keep a
// binding at all.
func (t *Trie[E, V]) AlterBy(k []E, f func(key []E, old V, found bool) (newValue V, keep bool)) *Trie[E, V] {
	newRoot := alterBy(t.root, k, func(old V, found bool) (V, bool) {
		return f(k, old, found)
	}, true)
	return &Trie[E, V]{root: newRoot}
}

// ToList lazily enumerates every binding of t in ascending key order.
func (t *Trie[E, V]) ToList() iter.Seq2[[]E, V] {
	return toListSeq(t.root)
}

// Keys lazily enumerates t's keys in ascending order.
func (t *Trie[E, V]) Keys() iter.Seq[[]E] {
	return keysSeq(t.root)
}

// Elems lazily enumerates t's values in ascending key order.
func (t *Trie[E, V]) Elems() iter.Seq[V] {
	return elemsSeq(t.root)
}

// MergeBy unions t1 and t2; whenever both bind the same key, f(t1's
// value, t2's value) decides the result, dropping the key if f reports
// absent.
//
// This is a package-level function, not a (*Trie) method, because it
// changes no type parameter a method's receiver could carry but needs two
// distinct *Trie[E, V] operands rather than one.
func MergeBy[E Elem, V any](f func(x, y V) (newValue V, keep bool), t1, t2 *Trie[E, V]) *Trie[E, V] {
	return &Trie[E, V]{root: mergeBy(f, t1.root, t2.root)}
}

// UnionL is MergeBy biased toward t1 on collisions.
func UnionL[E Elem, V any](t1, t2 *Trie[E, V]) *Trie[E, V] {
	return MergeBy(func(x, _ V) (V, bool) { return x, true }, t1, t2)
}

// UnionR is MergeBy biased toward t2 on collisions.
func UnionR[E Elem, V any](t1, t2 *Trie[E, V]) *Trie[E, V] {
	return MergeBy(func(_, y V) (V, bool) { return y, true }, t1, t2)
}

// MapBy rebuilds t with every value v at key k replaced by f(k, v).
//
// Go forbids a method from introducing a type parameter beyond its
// receiver's, so — unlike Lookup, Insert and the rest — this can't be
// spelled (*Trie[E, V]).MapBy[W](...) *Trie[E, W]; it is a package-level
// function instead.
func MapBy[E Elem, V, W any](f func(key []E, value V) W, t *Trie[E, V]) *Trie[E, W] {
	return &Trie[E, W]{root: mapBy(f, t.root, nil)}
}

// FilterMap is MapBy with the option to delete: f reports whether to keep
// the rewritten value.
func FilterMap[E Elem, V, W any](f func(key []E, value V) (newValue W, keep bool), t *Trie[E, V]) *Trie[E, W] {
	return &Trie[E, W]{root: filterMap(f, t.root, nil)}
}

// FromList builds a trie as a right fold of Insert over xs, so earlier
// entries shadow later ones that share a key.
func FromList[E Elem, V any](xs []Entry[E, V]) *Trie[E, V] {
	return &Trie[E, V]{root: fromList(xs)}
}
