// Package patrie implements a persistent, immutable associative map keyed by
// sequences of fixed-width unsigned integers ("elements"), represented as a
// big-endian Patricia trie with compressed edge labels.
//
// A trie is built entirely out of two node shapes, threaded through three
// smart constructors (newArc, newBranch, branchMerge in node.go) that
// re-establish the data structure's invariants at every construction site:
//
//   - an Arc carries a (possibly empty) prefix, an optional value, and a
//     child that can itself be an Arc only when the outer Arc holds a value;
//   - a Branch carries a common prefix, a single-bit branching mask, and two
//     non-empty children distinguished by that bit.
//
// Every public operation takes a *node (or the Trie wrapper around one) and
// returns a new root; nodes already in the trie are never mutated, so old
// roots stay valid after any "modification" and unrelated subtries are
// shared between the old and new root.
package patrie
