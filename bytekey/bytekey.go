// Package bytekey instantiates patrie over E = byte, the natural key
// element for arbitrary binary strings: URLs, filesystem paths, IP
// prefixes, anything already byte-oriented.
package bytekey

import "github.com/flonle/patrie"

// Trie is patrie.Trie specialized to byte keys.
type Trie[V any] = patrie.Trie[byte, V]

// Of converts a Go string into the key slice patrie expects. The
// conversion is a straight reinterpretation of the string's bytes; no
// encoding is assumed or enforced.
func Of(s string) []byte {
	return []byte(s)
}

// String recovers the original key as a Go string.
func String(k []byte) string {
	return string(k)
}

// Empty returns the trie with no bindings.
func Empty[V any]() *Trie[V] {
	return patrie.Empty[byte, V]()
}

// Singleton returns the trie binding s to v and nothing else.
func Singleton[V any](s string, v V) *Trie[V] {
	return patrie.Singleton[byte, V](Of(s), v)
}

// Lookup returns the value bound to s, if any.
func Lookup[V any](t *Trie[V], s string) (V, bool) {
	return t.Lookup(Of(s))
}

// Insert returns a new trie with s bound to v.
func Insert[V any](t *Trie[V], s string, v V) *Trie[V] {
	return t.Insert(Of(s), v)
}

// Delete returns a new trie with any binding at s removed.
func Delete[V any](t *Trie[V], s string) *Trie[V] {
	return t.Delete(Of(s))
}

// Match returns the value bound to the longest stored key that is a
// prefix of s, along with the unmatched suffix.
func Match[V any](t *Trie[V], s string) (value V, leftover string, found bool) {
	v, rest, ok := t.Match(Of(s))
	return v, String(rest), ok
}
