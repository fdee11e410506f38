// Package utf16key instantiates patrie over E = uint16, UTF-16 code
// units, for tries keyed by human text where byte-oriented prefixing
// would split multi-byte runes in the middle of a codepoint.
package utf16key

import (
	"unicode/utf16"

	"github.com/flonle/patrie"
)

// Trie is patrie.Trie specialized to UTF-16 code-unit keys.
type Trie[V any] = patrie.Trie[uint16, V]

// Of encodes a Go string as a sequence of UTF-16 code units, surrogate
// pairs included. Two strings that normalize to the same text but
// differ pre-normalization produce different keys; no normalization is
// applied.
func Of(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// String decodes a key back into a Go string.
func String(k []uint16) string {
	return string(utf16.Decode(k))
}

// Empty returns the trie with no bindings.
func Empty[V any]() *Trie[V] {
	return patrie.Empty[uint16, V]()
}

// Singleton returns the trie binding s to v and nothing else.
func Singleton[V any](s string, v V) *Trie[V] {
	return patrie.Singleton[uint16, V](Of(s), v)
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
