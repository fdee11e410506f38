package patrie

import "fmt"

// invariantViolation panics to flag a bug in the trie's own bookkeeping —
// never a condition reachable by misusing the public API.
func invariantViolation(what string) {
	panic(fmt.Sprintf("patrie: internal invariant violated: %s", what))
}
