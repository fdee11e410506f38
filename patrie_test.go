package patrie

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seed int64

func TestMain(m *testing.M) {
	seed = rand.Int63()
	fmt.Println("Using seed", seed)
	m.Run()
}

func k(s string) []byte { return []byte(s) }

func genRandKeys(randgen *rand.Rand, count, maxLen int) [][]byte {
	keys := make([][]byte, count)
	for i := range count {
		n := randgen.Intn(maxLen) + 1
		buf := make([]byte, n)
		randgen.Read(buf)
		keys[i] = buf
	}
	return keys
}

func TestLookupInsert(t *testing.T) {
	randgen := rand.New(rand.NewSource(seed))
	keys := genRandKeys(randgen, 200, 8)

	tr := Empty[byte, int]()
	for i, key := range keys {
		tr = tr.Insert(key, i)
		mustBeValid(t, tr.root)
		v, ok := tr.Lookup(key)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestInsertOverwrites(t *testing.T) {
	tr := Empty[byte, int]()
	tr = tr.Insert(k("x"), 1)
	tr = tr.Insert(k("x"), 2)
	mustBeValid(t, tr.root)
	v, ok := tr.Lookup(k("x"))
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestLookupDelete(t *testing.T) {
	randgen := rand.New(rand.NewSource(seed))
	keys := genRandKeys(randgen, 200, 8)

	tr := Empty[byte, int]()
	for i, key := range keys {
		tr = tr.Insert(key, i)
	}
	for _, key := range keys {
		tr = tr.Delete(key)
		mustBeValid(t, tr.root)
		_, ok := tr.Lookup(key)
		assert.False(t, ok)
	}
	assert.True(t, tr.Null())
}

func TestCommutativityOnDisjointKeys(t *testing.T) {
	randgen := rand.New(rand.NewSource(seed))
	for trial := 0; trial < 50; trial++ {
		keys := genRandKeys(randgen, 2, 8)
		k1, k2 := keys[0], keys[1]
		if string(k1) == string(k2) {
			continue
		}
		base := Empty[byte, int]()
		for i, key := range genRandKeys(randgen, 10, 8) {
			base = base.Insert(key, i)
		}

		t1 := base.Insert(k1, 100).Insert(k2, 200)
		t2 := base.Insert(k2, 200).Insert(k1, 100)
		assert.True(t, structurallyEqual(t1.root, t2.root))
	}
}

func TestCanonicalForm(t *testing.T) {
	tr1 := Empty[byte, int]()
	tr1 = tr1.Insert(k("abc"), 1)
	tr1 = tr1.Insert(k("abd"), 2)
	tr1 = tr1.Insert(k("abc"), 3)
	tr1 = tr1.Delete(k("abd"))

	tr2 := Singleton[byte, int](k("abc"), 3)

	assert.True(t, structurallyEqual(tr1.root, tr2.root))
}

func TestFromListToListRoundTrip(t *testing.T) {
	entries := []Entry[byte, int]{
		{Key: k("b"), Value: 1},
		{Key: k("a"), Value: 2},
		{Key: k("c"), Value: 3},
		{Key: k("a"), Value: 99}, // shadowed: "a" already appears earlier
	}
	tr := FromList(entries)
	mustBeValid(t, tr.root)

	var got [][2]any
	for key, v := range tr.ToList() {
		got = append(got, [2]any{string(key), v})
	}
	want := [][2]any{{"a", 2}, {"b", 1}, {"c", 3}}
	assert.Equal(t, want, got)
}

func TestKeysSorted(t *testing.T) {
	randgen := rand.New(rand.NewSource(seed))
	keys := genRandKeys(randgen, 300, 6)

	tr := Empty[byte, int]()
	for _, key := range keys {
		tr = tr.Insert(key, 0)
	}

	var got []string
	for key := range tr.Keys() {
		got = append(got, string(key))
	}
	sorted := make([]string, len(got))
	copy(sorted, got)
	sort.Strings(sorted)
	assert.Equal(t, sorted, got)
}

func TestMatchIsLongest(t *testing.T) {
	tr := FromList([]Entry[byte, int]{
		{Key: k("a"), Value: 1},
		{Key: k("abc"), Value: 2},
		{Key: k("abcde"), Value: 3},
	})

	value, leftover, found := tr.Match(k("abcd"))
	require.True(t, found)
	assert.Equal(t, 2, value)
	assert.Equal(t, "d", string(leftover))
}

func TestMatchesEnumeratesExactly(t *testing.T) {
	tr := FromList([]Entry[byte, int]{
		{Key: k("a"), Value: 1},
		{Key: k("abc"), Value: 2},
		{Key: k("abcde"), Value: 3},
	})

	// "abcd" is shorter than the stored "abcde", so only "a" and "abc"
	// qualify as prefixes of the query.
	var prefixesMatched []string
	var lengths []int
	for leftover, v := range tr.Matches(k("abcd")) {
		matched := "abcd"[:len("abcd")-len(leftover)]
		prefixesMatched = append(prefixesMatched, fmt.Sprintf("%s=%d", matched, v))
		lengths = append(lengths, len(matched))
	}
	assert.Equal(t, []string{"a=1", "abc=2"}, prefixesMatched)
	assert.True(t, sort.IntsAreSorted(lengths))
}

func TestMergeByIdentities(t *testing.T) {
	f := func(x, y int) (int, bool) { return x, true }

	tr := FromList([]Entry[byte, int]{{Key: k("a"), Value: 1}, {Key: k("b"), Value: 2}})
	empty := Empty[byte, int]()

	assert.True(t, structurallyEqual(MergeBy(f, empty, tr).root, tr.root))
	assert.True(t, structurallyEqual(MergeBy(f, tr, empty).root, tr.root))
	assert.True(t, structurallyEqual(MergeBy(f, tr, tr).root, tr.root))
}

func TestMergeByPointwise(t *testing.T) {
	t1 := FromList([]Entry[byte, int]{{Key: k("a"), Value: 1}, {Key: k("shared"), Value: 10}})
	t2 := FromList([]Entry[byte, int]{{Key: k("b"), Value: 2}, {Key: k("shared"), Value: 20}})

	merged := MergeBy(func(x, y int) (int, bool) { return x + y, true }, t1, t2)
	mustBeValid(t, merged.root)

	v, ok := merged.Lookup(k("a"))
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = merged.Lookup(k("b"))
	require.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = merged.Lookup(k("shared"))
	require.True(t, ok)
	assert.Equal(t, 30, v)
}

func TestUnionLUnionR(t *testing.T) {
	t1 := Singleton[byte, int](k("k"), 1)
	t2 := Singleton[byte, int](k("k"), 2)

	v, _ := UnionL(t1, t2).Lookup(k("k"))
	assert.Equal(t, 1, v)

	v, _ = UnionR(t1, t2).Lookup(k("k"))
	assert.Equal(t, 2, v)
}

func TestStructuralInvariantsUnderRandomOps(t *testing.T) {
	randgen := rand.New(rand.NewSource(seed))
	keys := genRandKeys(randgen, 500, 10)

	tr := Empty[byte, int]()
	for i, key := range keys {
		switch randgen.Intn(3) {
		case 0:
			tr = tr.Insert(key, i)
		case 1:
			tr = tr.Delete(key)
		case 2:
			tr = tr.Adjust(key, func(v int) int { return v + 1 })
		}
		mustBeValid(t, tr.root)
	}
}

// Concrete scenarios straight out of the narrative specification.

func TestScenarioPrefixedKeys(t *testing.T) {
	tr := FromList([]Entry[byte, int]{{Key: k("foobar"), Value: 2}, {Key: k("foo"), Value: 1}})
	v, ok := tr.Lookup(k("foo"))
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = tr.Lookup(k("foobar"))
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestScenarioDeleteLeavesSingleton(t *testing.T) {
	tr := FromList([]Entry[byte, int]{{Key: k("a"), Value: 1}, {Key: k("abc"), Value: 2}})
	tr = tr.Delete(k("abc"))
	mustBeValid(t, tr.root)

	want := Singleton[byte, int](k("a"), 1)
	assert.True(t, structurallyEqual(tr.root, want.root))
	assert.Equal(t, 1, tr.Size())
}

func TestMapByIsTotal(t *testing.T) {
	tr := FromList([]Entry[byte, int]{{Key: k("a"), Value: 1}, {Key: k("b"), Value: 2}})
	doubled := MapBy(func(_ []byte, v int) int { return v * 2 }, tr)
	mustBeValid(t, doubled.root)
	assert.Equal(t, tr.Size(), doubled.Size())

	v, ok := doubled.Lookup(k("a"))
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestFilterMapDrops(t *testing.T) {
	tr := FromList([]Entry[byte, int]{{Key: k("a"), Value: 1}, {Key: k("b"), Value: 2}, {Key: k("c"), Value: 3}})
	odds := FilterMap(func(_ []byte, v int) (int, bool) {
		return v, v%2 == 1
	}, tr)
	mustBeValid(t, odds.root)
	assert.Equal(t, 2, odds.Size())
	assert.False(t, odds.Member(k("b")))
	assert.True(t, odds.Member(k("a")))
	assert.True(t, odds.Member(k("c")))
}

func TestSubmapAndDeleteSubmap(t *testing.T) {
	tr := FromList([]Entry[byte, int]{
		{Key: k("car"), Value: 1},
		{Key: k("cart"), Value: 2},
		{Key: k("cat"), Value: 3},
	})

	sub := tr.Submap(k("car"))
	mustBeValid(t, sub.root)
	assert.Equal(t, 2, sub.Size())
	assert.False(t, sub.Member(k("cat")))

	rest := tr.DeleteSubmap(k("car"))
	mustBeValid(t, rest.root)
	assert.Equal(t, 1, rest.Size())
	assert.True(t, rest.Member(k("cat")))
}

func TestAlterByCanInsertOrDelete(t *testing.T) {
	tr := Empty[byte, int]()
	tr = tr.AlterBy(k("x"), func(_ []byte, old int, found bool) (int, bool) {
		assert.False(t, found)
		return 42, true
	})
	v, ok := tr.Lookup(k("x"))
	require.True(t, ok)
	assert.Equal(t, 42, v)

	tr = tr.AlterBy(k("x"), func(_ []byte, old int, found bool) (int, bool) {
		assert.True(t, found)
		assert.Equal(t, 42, old)
		return 0, false
	})
	assert.False(t, tr.Member(k("x")))
}

// structurallyEqual compares two node trees field by field, independent of
// sharing: two trees built via different histories but the same bindings
// must compare equal under this, never merely under deep pointer identity.
func structurallyEqual[E Elem, V comparable](a, b *node[E, V]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.isBranch != b.isBranch {
		return false
	}
	if !sameElems(a.prefix, b.prefix) {
		return false
	}
	if !a.isBranch {
		if a.hasValue != b.hasValue {
			return false
		}
		if a.hasValue && a.value != b.value {
			return false
		}
		return structurallyEqual(a.child, b.child)
	}
	return a.mask == b.mask &&
		structurallyEqual(a.left, b.left) &&
		structurallyEqual(a.right, b.right)
}

func sameElems[E Elem](a, b []E) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
