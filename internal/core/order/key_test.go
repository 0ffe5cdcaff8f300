package order

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitial(t *testing.T) {
	k := Initial()
	assert.NotEmpty(t, k)
	assert.False(t, strings.HasSuffix(k, "a"))
}

func TestBetweenSimpleGap(t *testing.T) {
	k := Between("c", "t")
	assert.Greater(t, k, "c")
	assert.Less(t, k, "t")
}

func TestBetweenAdjacentDigits(t *testing.T) {
	k := Between("n", "o")
	assert.Greater(t, k, "n")
	assert.Less(t, k, "o")
}

func TestBeforeAndAfter(t *testing.T) {
	k := Initial()
	assert.Less(t, Before(k), k)
	assert.Greater(t, After(k), k)
}

func TestAfterHighestDigit(t *testing.T) {
	k := After("z")
	assert.Greater(t, k, "z")
}

func TestRepeatedInsertAfterSameKey(t *testing.T) {
	// Inserting twice relative to the same neighbor must give two distinct,
	// correctly ordered keys when the second insert sees the first.
	anchor := Initial()
	first := After(anchor)
	second := Between(anchor, first)

	assert.Greater(t, first, anchor)
	assert.Greater(t, second, anchor)
	assert.Less(t, second, first)
}

func TestDenseInsertionStaysOrdered(t *testing.T) {
	// Repeatedly halve the same gap; keys must stay strictly ordered and
	// never end in the lowest digit.
	lo, hi := "", ""
	keys := []string{}
	for i := 0; i < 200; i++ {
		k := Between(lo, hi)
		if lo != "" {
			require.Greater(t, k, lo)
		}
		if hi != "" {
			require.Less(t, k, hi)
		}
		require.False(t, strings.HasSuffix(k, "a"), "key %q ends in lowest digit", k)
		keys = append(keys, k)
		hi = k
	}

	sorted := append([]string(nil), keys...)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))
	assert.Equal(t, sorted, keys)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("n"))
	assert.True(t, IsValid("cz"))
	assert.True(t, IsValid(Initial()))
	assert.True(t, IsValid(After("z")))

	assert.False(t, IsValid(""))
	assert.False(t, IsValid("a"))
	assert.False(t, IsValid("na"), "trailing lowest digit leaves no gap below")
	assert.False(t, IsValid("N"))
	assert.False(t, IsValid("n1"))
}

func TestBetweenTerminatesOnLowestDigitBound(t *testing.T) {
	// Bounds ending in the lowest digit violate the input contract; the
	// computation must still return a key instead of growing one forever.
	assert.NotEmpty(t, Before("a"))
	assert.NotEmpty(t, Between("", "aaa"))
	assert.NotEmpty(t, Between("a", "aa"))
}

func TestAppendChainStaysShort(t *testing.T) {
	// Appending at the end grows keys far slower than one char per append.
	k := Initial()
	for i := 0; i < 100; i++ {
		k = After(k)
	}
	assert.Less(t, len(k), 32)
}
