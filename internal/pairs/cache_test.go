package pairs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	c := NewCache(10)
	c.Upsert("机器学习", "Machine learning")

	got, ok := c.Lookup(Normalize("机器学习"))
	require.True(t, ok)
	assert.Equal(t, "Machine learning", got)

	got, ok = c.Lookup(Normalize("Machine learning"))
	require.True(t, ok)
	assert.Equal(t, "机器学习", got)
}

func TestCacheIgnoresSelfAndEmptyPairs(t *testing.T) {
	c := NewCache(10)
	c.Upsert("Hello", "Hello")
	c.Upsert(" Hello ", "Hello")
	c.Upsert("", "Hello")
	c.Upsert("Hello", "   ")

	assert.Equal(t, 0, c.Len())
	_, ok := c.Lookup("Hello")
	assert.False(t, ok)
}

func TestCacheEvictsOldestKeyFirst(t *testing.T) {
	c := NewCache(4)
	c.Upsert("one", "uno")
	c.Upsert("two", "dos")
	require.Equal(t, 4, c.Len())

	c.Upsert("three", "tres")
	assert.Equal(t, 4, c.Len())

	_, ok := c.Lookup("one")
	assert.False(t, ok, "oldest key evicted")
	_, ok = c.Lookup("uno")
	assert.False(t, ok, "second oldest key evicted")

	got, ok := c.Lookup("two")
	require.True(t, ok)
	assert.Equal(t, "dos", got)
	got, ok = c.Lookup("tres")
	require.True(t, ok)
	assert.Equal(t, "three", got)
}

func TestCacheEvictionIsPerKey(t *testing.T) {
	c := NewCache(3)
	c.Upsert("first", "primero")
	c.Upsert("second", "segundo")

	// "first" went out first; its reverse entry survives
	_, ok := c.Lookup("first")
	assert.False(t, ok)
	got, ok := c.Lookup("primero")
	require.True(t, ok)
	assert.Equal(t, "first", got)
}

func TestCacheOverwriteKeepsOrder(t *testing.T) {
	c := NewCache(4)
	c.Upsert("one", "uno")
	c.Upsert("one", "eins")
	assert.Equal(t, 3, c.Len())

	got, ok := c.Lookup("one")
	require.True(t, ok)
	assert.Equal(t, "eins", got)
}

func TestCacheLooseAndFuzzyTiers(t *testing.T) {
	c := NewCache(10)
	c.Upsert("Machine learning", "机器学习")

	got, ok := c.Lookup("machine learning!")
	require.True(t, ok, "loose key tier")
	assert.Equal(t, "机器学习", got)

	got, ok = c.Lookup("Machine learning models")
	require.True(t, ok, "containment tier")
	assert.Equal(t, "机器学习", got)

	_, ok = c.Lookup("Deep learning")
	assert.False(t, ok)
}

func TestCacheNeverReturnsEquivalentValue(t *testing.T) {
	c := NewCache(10)
	// key and value only differ by punctuation, so a hit would be a no-op
	c.entries["hello world"] = "Hello, world!"
	c.order = append(c.order, "hello world")

	_, ok := c.Lookup("hello world")
	assert.False(t, ok)
}

func TestCacheDefaultCapacity(t *testing.T) {
	c := NewCache(0)
	assert.Equal(t, DefaultCapacity, c.Capacity())

	for i := 0; i < DefaultCapacity; i++ {
		c.Upsert(fmt.Sprintf("source %d", i), fmt.Sprintf("target %d", i))
	}
	assert.Equal(t, DefaultCapacity, c.Len())
}
