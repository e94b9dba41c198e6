package bag_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/0xalexb/hjarta-kit/bag"
	"github.com/0xalexb/hjarta-kit/dotpath"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBag_ZeroValue(t *testing.T) {
	t.Parallel()

	var b bag.Bag

	assert.False(t, b.Has("a"))
	assert.Equal(t, "def", b.Get("a", "def"))
	assert.Equal(t, dotpath.Map{}, b.All())
	assert.False(t, b.Remove("a"))

	require.NoError(t, b.Set("a.b", 1))
	assert.Equal(t, 1, b.Get("a.b", nil))
}

func TestBag_NewCopiesInitialData(t *testing.T) {
	t.Parallel()

	initial := dotpath.Map{"a": dotpath.Map{"b": 1}, "list": []any{"x", "y"}}

	b := bag.New(initial)
	require.NoError(t, b.Set("a.b", 2))

	assert.Equal(t, 1, dotpath.Get(initial, "a.b", nil))
	assert.Equal(t, "y", b.Get("list.1", nil))
	assert.Equal(t, 2, b.Len())
}

func TestBag_HasGetSetRemove(t *testing.T) {
	t.Parallel()

	b := bag.New(nil)

	require.NoError(t, b.Set("actor.first.name", "Roger"))

	assert.True(t, b.Has("actor.first.name"))
	assert.True(t, b.Has("actor.first"))
	assert.Equal(t, "Roger", b.Get("actor.first.name", nil))
	assert.Equal(t, "N/A", b.Get("actor.last.name", "N/A"))

	assert.True(t, b.Remove("actor.first.name"))
	assert.False(t, b.Remove("actor.first.name"))
	assert.False(t, b.Has("actor.first.name"))
	assert.Equal(t, dotpath.Map{"actor": dotpath.Map{"first": dotpath.Map{}}}, b.All())
}

func TestBag_GetDistinguishesFalsyFromAbsent(t *testing.T) {
	t.Parallel()

	b := bag.New(dotpath.Map{"a": dotpath.Map{"b": false}})

	assert.Equal(t, false, b.Get("a.b", "X"))
	assert.Equal(t, "X", b.Get("a.c", "X"))
}

func TestBag_Must(t *testing.T) {
	t.Parallel()

	b := bag.New(dotpath.Map{"a": 1})

	value, err := b.Must("a")
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	_, err = b.Must("missing.key")
	require.ErrorIs(t, err, dotpath.ErrMissingPath)
	assert.Contains(t, err.Error(), "missing.key")
}

func TestBag_SetErrors(t *testing.T) {
	t.Parallel()

	b := bag.New(dotpath.Map{"a": "scalar"})

	err := b.Set("", 1)
	require.ErrorIs(t, err, dotpath.ErrEmptyPath)

	err = b.Set("a.b", 1)
	require.ErrorIs(t, err, dotpath.ErrTraversalConflict)
}

func TestBag_ReturnedContainersAreCopies(t *testing.T) {
	t.Parallel()

	b := bag.New(dotpath.Map{"a": dotpath.Map{"b": 1}})

	sub, ok := b.Get("a", nil).(dotpath.Map)
	require.True(t, ok)

	sub["b"] = 2

	all := b.All()
	all["a"] = "changed"

	assert.Equal(t, 1, b.Get("a.b", nil))
}

func TestBag_SetCopiesValue(t *testing.T) {
	t.Parallel()

	b := bag.New(nil)
	value := dotpath.Map{"x": 1}

	require.NoError(t, b.Set("a", value))

	value["x"] = 2

	assert.Equal(t, 1, b.Get("a.x", nil))
}

func TestBag_MergeAndReplace(t *testing.T) {
	t.Parallel()

	b := bag.New(dotpath.Map{"db": dotpath.Map{"host": "localhost", "port": 5432}})

	require.NoError(t, b.Merge(dotpath.Map{"db": dotpath.Map{"host": "db.internal"}}))

	assert.Equal(t, "db.internal", b.Get("db.host", nil))
	assert.Equal(t, 5432, b.Get("db.port", nil))

	b.Replace(dotpath.Map{"only": true})

	assert.Equal(t, []string{"only"}, b.Keys())
}

func TestValue(t *testing.T) {
	t.Parallel()

	b := bag.New(dotpath.Map{"name": "api", "port": 8080})

	assert.Equal(t, "api", bag.Value(b, "name", "default"))
	assert.Equal(t, 8080, bag.Value(b, "port", 0))
	assert.Equal(t, "default", bag.Value(b, "port", "default"), "no conversion between types")
	assert.Equal(t, 7, bag.Value(b, "missing", 7))
}

func TestBag_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	b := bag.New(nil)

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			path := fmt.Sprintf("workers.%d.state", i)
			assert.NoError(t, b.Set(path, "running"))
			assert.Equal(t, "running", b.Get(path, nil))
			_ = b.All()
		}()
	}

	wg.Wait()

	assert.Len(t, b.Keys(), 16)
}
