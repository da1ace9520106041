package lrucache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecencyList_TouchAndOrder(t *testing.T) {
	t.Parallel()

	l := New[int]()
	assert.Equal(t, 0, l.Len())

	_, ok := l.LeastRecent()
	assert.False(t, ok)

	l.Touch(1)
	l.Touch(2)
	l.Touch(3)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []int{1, 2, 3}, l.Keys())

	// Touching an existing key moves it to the most recent end
	l.Touch(1)
	assert.Equal(t, []int{2, 3, 1}, l.Keys())

	least, ok := l.LeastRecent()
	require.True(t, ok)
	assert.Equal(t, 2, least)
}

func TestRecencyList_Remove(t *testing.T) {
	t.Parallel()

	l := New[string]()
	l.Touch("a")
	l.Touch("b")
	l.Touch("c")

	require.True(t, l.Remove("b"))
	assert.False(t, l.Remove("b"))
	assert.False(t, l.Contains("b"))
	assert.Equal(t, []string{"a", "c"}, l.Keys())

	// Removing the tail moves the least recent pointer up
	require.True(t, l.Remove("a"))
	least, ok := l.LeastRecent()
	require.True(t, ok)
	assert.Equal(t, "c", least)

	require.True(t, l.Remove("c"))
	assert.Equal(t, 0, l.Len())
	_, ok = l.LeastRecent()
	assert.False(t, ok)
}

func TestRecencyList_ConcurrentTouch(t *testing.T) {
	t.Parallel()

	l := New[int]()
	wg := new(sync.WaitGroup)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Touch(n)
				l.Contains(n)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 8, l.Len())
}
