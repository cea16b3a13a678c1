package kv

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSet(t *testing.T) {
	s := New[string, int]()

	s.Set("foo", 42)
	val, ok := s.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 42, val)

	_, ok = s.Get("bar")
	assert.False(t, ok)
}

func TestStore_GetOrCompute(t *testing.T) {
	s := New[string, int]()
	calls := 0
	fn := func(k string) (int, error) {
		calls++
		return len(k), nil
	}

	v, err := s.GetOrCompute("abcd", fn)
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	v, err = s.GetOrCompute("abcd", fn)
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	assert.Equal(t, 1, calls, "second lookup should hit the cache")
}

func TestStore_GetOrComputeErrorNotCached(t *testing.T) {
	s := New[string, int]()
	boom := errors.New("boom")

	_, err := s.GetOrCompute("x", func(string) (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.Len())
}

func TestStore_Concurrent(t *testing.T) {
	s := New[int, int]()
	var wg sync.WaitGroup

	for i := range 100 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = s.GetOrCompute(n%10, func(k int) (int, error) { return k * 2, nil })
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, s.Len())
	v, ok := s.Get(7)
	assert.True(t, ok)
	assert.Equal(t, 14, v)
}
