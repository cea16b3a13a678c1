package kv_test

import (
	"context"
	"testing"

	"github.com/hay-kot/tzc/internal/core/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedKV_SetAndGet(t *testing.T) {
	ctx := context.Background()
	typed := kv.Scoped[string](kv.NewMemory(), "test")

	require.NoError(t, typed.Set(ctx, "greeting", "hello"))

	got, err := typed.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestTypedKV_ScopedPrefix(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	a := kv.Scoped[int](store, "a")
	b := kv.Scoped[int](store, "b")

	require.NoError(t, a.Set(ctx, "n", 1))
	require.NoError(t, b.Set(ctx, "n", 2))

	gotA, err := a.Get(ctx, "n")
	require.NoError(t, err)
	gotB, err := b.Get(ctx, "n")
	require.NoError(t, err)

	assert.Equal(t, 1, gotA)
	assert.Equal(t, 2, gotB)
	assert.Equal(t, "a:n", a.Key("n"))

	has, err := store.Has(ctx, "a:n")
	require.NoError(t, err)
	assert.True(t, has)
	has, err = store.Has(ctx, "n")
	require.NoError(t, err)
	assert.False(t, has, "unscoped key is not stored")
}

func TestTypedKV_GetMissing(t *testing.T) {
	typed := kv.Scoped[string](kv.NewMemory(), "test")

	_, err := typed.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestTypedKV_DeleteAndHas(t *testing.T) {
	ctx := context.Background()
	typed := kv.Scoped[string](kv.NewMemory(), "test")

	require.NoError(t, typed.Set(ctx, "k", "v"))
	has, err := typed.Has(ctx, "k")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, typed.Delete(ctx, "k"))
	has, err = typed.Has(ctx, "k")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestMemory_MalformedValue(t *testing.T) {
	store := kv.NewMemory()
	store.SetRaw("k", []byte("{not json"))

	var v map[string]any
	err := store.Get(context.Background(), "k", &v)
	require.Error(t, err)
	assert.NotErrorIs(t, err, kv.ErrNotFound)
}
