package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/iqcmaker/app/history"
	"github.com/umputun/iqcmaker/app/store"
)

type brokenCounter struct{ n int64 }

func (b *brokenCounter) Total() int64 { return b.n }

func (b *brokenCounter) IncrementCounter(context.Context) (int64, error) {
	return 0, errors.New("broken")
}

func TestAggregator_RecordSuccess(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, history.TotalKey, []byte("41")))
	h := history.New(kv)
	_, _, err := h.Load(ctx)
	require.NoError(t, err)

	a := New(h)
	assert.Equal(t, int64(41), a.Total())

	n, err := a.RecordSuccess(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.Equal(t, int64(42), a.Total())
	assert.Equal(t, int64(42), h.Total())

	// clear doesn't touch the counter
	require.NoError(t, h.Clear(ctx))
	assert.Equal(t, int64(42), a.Total())

	// persisted value survives reload
	h2 := history.New(kv)
	_, total, err := h2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
	assert.Equal(t, int64(42), New(h2).Total())
}

func TestAggregator_RecordSuccessStoreError(t *testing.T) {
	a := New(&brokenCounter{n: 5})
	assert.Equal(t, int64(5), a.Total())
	n, err := a.RecordSuccess(context.Background())
	require.Error(t, err)
	assert.Equal(t, int64(6), n)
	assert.Equal(t, int64(6), a.Total())
}
