package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGetRoundTrip(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	type payload struct {
		Score float64 `json:"score"`
	}
	require.NoError(t, m.Set(ctx, "k1", payload{Score: 0.42}, time.Minute))

	var out payload
	found, err := m.Get(ctx, "k1", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 0.42, out.Score)
}

func TestMemoryStoreExpiresEntries(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k1", "v", -time.Second))

	var out string
	found, err := m.Get(ctx, "k1", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKeyIsOrderIndependent(t *testing.T) {
	a := Key("python", "p1", "p2")
	b := Key("p2", "python", "p1")
	assert.Equal(t, a, b)
}

func TestCleanExpiredRemovesStaleEntries(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "stale", "v", -time.Second))
	require.NoError(t, m.Set(ctx, "fresh", "v", time.Minute))

	m.CleanExpired()

	m.mu.RLock()
	_, staleExists := m.entries["stale"]
	_, freshExists := m.entries["fresh"]
	m.mu.RUnlock()

	assert.False(t, staleExists)
	assert.True(t, freshExists)
}
