package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRegistryInsertGetRemove(t *testing.T) {
	r := NewRegistry()
	key := Key{UserID: 1, ChannelID: 2}
	h := newHandle(key, 3, 60, time.Unix(0, 0))

	require.True(t, r.tryInsert(h))
	require.Same(t, h, r.get(key))
	require.Equal(t, 1, r.Count())

	// duplicate key loses, existing handle untouched
	dup := newHandle(key, 3, 120, time.Unix(0, 0))
	require.False(t, r.tryInsert(dup))
	require.Same(t, h, r.get(key))

	// different channel is a different key
	other := newHandle(Key{UserID: 1, ChannelID: 9}, 3, 60, time.Unix(0, 0))
	require.True(t, r.tryInsert(other))
	require.Equal(t, 2, r.Count())

	r.remove(key)
	require.Nil(t, r.get(key))
	r.remove(key) // idempotent
	require.Equal(t, 1, r.Count())
}

// TestConcurrentStartUniqueness verifies that for any number of racing
// inserts with the same key, exactly one wins.
func TestConcurrentStartUniqueness(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := NewRegistry()
		key := Key{
			UserID:    rapid.Uint64().Draw(t, "user"),
			ChannelID: rapid.Uint64().Draw(t, "channel"),
		}
		racers := rapid.IntRange(2, 16).Draw(t, "racers")

		var wg sync.WaitGroup
		var mu sync.Mutex
		wins := 0
		for i := 0; i < racers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				h := newHandle(key, 1, 60, time.Unix(0, 0))
				if r.tryInsert(h) {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		if wins != 1 {
			t.Fatalf("expected exactly one winning insert, got %d", wins)
		}
		if r.Count() != 1 {
			t.Fatalf("expected one registered timer, got %d", r.Count())
		}
	})
}

func TestHandlesSnapshot(t *testing.T) {
	r := NewRegistry()
	for i := uint64(0); i < 5; i++ {
		require.True(t, r.tryInsert(newHandle(Key{UserID: i, ChannelID: 1}, 3, 60, time.Unix(0, 0))))
	}
	hs := r.handles()
	require.Len(t, hs, 5)
	// mutating the snapshot must not affect the registry
	hs[0] = nil
	require.Equal(t, 5, r.Count())
}
