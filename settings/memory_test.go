package settings

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Taraldinn/hear-hear-bot-sub000/locale"
)

func TestMemoryDefaultsAndSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(locale.English)

	require.Equal(t, locale.English, m.Language(ctx, 1))

	require.NoError(t, m.SetLanguage(ctx, 1, locale.French))
	require.Equal(t, locale.French, m.Language(ctx, 1))

	// other guilds keep the default
	require.Equal(t, locale.English, m.Language(ctx, 2))
}

func TestMemoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(locale.English)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(guild uint64) {
			defer wg.Done()
			_ = m.SetLanguage(ctx, guild, locale.French)
			_ = m.Language(ctx, guild)
		}(uint64(i % 4))
	}
	wg.Wait()

	require.Equal(t, locale.French, m.Language(ctx, 0))
}
