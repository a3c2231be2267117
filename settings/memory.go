package settings

import (
	"context"
	"sync"

	"github.com/Taraldinn/hear-hear-bot-sub000/locale"
)

// Memory is an in-process Store used when no database is configured and in
// tests. Contents are lost on restart.
type Memory struct {
	def locale.Language

	mu    sync.RWMutex
	langs map[uint64]locale.Language
}

// NewMemory returns an empty in-memory store with the given default language.
func NewMemory(def locale.Language) *Memory {
	return &Memory{def: def, langs: make(map[uint64]locale.Language)}
}

func (m *Memory) Language(_ context.Context, guildID uint64) locale.Language {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.langs[guildID]; ok {
		return l
	}
	return m.def
}

func (m *Memory) SetLanguage(_ context.Context, guildID uint64, lang locale.Language) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.langs[guildID] = lang
	return nil
}
