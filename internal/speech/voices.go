package speech

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"wordreader/internal/domain"
)

// VoiceRegistry keeps the platform voice list split by language prefix.
// It is rebuilt from scratch on every Refresh.
type VoiceRegistry struct {
	mu       sync.RWMutex
	prefixes []string
	all      []domain.Voice
	byLang   map[string][]domain.Voice
}

// NewVoiceRegistry creates a registry tracking the given language tags
// (e.g. "es-ES", "en-GB"); only their primary subtags matter
func NewVoiceRegistry(tags ...string) *VoiceRegistry {
	prefixes := make([]string, 0, len(tags))
	for _, tag := range tags {
		prefixes = append(prefixes, domain.LangPrefix(tag))
	}
	return &VoiceRegistry{
		prefixes: prefixes,
		byLang:   make(map[string][]domain.Voice),
	}
}

// Refresh replaces the known voices. Order within each language follows
// the order of voices.
func (r *VoiceRegistry) Refresh(voices []domain.Voice) {
	byLang := make(map[string][]domain.Voice, len(r.prefixes))
	for _, prefix := range r.prefixes {
		byLang[prefix] = []domain.Voice{}
	}
	for _, v := range voices {
		prefix := domain.LangPrefix(v.Lang)
		if list, ok := byLang[prefix]; ok {
			byLang[prefix] = append(list, v)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append([]domain.Voice(nil), voices...)
	r.byLang = byLang
}

// Load fetches the backend's voices and refreshes the registry
func (r *VoiceRegistry) Load(ctx context.Context, engine Engine) error {
	voices, err := engine.Voices(ctx)
	if err != nil {
		return fmt.Errorf("list %s voices: %w", engine.Name(), err)
	}
	r.Refresh(voices)
	return nil
}

// ForLanguage returns the voices whose language shares tag's prefix
func (r *VoiceRegistry) ForLanguage(tag string) []domain.Voice {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Voice(nil), r.byLang[domain.LangPrefix(tag)]...)
}

// All returns every voice from the last refresh
func (r *VoiceRegistry) All() []domain.Voice {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Voice(nil), r.all...)
}

// Find looks a voice up by exact name
func (r *VoiceRegistry) Find(name string) (domain.Voice, bool) {
	if strings.TrimSpace(name) == "" {
		return domain.Voice{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.all {
		if v.Name == name {
			return v, true
		}
	}
	return domain.Voice{}, false
}
