package memory

import (
	"sort"
	"strings"
	"sync"
)

// KVRepo is an in-process key-value repository. Nothing survives a restart.
type KVRepo struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewKVRepo creates an empty repository
func NewKVRepo() *KVRepo {
	return &KVRepo{entries: make(map[string]string)}
}

func (r *KVRepo) Get(key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.entries[key]
	return value, ok, nil
}

func (r *KVRepo) Set(key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = value
	return nil
}

func (r *KVRepo) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
	return nil
}

func (r *KVRepo) Keys(prefix string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := []string{}
	for key := range r.entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
