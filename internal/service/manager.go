package service

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrWorkspaceNotFound is returned for unknown workspace ids
var ErrWorkspaceNotFound = errors.New("workspace not found")

// WorkspaceManager keeps the open workspaces of a multi-user front end
type WorkspaceManager struct {
	deps   Deps
	logger *zap.Logger

	now func() time.Time

	mu         sync.RWMutex
	workspaces map[string]*Workspace
	lastUsed   map[string]time.Time
}

// NewWorkspaceManager creates a manager building workspaces from deps
func NewWorkspaceManager(deps Deps, logger *zap.Logger) *WorkspaceManager {
	return &WorkspaceManager{
		deps:       deps,
		logger:     logger,
		now:        time.Now,
		workspaces: make(map[string]*Workspace),
		lastUsed:   make(map[string]time.Time),
	}
}

// Create opens a workspace with a fresh id
func (m *WorkspaceManager) Create() *Workspace {
	id := uuid.NewString()
	ws := NewWorkspace(id, m.deps)

	m.mu.Lock()
	m.workspaces[id] = ws
	m.lastUsed[id] = m.now()
	m.mu.Unlock()

	m.logger.Info("Workspace created", zap.String("workspace", id))
	return ws
}

// Get returns the workspace with the given id
func (m *WorkspaceManager) Get(id string) (*Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws, ok := m.workspaces[id]
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	m.lastUsed[id] = m.now()
	return ws, nil
}

// GetOrCreate returns the workspace with the given id, opening it on first use
func (m *WorkspaceManager) GetOrCreate(id string) *Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUsed[id] = m.now()
	if ws, ok := m.workspaces[id]; ok {
		return ws
	}
	ws := NewWorkspace(id, m.deps)
	m.workspaces[id] = ws
	m.logger.Info("Workspace created", zap.String("workspace", id))
	return ws
}

// Close unloads and forgets a workspace
func (m *WorkspaceManager) Close(id string) error {
	m.mu.Lock()
	ws, ok := m.workspaces[id]
	delete(m.workspaces, id)
	delete(m.lastUsed, id)
	m.mu.Unlock()

	if !ok {
		return ErrWorkspaceNotFound
	}
	ws.Unload()
	return nil
}

// CloseAll unloads every workspace
func (m *WorkspaceManager) CloseAll() {
	for _, id := range m.IDs() {
		_ = m.Close(id)
	}
}

// CloseIdle unloads workspaces unused for longer than maxIdle, skipping
// those still playing, and returns how many were closed
func (m *WorkspaceManager) CloseIdle(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.RLock()
	var idle []string
	for id, used := range m.lastUsed {
		if used.Before(cutoff) && !m.workspaces[id].engine.Running() {
			idle = append(idle, id)
		}
	}
	m.mu.RUnlock()

	closed := 0
	for _, id := range idle {
		if err := m.Close(id); err == nil {
			closed++
		}
	}
	if closed > 0 {
		m.logger.Info("Closed idle workspaces", zap.Int("count", closed), zap.Duration("max_idle", maxIdle))
	}
	return closed
}

// IDs lists open workspace ids, sorted
func (m *WorkspaceManager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.workspaces))
	for id := range m.workspaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
