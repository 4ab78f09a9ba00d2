package speech

import (
	"context"
	"sync"
)

// PauseGate blocks callers while paused. The zero value is open.
type PauseGate struct {
	mu     sync.Mutex
	closed chan struct{}
}

// Pause closes the gate. Pausing twice is a no-op.
func (g *PauseGate) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed == nil {
		g.closed = make(chan struct{})
	}
}

// Resume opens the gate and releases every waiter
func (g *PauseGate) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed != nil {
		close(g.closed)
		g.closed = nil
	}
}

// Paused reports whether the gate is closed
func (g *PauseGate) Paused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed != nil
}

// Wait returns once the gate is open or ctx is done
func (g *PauseGate) Wait(ctx context.Context) error {
	for {
		g.mu.Lock()
		wait := g.closed
		g.mu.Unlock()

		if wait == nil {
			return nil
		}

		select {
		case <-wait:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
