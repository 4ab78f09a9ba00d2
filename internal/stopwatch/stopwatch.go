// Package stopwatch tracks elapsed study time.
package stopwatch

import (
	"fmt"
	"sync"
	"time"

	"wordreader/internal/domain"
)

// Stopwatch counts wall-clock time from its first Start. It never pauses.
type Stopwatch struct {
	now    func() time.Time
	onTick func(string)

	mu      sync.Mutex
	started time.Time
	ticker  *time.Ticker
	stop    chan struct{}
}

// New creates a stopped stopwatch. onTick, when not nil, receives the
// display text once a second after Start.
func New(onTick func(display string)) *Stopwatch {
	return &Stopwatch{now: time.Now, onTick: onTick}
}

// Start starts counting. Only the first call has an effect; it reports
// whether this call started the stopwatch.
func (s *Stopwatch) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started.IsZero() {
		return false
	}
	s.started = s.now()
	s.ticker = time.NewTicker(time.Second)
	s.stop = make(chan struct{})
	go s.run(s.ticker, s.stop)
	return true
}

func (s *Stopwatch) run(ticker *time.Ticker, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if s.onTick != nil {
				s.onTick(s.Display())
			}
		}
	}
}

// Stop releases the ticker. Elapsed time keeps counting.
func (s *Stopwatch) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
		s.ticker = nil
	}
}

// Started reports whether Start has been called
func (s *Stopwatch) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.started.IsZero()
}

// Elapsed returns the time since Start, or zero before it
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started.IsZero() {
		return 0
	}
	return s.now().Sub(s.started)
}

// String returns the elapsed time as HH:MM:SS
func (s *Stopwatch) String() string {
	return FormatElapsed(s.Elapsed())
}

// Display returns the timer text, e.g. "Time: 00:01:05"
func (s *Stopwatch) Display() string {
	return domain.TimerPrefix + s.String()
}

// FormatElapsed renders d as zero-padded HH:MM:SS. Hours are not capped.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
