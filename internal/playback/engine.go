package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"wordreader/internal/domain"
)

// ErrAlreadyPlaying is returned when a pass is started while another one runs
var ErrAlreadyPlaying = errors.New("playback already running")

// State of the engine
type State string

const (
	StateIdle      State = "idle"
	StateSpeaking  State = "speaking"
	StateAdvancing State = "advancing"
)

// Speaker speaks one piece of text and returns when it has finished
type Speaker interface {
	Speak(ctx context.Context, text, lang string) error
}

// Highlighter marks the cell being spoken. Highlight replaces any
// previous highlight.
type Highlighter interface {
	Highlight(c domain.Coordinate)
	ClearHighlight()
}

// Timer is started when the first pass begins
type Timer interface {
	Start() bool
}

// Status is a point-in-time view of the engine
type Status struct {
	State  State             `json:"state"`
	Active domain.Coordinate `json:"-"`
	Coord  string            `json:"coord,omitempty"`
	Pass   int               `json:"pass,omitempty"`
	Repeat int               `json:"repeat,omitempty"`
}

// Engine reads table snapshots aloud one cell at a time
type Engine struct {
	speaker     Speaker
	highlighter Highlighter
	timer       Timer
	locales     domain.Locales
	logger      *zap.Logger

	timerOnce sync.Once

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	status  Status
}

// NewEngine creates an idle engine. highlighter and timer may be nil.
func NewEngine(speaker Speaker, highlighter Highlighter, timer Timer, locales domain.Locales, logger *zap.Logger) *Engine {
	return &Engine{
		speaker:     speaker,
		highlighter: highlighter,
		timer:       timer,
		locales:     locales,
		logger:      logger,
		status:      Status{State: StateIdle},
	}
}

// Start begins a pass over rows in the background. The returned channel
// receives the pass result once and is then closed.
func (e *Engine) Start(ctx context.Context, rows [][]string, repeat int) (<-chan error, error) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil, ErrAlreadyPlaying
	}
	ctx, cancel := context.WithCancel(ctx)
	e.running = true
	e.cancel = cancel
	e.mu.Unlock()

	e.timerOnce.Do(func() {
		if e.timer != nil {
			e.timer.Start()
		}
	})

	done := make(chan error, 1)
	go func() {
		defer close(done)
		defer cancel()
		done <- e.play(ctx, NewSequence(rows, repeat, e.locales))
	}()
	return done, nil
}

// Run plays a full pass and returns when it ends
func (e *Engine) Run(ctx context.Context, rows [][]string, repeat int) error {
	done, err := e.Start(ctx, rows, repeat)
	if err != nil {
		return err
	}
	return <-done
}

// Stop cancels the running pass, if any
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
}

// Status returns the engine's current state and position
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Running reports whether a pass is in progress
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *Engine) play(ctx context.Context, seq *Sequence) error {
	defer e.finish()

	for {
		req, ok := seq.Next()
		if !ok {
			return nil
		}

		e.setStatus(Status{
			State:  StateSpeaking,
			Active: req.Coord,
			Coord:  req.Coord.String(),
			Pass:   req.Pass,
			Repeat: seq.Repeat(),
		})
		if e.highlighter != nil {
			e.highlighter.Highlight(req.Coord)
		}

		if err := e.speaker.Speak(ctx, req.Text, req.Lang); err != nil {
			if ctx.Err() != nil {
				e.logger.Info("Playback stopped", zap.String("coord", req.Coord.String()))
				return ctx.Err()
			}
			return fmt.Errorf("cell %s: %w", req.Coord, err)
		}

		e.mu.Lock()
		e.status.State = StateAdvancing
		e.mu.Unlock()
	}
}

func (e *Engine) setStatus(s Status) {
	e.mu.Lock()
	e.status = s
	e.mu.Unlock()
}

func (e *Engine) finish() {
	if e.highlighter != nil {
		e.highlighter.ClearHighlight()
	}
	e.mu.Lock()
	e.status = Status{State: StateIdle}
	e.running = false
	e.cancel = nil
	e.mu.Unlock()
}
