package speech

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"wordreader/internal/domain"
)

// Rate bounds
const (
	DefaultRate = 1.0
	MaxRate     = 10.0
)

var (
	ErrUnknownVoice = errors.New("unknown voice")
	ErrInvalidRate  = errors.New("rate must be greater than 0 and at most 10")
)

// Driver speaks text through an engine with the user's voice and rate
// choices applied. It can be paused between utterances.
type Driver struct {
	engine Engine
	voices *VoiceRegistry
	logger *zap.Logger
	gate   PauseGate

	mu       sync.RWMutex
	rate     float64
	selected map[string]string // language prefix -> voice name
}

// NewDriver creates a driver speaking through engine
func NewDriver(engine Engine, voices *VoiceRegistry, logger *zap.Logger) *Driver {
	return &Driver{
		engine:   engine,
		voices:   voices,
		logger:   logger,
		rate:     DefaultRate,
		selected: make(map[string]string),
	}
}

// Speak waits for the pause gate to open, then speaks text in the given
// language and returns once the engine reports the utterance finished.
// Empty text is handed to the engine unchanged.
func (d *Driver) Speak(ctx context.Context, text, lang string) error {
	if err := d.gate.Wait(ctx); err != nil {
		return err
	}

	u := Utterance{
		Text: text,
		Lang: lang,
		Rate: d.Rate(),
	}
	if v, ok := d.voices.Find(d.SelectedVoice(lang)); ok {
		u.Voice = v.ID
	}

	if err := d.engine.Speak(ctx, u); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		d.logger.Error("Failed to speak",
			zap.String("engine", d.engine.Name()),
			zap.String("lang", lang),
			zap.Error(err),
		)
		return fmt.Errorf("speak %q: %w", text, err)
	}
	return nil
}

// SelectVoice picks the voice used for tag's language. An empty name
// restores the default (first voice of the language).
func (d *Driver) SelectVoice(tag, name string) error {
	prefix := domain.LangPrefix(tag)

	d.mu.Lock()
	defer d.mu.Unlock()

	if name == "" {
		delete(d.selected, prefix)
		return nil
	}
	if _, ok := d.voices.Find(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVoice, name)
	}
	d.selected[prefix] = name
	return nil
}

// SelectedVoice returns the voice name used for tag's language, or ""
// when the language has no voices
func (d *Driver) SelectedVoice(tag string) string {
	prefix := domain.LangPrefix(tag)

	d.mu.RLock()
	name, ok := d.selected[prefix]
	d.mu.RUnlock()
	if ok {
		return name
	}

	if voices := d.voices.ForLanguage(tag); len(voices) > 0 {
		return voices[0].Name
	}
	return ""
}

// SetRate changes the speaking rate multiplier
func (d *Driver) SetRate(rate float64) error {
	if rate <= 0 || rate > MaxRate {
		return fmt.Errorf("%w (got %v)", ErrInvalidRate, rate)
	}
	d.mu.Lock()
	d.rate = rate
	d.mu.Unlock()
	return nil
}

// FormatRate renders a rate the way the status bar shows it, e.g. "1.5x"
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64) + "x"
}

// Rate returns the speaking rate multiplier
func (d *Driver) Rate() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.rate
}

func (d *Driver) Pause()       { d.gate.Pause() }
func (d *Driver) Resume()      { d.gate.Resume() }
func (d *Driver) Paused() bool { return d.gate.Paused() }

// Voices returns the registry the driver resolves names against
func (d *Driver) Voices() *VoiceRegistry {
	return d.voices
}

// Engine returns the backend
func (d *Driver) Engine() Engine {
	return d.engine
}
