// Package silent provides a speech backend that plays nothing and only
// waits as long as the utterance would take to say. It backs headless
// servers and tests.
package silent

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wordreader/internal/domain"
	"wordreader/internal/speech"
)

func init() {
	speech.Engines.Register("silent", func(config map[string]string) (speech.Engine, error) {
		wpm := 175
		if v := config["words_per_minute"]; v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("silent words_per_minute: %w", err)
			}
			wpm = n
		}
		source := config["source_lang"]
		if source == "" {
			source = domain.DefaultSourceLang
		}
		target := config["target_lang"]
		if target == "" {
			target = domain.DefaultTargetLang
		}
		return New(wpm,
			domain.Voice{ID: "silent-" + strings.ToLower(source), Name: "Silent " + source, Lang: source},
			domain.Voice{ID: "silent-" + strings.ToLower(target), Name: "Silent " + target, Lang: target},
		), nil
	})
}

// Engine waits out the estimated duration of each utterance
type Engine struct {
	wpm    int
	voices []domain.Voice
}

// New creates a silent engine exposing the given voices
func New(wpm int, voices ...domain.Voice) *Engine {
	if wpm <= 0 {
		wpm = 175
	}
	return &Engine{wpm: wpm, voices: voices}
}

func (e *Engine) Name() string { return "silent" }

func (e *Engine) Voices(_ context.Context) ([]domain.Voice, error) {
	return append([]domain.Voice(nil), e.voices...), nil
}

// Speak sleeps for the estimated duration or until ctx is done
func (e *Engine) Speak(ctx context.Context, u speech.Utterance) error {
	d := e.Estimate(u)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Estimate returns how long the utterance would take to say at the
// engine's words per minute scaled by the utterance rate
func (e *Engine) Estimate(u speech.Utterance) time.Duration {
	words := len(strings.Fields(u.Text))
	if words == 0 {
		return 0
	}
	rate := u.Rate
	if rate <= 0 {
		rate = speech.DefaultRate
	}
	perMinute := float64(e.wpm) * rate
	return time.Duration(float64(words) * float64(time.Minute) / perMinute)
}
