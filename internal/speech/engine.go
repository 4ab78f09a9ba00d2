package speech

import (
	"context"
	"io"

	"wordreader/internal/domain"
)

// Utterance is one request to speak a piece of text
type Utterance struct {
	Text string
	// Lang is the BCP 47 tag the text is written in
	Lang string
	// Voice is the backend voice ID; empty means the backend default for Lang
	Voice string
	// Rate multiplies the backend's normal speaking speed
	Rate float64
}

// Engine speaks utterances through a platform speech backend.
type Engine interface {
	Name() string
	// Voices lists the voices the backend can use, in platform order.
	Voices(ctx context.Context) ([]domain.Voice, error)
	// Speak blocks until the utterance has finished playing.
	Speak(ctx context.Context, u Utterance) error
}

// Synthesizer is implemented by engines that can render an utterance to
// audio instead of playing it.
type Synthesizer interface {
	Synthesize(ctx context.Context, u Utterance) (io.Reader, error)
}
