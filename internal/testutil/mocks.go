package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"wordreader/internal/domain"
	"wordreader/internal/speech"
)

// MockKeyValueRepository is a mock for KeyValueRepository
type MockKeyValueRepository struct {
	mock.Mock
}

func (m *MockKeyValueRepository) Get(key string) (string, bool, error) {
	args := m.Called(key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockKeyValueRepository) Set(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockKeyValueRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockKeyValueRepository) Keys(prefix string) ([]string, error) {
	args := m.Called(prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockRelay is a mock for the form relay client
type MockRelay struct {
	mock.Mock
}

func (m *MockRelay) Send(ctx context.Context, payload any) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockRelay) SendAsync(payload any) {
	m.Called(payload)
}

// RecordingEngine is a speech engine that remembers every utterance.
// When Block is set, Speak waits until it is closed.
type RecordingEngine struct {
	VoiceList []domain.Voice
	Block     chan struct{}

	mu     sync.Mutex
	spoken []speech.Utterance
}

// NewRecordingEngine creates an engine with one es-ES and one en-GB voice
func NewRecordingEngine() *RecordingEngine {
	return &RecordingEngine{
		VoiceList: []domain.Voice{
			{ID: "es", Name: "Monica", Lang: "es-ES"},
			{ID: "en-gb", Name: "Daniel", Lang: "en-GB"},
		},
	}
}

func (e *RecordingEngine) Name() string { return "recording" }

func (e *RecordingEngine) Voices(_ context.Context) ([]domain.Voice, error) {
	return e.VoiceList, nil
}

func (e *RecordingEngine) Speak(ctx context.Context, u speech.Utterance) error {
	e.mu.Lock()
	e.spoken = append(e.spoken, u)
	block := e.Block
	e.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Texts returns the spoken texts in order
func (e *RecordingEngine) Texts() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	texts := make([]string, 0, len(e.spoken))
	for _, u := range e.spoken {
		texts = append(texts, u.Text)
	}
	return texts
}

// Utterances returns a copy of everything spoken
func (e *RecordingEngine) Utterances() []speech.Utterance {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]speech.Utterance(nil), e.spoken...)
}
