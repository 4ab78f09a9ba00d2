package espeak

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"wordreader/internal/domain"
	"wordreader/internal/speech"
)

// Speed limits accepted by espeak-ng, in words per minute
const (
	minWPM = 80
	maxWPM = 450
)

func init() {
	speech.Engines.Register("espeak", func(config map[string]string) (speech.Engine, error) {
		binaryPath := config["binary_path"]
		if binaryPath == "" {
			binaryPath = "espeak-ng"
		}
		wpm := 175
		if v := config["words_per_minute"]; v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("espeak words_per_minute: %w", err)
			}
			wpm = n
		}
		return New(binaryPath, wpm), nil
	})
}

// Engine speaks through the espeak-ng command line program
type Engine struct {
	binaryPath string
	wpm        int
}

// New creates an espeak-ng engine
func New(binaryPath string, wpm int) *Engine {
	return &Engine{binaryPath: binaryPath, wpm: wpm}
}

func (e *Engine) Name() string { return "espeak" }

// Speak plays the utterance on the default audio device and returns
// when espeak-ng exits
func (e *Engine) Speak(ctx context.Context, u speech.Utterance) error {
	return e.run(ctx, e.args(u), u.Text, io.Discard)
}

// Synthesize renders the utterance as a WAV stream
func (e *Engine) Synthesize(ctx context.Context, u speech.Utterance) (io.Reader, error) {
	var stdout bytes.Buffer
	if err := e.run(ctx, append(e.args(u), "--stdout"), u.Text, &stdout); err != nil {
		return nil, err
	}
	return &stdout, nil
}

// Voices lists installed voices via "espeak-ng --voices"
func (e *Engine) Voices(ctx context.Context) ([]domain.Voice, error) {
	var stdout bytes.Buffer
	if err := e.run(ctx, []string{"--voices"}, "", &stdout); err != nil {
		return nil, err
	}
	return ParseVoiceList(&stdout)
}

func (e *Engine) args(u speech.Utterance) []string {
	voice := u.Voice
	if voice == "" {
		voice = domain.LangPrefix(u.Lang)
	}
	args := []string{"-s", strconv.Itoa(e.speed(u.Rate))}
	if voice != "" {
		args = append(args, "-v", voice)
	}
	return append(args, "--stdin")
}

func (e *Engine) speed(rate float64) int {
	if rate <= 0 {
		rate = speech.DefaultRate
	}
	wpm := int(float64(e.wpm) * rate)
	if wpm < minWPM {
		return minWPM
	}
	if wpm > maxWPM {
		return maxWPM
	}
	return wpm
}

func (e *Engine) run(ctx context.Context, args []string, stdin string, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, e.binaryPath, args...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stdout = stdout

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("espeak-ng: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// ParseVoiceList reads the table printed by "espeak-ng --voices":
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  es              --/M      Spanish_(Spain)    roa/es
func ParseVoiceList(r io.Reader) ([]domain.Voice, error) {
	var voices []domain.Voice
	scanner := bufio.NewScanner(r)
	header := true
	for scanner.Scan() {
		if header {
			header = false
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		// the voice file tells apart voices sharing a language
		id := fields[1]
		if len(fields) >= 5 {
			id = fields[4]
		}
		voices = append(voices, domain.Voice{
			ID:   id,
			Name: strings.ReplaceAll(fields[3], "_", " "),
			Lang: fields[1],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read voice list: %w", err)
	}
	return voices, nil
}
