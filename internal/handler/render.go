package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"wordreader/internal/domain"
	"wordreader/internal/playback"
	"wordreader/internal/service"
	"wordreader/internal/speech"
)

// maxMessageLen keeps rendered tables under Telegram's 4096 char limit
const maxMessageLen = 4000

const genericError = "Something went wrong. Please try again later."

// userErrors are shown to the chat as they are
var userErrors = []error{
	domain.ErrNameRequired,
	domain.ErrTableNotFound,
	domain.ErrCredentialsRequired,
	domain.ErrUserExists,
	domain.ErrInvalidCredentials,
	domain.ErrNotLoggedIn,
	domain.ErrCellOutOfRange,
	playback.ErrAlreadyPlaying,
	speech.ErrUnknownVoice,
	speech.ErrInvalidRate,
	service.ErrSessionNotDelivered,
}

// noticeFor returns the reply for err and whether err is a known one
func noticeFor(err error) (string, bool) {
	for _, known := range userErrors {
		if errors.Is(err, known) {
			return "⚠️ " + capitalize(err.Error()), true
		}
	}
	return genericError, false
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// renderTable formats the table as numbered lines, marking the active cell
func renderTable(t *domain.Table, name string, active domain.Coordinate) string {
	var b strings.Builder

	title := "📋 Your table"
	if name != "" {
		title = fmt.Sprintf("📋 %s", name)
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Join(t.Header, " | "))
	b.WriteString("\n\n")

	if t.RowCount() == 0 {
		b.WriteString("Empty. Send a word to add a row.")
		return b.String()
	}

	numbers := t.RowNumbers()
	for r, row := range t.Rows {
		cells := make([]string, len(row))
		for c, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				cell = "·"
			}
			if active.Row == r+1 && active.Col == c+1 {
				cell = "▶ " + cell
			}
			cells[c] = cell
		}
		b.WriteString(fmt.Sprintf("%s. %s\n", numbers[r], strings.Join(cells, " — ")))
	}

	return truncate(b.String(), maxMessageLen)
}

// renderVoices lists source and target voices, marking the selected ones
func renderVoices(d *speech.Driver, locales domain.Locales) string {
	var b strings.Builder
	for _, tag := range []string{locales.Source, locales.Target} {
		selected := d.SelectedVoice(tag)
		b.WriteString(fmt.Sprintf("🗣 %s\n", tag))

		voices := d.Voices().ForLanguage(tag)
		if len(voices) == 0 {
			b.WriteString("  no voices available\n")
		}
		for _, v := range voices {
			mark := "  "
			if v.Name == selected {
				mark = "✓ "
			}
			b.WriteString(mark + v.Label() + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("Speed: " + speech.FormatRate(d.Rate()))
	return b.String()
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}
