package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"wordreader/internal/speech"
)

// Command is one parsed ":" command line
type Command struct {
	Name string
	// Args are the whitespace-separated words after the name
	Args []string
	// Rest is everything after the name, trimmed; names and imports keep
	// their inner spaces
	Rest string
}

var commandNames = map[string]bool{
	"save": true, "load": true, "import": true, "export": true,
	"signup": true, "login": true, "logout": true,
	"repeat": true, "rate": true, "voice": true, "tables": true,
	"help": true, "quit": true, "q": true,
}

// ParseCommand parses a command line such as "save greetings"
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), ":"))
	if line == "" {
		return Command{}, fmt.Errorf("empty command")
	}

	name, rest, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	if !commandNames[name] {
		return Command{}, fmt.Errorf("unknown command %q, try :help", name)
	}

	rest = strings.TrimSpace(rest)
	return Command{Name: name, Args: strings.Fields(rest), Rest: rest}, nil
}

const helpText = "save|load <name> · import <a,b,...> · export · tables · signup|login <email> <password> · logout · repeat <n> · rate <x> · voice <source|target> [name] · q"

func (m Model) execute(line string) (tea.Model, tea.Cmd) {
	cmd, err := ParseCommand(line)
	if err != nil {
		m.fail(err)
		return m, nil
	}

	switch cmd.Name {
	case "q", "quit":
		return m, tea.Quit
	case "help":
		m.notice(helpText)
	case "save":
		if err := m.ws.SaveTable(cmd.Rest); err != nil {
			m.fail(err)
			break
		}
		m.notice(fmt.Sprintf("Table saved as %q", cmd.Rest))
	case "load":
		if err := m.ws.LoadTable(cmd.Rest); err != nil {
			m.fail(err)
			break
		}
		m.clampCursor()
		m.notice(fmt.Sprintf("Table %q loaded", cmd.Rest))
	case "tables":
		names, err := m.ws.Tables()
		if err != nil {
			m.fail(err)
			break
		}
		if len(names) == 0 {
			m.notice("No saved tables")
			break
		}
		m.notice("Saved tables: " + strings.Join(names, ", "))
	case "import":
		n := m.ws.Import(cmd.Rest)
		m.clampCursor()
		m.notice(fmt.Sprintf("Imported %d rows", n))
	case "export":
		m.notice("Export: " + m.ws.Export())
	case "signup":
		if len(cmd.Args) != 2 {
			m.fail(fmt.Errorf("usage: signup <email> <password>"))
			break
		}
		if err := m.ws.SignUp(cmd.Args[0], cmd.Args[1]); err != nil {
			m.fail(err)
			break
		}
		m.notice("Sign up successful! Please log in.")
	case "login":
		if len(cmd.Args) != 2 {
			m.fail(fmt.Errorf("usage: login <email> <password>"))
			break
		}
		rec, err := m.ws.Login(cmd.Args[0], cmd.Args[1])
		if err != nil {
			m.fail(err)
			break
		}
		m.notice("Logged in as " + rec.User)
	case "logout":
		m.notice("Logging out...")
		return m, logout(m.ws)
	case "repeat":
		n, err := strconv.Atoi(cmd.Rest)
		if err != nil {
			m.fail(fmt.Errorf("usage: repeat <n>"))
			break
		}
		if err := m.ws.SetRepeat(n); err != nil {
			m.fail(err)
			break
		}
		m.notice(fmt.Sprintf("Each row is read %d times", n))
	case "rate":
		rate, err := strconv.ParseFloat(cmd.Rest, 64)
		if err != nil {
			m.fail(fmt.Errorf("usage: rate <x>, e.g. rate 1.5"))
			break
		}
		if err := m.ws.Driver().SetRate(rate); err != nil {
			m.fail(err)
			break
		}
		m.notice("Speed " + speech.FormatRate(rate))
	case "voice":
		m.selectVoice(cmd)
	}
	return m, nil
}

// selectVoice handles "voice <source|target|tag> [name]"; without a name
// it lists the voices of that language
func (m *Model) selectVoice(cmd Command) {
	if len(cmd.Args) == 0 {
		m.fail(fmt.Errorf("usage: voice <source|target> [name]"))
		return
	}

	locales := m.ws.Locales()
	tag := cmd.Args[0]
	switch strings.ToLower(tag) {
	case "source":
		tag = locales.Source
	case "target":
		tag = locales.Target
	}

	driver := m.ws.Driver()
	if len(cmd.Args) == 1 {
		var labels []string
		for _, v := range driver.Voices().ForLanguage(tag) {
			labels = append(labels, v.Label())
		}
		if len(labels) == 0 {
			m.notice("No voices for " + tag)
			return
		}
		m.notice(fmt.Sprintf("Voices for %s: %s (using %s)", tag, strings.Join(labels, ", "), driver.SelectedVoice(tag)))
		return
	}

	name := strings.Join(cmd.Args[1:], " ")
	if err := driver.SelectVoice(tag, name); err != nil {
		m.fail(err)
		return
	}
	m.notice(fmt.Sprintf("Voice for %s: %s", tag, name))
}
