package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"wordreader/internal/domain"
	"wordreader/internal/playback"
	"wordreader/internal/speech"
	"wordreader/internal/stopwatch"
)

// Deps are the collaborators shared by every workspace
type Deps struct {
	Library  *LibraryService
	Auth     *AuthService
	Sessions *SessionService
	Engine   speech.Engine
	// EngineFor, when set, gives each workspace its own engine (e.g. one
	// delivering audio to a chat) instead of Engine
	EngineFor func(workspaceID string) speech.Engine
	Voices    *speech.VoiceRegistry
	Locales   domain.Locales
	// Repeat is used when Play is called with a repeat below 1
	Repeat int
	Rate   float64
	// Voice names preselected for the source and target languages
	SourceVoice string
	TargetVoice string
	Logger      *zap.Logger
}

// Workspace is one independent drill session: a table, its playback,
// the study timer and the logged-in user.
type Workspace struct {
	id       string
	library  *LibraryService
	auth     *AuthService
	sessions *SessionService
	locales  domain.Locales
	logger   *zap.Logger

	driver    *speech.Driver
	engine    *playback.Engine
	stopwatch *stopwatch.Stopwatch

	mu        sync.RWMutex
	table     *domain.Table
	active    domain.Coordinate
	record    *domain.SessionRecord
	tableName string
	repeat    int
	lastErr   error
	onChange  func()
}

// NewWorkspace creates a workspace with an empty default table. The id
// scopes the logged-in marker; an empty id shares the global one.
func NewWorkspace(id string, deps Deps) *Workspace {
	logger := deps.Logger.With(zap.String("workspace", id))

	repeat := deps.Repeat
	if repeat < 1 {
		repeat = 1
	}

	ws := &Workspace{
		id:       id,
		library:  deps.Library,
		auth:     deps.Auth.Scoped(id),
		sessions: deps.Sessions,
		locales:  deps.Locales,
		logger:   logger,
		table:    domain.NewTable(),
		repeat:   repeat,
	}

	engine := deps.Engine
	if deps.EngineFor != nil {
		engine = deps.EngineFor(id)
	}
	ws.driver = speech.NewDriver(engine, deps.Voices, logger)
	if deps.Rate > 0 {
		if err := ws.driver.SetRate(deps.Rate); err != nil {
			logger.Warn("Ignoring configured rate", zap.Error(err))
		}
	}
	for tag, name := range map[string]string{deps.Locales.Source: deps.SourceVoice, deps.Locales.Target: deps.TargetVoice} {
		if name == "" {
			continue
		}
		if err := ws.driver.SelectVoice(tag, name); err != nil {
			logger.Warn("Ignoring configured voice", zap.String("lang", tag), zap.Error(err))
		}
	}

	ws.stopwatch = stopwatch.New(func(string) { ws.notify() })
	ws.engine = playback.NewEngine(ws.driver, ws, ws.stopwatch, deps.Locales, logger)
	return ws
}

// ID returns the workspace id
func (w *Workspace) ID() string {
	return w.id
}

// SetOnChange registers a callback fired after any visible change
// (table edit, highlight, timer tick, playback end)
func (w *Workspace) SetOnChange(fn func()) {
	w.mu.Lock()
	w.onChange = fn
	w.mu.Unlock()
}

func (w *Workspace) notify() {
	w.mu.RLock()
	fn := w.onChange
	w.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// Table returns a copy of the current table
func (w *Workspace) Table() *domain.Table {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.table.Clone()
}

// TableName returns the name the table was last saved or loaded under
func (w *Workspace) TableName() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tableName
}

// AddRow appends an empty row and returns its row number
func (w *Workspace) AddRow() int {
	w.mu.Lock()
	row := w.table.AddRow()
	w.mu.Unlock()
	w.notify()
	return row
}

// AddPair appends a row holding a source word and its translation
func (w *Workspace) AddPair(source, target string) (int, error) {
	source, target = strings.TrimSpace(source), strings.TrimSpace(target)
	if source == "" || target == "" {
		return 0, fmt.Errorf("word and translation cannot be empty")
	}

	w.mu.Lock()
	row := w.table.AddRow()
	_ = w.table.SetCell(domain.Coordinate{Row: row, Col: 1}, source)
	_ = w.table.SetCell(domain.Coordinate{Row: row, Col: 2}, target)
	w.mu.Unlock()
	w.notify()
	return row, nil
}

// AddColumn appends a column labelled label ("New Column" when empty)
func (w *Workspace) AddColumn(label string) {
	w.mu.Lock()
	w.table.AddColumn(label)
	w.mu.Unlock()
	w.notify()
}

// SetCell edits one cell
func (w *Workspace) SetCell(c domain.Coordinate, text string) error {
	w.mu.Lock()
	err := w.table.SetCell(c, text)
	w.mu.Unlock()
	if err != nil {
		return err
	}
	w.notify()
	return nil
}

// Import appends rows from the flat comma-separated format
func (w *Workspace) Import(text string) int {
	w.mu.Lock()
	n := w.table.Import(text)
	w.mu.Unlock()
	w.notify()
	return n
}

// Export renders the table in the flat comma-separated format
func (w *Workspace) Export() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.table.Export()
}

// SaveTable stores the current table under name
func (w *Workspace) SaveTable(name string) error {
	w.mu.RLock()
	rows := w.table.Snapshot()
	w.mu.RUnlock()

	if err := w.library.Save(name, rows); err != nil {
		return err
	}

	w.mu.Lock()
	w.tableName = strings.TrimSpace(name)
	w.mu.Unlock()
	w.logger.Info("Table saved", zap.String("name", name), zap.Int("rows", len(rows)))
	return nil
}

// LoadTable replaces the current rows with the table saved under name
func (w *Workspace) LoadTable(name string) error {
	rows, err := w.library.Load(name)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.table.Replace(rows)
	w.tableName = strings.TrimSpace(name)
	w.mu.Unlock()
	w.notify()
	w.logger.Info("Table loaded", zap.String("name", name), zap.Int("rows", len(rows)))
	return nil
}

// Tables lists saved table names
func (w *Workspace) Tables() ([]string, error) {
	return w.library.List()
}

// SignUp registers a new user
func (w *Workspace) SignUp(email, password string) error {
	return w.auth.SignUp(email, password)
}

// Login checks the credentials and opens a session record
func (w *Workspace) Login(email, password string) (domain.SessionRecord, error) {
	if err := w.auth.Login(email, password); err != nil {
		return domain.SessionRecord{}, err
	}

	rec := w.sessions.Start(strings.TrimSpace(email))
	w.mu.Lock()
	w.record = rec
	w.mu.Unlock()

	w.logger.Info("User logged in", zap.String("session", rec.ID))
	return *rec, nil
}

// CurrentUser returns the logged-in email, or "" when nobody is
func (w *Workspace) CurrentUser() string {
	email, ok, err := w.auth.CurrentUser()
	if err != nil {
		w.logger.Error("Failed to read current user", zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return email
}

// Logout posts the session record with a snapshot of the table and the
// elapsed time, then logs the user out. The user is logged out even when
// the record could not be delivered.
func (w *Workspace) Logout(ctx context.Context) error {
	email, ok, err := w.auth.CurrentUser()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotLoggedIn
	}

	w.mu.Lock()
	rec := w.record
	if rec == nil {
		// logged in elsewhere; there is no login time to report
		rec = &domain.SessionRecord{User: email, LoginLocation: domain.UnknownPlace}
	}
	rows := w.table.Snapshot()
	tableName := w.tableName
	w.mu.Unlock()

	sendErr := w.sessions.Finish(ctx, rec, tableName, rows, w.stopwatch.String())

	if _, err := w.auth.Logout(); err != nil && !errors.Is(err, domain.ErrNotLoggedIn) {
		return err
	}

	w.mu.Lock()
	w.record = nil
	w.mu.Unlock()

	w.logger.Info("User logged out", zap.Bool("delivered", sendErr == nil))
	return sendErr
}

// Play starts reading the table aloud in the background. repeat below 1
// uses the workspace default.
func (w *Workspace) Play(repeat int) error {
	w.mu.Lock()
	if repeat < 1 {
		repeat = w.repeat
	}
	rows := w.table.Snapshot()
	w.lastErr = nil
	w.mu.Unlock()

	done, err := w.engine.Start(context.Background(), rows, repeat)
	if err != nil {
		return err
	}

	w.logger.Info("Playback started", zap.Int("rows", len(rows)), zap.Int("repeat", repeat))
	go func() {
		err := <-done
		if err != nil && !errors.Is(err, context.Canceled) {
			w.logger.Error("Playback failed", zap.Error(err))
			w.mu.Lock()
			w.lastErr = err
			w.mu.Unlock()
		}
		w.notify()
	}()
	return nil
}

// SetRepeat changes the default repeat count
func (w *Workspace) SetRepeat(repeat int) error {
	if repeat < 1 {
		return fmt.Errorf("repeat must be at least 1 (got %d)", repeat)
	}
	w.mu.Lock()
	w.repeat = repeat
	w.mu.Unlock()
	return nil
}

// Repeat returns the default repeat count
func (w *Workspace) Repeat() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.repeat
}

// Pause holds playback before the next utterance
func (w *Workspace) Pause() {
	w.driver.Pause()
	w.notify()
}

// Resume releases a paused playback
func (w *Workspace) Resume() {
	w.driver.Resume()
	w.notify()
}

// Stop ends the running pass
func (w *Workspace) Stop() {
	w.engine.Stop()
	w.driver.Resume()
}

// Status reports playback state
func (w *Workspace) Status() playback.Status {
	return w.engine.Status()
}

// Paused reports whether playback is paused
func (w *Workspace) Paused() bool {
	return w.driver.Paused()
}

// LastError returns the error that ended the last pass, if any
func (w *Workspace) LastError() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastErr
}

// Driver exposes voice and rate selection
func (w *Workspace) Driver() *speech.Driver {
	return w.driver
}

// Locales returns the source and target language tags
func (w *Workspace) Locales() domain.Locales {
	return w.locales
}

// Timer returns the study timer text, e.g. "Time: 00:01:05"
func (w *Workspace) Timer() string {
	return w.stopwatch.Display()
}

// Highlight marks c as the cell being spoken, replacing any previous mark
func (w *Workspace) Highlight(c domain.Coordinate) {
	w.mu.Lock()
	w.active = c
	w.mu.Unlock()
	w.notify()
}

// ClearHighlight removes the mark
func (w *Workspace) ClearHighlight() {
	w.mu.Lock()
	w.active = domain.Coordinate{}
	w.mu.Unlock()
	w.notify()
}

// Active returns the highlighted cell; the zero coordinate means none
func (w *Workspace) Active() domain.Coordinate {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active
}

// Unload stops playback and the timer and posts the unload snapshot
// without waiting for delivery
func (w *Workspace) Unload() {
	w.engine.Stop()
	w.driver.Resume()
	w.stopwatch.Stop()

	snapshot := domain.UnloadSnapshot{
		UserName:  domain.UnknownUser,
		LoginTime: domain.UnknownTime,
		Timer:     w.stopwatch.Display(),
	}

	w.mu.RLock()
	if w.record != nil {
		snapshot.UserName = w.record.User
		snapshot.LoginTime = w.record.LoginTime
	}
	snapshot.TableHTML = w.table.HTML()
	w.mu.RUnlock()

	w.sessions.Unload(snapshot)
	w.logger.Info("Workspace unloaded")
}
