// Package terminal is the command core: a session owns all mutable state
// (categories, aliases, statistics, command history, the transcript) and a
// dispatcher routes each submitted line through an ordered recognizer chain.
// Every mutation is mirrored to persistent storage; the store never
// originates state.
package terminal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"tableflip.dev/mycmd/pkg/alias"
	"tableflip.dev/mycmd/pkg/category"
	"tableflip.dev/mycmd/pkg/quote"
	"tableflip.dev/mycmd/pkg/stats"
	"tableflip.dev/mycmd/pkg/store"
	"tableflip.dev/mycmd/pkg/urlutil"
)

const (
	defaultPrompt = "root@mycmd:~$ "
	defaultSecret = "zoro"
)

// Opener launches a URL in the user's browser when an alias is executed.
type Opener interface {
	Open(url string) error
}

// Session owns the terminal state for one user. All command processing goes
// through Do; concurrent callers are serialized by the session mutex.
type Session struct {
	mu sync.Mutex

	p      store.Persistence // nil disables mirroring
	prompt string
	secret string

	cats    *category.Store
	aliases *alias.Registry
	stats   *stats.Stats
	history []string

	transcript []Line
	authed     bool
	showHelp   bool

	opener    Opener
	quotes    quote.Source
	now       func() time.Time
	notify    func([]Line) // async delivery path, defaults to Append
	exportDir string
	chain     []recognizer
}

// Option customizes a Session.
type Option func(*Session)

// WithClock substitutes the time source. Tests use this to pin elapsed time.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithOpener substitutes the browser launcher.
func WithOpener(o Opener) Option {
	return func(s *Session) { s.opener = o }
}

// WithQuotes substitutes the quote source.
func WithQuotes(src quote.Source) Option {
	return func(s *Session) { s.quotes = src }
}

// WithExportDir sets where export files are written. Defaults to the
// working directory.
func WithExportDir(dir string) Option {
	return func(s *Session) { s.exportDir = dir }
}

// NewSession loads persisted state (substituting documented defaults for
// anything missing or corrupt) and seeds the welcome banner.
func NewSession(ctx context.Context, p store.Persistence, cfg store.Config, opts ...Option) *Session {
	s := &Session{
		p:       p,
		prompt:  defaultPrompt,
		secret:  defaultSecret,
		cats:    category.NewStore(),
		aliases: alias.NewRegistry(),
		now:     time.Now,
		opener:  execOpener{},
		quotes:  quote.NewChain(),
	}
	if cfg != nil {
		if cfg.Prompt() != "" {
			s.prompt = cfg.Prompt()
		}
		if cfg.Secret() != "" {
			s.secret = cfg.Secret()
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load(ctx)
	s.chain = s.buildChain()
	s.transcript = s.banner(false)
	return s
}

// banner returns the two-line welcome transcript.
func (s *Session) banner(loggedOut bool) []Line {
	second := "Enter the secret word to access the terminal..."
	switch {
	case loggedOut:
		second = "Session terminated. Enter the secret word to access the terminal..."
	case s.authed:
		second = "Welcome back, master."
	}
	return []Line{text("Welcome to MyCMD!"), text(second)}
}

// load pulls every persisted key, degrading to defaults on bad data.
func (s *Session) load(ctx context.Context) {
	start := s.now()
	if raw, ok := s.get(ctx, store.KeySessionStart); ok {
		if parsed, err := time.Parse(time.RFC3339, string(raw)); err == nil {
			start = parsed
		}
	} else {
		s.set(ctx, store.KeySessionStart, []byte(start.Format(time.RFC3339)))
	}
	s.stats = stats.New(start)

	if raw, ok := s.get(ctx, store.KeyAuth); ok && string(raw) == "true" {
		s.authed = true
		s.showHelp = true
	}

	if raw, ok := s.get(ctx, store.KeyCommandCount); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(string(raw))); err == nil && n >= 0 {
			s.stats.Count = n
		}
	}
	if raw, ok := s.get(ctx, store.KeyCommandFrequency); ok {
		view := s.stats.FrequencyView()
		if err := json.Unmarshal(raw, &view); err != nil {
			count := s.stats.Count
			s.stats.Reset(start)
			s.stats.Count = count
		}
	}
	if raw, ok := s.get(ctx, store.KeyCommandHistory); ok {
		var history []string
		if err := json.Unmarshal(raw, &history); err == nil {
			s.history = history
		}
	}
	if raw, ok := s.get(ctx, store.KeyAliases); ok {
		loaded := alias.NewRegistry()
		if err := json.Unmarshal(raw, loaded); err == nil {
			s.aliases = loaded
		}
	}
	if raw, ok := s.get(ctx, store.KeyData); ok {
		loaded := category.NewStore()
		if err := json.Unmarshal(raw, loaded); err == nil {
			s.cats = loaded
		}
	} else {
		// First run: the original tool shipped with three empty categories.
		for _, name := range []string{"links", "projects", "courses"} {
			s.cats.Ensure(name)
		}
		s.saveData(ctx)
	}
}

func (s *Session) get(ctx context.Context, key string) ([]byte, bool) {
	if s.p == nil {
		return nil, false
	}
	raw, ok, err := s.p.Get(ctx, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal: read %s: %v\n", key, err)
		return nil, false
	}
	return raw, ok
}

func (s *Session) set(ctx context.Context, key string, value []byte) {
	if s.p == nil {
		return
	}
	if err := s.p.Set(ctx, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "terminal: write %s: %v\n", key, err)
	}
}

func (s *Session) del(ctx context.Context, key string) {
	if s.p == nil {
		return
	}
	if err := s.p.Delete(ctx, key); err != nil {
		fmt.Fprintf(os.Stderr, "terminal: delete %s: %v\n", key, err)
	}
}

func (s *Session) saveData(ctx context.Context) {
	if data, err := json.Marshal(s.cats); err == nil {
		s.set(ctx, store.KeyData, data)
	}
}

func (s *Session) saveAliases(ctx context.Context) {
	if data, err := json.Marshal(s.aliases); err == nil {
		s.set(ctx, store.KeyAliases, data)
	}
}

func (s *Session) saveStats(ctx context.Context) {
	s.set(ctx, store.KeyCommandCount, []byte(strconv.Itoa(s.stats.Count)))
	if data, err := json.Marshal(s.stats.FrequencyView()); err == nil {
		s.set(ctx, store.KeyCommandFrequency, data)
	}
	s.set(ctx, store.KeySessionStart, []byte(s.stats.Start.Format(time.RFC3339)))
}

func (s *Session) saveHistory(ctx context.Context) {
	if data, err := json.Marshal(s.history); err == nil {
		s.set(ctx, store.KeyCommandHistory, data)
	}
}

// SetNotify routes asynchronously produced lines (the quote results) through
// the given function instead of appending directly. The UI points this at
// its message queue so the transcript keeps a single writer.
func (s *Session) SetNotify(fn func([]Line)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = fn
}

func (s *Session) deliver(lines []Line) {
	s.mu.Lock()
	fn := s.notify
	s.mu.Unlock()
	if fn != nil {
		fn(lines)
		return
	}
	s.Append(lines)
}

// Append adds lines to the transcript. It is the single entry point for
// deferred output.
func (s *Session) Append(lines []Line) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, lines...)
}

// Lines returns a copy of the transcript.
func (s *Session) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Authenticated reports whether the secret has been accepted.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authed
}

// HelpVisible reports whether the help panel toggle is on.
func (s *Session) HelpVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showHelp
}

// Prompt returns the shell prompt for the current auth state.
func (s *Session) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authed {
		return s.prompt
	}
	return "secret> "
}

// CommandHistory returns a copy of the recall history, oldest first.
func (s *Session) CommandHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Suggest returns the autocomplete suffix for the current partial input.
func (s *Session) Suggest(input string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return urlutil.Suggest(input, Commands(), s.authed)
}

// LoadContent reads just the category and alias stores from persistence,
// for batch export/import outside an interactive session.
func LoadContent(ctx context.Context, p store.Persistence) (*category.Store, *alias.Registry) {
	cats := category.NewStore()
	aliases := alias.NewRegistry()
	if raw, ok, err := p.Get(ctx, store.KeyData); err == nil && ok {
		loaded := category.NewStore()
		if err := json.Unmarshal(raw, loaded); err == nil {
			cats = loaded
		}
	}
	if raw, ok, err := p.Get(ctx, store.KeyAliases); err == nil && ok {
		loaded := alias.NewRegistry()
		if err := json.Unmarshal(raw, loaded); err == nil {
			aliases = loaded
		}
	}
	return cats, aliases
}

// SaveContent writes the category and alias stores back to persistence.
func SaveContent(ctx context.Context, p store.Persistence, cats *category.Store, aliases *alias.Registry) error {
	data, err := json.Marshal(cats)
	if err != nil {
		return err
	}
	if err := p.Set(ctx, store.KeyData, data); err != nil {
		return err
	}
	data, err = json.Marshal(aliases)
	if err != nil {
		return err
	}
	return p.Set(ctx, store.KeyAliases, data)
}
