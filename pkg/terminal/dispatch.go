package terminal

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/mycmd/pkg/store"
)

// commandKeywords drives autocomplete. Order matters: the first keyword
// extending the typed prefix wins.
var commandKeywords = []string{
	"help", "clear", "debug", "logout", "stats", "uptime", "grep", "quote",
	"export", "import", "categories", "cats", "addcat", "removecat",
	"add", "remove", "alias", "aliaslist", "removealias",
}

// Commands returns the autocomplete keyword list for authenticated mode.
func Commands() []string {
	out := make([]string, len(commandKeywords))
	copy(out, commandKeywords)
	return out
}

// recognizer is one (predicate, handler) pair in the dispatch chain. The fn
// reports whether it consumed the command; the first consumer wins.
type recognizer struct {
	name string
	fn   func(ctx context.Context, command string) bool
}

// buildChain fixes the evaluation order for authenticated commands.
// Reserved commands come first, then exact category display, then bare
// alias execution, so a category or alias can never shadow a command, and
// an alias can never shadow a category.
func (s *Session) buildChain() []recognizer {
	return []recognizer{
		{"logout", s.handleLogout},
		{"help", s.handleHelp},
		{"clear", s.handleClear},
		{"debug", s.handleDebug},
		{"stats", s.handleStats},
		{"uptime", s.handleUptime},
		{"grep", s.handleGrep},
		{"quote", s.handleQuote},
		{"export", s.handleExport},
		{"import", s.handleImport},
		{"alias", s.handleAliasCreate},
		{"aliaslist", s.handleAliasList},
		{"removealias", s.handleAliasRemove},
		{"categories", s.handleCategories},
		{"addcat", s.handleAddCat},
		{"removecat", s.handleRemoveCat},
		{"add", s.handleAdd},
		{"remove", s.handleRemove},
		{"category-display", s.handleCategoryDisplay},
		{"alias-exec", s.handleAliasExec},
	}
}

// Do processes one submitted line to completion. Empty input is ignored.
// The authentication gate runs first; everything else is counted, recorded
// for recall, and routed through the recognizer chain.
func (s *Session) Do(ctx context.Context, input string) {
	command := strings.TrimSpace(input)
	if command == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authed {
		s.handleLogin(ctx, command)
		return
	}

	if command != s.secret {
		s.stats.Record(command)
		s.saveStats(ctx)
		if n := len(s.history); n == 0 || s.history[n-1] != command {
			s.history = append(s.history, command)
			s.saveHistory(ctx)
		}
	}

	for _, r := range s.chain {
		if r.fn(ctx, command) {
			return
		}
	}

	s.echo(command)
	s.push(errln(fmt.Sprintf("Unknown command: %s. Type 'help' for options.", command)))
}

// push appends lines while the session lock is held.
func (s *Session) push(lines ...Line) {
	s.transcript = append(s.transcript, lines...)
}

func (s *Session) echo(command string) {
	s.push(Line{Kind: KindCommand, Prompt: s.prompt, Text: command})
}

func (s *Session) handleLogin(ctx context.Context, command string) {
	if command != s.secret {
		s.push(text("This is not yours, leave it at once!"))
		return
	}
	s.authed = true
	s.showHelp = true
	s.set(ctx, store.KeyAuth, []byte("true"))
	s.push(text("Access granted. Welcome, master."), text("Type 'help' to see available commands."))
}

func (s *Session) handleLogout(ctx context.Context, command string) bool {
	if command != "logout" {
		return false
	}
	s.authed = false
	s.showHelp = false
	s.del(ctx, store.KeyAuth)
	s.stats.Reset(s.now())
	s.history = nil
	s.saveStats(ctx)
	s.saveHistory(ctx)
	s.transcript = s.banner(true)
	return true
}

func (s *Session) handleHelp(_ context.Context, command string) bool {
	if command != "help" {
		return false
	}
	s.showHelp = !s.showHelp
	s.echo(command)
	if s.showHelp {
		s.push(text("Help panel shown"))
	} else {
		s.push(text("Help panel hidden"))
	}
	return true
}

func (s *Session) handleClear(_ context.Context, command string) bool {
	if command != "clear" {
		return false
	}
	s.transcript = nil
	return true
}
