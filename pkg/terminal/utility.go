package terminal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tableflip.dev/mycmd/pkg/timeutil"
	"tableflip.dev/mycmd/pkg/transfer"
)

func (s *Session) handleDebug(ctx context.Context, command string) bool {
	if command != "debug" {
		return false
	}
	s.echo(command)
	s.push(text("=== DEBUG INFO ==="))

	totalSize := 0
	if s.p != nil {
		for _, key := range s.p.Keys(ctx) {
			raw, ok := s.get(ctx, key)
			if !ok {
				continue
			}
			totalSize += len(raw)
			s.push(text(fmt.Sprintf("%s: %s", key, raw)))
		}
	}
	if data, err := json.MarshalIndent(s.aliases, "", "  "); err == nil {
		s.push(text(fmt.Sprintf("Aliases: %s", data)))
	}
	if data, err := json.MarshalIndent(s.cats, "", "  "); err == nil {
		s.push(text(fmt.Sprintf("Current data state: %s", data)))
	}
	s.push(text(fmt.Sprintf("Total storage size: %.2f KB", float64(totalSize)/1024)))
	return true
}

func (s *Session) handleStats(_ context.Context, command string) bool {
	if command != "stats" {
		return false
	}
	s.echo(command)
	s.push(
		text("=== SESSION STATISTICS ==="),
		text(fmt.Sprintf("Uptime: %s", timeutil.FormatElapsed(s.stats.Elapsed(s.now())))),
		text(fmt.Sprintf("Commands executed: %d", s.stats.Count)),
		text("Most used commands:"),
	)
	top := s.stats.Top(5)
	if len(top) == 0 {
		s.push(text("  No commands executed yet"))
		return true
	}
	for _, cc := range top {
		s.push(text(fmt.Sprintf("%s: %d times", cc.Command, cc.Count)))
	}
	return true
}

func (s *Session) handleUptime(_ context.Context, command string) bool {
	if command != "uptime" {
		return false
	}
	s.echo(command)
	s.push(
		text(fmt.Sprintf("Session uptime: %s", timeutil.FormatElapsed(s.stats.Elapsed(s.now())))),
		text(fmt.Sprintf("Started: %s", timeutil.Clock(s.stats.Start))),
	)
	return true
}

func (s *Session) handleGrep(_ context.Context, command string) bool {
	if !strings.HasPrefix(command, "grep") {
		return false
	}
	s.echo(command)
	term := strings.TrimSpace(command[len("grep"):])
	if term == "" {
		s.push(
			text("Usage: grep <search_term>"),
			text("Search through all stored data, categories, and aliases"),
		)
		return true
	}

	lower := strings.ToLower(term)
	var results []string
	for _, name := range s.cats.Names() {
		if strings.Contains(strings.ToLower(name), lower) {
			results = append(results, fmt.Sprintf("Category: %s", name))
		}
		items, _ := s.cats.Items(name)
		for i, item := range items {
			if strings.Contains(strings.ToLower(item), lower) {
				results = append(results, fmt.Sprintf("%s[%d]: %s", name, i+1, item))
			}
		}
	}
	for _, name := range s.aliases.Names() {
		url, _ := s.aliases.Resolve(name)
		if strings.Contains(strings.ToLower(name), lower) || strings.Contains(strings.ToLower(url), lower) {
			results = append(results, fmt.Sprintf("Alias: %s -> %s", name, url))
		}
	}
	// The grep itself was just recorded; searching it would always self-match.
	hist := s.history
	if n := len(hist); n > 0 && hist[n-1] == command {
		hist = hist[:n-1]
	}
	for i, cmd := range hist {
		if strings.Contains(strings.ToLower(cmd), lower) {
			results = append(results, fmt.Sprintf("History[%d]: %s", i+1, cmd))
		}
	}

	if len(results) == 0 {
		s.push(text(fmt.Sprintf("No results found for %q", term)))
		return true
	}
	s.push(text(fmt.Sprintf("Found %d result(s) for %q:", len(results), term)))
	for _, r := range results {
		s.push(text(r))
	}
	return true
}

// handleQuote appends the echo synchronously and resolves the quote chain
// in the background. The result lines go through deliver, so whoever owns
// the transcript (the UI event loop, usually) applies them.
func (s *Session) handleQuote(_ context.Context, command string) bool {
	if command != "quote" {
		return false
	}
	s.echo(command)
	s.push(text("Fetching quote from web..."))
	src := s.quotes
	go func() {
		q := src.Fetch(context.Background())
		lines := []Line{
			text(`"` + q.Content + `"`),
			text("— " + q.Author),
		}
		if q.Offline {
			lines = append(lines, text("(offline quote)"))
		}
		s.deliver(lines)
	}()
	return true
}

func (s *Session) handleExport(_ context.Context, command string) bool {
	if command != "export" {
		return false
	}
	s.echo(command)
	now := s.now()
	data, err := transfer.Encode(s.cats, s.aliases, now)
	if err != nil {
		s.push(errln(fmt.Sprintf("Export failed: %v", err)))
		return true
	}
	dir := s.exportDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, transfer.Filename(now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.push(errln(fmt.Sprintf("Export failed: %v", err)))
		return true
	}
	s.push(text(fmt.Sprintf("Exported %d categories and %d aliases to %s",
		len(s.cats.Names()), s.aliases.Len(), path)))
	return true
}

func (s *Session) handleImport(ctx context.Context, command string) bool {
	if !strings.HasPrefix(command, "import") {
		return false
	}
	s.echo(command)
	path := strings.TrimSpace(command[len("import"):])
	if path == "" {
		s.push(text("Usage: import <file>"))
		return true
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		s.push(errln(fmt.Sprintf("Import failed: %v", err)))
		return true
	}
	snap, err := transfer.Decode(raw)
	if errors.Is(err, transfer.ErrMissingData) {
		s.push(errln("Invalid import file: missing data.categories or data.aliases"))
		return true
	}
	if err != nil {
		s.push(errln(fmt.Sprintf("Import failed: %v", err)))
		return true
	}
	nc, na := transfer.Merge(snap, s.cats, s.aliases)
	s.saveData(ctx)
	s.saveAliases(ctx)
	s.push(text(fmt.Sprintf("Imported %d categories and %d aliases from %s", nc, na, path)))
	return true
}
