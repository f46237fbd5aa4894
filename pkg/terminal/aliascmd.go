package terminal

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"tableflip.dev/mycmd/pkg/alias"
)

var aliasPattern = regexp.MustCompile(`alias\s+"(.+?)"\s+as\s+(\w+)`)

func (s *Session) handleAliasCreate(ctx context.Context, command string) bool {
	if !strings.HasPrefix(command, "alias ") {
		return false
	}
	s.echo(command)
	m := aliasPattern.FindStringSubmatch(command)
	if m == nil {
		s.push(errln(`Invalid alias syntax. Use: alias "url" as aliasname`))
		return true
	}
	url, name := m[1], m[2]
	stored, err := s.aliases.Create(name, url)
	if errors.Is(err, alias.ErrExists) {
		s.push(text(fmt.Sprintf("Alias %q already exists. Use removealias to remove it first.", name)))
		return true
	}
	s.saveAliases(ctx)
	s.push(text(fmt.Sprintf("Created alias %q for %s", name, stored)))
	return true
}

func (s *Session) handleAliasList(_ context.Context, command string) bool {
	if command != "aliaslist" {
		return false
	}
	s.echo(command)
	names := s.aliases.Names()
	if len(names) == 0 {
		s.push(text("No aliases found."))
		return true
	}
	s.push(text(fmt.Sprintf("Available aliases (%d):", len(names))))
	for i, name := range names {
		url, _ := s.aliases.Resolve(name)
		s.push(text(fmt.Sprintf("%d. %s -> %s", i+1, name, url)))
	}
	return true
}

func (s *Session) handleAliasRemove(ctx context.Context, command string) bool {
	if !strings.HasPrefix(command, "removealias ") {
		return false
	}
	s.echo(command)
	name := strings.TrimSpace(strings.TrimPrefix(command, "removealias "))
	if name == "" {
		s.push(text("Usage: removealias <aliasname>"))
		return true
	}
	url, err := s.aliases.Remove(name)
	if errors.Is(err, alias.ErrNotFound) {
		s.push(text(fmt.Sprintf("Alias %q not found.", name)))
		return true
	}
	s.saveAliases(ctx)
	s.push(text(fmt.Sprintf("Removed alias %q (%s)", name, url)))
	return true
}

// handleAliasExec opens the target of a bare alias name. Last in the chain
// before the unknown-command fallback, so aliases never shadow commands or
// categories.
func (s *Session) handleAliasExec(_ context.Context, command string) bool {
	url, ok := s.aliases.Resolve(command)
	if !ok {
		return false
	}
	s.echo(command)
	if err := s.opener.Open(url); err != nil {
		s.push(errln(fmt.Sprintf("Failed to open %s: %v", url, err)))
		return true
	}
	s.push(text(fmt.Sprintf("Opening %s in browser...", url)))
	return true
}
