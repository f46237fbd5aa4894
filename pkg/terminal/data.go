package terminal

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"tableflip.dev/mycmd/pkg/category"
	"tableflip.dev/mycmd/pkg/urlutil"
)

// Command grammars for the data commands. The quoted alternative comes
// first, so `addcat "two words"` wins over the bare-word form.
var (
	addCatPattern     = regexp.MustCompile(`addcat\s+"(.+?)"|addcat\s+(\w+)`)
	removeCatPattern  = regexp.MustCompile(`removecat\s+"(.+?)"|removecat\s+(\w+)`)
	addItemPattern    = regexp.MustCompile(`add\s+"(.+?)"\s+in\s+(\w+)`)
	removeIDPattern   = regexp.MustCompile(`remove\s+(\d+)\s+from\s+(\w+)`)
	removeNamePattern = regexp.MustCompile(`remove\s+"(.+?)"\s+from\s+(\w+)`)
)

// firstGroup returns whichever alternation group matched.
func firstGroup(m []string) string {
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

func (s *Session) handleCategories(_ context.Context, command string) bool {
	if command != "categories" && command != "cats" {
		return false
	}
	s.echo(command)
	names := s.cats.Names()
	if len(names) == 0 {
		s.push(text(`No categories found. Use 'add "item" in category' to create one.`))
		return true
	}
	s.push(text("Available categories:"))
	for i, name := range names {
		s.push(text(fmt.Sprintf("%d. %s (%d items)", i+1, name, s.cats.Len(name))))
	}
	return true
}

func (s *Session) handleAddCat(ctx context.Context, command string) bool {
	if !strings.HasPrefix(command, "addcat") {
		return false
	}
	s.echo(command)
	m := addCatPattern.FindStringSubmatch(command)
	if m == nil {
		s.push(errln(`Invalid syntax. Use: addcat "category" or addcat category`))
		return true
	}
	name := firstGroup(m)
	if err := s.cats.Create(name); err != nil {
		s.push(text(fmt.Sprintf("Category %q already exists.", name)))
		return true
	}
	s.saveData(ctx)
	s.push(text(fmt.Sprintf("Created category %q.", name)))
	return true
}

func (s *Session) handleRemoveCat(ctx context.Context, command string) bool {
	if !strings.HasPrefix(command, "removecat") {
		return false
	}
	s.echo(command)
	m := removeCatPattern.FindStringSubmatch(command)
	if m == nil {
		s.push(errln(`Invalid syntax. Use: removecat "category" or removecat category`))
		return true
	}
	name := firstGroup(m)
	err := s.cats.Delete(name)
	var notEmpty *category.NotEmptyError
	switch {
	case errors.Is(err, category.ErrNotFound):
		s.push(text(fmt.Sprintf("Category %q does not exist.", name)))
	case errors.As(err, &notEmpty):
		s.push(text(fmt.Sprintf("Cannot remove %q: contains %d items. Remove items first.", name, notEmpty.Count)))
	default:
		s.saveData(ctx)
		s.push(text(fmt.Sprintf("Removed category %q.", name)))
	}
	return true
}

func (s *Session) handleAdd(ctx context.Context, command string) bool {
	if !strings.HasPrefix(command, "add") {
		return false
	}
	s.echo(command)
	m := addItemPattern.FindStringSubmatch(command)
	if m == nil {
		s.push(errln(`Invalid add syntax. Use: add "item" in category`))
		return true
	}
	item, name := m[1], m[2]
	if urlutil.IsURL(item) {
		item = urlutil.Normalize(item)
	}
	if s.cats.IsDuplicate(name, item) {
		s.push(text(fmt.Sprintf("Duplicate detected! %q already exists in %s", item, name)))
		return true
	}
	s.cats.Append(name, item)
	s.saveData(ctx)
	itemType := "(stored as text)"
	if urlutil.IsURL(item) {
		itemType = "(detected as link)"
	}
	s.push(text(fmt.Sprintf("Added %q in %s %s", item, name, itemType)))
	return true
}

func (s *Session) handleRemove(ctx context.Context, command string) bool {
	if !strings.HasPrefix(command, "remove") {
		return false
	}
	s.echo(command)

	if m := removeIDPattern.FindStringSubmatch(command); m != nil {
		id, _ := strconv.Atoi(m[1])
		name := m[2]
		removed, err := s.cats.RemoveAt(name, id)
		var rangeErr *category.RangeError
		switch {
		case errors.Is(err, category.ErrNotFound):
			s.push(text(fmt.Sprintf("Category %q not found or is empty", name)))
		case errors.As(err, &rangeErr):
			s.push(text(fmt.Sprintf("Invalid ID. %s has %d items (use 1-%d)", name, rangeErr.Count, rangeErr.Count)))
		default:
			s.saveData(ctx)
			s.push(text(fmt.Sprintf("Removed item #%d: %q from %s", id, removed, name)))
		}
		return true
	}

	if m := removeNamePattern.FindStringSubmatch(command); m != nil {
		item, name := m[1], m[2]
		n, err := s.cats.RemoveMatching(name, item)
		switch {
		case errors.Is(err, category.ErrNotFound):
			s.push(text(fmt.Sprintf("Category %q not found", name)))
		case n == 0:
			s.push(text(fmt.Sprintf("Item %q not found in %s", item, name)))
		default:
			s.saveData(ctx)
			s.push(text(fmt.Sprintf("Removed %q from %s", item, name)))
		}
		return true
	}

	s.push(errln(`Invalid remove syntax. Use: remove "item" from category OR remove <number> from category`))
	return true
}

// handleCategoryDisplay treats input exactly matching a category name as a
// request to list its items. It must run after every reserved-command
// recognizer, since nothing stops a user naming a category "stats".
func (s *Session) handleCategoryDisplay(_ context.Context, command string) bool {
	items, ok := s.cats.Items(command)
	if !ok {
		return false
	}
	s.echo(command)
	if len(items) == 0 {
		s.push(text(fmt.Sprintf("Category %q is empty", command)))
		return true
	}
	s.push(text(fmt.Sprintf("Items in %q (%d):", command, len(items))))
	for i, item := range items {
		marker := "📝"
		if urlutil.IsURL(item) {
			marker = "🔗"
		}
		s.push(text(fmt.Sprintf("%d. %s %s", i+1, marker, item)))
	}
	return true
}
