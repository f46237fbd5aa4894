// Package category holds the named, ordered item lists the terminal stores.
// Both the category order and the item order inside each category are
// insertion order, and both survive the JSON round trip to disk.
package category

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/mycmd/pkg/urlutil"
)

var (
	// ErrExists is returned when creating a category that is already present.
	ErrExists = errors.New("category: already exists")
	// ErrNotFound is returned when the named category is absent.
	ErrNotFound = errors.New("category: not found")
)

// NotEmptyError rejects deleting a category that still holds items.
type NotEmptyError struct {
	Name  string
	Count int
}

func (e *NotEmptyError) Error() string {
	return fmt.Sprintf("category: %q contains %d items", e.Name, e.Count)
}

// RangeError rejects a 1-based item id outside [1, Count].
type RangeError struct {
	Name  string
	Count int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("category: %q has %d items (use 1-%d)", e.Name, e.Count, e.Count)
}

// Store maps category names to ordered item lists.
type Store struct {
	names []string
	items map[string][]string
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{items: make(map[string][]string)}
}

// Names returns category names in insertion order.
func (s *Store) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Has reports whether the named category exists, even when empty.
func (s *Store) Has(name string) bool {
	_, ok := s.items[name]
	return ok
}

// Items returns a copy of the named category's item list.
func (s *Store) Items(name string) ([]string, bool) {
	items, ok := s.items[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(items))
	copy(out, items)
	return out, true
}

// Len returns the item count for the named category, zero when absent.
func (s *Store) Len(name string) int {
	return len(s.items[name])
}

// Create adds an empty category.
func (s *Store) Create(name string) error {
	if s.Has(name) {
		return ErrExists
	}
	s.names = append(s.names, name)
	s.items[name] = []string{}
	return nil
}

// Ensure creates the category when absent.
func (s *Store) Ensure(name string) {
	if !s.Has(name) {
		s.names = append(s.names, name)
		s.items[name] = []string{}
	}
}

// Delete removes an empty category. Categories that still hold items must be
// emptied first.
func (s *Store) Delete(name string) error {
	items, ok := s.items[name]
	if !ok {
		return ErrNotFound
	}
	if len(items) > 0 {
		return &NotEmptyError{Name: name, Count: len(items)}
	}
	delete(s.items, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return nil
}

// Append adds an item to the end of the named category without any policy
// checks. Callers run IsDuplicate first.
func (s *Store) Append(name, item string) {
	s.Ensure(name)
	s.items[name] = append(s.items[name], item)
}

// Put replaces the named category's items wholesale, creating the category
// when absent. Used by import-merge, which overwrites same-named keys.
func (s *Store) Put(name string, items []string) {
	if !s.Has(name) {
		s.names = append(s.names, name)
	}
	if items == nil {
		items = []string{}
	}
	s.items[name] = items
}

// IsDuplicate applies the duplicate policy: link-classified strings compare
// by their normalized form, everything else as plain text, both
// case-insensitively. Absent categories hold no duplicates.
func (s *Store) IsDuplicate(name, item string) bool {
	items, ok := s.items[name]
	if !ok {
		return false
	}
	if urlutil.IsURL(item) {
		want := strings.ToLower(urlutil.Normalize(item))
		for _, existing := range items {
			have := existing
			if urlutil.IsURL(existing) {
				have = urlutil.Normalize(existing)
			}
			if want == strings.ToLower(have) {
				return true
			}
		}
		return false
	}
	for _, existing := range items {
		if strings.EqualFold(item, existing) {
			return true
		}
	}
	return false
}

// RemoveAt removes the item at the 1-based id, preserving the order of the
// rest, and returns the removed item's text.
func (s *Store) RemoveAt(name string, id int) (string, error) {
	items, ok := s.items[name]
	if !ok || len(items) == 0 {
		return "", ErrNotFound
	}
	if id < 1 || id > len(items) {
		return "", &RangeError{Name: name, Count: len(items)}
	}
	removed := items[id-1]
	s.items[name] = append(items[:id-1], items[id:]...)
	return removed, nil
}

// RemoveMatching removes every item whose normalized form equals the
// normalized item and reports how many were removed. Link normalization is
// applied to both sides for every category, so "a.com" removes
// "https://a.com" and vice versa.
func (s *Store) RemoveMatching(name, item string) (int, error) {
	items, ok := s.items[name]
	if !ok {
		return 0, ErrNotFound
	}
	want := item
	if urlutil.IsURL(item) {
		want = urlutil.Normalize(item)
	}
	kept := items[:0:0]
	removed := 0
	for _, existing := range items {
		have := existing
		if urlutil.IsURL(existing) {
			have = urlutil.Normalize(existing)
		}
		if have == want {
			removed++
			continue
		}
		kept = append(kept, existing)
	}
	s.items[name] = kept
	return removed, nil
}

// MarshalJSON renders the store as a JSON object in insertion order.
func (s *Store) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(s.items[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the key order it appears in.
func (s *Store) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("category: expected object, got %v", tok)
	}
	s.names = nil
	s.items = make(map[string][]string)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("category: expected string key, got %v", keyTok)
		}
		var items []string
		if err := dec.Decode(&items); err != nil {
			return err
		}
		if items == nil {
			items = []string{}
		}
		if _, dup := s.items[name]; !dup {
			s.names = append(s.names, name)
		}
		s.items[name] = items
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
