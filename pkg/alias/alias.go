// Package alias maps short names to fully qualified URLs. Names are unique
// and listing order is creation order, preserved through the JSON round trip.
package alias

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExists is returned when creating over an existing alias name.
	ErrExists = errors.New("alias: already exists")
	// ErrNotFound is returned when the alias name is absent.
	ErrNotFound = errors.New("alias: not found")
)

// Registry maps alias names to target URLs.
type Registry struct {
	names   []string
	targets map[string]string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{targets: make(map[string]string)}
}

// Names returns alias names in creation order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of aliases.
func (r *Registry) Len() int {
	return len(r.names)
}

// Resolve returns the target URL for the alias name.
func (r *Registry) Resolve(name string) (string, bool) {
	url, ok := r.targets[name]
	return url, ok
}

// Create stores an alias. The URL is qualified with https:// unless it
// already starts with the literal "http" prefix, matching how the original
// tool treated alias targets (a looser check than link classification).
func (r *Registry) Create(name, url string) (string, error) {
	if _, ok := r.targets[name]; ok {
		return "", ErrExists
	}
	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}
	r.names = append(r.names, name)
	r.targets[name] = url
	return url, nil
}

// Put stores the target verbatim, overwriting any existing alias of the same
// name. Used by import-merge.
func (r *Registry) Put(name, url string) {
	if _, ok := r.targets[name]; !ok {
		r.names = append(r.names, name)
	}
	r.targets[name] = url
}

// Remove deletes the alias and returns the target URL it pointed at.
func (r *Registry) Remove(name string) (string, error) {
	url, ok := r.targets[name]
	if !ok {
		return "", ErrNotFound
	}
	delete(r.targets, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
	return url, nil
}

// MarshalJSON renders the registry as a JSON object in creation order.
func (r *Registry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.targets[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the key order it appears in.
func (r *Registry) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("alias: expected object, got %v", tok)
	}
	r.names = nil
	r.targets = make(map[string]string)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("alias: expected string key, got %v", keyTok)
		}
		var url string
		if err := dec.Decode(&url); err != nil {
			return err
		}
		if _, dup := r.targets[name]; !dup {
			r.names = append(r.names, name)
		}
		r.targets[name] = url
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
