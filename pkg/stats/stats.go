// Package stats tracks per-session usage: start time, total command count,
// and a per-command frequency table kept in first-encounter order so that
// top-N listings break ties deterministically.
package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// CommandCount pairs a command string with how often it was run.
type CommandCount struct {
	Command string
	Count   int
}

// Stats holds the session counters.
type Stats struct {
	Start time.Time
	Count int

	order []string
	freq  map[string]int
}

// New returns Stats starting at the given time.
func New(start time.Time) *Stats {
	return &Stats{Start: start, freq: make(map[string]int)}
}

// Record counts one execution of the raw command string.
func (s *Stats) Record(command string) {
	s.Count++
	if _, ok := s.freq[command]; !ok {
		s.order = append(s.order, command)
	}
	s.freq[command]++
}

// Top returns up to n commands sorted by descending count. Ties keep the
// order the commands were first seen in.
func (s *Stats) Top(n int) []CommandCount {
	out := make([]CommandCount, 0, len(s.order))
	for _, cmd := range s.order {
		out = append(out, CommandCount{Command: cmd, Count: s.freq[cmd]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Elapsed returns the wall-clock time since the session started.
func (s *Stats) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.Start)
}

// Reset clears the counters and restarts the session clock. Used on logout.
func (s *Stats) Reset(now time.Time) {
	s.Start = now
	s.Count = 0
	s.order = nil
	s.freq = make(map[string]int)
}

// Frequency is the persisted form of the frequency table. It marshals as a
// JSON object in first-encounter order.
type Frequency struct {
	s *Stats
}

// FrequencyView exposes the table for persistence.
func (s *Stats) FrequencyView() Frequency {
	return Frequency{s: s}
}

// MarshalJSON renders the table in first-encounter order.
func (f Frequency) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cmd := range f.s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cmd)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", f.s.freq[cmd])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the key order it appears in.
func (f Frequency) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("stats: expected object, got %v", tok)
	}
	f.s.order = nil
	f.s.freq = make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		cmd, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("stats: expected string key, got %v", keyTok)
		}
		var count int
		if err := dec.Decode(&count); err != nil {
			return err
		}
		if _, dup := f.s.freq[cmd]; !dup {
			f.s.order = append(f.s.order, cmd)
		}
		f.s.freq[cmd] = count
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
