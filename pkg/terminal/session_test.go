package terminal

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/mycmd/pkg/quote"
	"tableflip.dev/mycmd/pkg/store"
)

type memStore struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{m: make(map[string][]byte)}
}

func (ms *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	v, ok := ms.m[key]
	return v, ok, nil
}

func (ms *memStore) Set(_ context.Context, key string, value []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.m[key] = value
	return nil
}

func (ms *memStore) Delete(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.m, key)
	return nil
}

func (ms *memStore) Keys(_ context.Context) []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	keys := make([]string, 0, len(ms.m))
	for k := range ms.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type recordingOpener struct {
	urls []string
	err  error
}

func (o *recordingOpener) Open(url string) error {
	o.urls = append(o.urls, url)
	return o.err
}

type fixedQuotes struct {
	q quote.Quote
}

func (f fixedQuotes) Fetch(context.Context) quote.Quote { return f.q }

// transcriptText flattens the transcript for substring assertions.
func transcriptText(s *Session) string {
	var b strings.Builder
	for _, line := range s.Lines() {
		b.WriteString(line.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func lastLine(t *testing.T, s *Session) Line {
	t.Helper()
	lines := s.Lines()
	if len(lines) == 0 {
		t.Fatalf("transcript is empty")
	}
	return lines[len(lines)-1]
}

// login drives the session past the auth gate.
func login(t *testing.T, s *Session) {
	t.Helper()
	s.Do(context.Background(), "zoro")
	if !s.Authenticated() {
		t.Fatalf("expected session to be authenticated after secret")
	}
}

func TestFirstRunSeedsCategories(t *testing.T) {
	s := NewSession(context.Background(), newMemStore(), nil)
	login(t, s)
	s.Do(context.Background(), "categories")
	out := transcriptText(s)
	for _, want := range []string{"1. links (0 items)", "2. projects (0 items)", "3. courses (0 items)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected seeded category line %q in:\n%s", want, out)
		}
	}
}

func TestCorruptDataFallsBackToDefaults(t *testing.T) {
	ms := newMemStore()
	ctx := context.Background()
	ms.Set(ctx, store.KeyData, []byte("not json"))
	ms.Set(ctx, store.KeyAliases, []byte("{broken"))
	ms.Set(ctx, store.KeyCommandCount, []byte("many"))

	s := NewSession(ctx, ms, nil)
	login(t, s)
	s.Do(ctx, "categories")
	if got := lastLine(t, s).Text; !strings.Contains(got, "No categories found") {
		t.Errorf("expected empty category list after corrupt data, got %q", got)
	}
	s.Do(ctx, "aliaslist")
	if got := lastLine(t, s).Text; got != "No aliases found." {
		t.Errorf("expected empty alias list after corrupt data, got %q", got)
	}
}

func TestStatePersistsAcrossSessions(t *testing.T) {
	ms := newMemStore()
	ctx := context.Background()

	s := NewSession(ctx, ms, nil)
	login(t, s)
	s.Do(ctx, `add "github.com" in links`)
	s.Do(ctx, `alias "https://news.ycombinator.com" as hn`)

	reloaded := NewSession(ctx, ms, nil)
	if !reloaded.Authenticated() {
		t.Fatalf("expected auth to survive a restart")
	}
	reloaded.Do(ctx, "links")
	if out := transcriptText(reloaded); !strings.Contains(out, "https://github.com") {
		t.Errorf("expected stored link after reload, got:\n%s", out)
	}
	reloaded.Do(ctx, "aliaslist")
	if out := transcriptText(reloaded); !strings.Contains(out, "hn -> https://news.ycombinator.com") {
		t.Errorf("expected stored alias after reload, got:\n%s", out)
	}
}

func TestPromptFollowsAuthState(t *testing.T) {
	s := NewSession(context.Background(), newMemStore(), nil)
	if got := s.Prompt(); got != "secret> " {
		t.Errorf("unauthenticated prompt = %q", got)
	}
	login(t, s)
	if got := s.Prompt(); got != "root@mycmd:~$ " {
		t.Errorf("authenticated prompt = %q", got)
	}
}

func TestSuggestCompletesCommands(t *testing.T) {
	s := NewSession(context.Background(), newMemStore(), nil)
	if got := s.Suggest("he"); got != "" {
		t.Errorf("expected no suggestions before auth, got %q", got)
	}
	login(t, s)
	tests := []struct {
		input, want string
	}{
		{"he", "lp"},
		{"alias", "list"},
		{"q", "uote"},
		{"zzz", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := s.Suggest(tt.input); got != tt.want {
			t.Errorf("Suggest(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLogoutResetsSession(t *testing.T) {
	ms := newMemStore()
	ctx := context.Background()
	s := NewSession(ctx, ms, nil)
	login(t, s)
	s.Do(ctx, "uptime")
	s.Do(ctx, "logout")

	if s.Authenticated() {
		t.Fatalf("expected logout to clear auth")
	}
	if _, ok, _ := ms.Get(ctx, store.KeyAuth); ok {
		t.Errorf("expected auth key deleted on logout")
	}
	lines := s.Lines()
	if len(lines) != 2 || !strings.Contains(lines[1].Text, "Session terminated") {
		t.Errorf("expected logged-out banner, got %v", lines)
	}
	if got := len(s.CommandHistory()); got != 0 {
		t.Errorf("expected empty history after logout, got %d entries", got)
	}
}

func TestHistoryDeduplicatesConsecutive(t *testing.T) {
	ctx := context.Background()
	s := NewSession(ctx, newMemStore(), nil)
	login(t, s)
	s.Do(ctx, "uptime")
	s.Do(ctx, "uptime")
	s.Do(ctx, "categories")
	s.Do(ctx, "uptime")

	got := s.CommandHistory()
	want := []string{"uptime", "categories", "uptime"}
	if len(got) != len(want) {
		t.Fatalf("history = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("history = %v, want %v", got, want)
		}
	}
}

func TestQuoteDeliversThroughNotify(t *testing.T) {
	ctx := context.Background()
	s := NewSession(ctx, newMemStore(), nil,
		WithQuotes(fixedQuotes{q: quote.Quote{Content: "Knowledge is power.", Author: "Francis Bacon", Offline: true}}))
	login(t, s)

	delivered := make(chan []Line, 1)
	s.SetNotify(func(lines []Line) { delivered <- lines })

	s.Do(ctx, "quote")
	if got := lastLine(t, s).Text; got != "Fetching quote from web..." {
		t.Fatalf("expected synchronous fetching notice, got %q", got)
	}

	select {
	case lines := <-delivered:
		if len(lines) != 3 {
			t.Fatalf("expected content, author, and offline marker, got %v", lines)
		}
		if lines[0].Text != `"Knowledge is power."` {
			t.Errorf("content line = %q", lines[0].Text)
		}
		if lines[1].Text != "— Francis Bacon" {
			t.Errorf("author line = %q", lines[1].Text)
		}
		if lines[2].Text != "(offline quote)" {
			t.Errorf("offline line = %q", lines[2].Text)
		}
	case <-time.After(time.Second):
		t.Fatalf("quote result never delivered")
	}
}

func TestStatsUsesInjectedClock(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)
	now := base
	s := NewSession(ctx, newMemStore(), nil, WithClock(func() time.Time { return now }))
	login(t, s)

	now = base.Add(1*time.Hour + 3*time.Minute + 9*time.Second)
	s.Do(ctx, "uptime")
	out := transcriptText(s)
	if !strings.Contains(out, "Session uptime: 1h 3m 9s") {
		t.Errorf("expected formatted uptime, got:\n%s", out)
	}
	if !strings.Contains(out, "Started: 3:04:05 PM") {
		t.Errorf("expected start clock, got:\n%s", out)
	}
}
