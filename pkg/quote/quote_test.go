package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChainPrefersAdviceAPI(t *testing.T) {
	advice := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"slip":{"advice":"take breaks"}}`))
	}))
	defer advice.Close()

	c := NewChain()
	c.AdviceURL = advice.URL
	c.QuotableURL = "http://127.0.0.1:0" // unreachable, must not matter

	q := c.Fetch(context.Background())
	if q.Content != "take breaks" || q.Author != "Daily Wisdom" {
		t.Fatalf("unexpected quote %+v", q)
	}
	if q.Offline {
		t.Fatalf("remote quote flagged offline")
	}
}

func TestChainFallsBackToQuotable(t *testing.T) {
	quotable := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":"stay curious","author":"Someone"}`))
	}))
	defer quotable.Close()

	c := NewChain()
	c.AdviceURL = "http://127.0.0.1:0"
	c.QuotableURL = quotable.URL

	q := c.Fetch(context.Background())
	if q.Content != "stay curious" || q.Author != "Someone" {
		t.Fatalf("unexpected quote %+v", q)
	}
}

func TestChainFallsBackToLocal(t *testing.T) {
	c := NewChain()
	c.AdviceURL = "http://127.0.0.1:0"
	c.QuotableURL = "http://127.0.0.1:0"

	q := c.Fetch(context.Background())
	if !q.Offline {
		t.Fatalf("expected offline fallback, got %+v", q)
	}
	if q.Content == "" || q.Author == "" {
		t.Fatalf("local quote incomplete: %+v", q)
	}
}
