package alias

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCreateNormalizesTarget(t *testing.T) {
	r := NewRegistry()
	url, err := r.Create("tw", "twitter.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if url != "https://twitter.com" {
		t.Fatalf("expected https target, got %q", url)
	}
	if got, _ := r.Resolve("tw"); got != "https://twitter.com" {
		t.Fatalf("resolve returned %q", got)
	}

	url, err = r.Create("gh", "http://github.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if url != "http://github.com" {
		t.Fatalf("http prefix should be kept verbatim, got %q", url)
	}

	if _, err := r.Create("tw", "x.com"); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Create("tw", "twitter.com"); err != nil {
		t.Fatalf("create: %v", err)
	}
	url, err := r.Remove("tw")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if url != "https://twitter.com" {
		t.Fatalf("expected removed target, got %q", url)
	}
	if _, err := r.Remove("tw"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry")
	}
}

func TestJSONRoundTripPreservesOrder(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Create("zz", "z.com")
	_, _ = r.Create("aa", "a.com")

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	loaded := NewRegistry()
	if err := json.Unmarshal(data, loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	names := loaded.Names()
	if len(names) != 2 || names[0] != "zz" || names[1] != "aa" {
		t.Fatalf("order lost: %v", names)
	}
	if url, _ := loaded.Resolve("aa"); url != "https://a.com" {
		t.Fatalf("target lost: %q", url)
	}
}
