package store

import (
	"context"
	"testing"
)

type testConfig struct {
	path string
}

func (c *testConfig) BasePath() string { return c.path }
func (c *testConfig) Prompt() string   { return "$ " }
func (c *testConfig) Secret() string   { return "zoro" }

func TestRoundTrip(t *testing.T) {
	p, err := Load(&testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := context.Background()

	if _, ok, err := p.Get(ctx, KeyAuth); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}

	if err := p.Set(ctx, KeyAuth, []byte("true")); err != nil {
		t.Fatalf("set: %v", err)
	}
	val, ok, err := p.Get(ctx, KeyAuth)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(val) != "true" {
		t.Fatalf("got %q", val)
	}

	if err := p.Delete(ctx, KeyAuth); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := p.Get(ctx, KeyAuth); ok {
		t.Fatalf("expected key gone")
	}
	if err := p.Delete(ctx, KeyAuth); err != nil {
		t.Fatalf("deleting a missing key should be a no-op, got %v", err)
	}
}

func TestKeysListsTerminalKeysSorted(t *testing.T) {
	p, err := Load(&testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := context.Background()

	_ = p.Set(ctx, KeyData, []byte("{}"))
	_ = p.Set(ctx, KeyAliases, []byte("{}"))
	_ = p.Set(ctx, "unrelated", []byte("x"))

	keys := p.Keys(ctx)
	if len(keys) != 2 || keys[0] != KeyAliases || keys[1] != KeyData {
		t.Fatalf("unexpected keys %v", keys)
	}
}
