// Package store persists the terminal's state as raw values under fixed
// keys, the way browser local storage would. Values are opaque bytes here;
// the session layer decides the encoding per key.
package store

import (
	"context"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Storage keys. Everything the terminal persists lives under one of these.
const (
	KeyAuth             = "terminalAuth"
	KeySessionStart     = "terminalSessionStart"
	KeyCommandCount     = "terminalCommandCount"
	KeyCommandFrequency = "terminalCommandFrequency"
	KeyCommandHistory   = "terminalCommandHistory"
	KeyAliases          = "terminalAliases"
	KeyData             = "terminalData"
)

// Persistence is the storage contract for terminal state. A missing key is
// reported via the bool, not an error; errors are reserved for real I/O
// failures.
type Persistence interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) []string
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}, nil
}

type persistence struct {
	d *diskv.Diskv
}

func (p *persistence) Get(_ context.Context, key string) ([]byte, bool, error) {
	if !p.d.Has(key) {
		return nil, false, nil
	}
	val, err := p.d.Read(key)
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (p *persistence) Set(_ context.Context, key string, value []byte) error {
	return p.d.Write(key, value)
}

func (p *persistence) Delete(_ context.Context, key string) error {
	if !p.d.Has(key) {
		return nil
	}
	return p.d.Erase(key)
}

func (p *persistence) Keys(ctx context.Context) []string {
	keys := make([]string, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if strings.HasPrefix(key, "terminal") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
