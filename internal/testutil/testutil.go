// Package testutil provides shared fixtures for exercising the decode,
// encode, and generate pipeline in tests.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/vk/blockscript/blocks/function"
	"github.com/vk/blockscript/blocks/keycheck"
	"github.com/vk/blockscript/blocks/parse"
	"github.com/vk/blockscript/blocks/rawcode"
	"github.com/vk/blockscript/blocks/request"
	"github.com/vk/blockscript/internal/ctxlog"
	"github.com/vk/blockscript/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// NewRegistry returns a registry populated with every builtin block kind,
// validated and ready for decode/generate tests.
func NewRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	modules := []registry.Module{
		&parse.Module{},
		&request.Module{},
		&function.Module{},
		&keycheck.Module{},
		&rawcode.Module{},
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	if err := reg.Validate(context.Background()); err != nil {
		t.Fatalf("builtin registry failed validation: %v", err)
	}
	return reg
}

// Ctx returns a context carrying a logger that writes into the returned
// buffer, so tests can assert on log output without touching the global
// logger.
func Ctx(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()
	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger), buf
}
