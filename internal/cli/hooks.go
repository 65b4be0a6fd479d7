package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pipegraph/pkg/observability"
)

// logHooks reports edit, render and cache events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnEdit(_ context.Context, op string, components int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("edit rejected", "op", op, "components", components, "error", err)
		return
	}
	h.logger.Debug("edit applied", "op", op, "components", components, "took", d)
}

func (h logHooks) OnRenderStart(_ context.Context, format string, components int) {
	h.logger.Debug("render start", "format", format, "components", components)
}

func (h logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.logger.Debug("render done", "format", format, "bytes", size, "took", d.Round(time.Millisecond), "error", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// registerHooks routes observability events to the CLI logger.
func (c *CLI) registerHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetEditHooks(h)
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
}
