package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a structured logger at debug level, and
// failures at error level. It implements all hook interfaces, so one value
// can be registered for each category.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, diagram string, shapes int) {
	h.logger.Debug("layout start", "diagram", diagram, "shapes", shapes)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, diagram string, warnings int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("layout failed", "diagram", diagram, "error", err)
		return
	}
	h.logger.Debug("layout done", "diagram", diagram, "warnings", warnings, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, diagram, format string) {
	h.logger.Debug("render start", "diagram", diagram, "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, diagram, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("render failed", "diagram", diagram, "format", format, "error", err)
		return
	}
	h.logger.Debug("render done", "diagram", diagram, "format", format, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("request", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
