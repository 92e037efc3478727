package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, errors at warn.
// It implements PipelineHooks, CacheHooks and HTTPHooks.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger, or to the default logger
// when logger is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnRunStart(_ context.Context, runID string, vertices, edges int) {
	h.logger.Debug("run started", "run", runID, "vertices", vertices, "edges", edges)
}

func (h *LogHooks) OnRunComplete(_ context.Context, runID string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("run failed", "run", runID, "duration", d, "err", err)
		return
	}
	h.logger.Debug("run complete", "run", runID, "duration", d)
}

func (h *LogHooks) OnStageStart(_ context.Context, stage string, vertices int) {
	h.logger.Debug("stage started", "stage", stage, "vertices", vertices)
}

func (h *LogHooks) OnStageComplete(_ context.Context, stage string, reversed int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("stage failed", "stage", stage, "duration", d, "err", err)
		return
	}
	h.logger.Debug("stage complete", "stage", stage, "reversed", reversed, "duration", d)
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

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
