// Package cli implements the chartgrid command-line interface.
//
// This package provides commands for computing chart layouts from option
// files, hit-testing pixels against them, serving the layout engine over
// HTTP and exploring a chart interactively in the terminal. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a chart layout and write SVG or JSON
//   - pick: Resolve a pixel to the category and values under it
//   - serve: Run the HTTP API
//   - inspect: Move a pointer over the chart in a terminal UI
//   - cache: Manage the layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// routes the pipeline's observability hooks to the log. The HTTP server
// passes request-scoped loggers through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartgrid/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Listening on :8080 (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability
// =============================================================================

// logHooks writes pipeline and cache events to a logger at debug level.
type logHooks struct {
	logger *log.Logger
}

func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetLayoutHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnRefreshStart(ctx context.Context, series int) {
	h.logger.Debug("refresh started", "series", series)
}

func (h logHooks) OnRefreshComplete(ctx context.Context, cartesians, warnings int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("refresh failed", "error", err, "duration", dur)
		return
	}
	h.logger.Debug("refresh complete", "cartesians", cartesians, "warnings", warnings, "duration", dur)
}

func (h logHooks) OnRenderStart(ctx context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h logHooks) OnRenderComplete(ctx context.Context, formats []string, dur time.Duration, err error) {
	h.logger.Debug("render complete", "formats", formats, "duration", dur, "error", err)
}

func (h logHooks) OnPick(ctx context.Context, cartesian string, index int, dur time.Duration) {
	h.logger.Debug("pick", "cartesian", cartesian, "index", index, "duration", dur)
}

func (h logHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// OnRequest logs an HTTP request at info level.
func (h logHooks) OnRequest(ctx context.Context, requestID, method, path string, status int, dur time.Duration) {
	loggerFromContext(ctx).Info("request", "id", requestID, "method", method, "path", path, "status", status, "duration", dur)
}
