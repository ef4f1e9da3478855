package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/chartgrid/pkg/buildinfo"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/hittest"
	"github.com/matzehuels/chartgrid/pkg/layout"
	"github.com/matzehuels/chartgrid/pkg/observability"
	"github.com/matzehuels/chartgrid/pkg/option"
	"github.com/matzehuels/chartgrid/pkg/pipeline"
)

const (
	defaultAddr            = ":8080"
	defaultShutdownTimeout = 10 * time.Second

	// maxRequestBytes bounds request bodies.
	maxRequestBytes = 4 << 20
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
		flags   cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engine over HTTP",
		Long: `Serve the layout engine over HTTP.

Endpoints:
  POST /v1/layout   compute a layout and render artifacts
  POST /v1/pick     hit-test a pixel
  GET  /healthz     liveness and version

Use --redis-url to share the layout cache between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, timeout, flags)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().DurationVar(&timeout, "shutdown-timeout", defaultShutdownTimeout, "grace period for in-flight requests")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, timeout time.Duration, flags cacheFlags) error {
	prog := newProgress(c.Logger)
	runner, err := c.newRunner(ctx, flags)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	observability.SetHTTPHooks(logHooks{logger: c.Logger})

	printKeyValue("Address", addr)
	printKeyValue("Version", buildinfo.Version)
	if flags.redisURL != "" {
		printKeyValue("Cache", "redis")
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(runner, c.Logger).routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		prog.done("Listening on " + addr)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		c.Logger.Info("shutting down", "timeout", timeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// server holds the HTTP handlers.
type server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

func newServer(runner *pipeline.Runner, logger *log.Logger) *server {
	return &server{runner: runner, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestContext)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/pick", s.handlePick)
	})
	return r
}

// requestContext assigns a request id, attaches a request-scoped logger and
// reports the finished request to the HTTP hooks.
func (s *server) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := withLogger(r.Context(), s.logger.With("request_id", id))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnRequest(ctx, id, r.Method, r.URL.Path, status, time.Since(start))
	})
}

// =============================================================================
// Handlers
// =============================================================================

type layoutRequest struct {
	Option  json.RawMessage `json:"option"`
	Formats []string        `json:"formats,omitempty"`
	Ticks   bool            `json:"ticks,omitempty"`
	Labels  bool            `json:"labels,omitempty"`
	Columns bool            `json:"columns,omitempty"`
	Refresh bool            `json:"refresh,omitempty"`
}

type layoutResponse struct {
	Hash      string             `json:"hash"`
	Layout    *layout.Layout     `json:"layout"`
	Artifacts map[string]string  `json:"artifacts"`
	Cached    pipeline.CacheInfo `json:"cached"`
}

type pickRequest struct {
	Option    json.RawMessage `json:"option"`
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	Cartesian string          `json:"cartesian,omitempty"`
}

type pickResponse struct {
	Results []hittest.Result `json:"results"`
}

type errorResponse struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	chart, err := decodeOption(req.Option)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), chart, pipeline.Options{
		Formats: req.Formats,
		Ticks:   req.Ticks,
		Labels:  req.Labels,
		Columns: req.Columns,
		Refresh: req.Refresh,
		Logger:  loggerFromContext(r.Context()),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	artifacts := make(map[string]string, len(res.Artifacts))
	for f, data := range res.Artifacts {
		artifacts[f] = string(data)
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		Hash:      res.OptionHash,
		Layout:    res.Layout,
		Artifacts: artifacts,
		Cached:    res.CacheInfo,
	})
}

func (s *server) handlePick(w http.ResponseWriter, r *http.Request) {
	var req pickRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	chart, err := decodeOption(req.Option)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	results, err := s.runner.Pick(r.Context(), chart, req.Cartesian, req.X, req.Y)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pickResponse{Results: results})
}

// =============================================================================
// Helpers
// =============================================================================

func decodeRequest(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func decodeOption(raw json.RawMessage) (*option.Chart, error) {
	if len(raw) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "missing option")
	}
	return option.Decode(bytes.NewReader(raw), option.FormatJSON)
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidOption, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidLength, errors.ErrCodeInvalidPosition:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		loggerFromContext(r.Context()).Error("request failed", "error", err)
	}

	var body errorResponse
	body.Error.Code = code
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
