package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/observability"
	"github.com/matzehuels/chartgrid/pkg/pipeline"
)

const testChartJSON = `{
	"x_axis": [{"type": "category", "data": ["a", "b", "c"]}],
	"y_axis": [{"type": "value"}],
	"series": [
		{"name": "one", "type": "bar", "stack": "s", "data": [1, 2, 3]},
		{"name": "two", "type": "line", "data": [2, "-", 4]}
	]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, log.New(&bytes.Buffer{}))
	srv := httptest.NewServer(newServer(runner, log.New(&bytes.Buffer{})).routes())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing request id")
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body["status"] != "ok" {
		t.Errorf("body = %v, %v", body, err)
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("request id = %q", got)
	}
}

func TestHandleLayout(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/layout", `{"option": `+testChartJSON+`, "formats": ["svg", "json"], "ticks": true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body layoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Hash == "" || body.Layout == nil || len(body.Layout.Cartesians) != 1 {
		t.Fatalf("body = %+v", body)
	}
	if !strings.HasPrefix(body.Artifacts["svg"], "<svg") || !strings.Contains(body.Artifacts["json"], body.Hash) {
		t.Errorf("artifacts = %v", body.Artifacts)
	}
	if len(body.Layout.Series) != 2 || len(body.Layout.Series[0].Bars) != 3 {
		t.Errorf("series = %+v", body.Layout.Series)
	}
}

func TestHandlePick(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/pick", `{"option": `+testChartJSON+`, "x": 720, "y": 300}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body pickResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Results) != 1 {
		t.Fatalf("results = %+v", body.Results)
	}
	res := body.Results[0]
	if res.Category != "c" || res.Index != 2 || len(res.Items) != 2 || res.Items[1].Value != 4 {
		t.Errorf("result = %+v", res)
	}
}

func TestHandlerErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed body", "/v1/layout", `{`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", "/v1/layout", `{"opt": {}}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"missing option", "/v1/pick", `{"x": 1}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad format", "/v1/layout", `{"option": ` + testChartJSON + `, "formats": ["png"]}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"unknown cartesian", "/v1/pick", `{"option": ` + testChartJSON + `, "cartesian": "x9y9"}`, http.StatusNotFound, errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Error.Code != tt.code || body.Error.Message == "" {
				t.Errorf("error = %+v, want code %s", body.Error, tt.code)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidOption, http.StatusBadRequest},
		{errors.ErrCodeInvalidLength, http.StatusBadRequest},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeUnsupported, http.StatusUnprocessableEntity},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestRequestHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	h := &recordingHTTPHooks{}
	observability.SetHTTPHooks(h)

	srv := newTestServer(t)
	post(t, srv.URL+"/v1/pick", `{`)

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.statuses) != 1 || h.statuses[0] != http.StatusBadRequest || h.paths[0] != "/v1/pick" {
		t.Errorf("hooks saw %v %v", h.paths, h.statuses)
	}
}

type recordingHTTPHooks struct {
	mu       sync.Mutex
	paths    []string
	statuses []int
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, _, _, path string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paths = append(h.paths, path)
	h.statuses = append(h.statuses, status)
}
