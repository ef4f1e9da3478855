package sink

import (
	"encoding/json"

	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	source  string
	version string
}

// WithJSONSource records the hash of the option the layout was built from.
func WithJSONSource(hash string) JSONOption { return func(r *jsonRenderer) { r.source = hash } }

// WithJSONVersion records the engine version in the output.
func WithJSONVersion(v string) JSONOption { return func(r *jsonRenderer) { r.version = v } }

type jsonOutput struct {
	Version string `json:"version,omitempty"`
	Source  string `json:"source,omitempty"`
	*layout.Layout
}

// RenderJSON exports l as a pretty-printed JSON document. The layout
// fields sit at the top level, so the output decodes with
// [layout.Unmarshal]. It does not modify l and is safe to call
// concurrently.
func RenderJSON(l *layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	data, err := json.MarshalIndent(jsonOutput{Version: r.version, Source: r.source, Layout: l}, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render json")
	}
	return data, nil
}
