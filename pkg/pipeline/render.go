package pipeline

import (
	"github.com/matzehuels/chartgrid/pkg/buildinfo"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/layout"
	"github.com/matzehuels/chartgrid/pkg/sink"
)

// Render generates output artifacts in the requested formats. source is
// the option hash recorded in JSON output; it may be empty.
func Render(l *layout.Layout, source string, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, buildSVGOptions(opts)...)
		case FormatJSON:
			data, err = sink.RenderJSON(l, sink.WithJSONSource(source), sink.WithJSONVersion(buildinfo.Version))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Ticks {
		out = append(out, sink.WithTicks())
	}
	if opts.Labels {
		out = append(out, sink.WithLabels())
	}
	if opts.Columns {
		out = append(out, sink.WithColumns())
	}
	return out
}
