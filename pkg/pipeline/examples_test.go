package pipeline

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartgrid/pkg/option"
)

// TestExamples lays out every chart under examples/.
func TestExamples(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no examples found")
	}

	r := NewRunner(nil, nil, log.New(&bytes.Buffer{}))
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			chart, err := option.Load(path)
			if err != nil {
				t.Fatal(err)
			}
			res, err := r.Execute(context.Background(), chart, Options{Formats: []string{FormatSVG, FormatJSON}, Ticks: true, Labels: true})
			if err != nil {
				t.Fatal(err)
			}
			if len(res.Layout.Warnings) != 0 {
				t.Errorf("warnings: %+v", res.Layout.Warnings)
			}
			if res.Stats.CartesianCount == 0 || len(res.Artifacts) != 2 {
				t.Errorf("stats = %+v", res.Stats)
			}
		})
	}
}
