package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/crimson-sun/funnelscope/internal/output"
)

// Output persists the finished report as indented JSON at a fixed path,
// creating parent directories as needed.
type Output struct {
	path string
}

// New creates a file Output writing to the given path.
func New(path string) *Output {
	return &Output{path: path}
}

func (o *Output) Write(_ context.Context, report output.Report) error {
	if dir := filepath.Dir(o.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "file output: create %s", dir)
		}
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "file output: marshal")
	}
	data = append(data, '\n')
	if err := os.WriteFile(o.path, data, 0o644); err != nil {
		return errors.Wrapf(err, "file output: write %s", o.path)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
