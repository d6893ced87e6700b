// Package source supplies markdown documents to the TOC builder as
// readable line streams: local files, remote URLs, or standard input.
package source

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/samber/oops"
)

// Source produces one document. Open acquires the stream; the caller
// closes it once the scan completes or fails.
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

type fileSource struct {
	path string
}

// NewFile returns a Source reading the local file at path.
func NewFile(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Name() string {
	return s.path
}

func (s *fileSource) Open(_ context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, oops.
				Code("FILE_NOT_FOUND").
				With("path", s.path).
				Hint("Check the path or the target's glob pattern").
				Errorf("file %q does not exist", s.path)
		}

		return nil, oops.
			Code("READ_FAILED").
			With("path", s.path).
			Wrapf(err, "opening %q", s.path)
	}

	return f, nil
}

type stdinSource struct{}

// NewStdin returns a Source reading the process's standard input.
func NewStdin() Source {
	return stdinSource{}
}

func (stdinSource) Name() string {
	return "stdin"
}

func (stdinSource) Open(_ context.Context) (io.ReadCloser, error) {
	return io.NopCloser(os.Stdin), nil
}
