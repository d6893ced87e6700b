package source_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/g5becks/mdtoc/internal/source"
)

func TestFileSourceReadsContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("# Hello\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	src := source.NewFile(path)
	if src.Name() != path {
		t.Fatalf("Name() = %q, want %q", src.Name(), path)
	}

	rc, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(content) != "# Hello\n" {
		t.Fatalf("content = %q, want %q", string(content), "# Hello\n")
	}
}

func TestFileSourceMissing(t *testing.T) {
	t.Parallel()

	src := source.NewFile(filepath.Join(t.TempDir(), "absent.md"))
	_, err := src.Open(context.Background())
	if err == nil {
		t.Fatalf("Open() error = nil, want non-nil")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("Open() error = %q, want missing-file message", err.Error())
	}
}

func TestURLSourceFetchesDocument(t *testing.T) {
	t.Parallel()

	src := source.NewURL("https://example.test/README.md")
	source.SetClient(src, source.NewMockRestyClient(func(req *http.Request) *http.Response {
		return mockResponse(req, http.StatusOK, "# Remote\n")
	}))

	rc, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(content) != "# Remote\n" {
		t.Fatalf("content = %q, want %q", string(content), "# Remote\n")
	}
}

func TestURLSourceNonSuccessStatus(t *testing.T) {
	t.Parallel()

	src := source.NewURL("https://example.test/README.md")
	source.SetClient(src, source.NewMockRestyClient(func(req *http.Request) *http.Response {
		return mockResponse(req, http.StatusNotFound, "missing")
	}))

	_, err := src.Open(context.Background())
	if err == nil {
		t.Fatalf("Open() error = nil, want non-nil")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Fatalf("Open() error = %q, want status message", err.Error())
	}
}

func mockResponse(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Header:        make(http.Header),
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}
