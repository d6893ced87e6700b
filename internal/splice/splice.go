// Package splice rewrites the span between marker lines in a document,
// used to keep a generated TOC inside a file up to date.
package splice

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
)

// Text replaces the lines from the first marker line through the second
// (or just the first, when the document holds a single marker) with the
// TOC framed by one blank line above and below and the marker repeated at
// the closing boundary. Marker lines match loosely: surrounding whitespace
// is ignored. Returns the rewritten document and whether a marker was
// found; without one the document comes back unchanged.
func Text(document, toc, marker string) (string, bool) {
	first, second := markerLines(document, marker)
	if first == -1 {
		return document, false
	}

	block := marker + "\n\n" + strings.TrimRight(toc, " \t\r\n") + "\n\n" + marker + "\n"

	lines := splitLines(document)
	var b strings.Builder
	b.Grow(len(document) + len(block))

	for i, line := range lines {
		switch {
		case i == first:
			b.WriteString(block)
		case second != -1 && i > first && i <= second:
			// Replaced span.
		default:
			b.WriteString(line)
		}
	}

	return b.String(), true
}

// File splices the TOC into the file at path, writing the result back
// atomically. Returns whether the file was rewritten; a file without a
// marker, or whose TOC block is already current, is left untouched.
func File(path, toc, marker string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, oops.
			Code("READ_FAILED").
			With("path", path).
			Wrapf(err, "reading %q", path)
	}

	updated, found := Text(string(content), toc, marker)
	if !found || updated == string(content) {
		return false, nil
	}

	if err := writeFileAtomic(path, []byte(updated)); err != nil {
		return false, err
	}

	return true, nil
}

// markerLines returns the indices of the first two lines whose trimmed
// content equals the marker, or -1 when absent.
func markerLines(document, marker string) (int, int) {
	first, second := -1, -1
	for i, line := range splitLines(document) {
		if strings.TrimSpace(line) != marker {
			continue
		}
		if first == -1 {
			first = i
			continue
		}
		second = i
		break
	}

	return first, second
}

// splitLines splits the document keeping each line's trailing newline, so
// reassembly preserves the original line endings exactly.
func splitLines(document string) []string {
	var lines []string
	for len(document) > 0 {
		n := strings.IndexByte(document, '\n')
		if n == -1 {
			lines = append(lines, document)
			break
		}
		lines = append(lines, document[:n+1])
		document = document[n+1:]
	}

	return lines
}

func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, ".mdtoc-*.tmp")
	if err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("path", path).
			Wrapf(err, "creating temporary file")
	}

	tempPath := tempFile.Name()
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if _, err := tempFile.Write(content); err != nil {
		_ = tempFile.Close()
		return oops.
			Code("WRITE_FAILED").
			With("path", path).
			Wrapf(err, "writing temporary file")
	}

	if err := tempFile.Close(); err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("path", path).
			Wrapf(err, "closing temporary file")
	}

	if err := os.Rename(tempPath, path); err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("path", path).
			Wrapf(err, "replacing destination file")
	}

	return nil
}
