package toc

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/samber/oops"
)

// Options configure one TOC build. The zero value builds an unordered,
// linked TOC with github rules down to the default heading depth.
type Options struct {
	Ordered          bool
	NoLinks          bool
	KeepHeaderLevels int
	Dialect          Dialect
}

func (o Options) normalized() Options {
	if o.KeepHeaderLevels == 0 {
		o.KeepHeaderLevels = DefaultKeepHeaderLevels
	}
	if o.Dialect == (Dialect{}) {
		o.Dialect = Github
	}

	return o
}

// Headings scans the document line by line and returns every recognized
// heading with its anchor and 1-based line number, in document order. Any
// recognizer error aborts the scan; no partial result is returned.
func Headings(r io.Reader, opts Options) ([]Heading, error) {
	opts = opts.normalized()
	if opts.KeepHeaderLevels < 0 || opts.KeepHeaderLevels > MaxHeaderLevels {
		return nil, oops.
			Code("CONFIG_INVALID").
			With("keep_header_levels", opts.KeepHeaderLevels).
			Errorf("keep_header_levels must be between 1 and %d", MaxHeaderLevels)
	}

	// bufio.Scanner would drop the line endings the recognizers clamp
	// against, so read raw lines instead.
	br := bufio.NewReader(r)
	dup := make(DuplicateCounter)

	var headings []Heading
	lineNo := 0
	for {
		line, readErr := br.ReadString('\n')
		if line != "" {
			lineNo++

			level, text, ok, err := recognizeHeading(line, opts.KeepHeaderLevels, opts.Dialect, opts.NoLinks)
			if err != nil {
				return nil, err
			}
			if ok {
				headings = append(headings, Heading{
					Level:  level,
					Text:   text,
					Anchor: buildAnchorLink(text, dup, opts.Dialect),
					Line:   lineNo,
				})
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}

			return nil, oops.Wrapf(readErr, "reading document line %d", lineNo+1)
		}
	}

	return headings, nil
}

// Build drives the document through the recognizer, duplicate tracker,
// ordered-index tracker and formatter, and returns the accumulated TOC
// text. The result is empty when the document has no qualifying headings;
// any scan or tracker error aborts the whole build.
func Build(r io.Reader, opts Options) (string, error) {
	opts = opts.normalized()

	headings, err := Headings(r, opts)
	if err != nil {
		return "", err
	}

	state := make(OrderedIndexState)
	prevLevel := 0

	var sb strings.Builder
	for _, h := range headings {
		index := 0
		if opts.Ordered {
			index, err = increaseIndex(state, prevLevel, h.Level, opts.Dialect)
			if err != nil {
				return "", err
			}
		}

		sb.WriteString(formatLine(h, opts.Ordered, opts.NoLinks, index))
		sb.WriteByte('\n')
		prevLevel = h.Level
	}

	return sb.String(), nil
}
