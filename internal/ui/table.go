package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/g5becks/mdtoc/internal/toc"
)

// HeadingsOptions control how a list of headings is rendered.
type HeadingsOptions struct {
	JSON bool
}

// RenderHeadings prints the headings recognized in a document, either as
// a rounded table or as indented JSON.
func RenderHeadings(headings []toc.Heading, opts HeadingsOptions) error {
	return RenderHeadingsTo(os.Stdout, headings, opts)
}

// RenderHeadingsTo renders to the given writer.
func RenderHeadingsTo(w io.Writer, headings []toc.Heading, opts HeadingsOptions) error {
	if opts.JSON {
		return renderHeadingsJSON(w, headings)
	}

	renderHeadingsTable(w, headings)
	return nil
}

func renderHeadingsJSON(w io.Writer, headings []toc.Heading) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(headings); err != nil {
		return fmt.Errorf("encode headings json: %w", err)
	}

	return nil
}

func renderHeadingsTable(w io.Writer, headings []toc.Heading) {
	writer := table.NewWriter()
	writer.SetOutputMirror(w)
	writer.SetStyle(table.StyleRounded)

	writer.AppendHeader(table.Row{"LINE", "LEVEL", "HEADING", "ANCHOR"})

	for _, heading := range headings {
		writer.AppendRow(table.Row{
			heading.Line,
			heading.Level,
			heading.Text,
			heading.Anchor,
		})
	}

	writer.Render()
}
