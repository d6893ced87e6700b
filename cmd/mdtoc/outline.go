package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/mdtoc/internal/outline"
)

func newOutlineCommand() *cli.Command {
	return &cli.Command{
		Name:      "outline",
		Usage:     "Show a document's full heading structure",
		ArgsUsage: "[file|-]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   "Fetch the document from a URL instead of a file",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		},
		Action: outlineAction,
	}
}

func outlineAction(ctx context.Context, cmd *cli.Command) error {
	src, err := resolveSource(cmd)
	if err != nil {
		return err
	}

	reader, err := src.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = reader.Close()
	}()

	content, err := io.ReadAll(reader)
	if err != nil {
		return oops.
			Code("READ_FAILED").
			With("source", src.Name()).
			Wrapf(err, "reading %q", src.Name())
	}

	doc := outline.Parse(content)

	if cmd.Bool("json") {
		return outputOutlineJSON(doc)
	}

	outputOutlineText(src.Name(), doc)
	return nil
}

func outputOutlineJSON(doc *outline.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return oops.
			Code("JSON_ERROR").
			Wrapf(err, "encoding outline")
	}

	fmt.Fprintln(os.Stdout, string(data))
	return nil
}

func outputOutlineText(name string, doc *outline.Document) {
	if doc.Title != "" {
		fmt.Fprintf(os.Stdout, "%s: %s (%d lines)\n\n", name, doc.Title, doc.Lines)
	} else {
		fmt.Fprintf(os.Stdout, "%s (%d lines)\n\n", name, doc.Lines)
	}

	if len(doc.Headings) == 0 {
		fmt.Fprintln(os.Stdout, "No headings found.")
		return
	}

	fmt.Fprintln(os.Stdout, "STRUCTURE:")
	for _, h := range doc.Headings {
		indent := strings.Repeat("  ", h.Level-1)
		fmt.Fprintf(os.Stdout, "%3d  %s%s\n", h.Line, indent, h.Text)
	}
}
