package main

import (
	"context"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/mdtoc/internal/config"
	"github.com/g5becks/mdtoc/internal/toc"
	"github.com/g5becks/mdtoc/internal/ui"
)

func newHeadingsCommand() *cli.Command {
	return &cli.Command{
		Name:      "headings",
		Usage:     "List the headings a TOC would be built from",
		ArgsUsage: "[file|-]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dialect",
				Aliases: []string{"d"},
				Usage:   "Markdown dialect: github, cmark, gitlab, or redcarpet",
				Value:   config.DefaultDialect,
			},
			&cli.IntFlag{
				Name:    "levels",
				Aliases: []string{"l"},
				Usage:   "Deepest heading level to include (1-6)",
				Value:   config.DefaultKeepHeaderLevels,
			},
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
		Action: headingsAction,
	}
}

func headingsAction(ctx context.Context, cmd *cli.Command) error {
	src, err := resolveSource(cmd)
	if err != nil {
		return err
	}

	opts, err := buildOptions(cmd)
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

	headings, err := toc.Headings(reader, opts)
	if err != nil {
		return oops.
			With("source", src.Name()).
			Wrapf(err, "scanning headings in %q", src.Name())
	}

	return ui.RenderHeadings(headings, ui.HeadingsOptions{
		JSON: cmd.Bool("json"),
	})
}
