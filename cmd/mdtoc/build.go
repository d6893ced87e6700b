package main

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/mdtoc/internal/config"
	"github.com/g5becks/mdtoc/internal/source"
	"github.com/g5becks/mdtoc/internal/toc"
)

func newBuildCommand() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "Print the TOC for a markdown document",
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
			&cli.BoolFlag{
				Name:    "ordered",
				Aliases: []string{"o"},
				Usage:   "Number the list entries instead of using bullets",
			},
			&cli.BoolFlag{
				Name:  "no-links",
				Usage: "Emit plain heading text without anchor links",
			},
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   "Fetch the document from a URL instead of a file",
			},
		},
		Action: buildAction,
	}
}

func buildAction(ctx context.Context, cmd *cli.Command) error {
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

	rendered, err := toc.Build(reader, opts)
	if err != nil {
		return oops.
			With("source", src.Name()).
			Wrapf(err, "building TOC for %q", src.Name())
	}

	fmt.Fprint(os.Stdout, rendered)
	return nil
}

// resolveSource picks the document source for single-document commands:
// --url wins, then a file argument, with "-" meaning standard input.
func resolveSource(cmd *cli.Command) (source.Source, error) {
	rawURL := cmd.String("url")

	if rawURL != "" {
		if cmd.Args().Len() > 0 {
			return nil, oops.
				Code("INVALID_ARGS").
				Hint("Pass either a file argument or --url, not both").
				Errorf("--url conflicts with a file argument")
		}

		return source.NewURL(rawURL), nil
	}

	if cmd.Args().Len() > 1 {
		return nil, oops.
			Code("INVALID_ARGS").
			Hint("Pass a single file, or '-' for standard input").
			Errorf("expected at most 1 argument, got %d", cmd.Args().Len())
	}

	path := cmd.Args().Get(0)
	if path == "" || path == "-" {
		return source.NewStdin(), nil
	}

	return source.NewFile(path), nil
}

// buildOptions reads the flags shared by build and headings. Ordered and
// no-links only exist on build, where Bool is false elsewhere.
func buildOptions(cmd *cli.Command) (toc.Options, error) {
	dialect, err := toc.ParseDialect(cmd.String("dialect"))
	if err != nil {
		return toc.Options{}, err
	}

	return toc.Options{
		Ordered:          cmd.Bool("ordered"),
		NoLinks:          cmd.Bool("no-links"),
		KeepHeaderLevels: cmd.Int("levels"),
		Dialect:          dialect,
	}, nil
}
