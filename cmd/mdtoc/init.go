package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"
)

const starterConfig = `# mdtoc configuration
# Run 'mdtoc write' to splice TOCs into every target below.

[defaults]
dialect = "github"
keep_header_levels = 3
marker = "[](TOC)"

[targets.readme]
pattern = "README.md"
`

func newInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a starter mdtoc.toml in the current directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing mdtoc.toml",
			},
		},
		Action: initAction,
	}
}

func initAction(_ context.Context, cmd *cli.Command) error {
	const configName = "mdtoc.toml"

	if !cmd.Bool("force") {
		if _, err := os.Stat(configName); err == nil {
			return oops.
				Code("ALREADY_EXISTS").
				With("path", configName).
				Hint("Pass --force to overwrite it").
				Errorf("%s already exists", configName)
		} else if !errors.Is(err, os.ErrNotExist) {
			return oops.Wrapf(err, "checking for existing %s", configName)
		}
	}

	if err := os.WriteFile(configName, []byte(starterConfig), 0o644); err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("path", configName).
			Wrapf(err, "writing %s", configName)
	}

	fmt.Fprintf(os.Stdout, "created %s\n", configName)
	return nil
}
