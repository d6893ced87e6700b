package main

import (
	"context"
	"os"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/mdtoc/internal/config"
	"github.com/g5becks/mdtoc/internal/ui"
	"github.com/g5becks/mdtoc/internal/update"
)

func newWriteCommand() *cli.Command {
	return &cli.Command{
		Name:      "write",
		Usage:     "Splice TOCs into the files matched by targets or globs",
		ArgsUsage: "[target-name|glob...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
			},
			&cli.StringFlag{
				Name:    "marker",
				Aliases: []string{"m"},
				Usage:   "Override the marker line the TOC is spliced between",
			},
			&cli.StringFlag{
				Name:    "dialect",
				Aliases: []string{"d"},
				Usage:   "Override the configured markdown dialect",
			},
			&cli.IntFlag{
				Name:    "levels",
				Aliases: []string{"l"},
				Usage:   "Override the configured heading depth (1-6)",
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
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Report planned changes without writing files",
			},
			&cli.IntFlag{
				Name:    "parallel",
				Aliases: []string{"p"},
				Usage:   "Maximum files processed concurrently",
				Value:   defaultParallel,
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Keep running and re-splice files as they change",
			},
		},
		Action: writeAction,
	}
}

func writeAction(ctx context.Context, cmd *cli.Command) error {
	dryRun := cmd.Bool("dry-run")
	args := cmd.Args().Slice()

	cfg, err := loadWriteConfig(cmd.String("config"), args)
	if err != nil {
		return err
	}

	printer := ui.NewUpdatePrinter(dryRun)
	opts := update.Options{
		Marker:           cmd.String("marker"),
		Dialect:          cmd.String("dialect"),
		KeepHeaderLevels: cmd.Int("levels"),
		Ordered:          cmd.Bool("ordered"),
		NoLinks:          cmd.Bool("no-links"),
		DryRun:           dryRun,
		MaxParallel:      cmd.Int("parallel"),
		OnEvent:          printer.HandleEvent,
	}
	opts.TargetNames, opts.Patterns = splitTargetArgs(cfg, args)

	if cmd.Bool("watch") {
		return update.Watch(ctx, cfg, opts)
	}

	result, runErr := update.Run(ctx, cfg, opts)
	printer.PrintSummary(result)
	return runErr
}

// loadWriteConfig loads the nearest config file. When none exists and the
// caller passed explicit globs, a default config rooted at the working
// directory serves instead, so 'mdtoc write README.md' works without any
// mdtoc.toml.
func loadWriteConfig(configPath string, args []string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err == nil {
		return cfg, nil
	}

	if configPath == "" && len(args) > 0 && hasCode(err, "CONFIG_NOT_FOUND") {
		cwd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, oops.Wrapf(wdErr, "getting working directory")
		}

		cfg := &config.Config{ConfigDir: cwd}
		cfg.ApplyDefaults()
		return cfg, nil
	}

	return nil, err
}

// splitTargetArgs maps positional arguments onto configured target names
// when every argument names one; otherwise all arguments are treated as
// ad-hoc glob patterns.
func splitTargetArgs(cfg *config.Config, args []string) ([]string, []string) {
	if len(args) == 0 {
		return nil, nil
	}

	for _, arg := range args {
		if _, ok := cfg.Targets[arg]; !ok {
			return nil, args
		}
	}

	return args, nil
}

func hasCode(err error, code string) bool {
	oopsErr, ok := oops.AsOops(err)
	return ok && oopsErr.Code() == code
}
