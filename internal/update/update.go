// Package update regenerates and splices TOCs into the markdown files
// matched by configured targets or ad-hoc glob patterns.
package update

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	stdsync "sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"

	"github.com/g5becks/mdtoc/internal/config"
	"github.com/g5becks/mdtoc/internal/splice"
	"github.com/g5becks/mdtoc/internal/toc"
)

const defaultMaxParallel = 4

// EventKind identifies the lifecycle stage an Event reports.
type EventKind int

const (
	EventFileStart EventKind = iota
	EventFileDone
)

// Event is emitted once before and once after each file is processed.
// Events may arrive from concurrent workers; handlers must be safe for
// concurrent use.
type Event struct {
	Kind    EventKind
	Target  string
	Path    string
	Changed bool
	Err     error
}

// Options control a single update run.
type Options struct {
	// TargetNames selects configured targets. Empty means every target,
	// unless Patterns is set.
	TargetNames []string
	// Patterns are ad-hoc globs used instead of configured targets.
	Patterns []string
	// Marker overrides the configured marker line when non-empty.
	Marker string
	// Dialect and KeepHeaderLevels override the configured values when
	// set; Ordered and NoLinks force those modes on.
	Dialect          string
	KeepHeaderLevels int
	Ordered          bool
	NoLinks          bool
	DryRun           bool
	MaxParallel      int
	OnEvent          func(Event)
}

// RunResult aggregates the outcome of an update run.
type RunResult struct {
	Files     int
	Updated   int
	Unchanged int
	Errors    int
}

type job struct {
	target    string
	path      string
	marker    string
	buildOpts toc.Options
}

type fileState struct {
	changed bool
	err     error
}

// Run resolves the requested targets to files, rebuilds each file's TOC
// and splices it in place. With DryRun set, files are compared but never
// written. The returned RunResult is non-nil even when the run fails.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*RunResult, error) {
	result := &RunResult{}

	if cfg == nil {
		return result, oops.
			Code("CONFIG_INVALID").
			Errorf("config is required")
	}

	jobs, err := resolveJobs(cfg, opts)
	if err != nil {
		return result, err
	}

	maxParallel := opts.MaxParallel
	if maxParallel <= 0 {
		maxParallel = defaultMaxParallel
	}

	states := make(map[string]fileState, len(jobs))
	var statesMu stdsync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxParallel)

	for _, fileJob := range jobs {
		fileJob := fileJob

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			emit(opts.OnEvent, Event{
				Kind:   EventFileStart,
				Target: fileJob.target,
				Path:   fileJob.path,
			})

			changed, err := processFile(fileJob, opts.DryRun)

			statesMu.Lock()
			states[fileJob.path] = fileState{changed: changed, err: err}
			statesMu.Unlock()

			emit(opts.OnEvent, Event{
				Kind:    EventFileDone,
				Target:  fileJob.target,
				Path:    fileJob.path,
				Changed: changed,
				Err:     err,
			})
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return result, oops.Wrapf(err, "waiting for update workers")
	}

	for _, fileJob := range jobs {
		state := states[fileJob.path]
		result.Files++

		switch {
		case state.err != nil:
			result.Errors++
		case state.changed:
			result.Updated++
		default:
			result.Unchanged++
		}
	}

	if result.Errors > 0 {
		return result, oops.
			Code("UPDATE_FAILED").
			With("failed_files", result.Errors).
			Errorf("%d file(s) failed to update", result.Errors)
	}

	return result, nil
}

func emit(onEvent func(Event), e Event) {
	if onEvent != nil {
		onEvent(e)
	}
}

// processFile rebuilds the TOC for a single file and splices it in. In
// dry-run mode the rewritten document is only compared against the
// original.
func processFile(fileJob job, dryRun bool) (bool, error) {
	content, err := os.ReadFile(fileJob.path)
	if err != nil {
		return false, oops.
			Code("READ_FAILED").
			With("path", fileJob.path).
			Wrapf(err, "reading %q", fileJob.path)
	}

	rendered, err := toc.Build(strings.NewReader(string(content)), fileJob.buildOpts)
	if err != nil {
		return false, oops.
			With("path", fileJob.path).
			Wrapf(err, "building TOC for %q", fileJob.path)
	}

	if dryRun {
		updated, found := splice.Text(string(content), rendered, fileJob.marker)
		return found && updated != string(content), nil
	}

	return splice.File(fileJob.path, rendered, fileJob.marker)
}

// resolveJobs expands the selected targets (or ad-hoc patterns) into one
// job per matched file, deduplicated by path. Patterns resolve relative
// to the directory the config file was loaded from.
func resolveJobs(cfg *config.Config, opts Options) ([]job, error) {
	targets, err := resolveTargets(cfg, opts)
	if err != nil {
		return nil, err
	}

	root := cfg.ConfigDir
	if root == "" {
		root = "."
	}

	var jobs []job
	seen := make(map[string]struct{})

	for _, named := range targets {
		dialectToken := opts.Dialect
		if dialectToken == "" {
			dialectToken = cfg.DialectFor(named.target)
		}
		dialect, err := toc.ParseDialect(dialectToken)
		if err != nil {
			return nil, err
		}

		keepLevels := opts.KeepHeaderLevels
		if keepLevels == 0 {
			keepLevels = cfg.KeepHeaderLevelsFor(named.target)
		}

		buildOpts := toc.Options{
			Ordered:          cfg.Defaults.Ordered || opts.Ordered,
			NoLinks:          cfg.Defaults.NoLinks || opts.NoLinks,
			KeepHeaderLevels: keepLevels,
			Dialect:          dialect,
		}

		marker := opts.Marker
		if marker == "" {
			marker = cfg.MarkerFor(named.target)
		}

		matches, err := doublestar.Glob(os.DirFS(root), named.target.Pattern)
		if err != nil {
			return nil, oops.
				Code("CONFIG_INVALID").
				With("pattern", named.target.Pattern).
				Wrapf(err, "expanding pattern %q", named.target.Pattern)
		}

		slices.Sort(matches)
		for _, match := range matches {
			path := filepath.Join(root, filepath.FromSlash(match))
			if _, exists := seen[path]; exists {
				continue
			}
			seen[path] = struct{}{}

			jobs = append(jobs, job{
				target:    named.name,
				path:      path,
				marker:    marker,
				buildOpts: buildOpts,
			})
		}
	}

	return jobs, nil
}

type namedTarget struct {
	name   string
	target config.Target
}

func resolveTargets(cfg *config.Config, opts Options) ([]namedTarget, error) {
	if len(opts.Patterns) > 0 {
		targets := make([]namedTarget, 0, len(opts.Patterns))
		for _, pattern := range opts.Patterns {
			targets = append(targets, namedTarget{
				name:   pattern,
				target: config.Target{Pattern: pattern},
			})
		}

		return targets, nil
	}

	if len(opts.TargetNames) == 0 {
		targetNames := make([]string, 0, len(cfg.Targets))
		for targetName := range cfg.Targets {
			targetNames = append(targetNames, targetName)
		}

		slices.Sort(targetNames)

		targets := make([]namedTarget, 0, len(targetNames))
		for _, targetName := range targetNames {
			targets = append(targets, namedTarget{
				name:   targetName,
				target: cfg.Targets[targetName],
			})
		}

		return targets, nil
	}

	targets := make([]namedTarget, 0, len(opts.TargetNames))
	seen := make(map[string]struct{}, len(opts.TargetNames))

	for _, targetName := range opts.TargetNames {
		target, ok := cfg.Targets[targetName]
		if !ok {
			return nil, oops.
				Code("TARGET_NOT_FOUND").
				With("target", targetName).
				Hint("Check the [targets] tables in mdtoc.toml").
				Errorf("target %q not found in config", targetName)
		}

		if _, exists := seen[targetName]; exists {
			continue
		}

		seen[targetName] = struct{}{}
		targets = append(targets, namedTarget{name: targetName, target: target})
	}

	return targets, nil
}
