package update

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/oops"

	"github.com/g5becks/mdtoc/internal/config"
)

const debounceDelay = 100 * time.Millisecond

// Watch runs an initial update pass, then keeps the matched files' TOCs
// current as they change on disk. It blocks until ctx is cancelled.
// Failures of individual passes are reported through opts.OnEvent and do
// not stop the watch.
func Watch(ctx context.Context, cfg *config.Config, opts Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return oops.
			Code("WATCH_FAILED").
			Wrapf(err, "creating file watcher")
	}
	defer func() {
		_ = watcher.Close()
	}()

	jobs, err := resolveJobs(cfg, opts)
	if err != nil {
		return err
	}

	for _, dir := range watchDirs(jobs) {
		if err := watcher.Add(dir); err != nil {
			return oops.
				Code("WATCH_FAILED").
				With("dir", dir).
				Wrapf(err, "watching %q", dir)
		}
	}

	// Initial pass. Per-file failures have already been surfaced as
	// events, so the aggregate error is not fatal here.
	_, _ = Run(ctx, cfg, opts)

	pending := make(map[string]struct{})
	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if filepath.Ext(event.Name) != ".md" {
				continue
			}

			pending[filepath.Clean(event.Name)] = struct{}{}
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(debounceDelay)
			}
			fire = debounce.C

		case <-fire:
			fire = nil
			// Re-resolve so files created after startup are seen.
			jobs, err := resolveJobs(cfg, opts)
			if err != nil {
				continue
			}

			for _, fileJob := range jobs {
				if _, ok := pending[filepath.Clean(fileJob.path)]; !ok {
					continue
				}

				changed, err := processFile(fileJob, opts.DryRun)
				// Our own atomic rewrites come back as events; an
				// unchanged file is the pass settling, not news.
				if !changed && err == nil {
					continue
				}
				emit(opts.OnEvent, Event{
					Kind:    EventFileDone,
					Target:  fileJob.target,
					Path:    fileJob.path,
					Changed: changed,
					Err:     err,
				})
			}

			clear(pending)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			emit(opts.OnEvent, Event{Kind: EventFileDone, Err: err})
		}
	}
}

// watchDirs returns the unique parent directories of the matched files.
func watchDirs(jobs []job) []string {
	seen := make(map[string]struct{}, len(jobs))
	var dirs []string

	for _, fileJob := range jobs {
		dir := filepath.Dir(fileJob.path)
		if _, exists := seen[dir]; exists {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	return dirs
}
