package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	errs "github.com/cim-modules/modgraph/pkg/errors"
)

// watchDebounce is how long to wait for more writes before re-rendering.
// Editors often save in several steps (truncate, write, rename).
const watchDebounce = 100 * time.Millisecond

// watchRender renders once, then again after every change to the input
// until ctx is cancelled. Render failures are logged and watching continues.
func (c *CLI) watchRender(ctx context.Context, opts renderOpts, stdout io.Writer) error {
	logger := loggerFromContext(ctx)

	fw, err := newFileWatcher(opts.input, watchDebounce)
	if err != nil {
		return err
	}
	defer fw.Close()

	render := func(ctx context.Context) error {
		if err := c.runRender(ctx, opts, stdout); err != nil {
			logger.Error("Render failed", "code", errs.GetCode(err), "err", err)
		}
		return nil
	}

	_ = render(ctx)
	logger.Infof("Watching %s (Ctrl+C to stop)", opts.input)
	return fw.Run(ctx, render)
}

// fileWatcher reports debounced changes to a single file. It watches the
// parent directory so that atomic saves (write to temp, rename over) are seen.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string // absolute, cleaned
	debounce time.Duration
}

func newFileWatcher(path string, debounce time.Duration) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "create file watcher")
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	return &fileWatcher{watcher: w, path: abs, debounce: debounce}, nil
}

// Close stops watching.
func (fw *fileWatcher) Close() error {
	return fw.watcher.Close()
}

// Run calls fn after each burst of changes to the watched file. It blocks
// until ctx is cancelled, fn returns an error, or the watcher is closed.
func (fw *fileWatcher) Run(ctx context.Context, fn func(context.Context) error) error {
	logger := loggerFromContext(ctx)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("Input changed", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(fw.debounce)
			} else {
				timer.Reset(fw.debounce)
			}
			timerC = timer.C

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "err", err)

		case <-timerC:
			timerC = nil
			if err := fn(ctx); err != nil {
				return err
			}
		}
	}
}
