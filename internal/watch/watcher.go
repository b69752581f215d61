package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventHandler filters and processes modified-file events.
type EventHandler interface {
	// Match reports whether path is interesting at all.
	Match(path string) bool

	// Handle processes one modified file synchronously.
	Handle(ctx context.Context, path string) error
}

// Options configures the watch behaviour.
type Options struct {
	// Root is the directory watched recursively.
	Root string

	// Debounce is the per-file quiet period before dispatching. Zero
	// disables debouncing: every write dispatches immediately.
	Debounce time.Duration

	// Logger is used for structured logging.
	Logger *slog.Logger

	// Out is the writer for user-facing status messages.
	Out io.Writer
}

// DefaultOptions returns sensible default watch options.
func DefaultOptions() Options {
	return Options{
		Root:   ".",
		Logger: slog.Default(),
		Out:    os.Stderr,
	}
}

// Run starts the file watcher and blocks until the context is cancelled
// or a SIGINT/SIGTERM signal is received. Accepted events dispatch to
// handler one at a time on the watch goroutine; a handler error aborts
// only that event, the loop keeps running. A dispatch already in flight
// when the interrupt arrives runs to completion.
func Run(ctx context.Context, opts Options, handler EventHandler) error {
	if opts.Root == "" {
		opts.Root = "."
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Walk the root and register every subdirectory.
	if err := addRecursive(watcher, opts.Root); err != nil {
		return fmt.Errorf("watching root directory: %w", err)
	}

	// Trap SIGINT / SIGTERM for graceful shutdown.
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(opts.Out, "watching %s (debounce=%s)\n", opts.Root, opts.Debounce)

	dispatch := func(path string) {
		if handleErr := handler.Handle(sigCtx, path); handleErr != nil {
			now := time.Now().Format("15:04:05")

			fmt.Fprintf(opts.Out, "[%s] %s → ERROR: %v\n", now, path, handleErr)
			opts.Logger.Error("event handling failed",
				slog.String("path", path),
				slog.String("error", handleErr.Error()),
			)
		}
	}

	var debouncer *Debouncer
	if opts.Debounce > 0 {
		debouncer = NewDebouncer(opts.Debounce, dispatch)
		defer debouncer.Stop()
	}

	for {
		select {
		case <-sigCtx.Done():
			fmt.Fprintln(opts.Out, "\nshutting down watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// If a new directory was created, watch it too.
			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name)
				}
			}

			if !isModification(event) || !handler.Match(event.Name) {
				continue
			}

			// Directory-level events never dispatch.
			if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
				continue
			}

			if debouncer != nil {
				debouncer.Trigger(event.Name)
				continue
			}

			dispatch(event.Name)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// isModification accepts only write events: creates, removes, renames,
// and chmods never trigger a rebuild.
func isModification(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write)
}

// addRecursive walks root and adds all directories to the watcher.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			// Skip hidden directories (e.g., .git).
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}

			return watcher.Add(path)
		}

		return nil
	})
}
