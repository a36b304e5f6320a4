// Package watcher reports debounced batches of file changes.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/smykla-skalski/tmuxflash/pkg/logger"
)

// DefaultDebounce is used when Options.Debounce is not positive.
const DefaultDebounce = 300 * time.Millisecond

// ErrNoPaths is returned when no path is given to watch.
var ErrNoPaths = errors.New("no paths to watch")

// FileWatcher is the subset of fsnotify.Watcher used here.
type FileWatcher interface {
	Events() <-chan fsnotify.Event
	Errors() <-chan error
	Add(name string) error
	Close() error
}

type fsnotifyWatcher struct {
	w *fsnotify.Watcher
}

// NewFSNotifyWatcher creates a FileWatcher backed by fsnotify.
//
//nolint:ireturn // callers swap implementations in tests
func NewFSNotifyWatcher() (FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating fsnotify watcher")
	}

	return &fsnotifyWatcher{w: w}, nil
}

func (f *fsnotifyWatcher) Events() <-chan fsnotify.Event { return f.w.Events }
func (f *fsnotifyWatcher) Errors() <-chan error          { return f.w.Errors }
func (f *fsnotifyWatcher) Add(name string) error         { return f.w.Add(name) }
func (f *fsnotifyWatcher) Close() error                  { return f.w.Close() }

// Options configures a Watcher.
type Options struct {
	Paths    []string
	Include  []string
	Exclude  []string
	Debounce time.Duration
}

// Batch is a set of changed files, sorted and without duplicates.
type Batch struct {
	Paths []string
}

// Watcher watches directory trees and emits debounced change batches.
type Watcher struct {
	fw       FileWatcher
	roots    []string
	matcher  *Matcher
	debounce time.Duration
	log      logger.Logger
}

// New creates a Watcher over fsnotify.
func New(opts Options, log logger.Logger) (*Watcher, error) {
	fw, err := NewFSNotifyWatcher()
	if err != nil {
		return nil, err
	}

	w, err := NewWithFileWatcher(fw, opts, log)
	if err != nil {
		_ = fw.Close()

		return nil, err
	}

	return w, nil
}

// NewWithFileWatcher creates a Watcher over fw and adds every directory under
// the configured paths.
func NewWithFileWatcher(fw FileWatcher, opts Options, log logger.Logger) (*Watcher, error) {
	if len(opts.Paths) == 0 {
		return nil, ErrNoPaths
	}

	if log == nil {
		log = logger.NewNoOpLogger()
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fw:       fw,
		matcher:  NewMatcher(opts.Include, opts.Exclude),
		debounce: debounce,
		log:      log,
	}

	for _, p := range opts.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving %s", p)
		}

		w.roots = append(w.roots, abs)
	}

	for _, root := range w.roots {
		if err := w.addRecursive(root); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// Roots returns the absolute watch roots.
func (w *Watcher) Roots() []string {
	return slices.Clone(w.roots)
}

// Run emits batches to fn until ctx is done. fn is called on the Run
// goroutine; it should hand long work off.
func (w *Watcher) Run(ctx context.Context, fn func(Batch)) error {
	defer func() {
		if err := w.fw.Close(); err != nil {
			w.log.Debug("closing watcher", "error", err)
		}
	}()

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()

			return nil

		case event, ok := <-w.fw.Events():
			if !ok {
				return nil
			}

			path, relevant := w.handle(event)
			if !relevant {
				continue
			}

			pending[path] = struct{}{}

			timer.Reset(w.debounce)

		case err, ok := <-w.fw.Errors():
			if !ok {
				return nil
			}

			w.log.Error("watcher error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}

			batch := Batch{Paths: make([]string, 0, len(pending))}
			for path := range pending {
				batch.Paths = append(batch.Paths, path)
			}

			slices.Sort(batch.Paths)
			clear(pending)

			w.log.Debug("change batch", "files", len(batch.Paths))

			fn(batch)
		}
	}
}

// handle returns the path of a relevant event. New directories are watched.
func (w *Watcher) handle(event fsnotify.Event) (string, bool) {
	if event.Op == fsnotify.Chmod {
		return "", false
	}

	path := filepath.Clean(event.Name)

	rel, ok := w.relative(path)
	if !ok {
		return "", false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if w.matcher.SkipDir(rel) {
				return "", false
			}

			if err := w.addRecursive(path); err != nil {
				w.log.Error("watching new directory", "path", path, "error", err)
			}

			return "", false
		}
	}

	if !w.matcher.Match(rel) {
		return "", false
	}

	return path, true
}

// relative returns path relative to its deepest watch root, slash separated.
func (w *Watcher) relative(path string) (string, bool) {
	best := ""

	for _, root := range w.roots {
		if (path == root || strings.HasPrefix(path, root+string(filepath.Separator))) && len(root) > len(best) {
			best = root
		}
	}

	if best == "" {
		return "", false
	}

	rel, err := filepath.Rel(best, path)
	if err != nil {
		return "", false
	}

	return filepath.ToSlash(rel), true
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path != dir && errors.Is(err, fs.ErrNotExist) {
				return nil
			}

			return errors.Wrapf(err, "walking %s", path)
		}

		if !d.IsDir() {
			return nil
		}

		if rel, ok := w.relative(path); ok && w.matcher.SkipDir(rel) {
			return filepath.SkipDir
		}

		if err := w.fw.Add(path); err != nil {
			return errors.Wrapf(err, "watching %s", path)
		}

		return nil
	})
}
