// Package guard runs a command on file changes and reports the result
// through the notifiers.
package guard

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"mvdan.cc/sh/v3/shell"

	"github.com/smykla-skalski/tmuxflash/internal/exec"
	"github.com/smykla-skalski/tmuxflash/internal/notifier"
	"github.com/smykla-skalski/tmuxflash/internal/watcher"
	"github.com/smykla-skalski/tmuxflash/pkg/logger"
)

var (
	// ErrNoCommand is returned when the command is empty.
	ErrNoCommand = errors.New("no command configured")

	// ErrInvalidCommand is returned when the command cannot be split into words.
	ErrInvalidCommand = errors.New("invalid command")
)

// Notifier delivers notifications.
type Notifier interface {
	Notify(ctx context.Context, n notifier.Notification) error
}

// Options configures a Guard.
type Options struct {
	// Command is split with shell word rules. It is not run through a shell.
	Command string

	// Title of every notification. Defaults to the base name of Dir.
	Title string

	// Dir is the working directory of the command.
	Dir string

	// Timeout bounds a single run. Zero means no bound.
	Timeout time.Duration

	// RunOnStart runs the command once before the first change.
	RunOnStart bool
}

// Result describes one run.
type Result struct {
	Status   notifier.Status
	ExitCode int
	Duration time.Duration
	Output   string
	Changed  []string
}

// Guard runs the command for change batches. Runs never overlap; batches
// arriving during a run are merged into a single follow-up run.
type Guard struct {
	runner   exec.CommandRunner
	notifier Notifier
	log      logger.Logger

	command string
	args    []string
	title   string
	dir     string
	timeout time.Duration
	onStart bool

	mu      sync.Mutex
	running bool
	dirty   bool
	pending []string
	wg      sync.WaitGroup
}

// New creates a Guard.
func New(runner exec.CommandRunner, n Notifier, opts Options, log logger.Logger) (*Guard, error) {
	if strings.TrimSpace(opts.Command) == "" {
		return nil, ErrNoCommand
	}

	args, err := shell.Fields(opts.Command, nil)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidCommand, "%q: %v", opts.Command, err)
	}

	if len(args) == 0 {
		return nil, ErrNoCommand
	}

	if log == nil {
		log = logger.NewNoOpLogger()
	}

	title := opts.Title
	if title == "" {
		dir := opts.Dir
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}

		title = filepath.Base(dir)
	}

	return &Guard{
		runner:   runner,
		notifier: n,
		log:      log,
		command:  opts.Command,
		args:     args,
		title:    title,
		dir:      opts.Dir,
		timeout:  opts.Timeout,
		onStart:  opts.RunOnStart,
	}, nil
}

// Title returns the notification title.
func (g *Guard) Title() string {
	return g.title
}

// Args returns the command words.
func (g *Guard) Args() []string {
	return append([]string(nil), g.args...)
}

// Watch runs the guard over w until ctx is done and waits for the last run.
func (g *Guard) Watch(ctx context.Context, w *watcher.Watcher) error {
	if g.onStart {
		g.Trigger(ctx, nil)
	}

	err := w.Run(ctx, func(b watcher.Batch) {
		g.Trigger(ctx, b.Paths)
	})

	g.Wait()

	return err
}

// Trigger schedules a run for changed. It does not block.
func (g *Guard) Trigger(ctx context.Context, changed []string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.pending = append(g.pending, changed...)
	g.dirty = true

	if g.running {
		g.log.Debug("run in progress, queueing changes", "files", len(changed))

		return
	}

	g.running = true
	g.wg.Add(1)

	go g.loop(ctx)
}

// Wait blocks until no run is in progress.
func (g *Guard) Wait() {
	g.wg.Wait()
}

func (g *Guard) loop(ctx context.Context) {
	defer g.wg.Done()

	for {
		g.mu.Lock()

		if !g.dirty || ctx.Err() != nil {
			g.running = false
			g.mu.Unlock()

			return
		}

		changed := g.pending
		g.pending = nil
		g.dirty = false
		g.mu.Unlock()

		g.RunOnce(ctx, changed)
	}
}

// RunOnce runs the command and notifies pending, then success or failed.
func (g *Guard) RunOnce(ctx context.Context, changed []string) Result {
	g.notify(ctx, notifier.StatusPending, "Running "+g.command)

	runCtx := ctx

	if g.timeout > 0 {
		var cancel context.CancelFunc

		runCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	res := g.runner.RunInDir(runCtx, g.dir, g.args[0], g.args[1:]...)

	result := Result{
		Status:   notifier.StatusSuccess,
		ExitCode: res.ExitCode,
		Duration: res.Duration,
		Output:   res.Output(),
		Changed:  changed,
	}

	took := FormatDuration(res.Duration)

	if res.Failed() {
		result.Status = notifier.StatusFailed

		g.log.Error("command failed",
			"command", g.command,
			"exit_code", res.ExitCode,
			"duration", took,
			"output_size", humanize.Bytes(uint64(len(result.Output))),
			"output", result.Output,
			"error", res.Err,
		)

		g.notify(ctx, notifier.StatusFailed, failureMessage(g.command, res, took))

		return result
	}

	g.log.Info("command succeeded",
		"command", g.command,
		"duration", took,
		"changed", len(changed),
		"output_size", humanize.Bytes(uint64(len(result.Output))),
	)

	g.notify(ctx, notifier.StatusSuccess, g.command+" passed in "+took)

	return result
}

func (g *Guard) notify(ctx context.Context, status notifier.Status, message string) {
	if g.notifier == nil {
		return
	}

	err := g.notifier.Notify(ctx, notifier.Notification{
		Title:   g.title,
		Message: message,
		Status:  status,
	})
	if err != nil {
		g.log.Error("notification failed", "status", status, "error", err)
	}
}

func failureMessage(command string, res *exec.CommandResult, took string) string {
	switch {
	case errors.Is(res.Err, context.DeadlineExceeded):
		return command + " timed out after " + took
	case res.ExitCode > 0:
		return command + " failed (exit " + strconv.Itoa(res.ExitCode) + ") in " + took
	default:
		return command + " could not run"
	}
}

// FormatDuration renders d in words, keeping the two largest units.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		d = d.Round(time.Microsecond)
	} else {
		d = d.Round(time.Millisecond)
	}

	return durafmt.Parse(d).LimitFirstN(2).String()
}
