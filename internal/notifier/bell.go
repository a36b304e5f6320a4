package notifier

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/tmuxflash/internal/exec"
	"github.com/smykla-skalski/tmuxflash/pkg/logger"
)

// DefaultTTYPath is the controlling terminal the bell is written to.
const DefaultTTYPath = "/dev/tty"

// ErrCustomCommandFailed is returned when the bell's custom command fails.
var ErrCustomCommandFailed = errors.New("bell custom command failed")

// BellNotifier rings the terminal bell for failed and notify statuses.
type BellNotifier struct {
	ttyPath       string
	customCommand string
	runner        exec.CommandRunner
	log           logger.Logger
}

// BellOption configures a BellNotifier.
type BellOption func(*BellNotifier)

// WithTTYPath sets the file the bell character is written to.
func WithTTYPath(path string) BellOption {
	return func(b *BellNotifier) {
		b.ttyPath = path
	}
}

// WithCustomCommand runs command through sh instead of writing to the tty.
func WithCustomCommand(command string, runner exec.CommandRunner) BellOption {
	return func(b *BellNotifier) {
		b.customCommand = command
		b.runner = runner
	}
}

// NewBellNotifier creates a new BellNotifier.
func NewBellNotifier(log logger.Logger, opts ...BellOption) *BellNotifier {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	b := &BellNotifier{
		ttyPath: DefaultTTYPath,
		log:     log.With("notifier", KindBell),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBellFactory returns a Factory building bell notifiers. The profile is
// not used.
func NewBellFactory(log logger.Logger, opts ...BellOption) Factory {
	return func(Profile) (Notifier, error) {
		return NewBellNotifier(log, opts...), nil
	}
}

// Name implements Notifier.
func (*BellNotifier) Name() string {
	return string(KindBell)
}

// Notify implements Notifier.
func (b *BellNotifier) Notify(ctx context.Context, n Notification) error {
	if n.Status != StatusFailed && n.Status != StatusNotify {
		return nil
	}

	b.log.Debug("handling notification", "status", n.Status)

	if b.customCommand != "" && b.runner != nil {
		result := b.runner.Run(ctx, "sh", "-c", b.customCommand)
		if result.Failed() {
			return errors.WithSecondaryError(
				errors.Wrapf(ErrCustomCommandFailed, "exit code %d", result.ExitCode),
				result.Err,
			)
		}

		return nil
	}

	tty, err := os.OpenFile(b.ttyPath, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		b.log.Debug("failed to open tty", "path", b.ttyPath, "error", err)

		return nil
	}

	defer func() {
		if closeErr := tty.Close(); closeErr != nil {
			b.log.Debug("failed to close tty", "error", closeErr)
		}
	}()

	if _, err := tty.Write([]byte{7}); err != nil {
		b.log.Debug("failed to write bell to tty", "error", err)

		return nil
	}

	b.log.Debug("sent bell to tty")

	return nil
}
