// Package notifier delivers build status notifications to tmux and the
// terminal.
package notifier

import (
	"context"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/smykla-skalski/tmuxflash/pkg/logger"
)

// ErrUnknownKind is returned when registering a kind without a factory.
var ErrUnknownKind = errors.New("unknown notifier kind")

// Notifier delivers notifications.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, n Notification) error
}

// Lifecycle is implemented by notifiers that change state which must be
// undone on exit.
type Lifecycle interface {
	TurnOn(ctx context.Context) error
	TurnOff(ctx context.Context) error
}

// Factory builds a notifier for a profile.
type Factory func(profile Profile) (Notifier, error)

// Registry holds the active notifiers.
type Registry struct {
	mu        sync.RWMutex
	factories map[Kind]Factory
	notifiers map[Kind]Notifier
	log       logger.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log logger.Logger) *Registry {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Registry{
		factories: make(map[Kind]Factory),
		notifiers: make(map[Kind]Notifier),
		log:       log,
	}
}

// AddFactory makes kind registrable.
func (r *Registry) AddFactory(kind Kind, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[kind] = factory
}

// Register builds and stores the notifier for kind. A later registration of
// the same kind replaces the earlier one.
func (r *Registry) Register(kind Kind, profile Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	factory, ok := r.factories[kind]
	if !ok {
		return errors.Wrapf(ErrUnknownKind, "%q", kind)
	}

	n, err := factory(profile.Clone())
	if err != nil {
		return errors.Wrapf(err, "building %s notifier", kind)
	}

	r.notifiers[kind] = n

	return nil
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.notifiers))
	for kind := range r.notifiers {
		kinds = append(kinds, kind)
	}

	slices.Sort(kinds)

	return kinds
}

// Len returns the number of registered notifiers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.notifiers)
}

// Notify delivers n to every notifier concurrently. All notifiers are tried;
// their errors are joined.
func (r *Registry) Notify(ctx context.Context, n Notification) error {
	notifiers := r.snapshot()
	errs := make([]error, len(notifiers))

	var g errgroup.Group

	for i, nt := range notifiers {
		g.Go(func() error {
			if err := nt.Notify(ctx, n); err != nil {
				r.log.Error("notifier failed", "notifier", nt.Name(), "status", n.Status, "error", err)
				errs[i] = errors.Wrap(err, nt.Name())
			}

			return nil
		})
	}

	_ = g.Wait()

	return errors.Join(errs...)
}

// TurnOn starts every notifier implementing Lifecycle.
func (r *Registry) TurnOn(ctx context.Context) error {
	return r.eachLifecycle(func(l Lifecycle) error { return l.TurnOn(ctx) })
}

// TurnOff stops every notifier implementing Lifecycle.
func (r *Registry) TurnOff(ctx context.Context) error {
	return r.eachLifecycle(func(l Lifecycle) error { return l.TurnOff(ctx) })
}

func (r *Registry) eachLifecycle(fn func(Lifecycle) error) error {
	var errs []error

	for _, n := range r.snapshot() {
		l, ok := n.(Lifecycle)
		if !ok {
			continue
		}

		if err := fn(l); err != nil {
			errs = append(errs, errors.Wrap(err, n.Name()))
		}
	}

	return errors.Join(errs...)
}

// snapshot returns the notifiers in kind order.
func (r *Registry) snapshot() []Notifier {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.notifiers))
	for kind := range r.notifiers {
		kinds = append(kinds, kind)
	}

	slices.Sort(kinds)

	out := make([]Notifier, 0, len(kinds))
	for _, kind := range kinds {
		out = append(out, r.notifiers[kind])
	}

	return out
}
