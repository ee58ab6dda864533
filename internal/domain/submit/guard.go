// Package submit serializes outbound writes per form instance and
// normalizes backend failures into user-facing messages.
package submit

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	// ErrInFlight reports a duplicate submit while one is outstanding.
	ErrInFlight = errors.New("submission already in flight")
	// ErrRetired reports a submit against a torn-down form instance.
	ErrRetired = errors.New("form instance retired")
)

// Action is one outbound async write. The guard invokes it at most once
// per accepted submit and never retries.
type Action func(ctx context.Context) (any, error)

// Logger provides the minimal logging contract required by the guard.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Guard wraps submissions for one form instance with a busy flag. The
// flag is raised before dispatch and dropped only once the outcome is
// fully determined, on every exit path.
type Guard struct {
	id      string
	logger  Logger
	busy    atomic.Bool
	retired atomic.Bool
}

// NewGuard creates a guard for a freshly mounted form instance.
func NewGuard(logger Logger) *Guard {
	return &Guard{
		id:     uuid.NewString(),
		logger: logger,
	}
}

// ID identifies the form instance this guard serializes.
func (g *Guard) ID() string { return g.id }

// InFlight reports whether a submission is outstanding.
func (g *Guard) InFlight() bool { return g.busy.Load() }

// Retire marks the form instance torn down. Outcomes settling after
// retirement are dropped so no state write hits an unmounted form.
func (g *Guard) Retire() { g.retired.Store(true) }

// Retired reports whether the form instance was torn down.
func (g *Guard) Retired() bool { return g.retired.Load() }

// Submit runs action under the busy flag. A submit while one is in
// flight dispatches nothing and returns ErrInFlight.
func (g *Guard) Submit(ctx context.Context, action Action) (Outcome, error) {
	if g.retired.Load() {
		return Outcome{}, ErrRetired
	}
	if !g.busy.CompareAndSwap(false, true) {
		if g.logger != nil {
			g.logger.Debug("[submit] duplicate submit ignored on form %s", g.id)
		}
		return Outcome{}, ErrInFlight
	}
	defer g.busy.Store(false)

	outcome := g.run(ctx, action)

	if g.retired.Load() {
		return Outcome{}, ErrRetired
	}
	return outcome, nil
}

func (g *Guard) run(ctx context.Context, action Action) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			if g.logger != nil {
				g.logger.Error("[submit] submission fault on form %s: %v", g.id, r)
			}
			outcome = Failure(FallbackMessage)
		}
	}()

	payload, err := action(ctx)
	if err != nil {
		return Failure(Normalize(err))
	}
	return Success(payload)
}
