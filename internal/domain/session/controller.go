// Package session owns the login/logout state machine. Session state is
// derived from token presence and never stored on its own.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	evbus "github.com/asaskevich/EventBus"

	"veritas-client-go/internal/domain/credential/store"
	"veritas-client-go/internal/domain/eventbus"
)

// State enumerates the two session states.
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

// Screen selects which form tree the app renders.
type Screen int

const (
	ScreenAuth Screen = iota
	ScreenCertificate
)

// Logger provides the minimal logging contract required by the session domain.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Options encapsulates the dependencies required to construct a Controller.
type Options struct {
	Store  store.Store
	Logger Logger
	Bus    evbus.Bus
}

// Controller coordinates the credential store and session transitions.
// It never inspects token contents; validity is the backend's business.
type Controller struct {
	store  store.Store
	logger Logger
	bus    evbus.Bus

	mu    sync.RWMutex
	state State
}

// NewController wires a Controller and derives the initial state from
// the credential store.
func NewController(ctx context.Context, opts Options) (*Controller, error) {
	if opts.Store == nil {
		return nil, errors.New("session controller requires a store")
	}
	if opts.Logger == nil {
		return nil, errors.New("session controller requires a logger")
	}

	c := &Controller{
		store:  opts.Store,
		logger: opts.Logger,
		bus:    opts.Bus,
		state:  LoggedOut,
	}

	if _, ok, err := opts.Store.Load(ctx); err != nil {
		return nil, err
	} else if ok {
		c.state = LoggedIn
	}
	c.logger.Debug("[session] controller started in state %s", c.state)
	return c, nil
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// LoggedIn reports whether a token is live.
func (c *Controller) LoggedIn() bool {
	return c.State() == LoggedIn
}

// ActiveScreen maps session state to the form tree to render.
func (c *Controller) ActiveScreen() Screen {
	if c.LoggedIn() {
		return ScreenCertificate
	}
	return ScreenAuth
}

// OnLoginSuccess persists the issued token and transitions to LoggedIn.
// It must be called exactly once per successful login submission.
func (c *Controller) OnLoginSuccess(ctx context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Save(ctx, token); err != nil {
		c.logger.Error("[session] failed to persist token: %v", err)
		return err
	}
	c.state = LoggedIn
	c.logger.Info("[session] institution logged in")
	c.publish(eventbus.TopicSessionLogin, true)
	return nil
}

// OnLogout clears the token and transitions to LoggedOut. It always
// succeeds regardless of the current state.
func (c *Controller) OnLogout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		c.logger.Error("[session] failed to clear token: %v", err)
		return err
	}
	c.state = LoggedOut
	c.logger.Info("[session] institution logged out")
	c.publish(eventbus.TopicSessionLogout, false)
	return nil
}

// Token loads the current bearer token for authenticated calls.
func (c *Controller) Token(ctx context.Context) (string, bool) {
	token, ok, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Warn("[session] token load failed: %v", err)
		return "", false
	}
	return token, ok
}

func (c *Controller) publish(topic string, loggedIn bool) {
	if c.bus == nil {
		return
	}
	c.bus.Publish(topic, eventbus.SessionEvent{LoggedIn: loggedIn, At: time.Now()})
}
