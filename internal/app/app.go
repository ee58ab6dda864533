// Package app drives the interactive client. Which screen is active is
// purely a function of session state: the auth forms while logged out,
// the certificate form while logged in.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	evbus "github.com/asaskevich/EventBus"

	"veritas-client-go/internal/domain/eventbus"
	"veritas-client-go/internal/domain/form"
	"veritas-client-go/internal/domain/journal"
	"veritas-client-go/internal/domain/session"
	"veritas-client-go/internal/domain/submit"
	"veritas-client-go/internal/platform/config"
	"veritas-client-go/internal/transport/api"
)

// Logger provides the minimal logging contract required by the app.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Options encapsulates the dependencies required to construct an App.
type Options struct {
	Config  *config.Config
	Logger  Logger
	Session *session.Controller
	API     *api.Client
	Journal *journal.Journal
	Bus     evbus.Bus
	Input   io.Reader
	Output  io.Writer
}

// App is the interactive institution client.
type App struct {
	cfg     *config.Config
	logger  Logger
	session *session.Controller
	api     *api.Client
	journal *journal.Journal
	bus     evbus.Bus
	output  io.Writer
	input   io.Reader

	authForm  *form.AuthForm
	authGuard *submit.Guard
	certForm  *form.Record
	certGuard *submit.Guard
}

// New wires an App. Both form trees are mounted fresh.
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("app requires config")
	}
	if opts.Logger == nil {
		return nil, errors.New("app requires a logger")
	}
	if opts.Session == nil {
		return nil, errors.New("app requires a session controller")
	}
	if opts.API == nil {
		return nil, errors.New("app requires an api client")
	}

	a := &App{
		cfg:     opts.Config,
		logger:  opts.Logger,
		session: opts.Session,
		api:     opts.API,
		journal: opts.Journal,
		bus:     opts.Bus,
		input:   opts.Input,
		output:  opts.Output,
	}
	a.mountAuthForm()
	a.mountCertForm()
	return a, nil
}

func (a *App) mountAuthForm() {
	a.authForm = form.NewAuthForm()
	a.authGuard = submit.NewGuard(a.logger)
}

func (a *App) mountCertForm() {
	a.certForm = form.NewRecord()
	a.certGuard = submit.NewGuard(a.logger)
}

// Run reads commands until EOF, exit, or context cancellation.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.output, "veritas certificate client. Type 'help' for commands")

	scanner := bufio.NewScanner(a.input)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		a.printPrompt()
		if !scanner.Scan() {
			fmt.Fprintln(a.output)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		a.Dispatch(ctx, line)
	}
}

func (a *App) printPrompt() {
	if a.session.ActiveScreen() == session.ScreenAuth {
		fmt.Fprintf(a.output, "veritas (%s)> ", a.authForm.Tab())
	} else {
		fmt.Fprint(a.output, "veritas> ")
	}
}

// Dispatch routes one command line to the active screen.
func (a *App) Dispatch(ctx context.Context, line string) {
	cmd, rest := splitCommand(line)

	switch a.session.ActiveScreen() {
	case session.ScreenAuth:
		a.dispatchAuth(ctx, cmd, rest)
	case session.ScreenCertificate:
		a.dispatchCertificate(ctx, cmd, rest)
	}
}

func splitCommand(line string) (string, string) {
	cmd, rest, _ := strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(rest)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.output, format+"\n", args...)
}

func (a *App) publishSubmission(formID string, fields map[string]string, outcome submit.Outcome, txHash string) {
	if a.bus == nil {
		return
	}
	a.bus.Publish(eventbus.TopicSubmissionSettled, eventbus.SubmissionEvent{
		FormID:  formID,
		Success: outcome.OK(),
		Message: outcome.Message(),
		TxHash:  txHash,
		Fields:  fields,
		At:      time.Now(),
	})
}

// truncateHash renders the first 10 characters of a transaction hash
// for the success message.
func truncateHash(hash string) string {
	if len(hash) <= 10 {
		return hash
	}
	return hash[:10]
}
