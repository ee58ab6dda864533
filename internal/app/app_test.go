package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"veritas-client-go/internal/domain/credential/store"
	"veritas-client-go/internal/domain/eventbus"
	"veritas-client-go/internal/domain/journal"
	"veritas-client-go/internal/domain/session"
	"veritas-client-go/internal/platform/apitest"
	"veritas-client-go/internal/platform/config"
	"veritas-client-go/internal/platform/storage"
	"veritas-client-go/internal/transport/api"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type fixture struct {
	app     *App
	backend *apitest.Backend
	session *session.Controller
	journal *journal.Journal
	output  *strings.Builder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	backend := apitest.NewServer(t)
	bus := eventbus.New()

	credStore := store.NewMemory(store.Config{})
	ctrl, err := session.NewController(ctx, session.Options{
		Store:  credStore,
		Logger: nopLogger{},
		Bus:    bus,
	})
	if err != nil {
		t.Fatalf("NewController error: %v", err)
	}

	dsn := fmt.Sprintf("file:app-%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := storage.Open(dsn)
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	jrnl := journal.New(db, nopLogger{})
	if err := jrnl.Attach(bus); err != nil {
		t.Fatalf("attach journal: %v", err)
	}

	client := api.NewClient(api.Config{BaseURL: backend.URL()}, ctrl.Token, nopLogger{})

	output := &strings.Builder{}
	cfg := config.DefaultConfig()
	a, err := New(Options{
		Config:  cfg,
		Logger:  nopLogger{},
		Session: ctrl,
		API:     client,
		Journal: jrnl,
		Bus:     bus,
		Input:   strings.NewReader(""),
		Output:  output,
	})
	if err != nil {
		t.Fatalf("New app error: %v", err)
	}

	return &fixture{app: a, backend: backend, session: ctrl, journal: jrnl, output: output}
}

func (f *fixture) run(ctx context.Context, t *testing.T, lines ...string) {
	t.Helper()
	for _, line := range lines {
		f.app.Dispatch(ctx, line)
	}
}

func TestAppRegisterLoginAddFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if f.session.ActiveScreen() != session.ScreenAuth {
		t.Fatalf("expected auth screen before login")
	}

	f.run(ctx, t,
		"tab", // switch to register
		"set name Example University",
		"set email reg@example.edu",
		"set password secret",
		"submit",
	)
	if !strings.Contains(f.output.String(), "Registration successful") {
		t.Fatalf("registration did not succeed: %s", f.output.String())
	}
	// successful register forces the login tab and clears the record
	if f.app.authForm.Tab().String() != "login" {
		t.Fatalf("expected forced login tab, got %v", f.app.authForm.Tab())
	}
	if f.app.authForm.Record().Len() != 0 {
		t.Fatalf("expected cleared auth record")
	}

	f.run(ctx, t,
		"set email reg@example.edu",
		"set password secret",
		"submit",
	)
	if !f.session.LoggedIn() {
		t.Fatalf("expected logged-in session: %s", f.output.String())
	}
	if f.session.ActiveScreen() != session.ScreenCertificate {
		t.Fatalf("expected certificate screen after login")
	}

	f.run(ctx, t,
		"set student_name Ada Lovelace",
		"set roll_number CS-101",
		"set course_name Computer Science",
		"set grade A",
		"set issue_date 2026-06-30",
		"submit",
	)
	out := f.output.String()
	if !strings.Contains(out, "Certificate added successfully. Transaction: 0x") {
		t.Fatalf("expected success message with truncated hash: %s", out)
	}
	// the truncated representation is exactly 10 characters
	idx := strings.Index(out, "Transaction: ")
	tail := strings.TrimSpace(out[idx+len("Transaction: "):])
	hash := strings.Fields(tail)[0]
	if len(hash) != 10 {
		t.Fatalf("expected 10-character hash, got %q", hash)
	}
	if f.app.certForm.Len() != 0 {
		t.Fatalf("expected certificate record cleared on success")
	}

	records, err := f.journal.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(records) != 1 || records[0].Status != "success" {
		t.Fatalf("expected one journaled success, got %+v", records)
	}
}

func TestAppLoginFailureShowsNormalizedError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.run(ctx, t,
		"set email nobody@example.edu",
		"set password wrong",
		"submit",
	)
	if f.session.LoggedIn() {
		t.Fatalf("login must not succeed")
	}
	if !strings.Contains(f.output.String(), "Invalid email or password.") {
		t.Fatalf("expected backend error surfaced verbatim: %s", f.output.String())
	}
}

func TestAppFallbackMessageForUnknownFailureShape(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.backend.RegisterInstitution("Example University", "reg@example.edu", "secret")

	f.backend.FailNextWith(502, map[string]any{})
	f.run(ctx, t,
		"set email reg@example.edu",
		"set password secret",
		"submit",
	)
	if !strings.Contains(f.output.String(), "An error occurred.") {
		t.Fatalf("expected fallback message: %s", f.output.String())
	}
}

func TestAppLogoutReturnsToAuthScreen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.backend.RegisterInstitution("Example University", "reg@example.edu", "secret")

	f.run(ctx, t,
		"set email reg@example.edu",
		"set password secret",
		"submit",
	)
	if !f.session.LoggedIn() {
		t.Fatalf("expected login to succeed")
	}

	f.run(ctx, t, "set student_name Pending Entry")
	f.run(ctx, t, "logout")

	if f.session.LoggedIn() {
		t.Fatalf("expected logged-out session")
	}
	if f.session.ActiveScreen() != session.ScreenAuth {
		t.Fatalf("expected auth screen after logout")
	}
	// certificate form was unmounted; the fresh mount is empty
	if f.app.certForm.Len() != 0 {
		t.Fatalf("expected fresh certificate form after logout")
	}
}

func TestAppImportBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.backend.RegisterInstitution("Example University", "reg@example.edu", "secret")

	f.run(ctx, t,
		"set email reg@example.edu",
		"set password secret",
		"submit",
	)

	records := []map[string]string{
		{"student_name": "Ada Lovelace", "roll_number": "CS-101", "course_name": "Computer Science", "grade": "A", "issue_date": "2026-06-30"},
		{"student_name": "Grace Hopper", "roll_number": "CS-102", "course_name": "Compilers", "grade": "A", "issue_date": "2026-06-30"},
		{"student_name": "", "roll_number": "CS-103", "course_name": "Databases", "grade": "B", "issue_date": "2026-06-30"},
	}
	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "certs.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	f.run(ctx, t, "import "+path)

	if !strings.Contains(f.output.String(), "Imported 2 of 3 records (1 failed).") {
		t.Fatalf("unexpected import summary: %s", f.output.String())
	}
	if f.backend.CertificateCount() != 2 {
		t.Fatalf("expected 2 accepted certificates, got %d", f.backend.CertificateCount())
	}

	journaled, err := f.journal.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(journaled) != 3 {
		t.Fatalf("expected 3 journaled outcomes, got %d", len(journaled))
	}
}

func TestAppRunExitsOnEOF(t *testing.T) {
	f := newFixture(t)

	a := f.app
	a.input = strings.NewReader("help\nexit\n")
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}
}
