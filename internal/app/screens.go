package app

import (
	"context"
	"errors"
	"fmt"

	"veritas-client-go/internal/domain/form"
	"veritas-client-go/internal/domain/submit"
	"veritas-client-go/internal/transport/api"
)

func (a *App) dispatchAuth(ctx context.Context, cmd, rest string) {
	switch cmd {
	case "help":
		a.printf("commands: tab | set <field> <value> | show | submit | exit")
		a.printf("login fields: email, password")
		a.printf("register fields: name, email, password")
	case "tab":
		a.printf("switched to %s tab", a.authForm.Switch())
	case "set":
		a.setField(a.authForm.Record(), rest)
	case "show":
		a.showRecord(a.authForm.Record())
	case "submit":
		a.submitAuth(ctx)
	default:
		a.printf("unknown command %q (try 'help')", cmd)
	}
}

func (a *App) dispatchCertificate(ctx context.Context, cmd, rest string) {
	switch cmd {
	case "help":
		a.printf("commands: set <field> <value> | show | submit | history | verify <hash> | import <file> | logout | exit")
		a.printf("certificate fields: student_name, roll_number, course_name, grade, issue_date")
	case "set":
		a.setField(a.certForm, rest)
	case "show":
		a.showRecord(a.certForm)
	case "submit":
		a.submitCertificate(ctx)
	case "history":
		a.showHistory(ctx)
	case "verify":
		a.verifyCertificate(ctx, rest)
	case "import":
		a.importCertificates(ctx, rest)
	case "logout":
		a.logout(ctx)
	default:
		a.printf("unknown command %q (try 'help')", cmd)
	}
}

func (a *App) setField(record *form.Record, rest string) {
	name, value, found := cutField(rest)
	if !found {
		a.printf("usage: set <field> <value>")
		return
	}
	record.Set(name, value)
	// controlled echo: display exactly what the record holds
	a.printf("%s = %q", name, record.Value(name))
}

func cutField(rest string) (string, string, bool) {
	name, value, found := cutSpace(rest)
	if !found || name == "" {
		return "", "", false
	}
	return name, value, true
}

func cutSpace(s string) (string, string, bool) {
	for i, r := range s {
		if r == ' ' {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

func (a *App) showRecord(record *form.Record) {
	fields := record.Fields()
	if len(fields) == 0 {
		a.printf("(empty)")
		return
	}
	for name, value := range fields {
		a.printf("  %s = %q", name, value)
	}
}

func (a *App) submitAuth(ctx context.Context) {
	fields := a.authForm.Record().Fields()

	switch a.authForm.Tab() {
	case form.TabRegister:
		outcome, err := a.authGuard.Submit(ctx, func(ctx context.Context) (any, error) {
			return nil, a.api.Register(ctx, api.RegisterRequest{
				Name:     fields["name"],
				Email:    fields["email"],
				Password: fields["password"],
			})
		})
		if a.reportGuardErr(err) {
			return
		}
		if outcome.OK() {
			a.authForm.OnRegisterSuccess()
			a.printf("Registration successful. Please log in.")
		} else {
			a.printf("%s", outcome.Message())
		}

	case form.TabLogin:
		outcome, err := a.authGuard.Submit(ctx, func(ctx context.Context) (any, error) {
			return a.api.Login(ctx, api.LoginRequest{
				Email:    fields["email"],
				Password: fields["password"],
			})
		})
		if a.reportGuardErr(err) {
			return
		}
		if !outcome.OK() {
			a.printf("%s", outcome.Message())
			return
		}
		resp, _ := outcome.Payload().(api.LoginResponse)
		if err := a.session.OnLoginSuccess(ctx, resp.Token); err != nil {
			a.printf("Failed to persist session: %v", err)
			return
		}
		// the auth form unmounts on successful login
		a.authGuard.Retire()
		a.mountAuthForm()
		a.printf("Logged in.")
	}
}

func (a *App) submitCertificate(ctx context.Context) {
	fields := a.certForm.Fields()
	guard := a.certGuard

	outcome, err := guard.Submit(ctx, func(ctx context.Context) (any, error) {
		return a.api.AddCertificate(ctx, certificateRequest(fields))
	})
	if a.reportGuardErr(err) {
		return
	}

	var txHash string
	if resp, ok := outcome.Payload().(api.CertificateResponse); ok {
		txHash = resp.BlockchainTxHash
	}
	a.publishSubmission(guard.ID(), fields, outcome, txHash)

	if !outcome.OK() {
		a.printf("%s", outcome.Message())
		return
	}
	a.certForm.Reset()
	msg := "Certificate added successfully."
	if txHash != "" {
		msg += fmt.Sprintf(" Transaction: %s", truncateHash(txHash))
	}
	a.printf("%s", msg)
}

func certificateRequest(fields map[string]string) api.CertificateRequest {
	return api.CertificateRequest{
		StudentName: fields["student_name"],
		RollNumber:  fields["roll_number"],
		CourseName:  fields["course_name"],
		Grade:       fields["grade"],
		IssueDate:   fields["issue_date"],
	}
}

func (a *App) reportGuardErr(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, submit.ErrInFlight):
		a.printf("A submission is already in progress.")
		return true
	case errors.Is(err, submit.ErrRetired):
		// form was torn down while the call was outstanding: drop silently
		return true
	default:
		a.printf("Submission failed: %v", err)
		return true
	}
}

func (a *App) logout(ctx context.Context) {
	if err := a.session.OnLogout(ctx); err != nil {
		a.printf("Logout failed: %v", err)
		return
	}
	// certificate form unmounts; both screens get a fresh mount
	a.certGuard.Retire()
	a.mountCertForm()
	a.mountAuthForm()
	a.printf("Logged out.")
}

func (a *App) showHistory(ctx context.Context) {
	if a.journal == nil {
		a.printf("history is not available")
		return
	}
	records, err := a.journal.Recent(ctx, 10)
	if err != nil {
		a.printf("Failed to read history: %v", err)
		return
	}
	if len(records) == 0 {
		a.printf("(no submissions yet)")
		return
	}
	for _, r := range records {
		line := fmt.Sprintf("  %s  %-8s %s", r.SubmittedAt.Format("2006-01-02 15:04:05"), r.Status, r.StudentName)
		if r.TxHash != "" {
			line += "  " + truncateHash(r.TxHash)
		}
		a.printf("%s", line)
	}
}

func (a *App) verifyCertificate(ctx context.Context, hash string) {
	if hash == "" {
		a.printf("usage: verify <certificate-hash>")
		return
	}
	resp, err := a.api.VerifyCertificate(ctx, hash)
	if err != nil {
		a.printf("%s", submit.Normalize(err))
		return
	}
	if resp.Verified {
		a.printf("Verified on chain. Transaction: %s", truncateHash(resp.TxHash))
	} else {
		a.printf("Not found on chain.")
	}
}
