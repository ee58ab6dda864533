package app

import (
	"context"
	"encoding/json"
	"os"

	"golang.org/x/sync/errgroup"

	"veritas-client-go/internal/domain/submit"
	"veritas-client-go/internal/transport/api"
)

type importResult struct {
	formID  string
	fields  map[string]string
	outcome submit.Outcome
	txHash  string
	settled bool
}

// importCertificates submits a JSON array of certificate records. Each
// record gets its own form instance and guard; the remote calls are
// independent and unordered, outcomes are applied on the main loop.
func (a *App) importCertificates(ctx context.Context, path string) {
	if path == "" {
		a.printf("usage: import <file>")
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		a.printf("Failed to read %s: %v", path, err)
		return
	}
	var requests []api.CertificateRequest
	if err := json.Unmarshal(data, &requests); err != nil {
		a.printf("Failed to parse %s: %v", path, err)
		return
	}
	if len(requests) == 0 {
		a.printf("Nothing to import.")
		return
	}

	concurrency := a.cfg.Import.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]importResult, len(requests))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	for i, req := range requests {
		group.Go(func() error {
			guard := submit.NewGuard(a.logger)
			outcome, err := guard.Submit(groupCtx, func(ctx context.Context) (any, error) {
				return a.api.AddCertificate(ctx, req)
			})
			if err != nil {
				return nil
			}

			var txHash string
			if resp, ok := outcome.Payload().(api.CertificateResponse); ok {
				txHash = resp.BlockchainTxHash
			}
			results[i] = importResult{
				formID: guard.ID(),
				fields: map[string]string{
					"student_name": req.StudentName,
					"roll_number":  req.RollNumber,
					"course_name":  req.CourseName,
					"grade":        req.Grade,
					"issue_date":   req.IssueDate,
				},
				outcome: outcome,
				txHash:  txHash,
				settled: true,
			}
			return nil
		})
	}
	_ = group.Wait()

	var succeeded, failed int
	for _, r := range results {
		if !r.settled {
			failed++
			continue
		}
		a.publishSubmission(r.formID, r.fields, r.outcome, r.txHash)
		if r.outcome.OK() {
			succeeded++
		} else {
			failed++
			a.logger.Warn("[submit] import record %q failed: %s",
				r.fields["student_name"], r.outcome.Message())
		}
	}

	a.printf("Imported %d of %d records (%d failed).", succeeded, len(requests), failed)
}
