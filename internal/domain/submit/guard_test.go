package submit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestGuardSubmitSuccess(t *testing.T) {
	g := NewGuard(nil)

	outcome, err := g.Submit(context.Background(), func(context.Context) (any, error) {
		return "payload", nil
	})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if !outcome.OK() || outcome.Payload() != "payload" {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if g.InFlight() {
		t.Fatalf("busy flag must be false after settlement")
	}
}

func TestGuardSubmitFailureNormalizes(t *testing.T) {
	g := NewGuard(nil)

	outcome, err := g.Submit(context.Background(), func(context.Context) (any, error) {
		return nil, errors.New("connection refused")
	})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if outcome.OK() {
		t.Fatalf("expected failure outcome")
	}
	if outcome.Message() != FallbackMessage {
		t.Fatalf("expected fallback message, got %q", outcome.Message())
	}
	if g.InFlight() {
		t.Fatalf("busy flag must be false after failure")
	}
}

func TestGuardRejectsDuplicateSubmit(t *testing.T) {
	g := NewGuard(nil)

	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	var callsMu sync.Mutex

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = g.Submit(context.Background(), func(context.Context) (any, error) {
			callsMu.Lock()
			calls++
			callsMu.Unlock()
			close(started)
			<-release
			return nil, nil
		})
	}()

	<-started
	if !g.InFlight() {
		t.Fatalf("busy flag must be true while action is outstanding")
	}

	// second submit before the first settles: no dispatch
	_, err := g.Submit(context.Background(), func(context.Context) (any, error) {
		callsMu.Lock()
		calls++
		callsMu.Unlock()
		return nil, nil
	})
	if !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight, got %v", err)
	}

	close(release)
	wg.Wait()

	callsMu.Lock()
	defer callsMu.Unlock()
	if calls != 1 {
		t.Fatalf("wrapped action dispatched %d times, want 1", calls)
	}
	if g.InFlight() {
		t.Fatalf("busy flag must drop after settlement")
	}
}

func TestGuardClearsBusyOnPanic(t *testing.T) {
	g := NewGuard(nil)

	outcome, err := g.Submit(context.Background(), func(context.Context) (any, error) {
		panic("unexpected fault")
	})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if outcome.OK() || outcome.Message() != FallbackMessage {
		t.Fatalf("expected fallback failure, got %+v", outcome)
	}
	if g.InFlight() {
		t.Fatalf("busy flag must be false after a fault")
	}

	// the guard stays usable after a fault
	if _, err := g.Submit(context.Background(), func(context.Context) (any, error) {
		return "ok", nil
	}); err != nil {
		t.Fatalf("Submit after fault error: %v", err)
	}
}

func TestGuardDropsOutcomeAfterRetire(t *testing.T) {
	g := NewGuard(nil)

	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := g.Submit(context.Background(), func(context.Context) (any, error) {
			close(started)
			<-release
			return "late", nil
		})
		done <- err
	}()

	<-started
	g.Retire()
	close(release)

	select {
	case err := <-done:
		if !errors.Is(err, ErrRetired) {
			t.Fatalf("expected ErrRetired for outcome after teardown, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("submission did not settle")
	}

	if _, err := g.Submit(context.Background(), func(context.Context) (any, error) {
		return nil, nil
	}); !errors.Is(err, ErrRetired) {
		t.Fatalf("expected ErrRetired on retired guard, got %v", err)
	}
}

func TestGuardsAreIndependentAcrossForms(t *testing.T) {
	a := NewGuard(nil)
	b := NewGuard(nil)

	started := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_, _ = a.Submit(context.Background(), func(context.Context) (any, error) {
			close(started)
			<-release
			return nil, nil
		})
	}()
	<-started
	defer close(release)

	// a submission on one form does not block another form instance
	if _, err := b.Submit(context.Background(), func(context.Context) (any, error) {
		return nil, nil
	}); err != nil {
		t.Fatalf("independent guard blocked: %v", err)
	}
}
