package lifecycle

import (
	"context"
	"errors"
	"testing"
)

type stubComponent struct {
	started  int
	stopped  int
	startErr error
}

func (c *stubComponent) Start(context.Context) error {
	if c.startErr != nil {
		return c.startErr
	}
	c.started++
	return nil
}

func (c *stubComponent) Stop(context.Context) error {
	c.stopped++
	return nil
}

func TestRuntimeStartStopOrdering(t *testing.T) {
	t.Parallel()

	first := &stubComponent{}
	second := &stubComponent{}
	runtime := NewRuntime(first, second)

	ctx := context.Background()
	if err := runtime.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if first.started != 1 || second.started != 1 {
		t.Fatalf("expected both components started, got %d and %d", first.started, second.started)
	}

	if err := runtime.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if first.stopped != 1 || second.stopped != 1 {
		t.Fatalf("expected both components stopped, got %d and %d", first.stopped, second.stopped)
	}
}

func TestRuntimeRollsBackOnStartFailure(t *testing.T) {
	t.Parallel()

	first := &stubComponent{}
	failing := &stubComponent{startErr: errors.New("boom")}
	runtime := NewRuntime(first, failing)

	if err := runtime.Start(context.Background()); err == nil {
		t.Fatalf("expected start failure")
	}
	if first.stopped != 1 {
		t.Fatalf("expected started component to be stopped on rollback, got %d", first.stopped)
	}
	if failing.stopped != 0 {
		t.Fatalf("failed component must not be stopped, got %d", failing.stopped)
	}
}
