package observability

import (
	"errors"
	"sync"
	"testing"
)

type recordingObserver struct {
	mu  sync.Mutex
	ops []OperationContext
}

func (r *recordingObserver) ObserveOperation(ctx OperationContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, ctx)
}

func TestMulti(t *testing.T) {
	a := &recordingObserver{}
	var calls int
	b := ObserverFunc(func(ctx OperationContext) { calls++ })

	obs := Multi(a, nil, b)
	obs.ObserveOperation(OperationContext{Component: "mongo", Operation: "find_many"})

	if len(a.ops) != 1 {
		t.Fatalf("expected 1 recorded operation, got %d", len(a.ops))
	}
	if a.ops[0].Component != "mongo" {
		t.Errorf("expected component mongo, got %q", a.ops[0].Component)
	}
	if calls != 1 {
		t.Errorf("expected func observer to be called once, got %d", calls)
	}
}

func TestStatus(t *testing.T) {
	if got := Status(OperationContext{}); got != "success" {
		t.Errorf("expected success, got %q", got)
	}
	if got := Status(OperationContext{Error: errors.New("boom")}); got != "error" {
		t.Errorf("expected error, got %q", got)
	}
}
