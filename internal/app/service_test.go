package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakeService struct {
	name    string
	startFn func(ctx context.Context) error
	stopped atomic.Bool
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.startFn != nil {
		return s.startFn(ctx)
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *fakeService) Stop(ctx context.Context) error {
	s.stopped.Store(true)
	return nil
}

func TestRunnerStopsAllWhenOneFails(t *testing.T) {
	boom := errors.New("boom")
	failing := &fakeService{name: "failing", startFn: func(ctx context.Context) error {
		return boom
	}}
	blocking := &fakeService{name: "blocking"}

	runner := NewRunner(failing, blocking)
	err := runner.Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("want the failing service's error, got %v", err)
	}
	if !failing.stopped.Load() || !blocking.stopped.Load() {
		t.Fatalf("every service must be stopped after one fails")
	}
}

func TestRunnerTreatsCancellationAsCleanShutdown(t *testing.T) {
	svc := &fakeService{name: "api"}
	runner := NewRunner(svc)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	if err := runner.Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancelled run must return nil, got %v", err)
	}
	if !svc.stopped.Load() {
		t.Fatalf("service must be stopped on shutdown")
	}
}

func TestRunnerRejectsEmptySet(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("empty runner must fail")
	}
	var nilRunner *Runner
	if err := nilRunner.Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("nil runner must fail")
	}
}
