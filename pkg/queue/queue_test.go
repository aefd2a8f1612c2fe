package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nikhilmekle/mern-ecommerce-app/pkg/queue"
)

var echoCalls atomic.Int32

type echoJob struct {
	Val string
}

func (j *echoJob) Handle() error {
	echoCalls.Add(1)
	return nil
}

var failAttempts atomic.Int32

type failJob struct{}

func (j *failJob) Handle() error {
	failAttempts.Add(1)
	return errors.New("always fails")
}

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	_ = cancel
	queue.StartWorkers(ctx, 2)

	queue.Register("echoJob", func() queue.Job { return &echoJob{} })
	queue.Register("failJob", func() queue.Job { return &failJob{} })
}

func TestDispatchAndProcess(t *testing.T) {
	before := echoCalls.Load()
	if err := queue.Dispatch("echoJob", &echoJob{Val: "hello"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for echoCalls.Load() == before && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if echoCalls.Load() == before {
		t.Error("expected the job to be processed")
	}
}

func TestFailedJobRetry(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	if err := queue.Dispatch("failJob", &failJob{}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	// 1 attempt + 1s backoff + slack.
	time.Sleep(2500 * time.Millisecond)

	if failAttempts.Load() == 0 {
		t.Error("expected the failing job to be attempted")
	}
	if len(queue.FailedJobs()) == 0 {
		t.Error("expected at least one failed job")
	}
}

func TestDispatchConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func() {
			defer wg.Done()
			queue.Dispatch("echoJob", &echoJob{Val: "c"}) //nolint:errcheck
		}()
	}
	wg.Wait()
}
