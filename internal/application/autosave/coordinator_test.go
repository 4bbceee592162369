package autosave

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// countingCommit records commits and can be told to fail or block.
type countingCommit struct {
	mu      sync.Mutex
	count   int32
	err     error
	started chan struct{}
	release chan struct{}
}

func (c *countingCommit) fn(ctx context.Context) error {
	if c.started != nil {
		c.started <- struct{}{}
	}
	if c.release != nil {
		<-c.release
	}
	atomic.AddInt32(&c.count, 1)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *countingCommit) commits() int32 {
	return atomic.LoadInt32(&c.count)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestTouchCommitsAfterDebounce(t *testing.T) {
	commit := &countingCommit{}
	c := NewCoordinator(commit.fn, 10*time.Millisecond)
	defer c.Stop()

	c.Touch()
	if !c.IsDirty() {
		t.Fatal("Touch must mark the draft dirty")
	}

	waitFor(t, func() bool { return commit.commits() == 1 })
	waitFor(t, func() bool { return !c.IsDirty() })

	s := c.Status()
	if s.LastSavedAt == nil {
		t.Error("LastSavedAt not set after commit")
	}
	if s.Error != "" {
		t.Errorf("Error = %q, want empty", s.Error)
	}
}

func TestTouchRestartsDebounceWindow(t *testing.T) {
	commit := &countingCommit{}
	c := NewCoordinator(commit.fn, 50*time.Millisecond)
	defer c.Stop()

	// edits inside the window coalesce into one commit
	for i := 0; i < 5; i++ {
		c.Touch()
		time.Sleep(10 * time.Millisecond)
	}
	waitFor(t, func() bool { return commit.commits() >= 1 })
	time.Sleep(100 * time.Millisecond)

	if got := commit.commits(); got != 1 {
		t.Errorf("commits = %d, want 1", got)
	}
}

func TestSaveNowBypassesDebounce(t *testing.T) {
	commit := &countingCommit{}
	c := NewCoordinator(commit.fn, time.Hour)
	defer c.Stop()

	c.Touch()
	if err := c.SaveNow(context.Background()); err != nil {
		t.Fatalf("SaveNow() error = %v", err)
	}
	if commit.commits() != 1 {
		t.Errorf("commits = %d, want 1", commit.commits())
	}
	if c.IsDirty() {
		t.Error("draft must be clean after SaveNow")
	}
}

func TestSaveNowWithoutEditsIsNoop(t *testing.T) {
	commit := &countingCommit{}
	c := NewCoordinator(commit.fn, time.Hour)
	defer c.Stop()

	if err := c.SaveNow(context.Background()); err != nil {
		t.Fatalf("SaveNow() error = %v", err)
	}
	if commit.commits() != 0 {
		t.Errorf("commits = %d, want 0", commit.commits())
	}
}

// A failed commit keeps the edits and does not retry on its own; the next
// Touch or SaveNow drives the retry.
func TestCommitFailureKeepsDraftDirty(t *testing.T) {
	commit := &countingCommit{err: errors.New("db unavailable")}
	c := NewCoordinator(commit.fn, 10*time.Millisecond)
	defer c.Stop()

	c.Touch()
	waitFor(t, func() bool { return commit.commits() == 1 })

	s := c.Status()
	if !s.Dirty {
		t.Error("draft must stay dirty after a failed commit")
	}
	if s.Error == "" {
		t.Error("Status must surface the commit error")
	}

	// no retry storm against a dead backend
	time.Sleep(100 * time.Millisecond)
	if got := commit.commits(); got != 1 {
		t.Fatalf("commits = %d, want 1 (no automatic retry)", got)
	}

	commit.mu.Lock()
	commit.err = nil
	commit.mu.Unlock()

	if err := c.SaveNow(context.Background()); err != nil {
		t.Fatalf("retry SaveNow() error = %v", err)
	}
	waitFor(t, func() bool { return !c.IsDirty() })
	if s := c.Status(); s.Error != "" {
		t.Errorf("Error = %q, want cleared after successful retry", s.Error)
	}
}

// An edit landing while a commit is in flight re-queues a second commit.
func TestTouchDuringCommitRequeues(t *testing.T) {
	commit := &countingCommit{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := NewCoordinator(commit.fn, 5*time.Millisecond)
	defer c.Stop()

	c.Touch()
	<-commit.started

	c.Touch()
	if !c.IsDirty() {
		t.Fatal("edit during commit must mark the draft dirty again")
	}

	commit.release <- struct{}{}
	<-commit.started
	commit.release <- struct{}{}

	waitFor(t, func() bool { return commit.commits() == 2 })
	waitFor(t, func() bool { return !c.IsDirty() })
}

// SaveNow called while a commit is in flight waits it out and flushes the
// edit queued behind it before returning.
func TestSaveNowFlushesQueuedEdit(t *testing.T) {
	commit := &countingCommit{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := NewCoordinator(commit.fn, 5*time.Millisecond)
	defer c.Stop()

	c.Touch()
	<-commit.started

	// a second edit lands while the first commit runs
	c.Touch()

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.SaveNow(context.Background())
	}()

	commit.release <- struct{}{}
	<-commit.started
	commit.release <- struct{}{}

	if err := <-errCh; err != nil {
		t.Fatalf("SaveNow() error = %v", err)
	}
	if got := commit.commits(); got != 2 {
		t.Errorf("commits = %d, want 2", got)
	}
	if c.IsDirty() {
		t.Error("draft must be clean after SaveNow returns")
	}
}

func TestStopPreventsFurtherCommits(t *testing.T) {
	commit := &countingCommit{}
	c := NewCoordinator(commit.fn, 10*time.Millisecond)

	c.Touch()
	c.Stop()

	time.Sleep(50 * time.Millisecond)
	if commit.commits() != 0 {
		t.Errorf("commits = %d, want 0 after Stop", commit.commits())
	}
	// edits after Stop are refused
	c.Touch()
	if err := c.SaveNow(context.Background()); err != nil {
		t.Fatalf("SaveNow() on stopped coordinator error = %v", err)
	}
	if commit.commits() != 0 {
		t.Errorf("commits = %d, want 0", commit.commits())
	}
}
