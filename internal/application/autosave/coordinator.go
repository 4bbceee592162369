package autosave

import (
	"context"
	"sync"
	"time"
)

// CommitFunc persists the current draft. It runs outside the coordinator's
// lock; implementations are free to block on the database.
type CommitFunc func(ctx context.Context) error

// Status is a point-in-time snapshot of the coordinator
type Status struct {
	Dirty       bool       `json:"dirty"`
	Saving      bool       `json:"saving"`
	LastSavedAt *time.Time `json:"last_saved_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Coordinator debounces draft changes into background commits. Edits mark
// the draft dirty and arm a timer; the commit fires once the edits settle.
// At most one commit runs at a time, and edits arriving during a commit
// re-queue instead of racing it. A failed commit leaves the draft dirty so
// nothing is lost.
type Coordinator struct {
	mu       sync.Mutex
	cond     *sync.Cond
	commit   CommitFunc
	debounce time.Duration
	timer    *time.Timer

	dirty       bool
	saving      bool
	lastSavedAt *time.Time
	err         error
	stopped     bool
}

// NewCoordinator creates a coordinator around a commit function
func NewCoordinator(commit CommitFunc, debounce time.Duration) *Coordinator {
	c := &Coordinator{
		commit:   commit,
		debounce: debounce,
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Touch records an edit: the draft becomes dirty and the debounce window
// restarts. Calling Touch during a commit queues another commit after the
// current one finishes.
func (c *Coordinator) Touch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}

	c.dirty = true
	if c.saving {
		// the running commit's epilogue re-arms the timer
		return
	}
	c.armTimerLocked()
}

// SaveNow flushes the draft, bypassing the debounce window. It waits out a
// commit already in flight and keeps committing until the draft is clean, so
// an edit queued behind a running commit is persisted before SaveNow returns.
func (c *Coordinator) SaveNow(ctx context.Context) error {
	for {
		c.mu.Lock()
		for c.saving {
			c.cond.Wait()
		}
		if c.stopped || !c.dirty {
			err := c.err
			c.mu.Unlock()
			return err
		}
		c.stopTimerLocked()
		c.mu.Unlock()

		if err := c.runCommit(ctx); err != nil {
			return err
		}
		// a timer-fired commit may have slipped in between the unlock and
		// runCommit's own guard; loop until the draft is observed clean
	}
}

// Status returns a consistent snapshot of the coordinator state
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Status{
		Dirty:       c.dirty,
		Saving:      c.saving,
		LastSavedAt: c.lastSavedAt,
	}
	if c.err != nil {
		s.Error = c.err.Error()
	}
	return s
}

// IsDirty reports whether unsaved edits exist
func (c *Coordinator) IsDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Stop cancels the pending timer and refuses further edits. Unsaved edits
// stay dirty; callers that care flush with SaveNow first.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.stopTimerLocked()
}

// armTimerLocked (re)starts the debounce timer. Caller holds c.mu.
func (c *Coordinator) armTimerLocked() {
	c.stopTimerLocked()
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		if c.stopped || c.saving || !c.dirty {
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
		_ = c.runCommit(context.Background())
	})
}

// stopTimerLocked cancels the pending timer. Caller holds c.mu.
func (c *Coordinator) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// runCommit executes one commit cycle. The dirty flag is cleared before the
// commit runs; a Touch during the commit sets it again and re-arms the timer
// in the epilogue. On failure the flag is restored.
func (c *Coordinator) runCommit(ctx context.Context) error {
	c.mu.Lock()
	if c.saving || !c.dirty {
		c.mu.Unlock()
		return nil
	}
	c.saving = true
	c.dirty = false
	c.err = nil
	c.mu.Unlock()

	err := c.commit(ctx)

	c.mu.Lock()
	c.saving = false
	if err != nil {
		// keep the edits; the next Touch or SaveNow retries
		c.err = err
		c.dirty = true
	} else {
		now := time.Now()
		c.lastSavedAt = &now
		if c.dirty && !c.stopped {
			c.armTimerLocked()
		}
	}
	c.cond.Broadcast()
	c.mu.Unlock()

	return err
}
