package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/groenwerk/hovenier-api/internal/domain/estimation"
)

// SaveFunc persists one quote's estimation draft
type SaveFunc func(ctx context.Context, quoteID uuid.UUID, input estimation.Input) error

// DraftStore keeps the in-flight estimation drafts, one debounced
// coordinator per quote. Drafts live in memory between commits; the commit
// writes the latest draft, not the one that armed the timer.
type DraftStore struct {
	mu       sync.Mutex
	drafts   map[uuid.UUID]*draft
	save     SaveFunc
	debounce time.Duration
}

type draft struct {
	mu    sync.Mutex
	input estimation.Input
	coord *Coordinator
}

// NewDraftStore creates a draft store committing through save
func NewDraftStore(save SaveFunc, debounce time.Duration) *DraftStore {
	return &DraftStore{
		drafts:   make(map[uuid.UUID]*draft),
		save:     save,
		debounce: debounce,
	}
}

// Update replaces the draft for a quote and schedules a commit
func (s *DraftStore) Update(quoteID uuid.UUID, input estimation.Input) {
	d := s.draftFor(quoteID)

	d.mu.Lock()
	d.input = input
	d.mu.Unlock()

	d.coord.Touch()
}

// Flush commits a quote's draft immediately
func (s *DraftStore) Flush(ctx context.Context, quoteID uuid.UUID) error {
	s.mu.Lock()
	d, ok := s.drafts[quoteID]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return d.coord.SaveNow(ctx)
}

// Status returns the coordinator snapshot for a quote. Quotes without a
// draft report a clean status.
func (s *DraftStore) Status(quoteID uuid.UUID) Status {
	s.mu.Lock()
	d, ok := s.drafts[quoteID]
	s.mu.Unlock()
	if !ok {
		return Status{}
	}
	return d.coord.Status()
}

// Discard drops a quote's draft and cancels its pending commit
func (s *DraftStore) Discard(quoteID uuid.UUID) {
	s.mu.Lock()
	d, ok := s.drafts[quoteID]
	delete(s.drafts, quoteID)
	s.mu.Unlock()
	if ok {
		d.coord.Stop()
	}
}

// Close stops every coordinator without flushing
func (s *DraftStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, d := range s.drafts {
		d.coord.Stop()
		delete(s.drafts, id)
	}
}

func (s *DraftStore) draftFor(quoteID uuid.UUID) *draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.drafts[quoteID]; ok {
		return d
	}

	d := &draft{}
	d.coord = NewCoordinator(func(ctx context.Context) error {
		d.mu.Lock()
		input := d.input
		d.mu.Unlock()
		return s.save(ctx, quoteID, input)
	}, s.debounce)
	s.drafts[quoteID] = d
	return d
}
