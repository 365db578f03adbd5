package server

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/etnz/positions"
)

// Snapshot is the last known state of the portfolio, shared by all requests.
type Snapshot struct {
	source positions.Source

	mu        sync.RWMutex
	lots      []positions.Lot
	cash      positions.Money
	refreshed time.Time
}

// NewSnapshot returns an empty snapshot of source. It is loaded by Refresh.
func NewSnapshot(source positions.Source) *Snapshot {
	return &Snapshot{source: source}
}

// Refresh reloads lots and cash from the source.
// On error the previous state is kept.
func (s *Snapshot) Refresh(ctx context.Context) error {
	lots, err := s.source.Lots(ctx)
	if err != nil {
		return err
	}
	cash, err := s.source.Cash(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lots = lots
	s.cash = cash
	s.refreshed = time.Now()
	return nil
}

// Lots returns a copy of the current lots.
func (s *Snapshot) Lots() []positions.Lot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lots)
}

// State returns a copy of the lots and the cash balance of the same refresh.
func (s *Snapshot) State() ([]positions.Lot, positions.Money) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lots), s.cash
}

// Refreshed returns the time of the last successful refresh, zero if never loaded.
func (s *Snapshot) Refreshed() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshed
}

// Loaded reports whether the snapshot was loaded at least once.
func (s *Snapshot) Loaded() bool { return !s.Refreshed().IsZero() }
