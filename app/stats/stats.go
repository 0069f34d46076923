// Package stats keeps the total-created counter of successful generation jobs
package stats

import (
	"context"
	"sync"

	log "github.com/go-pkgz/lgr"
)

// CounterStore is a durable holder of the counter, implemented by history.Store
type CounterStore interface {
	Total() int64
	IncrementCounter(ctx context.Context) (int64, error)
}

// Aggregator counts succeeded jobs. The counter only grows and survives history clear.
type Aggregator struct {
	store CounterStore
	mu    sync.Mutex
	total int64
}

// New makes Aggregator initialized from the store's current (loaded) value
func New(store CounterStore) *Aggregator {
	return &Aggregator{store: store, total: store.Total()}
}

// Total returns current counter value
func (a *Aggregator) Total() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// RecordSuccess increments the counter once. The in-memory value is incremented even if
// persisting fails, the error is returned to the caller.
func (a *Aggregator) RecordSuccess(ctx context.Context) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	n, err := a.store.IncrementCounter(ctx)
	if n > a.total {
		a.total = n
	} else {
		a.total++
	}
	if err != nil {
		return a.total, err
	}
	log.Printf("[DEBUG] total created %d", a.total)
	return a.total, nil
}
