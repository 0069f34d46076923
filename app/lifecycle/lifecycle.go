// Package lifecycle manages generation jobs. Manager accepts text submissions one at a time,
// records them in the history ledger as pending, calls the generation endpoint in background
// and moves the record to succeeded or failed. Observers read state through getters and
// event subscriptions.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/syncs"
	"github.com/google/uuid"

	"github.com/umputun/iqcmaker/app/enums"
	"github.com/umputun/iqcmaker/app/generator"
	"github.com/umputun/iqcmaker/app/history"
)

//go:generate moq -out mocks/ledger.go -pkg mocks -skip-ensure -fmt goimports . Ledger
//go:generate moq -out mocks/counter.go -pkg mocks -skip-ensure -fmt goimports . Counter
//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . Generator

var (
	// ErrEmptyText returned by Submit for blank text, nothing is recorded
	ErrEmptyText = errors.New("empty text")
	// ErrInFlight returned by Submit while another job is pending, nothing is recorded
	ErrInFlight = errors.New("job in flight")
)

// DefaultSettleDelay is the pause before the generation call, lets the UI show processing state
const DefaultSettleDelay = 1500 * time.Millisecond

// Ledger keeps job records, implemented by history.Store
type Ledger interface {
	Append(ctx context.Context, rec history.Record) error
	UpdateStatus(ctx context.Context, id string, status enums.JobStatus, result string) error
	Clear(ctx context.Context) error
	List() []history.Record
}

// Counter counts succeeded jobs, implemented by stats.Aggregator
type Counter interface {
	Total() int64
	RecordSuccess(ctx context.Context) (int64, error)
}

// Generator calls generation endpoint for the address, implemented by generator.Client and generator.Offline
type Generator interface {
	Generate(ctx context.Context, address string) error
}

// Params for NewManager
type Params struct {
	Ledger    Ledger
	Counter   Counter
	Generator Generator

	Endpoint         string        // generation endpoint, generator.DefaultEndpoint if empty
	SettleDelay      time.Duration // pause before generation call, negative means no pause
	TimeFormat       string        // layout of record timestamps, 15:04:05 if empty
	SubscriberBuffer int           // events buffer of each subscriber, 16 if not set

	Now   func() time.Time // clock, time.Now if nil
	NewID func() string    // record id maker, uuid v4 if nil
}

// Event is a state change observed by subscribers
type Event struct {
	Type   enums.EventType
	Record history.Record // affected record, empty for cleared
	Total  int64          // counter value at the time of event
}

// Manager is the job lifecycle manager, safe for concurrent use
type Manager struct {
	Params
	group *syncs.SizedGroup

	mu        sync.Mutex
	inFlight  bool
	result    string
	hasResult bool
	subs      map[int]chan Event
	lastSubID int
}

// NewManager makes Manager. Ledger, Counter and Generator are required.
func NewManager(p Params) (*Manager, error) {
	if p.Ledger == nil || p.Counter == nil || p.Generator == nil {
		return nil, errors.New("ledger, counter and generator are required")
	}
	if p.Endpoint == "" {
		p.Endpoint = generator.DefaultEndpoint
	}
	if _, err := generator.BuildURL(p.Endpoint, "check"); err != nil {
		return nil, fmt.Errorf("bad endpoint: %w", err)
	}
	if p.SettleDelay == 0 {
		p.SettleDelay = DefaultSettleDelay
	}
	if p.TimeFormat == "" {
		p.TimeFormat = "15:04:05"
	}
	if p.SubscriberBuffer <= 0 {
		p.SubscriberBuffer = 16
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.NewID == nil {
		p.NewID = func() string { return uuid.NewString() }
	}
	return &Manager{Params: p, group: syncs.NewSizedGroup(1), subs: map[int]chan Event{}}, nil
}

// Submit records trimmed text as pending job and starts generation in background.
// Returns ErrEmptyText or ErrInFlight without any side effects if the submission is rejected,
// and the ledger error if the record itself is refused (duplicate id or invalid record).
// Job run is detached from ctx cancellation, there is no way to abort it.
func (m *Manager) Submit(ctx context.Context, raw string) (history.Record, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return history.Record{}, ErrEmptyText
	}

	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return history.Record{}, ErrInFlight
	}
	m.inFlight = true
	m.mu.Unlock()

	address, err := generator.BuildURL(m.Endpoint, text)
	if err != nil { // endpoint checked on construction, can't happen
		m.release()
		return history.Record{}, err
	}

	rec := history.Record{
		ID:        m.NewID(),
		Timestamp: m.Now().Format(m.TimeFormat),
		Text:      text,
		Status:    enums.JobStatusPending,
	}
	if err := m.Ledger.Append(ctx, rec); err != nil {
		// record refused by the ledger, nothing to run
		if errors.Is(err, history.ErrDuplicateID) || errors.Is(err, history.ErrInvalidRecord) ||
			errors.Is(err, history.ErrTransition) {
			m.release()
			return history.Record{}, fmt.Errorf("can't record job %s: %w", rec.ID, err)
		}
		log.Printf("[WARN] can't save pending job %s, %v", rec.ID, err)
	}
	log.Printf("[INFO] job %s submitted, %q", rec.ID, text)
	m.publish(Event{Type: enums.EventTypeSubmitted, Record: rec, Total: m.Counter.Total()})

	runCtx := context.WithoutCancel(ctx)
	m.group.Go(func(context.Context) { m.run(runCtx, rec, address) })
	return rec, nil
}

// run settles the job, the only place where pending record moves to terminal state.
// In-flight guard is released before the terminal event is published.
func (m *Manager) run(ctx context.Context, rec history.Record, address string) {
	if m.SettleDelay > 0 {
		time.Sleep(m.SettleDelay)
	}

	if err := m.Generator.Generate(ctx, address); err != nil {
		log.Printf("[WARN] job %s failed, %v", rec.ID, err)
		rec.Status, rec.Result = enums.JobStatusFailed, ""
		if e := m.Ledger.UpdateStatus(ctx, rec.ID, rec.Status, ""); e != nil {
			log.Printf("[WARN] can't save failed job %s, %v", rec.ID, e)
		}
		m.release()
		m.publish(Event{Type: enums.EventTypeFailed, Record: rec, Total: m.Counter.Total()})
		return
	}

	rec.Status, rec.Result = enums.JobStatusSucceeded, address
	if err := m.Ledger.UpdateStatus(ctx, rec.ID, rec.Status, address); err != nil {
		log.Printf("[WARN] can't save succeeded job %s, %v", rec.ID, err)
	}
	total, err := m.Counter.RecordSuccess(ctx)
	if err != nil {
		log.Printf("[WARN] can't save total counter, %v", err)
	}

	m.mu.Lock()
	m.result, m.hasResult = address, true
	m.inFlight = false
	m.mu.Unlock()

	log.Printf("[INFO] job %s succeeded, %s", rec.ID, address)
	m.publish(Event{Type: enums.EventTypeSucceeded, Record: rec, Total: total})
}

func (m *Manager) release() {
	m.mu.Lock()
	m.inFlight = false
	m.mu.Unlock()
}

// ClearHistory removes all records, the counter and current result are kept
func (m *Manager) ClearHistory(ctx context.Context) error {
	err := m.Ledger.Clear(ctx)
	if err != nil {
		log.Printf("[WARN] can't clear persisted history, %v", err)
	}
	log.Printf("[INFO] history cleared")
	m.publish(Event{Type: enums.EventTypeCleared, Total: m.Counter.Total()})
	return err
}

// RecoverOrphaned marks pending records left by a previous run as failed.
// Should be called once on startup, before the first Submit.
func (m *Manager) RecoverOrphaned(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight {
		return 0, ErrInFlight
	}

	count := 0
	var errs []error
	for _, rec := range m.Ledger.List() {
		if rec.Status != enums.JobStatusPending {
			continue
		}
		count++
		if err := m.Ledger.UpdateStatus(ctx, rec.ID, enums.JobStatusFailed, ""); err != nil {
			errs = append(errs, fmt.Errorf("job %s: %w", rec.ID, err))
		}
	}
	if count > 0 {
		log.Printf("[INFO] %d orphaned pending jobs marked as failed", count)
	}
	return count, errors.Join(errs...)
}

// Result returns the address of the last succeeded job in this process
func (m *Manager) Result() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result, m.hasResult
}

// InFlight returns true while a submitted job is not settled
func (m *Manager) InFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

// History returns all records in submission order
func (m *Manager) History() []history.Record {
	return m.Ledger.List()
}

// Total returns total-created counter
func (m *Manager) Total() int64 {
	return m.Counter.Total()
}

// Wait blocks till the in-flight job, if any, is settled
func (m *Manager) Wait() {
	m.group.Wait()
}

// Subscribe returns channel of events and the func to unsubscribe. The channel is closed on unsubscribe.
// Slow subscribers lose events, publishing never blocks.
func (m *Manager) Subscribe() (events <-chan Event, unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSubID++
	id := m.lastSubID
	ch := make(chan Event, m.SubscriberBuffer)
	m.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs, id)
			close(ch)
		})
	}
}

func (m *Manager) publish(evt Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, ch := range m.subs {
		select {
		case ch <- evt:
		default:
			log.Printf("[WARN] subscriber %d is slow, %s event for %q dropped", id, evt.Type, evt.Record.ID)
		}
	}
}
