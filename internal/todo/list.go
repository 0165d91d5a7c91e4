// Package todo is the command surface the UI drives. A List owns the task
// store, the undo slot and the active filter, and turns them into snapshots
// for rendering.
package todo

import (
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nissyi-gh/momentum/internal/model"
	"github.com/nissyi-gh/momentum/internal/store"
	"github.com/nissyi-gh/momentum/internal/undo"
	"github.com/nissyi-gh/momentum/internal/view"
)

// Edit carries the fields EditTask overwrites.
type Edit struct {
	Description string
	Deadline    *string
	Priority    model.Priority
	Notes       string
}

// EventKind identifies an asynchronous change.
type EventKind int

const (
	// EventUndoExpired fires when a deleted task can no longer be restored.
	EventUndoExpired EventKind = iota + 1
)

// Event is delivered to subscribers outside the list's lock.
type Event struct {
	Kind EventKind
	Task model.Task
}

// List is safe for concurrent use.
type List struct {
	mu        sync.Mutex
	store     *store.TaskStore
	undo      *undo.Buffer
	filter    view.Status
	search    string
	quotes    model.QuotePicker
	now       func() time.Time
	logger    *log.Logger
	undoTTL   time.Duration
	undoOpts  []undo.Option
	listeners []func(Event)
}

// Option configures a List.
type Option func(*List)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(list *List) { list.logger = l }
}

// WithClock replaces time.Now for creation stamps, overdue checks and undo expiry.
func WithClock(now func() time.Time) Option {
	return func(list *List) { list.now = now }
}

// WithQuotes sets how new tasks get their quote.
func WithQuotes(pick model.QuotePicker) Option {
	return func(list *List) { list.quotes = pick }
}

// WithUndoTTL sets how long a deleted task stays recoverable.
func WithUndoTTL(d time.Duration) Option {
	return func(list *List) { list.undoTTL = d }
}

// WithUndoOptions passes extra options to the undo buffer.
func WithUndoOptions(opts ...undo.Option) Option {
	return func(list *List) { list.undoOpts = append(list.undoOpts, opts...) }
}

// New returns an empty list showing all tasks.
func New(opts ...Option) *List {
	l := &List{
		now:     time.Now,
		quotes:  model.RandomQuotes(nil),
		undoTTL: undo.DefaultTTL,
		filter:  view.StatusAll,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}
	l.store = store.New(l.now)
	bufOpts := append([]undo.Option{undo.WithClock(l.now)}, l.undoOpts...)
	l.undo = undo.New(l.undoTTL, bufOpts...)
	return l
}

// Subscribe registers fn for asynchronous events such as undo expiry.
func (l *List) Subscribe(fn func(Event)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

// Close cancels the pending undo timer.
func (l *List) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.undo.Stop()
}

// All returns every task in store order.
func (l *List) All() []model.Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.List()
}

// Get returns the task with the given ID.
func (l *List) Get(id model.TaskID) (model.Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Get(id)
}

func (l *List) notify(ev Event) {
	l.mu.Lock()
	listeners := slices.Clone(l.listeners)
	l.mu.Unlock()
	for _, fn := range listeners {
		fn(ev)
	}
}
