// Package undo holds the most recently deleted task for a short window.
package undo

import (
	"time"

	"github.com/nissyi-gh/momentum/internal/model"
)

// DefaultTTL is how long a deleted task stays recoverable.
const DefaultTTL = 6 * time.Second

// Entry is a deleted task and the position it was removed from.
type Entry struct {
	Task    model.Task
	Index   int
	ArmedAt time.Time
}

// Timer is the cancellable handle returned by a timer factory.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

// Option configures a Buffer.
type Option func(*Buffer)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Buffer) { b.now = now }
}

// WithAfterFunc replaces time.AfterFunc.
func WithAfterFunc(af AfterFunc) Option {
	return func(b *Buffer) { b.afterFunc = af }
}

// Buffer is a single slot: either empty or holding one Entry. A new Hold
// replaces the previous entry without warning.
//
// Buffer is not safe for concurrent use. Expiry callbacks run on the timer's
// goroutine and must re-enter through the owner's lock before calling Expire.
type Buffer struct {
	ttl       time.Duration
	now       func() time.Time
	afterFunc AfterFunc

	entry *Entry
	timer Timer
	gen   uint64
}

// New returns an empty buffer. A non-positive ttl means DefaultTTL.
func New(ttl time.Duration, opts ...Option) *Buffer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	b := &Buffer{
		ttl: ttl,
		now: time.Now,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// TTL returns the expiry window.
func (b *Buffer) TTL() time.Duration {
	return b.ttl
}

// Hold stores task and arms the expiry timer. onExpire is called from the
// timer goroutine with the generation returned here; pass it to Expire.
func (b *Buffer) Hold(task model.Task, index int, onExpire func(gen uint64)) uint64 {
	b.stopTimer()
	b.gen++
	gen := b.gen
	b.entry = &Entry{Task: task, Index: index, ArmedAt: b.now()}
	if onExpire != nil {
		b.timer = b.afterFunc(b.ttl, func() { onExpire(gen) })
	}
	return gen
}

// Restore empties the buffer and returns what it held. It reports false when
// the buffer was empty or the window has already passed.
func (b *Buffer) Restore() (Entry, bool) {
	e, ok := b.Pending()
	b.clear()
	return e, ok
}

// Expire empties the buffer if gen is still the current generation.
// Callbacks from superseded timers are ignored.
func (b *Buffer) Expire(gen uint64) (Entry, bool) {
	if b.entry == nil || gen != b.gen {
		return Entry{}, false
	}
	e := *b.entry
	b.clear()
	return e, true
}

// Pending returns the held entry while it is still recoverable.
func (b *Buffer) Pending() (Entry, bool) {
	if b.entry == nil || b.expired() {
		return Entry{}, false
	}
	return *b.entry, true
}

// Remaining returns how long the held entry stays recoverable.
func (b *Buffer) Remaining() time.Duration {
	if b.entry == nil {
		return 0
	}
	left := b.ttl - b.now().Sub(b.entry.ArmedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Stop cancels any pending timer and drops the entry.
func (b *Buffer) Stop() {
	b.clear()
}

func (b *Buffer) expired() bool {
	return b.now().Sub(b.entry.ArmedAt) >= b.ttl
}

func (b *Buffer) clear() {
	b.stopTimer()
	b.entry = nil
}

func (b *Buffer) stopTimer() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
