// Package eventbus provides an in-process publish/subscribe registry for
// typed messages. Components register callbacks through scoped Listener
// handles and exchange values without holding references to each other,
// either synchronously (Immediate) or batched (Post then Process).
//
// Thread-safety: none. The bus uses no locking and no atomics; all
// operations run to completion on the calling goroutine. Callers that share
// a bus across goroutines must synchronize externally. Callbacks may freely
// call back into the same bus (Listen, Unlisten, Post, Immediate): dispatch
// iterates a snapshot, so reentrant mutation never invalidates an
// in-progress fan-out.
//
// Error handling: dispatch to a type with no registrations is a silent
// no-op, and operations on unbound or closed listeners are silent no-ops.
// A panicking callback is not recovered; it propagates to the dispatching
// caller and the remaining callbacks of that fan-out do not run.
package eventbus

import (
	"github.com/google/uuid"

	"github.com/typebusio/typebus/pkg/logger"
)

// Config configures a Bus. The zero value is usable: no logging, no hooks,
// no preallocated queue.
type Config struct {
	// PendingCapacity preallocates the deferred-message queue.
	PendingCapacity int

	// Logger receives DEBUG-level registration and dispatch records.
	// Nil disables logging.
	Logger logger.Logger

	// Hooks receives lifecycle notifications. Nil disables them.
	Hooks Hooks
}

// DefaultConfig returns the default bus configuration.
func DefaultConfig() Config {
	return Config{PendingCapacity: 16}
}

// pendingMessage is one deferred dispatch produced by Post. The id is a
// correlation token for logs and hooks, not a routing input.
type pendingMessage struct {
	id      string
	key     Key
	payload any
}

// Bus is the shared registry and dispatcher. It owns all callback
// registrations, the deferred-message queue, and the listener id counter.
// A Bus must outlive every Listener bound to it.
type Bus struct {
	registry       *registry
	pending        []pendingMessage
	lastListenerID int
	processing     bool

	log   logger.Logger
	hooks Hooks
}

// New creates a bus with DefaultConfig.
func New() *Bus {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a bus with the given configuration.
func NewWithConfig(cfg Config) *Bus {
	capacity := cfg.PendingCapacity
	if capacity < 0 {
		capacity = 0
	}
	return &Bus{
		registry: newRegistry(),
		pending:  make([]pendingMessage, 0, capacity),
		log:      cfg.Logger,
		hooks:    cfg.Hooks,
	}
}

// Immediate dispatches msg synchronously to every callback currently
// registered for T, in listener-registration order and then per-listener
// registration order. Every matching callback runs on the caller's stack
// before Immediate returns. A type with no registrations dispatches to
// nobody.
func Immediate[T any](b *Bus, msg T) {
	b.dispatch(keyFor[T](), msg)
}

// Post appends msg to the deferred queue without dispatching. It always
// succeeds; queue growth is bounded only by memory and is the caller's
// concern.
func Post[T any](b *Bus, msg T) {
	b.post(keyFor[T](), msg)
}

// Process drains the deferred queue in FIFO order, dispatching each entry
// with Immediate semantics and then discarding it. A Post issued by a
// callback running inside Process lands in the same backing queue and is
// delivered before Process returns; the queue is cleared only after the
// full drain. A reentrant Process call from inside a callback is a no-op,
// since the outer drain already covers the queue.
func (b *Bus) Process() {
	if b.processing {
		return
	}
	b.processing = true
	defer func() { b.processing = false }()

	drained := 0
	for i := 0; i < len(b.pending); i++ {
		pm := b.pending[i]
		b.dispatch(pm.key, pm.payload)
		drained++
	}
	b.pending = b.pending[:0]
	if b.log != nil && drained > 0 {
		b.log.WithFields(map[string]interface{}{
			"drained": drained,
		}).Debug("pending queue processed")
	}
	if b.hooks != nil {
		b.hooks.Processed(drained)
	}
}

// Stats is a point-in-time snapshot of bus state.
type Stats struct {
	// PendingMessages is the current deferred-queue depth.
	PendingMessages int

	// MessageTypes is the number of distinct types with registrations.
	MessageTypes int

	// ListenerGroups is the number of (type, listener) groups.
	ListenerGroups int

	// Callbacks is the total number of registered callbacks.
	Callbacks int
}

// Stats reports the bus's current registration and queue state.
func (b *Bus) Stats() Stats {
	types, groups, callbacks := b.registry.counts()
	return Stats{
		PendingMessages: len(b.pending),
		MessageTypes:    types,
		ListenerGroups:  groups,
		Callbacks:       callbacks,
	}
}

func (b *Bus) post(key Key, payload any) {
	pm := pendingMessage{
		id:      uuid.New().String(),
		key:     key,
		payload: payload,
	}
	b.pending = append(b.pending, pm)
	if b.log != nil {
		b.log.WithFields(map[string]interface{}{
			"type":       key.String(),
			"message_id": pm.id,
		}).Debug("message posted")
	}
	if b.hooks != nil {
		b.hooks.Posted(key, pm.id)
	}
}

// dispatch fans payload out to a snapshot of the callbacks for key. The
// snapshot keeps the fan-out valid while callbacks mutate the registry or
// the queue.
func (b *Bus) dispatch(key Key, payload any) {
	calls := b.registry.snapshot(key)
	if len(calls) == 0 {
		return
	}
	if b.log != nil {
		b.log.WithFields(map[string]interface{}{
			"type":      key.String(),
			"callbacks": len(calls),
		}).Debug("dispatching message")
	}
	for _, c := range calls {
		c.invoke(payload)
	}
	if b.hooks != nil {
		b.hooks.Dispatched(key, len(calls))
	}
}

// newListenerID hands out the next listener id. Increment before return:
// the first id is 1, ids are never reused, and 0 stays the unbound
// sentinel.
func (b *Bus) newListenerID() int {
	b.lastListenerID++
	return b.lastListenerID
}

func (b *Bus) addCallback(key Key, listenerID int, cb erasedCallback) {
	b.registry.add(key, listenerID, cb)
	if b.log != nil {
		b.log.WithFields(map[string]interface{}{
			"type":        key.String(),
			"listener_id": listenerID,
		}).Debug("callback registered")
	}
	if b.hooks != nil {
		b.hooks.CallbackRegistered(key, listenerID)
	}
}

func (b *Bus) removeGroup(key Key, listenerID int) {
	n := b.registry.removeGroup(key, listenerID)
	if n == 0 {
		return
	}
	if b.log != nil {
		b.log.WithFields(map[string]interface{}{
			"type":        key.String(),
			"listener_id": listenerID,
			"callbacks":   n,
		}).Debug("callbacks removed")
	}
	if b.hooks != nil {
		b.hooks.CallbacksRemoved(key, listenerID, n)
	}
}

func (b *Bus) removeListener(listenerID int) {
	for _, rm := range b.registry.removeListener(listenerID) {
		if b.log != nil {
			b.log.WithFields(map[string]interface{}{
				"type":        rm.key.String(),
				"listener_id": listenerID,
				"callbacks":   rm.count,
			}).Debug("callbacks removed")
		}
		if b.hooks != nil {
			b.hooks.CallbacksRemoved(rm.key, listenerID, rm.count)
		}
	}
}
