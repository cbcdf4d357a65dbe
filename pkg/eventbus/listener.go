package eventbus

// Listener is a scope-bound handle grouping callback registrations. Every
// registration made through a listener carries its id, and closing the
// listener removes them all in one step. The usual pattern pairs
// construction with a deferred Close so deregistration happens on every
// exit path of the owning scope:
//
//	l := eventbus.NewListener(bus)
//	defer l.Close()
//	eventbus.Listen(l, func(e OrderCreated) { ... })
//
// A Listener must not be copied; pass the pointer.
type Listener struct {
	id       int
	bus      *Bus
	disposed bool
}

// NewListener binds a new listener to b and assigns it a fresh id. Ids are
// monotonically increasing and never reused, so a listener's bus-side
// records stay removable even if the handle itself moves around. Passing a
// nil bus yields an unbound listener whose operations are all silent
// no-ops.
func NewListener(b *Bus) *Listener {
	if b == nil {
		return &Listener{}
	}
	return &Listener{id: b.newListenerID(), bus: b}
}

// Listen registers fn for messages of type T under l's id. Repeat calls
// append: a listener may hold any number of callbacks per type, invoked in
// registration order. Silent no-op on an unbound or closed listener, or
// when fn is nil.
func Listen[T any](l *Listener, fn func(T)) {
	if l == nil || l.bus == nil || l.disposed || fn == nil {
		return
	}
	l.bus.addCallback(keyFor[T](), l.id, callback[T]{fn: fn})
}

// Unlisten removes l's registrations for type T only; registrations for
// other types stay intact.
func Unlisten[T any](l *Listener) {
	if l == nil || l.bus == nil {
		return
	}
	l.bus.removeGroup(keyFor[T](), l.id)
}

// UnlistenAll removes l's registrations for every message type. Safe to
// call any number of times, including after Close.
func (l *Listener) UnlistenAll() {
	if l == nil || l.bus == nil {
		return
	}
	l.bus.removeListener(l.id)
}

// Close disposes the listener: all registrations are removed and further
// Listen calls are rejected. The transition is terminal and idempotent.
func (l *Listener) Close() {
	if l == nil || l.disposed {
		return
	}
	l.UnlistenAll()
	l.disposed = true
}
