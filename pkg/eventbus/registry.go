package eventbus

// callbackGroup holds the callbacks one listener registered for one message
// type, in registration order.
type callbackGroup struct {
	listenerID int
	calls      []erasedCallback
}

// removal records one group dropped from the registry.
type removal struct {
	key   Key
	count int
}

// registry maps message type keys to per-listener callback groups. Group
// order is listener registration order for that type. Empty groups and
// empty type entries are removed eagerly, so every stored key has at least
// one callback behind it.
type registry struct {
	types map[Key][]*callbackGroup
}

func newRegistry() *registry {
	return &registry{types: make(map[Key][]*callbackGroup)}
}

// add appends cb to the group for (key, listenerID), creating the group at
// the end of the type's sequence if the listener has none yet.
func (r *registry) add(key Key, listenerID int, cb erasedCallback) {
	groups := r.types[key]
	for _, g := range groups {
		if g.listenerID == listenerID {
			g.calls = append(g.calls, cb)
			return
		}
	}
	r.types[key] = append(groups, &callbackGroup{
		listenerID: listenerID,
		calls:      []erasedCallback{cb},
	})
}

// removeGroup drops the group for listenerID under key, returning the
// number of callbacks removed (0 when no such group exists).
func (r *registry) removeGroup(key Key, listenerID int) int {
	groups, ok := r.types[key]
	if !ok {
		return 0
	}
	removed := 0
	kept := groups[:0]
	for _, g := range groups {
		if g.listenerID == listenerID {
			removed += len(g.calls)
			continue
		}
		kept = append(kept, g)
	}
	if len(kept) == 0 {
		delete(r.types, key)
	} else {
		r.types[key] = kept
	}
	return removed
}

// removeListener drops listenerID's groups under every key and reports the
// removals per key.
func (r *registry) removeListener(listenerID int) []removal {
	var removals []removal
	for key := range r.types {
		if n := r.removeGroup(key, listenerID); n > 0 {
			removals = append(removals, removal{key: key, count: n})
		}
	}
	return removals
}

// snapshot returns the callbacks registered for key, group order then
// intra-group order. The returned slice is a copy, so an in-progress
// fan-out survives reentrant mutation of the registry.
func (r *registry) snapshot(key Key) []erasedCallback {
	groups, ok := r.types[key]
	if !ok {
		return nil
	}
	n := 0
	for _, g := range groups {
		n += len(g.calls)
	}
	out := make([]erasedCallback, 0, n)
	for _, g := range groups {
		out = append(out, g.calls...)
	}
	return out
}

// counts reports distinct type entries, listener groups, and callbacks.
func (r *registry) counts() (types, groups, callbacks int) {
	types = len(r.types)
	for _, gs := range r.types {
		groups += len(gs)
		for _, g := range gs {
			callbacks += len(g.calls)
		}
	}
	return types, groups, callbacks
}
