package eventbus

import "testing"

type regEventA struct{}
type regEventB struct{}

type recorded struct {
	hits int
}

func (r *recorded) invoke(any) { r.hits++ }

func TestRegistry_AddGroupsByListener(t *testing.T) {
	r := newRegistry()
	key := keyFor[regEventA]()

	r.add(key, 1, &recorded{})
	r.add(key, 2, &recorded{})
	r.add(key, 1, &recorded{})

	groups := r.types[key]
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].listenerID != 1 || len(groups[0].calls) != 2 {
		t.Errorf("group 0: listener %d with %d calls, want listener 1 with 2", groups[0].listenerID, len(groups[0].calls))
	}
	if groups[1].listenerID != 2 || len(groups[1].calls) != 1 {
		t.Errorf("group 1: listener %d with %d calls, want listener 2 with 1", groups[1].listenerID, len(groups[1].calls))
	}
}

func TestRegistry_RemoveGroupDeletesEmptyTypeEntry(t *testing.T) {
	r := newRegistry()
	key := keyFor[regEventA]()

	r.add(key, 1, &recorded{})
	r.add(key, 1, &recorded{})

	if n := r.removeGroup(key, 1); n != 2 {
		t.Errorf("removeGroup returned %d, want 2", n)
	}
	if _, ok := r.types[key]; ok {
		t.Error("empty type entry not deleted")
	}

	if n := r.removeGroup(key, 1); n != 0 {
		t.Errorf("removing again returned %d, want 0", n)
	}
}

func TestRegistry_RemoveListenerSpansTypes(t *testing.T) {
	r := newRegistry()
	keyA := keyFor[regEventA]()
	keyB := keyFor[regEventB]()

	r.add(keyA, 1, &recorded{})
	r.add(keyB, 1, &recorded{})
	r.add(keyB, 2, &recorded{})

	removals := r.removeListener(1)
	if len(removals) != 2 {
		t.Fatalf("got %d removals, want 2", len(removals))
	}

	if _, ok := r.types[keyA]; ok {
		t.Error("type A entry should be gone")
	}
	if groups := r.types[keyB]; len(groups) != 1 || groups[0].listenerID != 2 {
		t.Errorf("type B groups = %v, want only listener 2", groups)
	}
}

func TestRegistry_SnapshotIsACopy(t *testing.T) {
	r := newRegistry()
	key := keyFor[regEventA]()

	first := &recorded{}
	second := &recorded{}
	r.add(key, 1, first)
	r.add(key, 2, second)

	snap := r.snapshot(key)
	r.removeGroup(key, 2)

	if len(snap) != 2 {
		t.Fatalf("snapshot length %d, want 2", len(snap))
	}
	for _, c := range snap {
		c.invoke(nil)
	}
	if first.hits != 1 || second.hits != 1 {
		t.Errorf("snapshot delivery hits = %d/%d, want 1/1", first.hits, second.hits)
	}
}

func TestRegistry_SnapshotUnknownKey(t *testing.T) {
	r := newRegistry()
	if snap := r.snapshot(keyFor[regEventA]()); snap != nil {
		t.Errorf("snapshot of unknown key = %v, want nil", snap)
	}
}

func TestRegistry_Counts(t *testing.T) {
	r := newRegistry()
	r.add(keyFor[regEventA](), 1, &recorded{})
	r.add(keyFor[regEventA](), 1, &recorded{})
	r.add(keyFor[regEventB](), 1, &recorded{})

	types, groups, callbacks := r.counts()
	if types != 2 || groups != 2 || callbacks != 3 {
		t.Errorf("counts = %d/%d/%d, want 2/2/3", types, groups, callbacks)
	}
}
