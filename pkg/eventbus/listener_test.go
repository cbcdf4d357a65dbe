package eventbus_test

import (
	"testing"

	"github.com/typebusio/typebus/pkg/eventbus"
)

func TestListen_MultipleCallbacksSameTypeInOrder(t *testing.T) {
	b := eventbus.New()
	l := eventbus.NewListener(b)
	defer l.Close()

	var order []int
	eventbus.Listen(l, func(orderCreated) { order = append(order, 1) })
	eventbus.Listen(l, func(orderCreated) { order = append(order, 2) })
	eventbus.Listen(l, func(orderCreated) { order = append(order, 3) })

	eventbus.Immediate(b, orderCreated{})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("invocation order %v, want [1 2 3]", order)
	}
}

func TestUnlisten_RemovesOnlyThatType(t *testing.T) {
	b := eventbus.New()
	l := eventbus.NewListener(b)
	defer l.Close()

	orders, payments := 0, 0
	eventbus.Listen(l, func(orderCreated) { orders++ })
	eventbus.Listen(l, func(paymentReceived) { payments++ })

	eventbus.Unlisten[orderCreated](l)

	eventbus.Immediate(b, orderCreated{})
	eventbus.Immediate(b, paymentReceived{})

	if orders != 0 {
		t.Errorf("unlistened type still invoked %d times", orders)
	}
	if payments != 1 {
		t.Errorf("remaining type invoked %d times, want 1", payments)
	}
}

func TestUnlisten_DoesNotAffectOtherListeners(t *testing.T) {
	b := eventbus.New()
	one := eventbus.NewListener(b)
	defer one.Close()
	two := eventbus.NewListener(b)
	defer two.Close()

	oneCount, twoCount := 0, 0
	eventbus.Listen(one, func(orderCreated) { oneCount++ })
	eventbus.Listen(two, func(orderCreated) { twoCount++ })

	eventbus.Unlisten[orderCreated](one)
	eventbus.Immediate(b, orderCreated{})

	if oneCount != 0 {
		t.Errorf("unlistened listener invoked %d times", oneCount)
	}
	if twoCount != 1 {
		t.Errorf("other listener invoked %d times, want 1", twoCount)
	}
}

func TestClose_StopsAllDelivery(t *testing.T) {
	b := eventbus.New()
	l := eventbus.NewListener(b)

	count := 0
	eventbus.Listen(l, func(orderCreated) { count++ })
	eventbus.Listen(l, func(paymentReceived) { count++ })

	eventbus.Post(b, orderCreated{})
	l.Close()

	eventbus.Immediate(b, orderCreated{})
	eventbus.Immediate(b, paymentReceived{})
	b.Process()

	if count != 0 {
		t.Errorf("closed listener invoked %d times, want 0", count)
	}
}

func TestClose_Idempotent(t *testing.T) {
	b := eventbus.New()
	l := eventbus.NewListener(b)

	eventbus.Listen(l, func(orderCreated) {})

	l.Close()
	l.Close()
	l.UnlistenAll()

	// Listen after Close is rejected.
	count := 0
	eventbus.Listen(l, func(orderCreated) { count++ })
	eventbus.Immediate(b, orderCreated{})

	if count != 0 {
		t.Errorf("Listen after Close registered a callback, invoked %d times", count)
	}
}

func TestUnlistenAll_CallableRepeatedly(t *testing.T) {
	b := eventbus.New()
	l := eventbus.NewListener(b)
	defer l.Close()

	count := 0
	eventbus.Listen(l, func(orderCreated) { count++ })

	l.UnlistenAll()
	l.UnlistenAll()

	// Not disposed: the listener may register again.
	eventbus.Listen(l, func(orderCreated) { count++ })
	eventbus.Immediate(b, orderCreated{})

	if count != 1 {
		t.Errorf("re-registered callback invoked %d times, want 1", count)
	}
}

func TestNilBusListener_AllOpsNoOp(t *testing.T) {
	l := eventbus.NewListener(nil)

	eventbus.Listen(l, func(orderCreated) {
		t.Error("callback on unbound listener must never run")
	})
	eventbus.Unlisten[orderCreated](l)
	l.UnlistenAll()
	l.Close()
}

func TestListen_NilCallbackIgnored(t *testing.T) {
	b := eventbus.New()
	l := eventbus.NewListener(b)
	defer l.Close()

	eventbus.Listen[orderCreated](l, nil)
	eventbus.Immediate(b, orderCreated{})

	if s := b.Stats(); s.Callbacks != 0 {
		t.Errorf("nil callback registered: Stats = %+v", s)
	}
}

func TestListeners_IndependentLifetimes(t *testing.T) {
	b := eventbus.New()

	counts := make([]int, 3)
	listeners := make([]*eventbus.Listener, 3)
	for i := range listeners {
		listeners[i] = eventbus.NewListener(b)
		n := i
		eventbus.Listen(listeners[i], func(orderCreated) { counts[n]++ })
	}

	listeners[1].Close()
	eventbus.Immediate(b, orderCreated{})

	if counts[0] != 1 || counts[1] != 0 || counts[2] != 1 {
		t.Errorf("counts = %v, want [1 0 1]", counts)
	}

	listeners[0].Close()
	listeners[2].Close()
	eventbus.Immediate(b, orderCreated{})

	if counts[0] != 1 || counts[2] != 1 {
		t.Errorf("counts after closing all = %v, want [1 0 1]", counts)
	}
}
