package eventbus

// Hooks receives bus lifecycle notifications, e.g. for metrics export. A
// nil Hooks in Config disables them. Calls happen synchronously on the
// caller's goroutine under the bus's single-threaded discipline, so
// implementations must not block.
type Hooks interface {
	// CallbackRegistered fires once per successful Listen call.
	CallbackRegistered(key Key, listenerID int)

	// CallbacksRemoved fires when a listener's group for key is dropped,
	// with the number of callbacks the group held.
	CallbacksRemoved(key Key, listenerID int, count int)

	// Posted fires when a message enters the deferred queue.
	Posted(key Key, messageID string)

	// Dispatched fires after a fan-out that reached at least one callback.
	Dispatched(key Key, delivered int)

	// Processed fires at the end of every Process call with the number of
	// drained messages (possibly zero).
	Processed(drained int)
}
