package eventbus

import "reflect"

// Key identifies a message type for routing. Two keys compare equal exactly
// when they were derived from the same Go type; structurally identical but
// distinct named types produce distinct keys.
type Key = reflect.Type

// keyFor derives the routing key for T. Deterministic within a process and
// free of runtime state.
func keyFor[T any]() Key {
	return reflect.TypeOf((*T)(nil)).Elem()
}
