package eventbus

// erasedCallback is the uniform invocation surface for callbacks of any
// message type. Implementations restore the payload to its concrete type
// before calling the user function.
type erasedCallback interface {
	invoke(payload any)
}

// callback adapts a typed user function to the erased invocation path.
//
// The payload assertion cannot fail when reached through registry lookup:
// the registry key and the stored callback are derived from the same type
// parameter, so a mismatch is only possible through unsafe manipulation and
// is treated as a fatal programming error (the assertion panics).
type callback[T any] struct {
	fn func(T)
}

func (c callback[T]) invoke(payload any) {
	c.fn(payload.(T))
}
