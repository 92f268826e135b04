package wm

// LifecycleEvent enumerates the notifications a Window emits. The set is
// closed: subscribers register per event, and emission order follows
// registration order.
type LifecycleEvent int

const (
	// EventMinimized fires after a window entered the minimized state.
	EventMinimized LifecycleEvent = iota
	// EventMaximized fires after a window entered the maximized state.
	EventMaximized
	// EventRestored fires after a window returned to the normal state.
	EventRestored
	// EventClosed fires when a window requests teardown. The manager owns
	// the actual destruction.
	EventClosed
	// EventFocused fires when a window requests front-most placement.
	EventFocused
)

// String returns the event name for logs.
func (e LifecycleEvent) String() string {
	switch e {
	case EventMinimized:
		return "minimized"
	case EventMaximized:
		return "maximized"
	case EventRestored:
		return "restored"
	case EventClosed:
		return "closed"
	case EventFocused:
		return "focused"
	default:
		return "unknown"
	}
}

// ListenerFunc receives lifecycle notifications for one window.
type ListenerFunc func(*Window)

// listenerRegistry holds ordered subscriber lists keyed by event.
type listenerRegistry struct {
	listeners map[LifecycleEvent][]ListenerFunc
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{listeners: make(map[LifecycleEvent][]ListenerFunc)}
}

func (r *listenerRegistry) on(event LifecycleEvent, fn ListenerFunc) {
	r.listeners[event] = append(r.listeners[event], fn)
}

func (r *listenerRegistry) emit(event LifecycleEvent, w *Window) {
	for _, fn := range r.listeners[event] {
		fn(w)
	}
}
