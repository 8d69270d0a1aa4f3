package retained

// Subscription identifies a handler registered on an Event.
type Subscription uint64

type handler[T any] struct {
	id Subscription
	fn func(T)
}

// Event is an ordered observer list. Handlers run in subscription order, which
// anchor propagation relies on: a parent's own Resize subscribers run before
// the children that subscribed later.
//
// The zero value is ready to use.
type Event[T any] struct {
	next     Subscription
	removals uint64
	handlers []handler[T]
}

// Subscribe registers fn and returns a token for Unsubscribe.
func (e *Event[T]) Subscribe(fn func(T)) Subscription {
	e.next++
	e.handlers = append(e.handlers, handler[T]{id: e.next, fn: fn})
	return e.next
}

// Unsubscribe removes the handler registered under id. Unknown ids are ignored.
func (e *Event[T]) Unsubscribe(id Subscription) {
	for i, h := range e.handlers {
		if h.id == id {
			e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
			e.removals++
			return
		}
	}
}

// Len returns the number of registered handlers.
func (e *Event[T]) Len() int { return len(e.handlers) }

// Emit calls every handler with arg. Handlers added during the emission run
// from the next Emit on; handlers removed during it are not called again.
func (e *Event[T]) Emit(arg T) {
	if len(e.handlers) == 0 {
		return
	}
	snapshot := e.handlers
	removals := e.removals
	for _, h := range snapshot {
		if e.removals != removals && !e.subscribed(h.id) {
			continue
		}
		h.fn(arg)
	}
}

func (e *Event[T]) subscribed(id Subscription) bool {
	for _, h := range e.handlers {
		if h.id == id {
			return true
		}
	}
	return false
}

// Clear drops all handlers.
func (e *Event[T]) Clear() {
	e.handlers = nil
	e.removals++
}

// EventArgs is the payload for notifications that carry no data beyond the
// sender.
type EventArgs struct {
	Sender  *Control
	Handled bool
}

// MouseEventArgs describes a mouse transition.
type MouseEventArgs struct {
	Sender     *Control
	Button     MouseButton
	Position   Point // Cursor position in client coordinates
	Difference Point // Movement since the previous tick
	Scroll     Point // Wheel delta for MouseScroll
	Buttons    [MouseButtonCount]bool
	Handled    bool
}

// KeyEventArgs describes a key transition. Modifier flags reflect the
// keyboard state on the tick the event fired.
type KeyEventArgs struct {
	Sender  *Control
	Key     Key
	Shift   bool
	Control bool
	Alt     bool
	Repeat  bool // KeyPress produced by auto-repeat
	Handled bool
}

// MoveEventArgs carries a position change.
type MoveEventArgs struct {
	Sender          *Control
	Left, Top       int
	OldLeft, OldTop int
}

// ResizeEventArgs carries a size change.
type ResizeEventArgs struct {
	Sender              *Control
	Width, Height       int
	OldWidth, OldHeight int
}

// DrawEventArgs is passed to custom painters.
type DrawEventArgs struct {
	Sender *Control
	List   *DrawList
	Rect   Rect // Control rectangle in target coordinates
}

// WindowClosingEventArgs lets subscribers cancel a close request.
type WindowClosingEventArgs struct {
	Sender *Control
	Cancel bool
}
