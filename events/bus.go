package events

// Handler processes specific event types
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously from Emit
	HandleEvent(ev Event)

	// EventTypes returns the event types this handler processes
	// The bus uses this for registration
	EventTypes() []EventType
}

// HandlerFunc adapts a function to Handler for the given types
type HandlerFunc struct {
	Fn    func(ev Event)
	Types []EventType
}

func (h HandlerFunc) HandleEvent(ev Event)     { h.Fn(ev) }
func (h HandlerFunc) EventTypes() []EventType { return h.Types }

// Bus dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded, synchronous dispatch (no queue)
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - A nil *Bus is valid and drops every event
type Bus struct {
	handlers map[EventType][]Handler
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Register adds a handler for its declared event types
func (b *Bus) Register(h Handler) {
	for _, t := range h.EventTypes() {
		b.handlers[t] = append(b.handlers[t], h)
	}
}

// Subscribe registers fn for the given types
func (b *Bus) Subscribe(fn func(ev Event), types ...EventType) {
	b.Register(HandlerFunc{Fn: fn, Types: types})
}

// Emit delivers ev to every handler of its type before returning
func (b *Bus) Emit(ev Event) {
	if b == nil {
		return
	}
	for _, h := range b.handlers[ev.Type] {
		h.HandleEvent(ev)
	}
}

// HasHandlers returns true if any handlers are registered for the given type
func (b *Bus) HasHandlers(t EventType) bool {
	return b != nil && len(b.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (b *Bus) HandlerCount(t EventType) int {
	if b == nil {
		return 0
	}
	return len(b.handlers[t])
}
