package reach

// --- Handler registry ---

type eventHandler struct {
	id uint32
	fn func(InteractableEvent)
}

// handlerRegistry stores per-event-type callbacks in registration order.
type handlerRegistry struct {
	byType [eventTypeCount][]eventHandler
	nextID uint32
}

func (r *handlerRegistry) add(event EventType, fn func(InteractableEvent)) uint32 {
	r.nextID++
	r.byType[event] = append(r.byType[event], eventHandler{id: r.nextID, fn: fn})
	return r.nextID
}

// remove deletes a handler from the slice to avoid nil iteration waste.
func (r *handlerRegistry) remove(event EventType, id uint32) {
	s := r.byType[event]
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			r.byType[event] = s[:len(s)-1]
			return
		}
	}
}

// invoke calls every handler for e.Type. Handlers added or removed during
// the call take effect on the next invoke.
func (r *handlerRegistry) invoke(e InteractableEvent) {
	s := r.byType[e.Type]
	if len(s) == 0 {
		return
	}
	snapshot := make([]eventHandler, len(s))
	copy(snapshot, s)
	for _, h := range snapshot {
		h.fn(e)
	}
}

func (r *handlerRegistry) clear() {
	for i := range r.byType {
		r.byType[i] = nil
	}
}

// handlerOwner is implemented by anything that hands out CallbackHandles.
type handlerOwner interface {
	removeHandler(event EventType, id uint32)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	owner handlerOwner
	event EventType
}

// Remove unregisters this callback so it no longer fires. Safe to call more
// than once and on the zero value.
func (h CallbackHandle) Remove() {
	if h.owner == nil {
		return
	}
	h.owner.removeHandler(h.event, h.id)
}
