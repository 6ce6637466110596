package steam

import (
	"sort"
	"sync"
)

// CallbackRegistry queues callback payloads and hands them to registered
// handlers when RunCallbacks is called. It is safe for concurrent use; handlers
// run on the goroutine calling RunCallbacks with no lock held, so they may
// register or unregister handlers themselves.
type CallbackRegistry struct {
	mu       sync.Mutex
	nextID   uint64
	handlers map[uint64]func(Callback)
	queue    []Callback
}

func NewCallbackRegistry() *CallbackRegistry {
	return &CallbackRegistry{handlers: make(map[uint64]func(Callback))}
}

// CallbackHandle identifies one subscription.
type CallbackHandle struct {
	id       uint64
	registry *CallbackRegistry
	once     sync.Once
}

// Unregister removes the subscription. Calling it more than once is a no-op.
func (h *CallbackHandle) Unregister() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		h.registry.mu.Lock()
		delete(h.registry.handlers, h.id)
		h.registry.mu.Unlock()
	})
}

func (r *CallbackRegistry) RegisterCallback(fn func(Callback)) *CallbackHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.handlers[r.nextID] = fn
	return &CallbackHandle{id: r.nextID, registry: r}
}

// Post enqueues a payload for the next RunCallbacks.
func (r *CallbackRegistry) Post(cb Callback) {
	r.mu.Lock()
	r.queue = append(r.queue, cb)
	r.mu.Unlock()
}

// RunCallbacks delivers every payload queued so far, in order, to every
// handler registered at the time of that payload's delivery.
func (r *CallbackRegistry) RunCallbacks() {
	r.mu.Lock()
	pending := r.queue
	r.queue = nil
	r.mu.Unlock()
	for _, cb := range pending {
		for _, fn := range r.snapshot() {
			fn(cb)
		}
	}
}

// Subscribers reports how many handlers are currently registered.
func (r *CallbackRegistry) Subscribers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers)
}

func (r *CallbackRegistry) snapshot() []func(Callback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uint64, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(Callback), len(ids))
	for i, id := range ids {
		fns[i] = r.handlers[id]
	}
	return fns
}
