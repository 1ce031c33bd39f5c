package router

import "sync"

// History abstracts the browser history API. Push/Replace mutate the
// stack without notification (the router resolves the path itself); Back
// and Forward notify subscribers the way popstate does.
type History interface {
	Push(path string)
	Replace(path string)
	Current() string
	Back()
	Forward()
	// OnPop registers a callback for back/forward traversal and returns
	// its unregister operation.
	OnPop(fn func(path string)) func()
}

// MemoryHistory is an in-process History with browser stack semantics:
// pushing after going back discards the forward entries.
type MemoryHistory struct {
	mu      sync.Mutex
	stack   []string
	index   int
	nextSub uint64
	subs    map[uint64]func(string)
}

var _ History = (*MemoryHistory)(nil)

func NewMemoryHistory(initial string) *MemoryHistory {
	if initial == "" {
		initial = "/"
	}
	return &MemoryHistory{
		stack: []string{initial},
		subs:  map[uint64]func(string){},
	}
}

func (h *MemoryHistory) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack = append(h.stack[:h.index+1], path)
	h.index = len(h.stack) - 1
}

func (h *MemoryHistory) Replace(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack[h.index] = path
}

func (h *MemoryHistory) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stack[h.index]
}

func (h *MemoryHistory) Back() {
	h.mu.Lock()
	if h.index == 0 {
		h.mu.Unlock()
		return
	}
	h.index--
	path := h.stack[h.index]
	subs := h.snapshot()
	h.mu.Unlock()

	for _, fn := range subs {
		fn(path)
	}
}

func (h *MemoryHistory) Forward() {
	h.mu.Lock()
	if h.index >= len(h.stack)-1 {
		h.mu.Unlock()
		return
	}
	h.index++
	path := h.stack[h.index]
	subs := h.snapshot()
	h.mu.Unlock()

	for _, fn := range subs {
		fn(path)
	}
}

func (h *MemoryHistory) OnPop(fn func(path string)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextSub++
	id := h.nextSub
	h.subs[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// snapshot copies subscribers in registration order; caller holds h.mu.
func (h *MemoryHistory) snapshot() []func(string) {
	out := make([]func(string), 0, len(h.subs))
	for id := uint64(1); id <= h.nextSub; id++ {
		if fn, ok := h.subs[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

// Length reports the stack depth, mostly for tests.
func (h *MemoryHistory) Length() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack)
}
