package webui

import (
	"github.com/anacrolix/sync"
)

const DefaultHistorySize = 100

// Recently identified uploads, newest last. Safe for concurrent use. Only the service keeps one,
// identification itself is stateless.
type History struct {
	mu      sync.Mutex
	size    int
	entries []Result
}

func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{size: size}
}

func (h *History) Add(r Result) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == h.size {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, r)
}

// Newest first.
func (h *History) Recent() []Result {
	h.mu.Lock()
	defer h.mu.Unlock()
	ret := make([]Result, 0, len(h.entries))
	for i := len(h.entries) - 1; i >= 0; i-- {
		ret = append(ret, h.entries[i])
	}
	return ret
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
