package webui

import (
	"fmt"
	"sync"
	"testing"

	"github.com/bradfitz/iter"
	"github.com/stretchr/testify/assert"
)

func TestHistoryBounded(t *testing.T) {
	h := NewHistory(3)
	for i := range iter.N(5) {
		h.Add(Result{Name: fmt.Sprint(i)})
	}
	assert.Equal(t, 3, h.Len())
	var names []string
	for _, r := range h.Recent() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"4", "3", "2"}, names)
}

func TestHistoryDefaultSize(t *testing.T) {
	h := NewHistory(0)
	for range iter.N(DefaultHistorySize + 1) {
		h.Add(Result{})
	}
	assert.Equal(t, DefaultHistorySize, h.Len())
}

func TestHistoryConcurrent(t *testing.T) {
	h := NewHistory(10)
	var wg sync.WaitGroup
	for i := range iter.N(8) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range iter.N(100) {
				h.Add(Result{Name: fmt.Sprint(i)})
				h.Recent()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, h.Len())
}

func TestHistoryRecentIsACopy(t *testing.T) {
	h := NewHistory(2)
	h.Add(Result{Name: "a"})
	r := h.Recent()
	r[0].Name = "b"
	assert.Equal(t, "a", h.Recent()[0].Name)
}
