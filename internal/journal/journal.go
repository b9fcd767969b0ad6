// Package journal keeps a bounded record of recent tool invocations for the
// debug endpoint. It is written after each invocation and never consulted on
// the request path.
package journal

import (
	"fmt"
	"hash/fnv"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Entry summarizes one finished tool invocation.
type Entry struct {
	ID       string        `json:"id"`
	Tool     string        `json:"tool"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	OK       bool          `json:"ok"`
	Error    string        `json:"error,omitempty"`
}

// Journal holds the most recent entries, evicting the oldest past capacity.
type Journal struct {
	cache *lru.Cache[string, Entry]
	seq   atomic.Uint64
}

// New creates a journal that retains at most size entries.
func New(size int) (*Journal, error) {
	if size <= 0 {
		size = 256
	}
	cache, err := lru.New[string, Entry](size)
	if err != nil {
		return nil, err
	}
	return &Journal{cache: cache}, nil
}

// NextID returns a process-unique invocation id.
func (j *Journal) NextID(tool string) string {
	n := j.seq.Add(1)
	h := fnv.New32a()
	_, _ = h.Write([]byte(tool))
	return fmt.Sprintf("%08x-%d", h.Sum32(), n)
}

// Record stores one entry, keyed by its id.
func (j *Journal) Record(e Entry) {
	if j == nil || j.cache == nil || e.ID == "" {
		return
	}
	j.cache.Add(e.ID, e)
}

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(n int) []Entry {
	if j == nil || j.cache == nil || n <= 0 {
		return nil
	}
	keys := j.cache.Keys() // oldest to newest
	out := make([]Entry, 0, n)
	for i := len(keys) - 1; i >= 0 && len(out) < n; i-- {
		if e, ok := j.cache.Peek(keys[i]); ok {
			out = append(out, e)
		}
	}
	return out
}

// Len reports the number of retained entries.
func (j *Journal) Len() int {
	if j == nil || j.cache == nil {
		return 0
	}
	return j.cache.Len()
}
