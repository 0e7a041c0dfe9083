package client

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// guessFilter remembers video ids the random fallback has already burned an
// attempt on. The HTTP layer serves requests concurrently and the underlying
// bloom filter is not safe for concurrent use, so every access goes through
// the lock.
type guessFilter struct {
	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

func newGuessFilter(capacity uint, falsePositiveRate float64) *guessFilter {
	return &guessFilter{
		filter: bloom.NewWithEstimates(capacity, falsePositiveRate),
	}
}

func (f *guessFilter) MayContain(id string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filter.TestString(id)
}

func (f *guessFilter) Add(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter.AddString(id)
}
