package core

import (
	"fmt"
	"sync"
)

// CallCounter tracks provider calls made during a single execution and can
// optionally enforce a maximum.
type CallCounter struct {
	max   int
	count int
	mu    sync.Mutex
}

// NewCallCounter creates a new counter with a max number of calls.
// If max == 0, unlimited calls are allowed; the framework default imposes no
// budget and the counter only feeds result metadata.
func NewCallCounter(max int) *CallCounter {
	return &CallCounter{max: max}
}

// Increment increases the call counter and returns an error if the limit is exceeded.
func (cc *CallCounter) Increment() error {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	cc.count++
	if cc.max > 0 && cc.count > cc.max {
		return fmt.Errorf("exceeded max provider calls: %d", cc.max)
	}

	return nil
}

// Count returns the current number of calls made.
func (cc *CallCounter) Count() int {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	return cc.count
}

// Remaining returns how many calls are left before hitting the limit.
func (cc *CallCounter) Remaining() int {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if cc.max == 0 {
		return -1 // unlimited
	}

	return cc.max - cc.count
}
