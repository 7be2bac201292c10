package media

import (
	"sort"
	"sync"
)

// pathLocks hands out one mutex per canonical resolved path so that the
// check-existence-then-rename windows of asset and folder operations do
// not race with each other inside this process. One instance is shared
// per media root; entries are never reclaimed, the key space is bounded
// by the paths an admin touches.
type pathLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPathLocks() *pathLocks {
	return &pathLocks{locks: make(map[string]*sync.Mutex)}
}

// AcquireAll locks the mutexes for the given keys, deduplicated and in
// sorted order so overlapping acquisitions cannot deadlock. The returned
// function releases them in reverse order.
func (l *pathLocks) AcquireAll(keys ...string) func() {
	uniq := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			uniq = append(uniq, k)
		}
	}
	sort.Strings(uniq)

	mutexes := make([]*sync.Mutex, 0, len(uniq))
	l.mu.Lock()
	for _, k := range uniq {
		m, ok := l.locks[k]
		if !ok {
			m = &sync.Mutex{}
			l.locks[k] = m
		}
		mutexes = append(mutexes, m)
	}
	l.mu.Unlock()

	for _, m := range mutexes {
		m.Lock()
	}
	return func() {
		for i := len(mutexes) - 1; i >= 0; i-- {
			mutexes[i].Unlock()
		}
	}
}
