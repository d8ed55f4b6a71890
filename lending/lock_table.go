package lending

import (
	"slices"
	"sync"
)

const borrowerLockPrefix = "borrower:"

// lockTable hands out mutexes per key. Entries are reference counted and dropped when unused.
//
// lock acquires all keys in sorted order, so two callers locking overlapping key sets can't deadlock.
type lockTable struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newLockTable() *lockTable {
	return &lockTable{entries: make(map[string]*lockEntry)}
}

// lock blocks until all keys are held and returns the function releasing them.
func (t *lockTable) lock(keys ...string) (unlock func()) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	acquired := make([]*lockEntry, 0, len(sorted))
	for _, key := range sorted {
		entry := t.retain(key)
		entry.mu.Lock()
		acquired = append(acquired, entry)
	}

	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].mu.Unlock()
			t.release(sorted[i])
		}
	}
}

func (t *lockTable) retain(key string) *lockEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[key]
	if !ok {
		entry = &lockEntry{}
		t.entries[key] = entry
	}
	entry.refs++

	return entry
}

func (t *lockTable) release(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry := t.entries[key]
	entry.refs--
	if entry.refs == 0 {
		delete(t.entries, key)
	}
}

// size returns the number of keys currently locked or waited for.
func (t *lockTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

// lockStable locks the keys computed by keysFn and retries until they are still the same once held.
// keysFn must only read state that is guarded by the keys it returns.
func (t *lockTable) lockStable(keysFn func() []string) (unlock func()) {
	for {
		keys := keysFn()
		unlock = t.lock(keys...)

		if sameKeys(keys, keysFn()) {
			return unlock
		}

		unlock()
	}
}

func sameKeys(a []string, b []string) bool {
	a = slices.Compact(slices.Sorted(slices.Values(a)))
	b = slices.Compact(slices.Sorted(slices.Values(b)))

	return slices.Equal(a, b)
}

func borrowerLockKey(id string) string {
	return borrowerLockPrefix + id
}
