package lock

import (
	"context"
	"sync"
)

type entry struct {
	ch   chan struct{}
	refs int
}

// LocalLocker serializes keys inside one process. Entries are refcounted so the map
// does not grow with every product ever sold.
type LocalLocker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{entries: make(map[string]*entry)}
}

func (l *LocalLocker) acquire(ctx context.Context, key string) error {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.drop(key, e)
		return ctx.Err()
	}
}

func (l *LocalLocker) release(key string) {
	l.mu.Lock()
	e := l.entries[key]
	l.mu.Unlock()
	if e == nil {
		return
	}
	<-e.ch
	l.drop(key, e)
}

func (l *LocalLocker) drop(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

func (l *LocalLocker) Lock(ctx context.Context, keys []string) (func(), error) {
	keys = normalizeKeys(keys)
	held := make([]string, 0, len(keys))

	unlock := func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.release(held[i])
		}
	}

	for _, k := range keys {
		if err := l.acquire(ctx, k); err != nil {
			unlock()
			return nil, err
		}
		held = append(held, k)
	}
	return unlock, nil
}
