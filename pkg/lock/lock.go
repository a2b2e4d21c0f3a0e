package lock

import (
	"context"
	"sync"
)

// Locker serializes work per key. The returned func releases the lock and
// is safe to call once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

// KeyedMutex is an in-process Locker. Entries are dropped once nobody holds
// or waits on them, so the map only grows with live keys.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*keyedEntry)}
}

func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &keyedEntry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	acquired := make(chan struct{})
	go func() {
		e.mu.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
		var once sync.Once
		return func() {
			once.Do(func() {
				e.mu.Unlock()
				k.release(key, e)
			})
		}, nil
	case <-ctx.Done():
		// The goroutine still takes the lock eventually; hand it straight back.
		go func() {
			<-acquired
			e.mu.Unlock()
			k.release(key, e)
		}()
		return nil, ctx.Err()
	}
}

func (k *KeyedMutex) release(key string, e *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
}

// Len reports how many keys are currently held or waited on.
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
