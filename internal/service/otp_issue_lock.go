package service

import (
	"context"
	"sync"
)

// IssueLocker serializa la emision de OTP para una misma clave.
type IssueLocker interface {
	// Lock bloquea hasta obtener la clave o hasta que ctx termine.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// LocalIssueLocker serializa dentro del proceso. Alcanza con una sola replica.
type LocalIssueLocker struct {
	mu    sync.Mutex
	locks map[string]*localKeyLock
}

type localKeyLock struct {
	slot chan struct{}
	refs int
}

func NewLocalIssueLocker() *LocalIssueLocker {
	return &LocalIssueLocker{locks: make(map[string]*localKeyLock)}
}

func (l *LocalIssueLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	lk, ok := l.locks[key]
	if !ok {
		lk = &localKeyLock{slot: make(chan struct{}, 1)}
		l.locks[key] = lk
	}
	lk.refs++
	l.mu.Unlock()

	select {
	case lk.slot <- struct{}{}:
	case <-ctx.Done():
		l.release(key, lk)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-lk.slot
			l.release(key, lk)
		})
	}, nil
}

func (l *LocalIssueLocker) release(key string, lk *localKeyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lk.refs--
	if lk.refs == 0 {
		delete(l.locks, key)
	}
}

// size devuelve la cantidad de claves retenidas.
func (l *LocalIssueLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
