// Package concurrency 동시성 제어 도구를 제공합니다.
package concurrency

import "sync"

// KeyedMutex 키별로 독립적인 잠금을 제공합니다.
// 사용 중인 키가 없으면 내부 엔트리는 즉시 정리됩니다.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu       sync.Mutex
	refCount int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedEntry)}
}

// Len 잠금을 보유하거나 대기 중인 키의 개수
func (km *KeyedMutex) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()
	return len(km.locks)
}

// Lock 지정된 키의 잠금을 획득할 때까지 대기합니다.
func (km *KeyedMutex) Lock(key string) {
	km.mu.Lock()
	e, ok := km.locks[key]
	if !ok {
		e = &keyedEntry{}
		km.locks[key] = e
	}
	e.refCount++
	km.mu.Unlock()

	e.mu.Lock()
}

// TryLock 대기하지 않고 잠금을 시도합니다. 실패하면 Unlock을 호출해서는 안 됩니다.
func (km *KeyedMutex) TryLock(key string) bool {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		e = &keyedEntry{}
		km.locks[key] = e
	}
	if !e.mu.TryLock() {
		return false
	}
	e.refCount++
	return true
}

// Unlock 지정된 키의 잠금을 해제합니다. 잠기지 않은 키면 panic이 발생합니다.
func (km *KeyedMutex) Unlock(key string) {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		panic("잠기지 않은 KeyedMutex의 잠금 해제 시도: " + key)
	}

	e.mu.Unlock()
	e.refCount--
	if e.refCount <= 0 {
		delete(km.locks, key)
	}
}
