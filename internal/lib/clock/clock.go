// Package clock источник времени для сервисов. В тестах используется Fixed.
package clock

import (
	"sync"
	"time"
)

// Clock возвращает текущий момент.
type Clock interface {
	Now() time.Time
}

// Real системные часы в UTC.
type Real struct{}

func (Real) Now() time.Time {
	return time.Now().UTC()
}

// Fixed часы, которые двигаются вручную.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed создает часы, остановленные на now.
func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now.UTC()}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance сдвигает часы вперед на d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Set ставит часы на t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t.UTC()
}
