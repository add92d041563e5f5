package imagecheck

import (
	"context"
	"sync"
	"time"
)

type memoEntry struct {
	ok        bool
	checkedAt time.Time
}

// DefaultNegativeTTL bounds how long a failed probe keeps an image out.
const DefaultNegativeTTL = 30 * time.Second

// Memo remembers answers from Next, so the same image is not probed again for
// every listing that contains it. Loaded images are kept for TTL, failures
// only for NegativeTTL (never longer than TTL); a zero NegativeTTL
// never remembers failures. Concurrent checks of one URL
// collapse into a single probe.
type Memo struct {
	Next        Checker
	TTL         time.Duration
	NegativeTTL time.Duration

	now     func() time.Time
	entries sync.Map // url -> memoEntry
	locks   sync.Map // url -> *sync.Mutex
}

func NewMemo(next Checker, ttl time.Duration) *Memo {
	return &Memo{Next: next, TTL: ttl, NegativeTTL: DefaultNegativeTTL, now: time.Now}
}

func (m *Memo) Exists(ctx context.Context, url string) bool {
	if v, ok := m.lookup(url); ok {
		return v
	}

	mu, _ := m.locks.LoadOrStore(url, &sync.Mutex{})
	lock := mu.(*sync.Mutex)
	lock.Lock()
	defer lock.Unlock()
	// waiters already hold this mutex and find the stored answer
	defer m.locks.Delete(url)

	if v, ok := m.lookup(url); ok {
		return v
	}

	ok := m.Next.Exists(ctx, url)
	// a cancelled probe says nothing about the image
	if ctx.Err() == nil && (ok || m.NegativeTTL > 0) {
		m.entries.Store(url, memoEntry{ok: ok, checkedAt: m.now()})
	}
	return ok
}

func (m *Memo) lookup(url string) (bool, bool) {
	v, ok := m.entries.Load(url)
	if !ok {
		return false, false
	}
	e := v.(memoEntry)
	ttl := m.TTL
	if !e.ok && m.NegativeTTL > 0 && (ttl <= 0 || m.NegativeTTL < ttl) {
		ttl = m.NegativeTTL
	}
	if ttl > 0 && m.now().Sub(e.checkedAt) > ttl {
		m.entries.Delete(url)
		return false, false
	}
	return e.ok, true
}

// Forget drops the remembered answer for url.
func (m *Memo) Forget(url string) {
	m.entries.Delete(url)
}
