package classify

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/broady/stubkit/stubgen/model"
)

// DefaultMemoSize is the cache size used when NewMemo is given size <= 0.
const DefaultMemoSize = 4096

// Memo caches classifications by type fingerprint. Because Classify is pure,
// caching never changes a result; a Memo may be shared by concurrent
// generation requests.
type Memo struct {
	next  Classifier
	cache *lru.Cache[string, Result]
}

// NewMemo returns a Memo in front of next (Default when nil).
func NewMemo(size int, next Classifier) (*Memo, error) {
	if size <= 0 {
		size = DefaultMemoSize
	}
	if next == nil {
		next = Default
	}
	cache, err := lru.New[string, Result](size)
	if err != nil {
		return nil, err
	}
	return &Memo{next: next, cache: cache}, nil
}

// Classify returns the cached classification of t, computing it on a miss.
func (m *Memo) Classify(t model.TypeRef) Result {
	key := t.Fingerprint()
	if r, ok := m.cache.Get(key); ok {
		return r
	}
	r := m.next.Classify(t)
	m.cache.Add(key, r)
	return r
}

// Len returns the number of cached entries.
func (m *Memo) Len() int { return m.cache.Len() }
