package cache

import (
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/sha3"
)

// Memoizes values computed from a document, keyed by the SHA3-256 digest of
// the document bytes.
type DocumentCache[V any] struct {
	entries *cache.Cache
	ttl     time.Duration
}

// A zero ttl keeps entries until the process exits.
func New[V any](ttl time.Duration) *DocumentCache[V] {
	if ttl <= 0 {
		return &DocumentCache[V]{
			entries: cache.New(cache.NoExpiration, 0),
			ttl:     cache.NoExpiration,
		}
	}
	return &DocumentCache[V]{
		entries: cache.New(ttl, time.Minute),
		ttl:     ttl,
	}
}

func Digest(data []byte) string {
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (c *DocumentCache[V]) Get(data []byte) (V, bool) {
	var zero V
	value, found := c.entries.Get(Digest(data))
	if !found {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

func (c *DocumentCache[V]) Set(data []byte, value V) {
	c.entries.Set(Digest(data), value, c.ttl)
}

func (c *DocumentCache[V]) Len() int {
	return c.entries.ItemCount()
}
