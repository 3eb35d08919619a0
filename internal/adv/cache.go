package adv

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cornelk/hashmap"
	"github.com/sirupsen/logrus"
	"github.com/srg/blad/internal/groutine"
)

// DefaultCacheCapacity bounds how many distinct payloads a Cache remembers.
const DefaultCacheCapacity = 4096

// Cache memoizes Decode by raw payload. Scanners report the same advertisement
// over and over, and decoded results are read-only, so they can be shared.
// A Cache is safe for concurrent use.
type Cache struct {
	entries  *hashmap.Map[string, *AdvertisedData]
	capacity int
	logger   *logrus.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// NewCache creates a cache holding at most capacity payloads. Once full, new
// payloads are still decoded but no longer remembered.
func NewCache(capacity int, logger *logrus.Logger) *Cache {
	if logger == nil {
		logger = logrus.New()
	}
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		entries:  hashmap.New[string, *AdvertisedData](),
		capacity: capacity,
		logger:   logger,
	}
}

// Decode returns the decoded form of payload, reusing an earlier result for an
// identical payload. The result must not be modified.
func (c *Cache) Decode(payload []byte) *AdvertisedData {
	if payload == nil {
		return Decode(nil)
	}

	key := string(payload)
	if data, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return data
	}

	c.misses.Add(1)
	data := Decode(payload)
	if c.entries.Len() >= c.capacity {
		c.logger.WithField("capacity", c.capacity).Debug("decode cache full, not storing payload")
		return data
	}

	data, loaded := c.entries.GetOrInsert(key, data)
	if !loaded {
		c.logger.WithFields(logrus.Fields{
			"payload":  hex.EncodeToString(payload),
			"services": len(data.ServiceUUIDs),
			"name":     data.Name.Status,
		}).Debug("decoded new payload")
	}
	return data
}

// Stats returns the current counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.entries.Len(),
	}
}

// DecodeAll decodes payloads in parallel through the cache, returning results
// in input order. See DecodeAll.
func (c *Cache) DecodeAll(ctx context.Context, payloads [][]byte, workers int) ([]*AdvertisedData, error) {
	return decodeAll(ctx, payloads, workers, c.Decode)
}

// DecodeAll decodes a batch of payloads using up to workers goroutines.
// Results are in input order. If ctx is cancelled before every payload is
// decoded, the context error is returned along with the partial results.
func DecodeAll(ctx context.Context, payloads [][]byte, workers int) ([]*AdvertisedData, error) {
	return decodeAll(ctx, payloads, workers, Decode)
}

func decodeAll(ctx context.Context, payloads [][]byte, workers int, decode func([]byte) *AdvertisedData) ([]*AdvertisedData, error) {
	results := make([]*AdvertisedData, len(payloads))
	if len(payloads) == 0 {
		return results, nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(payloads) {
		workers = len(payloads)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		groutine.Go(ctx, fmt.Sprintf("adv-decode-%d", w), func(ctx context.Context) {
			defer wg.Done()
			for i := range jobs {
				results[i] = decode(payloads[i])
			}
		})
	}

	var err error
feed:
	for i := range payloads {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results, err
}
