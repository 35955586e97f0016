package roblox

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultPlaceCacheSize = 256
	defaultPlaceCacheTTL  = 5 * time.Minute
)

// PlaceDetailer looks up public place details.
type PlaceDetailer interface {
	PlaceDetails(ctx context.Context, placeID int64) (PlaceDetails, error)
}

type placeEntry struct {
	details  PlaceDetails
	storedAt time.Time
}

// PlaceCache remembers successful place lookups for a TTL. Errors are not
// cached.
type PlaceCache struct {
	next  PlaceDetailer
	cache *lru.Cache[int64, placeEntry]
	ttl   time.Duration
	now   func() time.Time
}

// NewPlaceCache wraps next. Non-positive size or ttl fall back to defaults.
func NewPlaceCache(next PlaceDetailer, size int, ttl time.Duration) *PlaceCache {
	if size <= 0 {
		size = defaultPlaceCacheSize
	}
	if ttl <= 0 {
		ttl = defaultPlaceCacheTTL
	}
	// lru.New only fails on a non-positive size
	cache, _ := lru.New[int64, placeEntry](size)
	return &PlaceCache{next: next, cache: cache, ttl: ttl, now: time.Now}
}

func (c *PlaceCache) PlaceDetails(ctx context.Context, placeID int64) (PlaceDetails, error) {
	if e, ok := c.cache.Get(placeID); ok {
		if c.now().Sub(e.storedAt) < c.ttl {
			return e.details, nil
		}
		c.cache.Remove(placeID)
	}

	d, err := c.next.PlaceDetails(ctx, placeID)
	if err != nil {
		return PlaceDetails{}, err
	}
	c.cache.Add(placeID, placeEntry{details: d, storedAt: c.now()})
	return d, nil
}
