package cache

import (
	"encoding/json"

	"github.com/maypok86/otter"
)

// OtterCache is the in-memory L1 layer.
type OtterCache struct {
	cache *otter.Cache[string, []byte]
}

func NewOtterCache(c *otter.Cache[string, []byte]) *OtterCache {
	return &OtterCache{cache: c}
}

func (c *OtterCache) Set(endpoint string, value any) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_ = c.cache.Set(endpoint, bytes)
	return nil
}

func (c *OtterCache) Get(endpoint string, value any) (bool, error) {
	bytes, found := c.cache.Get(endpoint)
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(bytes, value); err != nil {
		return true, err
	}
	return true, nil
}
