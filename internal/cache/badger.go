package cache

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger"
)

// BadgerCache is the persistent L2 layer for fetched corpus documents.
// Entries expire through badger's own TTL handling.
type BadgerCache struct {
	db  *badger.DB
	TTL time.Duration
}

func NewBadgerCache(db *badger.DB, ttl time.Duration) BadgerCache {
	return BadgerCache{db: db, TTL: ttl}
}

func (c *BadgerCache) putItem(key string, value []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), value).WithTTL(c.TTL)
		return txn.SetEntry(e)
	})
}

func (c *BadgerCache) Set(endpoint string, value any) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.putItem(endpoint, bytes)
}

func (c *BadgerCache) getItem(key string, value any) (bool, error) {
	var bytes []byte = nil
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		bytes, err = item.ValueCopy(bytes)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if bytes == nil {
		return false, nil
	}
	return true, json.Unmarshal(bytes, value)
}

func (c *BadgerCache) Get(endpoint string, value any) (bool, error) {
	found, err := c.getItem(endpoint, value)
	if err != nil {
		return false, err
	}
	return found, nil
}
