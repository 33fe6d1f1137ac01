package cache

import (
	"sync"
	"time"
)

type Cache struct {
	store sync.Map
}

func InitStorage() *Cache {
	return &Cache{}
}

func (c *Cache) Set(k any, v any, expiration time.Duration) {
	c.store.Store(k, v)
	c.delByExp(k, v, expiration)
}

// sets value without expiration
func (c *Cache) SetNoExp(k any, v any) {
	c.store.Store(k, v)
}

func (c *Cache) Del(k any) {
	c.store.Delete(k)
}

func (c *Cache) Load(k any) any {
	v, _ := c.store.Load(k)
	return v
}

func (c *Cache) LoadOrSet(k any, v any, expiration time.Duration) any {
	act, _ := c.store.LoadOrStore(k, v)
	c.delByExp(k, act, expiration)
	return act
}

// drops the key after expiration unless the value was replaced meanwhile
func (c *Cache) delByExp(k any, v any, expiration time.Duration) {
	time.AfterFunc(expiration, func() {
		cacheValue, ok := c.store.Load(k)
		if !ok {
			return
		}
		if cacheValue != v { // value changed
			return
		}
		c.store.Delete(k)
	})
}
