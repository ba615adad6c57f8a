package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem 包装实际的数据，增加过期时间
type CacheItem[T any] struct {
	Value     T
	ExpiredAt time.Time
}

// TTLCache 带过期时间的 LRU 缓存，超出容量时淘汰最久未使用的条目
type TTLCache[T any] struct {
	storage *lru.Cache[string, CacheItem[T]]
	ttl     time.Duration
	now     func() time.Time
}

// NewTTLCache size 是最大缓存条数，ttl 是默认有效期
func NewTTLCache[T any](size int, ttl time.Duration) *TTLCache[T] {
	if size <= 0 {
		size = 1024
	}
	// lru.New 是线程安全的，size > 0 时不会返回错误
	c, _ := lru.New[string, CacheItem[T]](size)
	return &TTLCache[T]{
		storage: c,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Set 使用默认有效期写入
func (c *TTLCache[T]) Set(key string, value T) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL 指定有效期写入
func (c *TTLCache[T]) SetWithTTL(key string, value T, ttl time.Duration) {
	c.storage.Add(key, CacheItem[T]{
		Value:     value,
		ExpiredAt: c.now().Add(ttl),
	})
}

// Get 读取，过期的条目顺便删除
func (c *TTLCache[T]) Get(key string) (T, bool) {
	var zero T
	item, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}
	if c.now().After(item.ExpiredAt) {
		c.storage.Remove(key)
		return zero, false
	}
	return item.Value, true
}

func (c *TTLCache[T]) Delete(key string) {
	c.storage.Remove(key)
}

func (c *TTLCache[T]) Len() int {
	return c.storage.Len()
}

// PurgeExpired 删除所有已过期的条目，返回删除数量
func (c *TTLCache[T]) PurgeExpired() int {
	now := c.now()
	removed := 0
	for _, key := range c.storage.Keys() {
		// Peek 不更新最近使用顺序
		if item, ok := c.storage.Peek(key); ok && now.After(item.ExpiredAt) {
			c.storage.Remove(key)
			removed++
		}
	}
	return removed
}
