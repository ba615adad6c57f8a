package service

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Lockout 登录失败计数，窗口内失败次数达到上限后锁定
type Lockout struct {
	failures *cache.Cache
	max      int
}

// NewLockout max <= 0 表示不限制
func NewLockout(max int, window time.Duration) *Lockout {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &Lockout{
		failures: cache.New(window, 2*window),
		max:      max,
	}
}

// Locked 是否已被锁定
func (l *Lockout) Locked(key string) bool {
	if l.max <= 0 {
		return false
	}
	v, ok := l.failures.Get(key)
	if !ok {
		return false
	}
	n, _ := v.(int)
	return n >= l.max
}

// Fail 记录一次失败，窗口从第一次失败开始计算
func (l *Lockout) Fail(key string) {
	if l.max <= 0 {
		return
	}
	if err := l.failures.Add(key, 1, cache.DefaultExpiration); err != nil {
		_, _ = l.failures.IncrementInt(key, 1)
	}
}

// Reset 登录成功后清零
func (l *Lockout) Reset(key string) {
	l.failures.Delete(key)
}
