package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/user/seriestrack/internal/logger"
)

type countingSweeper struct {
	calls atomic.Int32
	n     int
	err   error
}

func (c *countingSweeper) Sweep(context.Context) (int, error) {
	c.calls.Add(1)
	return c.n, c.err
}

func TestCleanupRunOnce(t *testing.T) {
	s := NewCleanupService(time.Minute, logger.NewNop())
	ok := &countingSweeper{n: 3}
	broken := &countingSweeper{err: errors.New("boom")}
	s.Register("revocations", ok)
	s.Register("broken", broken)

	assert.Equal(t, 3, s.RunOnce(context.Background()))
	assert.Equal(t, int32(1), ok.calls.Load())
	assert.Equal(t, int32(1), broken.calls.Load())
}

func TestCleanupStartStopsWithContext(t *testing.T) {
	s := NewCleanupService(5*time.Millisecond, logger.NewNop())
	sw := &countingSweeper{}
	s.Register("revocations", sw)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.Eventually(t, func() bool { return sw.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	after := sw.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, sw.calls.Load())
}
