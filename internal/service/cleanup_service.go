package service

import (
	"context"
	"time"

	"github.com/user/seriestrack/internal/logger"
)

// Sweeper 可被定时清理的存储
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// CleanupService 定时清理过期数据
type CleanupService struct {
	sweepers map[string]Sweeper
	interval time.Duration
	log      *logger.Logger
}

// NewCleanupService interval <= 0 时每小时执行一次
func NewCleanupService(interval time.Duration, log *logger.Logger) *CleanupService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CleanupService{
		sweepers: map[string]Sweeper{},
		interval: interval,
		log:      log,
	}
}

// Register 注册需要清理的存储
func (s *CleanupService) Register(name string, sw Sweeper) {
	s.sweepers[name] = sw
}

// Start 启动定时清理任务，ctx 取消后退出
func (s *CleanupService) Start(ctx context.Context) {
	if len(s.sweepers) == 0 {
		return
	}
	ticker := time.NewTicker(s.interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunOnce(ctx)
			}
		}
	}()
}

// RunOnce 执行一轮清理，返回清理总数
func (s *CleanupService) RunOnce(ctx context.Context) int {
	total := 0
	for name, sw := range s.sweepers {
		n, err := sw.Sweep(ctx)
		if err != nil {
			s.log.Warn("清理过期数据失败", "store", name, "error", err)
			continue
		}
		if n > 0 {
			s.log.Info("已清理过期数据", "store", name, "count", n)
		}
		total += n
	}
	return total
}
