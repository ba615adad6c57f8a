package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/user/seriestrack/internal/auth"
	"github.com/user/seriestrack/internal/config"
	"github.com/user/seriestrack/internal/handler"
	"github.com/user/seriestrack/internal/logger"
	"github.com/user/seriestrack/internal/metrics"
	"github.com/user/seriestrack/internal/middleware"
	"github.com/user/seriestrack/internal/observability"
	"github.com/user/seriestrack/internal/repository"
	"github.com/user/seriestrack/internal/router"
	"github.com/user/seriestrack/internal/service"
)

func newServeCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.ensureConfig()
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cc, cfg)
		},
	}
}

func runServer(ctx context.Context, cc *commandContext, cfg *config.Config) error {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// kill (no parameter) 默认发送 syscall.SIGTERM，kill -2 是 syscall.SIGINT
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, shutdownTracing, err := observability.InitTracing(ctx, log, observability.Options{
		Enabled:     cfg.OTelEnabled,
		ServiceName: serviceName,
		Environment: cfg.Env,
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	db, err := cc.openDB(ctx)
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}
	defer repository.Close(db)

	if cfg.AutoMigrate {
		if err := repository.Migrate(db); err != nil {
			return err
		}
		log.Info("数据库迁移完成")
	}

	m := metrics.New()
	if sqlDB, err := db.DB(); err == nil {
		m.RegisterDB(sqlDB, serviceName)
	}

	revocations, closeRevocations, err := newRevocationList(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRevocations()

	// 启动定时清理任务，进程内吊销列表需要主动回收过期条目
	cleanup := service.NewCleanupService(time.Hour, log)
	if sw, ok := revocations.(service.Sweeper); ok {
		cleanup.Register("revocations", sw)
	}
	cleanup.Start(ctx)

	repos := repository.NewRepositories(db)
	issuer := auth.NewIssuer(cfg.AppSecret, cfg.JWTExpiry)
	identity := service.NewIdentityService(
		repos.User,
		service.NewBcryptHasher(),
		issuer,
		revocations,
		service.NewLockout(cfg.LoginMaxFailures, cfg.LoginLockoutWindow),
		m,
		log,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	h := handler.NewHandler(repos.Series, identity, m, log, cfg.IsProduction())
	engine := router.New(router.Options{
		Handler:     h,
		RequireAuth: middleware.RequireAuth(issuer, revocations, cfg.IsProduction(), log),
		Metrics:     m,
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		ServiceName: serviceName,
		Tracing:     cfg.OTelEnabled,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        engine,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("服务器启动", "addr", "http://localhost:"+cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("服务器启动失败: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("正在关闭服务器...")

		// 5 秒超时上下文用于关闭过程
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("服务器强制关闭: %w", err)
		}
		return shutdownTracing(shutdownCtx)
	})

	err = g.Wait()
	log.Info("服务器已退出")
	return err
}

// newRevocationList 配置了 REDIS_URL 时使用 Redis，否则使用进程内缓存
func newRevocationList(ctx context.Context, cfg *config.Config, log *logger.Logger) (auth.RevocationList, func(), error) {
	if cfg.RedisURL == "" {
		return auth.NewMemoryRevocationList(cfg.RevocationCacheSize), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info("令牌吊销列表使用 Redis", "addr", opts.Addr)
	return auth.NewRedisRevocationList(client), func() { _ = client.Close() }, nil
}
