package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/user/seriestrack/internal/handler"
	"github.com/user/seriestrack/internal/logger"
	"github.com/user/seriestrack/internal/metrics"
	"github.com/user/seriestrack/internal/middleware"
)

// Options 构建 Engine 需要的依赖
type Options struct {
	Handler     *handler.Handler
	RequireAuth gin.HandlerFunc
	Metrics     *metrics.Metrics
	Log         *logger.Logger
	CORSOrigins []string
	ServiceName string
	Tracing     bool
}

// New 创建 gin Engine 并注册中间件和路由
func New(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if opts.Tracing {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	r.Use(middleware.Logger(opts.Log))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}

	RegisterRoutes(r, opts)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// 凭证模式下不能返回通配符，回显请求来源
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, opts Options) {
	h := opts.Handler

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	api := r.Group("/api")

	// ==================== 认证 ====================
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", opts.RequireAuth, h.Logout)
		authGroup.GET("/me", opts.RequireAuth, h.Me)
	}

	// ==================== 剧集记录（需要登录）====================
	series := api.Group("/series")
	series.Use(opts.RequireAuth)
	{
		series.POST("", h.CreateSeries)
		series.GET("", h.ListSeries)
		series.GET("/:id", h.GetSeries)
		series.PUT("/:id", h.ReplaceSeries)
		series.PATCH("/:id", h.PatchSeries)
		series.DELETE("/:id", h.DeleteSeries)
	}
}
