package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/seriestrack/internal/logger"
	"github.com/user/seriestrack/internal/metrics"
	"github.com/user/seriestrack/internal/utils"
)

// Logger 请求日志中间件，按状态码选择日志级别
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		// 处理请求
		c.Next()

		status := c.Writer.Status()
		kv := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client", utils.HashIP(c.ClientIP()),
		}
		if userID := GetUserID(c); userID > 0 {
			kv = append(kv, "user_id", userID)
		}
		if len(c.Errors) > 0 {
			kv = append(kv, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("request", kv...)
		case status >= 400:
			log.Warn("request", kv...)
		default:
			log.Info("request", kv...)
		}
	}
}

// Metrics 记录请求数和耗时，路由取注册时的模板路径
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), start)
	}
}
