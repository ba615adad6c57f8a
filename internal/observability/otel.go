// Package observability 初始化 OpenTelemetry 链路追踪
package observability

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/user/seriestrack/internal/logger"
)

// Options 追踪配置，导出端点等从 OTEL_EXPORTER_OTLP_* 环境变量读取
type Options struct {
	Enabled     bool
	ServiceName string
	Environment string
	Version     string

	// Output stdout 导出器的输出，默认 os.Stdout
	Output io.Writer
}

// Shutdown 刷新并关闭追踪
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// InitTracing 未启用时返回空操作的 Shutdown
func InitTracing(ctx context.Context, log *logger.Logger, opts Options) (*sdktrace.TracerProvider, Shutdown, error) {
	if !opts.Enabled {
		return nil, noopShutdown, nil
	}

	serviceName := strings.TrimSpace(opts.ServiceName)
	if serviceName == "" {
		serviceName = "seriestrack"
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(strings.TrimSpace(opts.Version)),
			attribute.String("deployment.environment", strings.TrimSpace(opts.Environment)),
		),
	)
	if err != nil {
		log.Warn("otel resource 初始化失败，继续运行", "error", err)
	}

	exporter, err := buildExporter(ctx, log, opts.Output)
	if err != nil {
		return nil, noopShutdown, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio()))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info("otel 链路追踪已启用", "service", serviceName, "endpoint", endpoint())
	return tp, tp.Shutdown, nil
}

func buildExporter(ctx context.Context, log *logger.Logger, out io.Writer) (sdktrace.SpanExporter, error) {
	if ep := endpoint(); ep != "" {
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(ep)}
		if isTrue(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")) {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		if headers := parseHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")); headers != nil {
			opts = append(opts, otlptracehttp.WithHeaders(headers))
		}
		return otlptracehttp.New(ctx, opts...)
	}

	if out == nil {
		out = os.Stdout
	}
	log.Warn("未配置 OTLP 端点，使用 stdout 导出器")
	return stdouttrace.New(stdouttrace.WithWriter(out))
}

func endpoint() string {
	return strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
}

// sampleRatio 默认 0.1，超出范围时截断到 [0, 1]
func sampleRatio() float64 {
	v := strings.TrimSpace(os.Getenv("OTEL_SAMPLER_RATIO"))
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0.1
	}
	return min(max(f, 0), 1)
}

// parseHeaders 解析 "k1=v1,k2=v2"
func parseHeaders(raw string) map[string]string {
	headers := map[string]string{}
	for _, part := range strings.Split(raw, ",") {
		key, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if !ok || key == "" || val == "" {
			continue
		}
		headers[key] = val
	}
	if len(headers) == 0 {
		return nil
	}
	return headers
}

func isTrue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
