package handler

import (
	"context"

	"github.com/user/seriestrack/internal/auth"
	"github.com/user/seriestrack/internal/logger"
	"github.com/user/seriestrack/internal/metrics"
	"github.com/user/seriestrack/internal/model"
)

// SeriesStore 剧集记录的读写，所有操作按 ownerID 限定
type SeriesStore interface {
	Create(ctx context.Context, ownerID int64, in model.SeriesInput) (*model.Series, error)
	ListByOwner(ctx context.Context, ownerID int64, f model.SeriesFilter) ([]*model.Series, error)
	GetByID(ctx context.Context, ownerID, id int64) (*model.Series, error)
	Replace(ctx context.Context, ownerID, id int64, in model.SeriesInput) (*model.Series, error)
	UpdatePartial(ctx context.Context, ownerID, id int64, patch model.SeriesPatch) (*model.Series, error)
	Remove(ctx context.Context, ownerID, id int64) (bool, error)
}

// IdentityProvider 注册、登录、注销
type IdentityProvider interface {
	Register(ctx context.Context, in model.RegisterInput) (*model.User, error)
	Login(ctx context.Context, in model.LoginInput) (*model.Session, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Me(ctx context.Context, userID int64) (*model.User, error)
}

// Handler HTTP 处理器
type Handler struct {
	Series       SeriesStore
	Identity     IdentityProvider
	Metrics      *metrics.Metrics
	Log          *logger.Logger
	SecureCookie bool
}

// NewHandler 创建处理器
func NewHandler(series SeriesStore, identity IdentityProvider, m *metrics.Metrics, log *logger.Logger, secureCookie bool) *Handler {
	return &Handler{
		Series:       series,
		Identity:     identity,
		Metrics:      m,
		Log:          log,
		SecureCookie: secureCookie,
	}
}
