package service

import (
	"context"
	"fmt"
	"time"

	"github.com/user/seriestrack/internal/apperr"
	"github.com/user/seriestrack/internal/auth"
	"github.com/user/seriestrack/internal/logger"
	"github.com/user/seriestrack/internal/metrics"
	"github.com/user/seriestrack/internal/model"
	"github.com/user/seriestrack/internal/validation"
)

// UserStore 用户存储
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// TokenIssuer 令牌签发
type TokenIssuer interface {
	Issue(user *model.User) (*model.Session, error)
}

var errBadCredentials = fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthenticated)

// IdentityService 注册、登录、注销
type IdentityService struct {
	users       UserStore
	hasher      Hasher
	issuer      TokenIssuer
	revocations auth.RevocationList
	lockout     *Lockout
	metrics     *metrics.Metrics
	log         *logger.Logger
	now         func() time.Time
}

// NewIdentityService 创建身份服务，lockout / metrics 可以为 nil
func NewIdentityService(
	users UserStore,
	hasher Hasher,
	issuer TokenIssuer,
	revocations auth.RevocationList,
	lockout *Lockout,
	m *metrics.Metrics,
	log *logger.Logger,
) *IdentityService {
	if lockout == nil {
		lockout = NewLockout(0, 0)
	}
	return &IdentityService{
		users:       users,
		hasher:      hasher,
		issuer:      issuer,
		revocations: revocations,
		lockout:     lockout,
		metrics:     m,
		log:         log,
		now:         time.Now,
	}
}

// Register 注册新用户，邮箱已存在返回 ErrConflict
func (s *IdentityService) Register(ctx context.Context, in model.RegisterInput) (*model.User, error) {
	in, err := validation.ValidateRegistration(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperr.ErrConflict)
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	}
	// 并发注册同一邮箱时由唯一索引兜底
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("用户注册成功", "user_id", user.ID)
	return user, nil
}

// Login 校验账号密码并签发令牌。邮箱不存在和密码错误返回同样的错误
func (s *IdentityService) Login(ctx context.Context, in model.LoginInput) (*model.Session, error) {
	in, err := validation.ValidateCredentials(in)
	if err != nil {
		return nil, err
	}

	if s.lockout.Locked(in.Email) {
		s.metrics.ObserveLogin("locked")
		s.log.Warn("登录已被锁定", "email", in.Email)
		return nil, fmt.Errorf("%w: too many failed login attempts", apperr.ErrRateLimited)
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.fail(in.Email)
		return nil, errBadCredentials
	}

	ok, err := s.hasher.Verify(ctx, in.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.fail(in.Email)
		return nil, errBadCredentials
	}

	session, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	s.lockout.Reset(in.Email)
	s.metrics.ObserveLogin("success")
	s.log.Info("用户登录", "user_id", user.ID)
	return session, nil
}

func (s *IdentityService) fail(email string) {
	s.lockout.Fail(email)
	s.metrics.ObserveLogin("failure")
}

// Logout 吊销当前令牌直到其原定过期时间
func (s *IdentityService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return apperr.ErrUnauthenticated
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.log.Info("用户注销", "user_id", claims.UserID)
	return nil
}

// Me 当前登录用户，用户已被删除时视为未登录
func (s *IdentityService) Me(ctx context.Context, userID int64) (*model.User, error) {
	if userID <= 0 {
		return nil, apperr.ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user no longer exists", apperr.ErrUnauthenticated)
	}
	return user, nil
}
