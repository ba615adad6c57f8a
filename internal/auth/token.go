// Package auth 负责 JWT 的签发、解析和吊销
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/user/seriestrack/internal/apperr"
	"github.com/user/seriestrack/internal/model"
)

// Claims JWT 声明
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Lifetime 令牌总有效期
func (c *Claims) Lifetime() time.Duration {
	if c.ExpiresAt == nil || c.IssuedAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(c.IssuedAt.Time)
}

// Issuer 签发和校验 HS256 令牌
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock 替换时间来源
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// TTL 新令牌的有效期
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue 为用户签发令牌
func (i *Issuer) Issue(user *model.User) (*model.Session, error) {
	if user == nil || user.ID <= 0 {
		return nil, errors.New("issue token: missing user")
	}

	// JWT 时间精度为秒
	issuedAt := i.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(i.ttl)
	jti := uuid.NewString()

	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &model.Session{
		Token:     token,
		TokenID:   jti,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// Parse 校验签名与有效期，失败统一返回 ErrUnauthenticated
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: missing token", apperr.ErrUnauthenticated)
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return nil, fmt.Errorf("%w: invalid claims", apperr.ErrUnauthenticated)
	}
	return claims, nil
}

// ShouldRefresh 已消耗总有效期一半以上时建议续期
func (i *Issuer) ShouldRefresh(claims *Claims) bool {
	total := claims.Lifetime()
	if total <= 0 {
		return false
	}
	return i.now().Sub(claims.IssuedAt.Time) > total/2
}
