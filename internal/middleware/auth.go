package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/seriestrack/internal/auth"
	"github.com/user/seriestrack/internal/logger"
	"github.com/user/seriestrack/internal/model"
	"github.com/user/seriestrack/internal/utils"
)

const (
	// TokenCookie 令牌 Cookie 名
	TokenCookie = "token"

	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxClaims = "claims"
)

// RequireAuth 必须登录中间件
func RequireAuth(issuer *auth.Issuer, revocations auth.RevocationList, secureCookie bool, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, fromCookie := extractToken(c)

		claims, err := issuer.Parse(tokenString)
		if err != nil {
			utils.Unauthorized(c, "未登录或登录已失效")
			c.Abort()
			return
		}

		revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			log.Error("检查令牌吊销状态失败", "error", err)
			utils.InternalServerError(c, "")
			c.Abort()
			return
		}
		if revoked {
			utils.Unauthorized(c, "登录已失效，请重新登录")
			c.Abort()
			return
		}

		// 将用户信息存入上下文
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxClaims, claims)

		// 滑动续期：Cookie 登录且有效期消耗过半时换发新令牌
		if fromCookie && issuer.ShouldRefresh(claims) {
			session, err := issuer.Issue(&model.User{ID: claims.UserID, Email: claims.Email})
			if err == nil {
				SetTokenCookie(c, session, secureCookie)
			}
		}

		c.Next()
	}
}

// extractToken 优先从 Cookie 获取，其次 Authorization: Bearer
func extractToken(c *gin.Context) (string, bool) {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")), false
	}
	return "", false
}

// SetTokenCookie 写入令牌 Cookie
func SetTokenCookie(c *gin.Context, session *model.Session, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookie, session.Token, int(session.ExpiresIn().Seconds()), "/", "", secure, true)
}

// ClearTokenCookie 清除令牌 Cookie
func ClearTokenCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookie, "", -1, "/", "", secure, true)
}

// GetUserID 从上下文获取用户 ID（未登录返回 0）
func GetUserID(c *gin.Context) int64 {
	if userID, exists := c.Get(ctxUserID); exists {
		if id, ok := userID.(int64); ok {
			return id
		}
	}
	return 0
}

// GetClaims 从上下文获取当前令牌声明
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(ctxClaims); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
