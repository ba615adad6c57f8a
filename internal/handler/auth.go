package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/seriestrack/internal/apperr"
	"github.com/user/seriestrack/internal/middleware"
	"github.com/user/seriestrack/internal/model"
	"github.com/user/seriestrack/internal/utils"
)

// Register 注册
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, bindError(err))
		return
	}

	user, err := h.Identity.Register(c.Request.Context(), req)
	if errors.Is(err, apperr.ErrConflict) {
		utils.Error(c, http.StatusConflict, "该邮箱已被注册")
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.Created(c, user)
}

// LoginMeta 令牌时间信息，时间戳单位为秒
type LoginMeta struct {
	ExpiresIn        string    `json:"expiresIn"`
	ExpiresInSeconds int64     `json:"expiresInSeconds"`
	IssuedAt         int64     `json:"iat"`
	ExpiresAtUnix    int64     `json:"exp"`
	Now              int64     `json:"now"`
	ExpiresAt        time.Time `json:"expiresAt"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
	Meta  LoginMeta   `json:"meta"`
}

// Login 登录，成功后同时写入 Cookie
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, bindError(err))
		return
	}

	session, err := h.Identity.Login(c.Request.Context(), req)
	if errors.Is(err, apperr.ErrUnauthenticated) {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	middleware.SetTokenCookie(c, session, h.SecureCookie)

	utils.SuccessWithMessage(c, "登录成功", LoginResponse{
		Token: session.Token,
		User:  session.User,
		Meta: LoginMeta{
			ExpiresIn:        session.ExpiresIn().String(),
			ExpiresInSeconds: int64(session.ExpiresIn().Seconds()),
			IssuedAt:         session.IssuedAt.Unix(),
			ExpiresAtUnix:    session.ExpiresAt.Unix(),
			Now:              time.Now().Unix(),
			ExpiresAt:        session.ExpiresAt,
		},
	})
}

// Logout 注销当前令牌
func (h *Handler) Logout(c *gin.Context) {
	if err := h.Identity.Logout(c.Request.Context(), middleware.GetClaims(c)); err != nil {
		h.respondError(c, err)
		return
	}
	middleware.ClearTokenCookie(c, h.SecureCookie)
	utils.SuccessWithMessage(c, "已退出登录", nil)
}

// Me 当前用户信息
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Identity.Me(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, user)
}
