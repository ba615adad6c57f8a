package model

import (
	"time"
)

// User 用户模型
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterInput 注册请求
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,strongpassword"`
}

// LoginInput 登录请求
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session 登录成功后签发的令牌及其元数据
type Session struct {
	Token     string    `json:"token"`
	TokenID   string    `json:"-"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// ExpiresIn 令牌有效期
func (s *Session) ExpiresIn() time.Duration {
	return s.ExpiresAt.Sub(s.IssuedAt)
}
