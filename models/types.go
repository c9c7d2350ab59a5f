package models

import "time"

// User 登录用户
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"` // 不返回密码
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// RevokedToken 已注销的token，按jti记录
type RevokedToken struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	RevokedAt time.Time `bson:"revoked_at" json:"revoked_at"`
}

// 各种请求和响应结构
type (
	// LoginRequest 登录请求
	LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	// LoginResponse 登录响应
	LoginResponse struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}

	// RegisterRequest 注册请求
	RegisterRequest struct {
		Email    string `json:"email" binding:"required" validate:"required,email"`
		Password string `json:"password" binding:"required" validate:"required,min=6"`
	}
)
