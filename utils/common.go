package utils

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// 上下文中存放当前用户和请求ID的键
const (
	ContextUserKey      = "user"
	ContextRequestIDKey = "requestId"
)

// LoginUser 当前登录用户，写入 created_by / uploaded_by 时显式传递
type LoginUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	TokenID string `json:"-"`
	// ExpiresAt token过期时间，注销时写入
	ExpiresAt time.Time `json:"-"`
}

// IDPtr 返回用户ID指针，未登录时为nil
func (u *LoginUser) IDPtr() *string {
	if u == nil || u.ID == "" {
		return nil
	}
	id := u.ID
	return &id
}

// GetUser 获取当前用户信息
func GetUser(c *gin.Context) (*LoginUser, error) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, fmt.Errorf("GetUser 未授权访问")
	}

	user, ok := value.(*LoginUser)
	if !ok || user.ID == "" {
		return nil, fmt.Errorf("无效的用户信息")
	}
	return user, nil
}
