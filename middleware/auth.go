package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/BerniceZTT/client_crm/utils"

	"github.com/gin-gonic/gin"
)

// TokenParser 解析并校验token（含注销检查）
type TokenParser interface {
	ParseToken(ctx context.Context, token string) (*utils.TokenClaims, error)
}

// AuthMiddleware 认证中间件
func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 从请求头获取token
		authHeader := c.GetHeader("Authorization")

		utils.Logger.Debug().
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Str("authorization", getShortAuthHeader(authHeader)).
			Msg("验证请求")

		// 检查Authorization头
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if !strings.HasPrefix(authHeader, "Bearer ") || token == "" {
			utils.Logger.Info().Msg("缺少Authorization头或格式错误")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "未授权访问",
				"code":    "MISSING_TOKEN",
			})
			return
		}

		claims, err := parser.ParseToken(c.Request.Context(), token)
		if err != nil {
			utils.Logger.Info().Err(err).Msg("Token验证失败")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "无效的token",
				"code":    "INVALID_TOKEN",
			})
			return
		}

		// 将用户信息存储到上下文
		c.Set(utils.ContextUserKey, &utils.LoginUser{
			ID:        claims.UserID,
			Email:     claims.Email,
			TokenID:   claims.TokenID,
			ExpiresAt: claims.ExpiresAt,
		})

		c.Next()
	}
}

// getShortAuthHeader 获取截断的授权头，保护敏感信息
func getShortAuthHeader(header string) string {
	if len(header) > 15 {
		return header[:15] + "..."
	}
	return header
}
