package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/BerniceZTT/client_crm/middleware"

	"github.com/gin-gonic/gin"
)

// Deps 路由依赖
type Deps struct {
	// Auth 校验token，同时检查是否已注销
	Auth middleware.TokenParser
	// DBStatus 各集合文档数
	DBStatus func(ctx context.Context) map[string]interface{}
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, deps Deps) {
	auth := middleware.AuthMiddleware(deps.Auth)

	// 注册认证路由
	RegisterAuthRoutes(router, auth)

	// 注册业务路由
	RegisterDashboardRoutes(router, auth)
	RegisterClientRoutes(router, auth)
	RegisterProjectRoutes(router, auth)
	RegisterPaymentRoutes(router, auth)
	RegisterFileRoutes(router, auth)
	RegisterReminderRoutes(router, auth)

	// 健康检查路由
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 数据库状态检查路由
	router.GET("/api/db-status", auth, func(c *gin.Context) {
		if deps.DBStatus == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		c.JSON(http.StatusOK, deps.DBStatus(ctx))
	})
}
