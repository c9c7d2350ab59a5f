package routes

import (
	"github.com/BerniceZTT/client_crm/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证路由
func RegisterAuthRoutes(router *gin.Engine, auth gin.HandlerFunc) {
	group := router.Group("/api/auth")

	// 公开路由 - 不需要认证
	group.POST("/login", controllers.Login)
	group.POST("/register", controllers.Register)

	// 需要认证的路由
	group.GET("/me", auth, controllers.Me)
	group.POST("/logout", auth, controllers.Logout)
}
