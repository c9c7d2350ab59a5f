package routes

import (
	"github.com/BerniceZTT/client_crm/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterDashboardRoutes 看板
func RegisterDashboardRoutes(router *gin.Engine, auth gin.HandlerFunc) {
	router.GET("/api/dashboard", auth, controllers.GetDashboard)
}

// RegisterClientRoutes 客户及备注
func RegisterClientRoutes(router *gin.Engine, auth gin.HandlerFunc) {
	clientGroup := router.Group("/api/clients")
	clientGroup.Use(auth)

	clientGroup.GET("", controllers.GetClients)
	clientGroup.POST("", controllers.CreateClient)
	clientGroup.GET("/:id", controllers.GetClientDetails)
	clientGroup.PUT("/:id", controllers.UpdateClient)
	clientGroup.DELETE("/:id", controllers.DeleteClient)
	clientGroup.POST("/:id/notes", controllers.AddNote)

	router.DELETE("/api/notes/:noteId", auth, controllers.DeleteNote)
}
