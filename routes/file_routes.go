package routes

import (
	"github.com/BerniceZTT/client_crm/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterFileRoutes 文件管理
func RegisterFileRoutes(router *gin.Engine, auth gin.HandlerFunc) {
	fileGroup := router.Group("/api/files")
	fileGroup.Use(auth)

	fileGroup.GET("", controllers.GetFiles)
	fileGroup.POST("", controllers.UploadFile)
	fileGroup.GET("/:id/download", controllers.DownloadFile)
	fileGroup.DELETE("/:id", controllers.DeleteFile)
}

// RegisterReminderRoutes 提醒
func RegisterReminderRoutes(router *gin.Engine, auth gin.HandlerFunc) {
	reminderGroup := router.Group("/api/reminders")
	reminderGroup.Use(auth)

	reminderGroup.GET("", controllers.GetReminders)
	reminderGroup.POST("", controllers.CreateReminder)
	reminderGroup.PATCH("/:id/done", controllers.CompleteReminder)
	reminderGroup.DELETE("/:id", controllers.DeleteReminder)
}
