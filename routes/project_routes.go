package routes

import (
	"github.com/BerniceZTT/client_crm/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterProjectRoutes(router *gin.Engine, auth gin.HandlerFunc) {

	projectGroup := router.Group("/api/projects")

	projectGroup.Use(auth)

	projectGroup.GET("", controllers.GetProjects)
	projectGroup.POST("", controllers.CreateProject)
	projectGroup.PUT("/:id", controllers.UpdateProject)
	projectGroup.DELETE("/:id", controllers.DeleteProject)
}

func RegisterPaymentRoutes(router *gin.Engine, auth gin.HandlerFunc) {
	paymentGroup := router.Group("/api/payments")
	paymentGroup.Use(auth)

	paymentGroup.GET("", controllers.GetPayments)
	paymentGroup.GET("/options", controllers.GetPaymentOptions)
	paymentGroup.POST("", controllers.CreatePayment)
	paymentGroup.DELETE("/:id", controllers.DeletePayment)
}
