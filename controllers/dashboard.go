package controllers

import (
	"github.com/gin-gonic/gin"
)

// GetDashboard 看板数据
func GetDashboard(c *gin.Context) {
	respondScreen(c, svc.Dashboard)
}
