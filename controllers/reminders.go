package controllers

import (
	"net/http"

	"github.com/BerniceZTT/client_crm/models"
	"github.com/BerniceZTT/client_crm/utils"

	"github.com/gin-gonic/gin"
)

// GetReminders 未发送且未过期的提醒
func GetReminders(c *gin.Context) {
	respondScreen(c, svc.Reminders)
}

// CreateReminder 新建提醒
func CreateReminder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input models.ReminderInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	reminder, err := svc.CreateReminder(ctx, user, input)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, reminder, "提醒已创建", http.StatusCreated)
}

// CompleteReminder 标记提醒已完成
func CompleteReminder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := svc.CompleteReminder(ctx, user, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "提醒已完成")
}

// DeleteReminder 删除提醒
func DeleteReminder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := svc.DeleteReminder(ctx, user, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "提醒已删除")
}
