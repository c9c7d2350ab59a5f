package controllers

import (
	"context"
	"net/http"

	"github.com/BerniceZTT/client_crm/models"
	"github.com/BerniceZTT/client_crm/utils"

	"github.com/gin-gonic/gin"
)

// GetPaymentOptions 收款表单下拉，选中客户后返回其项目
func GetPaymentOptions(c *gin.Context) {
	clientID := c.Query("client_id")
	respondScreen(c, func(ctx context.Context) (models.PaymentOptions, error) {
		return svc.PaymentOptions(ctx, clientID)
	})
}

// GetPayments 收款记录
func GetPayments(c *gin.Context) {
	respondScreen(c, svc.ListPayments)
}

// CreatePayment 登记收款
func CreatePayment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input models.PaymentInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	payment, err := svc.CreatePayment(ctx, user, input)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, payment, "收款已登记", http.StatusCreated)
}

// DeletePayment 删除收款
func DeletePayment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := svc.DeletePayment(ctx, user, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "收款已删除")
}
