package controllers

import (
	"net/http"

	"github.com/BerniceZTT/client_crm/models"
	"github.com/BerniceZTT/client_crm/utils"

	"github.com/gin-gonic/gin"
)

// Register 注册
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := authSvc.Register(ctx, req)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, user, "注册成功", http.StatusCreated)
}

// Login 登录
func Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := authSvc.Login(ctx, req)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, resp, "")
}

// Me 当前用户
func Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := authSvc.Me(ctx, user.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, profile, "")
}

// Logout 退出登录，当前token失效
func Logout(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := authSvc.Logout(ctx, user); err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "已退出登录")
}
