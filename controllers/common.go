package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/BerniceZTT/client_crm/finance"
	"github.com/BerniceZTT/client_crm/repository"
	"github.com/BerniceZTT/client_crm/service"
	"github.com/BerniceZTT/client_crm/storage"
	"github.com/BerniceZTT/client_crm/utils"

	"github.com/gin-gonic/gin"
)

// 单个请求的远端读写超时
const requestTimeout = 30 * time.Second

// 全局变量，由 Init 注入
var (
	svc            *service.Service
	authSvc        *service.AuthService
	maxUploadBytes int64 = 20 << 20
)

// Init 注入服务
func Init(s *service.Service, auth *service.AuthService, maxUpload int64) {
	svc = s
	authSvc = auth
	if maxUpload > 0 {
		maxUploadBytes = maxUpload
	}
}

// AuthService 供认证中间件使用
func AuthService() *service.AuthService {
	return authSvc
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// handleError 业务错误映射为对应状态码，其余统一按请求失败处理
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, finance.ErrInvalidAmount):
		utils.HandleError(c, utils.CreateBadRequestError(err.Error()))
	case errors.Is(err, service.ErrConflict):
		utils.HandleError(c, utils.NewApiError(err.Error(), http.StatusConflict, "CONFLICT"))
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.HandleError(c, utils.NewApiError(err.Error(), http.StatusUnauthorized, "INVALID_CREDENTIALS"))
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, storage.ErrObjectNotFound):
		utils.HandleError(c, utils.CreateNotFoundError("记录"))
	default:
		utils.HandleError(c, err)
	}
}

// currentUser 认证中间件之后一定存在
func currentUser(c *gin.Context) (*utils.LoginUser, bool) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return nil, false
	}
	return user, true
}

// bindJSON 解析请求体，失败时直接返回400
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求参数: "+err.Error()))
		return false
	}
	return true
}

// respondScreen 加载页面数据并返回。每个请求都是一次完整的页面加载，不保留上一次的数据
func respondScreen[T any](c *gin.Context, fetch func(context.Context) (T, error)) {
	ctx, cancel := requestContext(c)
	defer cancel()

	data, err := fetch(ctx)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, data, "")
}
