package middleware

import (
	"time"

	"github.com/BerniceZTT/client_crm/utils"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

// RequestIDHeader 请求ID头
const RequestIDHeader = "X-Request-ID"

// Logger 日志中间件，为每个请求分配请求ID
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = ulid.Make().String()
		}
		c.Set(utils.ContextRequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		// 记录请求信息
		utils.LogApiRequest(requestID, method, path, c.Request.URL.Query())

		// 处理请求
		c.Next()

		// 记录响应信息
		utils.LogApiResponse(requestID, method, path, c.Writer.Status(), time.Since(start))
	}
}

// Recovery 恢复中间件
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		// 记录崩溃信息
		utils.Logger.Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Str("requestId", c.GetString(utils.ContextRequestIDKey)).
			Msg("服务崩溃")

		failed := utils.CreateRequestFailedError()
		c.AbortWithStatusJSON(failed.StatusCode, gin.H{
			"success": false,
			"error":   failed.Message,
			"code":    failed.ErrorCode,
		})
	})
}
