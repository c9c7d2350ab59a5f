package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BerniceZTT/client_crm/models"
	"github.com/BerniceZTT/client_crm/repository"
	"github.com/BerniceZTT/client_crm/utils"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

// 需要记录的HTTP方法
var loggedMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// 不需要记录的路径
var excludedPaths = map[string]bool{
	"/api/health":        true,
	"/api/auth/login":    true,
	"/api/auth/register": true,
}

// 记录请求体的上限，超出或非JSON时只记录长度
const maxLoggedBody = 64 * 1024

// OperationLoggerMiddleware 操作日志记录中间件，写入失败只记日志
func OperationLoggerMiddleware(gw repository.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 检查是否需要记录此操作
		if !shouldLogOperation(c) {
			c.Next()
			return
		}

		startTime := time.Now()
		requestBody := readRequestBody(c)

		// 处理请求
		c.Next()

		operatorID, operatorEmail := "anonymous", ""
		if user, err := utils.GetUser(c); err == nil {
			operatorID, operatorEmail = user.ID, user.Email
		}

		var errorMessage string
		if len(c.Errors) > 0 {
			errorMessage = c.Errors.String()
		}

		operationLog := models.OperationLog{
			ID:            ulid.Make().String(),
			RequestID:     c.GetString(utils.ContextRequestIDKey),
			Method:        c.Request.Method,
			Path:          c.Request.URL.Path,
			OperatorID:    operatorID,
			OperatorEmail: operatorEmail,
			RequestBody:   sanitizeData(requestBody),
			StatusCode:    c.Writer.Status(),
			Success:       c.Writer.Status() < http.StatusBadRequest,
			ErrorMessage:  errorMessage,
			OperationTime: startTime,
			ResponseTime:  time.Since(startTime).Milliseconds(),
			IPAddress:     c.ClientIP(),
			UserAgent:     c.Request.UserAgent(),
		}

		// 请求可能已被取消，日志写入使用独立的上下文
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := gw.Insert(ctx, repository.OperationLogsTable, operationLog); err != nil {
			utils.Logger.Error().Err(err).Str("path", operationLog.Path).Msg("保存操作日志失败")
		}
	}
}

// shouldLogOperation 检查是否需要记录此操作
func shouldLogOperation(c *gin.Context) bool {
	if excludedPaths[c.Request.URL.Path] {
		return false
	}
	return loggedMethods[c.Request.Method]
}

// readRequestBody 读取并重置JSON请求体
func readRequestBody(c *gin.Context) interface{} {
	if c.Request.Body == nil || !strings.Contains(c.GetHeader("Content-Type"), "application/json") {
		if c.Request.ContentLength > 0 {
			return map[string]interface{}{"contentLength": c.Request.ContentLength}
		}
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLoggedBody+1))
	if err != nil {
		utils.Logger.Error().Err(err).Msg("读取请求体失败")
		return nil
	}
	// 重置请求体，拼回未读取的部分
	c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(data), c.Request.Body))

	if len(data) > maxLoggedBody {
		return map[string]interface{}{"truncated": true}
	}

	var body interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		return string(data)
	}
	return body
}

// sanitizeData 清理数据中的敏感信息
func sanitizeData(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		sanitized := make(map[string]interface{}, len(v))
		for k, val := range v {
			switch strings.ToLower(k) {
			case "password", "token", "authorization", "secret", "key":
				sanitized[k] = "******"
			default:
				sanitized[k] = sanitizeData(val)
			}
		}
		return sanitized
	case []interface{}:
		sanitized := make([]interface{}, len(v))
		for i, val := range v {
			sanitized[i] = sanitizeData(val)
		}
		return sanitized
	default:
		return data
	}
}
