package middleware

import (
	"github.com/BerniceZTT/client_crm/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler 全局错误处理中间件，处理通过 c.Error 记录但未写响应的错误
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// 已经写出响应，不重复处理
		if c.Writer.Written() {
			return
		}

		if len(c.Errors) > 0 {
			utils.HandleError(c, c.Errors.Last().Err)
		}
	}
}
