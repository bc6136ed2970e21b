// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"dev-advisor-api/internal/interfaces/http/dto"
	"dev-advisor-api/pkg/errors"
	"dev-advisor-api/pkg/logger"
)

// handleError 统一错误响应，5xx 级别错误记日志
func handleError(c *gin.Context, err error) {
	appErr := errors.AsAppError(err)
	if appErr.HTTPStatus >= 500 {
		logger.Error(c.Request.Context(), "request failed", err,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
	}
	dto.FromAppError(c, appErr)
}
