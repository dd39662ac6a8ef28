// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"inkwell-api/internal/interfaces/http/dto"
	"inkwell-api/pkg/errors"
	"inkwell-api/pkg/logger"
)

// respondError 按错误类型返回响应
// 应用错误映射为对应的 HTTP 状态码，其余一律 500 并记录日志
func respondError(c *gin.Context, err error, fallbackMsg string) {
	if errors.IsAppError(err) {
		appErr := errors.AsAppError(err)
		c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
			Code:    appErr.HTTPStatus,
			Message: appErr.Message,
			Detail:  appErr.Detail,
			TraceID: c.GetString("trace_id"),
		})
		return
	}

	logger.Error(c.Request.Context(), fallbackMsg, err)
	dto.InternalError(c, fallbackMsg)
}
