// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// BindStoryID 从 URI 绑定作品 ID
func BindStoryID(c *gin.Context) string {
	return c.Param("sid")
}

// BindChapterID 从 URI 绑定章节 ID
func BindChapterID(c *gin.Context) string {
	return c.Param("chid")
}

// BindCommentID 从 URI 绑定评论 ID
func BindCommentID(c *gin.Context) string {
	return c.Param("cid")
}

// BindUserID 从 URI 绑定用户 ID
func BindUserID(c *gin.Context) string {
	return c.Param("uid")
}

// BindLimit 从查询参数绑定列表上限，非法值回退默认
func BindLimit(c *gin.Context, defaultVal int) int {
	s := c.Query("limit")
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return defaultVal
	}
	return v
}
