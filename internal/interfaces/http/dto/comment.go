// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"inkwell-api/internal/domain/entity"
)

// CreateCommentRequest 发表评论请求
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// UpdateCommentRequest 更新评论请求
type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// CommentResponse 评论响应
type CommentResponse struct {
	ID         string    `json:"id"`
	StoryID    string    `json:"story_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserAvatar *string   `json:"user_avatar"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CommentListResponse 评论列表响应
type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
	Total    int               `json:"total"`
}

// ToCommentResponse 转换评论实体为响应
func ToCommentResponse(c *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		StoryID:    c.StoryID,
		UserID:     c.UserID,
		UserName:   c.UserName,
		UserAvatar: c.UserAvatar,
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToCommentListResponse 转换评论列表为响应
func ToCommentListResponse(comments []*entity.Comment) CommentListResponse {
	items := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		items = append(items, ToCommentResponse(c))
	}
	return CommentListResponse{
		Comments: items,
		Total:    len(items),
	}
}
