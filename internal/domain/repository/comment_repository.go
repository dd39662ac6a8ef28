// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"inkwell-api/internal/domain/entity"
)

// CommentRepository 评论仓储接口
type CommentRepository interface {
	// Create 创建评论
	Create(ctx context.Context, comment *entity.Comment) error

	// GetByID 根据 ID 获取评论，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id string) (*entity.Comment, error)

	// ListByStory 获取作品评论列表，按创建时间倒序
	ListByStory(ctx context.Context, storyID string) ([]*entity.Comment, error)

	// CountByStory 统计作品评论数
	CountByStory(ctx context.Context, storyID string) (int64, error)

	// UpdateText 更新评论文本并刷新 updated_at
	UpdateText(ctx context.Context, id, text string) error

	// Delete 删除评论
	Delete(ctx context.Context, id string) error

	// DeleteByStory 删除作品下的全部评论（级联删除用）
	DeleteByStory(ctx context.Context, storyID string) error
}
