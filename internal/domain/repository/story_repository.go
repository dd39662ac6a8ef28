// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"inkwell-api/internal/domain/entity"
)

// DefaultStoryListLimit 列表查询的缺省上限
const DefaultStoryListLimit = 50

// StoryRepository 作品仓储接口
// 所有读取方法返回的作品均已应用旧形态归一
type StoryRepository interface {
	// Create 创建作品
	Create(ctx context.Context, story *entity.Story) error

	// GetByID 根据 ID 获取作品，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id string) (*entity.Story, error)

	// GetByIDs 批量获取作品，保持入参顺序，无法解析的 ID 被跳过
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Story, error)

	// List 按创建时间倒序获取最新作品，limit <= 0 时取缺省上限
	List(ctx context.Context, limit int) ([]*entity.Story, error)

	// ListByAuthor 获取指定作者的作品列表
	ListByAuthor(ctx context.Context, authorID string) ([]*entity.Story, error)

	// Update 保存整个作品
	Update(ctx context.Context, story *entity.Story) error

	// UpdateFields 部分字段更新，只触碰给定字段
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error

	// Delete 删除作品
	Delete(ctx context.Context, id string) error
}
