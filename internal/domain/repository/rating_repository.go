// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"inkwell-api/internal/domain/entity"
)

// RatingRepository 评分仓储接口
type RatingRepository interface {
	// Upsert 原子写入评分：(story_id, user_id) 已存在时更新 value，
	// 否则插入新行。依赖唯一索引，并发首评只会产生一行
	Upsert(ctx context.Context, rating *entity.Rating) error

	// GetByStoryAndUser 获取用户对作品的评分，不存在时返回 (nil, nil)
	GetByStoryAndUser(ctx context.Context, storyID, userID string) (*entity.Rating, error)

	// ListByStory 获取作品全部评分
	ListByStory(ctx context.Context, storyID string) ([]*entity.Rating, error)

	// DeleteByStory 删除作品下的全部评分（级联删除用）
	DeleteByStory(ctx context.Context, storyID string) error
}
