// Package postgres 提供 PostgreSQL 数据库访问层实现
package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "inkwell-api/pkg/errors"

	"inkwell-api/internal/domain/entity"
	"inkwell-api/internal/domain/repository"
)

// RatingRepo 评分仓储的 PostgreSQL 实现
type RatingRepo struct {
	client *Client
}

// NewRatingRepo 创建评分仓储
func NewRatingRepo(client *Client) repository.RatingRepository {
	return &RatingRepo{client: client}
}

// Upsert 原子写入评分
// 依赖 (story_id, user_id) 唯一索引，冲突时只更新 value 与 updated_at，
// 并发首评也只会落下一行
func (r *RatingRepo) Upsert(ctx context.Context, rating *entity.Rating) error {
	ctx, span := tracer.Start(ctx, "RatingRepo.Upsert")
	defer span.End()

	err := getDB(ctx, r.client.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "story_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":      rating.Value,
				"updated_at": time.Now(),
			}),
		}).
		Create(rating).Error
	if err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to upsert rating")
	}
	return nil
}

// GetByStoryAndUser 获取用户对作品的评分，不存在时返回 (nil, nil)
func (r *RatingRepo) GetByStoryAndUser(ctx context.Context, storyID, userID string) (*entity.Rating, error) {
	ctx, span := tracer.Start(ctx, "RatingRepo.GetByStoryAndUser")
	defer span.End()

	var rating entity.Rating
	err := getDB(ctx, r.client.db).
		Where("story_id = ? AND user_id = ?", storyID, userID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get rating")
	}
	return &rating, nil
}

// ListByStory 获取作品全部评分
func (r *RatingRepo) ListByStory(ctx context.Context, storyID string) ([]*entity.Rating, error) {
	ctx, span := tracer.Start(ctx, "RatingRepo.ListByStory")
	defer span.End()

	var rows []*entity.Rating
	err := getDB(ctx, r.client.db).
		Where("story_id = ?", storyID).
		Find(&rows).Error
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list ratings")
	}
	return rows, nil
}

// DeleteByStory 删除作品下的全部评分
func (r *RatingRepo) DeleteByStory(ctx context.Context, storyID string) error {
	ctx, span := tracer.Start(ctx, "RatingRepo.DeleteByStory")
	defer span.End()

	err := getDB(ctx, r.client.db).
		Where("story_id = ?", storyID).
		Delete(&entity.Rating{}).Error
	if err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete ratings by story")
	}
	return nil
}
