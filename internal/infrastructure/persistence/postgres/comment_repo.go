// Package postgres 提供 PostgreSQL 数据库访问层实现
package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "inkwell-api/pkg/errors"

	"inkwell-api/internal/domain/entity"
	"inkwell-api/internal/domain/repository"
)

// CommentRepo 评论仓储的 PostgreSQL 实现
type CommentRepo struct {
	client *Client
}

// NewCommentRepo 创建评论仓储
func NewCommentRepo(client *Client) repository.CommentRepository {
	return &CommentRepo{client: client}
}

// Create 创建评论
func (r *CommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	ctx, span := tracer.Start(ctx, "CommentRepo.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Create(comment).Error; err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create comment")
	}
	return nil
}

// GetByID 根据 ID 获取评论，不存在时返回 (nil, nil)
func (r *CommentRepo) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	ctx, span := tracer.Start(ctx, "CommentRepo.GetByID")
	defer span.End()

	var comment entity.Comment
	err := getDB(ctx, r.client.db).Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get comment")
	}
	return &comment, nil
}

// ListByStory 获取作品评论列表，按创建时间倒序
func (r *CommentRepo) ListByStory(ctx context.Context, storyID string) ([]*entity.Comment, error) {
	ctx, span := tracer.Start(ctx, "CommentRepo.ListByStory")
	defer span.End()

	var rows []*entity.Comment
	err := getDB(ctx, r.client.db).
		Where("story_id = ?", storyID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list comments")
	}
	return rows, nil
}

// CountByStory 统计作品评论数
func (r *CommentRepo) CountByStory(ctx context.Context, storyID string) (int64, error) {
	ctx, span := tracer.Start(ctx, "CommentRepo.CountByStory")
	defer span.End()

	var count int64
	err := getDB(ctx, r.client.db).
		Model(&entity.Comment{}).
		Where("story_id = ?", storyID).
		Count(&count).Error
	if err != nil {
		span.RecordError(err)
		return 0, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to count comments")
	}
	return count, nil
}

// UpdateText 更新评论文本并刷新 updated_at
func (r *CommentRepo) UpdateText(ctx context.Context, id, text string) error {
	ctx, span := tracer.Start(ctx, "CommentRepo.UpdateText")
	defer span.End()

	err := getDB(ctx, r.client.db).
		Model(&entity.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"text":       text,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update comment text")
	}
	return nil
}

// Delete 删除评论
func (r *CommentRepo) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "CommentRepo.Delete")
	defer span.End()

	err := getDB(ctx, r.client.db).
		Where("id = ?", id).
		Delete(&entity.Comment{}).Error
	if err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete comment")
	}
	return nil
}

// DeleteByStory 删除作品下的全部评论
func (r *CommentRepo) DeleteByStory(ctx context.Context, storyID string) error {
	ctx, span := tracer.Start(ctx, "CommentRepo.DeleteByStory")
	defer span.End()

	err := getDB(ctx, r.client.db).
		Where("story_id = ?", storyID).
		Delete(&entity.Comment{}).Error
	if err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete comments by story")
	}
	return nil
}
