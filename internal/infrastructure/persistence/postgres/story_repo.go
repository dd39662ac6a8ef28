// Package postgres 提供 PostgreSQL 数据库访问层实现
package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "inkwell-api/pkg/errors"
	"inkwell-api/pkg/metrics"

	"inkwell-api/internal/domain/entity"
	"inkwell-api/internal/domain/repository"
)

// StoryRepo 作品仓储的 PostgreSQL 实现
type StoryRepo struct {
	client *Client
}

// NewStoryRepo 创建作品仓储
func NewStoryRepo(client *Client) repository.StoryRepository {
	return &StoryRepo{client: client}
}

// Create 创建作品
func (r *StoryRepo) Create(ctx context.Context, story *entity.Story) error {
	ctx, span := tracer.Start(ctx, "StoryRepo.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Create(story).Error; err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create story")
	}
	return nil
}

// GetByID 根据 ID 获取作品，不存在时返回 (nil, nil)
// 读取时应用旧形态归一
func (r *StoryRepo) GetByID(ctx context.Context, id string) (*entity.Story, error) {
	ctx, span := tracer.Start(ctx, "StoryRepo.GetByID")
	defer span.End()

	var story entity.Story
	err := getDB(ctx, r.client.db).Where("id = ?", id).First(&story).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get story")
	}

	normalize(&story)
	return &story, nil
}

// GetByIDs 批量获取作品，保持入参顺序，无法解析的 ID 被跳过
func (r *StoryRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Story, error) {
	ctx, span := tracer.Start(ctx, "StoryRepo.GetByIDs")
	defer span.End()

	if len(ids) == 0 {
		return []*entity.Story{}, nil
	}

	var rows []*entity.Story
	err := getDB(ctx, r.client.db).Where("id IN ?", ids).Find(&rows).Error
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to batch get stories")
	}

	byID := make(map[string]*entity.Story, len(rows))
	for _, s := range rows {
		normalize(s)
		byID[s.ID] = s
	}

	// 按入参顺序组装，缺失的 ID 直接跳过
	ordered := make([]*entity.Story, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered, nil
}

// List 按创建时间倒序获取最新作品
func (r *StoryRepo) List(ctx context.Context, limit int) ([]*entity.Story, error) {
	ctx, span := tracer.Start(ctx, "StoryRepo.List")
	defer span.End()

	if limit <= 0 {
		limit = repository.DefaultStoryListLimit
	}

	var rows []*entity.Story
	err := getDB(ctx, r.client.db).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list stories")
	}

	for _, s := range rows {
		normalize(s)
	}
	return rows, nil
}

// ListByAuthor 获取指定作者的作品列表
func (r *StoryRepo) ListByAuthor(ctx context.Context, authorID string) ([]*entity.Story, error) {
	ctx, span := tracer.Start(ctx, "StoryRepo.ListByAuthor")
	defer span.End()

	var rows []*entity.Story
	err := getDB(ctx, r.client.db).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list stories by author")
	}

	for _, s := range rows {
		normalize(s)
	}
	return rows, nil
}

// Update 保存整个作品
func (r *StoryRepo) Update(ctx context.Context, story *entity.Story) error {
	ctx, span := tracer.Start(ctx, "StoryRepo.Update")
	defer span.End()

	if err := getDB(ctx, r.client.db).Save(story).Error; err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update story")
	}
	return nil
}

// UpdateFields 部分字段更新，只触碰给定字段
func (r *StoryRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, span := tracer.Start(ctx, "StoryRepo.UpdateFields")
	defer span.End()

	err := getDB(ctx, r.client.db).
		Model(&entity.Story{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update story fields")
	}
	return nil
}

// Delete 删除作品
func (r *StoryRepo) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "StoryRepo.Delete")
	defer span.End()

	err := getDB(ctx, r.client.db).
		Where("id = ?", id).
		Delete(&entity.Story{}).Error
	if err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete story")
	}
	return nil
}

// normalize 应用旧形态归一并上报归一计数
func normalize(s *entity.Story) {
	for _, field := range s.Normalize() {
		metrics.LegacyStoriesNormalizedTotal.WithLabelValues(field).Inc()
	}
}
