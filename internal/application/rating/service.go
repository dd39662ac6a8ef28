// Package rating 提供评分相关的应用服务
package rating

import (
	"context"
	"encoding/json"
	"time"

	apperrors "inkwell-api/pkg/errors"
	"inkwell-api/pkg/logger"
	"inkwell-api/pkg/metrics"

	"inkwell-api/internal/domain/entity"
	"inkwell-api/internal/domain/repository"
	"inkwell-api/internal/infrastructure/persistence/redis"
)

// Service 评分应用服务
type Service struct {
	ratingRepo repository.RatingRepository
	storyRepo  repository.StoryRepository
	cache      *redis.Cache
	statsTTL   time.Duration
}

// NewService 创建评分应用服务
func NewService(
	ratingRepo repository.RatingRepository,
	storyRepo repository.StoryRepository,
	cache *redis.Cache,
	statsTTL time.Duration,
) *Service {
	return &Service{
		ratingRepo: ratingRepo,
		storyRepo:  storyRepo,
		cache:      cache,
		statsTTL:   statsTTL,
	}
}

// Set 写入用户对作品的评分
// 同一 (story, user) 重复评分为覆盖更新，不产生重复行
func (s *Service) Set(ctx context.Context, userID, storyID string, value int) error {
	if !entity.IsValidRatingValue(value) {
		return apperrors.ErrInvalidRating
	}

	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return err
	}
	if story == nil {
		return apperrors.ErrStoryNotFound
	}

	if err := s.ratingRepo.Upsert(ctx, entity.NewRating(storyID, userID, value)); err != nil {
		return err
	}

	metrics.RatingsSetTotal.Inc()

	// 写后使聚合缓存失效，下一次读取重新计算
	if s.cache != nil {
		if err := s.cache.InvalidateRatingStats(ctx, storyID); err != nil {
			logger.Warn(ctx, "failed to invalidate rating stats cache", "story_id", storyID, "error", err)
		}
	}
	return nil
}

// GetUserRating 获取用户对作品的评分，未评分时返回 (nil, nil)
func (s *Service) GetUserRating(ctx context.Context, storyID, userID string) (*entity.Rating, error) {
	return s.ratingRepo.GetByStoryAndUser(ctx, storyID, userID)
}

// Stats 获取作品评分聚合，短 TTL 缓存
func (s *Service) Stats(ctx context.Context, storyID string) (entity.RatingStats, error) {
	if s.cache == nil {
		return s.load(ctx, storyID)
	}

	data, err := s.cache.GetOrLoad(ctx, s.cache.RatingStatsKey(storyID), s.statsTTL, func() (interface{}, error) {
		return s.load(ctx, storyID)
	})
	if err != nil {
		return entity.RatingStats{}, err
	}

	var stats entity.RatingStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return entity.RatingStats{}, err
	}
	return stats, nil
}

func (s *Service) load(ctx context.Context, storyID string) (entity.RatingStats, error) {
	ratings, err := s.ratingRepo.ListByStory(ctx, storyID)
	if err != nil {
		return entity.RatingStats{}, err
	}
	return Aggregate(ctx, storyID, ratings), nil
}

// Aggregate 聚合评分
// 越界的历史脏值不计入分子，但计入分母，并记录告警
func Aggregate(ctx context.Context, storyID string, ratings []*entity.Rating) entity.RatingStats {
	var sum int
	for _, r := range ratings {
		if !entity.IsValidRatingValue(r.Value) {
			metrics.InvalidRatingValuesTotal.Inc()
			logger.Warn(ctx, "invalid rating value in aggregation",
				"story_id", storyID, "rating_id", r.ID, "value", r.Value)
			continue
		}
		sum += r.Value
	}

	stats := entity.RatingStats{Count: len(ratings)}
	if stats.Count > 0 {
		stats.Average = float64(sum) / float64(stats.Count)
	}
	return stats
}
