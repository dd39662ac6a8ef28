// Package story 提供作品相关的应用服务
package story

import (
	"context"
	"io"

	"github.com/lib/pq"

	apperrors "inkwell-api/pkg/errors"
	"inkwell-api/pkg/logger"
	"inkwell-api/pkg/metrics"

	"inkwell-api/internal/application/rating"
	"inkwell-api/internal/domain/entity"
	"inkwell-api/internal/domain/repository"
	"inkwell-api/internal/infrastructure/persistence/redis"
	"inkwell-api/internal/infrastructure/storage"
)

// CreateInput 创建作品入参
type CreateInput struct {
	Title       string
	Description string
	Genres      []string
	Tags        []string
	Status      entity.StoryStatus
	CoverImage  string
}

// UpdateInput 更新作品入参，nil 字段不触碰
type UpdateInput struct {
	Title       *string
	Description *string
	Genres      []string
	Tags        []string
	Status      *entity.StoryStatus
}

// Service 作品应用服务
type Service struct {
	storyRepo   repository.StoryRepository
	commentRepo repository.CommentRepository
	ratingRepo  repository.RatingRepository
	txMgr       repository.Transactor
	cache       *redis.Cache
	store       storage.ObjectStore
}

// NewService 创建作品应用服务
func NewService(
	storyRepo repository.StoryRepository,
	commentRepo repository.CommentRepository,
	ratingRepo repository.RatingRepository,
	txMgr repository.Transactor,
	cache *redis.Cache,
	store storage.ObjectStore,
) *Service {
	return &Service{
		storyRepo:   storyRepo,
		commentRepo: commentRepo,
		ratingRepo:  ratingRepo,
		txMgr:       txMgr,
		cache:       cache,
		store:       store,
	}
}

// Create 创建作品
func (s *Service) Create(ctx context.Context, authorID, authorName string, input CreateInput) (*entity.Story, error) {
	story := entity.NewStory(input.Title, input.Description, authorID, authorName, input.Status)
	if len(input.Genres) > 0 {
		story.Genres = pq.StringArray(input.Genres)
	}
	if len(input.Tags) > 0 {
		story.Tags = pq.StringArray(input.Tags)
	}
	if input.CoverImage != "" {
		story.CoverImage = input.CoverImage
	}

	if err := s.storyRepo.Create(ctx, story); err != nil {
		metrics.StoriesCreatedTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.StoriesCreatedTotal.WithLabelValues("success").Inc()
	logger.Info(ctx, "story created", "story_id", story.ID, "author_id", authorID)
	return story, nil
}

// Get 获取作品，不存在时返回 ErrStoryNotFound
func (s *Service) Get(ctx context.Context, id string) (*entity.Story, error) {
	story, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, apperrors.ErrStoryNotFound
	}
	return story, nil
}

// List 获取最新作品列表
func (s *Service) List(ctx context.Context, limit int) ([]*entity.Story, error) {
	return s.storyRepo.List(ctx, limit)
}

// ListByAuthor 获取指定作者的作品列表
func (s *Service) ListByAuthor(ctx context.Context, authorID string) ([]*entity.Story, error) {
	return s.storyRepo.ListByAuthor(ctx, authorID)
}

// Update 更新作品，仅作者本人可操作
func (s *Service) Update(ctx context.Context, userID, id string, input UpdateInput) (*entity.Story, error) {
	story, err := s.ownedStory(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Genres != nil {
		fields["genres"] = pq.StringArray(input.Genres)
	}
	if input.Tags != nil {
		fields["tags"] = pq.StringArray(input.Tags)
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}

	if len(fields) == 0 {
		return story, nil
	}

	if err := s.storyRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	if err := s.invalidate(ctx, id); err != nil {
		logger.Warn(ctx, "failed to invalidate story cache", "story_id", id, "error", err)
	}

	return s.Get(ctx, id)
}

// Delete 删除作品及其评论与评分，仅作者本人可操作
// 级联在同一事务中完成，不留孤儿数据
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.ownedStory(ctx, userID, id); err != nil {
		return err
	}

	err := s.txMgr.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.commentRepo.DeleteByStory(txCtx, id); err != nil {
			return err
		}
		if err := s.ratingRepo.DeleteByStory(txCtx, id); err != nil {
			return err
		}
		return s.storyRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	if err := s.invalidate(ctx, id); err != nil {
		logger.Warn(ctx, "failed to invalidate story cache", "story_id", id, "error", err)
	}

	logger.Info(ctx, "story deleted", "story_id", id, "user_id", userID)
	return nil
}

// AddChapter 追加章节，仅作者本人可操作
func (s *Service) AddChapter(ctx context.Context, userID, storyID, title, content string) (*entity.Chapter, error) {
	story, err := s.ownedStory(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	chapter := story.AddChapter(title, content)
	if err := s.saveChapters(ctx, story); err != nil {
		return nil, err
	}
	return chapter, nil
}

// UpdateChapter 更新章节，仅作者本人可操作
func (s *Service) UpdateChapter(ctx context.Context, userID, storyID, chapterID, title, content string) (*entity.Story, error) {
	story, err := s.ownedStory(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	if !story.UpdateChapter(chapterID, title, content) {
		return nil, apperrors.ErrChapterNotFound
	}
	if err := s.saveChapters(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// DeleteChapter 删除章节，仅作者本人可操作
func (s *Service) DeleteChapter(ctx context.Context, userID, storyID, chapterID string) (*entity.Story, error) {
	story, err := s.ownedStory(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	if !story.RemoveChapter(chapterID) {
		return nil, apperrors.ErrChapterNotFound
	}
	if err := s.saveChapters(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// ReorderChapters 按给定顺序重排章节，仅作者本人可操作
func (s *Service) ReorderChapters(ctx context.Context, userID, storyID string, chapterIDs []string) (*entity.Story, error) {
	story, err := s.ownedStory(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	if !story.ReorderChapters(chapterIDs) {
		return nil, apperrors.New(apperrors.CodeInvalidChapter, "chapter ids must cover all existing chapters exactly once")
	}
	if err := s.saveChapters(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// UploadCover 上传作品封面并更新封面地址，仅作者本人可操作
func (s *Service) UploadCover(ctx context.Context, userID, storyID string, r io.Reader, size int64, contentType, filename string) (string, error) {
	if _, err := s.ownedStory(ctx, userID, storyID); err != nil {
		return "", err
	}

	key := storage.CoverKey(storyID, filename)
	if err := s.store.Put(ctx, key, r, size, contentType); err != nil {
		return "", err
	}

	url := s.store.PublicURL(key)
	if err := s.storyRepo.UpdateFields(ctx, storyID, map[string]interface{}{"cover_image": url}); err != nil {
		return "", err
	}
	if err := s.invalidate(ctx, storyID); err != nil {
		logger.Warn(ctx, "failed to invalidate story cache", "story_id", storyID, "error", err)
	}

	logger.Info(ctx, "cover uploaded", "story_id", storyID, "key", key)
	return url, nil
}

// ownedStory 加载作品并校验归属
func (s *Service) ownedStory(ctx context.Context, userID, storyID string) (*entity.Story, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, apperrors.ErrStoryNotFound
	}
	if !story.IsOwnedBy(userID) {
		return nil, apperrors.ErrNotStoryOwner
	}
	return story, nil
}

func (s *Service) saveChapters(ctx context.Context, story *entity.Story) error {
	if err := s.storyRepo.Update(ctx, story); err != nil {
		return err
	}
	if err := s.invalidate(ctx, story.ID); err != nil {
		logger.Warn(ctx, "failed to invalidate story cache", "story_id", story.ID, "error", err)
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context, storyID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateStory(ctx, storyID)
}

// DashboardEntry 作者面板中的单个作品条目
type DashboardEntry struct {
	Story         *entity.Story `json:"story"`
	CommentCount  int64         `json:"comment_count"`
	RatingAverage float64       `json:"rating_average"`
	RatingCount   int           `json:"rating_count"`
}

// Dashboard 作者面板：作品列表附带评论数与评分聚合
func (s *Service) Dashboard(ctx context.Context, authorID string) ([]*DashboardEntry, error) {
	stories, err := s.storyRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	entries := make([]*DashboardEntry, 0, len(stories))
	for _, st := range stories {
		count, err := s.commentRepo.CountByStory(ctx, st.ID)
		if err != nil {
			return nil, err
		}

		ratings, err := s.ratingRepo.ListByStory(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		stats := rating.Aggregate(ctx, st.ID, ratings)

		entries = append(entries, &DashboardEntry{
			Story:         st,
			CommentCount:  count,
			RatingAverage: stats.Average,
			RatingCount:   stats.Count,
		})
	}
	return entries, nil
}
