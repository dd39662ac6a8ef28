// Package shelf 提供收藏与稍后阅读书架的应用服务
package shelf

import (
	"context"

	apperrors "inkwell-api/pkg/errors"
	"inkwell-api/pkg/logger"

	"inkwell-api/internal/domain/entity"
	"inkwell-api/internal/domain/repository"
)

// Service 书架应用服务
type Service struct {
	userRepo  repository.UserRepository
	storyRepo repository.StoryRepository
}

// NewService 创建书架应用服务
func NewService(userRepo repository.UserRepository, storyRepo repository.StoryRepository) *Service {
	return &Service{
		userRepo:  userRepo,
		storyRepo: storyRepo,
	}
}

// Toggle 翻转书架成员关系，返回翻转后是否在书架中
// 作品必须存在，避免书架里积累悬空 ID
func (s *Service) Toggle(ctx context.Context, userID string, field repository.ShelfField, storyID string) (bool, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return false, err
	}
	if story == nil {
		return false, apperrors.ErrStoryNotFound
	}

	member, err := s.userRepo.ToggleShelf(ctx, userID, field, storyID)
	if err != nil {
		return false, err
	}

	logger.Info(ctx, "shelf toggled",
		"user_id", userID, "story_id", storyID, "field", string(field), "member", member)
	return member, nil
}

// ListStories 解析书架中的作品
// 批量读取，保持书架顺序，已删除的作品被跳过
func (s *Service) ListStories(ctx context.Context, userID string, field repository.ShelfField) ([]*entity.Story, error) {
	ids, err := s.shelfIDs(ctx, userID, field)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*entity.Story{}, nil
	}

	return s.storyRepo.GetByIDs(ctx, ids)
}

// Contains 检查作品是否在书架中
// 用户不存在时返回 false 而非错误
func (s *Service) Contains(ctx context.Context, userID string, field repository.ShelfField, storyID string) (bool, error) {
	ids, err := s.userRepo.GetShelf(ctx, userID, field)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == storyID {
			return true, nil
		}
	}
	return false, nil
}

// shelfIDs 加载用户并取出书架字段，用户不存在时返回 ErrProfileNotFound
func (s *Service) shelfIDs(ctx context.Context, userID string, field repository.ShelfField) ([]string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrProfileNotFound
	}

	switch field {
	case repository.ShelfFavorites:
		return user.Favorites, nil
	case repository.ShelfReadLater:
		return user.ReadLater, nil
	default:
		return nil, apperrors.New(apperrors.CodeInvalidParam, "unknown shelf field")
	}
}
