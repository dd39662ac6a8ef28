// Package comment 提供评论相关的应用服务
package comment

import (
	"context"

	apperrors "inkwell-api/pkg/errors"
	"inkwell-api/pkg/logger"
	"inkwell-api/pkg/metrics"

	"inkwell-api/internal/domain/entity"
	"inkwell-api/internal/domain/repository"
)

// Service 评论应用服务
type Service struct {
	commentRepo repository.CommentRepository
	storyRepo   repository.StoryRepository
}

// NewService 创建评论应用服务
func NewService(commentRepo repository.CommentRepository, storyRepo repository.StoryRepository) *Service {
	return &Service{
		commentRepo: commentRepo,
		storyRepo:   storyRepo,
	}
}

// Create 发表评论，作品必须存在
func (s *Service) Create(ctx context.Context, storyID, userID, userName string, userAvatar *string, text string) (*entity.Comment, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, apperrors.ErrStoryNotFound
	}

	comment := entity.NewComment(storyID, userID, userName, userAvatar, text)
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	metrics.CommentsCreatedTotal.Inc()
	logger.Info(ctx, "comment created", "comment_id", comment.ID, "story_id", storyID)
	return comment, nil
}

// ListByStory 获取作品评论列表，按创建时间倒序
func (s *Service) ListByStory(ctx context.Context, storyID string) ([]*entity.Comment, error) {
	return s.commentRepo.ListByStory(ctx, storyID)
}

// Update 更新评论文本，仅评论作者可操作
func (s *Service) Update(ctx context.Context, userID, commentID, text string) (*entity.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperrors.ErrCommentNotFound
	}
	if !comment.IsOwnedBy(userID) {
		return nil, apperrors.ErrNotCommentOwner
	}

	if err := s.commentRepo.UpdateText(ctx, commentID, text); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, commentID)
}

// Delete 删除评论，仅评论作者可操作
// 评论已不存在时视为成功，重复删除不报错
func (s *Service) Delete(ctx context.Context, userID, commentID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return nil
	}
	if !comment.IsOwnedBy(userID) {
		return apperrors.ErrNotCommentOwner
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}

	logger.Info(ctx, "comment deleted", "comment_id", commentID, "user_id", userID)
	return nil
}
