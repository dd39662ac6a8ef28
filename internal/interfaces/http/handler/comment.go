// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"inkwell-api/internal/application/comment"
	"inkwell-api/internal/domain/repository"
	"inkwell-api/internal/interfaces/http/dto"
	"inkwell-api/internal/interfaces/http/middleware"
)

// CommentHandler 评论处理器
type CommentHandler struct {
	commentSvc *comment.Service
	userRepo   repository.UserRepository
}

// NewCommentHandler 创建评论处理器
func NewCommentHandler(commentSvc *comment.Service, userRepo repository.UserRepository) *CommentHandler {
	return &CommentHandler{
		commentSvc: commentSvc,
		userRepo:   userRepo,
	}
}

// ListComments 获取作品评论列表
// @Summary 获取作品评论列表
// @Description 按创建时间倒序返回作品评论
// @Tags Comments
// @Produce json
// @Param sid path string true "作品 ID"
// @Success 200 {object} dto.Response[dto.CommentListResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/stories/{sid}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	ctx := c.Request.Context()
	storyID := dto.BindStoryID(c)

	comments, err := h.commentSvc.ListByStory(ctx, storyID)
	if err != nil {
		respondError(c, err, "failed to list comments")
		return
	}

	dto.Success(c, dto.ToCommentListResponse(comments))
}

// CreateComment 发表评论
// @Summary 发表评论
// @Description 以当前用户身份在作品下发表评论，附带发表时的昵称与头像快照
// @Tags Comments
// @Accept json
// @Produce json
// @Param sid path string true "作品 ID"
// @Param body body dto.CreateCommentRequest true "评论内容"
// @Success 201 {object} dto.Response[dto.CommentResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/stories/{sid}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	userName := middleware.GetUserNameFromGin(c)
	storyID := dto.BindStoryID(c)

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	// 评论携带发表时的头像快照，资料缺失不阻断发表
	var avatar *string
	if user, err := h.userRepo.GetByID(ctx, userID); err == nil && user != nil {
		if user.DisplayName != "" {
			userName = user.DisplayName
		}
		if user.Avatar != "" {
			avatar = &user.Avatar
		}
	}

	created, err := h.commentSvc.Create(ctx, storyID, userID, userName, avatar, req.Text)
	if err != nil {
		respondError(c, err, "failed to create comment")
		return
	}

	dto.Created(c, dto.ToCommentResponse(created))
}

// UpdateComment 更新评论
// @Summary 更新评论
// @Description 更新评论文本，仅评论作者可操作
// @Tags Comments
// @Accept json
// @Produce json
// @Param cid path string true "评论 ID"
// @Param body body dto.UpdateCommentRequest true "评论内容"
// @Success 200 {object} dto.Response[dto.CommentResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/comments/{cid} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	commentID := dto.BindCommentID(c)

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.commentSvc.Update(ctx, userID, commentID, req.Text)
	if err != nil {
		respondError(c, err, "failed to update comment")
		return
	}

	dto.Success(c, dto.ToCommentResponse(updated))
}

// DeleteComment 删除评论
// @Summary 删除评论
// @Description 删除评论，仅评论作者可操作；评论不存在时同样返回成功
// @Tags Comments
// @Produce json
// @Param cid path string true "评论 ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Router /v1/comments/{cid} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	commentID := dto.BindCommentID(c)

	if err := h.commentSvc.Delete(ctx, userID, commentID); err != nil {
		respondError(c, err, "failed to delete comment")
		return
	}

	dto.NoContent(c)
}
