// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"inkwell-api/internal/application/shelf"
	"inkwell-api/internal/domain/repository"
	"inkwell-api/internal/interfaces/http/dto"
	"inkwell-api/internal/interfaces/http/middleware"
	"inkwell-api/pkg/logger"
)

// ProfileHandler 用户资料与书架处理器
type ProfileHandler struct {
	userRepo repository.UserRepository
	shelfSvc *shelf.Service
}

// NewProfileHandler 创建用户资料处理器
func NewProfileHandler(userRepo repository.UserRepository, shelfSvc *shelf.Service) *ProfileHandler {
	return &ProfileHandler{
		userRepo: userRepo,
		shelfSvc: shelfSvc,
	}
}

// GetMe 获取当前用户资料
// @Summary 获取当前用户资料
// @Tags Profile
// @Produce json
// @Success 200 {object} dto.Response[dto.ProfileResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/profile [get]
func (h *ProfileHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to get profile")
		return
	}
	if user == nil {
		dto.NotFound(c, "profile not found")
		return
	}

	dto.Success(c, dto.ToProfileResponse(user))
}

// UpdateMe 更新当前用户资料
// @Summary 更新当前用户资料
// @Description 部分更新昵称、简介、头像、网站与社交链接
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body dto.UpdateProfileRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.ProfileResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/profile [patch]
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to update profile")
		return
	}
	if user == nil {
		dto.NotFound(c, "profile not found")
		return
	}

	fields := req.ToFields()
	if len(fields) > 0 {
		if err := h.userRepo.UpdateFields(ctx, userID, fields); err != nil {
			logger.Error(ctx, "failed to update user", err)
			dto.InternalError(c, "failed to update profile")
			return
		}
		user, err = h.userRepo.GetByID(ctx, userID)
		if err != nil || user == nil {
			logger.Error(ctx, "failed to reload user", err)
			dto.InternalError(c, "failed to update profile")
			return
		}
	}

	dto.Success(c, dto.ToProfileResponse(user))
}

// GetPublicProfile 获取公开用户资料
// @Summary 获取公开用户资料
// @Description 不含邮箱与书架的公开资料
// @Tags Profile
// @Produce json
// @Param uid path string true "用户 ID"
// @Success 200 {object} dto.Response[dto.PublicProfileResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/users/{uid} [get]
func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	ctx := c.Request.Context()
	userID := dto.BindUserID(c)

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to get profile")
		return
	}
	if user == nil {
		dto.NotFound(c, "profile not found")
		return
	}

	dto.Success(c, dto.ToPublicProfileResponse(user))
}

// ToggleFavorite 翻转收藏状态
// @Summary 翻转收藏状态
// @Description 作品已收藏则取消，未收藏则加入，返回翻转后的状态
// @Tags Profile
// @Produce json
// @Param sid path string true "作品 ID"
// @Success 200 {object} dto.Response[dto.ShelfToggleResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/profile/favorites/{sid} [post]
func (h *ProfileHandler) ToggleFavorite(c *gin.Context) {
	h.toggleShelf(c, repository.ShelfFavorites)
}

// ToggleReadLater 翻转稍后阅读状态
// @Summary 翻转稍后阅读状态
// @Tags Profile
// @Produce json
// @Param sid path string true "作品 ID"
// @Success 200 {object} dto.Response[dto.ShelfToggleResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/profile/read-later/{sid} [post]
func (h *ProfileHandler) ToggleReadLater(c *gin.Context) {
	h.toggleShelf(c, repository.ShelfReadLater)
}

// ListFavorites 获取收藏的作品
// @Summary 获取收藏的作品
// @Description 批量解析收藏列表，已删除的作品被跳过
// @Tags Profile
// @Produce json
// @Success 200 {object} dto.Response[dto.StoryListResponse]
// @Router /v1/profile/favorites [get]
func (h *ProfileHandler) ListFavorites(c *gin.Context) {
	h.listShelf(c, repository.ShelfFavorites)
}

// ListReadLater 获取稍后阅读的作品
// @Summary 获取稍后阅读的作品
// @Tags Profile
// @Produce json
// @Success 200 {object} dto.Response[dto.StoryListResponse]
// @Router /v1/profile/read-later [get]
func (h *ProfileHandler) ListReadLater(c *gin.Context) {
	h.listShelf(c, repository.ShelfReadLater)
}

// CheckFavorite 查询收藏状态
// @Summary 查询作品是否已收藏
// @Tags Profile
// @Produce json
// @Param sid path string true "作品 ID"
// @Success 200 {object} dto.Response[dto.ShelfToggleResponse]
// @Router /v1/profile/favorites/{sid} [get]
func (h *ProfileHandler) CheckFavorite(c *gin.Context) {
	h.checkShelf(c, repository.ShelfFavorites)
}

// CheckReadLater 查询稍后阅读状态
// @Summary 查询作品是否在稍后阅读中
// @Tags Profile
// @Produce json
// @Param sid path string true "作品 ID"
// @Success 200 {object} dto.Response[dto.ShelfToggleResponse]
// @Router /v1/profile/read-later/{sid} [get]
func (h *ProfileHandler) CheckReadLater(c *gin.Context) {
	h.checkShelf(c, repository.ShelfReadLater)
}

func (h *ProfileHandler) toggleShelf(c *gin.Context, field repository.ShelfField) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	storyID := dto.BindStoryID(c)

	member, err := h.shelfSvc.Toggle(ctx, userID, field, storyID)
	if err != nil {
		respondError(c, err, "failed to toggle shelf")
		return
	}

	dto.Success(c, dto.ShelfToggleResponse{
		StoryID: storyID,
		Member:  member,
	})
}

func (h *ProfileHandler) checkShelf(c *gin.Context, field repository.ShelfField) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	storyID := dto.BindStoryID(c)

	member, err := h.shelfSvc.Contains(ctx, userID, field, storyID)
	if err != nil {
		respondError(c, err, "failed to check shelf")
		return
	}

	dto.Success(c, dto.ShelfToggleResponse{
		StoryID: storyID,
		Member:  member,
	})
}

func (h *ProfileHandler) listShelf(c *gin.Context, field repository.ShelfField) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	stories, err := h.shelfSvc.ListStories(ctx, userID, field)
	if err != nil {
		respondError(c, err, "failed to list shelf")
		return
	}

	dto.Success(c, dto.ToStoryListResponse(stories))
}
