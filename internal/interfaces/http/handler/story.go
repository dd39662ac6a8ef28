// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"inkwell-api/internal/application/story"
	"inkwell-api/internal/interfaces/http/dto"
	"inkwell-api/internal/interfaces/http/middleware"
)

// StoryHandler 作品处理器
type StoryHandler struct {
	storySvc *story.Service
}

// NewStoryHandler 创建作品处理器
func NewStoryHandler(storySvc *story.Service) *StoryHandler {
	return &StoryHandler{storySvc: storySvc}
}

// ListStories 获取最新作品列表
// @Summary 获取最新作品列表
// @Description 按创建时间倒序返回最新作品
// @Tags Stories
// @Produce json
// @Param limit query int false "返回条数上限" default(50)
// @Success 200 {object} dto.Response[dto.StoryListResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/stories [get]
func (h *StoryHandler) ListStories(c *gin.Context) {
	ctx := c.Request.Context()
	limit := dto.BindLimit(c, 50)

	stories, err := h.storySvc.List(ctx, limit)
	if err != nil {
		respondError(c, err, "failed to list stories")
		return
	}

	dto.Success(c, dto.ToStoryListResponse(stories))
}

// CreateStory 创建作品
// @Summary 创建作品
// @Description 以当前用户为作者创建新作品
// @Tags Stories
// @Accept json
// @Produce json
// @Param body body dto.CreateStoryRequest true "作品信息"
// @Success 201 {object} dto.Response[dto.StoryResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/stories [post]
func (h *StoryHandler) CreateStory(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	userName := middleware.GetUserNameFromGin(c)

	var req dto.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	created, err := h.storySvc.Create(ctx, userID, userName, req.ToCreateInput())
	if err != nil {
		respondError(c, err, "failed to create story")
		return
	}

	dto.Created(c, dto.ToStoryResponse(created))
}

// GetStory 获取作品详情
// @Summary 获取作品详情
// @Tags Stories
// @Produce json
// @Param sid path string true "作品 ID"
// @Success 200 {object} dto.Response[dto.StoryResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/stories/{sid} [get]
func (h *StoryHandler) GetStory(c *gin.Context) {
	ctx := c.Request.Context()
	storyID := dto.BindStoryID(c)

	s, err := h.storySvc.Get(ctx, storyID)
	if err != nil {
		respondError(c, err, "failed to get story")
		return
	}

	dto.Success(c, dto.ToStoryResponse(s))
}

// UpdateStory 更新作品
// @Summary 更新作品
// @Description 部分更新作品元信息，仅作者本人可操作
// @Tags Stories
// @Accept json
// @Produce json
// @Param sid path string true "作品 ID"
// @Param body body dto.UpdateStoryRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.StoryResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/stories/{sid} [patch]
func (h *StoryHandler) UpdateStory(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	storyID := dto.BindStoryID(c)

	var req dto.UpdateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.storySvc.Update(ctx, userID, storyID, req.ToUpdateInput())
	if err != nil {
		respondError(c, err, "failed to update story")
		return
	}

	dto.Success(c, dto.ToStoryResponse(updated))
}

// DeleteStory 删除作品
// @Summary 删除作品
// @Description 删除作品及其全部评论与评分，仅作者本人可操作
// @Tags Stories
// @Produce json
// @Param sid path string true "作品 ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/stories/{sid} [delete]
func (h *StoryHandler) DeleteStory(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	storyID := dto.BindStoryID(c)

	if err := h.storySvc.Delete(ctx, userID, storyID); err != nil {
		respondError(c, err, "failed to delete story")
		return
	}

	dto.NoContent(c)
}

// ListMyStories 获取当前用户的作品列表
// @Summary 获取当前用户的作品列表
// @Tags Stories
// @Produce json
// @Success 200 {object} dto.Response[dto.StoryListResponse]
// @Router /v1/profile/stories [get]
func (h *StoryHandler) ListMyStories(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	stories, err := h.storySvc.ListByAuthor(ctx, userID)
	if err != nil {
		respondError(c, err, "failed to list stories")
		return
	}

	dto.Success(c, dto.ToStoryListResponse(stories))
}

// Dashboard 作者面板
// @Summary 作者面板
// @Description 当前用户的作品列表，附带评论数与评分聚合
// @Tags Stories
// @Produce json
// @Success 200 {object} dto.Response[dto.DashboardResponse]
// @Router /v1/profile/dashboard [get]
func (h *StoryHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	entries, err := h.storySvc.Dashboard(ctx, userID)
	if err != nil {
		respondError(c, err, "failed to load dashboard")
		return
	}

	dto.Success(c, dto.ToDashboardResponse(entries))
}
