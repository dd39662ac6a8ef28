// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"inkwell-api/internal/application/story"
	"inkwell-api/internal/interfaces/http/dto"
	"inkwell-api/internal/interfaces/http/middleware"
)

// ChapterHandler 章节处理器
type ChapterHandler struct {
	storySvc *story.Service
}

// NewChapterHandler 创建章节处理器
func NewChapterHandler(storySvc *story.Service) *ChapterHandler {
	return &ChapterHandler{storySvc: storySvc}
}

// AddChapter 追加章节
// @Summary 追加章节
// @Description 在作品末尾追加章节，仅作者本人可操作
// @Tags Chapters
// @Accept json
// @Produce json
// @Param sid path string true "作品 ID"
// @Param body body dto.ChapterRequest true "章节内容"
// @Success 201 {object} dto.Response[dto.ChapterResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/stories/{sid}/chapters [post]
func (h *ChapterHandler) AddChapter(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	storyID := dto.BindStoryID(c)

	var req dto.ChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	chapter, err := h.storySvc.AddChapter(ctx, userID, storyID, req.Title, req.Content)
	if err != nil {
		respondError(c, err, "failed to add chapter")
		return
	}

	dto.Created(c, dto.ChapterResponse{
		ID:      chapter.ID,
		Title:   chapter.Title,
		Content: chapter.Content,
		Order:   chapter.Order,
	})
}

// UpdateChapter 更新章节
// @Summary 更新章节
// @Tags Chapters
// @Accept json
// @Produce json
// @Param sid path string true "作品 ID"
// @Param chid path string true "章节 ID"
// @Param body body dto.ChapterRequest true "章节内容"
// @Success 200 {object} dto.Response[dto.StoryResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/stories/{sid}/chapters/{chid} [put]
func (h *ChapterHandler) UpdateChapter(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	storyID := dto.BindStoryID(c)
	chapterID := dto.BindChapterID(c)

	var req dto.ChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.storySvc.UpdateChapter(ctx, userID, storyID, chapterID, req.Title, req.Content)
	if err != nil {
		respondError(c, err, "failed to update chapter")
		return
	}

	dto.Success(c, dto.ToStoryResponse(updated))
}

// DeleteChapter 删除章节
// @Summary 删除章节
// @Description 删除章节并重新编号剩余章节
// @Tags Chapters
// @Produce json
// @Param sid path string true "作品 ID"
// @Param chid path string true "章节 ID"
// @Success 200 {object} dto.Response[dto.StoryResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/stories/{sid}/chapters/{chid} [delete]
func (h *ChapterHandler) DeleteChapter(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	storyID := dto.BindStoryID(c)
	chapterID := dto.BindChapterID(c)

	updated, err := h.storySvc.DeleteChapter(ctx, userID, storyID, chapterID)
	if err != nil {
		respondError(c, err, "failed to delete chapter")
		return
	}

	dto.Success(c, dto.ToStoryResponse(updated))
}

// ReorderChapters 重排章节
// @Summary 重排章节
// @Description 按给定的章节 ID 顺序重排，必须恰好覆盖全部章节
// @Tags Chapters
// @Accept json
// @Produce json
// @Param sid path string true "作品 ID"
// @Param body body dto.ReorderChaptersRequest true "章节 ID 顺序"
// @Success 200 {object} dto.Response[dto.StoryResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /v1/stories/{sid}/chapters/reorder [post]
func (h *ChapterHandler) ReorderChapters(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	storyID := dto.BindStoryID(c)

	var req dto.ReorderChaptersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.storySvc.ReorderChapters(ctx, userID, storyID, req.ChapterIDs)
	if err != nil {
		respondError(c, err, "failed to reorder chapters")
		return
	}

	dto.Success(c, dto.ToStoryResponse(updated))
}
