// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"inkwell-api/internal/application/story"
	"inkwell-api/internal/infrastructure/storage"
	"inkwell-api/internal/interfaces/http/dto"
	"inkwell-api/internal/interfaces/http/middleware"
)

// maxCoverSize 封面上传大小上限 (5 MiB)
const maxCoverSize = 5 << 20

// CoverHandler 封面处理器
type CoverHandler struct {
	storySvc   *story.Service
	coverCache *storage.CoverURLCache
}

// NewCoverHandler 创建封面处理器
func NewCoverHandler(storySvc *story.Service, coverCache *storage.CoverURLCache) *CoverHandler {
	return &CoverHandler{
		storySvc:   storySvc,
		coverCache: coverCache,
	}
}

// GetDefaultCover 获取默认封面地址
// @Summary 获取默认封面地址
// @Description 占位封面的公开地址，进程内缓存首次解析结果
// @Tags Covers
// @Produce json
// @Success 200 {object} dto.Response[dto.CoverResponse]
// @Router /v1/covers/default [get]
func (h *CoverHandler) GetDefaultCover(c *gin.Context) {
	ctx := c.Request.Context()

	url, err := h.coverCache.DefaultCoverURL(ctx)
	if err != nil {
		respondError(c, err, "failed to resolve default cover")
		return
	}

	dto.Success(c, dto.CoverResponse{URL: url})
}

// RefreshDefaultCover 清空默认封面缓存
// @Summary 清空默认封面缓存
// @Description 占位图更换后调用，下次读取重新解析
// @Tags Covers
// @Produce json
// @Success 204
// @Router /v1/covers/default/refresh [post]
func (h *CoverHandler) RefreshDefaultCover(c *gin.Context) {
	h.coverCache.Clear()
	dto.NoContent(c)
}

// UploadCover 上传作品封面
// @Summary 上传作品封面
// @Description multipart 上传封面图片并更新作品封面地址，仅作者本人可操作
// @Tags Covers
// @Accept multipart/form-data
// @Produce json
// @Param sid path string true "作品 ID"
// @Param file formData file true "封面图片"
// @Success 200 {object} dto.Response[dto.CoverResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /v1/stories/{sid}/cover [post]
func (h *CoverHandler) UploadCover(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	storyID := dto.BindStoryID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		dto.BadRequest(c, "missing cover file")
		return
	}
	if fileHeader.Size > maxCoverSize {
		dto.BadRequest(c, "cover file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		dto.BadRequest(c, "failed to read cover file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.storySvc.UploadCover(ctx, userID, storyID, file, fileHeader.Size, contentType, fileHeader.Filename)
	if err != nil {
		respondError(c, err, "failed to upload cover")
		return
	}

	dto.Success(c, dto.CoverResponse{URL: url})
}
