// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"inkwell-api/internal/application/rating"
	"inkwell-api/internal/interfaces/http/dto"
	"inkwell-api/internal/interfaces/http/middleware"
)

// RatingHandler 评分处理器
type RatingHandler struct {
	ratingSvc *rating.Service
}

// NewRatingHandler 创建评分处理器
func NewRatingHandler(ratingSvc *rating.Service) *RatingHandler {
	return &RatingHandler{ratingSvc: ratingSvc}
}

// SetRating 写入评分
// @Summary 写入评分
// @Description 当前用户对作品评分，重复评分为覆盖更新
// @Tags Ratings
// @Accept json
// @Produce json
// @Param sid path string true "作品 ID"
// @Param body body dto.SetRatingRequest true "评分值 (1-5)"
// @Success 200 {object} dto.Response[dto.RatingStatsResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/stories/{sid}/ratings [put]
func (h *RatingHandler) SetRating(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	storyID := dto.BindStoryID(c)

	var req dto.SetRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.ratingSvc.Set(ctx, userID, storyID, req.Value); err != nil {
		respondError(c, err, "failed to set rating")
		return
	}

	stats, err := h.ratingSvc.Stats(ctx, storyID)
	if err != nil {
		respondError(c, err, "failed to load rating stats")
		return
	}

	dto.Success(c, dto.ToRatingStatsResponse(stats))
}

// GetRatingStats 获取作品评分聚合
// @Summary 获取作品评分聚合
// @Tags Ratings
// @Produce json
// @Param sid path string true "作品 ID"
// @Success 200 {object} dto.Response[dto.RatingStatsResponse]
// @Router /v1/stories/{sid}/ratings [get]
func (h *RatingHandler) GetRatingStats(c *gin.Context) {
	ctx := c.Request.Context()
	storyID := dto.BindStoryID(c)

	stats, err := h.ratingSvc.Stats(ctx, storyID)
	if err != nil {
		respondError(c, err, "failed to load rating stats")
		return
	}

	dto.Success(c, dto.ToRatingStatsResponse(stats))
}

// GetMyRating 获取当前用户对作品的评分
// @Summary 获取当前用户对作品的评分
// @Tags Ratings
// @Produce json
// @Param sid path string true "作品 ID"
// @Success 200 {object} dto.Response[dto.UserRatingResponse]
// @Router /v1/stories/{sid}/ratings/me [get]
func (h *RatingHandler) GetMyRating(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	storyID := dto.BindStoryID(c)

	r, err := h.ratingSvc.GetUserRating(ctx, storyID, userID)
	if err != nil {
		respondError(c, err, "failed to get rating")
		return
	}

	dto.Success(c, dto.ToUserRatingResponse(r))
}
