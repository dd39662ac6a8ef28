// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"inkwell-api/internal/domain/entity"
)

// SetRatingRequest 评分请求
type SetRatingRequest struct {
	Value int `json:"value" binding:"required,min=1,max=5"`
}

// RatingStatsResponse 评分聚合响应
type RatingStatsResponse struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// UserRatingResponse 当前用户的评分响应
type UserRatingResponse struct {
	Value int  `json:"value"`
	Rated bool `json:"rated"`
}

// ToRatingStatsResponse 转换评分聚合为响应
func ToRatingStatsResponse(stats entity.RatingStats) RatingStatsResponse {
	return RatingStatsResponse{
		Average: stats.Average,
		Count:   stats.Count,
	}
}

// ToUserRatingResponse 转换用户评分为响应，nil 表示未评分
func ToUserRatingResponse(r *entity.Rating) UserRatingResponse {
	if r == nil {
		return UserRatingResponse{}
	}
	return UserRatingResponse{
		Value: r.Value,
		Rated: true,
	}
}
