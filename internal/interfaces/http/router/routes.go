// Package router 提供 HTTP 路由配置
package router

import (
	"inkwell-api/internal/interfaces/http/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterSystemRoutes 注册系统端点
func RegisterSystemRoutes(engine *gin.Engine, healthHandler *handler.HealthHandler, metricsEnabled bool, metricsPath string) {
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/live", healthHandler.Live)

	// Prometheus 指标端点
	if metricsEnabled {
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		engine.GET(metricsPath, gin.WrapH(promhttp.Handler()))
	}
}

// RegisterV1Routes 注册 v1 版本路由
// public 组免认证，authed 组挂认证与限流中间件
func RegisterV1Routes(
	public *gin.RouterGroup,
	authed *gin.RouterGroup,
	authHandler *handler.AuthHandler,
	storyHandler *handler.StoryHandler,
	chapterHandler *handler.ChapterHandler,
	commentHandler *handler.CommentHandler,
	ratingHandler *handler.RatingHandler,
	profileHandler *handler.ProfileHandler,
	coverHandler *handler.CoverHandler,
) {
	// 认证管理
	auth := public.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/logout", authHandler.Logout)
	}

	// 公开读取
	public.GET("/stories", storyHandler.ListStories)
	public.GET("/stories/:sid", storyHandler.GetStory)
	public.GET("/stories/:sid/comments", commentHandler.ListComments)
	public.GET("/stories/:sid/ratings", ratingHandler.GetRatingStats)
	public.GET("/users/:uid", profileHandler.GetPublicProfile)
	public.GET("/covers/default", coverHandler.GetDefaultCover)

	// 作品管理
	stories := authed.Group("/stories")
	{
		stories.POST("", storyHandler.CreateStory)
		stories.PATCH("/:sid", storyHandler.UpdateStory)
		stories.DELETE("/:sid", storyHandler.DeleteStory)

		// 作品下的章节
		stories.POST("/:sid/chapters", chapterHandler.AddChapter)
		stories.POST("/:sid/chapters/reorder", chapterHandler.ReorderChapters)
		stories.PUT("/:sid/chapters/:chid", chapterHandler.UpdateChapter)
		stories.DELETE("/:sid/chapters/:chid", chapterHandler.DeleteChapter)

		// 作品下的评论与评分
		stories.POST("/:sid/comments", commentHandler.CreateComment)
		stories.PUT("/:sid/ratings", ratingHandler.SetRating)
		stories.GET("/:sid/ratings/me", ratingHandler.GetMyRating)

		// 封面上传
		stories.POST("/:sid/cover", coverHandler.UploadCover)
	}

	// 评论管理
	comments := authed.Group("/comments")
	{
		comments.PUT("/:cid", commentHandler.UpdateComment)
		comments.DELETE("/:cid", commentHandler.DeleteComment)
	}

	// 个人资料与书架
	profile := authed.Group("/profile")
	{
		profile.GET("", profileHandler.GetMe)
		profile.PATCH("", profileHandler.UpdateMe)
		profile.GET("/stories", storyHandler.ListMyStories)
		profile.GET("/dashboard", storyHandler.Dashboard)

		profile.GET("/favorites", profileHandler.ListFavorites)
		profile.POST("/favorites/:sid", profileHandler.ToggleFavorite)
		profile.GET("/favorites/:sid", profileHandler.CheckFavorite)
		profile.GET("/read-later", profileHandler.ListReadLater)
		profile.POST("/read-later/:sid", profileHandler.ToggleReadLater)
		profile.GET("/read-later/:sid", profileHandler.CheckReadLater)
	}

	// 封面缓存管理
	covers := authed.Group("/covers")
	{
		covers.POST("/default/refresh", coverHandler.RefreshDefaultCover)
	}
}
