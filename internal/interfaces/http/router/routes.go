// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, h Handlers) {
	// 项目分析
	analysis := v1.Group("/analysis")
	{
		analysis.POST("", h.Analysis.Analyze)

		// 分析历史
		history := analysis.Group("/history")
		{
			history.GET("", h.History.List)
			history.DELETE("", h.History.Clear)
			history.GET("/:hid", h.History.Get)
			history.PUT("/:hid/favorite", h.History.SetFavorite)
			history.DELETE("/:hid", h.History.Delete)
		}
	}

	// 需求草稿
	drafts := v1.Group("/drafts")
	{
		drafts.GET("/:did", h.Draft.Get)
		drafts.PUT("/:did", h.Draft.Save)
		drafts.DELETE("/:did", h.Draft.Delete)
	}

	// AI 提供商
	ai := v1.Group("/ai")
	{
		ai.GET("/providers", h.AI.ListProviders)
		ai.POST("/test", h.AI.TestConnection)
	}
}
