// Package router 提供 HTTP 路由注册
// 本文件定义独立投票相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"agora_poll_server/internal/infrastructure/middleware"
)

// RegisterPollRoutes 注册独立投票相关路由
// 列表/详情公开读（可选认证，附带我的投票记录），创建与投票需要认证
func (rt *Router) RegisterPollRoutes(r *gin.Engine) {
	publicGroup := r.Group("/poll", middleware.OptionalAuth())
	{
		// ===== 公开读接口 =====
		publicGroup.GET("/list", rt.handlers.Poll.GetPollList)           // 最新投票列表
		publicGroup.GET("/detail/:uuid", rt.handlers.Poll.GetPollDetail) // 投票详情
	}

	authedGroup := r.Group("/poll", middleware.JWTAuth())
	{
		// ===== 需要认证的接口 =====
		authedGroup.POST("/createPoll", rt.handlers.Poll.CreatePoll) // 创建投票
		authedGroup.POST("/votePoll", rt.handlers.Poll.VotePoll)     // 投票
	}
}
