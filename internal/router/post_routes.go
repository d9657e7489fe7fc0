// Package router 提供 HTTP 路由注册
// 本文件定义群帖子相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"agora_poll_server/internal/infrastructure/middleware"
)

// RegisterPostRoutes 注册群帖子相关路由
// 列表/详情/评论列表公开读（可选认证，影响可见状态范围），其余需要认证
func (rt *Router) RegisterPostRoutes(r *gin.Engine) {
	publicGroup := r.Group("/post", middleware.OptionalAuth())
	{
		// ===== 公开读接口 =====
		publicGroup.GET("/list/:groupUuid", rt.handlers.Post.GetPostList)      // 群组帖子列表
		publicGroup.GET("/detail/:uuid", rt.handlers.Post.GetPostDetail)       // 帖子详情
		publicGroup.GET("/commentList/:uuid", rt.handlers.Post.GetCommentList) // 评论列表
	}

	authedGroup := r.Group("/post", middleware.JWTAuth())
	{
		// ===== 发布与审核 =====
		authedGroup.POST("/createPost", rt.handlers.Post.CreatePost)   // 发布帖子
		authedGroup.POST("/approvePost", rt.handlers.Post.ApprovePost) // 审核通过（群主/管理员）
		authedGroup.POST("/rejectPost", rt.handlers.Post.RejectPost)   // 审核拒绝（群主/管理员）

		// ===== 投票与评论 =====
		authedGroup.POST("/votePost", rt.handlers.Post.VotePost)           // 投票帖投票
		authedGroup.POST("/createComment", rt.handlers.Post.CreateComment) // 发表评论
	}
}
