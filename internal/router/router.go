// Package router 提供 HTTP 路由注册
// 本文件定义路由管理器，聚合所有子模块的路由注册
package router

import (
	"github.com/gin-gonic/gin"

	"agora_poll_server/internal/handler"
)

// Router 路由管理器
// 持有 Handler 聚合实例，按模块注册路由
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
// handlers: Handler 聚合实例
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用，按模块分别注册各个路由组。
// 各模块内部再分三类：
//   - 公开路由：注册/登录/刷新令牌/搜索，无需认证
//   - 可选认证路由：公开读接口，携带 Token 时按登录身份计算可见范围
//   - 认证路由：所有写操作，JWTAuth 强制认证
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.RegisterUserRoutes(r)  // 用户路由（注册/登录/令牌/资料）
	rt.RegisterGroupRoutes(r) // 群组路由（群组管理/成员/入群申请）
	rt.RegisterPostRoutes(r)  // 群帖子路由（发布/审核/投票/评论）
	rt.RegisterPollRoutes(r)  // 独立投票路由
}
