// Package router 提供 HTTP 路由注册
// 本文件定义用户相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"agora_poll_server/internal/infrastructure/middleware"
)

// RegisterUserRoutes 注册用户相关路由
// 注册/登录/刷新令牌公开，资料管理需要认证
func (rt *Router) RegisterUserRoutes(r *gin.Engine) {
	userGroup := r.Group("/user")
	{
		// ===== 公开接口 =====
		userGroup.POST("/register", rt.handlers.User.Register)         // 用户注册
		userGroup.POST("/login", rt.handlers.User.Login)               // 密码登录
		userGroup.POST("/refreshToken", rt.handlers.User.RefreshToken) // 刷新令牌
	}

	authedGroup := r.Group("/user", middleware.JWTAuth())
	{
		// ===== 需要认证的接口 =====
		authedGroup.GET("/myInfo", rt.handlers.User.GetMyInfo)               // 获取自己的资料
		authedGroup.GET("/info/:uuid", rt.handlers.User.GetUserInfo)         // 获取指定用户资料
		authedGroup.POST("/updateUserInfo", rt.handlers.User.UpdateUserInfo) // 修改资料
		authedGroup.POST("/deleteAccount", rt.handlers.User.DeleteAccount)   // 注销账号
	}
}
