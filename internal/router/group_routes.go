// Package router 提供 HTTP 路由注册
// 本文件定义群组相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"agora_poll_server/internal/infrastructure/middleware"
)

// RegisterGroupRoutes 注册群组相关路由
// 搜索和详情公开读（可选认证），其余需要认证
func (rt *Router) RegisterGroupRoutes(r *gin.Engine) {
	publicGroup := r.Group("/group", middleware.OptionalAuth())
	{
		// ===== 公开读接口（携带 Token 时附带访问者状态） =====
		publicGroup.GET("/search", rt.handlers.Group.SearchGroup)          // 按名称搜索群组
		publicGroup.GET("/detail/:uuid", rt.handlers.Group.GetGroupDetail) // 群组详情
	}

	authedGroup := r.Group("/group", middleware.JWTAuth())
	{
		// ===== 群组基本操作 =====
		authedGroup.POST("/createGroup", rt.handlers.Group.CreateGroup)         // 创建群组
		authedGroup.GET("/myGroupList", rt.handlers.Group.GetMyGroupList)       // 获取已加入的群组
		authedGroup.POST("/updateGroupInfo", rt.handlers.Group.UpdateGroupInfo) // 更新群组信息
		authedGroup.POST("/deleteGroup", rt.handlers.Group.DeleteGroup)         // 解散群组（群主）

		// ===== 加群与申请审批 =====
		authedGroup.POST("/joinGroup", rt.handlers.Group.JoinGroup)                     // 加入群组/提交申请
		authedGroup.GET("/joinRequestList/:uuid", rt.handlers.Group.GetJoinRequestList) // 待处理申请列表
		authedGroup.POST("/approveJoinRequest", rt.handlers.Group.ApproveJoinRequest)   // 通过入群申请
		authedGroup.POST("/rejectJoinRequest", rt.handlers.Group.RejectJoinRequest)     // 拒绝入群申请

		// ===== 群成员管理 =====
		authedGroup.POST("/leaveGroup", rt.handlers.Group.LeaveGroup)               // 退出群组
		authedGroup.POST("/removeGroupMember", rt.handlers.Group.RemoveGroupMember) // 移除群成员
	}
}
