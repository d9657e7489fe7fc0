// Package handler 提供 HTTP 请求处理器
// 本文件处理群组相关的 API 请求
package handler

import (
	"agora_poll_server/internal/dto/request"
	"agora_poll_server/internal/service"

	"github.com/gin-gonic/gin"
)

// GroupHandler 群组请求处理器
type GroupHandler struct {
	groupSvc service.GroupService
}

// NewGroupHandler 创建群组处理器实例
// groupSvc: 群组服务接口
func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

// CreateGroup 创建群组
// POST /group/createGroup
// 请求体: request.CreateGroupRequest
// 响应: 新群组 uuid
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req request.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	groupId, err := h.groupSvc.CreateGroup(currentUserId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"group_id": groupId})
}

// SearchGroup 按名称搜索群组（公开）
// GET /group/search?keyword=xxx
// 响应: []respond.GetGroupInfoRespond
func (h *GroupHandler) SearchGroup(c *gin.Context) {
	data, err := h.groupSvc.SearchGroup(c.Query("keyword"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMyGroupList 获取当前用户加入的群组
// GET /group/myGroupList
// 响应: []respond.GetGroupInfoRespond
func (h *GroupHandler) GetMyGroupList(c *gin.Context) {
	data, err := h.groupSvc.GetMyGroupList(currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetGroupDetail 获取群组详情（公开，可选认证）
// GET /group/detail/:uuid
// 响应: respond.GetGroupDetailRespond
func (h *GroupHandler) GetGroupDetail(c *gin.Context) {
	data, err := h.groupSvc.GetGroupDetail(c.Param("uuid"), currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateGroupInfo 更新群组信息（群主/管理员）
// POST /group/updateGroupInfo
// 请求体: request.UpdateGroupInfoRequest
// 响应: nil
func (h *GroupHandler) UpdateGroupInfo(c *gin.Context) {
	var req request.UpdateGroupInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.UpdateGroupInfo(currentUserId(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeleteGroup 解散群组（仅群主）
// POST /group/deleteGroup
// 请求体: request.DeleteGroupRequest
// 响应: nil
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	var req request.DeleteGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.DeleteGroup(currentUserId(c), req.GroupId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// JoinGroup 加入群组
// POST /group/joinGroup
// 请求体: request.JoinGroupRequest
// 响应: nil（直接加入立即生效，审批制进入待处理队列）
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	var req request.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.JoinGroup(currentUserId(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetJoinRequestList 获取待处理入群申请（群主/管理员）
// GET /group/joinRequestList/:uuid
// 响应: []respond.GetJoinRequestListRespond
func (h *GroupHandler) GetJoinRequestList(c *gin.Context) {
	data, err := h.groupSvc.GetJoinRequestList(c.Param("uuid"), currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ApproveJoinRequest 批准入群申请（群主/管理员）
// POST /group/approveJoinRequest
// 请求体: request.HandleJoinRequestRequest
// 响应: nil
func (h *GroupHandler) ApproveJoinRequest(c *gin.Context) {
	var req request.HandleJoinRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.ApproveJoinRequest(currentUserId(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RejectJoinRequest 拒绝入群申请（群主/管理员）
// POST /group/rejectJoinRequest
// 请求体: request.HandleJoinRequestRequest
// 响应: nil
func (h *GroupHandler) RejectJoinRequest(c *gin.Context) {
	var req request.HandleJoinRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.RejectJoinRequest(currentUserId(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// LeaveGroup 退出群组
// POST /group/leaveGroup
// 请求体: request.LeaveGroupRequest
// 响应: nil
func (h *GroupHandler) LeaveGroup(c *gin.Context) {
	var req request.LeaveGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.LeaveGroup(currentUserId(c), req.GroupId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RemoveGroupMember 移除群成员（群主/管理员）
// POST /group/removeGroupMember
// 请求体: request.RemoveGroupMemberRequest
// 响应: nil
func (h *GroupHandler) RemoveGroupMember(c *gin.Context) {
	var req request.RemoveGroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.RemoveGroupMember(currentUserId(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
