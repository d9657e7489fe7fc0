package request

// LeaveGroupRequest 退出群组请求
// 使用位置:
//   - internal/handler/group_handler.go: LeaveGroup
//   - internal/service/group/service.go: LeaveGroup
type LeaveGroupRequest struct {
	GroupId string `json:"group_id" binding:"required"`
}
