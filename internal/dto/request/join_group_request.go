package request

// JoinGroupRequest 加入群组请求
// join_mode 为审批制时 message 作为申请留言
// 使用位置:
//   - internal/handler/group_handler.go: JoinGroup
//   - internal/service/group/service.go: JoinGroup
type JoinGroupRequest struct {
	GroupId string `json:"group_id" binding:"required"`
	Message string `json:"message" binding:"omitempty,max=200"`
}
