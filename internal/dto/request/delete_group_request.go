package request

// DeleteGroupRequest 解散群组请求
// 使用位置:
//   - internal/handler/group_handler.go: DeleteGroup
//   - internal/service/group/service.go: DeleteGroup
type DeleteGroupRequest struct {
	GroupId string `json:"group_id" binding:"required"`
}
