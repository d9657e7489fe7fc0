package request

// RemoveGroupMemberRequest 移除群成员请求
// 使用位置:
//   - internal/handler/group_handler.go: RemoveGroupMember
//   - internal/service/group/service.go: RemoveGroupMember
type RemoveGroupMemberRequest struct {
	GroupId  string `json:"group_id" binding:"required"`
	MemberId string `json:"member_id" binding:"required"`
}
