package respond

// GetGroupMemberListRespond 群成员列表条目响应
// 使用位置:
//   - internal/service/group/service.go: GetGroupDetail, GetGroupMemberList
type GetGroupMemberListRespond struct {
	UserId   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Role     int8   `json:"role"`
}
