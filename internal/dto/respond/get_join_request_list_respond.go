package respond

// GetJoinRequestListRespond 入群申请列表条目响应
// 使用位置:
//   - internal/service/group/service.go: GetJoinRequestList
type GetJoinRequestListRespond struct {
	RequestId     string `json:"request_id"`
	UserId        string `json:"user_id"`
	Nickname      string `json:"nickname"`
	Avatar        string `json:"avatar"`
	Message       string `json:"message"`
	LastAppliedAt string `json:"last_applied_at"`
}
