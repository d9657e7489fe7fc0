package request

// HandleJoinRequestRequest 处理入群申请请求（批准/拒绝共用）
// 使用位置:
//   - internal/handler/group_handler.go: ApproveJoinRequest, RejectJoinRequest
//   - internal/service/group/service.go: ApproveJoinRequest, RejectJoinRequest
type HandleJoinRequestRequest struct {
	GroupId   string `json:"group_id" binding:"required"`
	RequestId string `json:"request_id" binding:"required"`
}
