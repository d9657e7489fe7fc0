package request

// ReviewPostRequest 帖子审核请求（批准/拒绝共用）
// 使用位置:
//   - internal/handler/post_handler.go: ApprovePost, RejectPost
//   - internal/service/post/service.go: ApprovePost, RejectPost
type ReviewPostRequest struct {
	GroupId string `json:"group_id" binding:"required"`
	PostId  string `json:"post_id" binding:"required"`
}
