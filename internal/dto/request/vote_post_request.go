package request

// VotePostRequest 群组投票帖投票请求
// 使用位置:
//   - internal/handler/post_handler.go: VotePost
//   - internal/service/post/service.go: VotePost
type VotePostRequest struct {
	GroupId  string `json:"group_id" binding:"required"`
	PostId   string `json:"post_id" binding:"required"`
	OptionId string `json:"option_id" binding:"required"`
}
