package request

// CreateCommentRequest 创建帖子评论请求
// 使用位置:
//   - internal/handler/post_handler.go: CreateComment
//   - internal/service/post/service.go: CreateComment
type CreateCommentRequest struct {
	GroupId string `json:"group_id" binding:"required"`
	PostId  string `json:"post_id" binding:"required"`
	Content string `json:"content" binding:"required,max=2000"`
}
