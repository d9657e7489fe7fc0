package respond

// GetCommentListRespond 帖子评论列表条目响应
// 使用位置:
//   - internal/service/post/service.go: GetCommentList
type GetCommentListRespond struct {
	Uuid      string `json:"uuid"`
	AuthorId  string `json:"author_id"`
	Nickname  string `json:"nickname"`
	Avatar    string `json:"avatar"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}
