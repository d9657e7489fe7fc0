package respond

// GetPostListRespond 帖子列表条目响应
// 使用位置:
//   - internal/service/post/service.go: GetPostList
type GetPostListRespond struct {
	Uuid       string `json:"uuid"`
	GroupId    string `json:"group_id"`
	AuthorId   string `json:"author_id"`
	Type       int8   `json:"type"`
	Status     int8   `json:"status"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	MediaUrl   string `json:"media_url"`
	CommentCnt int64  `json:"comment_cnt"`
	CreatedAt  string `json:"created_at"`
}
