package respond

// GetPostDetailRespond 帖子详情响应
// my_vote 为访问者已投选项的 uuid，未投或匿名时为空字符串
// 使用位置:
//   - internal/service/post/service.go: GetPostDetail
type GetPostDetailRespond struct {
	Uuid       string              `json:"uuid"`
	GroupId    string              `json:"group_id"`
	AuthorId   string              `json:"author_id"`
	Type       int8                `json:"type"`
	Status     int8                `json:"status"`
	Title      string              `json:"title"`
	Content    string              `json:"content"`
	MediaUrl   string              `json:"media_url"`
	Options    []PostOptionRespond `json:"options"`
	MyVote     string              `json:"my_vote"`
	CommentCnt int64               `json:"comment_cnt"`
	CreatedAt  string              `json:"created_at"`
}
