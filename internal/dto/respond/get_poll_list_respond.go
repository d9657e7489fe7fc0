package respond

// GetPollListRespond 独立投票列表条目响应
// 使用位置:
//   - internal/service/poll/service.go: GetPollList
type GetPollListRespond struct {
	Uuid        string `json:"uuid"`
	AuthorId    string `json:"author_id"`
	Question    string `json:"question"`
	MultiSelect int8   `json:"multi_select"`
	CreatedAt   string `json:"created_at"`
}
