package respond

// VotePostRespond 投票帖投票响应，返回投票后的各选项票数
// 使用位置:
//   - internal/service/post/service.go: VotePost
type VotePostRespond struct {
	PostId  string              `json:"post_id"`
	Options []PostOptionRespond `json:"options"`
}
