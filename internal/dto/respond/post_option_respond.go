package respond

// PostOptionRespond 投票帖选项及其票数
// 使用位置:
//   - internal/service/post/service.go: GetPostDetail, VotePost
type PostOptionRespond struct {
	OptionId string `json:"option_id"`
	Label    string `json:"label"`
	VoteCnt  int64  `json:"vote_cnt"`
}
