package respond

// PollOptionRespond 独立投票选项及其票数
// 使用位置:
//   - internal/service/poll/service.go: GetPollDetail, VotePoll
type PollOptionRespond struct {
	OptionId string `json:"option_id"`
	Label    string `json:"label"`
	VoteCnt  int64  `json:"vote_cnt"`
}

// GetPollDetailRespond 独立投票详情响应
// my_votes 为访问者已投选项的 uuid 列表，未投或匿名时为空
// 使用位置:
//   - internal/service/poll/service.go: GetPollDetail, VotePoll
type GetPollDetailRespond struct {
	Uuid        string              `json:"uuid"`
	AuthorId    string              `json:"author_id"`
	Question    string              `json:"question"`
	MultiSelect int8                `json:"multi_select"`
	Options     []PollOptionRespond `json:"options"`
	MyVotes     []string            `json:"my_votes"`
	CreatedAt   string              `json:"created_at"`
}
