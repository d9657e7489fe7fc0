package request

// VotePollRequest 独立投票投票请求
// multi_select 关闭的投票只允许选择一个选项
// 使用位置:
//   - internal/handler/poll_handler.go: VotePoll
//   - internal/service/poll/service.go: VotePoll
type VotePollRequest struct {
	PollId    string   `json:"poll_id" binding:"required"`
	OptionIds []string `json:"option_ids" binding:"required,min=1,max=10,dive,required"`
}
