package request

// CreatePollRequest 创建独立投票请求
// 使用位置:
//   - internal/handler/poll_handler.go: CreatePoll
//   - internal/service/poll/service.go: CreatePoll
type CreatePollRequest struct {
	Question    string   `json:"question" binding:"required,max=256"`
	MultiSelect int8     `json:"multi_select" binding:"omitempty,oneof=0 1"`
	Options     []string `json:"options" binding:"required,min=2,max=10,dive,required,max=64"`
}
