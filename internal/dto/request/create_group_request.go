package request

// CreateGroupRequest 创建群组请求
// 使用位置:
//   - internal/handler/group_handler.go: CreateGroup
//   - internal/service/group/service.go: CreateGroup
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,max=64"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Avatar      string `json:"avatar"`
	JoinMode    int8   `json:"join_mode" binding:"omitempty,oneof=0 1"`
	PostReview  int8   `json:"post_review" binding:"omitempty,oneof=0 1"`
}
