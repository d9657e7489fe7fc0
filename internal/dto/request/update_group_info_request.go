package request

// UpdateGroupInfoRequest 更新群组信息请求
// 使用位置:
//   - internal/handler/group_handler.go: UpdateGroupInfo
//   - internal/service/group/service.go: UpdateGroupInfo
type UpdateGroupInfoRequest struct {
	GroupId     string `json:"group_id" binding:"required"`
	Name        string `json:"name" binding:"omitempty,max=64"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Avatar      string `json:"avatar"`
	JoinMode    *int8  `json:"join_mode" binding:"omitempty,oneof=0 1"`
	PostReview  *int8  `json:"post_review" binding:"omitempty,oneof=0 1"`
}
