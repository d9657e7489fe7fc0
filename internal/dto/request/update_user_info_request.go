package request

// UpdateUserInfoRequest 更新用户信息请求
// 使用位置:
//   - internal/handler/user_handler.go: UpdateUserInfo
//   - internal/service/user/service.go: UpdateUserInfo
type UpdateUserInfoRequest struct {
	Nickname  string `json:"nickname" binding:"omitempty,max=32"`
	Avatar    string `json:"avatar"`
	Signature string `json:"signature" binding:"omitempty,max=200"`
}
