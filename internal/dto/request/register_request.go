package request

// RegisterRequest 用户注册请求
// 使用位置:
//   - internal/handler/user_handler.go: Register
//   - internal/service/user/service.go: Register
type RegisterRequest struct {
	Nickname  string `json:"nickname" binding:"required,max=32"`
	Password  string `json:"password" binding:"required,min=6"`
	Telephone string `json:"telephone" binding:"omitempty,len=11"`
	Email     string `json:"email" binding:"omitempty,email"`
}
