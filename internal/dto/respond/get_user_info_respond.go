package respond

// GetUserInfoRespond 获取用户信息响应
// 使用位置:
//   - internal/service/user/service.go: GetUserInfo, UpdateUserInfo
type GetUserInfoRespond struct {
	Uuid      string `json:"uuid"`
	Nickname  string `json:"nickname"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	Signature string `json:"signature"`
	CreatedAt string `json:"created_at"`
}
