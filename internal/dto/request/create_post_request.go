package request

// CreatePostRequest 创建群组帖子请求
// type 为投票帖 (1) 时 options 必须至少包含两个选项
// 使用位置:
//   - internal/handler/post_handler.go: CreatePost
//   - internal/service/post/service.go: CreatePost
type CreatePostRequest struct {
	GroupId  string   `json:"group_id" binding:"required"`
	Type     int8     `json:"type" binding:"oneof=0 1"`
	Title    string   `json:"title" binding:"required,max=128"`
	Content  string   `json:"content" binding:"omitempty,max=5000"`
	MediaUrl string   `json:"media_url"`
	Options  []string `json:"options" binding:"omitempty,max=10,dive,required,max=64"`
}
