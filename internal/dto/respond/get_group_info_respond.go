package respond

// GetGroupInfoRespond 群组概要信息响应（搜索/列表条目）
// 使用位置:
//   - internal/service/group/service.go: SearchGroup, GetMyGroupList
type GetGroupInfoRespond struct {
	Uuid        string `json:"uuid"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	MemberCnt   int    `json:"member_cnt"`
	OwnerId     string `json:"owner_id"`
	JoinMode    int8   `json:"join_mode"`
	PostReview  int8   `json:"post_review"`
}
