package respond

// GetGroupDetailRespond 群组详情响应
// viewer_role / viewer_pending 基于 OptionalAuth 解析出的访问者身份，
// 匿名访问时 viewer_role 为 0 且 viewer_pending 为 false
// 使用位置:
//   - internal/service/group/service.go: GetGroupDetail
type GetGroupDetailRespond struct {
	Uuid          string                      `json:"uuid"`
	Name          string                      `json:"name"`
	Description   string                      `json:"description"`
	Avatar        string                      `json:"avatar"`
	MemberCnt     int                         `json:"member_cnt"`
	OwnerId       string                      `json:"owner_id"`
	JoinMode      int8                        `json:"join_mode"`
	PostReview    int8                        `json:"post_review"`
	Members       []GetGroupMemberListRespond `json:"members"`
	ViewerRole    int8                        `json:"viewer_role"`
	ViewerPending bool                        `json:"viewer_pending"`
}
