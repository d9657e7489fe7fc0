// Package post_status_enum 定义群帖子审核状态常量
// PENDING 为初始待审状态，APPROVED/REJECTED 为终态，不再发生转换
package post_status_enum

const (
	PENDING  int8 = iota // 待审核（仅群主/管理员可见）
	APPROVED             // 已通过（公开可见）
	REJECTED             // 已拒绝
)
