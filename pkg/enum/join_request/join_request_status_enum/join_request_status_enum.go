// Package join_request_status_enum 定义入群申请状态常量
package join_request_status_enum

const (
	PENDING  int8 = iota // 申请中（待处理）
	APPROVED             // 已通过
	REJECTED             // 已拒绝（可再次申请）
)
