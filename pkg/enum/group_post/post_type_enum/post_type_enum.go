// Package post_type_enum 定义群帖子类型常量
package post_type_enum

const (
	DISCUSSION int8 = iota // 讨论帖
	POLL                   // 投票帖（附带选项）
)
