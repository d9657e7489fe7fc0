// Package join_mode_enum 定义群组加入方式常量
package join_mode_enum

const (
	DIRECT   int8 = iota // 直接加入，无需审核
	APPROVAL             // 需要群主/管理员审核
)
