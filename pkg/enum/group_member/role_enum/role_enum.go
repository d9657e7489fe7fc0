// Package role_enum 定义群成员角色常量
// NOT_MEMBER 仅作为角色解析结果使用，不会写入数据库
package role_enum

const (
	NOT_MEMBER int8 = iota // 非群成员
	MEMBER                 // 普通成员
	ADMIN                  // 管理员
	OWNER                  // 群主
)
