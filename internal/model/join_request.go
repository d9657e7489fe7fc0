// Package model 定义数据库实体模型
// 本文件定义入群申请模型
package model

import (
	"time"

	"gorm.io/gorm"
)

// JoinRequest 入群申请模型
// 对应数据库 join_request 表
// 每个 (群组, 用户) 至多保留一条记录：被拒绝后再次申请时复用原记录并重置为 PENDING，
// 因此"同一时刻至多一条待处理申请"由唯一索引直接保证
type JoinRequest struct {
	gorm.Model

	// Uuid 申请记录唯一标识
	// 格式：R + 时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:申请id"`

	// GroupUuid 被申请加入的群组
	GroupUuid string `gorm:"column:group_uuid;uniqueIndex:idx_group_applicant;type:char(20);not null;comment:群组ID"`

	// UserUuid 申请人
	UserUuid string `gorm:"column:user_uuid;uniqueIndex:idx_group_applicant;index;type:char(20);not null;comment:申请人ID"`

	// Status 申请状态
	// 0=申请中（待处理）, 1=已通过, 2=已拒绝
	Status int8 `gorm:"column:status;not null;comment:申请状态，0.申请中，1.通过，2.拒绝"`

	// Message 申请附言
	Message string `gorm:"column:message;type:varchar(200);comment:申请信息"`

	// LastAppliedAt 最后申请时间
	// 被拒绝后再次申请时刷新
	LastAppliedAt time.Time `gorm:"column:last_applied_at;not null;comment:最后申请时间"`
}

// TableName 指定表名
func (JoinRequest) TableName() string {
	return "join_request"
}
