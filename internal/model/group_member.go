package model

import "time"

// GroupMember 群成员关联表
// (group_uuid, user_uuid) 复合唯一索引在存储层保证一人一条成员记录，
// 关闭并发加群/重复审批产生重复行的竞争窗口。
// 不使用软删除：退群必须物理删除记录，否则唯一索引会挡住再次加群
type GroupMember struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"comment:入群时间"`
	GroupUuid string    `gorm:"type:char(20);uniqueIndex:idx_group_user;not null;comment:群组ID"`
	UserUuid  string    `gorm:"type:char(20);uniqueIndex:idx_group_user;index;not null;comment:用户ID"`
	Role      int8      `gorm:"default:1;comment:1普通成员 2管理员 3群主"`
}

func (GroupMember) TableName() string {
	return "group_member"
}
