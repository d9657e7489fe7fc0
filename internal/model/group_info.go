package model

import (
	"gorm.io/gorm"
)

type GroupInfo struct {
	gorm.Model
	Uuid        string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:群组唯一id"`
	Name        string `gorm:"column:name;index;type:varchar(50);not null;comment:群名称"`
	Description string `gorm:"column:description;type:varchar(500);comment:群简介"`
	Avatar      string `gorm:"column:avatar;type:varchar(255);comment:头像"`
	MemberCnt   int    `gorm:"column:member_cnt;default:1;comment:群人数"`
	OwnerId     string `gorm:"column:owner_id;index;type:char(20);not null;comment:群主uuid"`
	JoinMode    int8   `gorm:"column:join_mode;default:0;comment:加群方式，0.直接，1.审核"`
	PostReview  int8   `gorm:"column:post_review;default:0;comment:发帖审核，0.关闭，1.开启"`
}

func (GroupInfo) TableName() string {
	return "group_info"
}
