package model

import "gorm.io/gorm"

// GroupPostOption 投票帖选项表
type GroupPostOption struct {
	gorm.Model
	Uuid     string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:选项id"`
	PostUuid string `gorm:"column:post_uuid;index;type:char(20);not null;comment:帖子ID"`
	Label    string `gorm:"column:label;type:varchar(100);not null;comment:选项文本"`
}

func (GroupPostOption) TableName() string {
	return "group_post_option"
}
