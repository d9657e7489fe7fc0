package model

import "gorm.io/gorm"

// GroupPostComment 群帖子评论表
// 列表按创建时间正序返回
type GroupPostComment struct {
	gorm.Model
	Uuid       string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:评论id"`
	PostUuid   string `gorm:"column:post_uuid;index;type:char(20);not null;comment:帖子ID"`
	AuthorUuid string `gorm:"column:author_uuid;index;type:char(20);not null;comment:作者ID"`
	Content    string `gorm:"column:content;type:varchar(1000);not null;comment:评论内容"`
}

func (GroupPostComment) TableName() string {
	return "group_post_comment"
}
