// Package model 定义数据库实体模型
// 本文件定义群帖子模型（讨论帖与投票帖共用一张表）
package model

import (
	"gorm.io/gorm"
)

// GroupPost 群帖子模型
// 对应数据库 group_post 表
// Status 由服务端根据群审核配置与作者角色计算，客户端不可指定
type GroupPost struct {
	gorm.Model

	// Uuid 帖子唯一标识
	// 格式：P + 时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:帖子id"`

	// GroupUuid 所属群组
	GroupUuid string `gorm:"column:group_uuid;index;type:char(20);not null;comment:群组ID"`

	// AuthorUuid 发帖人
	AuthorUuid string `gorm:"column:author_uuid;index;type:char(20);not null;comment:作者ID"`

	// Type 帖子类型
	// 0=讨论帖, 1=投票帖
	Type int8 `gorm:"column:type;not null;comment:类型，0.讨论，1.投票"`

	// Status 审核状态
	// 0=待审核, 1=已通过, 2=已拒绝
	Status int8 `gorm:"column:status;index;not null;comment:状态，0.待审，1.通过，2.拒绝"`

	// Title 标题
	Title string `gorm:"column:title;type:varchar(100);not null;comment:标题"`

	// Content 正文
	Content string `gorm:"column:content;type:varchar(2000);comment:正文"`

	// MediaUrl 附图/视频地址（可选，存储由外部服务负责）
	MediaUrl string `gorm:"column:media_url;type:varchar(255);comment:媒体地址"`
}

// TableName 指定表名
func (GroupPost) TableName() string {
	return "group_post"
}
