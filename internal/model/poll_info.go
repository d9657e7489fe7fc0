// Package model 定义数据库实体模型
// 本文件定义群组之外的独立单题投票（动态流投票）及其选项、投票记录
package model

import (
	"time"

	"gorm.io/gorm"
)

// PollInfo 独立投票模型
// 对应数据库 poll_info 表
// 与群投票帖的区别：不隶属任何群组，且支持按 MultiSelect 开关允许多选
type PollInfo struct {
	gorm.Model

	// Uuid 投票唯一标识
	// 格式：Q + 时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:投票id"`

	// AuthorUuid 发起人
	AuthorUuid string `gorm:"column:author_uuid;index;type:char(20);not null;comment:发起人ID"`

	// Question 问题文本
	Question string `gorm:"column:question;type:varchar(200);not null;comment:问题"`

	// MultiSelect 是否允许多选
	// 0=单选, 1=多选
	MultiSelect int8 `gorm:"column:multi_select;default:0;comment:是否多选，0.否，1.是"`
}

// TableName 指定表名
func (PollInfo) TableName() string {
	return "poll_info"
}

// PollOption 独立投票选项表
type PollOption struct {
	gorm.Model
	Uuid     string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:选项id"`
	PollUuid string `gorm:"column:poll_uuid;index;type:char(20);not null;comment:投票ID"`
	Label    string `gorm:"column:label;type:varchar(100);not null;comment:选项文本"`
}

func (PollOption) TableName() string {
	return "poll_option"
}

// PollVote 独立投票记录表
// (option_uuid, user_uuid) 唯一索引保证同一选项不可重复投；
// 单选投票的"一人一票"由业务层跨选项存在性检查 + 事务保证
type PollVote struct {
	ID         uint      `gorm:"primarykey"`
	CreatedAt  time.Time `gorm:"comment:投票时间"`
	PollUuid   string    `gorm:"type:char(20);index;not null;comment:投票ID"`
	OptionUuid string    `gorm:"type:char(20);uniqueIndex:idx_option_voter;not null;comment:选项ID"`
	UserUuid   string    `gorm:"type:char(20);uniqueIndex:idx_option_voter;index;not null;comment:投票人ID"`
}

func (PollVote) TableName() string {
	return "poll_vote"
}
