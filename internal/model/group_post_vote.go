package model

import "time"

// GroupPostVote 投票帖投票记录表
// (post_uuid, user_uuid) 复合唯一索引在存储层保证一人一票，
// 业务层的"已投票"预检查只用于给出友好提示，竞态下由索引兜底。
// 票不可修改、不可撤回，记录永久保留，不走软删除
type GroupPostVote struct {
	ID         uint      `gorm:"primarykey"`
	CreatedAt  time.Time `gorm:"comment:投票时间"`
	PostUuid   string    `gorm:"type:char(20);uniqueIndex:idx_post_voter;not null;comment:帖子ID"`
	UserUuid   string    `gorm:"type:char(20);uniqueIndex:idx_post_voter;index;not null;comment:投票人ID"`
	OptionUuid string    `gorm:"type:char(20);index;not null;comment:选项ID"`
}

func (GroupPostVote) TableName() string {
	return "group_post_vote"
}
