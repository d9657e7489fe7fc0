// Package repository 提供数据访问层的具体实现
// 本文件实现 GroupPostVoteRepository 接口，处理投票帖投票记录的数据库操作
package repository

import (
	"agora_poll_server/internal/model"

	"gorm.io/gorm"
)

// groupPostVoteRepository GroupPostVoteRepository 接口的实现
type groupPostVoteRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewGroupPostVoteRepository 创建 GroupPostVoteRepository 实例
func NewGroupPostVoteRepository(db *gorm.DB) GroupPostVoteRepository {
	return &groupPostVoteRepository{db: db}
}

// FindByPostAndUser 查找用户在帖子上的投票记录
// 用于"已投票"预检查
func (r *groupPostVoteRepository) FindByPostAndUser(postUuid, userUuid string) (*model.GroupPostVote, error) {
	var vote model.GroupPostVote
	if err := r.db.Where("post_uuid = ? AND user_uuid = ?", postUuid, userUuid).First(&vote).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询投票记录 post_uuid=%s user_uuid=%s", postUuid, userUuid)
	}
	return &vote, nil
}

// Create 记录一票
// (post_uuid, user_uuid) 唯一索引冲突会被包装为 CodeConflict，
// 并发场景下第二票在此失败而不是产生重复行
func (r *groupPostVoteRepository) Create(vote *model.GroupPostVote) error {
	if err := r.db.Create(vote).Error; err != nil {
		return wrapDBError(err, "创建投票记录")
	}
	return nil
}

// CountByOption 按选项聚合帖子票数
// 以选项表为主表 LEFT JOIN 投票表，零票选项计为 0
func (r *groupPostVoteRepository) CountByOption(postUuid string) ([]OptionVoteCount, error) {
	var counts []OptionVoteCount
	if err := r.db.Table("group_post_option").
		Select("group_post_option.uuid as option_uuid, group_post_option.label, COUNT(group_post_vote.id) as count").
		Joins("LEFT JOIN group_post_vote ON group_post_vote.option_uuid = group_post_option.uuid").
		Where("group_post_option.post_uuid = ? AND group_post_option.deleted_at IS NULL", postUuid).
		Group("group_post_option.uuid, group_post_option.label, group_post_option.id").
		Order("group_post_option.id ASC").
		Scan(&counts).Error; err != nil {
		return nil, wrapDBErrorf(err, "统计帖子票数 post_uuid=%s", postUuid)
	}
	return counts, nil
}

// DeleteByPostUuids 删除帖子的所有投票记录
// 仅在解散群组级联清理时调用，物理删除
func (r *groupPostVoteRepository) DeleteByPostUuids(postUuids []string) error {
	if len(postUuids) == 0 {
		return nil
	}
	if err := r.db.Where("post_uuid IN ?", postUuids).Delete(&model.GroupPostVote{}).Error; err != nil {
		return wrapDBError(err, "删除帖子投票记录")
	}
	return nil
}
