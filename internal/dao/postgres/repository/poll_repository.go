// Package repository 提供数据访问层的具体实现
// 本文件实现 PollRepository 接口，处理独立投票及其选项、投票记录的数据库操作
package repository

import (
	"agora_poll_server/internal/model"

	"gorm.io/gorm"
)

// pollRepository PollRepository 接口的实现
type pollRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewPollRepository 创建 PollRepository 实例
func NewPollRepository(db *gorm.DB) PollRepository {
	return &pollRepository{db: db}
}

// FindByUuid 根据 UUID 查找投票
func (r *pollRepository) FindByUuid(uuid string) (*model.PollInfo, error) {
	var poll model.PollInfo
	if err := r.db.First(&poll, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询投票 uuid=%s", uuid)
	}
	return &poll, nil
}

// FindRecent 查找最新的投票（动态流），按创建时间倒序
func (r *pollRepository) FindRecent(limit int) ([]model.PollInfo, error) {
	var polls []model.PollInfo
	if limit <= 0 {
		limit = 20
	}
	if err := r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&polls).Error; err != nil {
		return nil, wrapDBError(err, "查询最新投票")
	}
	return polls, nil
}

// Create 创建投票
func (r *pollRepository) Create(poll *model.PollInfo) error {
	if err := r.db.Create(poll).Error; err != nil {
		return wrapDBError(err, "创建投票")
	}
	return nil
}

// CreateOptions 批量创建选项
func (r *pollRepository) CreateOptions(options []model.PollOption) error {
	if len(options) == 0 {
		return nil
	}
	if err := r.db.Create(&options).Error; err != nil {
		return wrapDBError(err, "创建投票选项")
	}
	return nil
}

// FindOptionsByPollUuid 查找投票的所有选项
func (r *pollRepository) FindOptionsByPollUuid(pollUuid string) ([]model.PollOption, error) {
	var options []model.PollOption
	if err := r.db.Where("poll_uuid = ?", pollUuid).Order("id ASC").Find(&options).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询投票选项 poll_uuid=%s", pollUuid)
	}
	return options, nil
}

// FindOptionByUuid 根据选项 UUID 查找
func (r *pollRepository) FindOptionByUuid(uuid string) (*model.PollOption, error) {
	var option model.PollOption
	if err := r.db.First(&option, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询投票选项 uuid=%s", uuid)
	}
	return &option, nil
}

// FindVotesByPollAndUser 查找用户在该投票下的全部投票记录
// 跨选项存在性检查：单选投票判断"是否已投过任何一票"时使用
func (r *pollRepository) FindVotesByPollAndUser(pollUuid, userUuid string) ([]model.PollVote, error) {
	var votes []model.PollVote
	if err := r.db.Where("poll_uuid = ? AND user_uuid = ?", pollUuid, userUuid).Find(&votes).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户投票记录 poll_uuid=%s user_uuid=%s", pollUuid, userUuid)
	}
	return votes, nil
}

// CreateVote 记录一票
// (option_uuid, user_uuid) 唯一索引冲突会被包装为 CodeConflict
func (r *pollRepository) CreateVote(vote *model.PollVote) error {
	if err := r.db.Create(vote).Error; err != nil {
		return wrapDBError(err, "创建投票记录")
	}
	return nil
}

// CountByOption 按选项聚合票数
// 以选项表为主表 LEFT JOIN 投票表，零票选项计为 0
func (r *pollRepository) CountByOption(pollUuid string) ([]OptionVoteCount, error) {
	var counts []OptionVoteCount
	if err := r.db.Table("poll_option").
		Select("poll_option.uuid as option_uuid, poll_option.label, COUNT(poll_vote.id) as count").
		Joins("LEFT JOIN poll_vote ON poll_vote.option_uuid = poll_option.uuid").
		Where("poll_option.poll_uuid = ? AND poll_option.deleted_at IS NULL", pollUuid).
		Group("poll_option.uuid, poll_option.label, poll_option.id").
		Order("poll_option.id ASC").
		Scan(&counts).Error; err != nil {
		return nil, wrapDBErrorf(err, "统计投票票数 poll_uuid=%s", pollUuid)
	}
	return counts, nil
}
