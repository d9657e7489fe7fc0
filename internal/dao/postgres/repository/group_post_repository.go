// Package repository 提供数据访问层的具体实现
// 本文件实现 GroupPostRepository 接口，处理群帖子及投票选项的数据库操作
package repository

import (
	"agora_poll_server/internal/model"
	"agora_poll_server/pkg/enum/group_post/post_status_enum"

	"gorm.io/gorm"
)

// groupPostRepository GroupPostRepository 接口的实现
type groupPostRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewGroupPostRepository 创建 GroupPostRepository 实例
func NewGroupPostRepository(db *gorm.DB) GroupPostRepository {
	return &groupPostRepository{db: db}
}

// FindByUuid 根据 UUID 查找帖子
func (r *groupPostRepository) FindByUuid(uuid string) (*model.GroupPost, error) {
	var post model.GroupPost
	if err := r.db.First(&post, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询帖子 uuid=%s", uuid)
	}
	return &post, nil
}

// FindByGroupUuid 查找群组的帖子，按创建时间倒序
// approvedOnly=true 时只返回已通过审核的帖子（普通成员与游客视角）
func (r *groupPostRepository) FindByGroupUuid(groupUuid string, approvedOnly bool) ([]model.GroupPost, error) {
	var posts []model.GroupPost
	query := r.db.Where("group_uuid = ?", groupUuid)
	if approvedOnly {
		query = query.Where("status = ?", post_status_enum.APPROVED)
	}
	if err := query.Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群帖子 group_uuid=%s", groupUuid)
	}
	return posts, nil
}

// FindUuidsByGroupUuid 查找群组所有帖子的 UUID
// 用于解散群组时级联清理选项/投票/评论
func (r *groupPostRepository) FindUuidsByGroupUuid(groupUuid string) ([]string, error) {
	var uuids []string
	if err := r.db.Model(&model.GroupPost{}).Where("group_uuid = ?", groupUuid).Pluck("uuid", &uuids).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群帖子ID group_uuid=%s", groupUuid)
	}
	return uuids, nil
}

// Create 创建帖子
func (r *groupPostRepository) Create(post *model.GroupPost) error {
	if err := r.db.Create(post).Error; err != nil {
		return wrapDBError(err, "创建帖子")
	}
	return nil
}

// UpdateStatus 更新帖子审核状态
func (r *groupPostRepository) UpdateStatus(uuid string, status int8) error {
	if err := r.db.Model(&model.GroupPost{}).Where("uuid = ?", uuid).Update("status", status).Error; err != nil {
		return wrapDBErrorf(err, "更新帖子状态 uuid=%s", uuid)
	}
	return nil
}

// CreateOptions 批量创建投票选项
func (r *groupPostRepository) CreateOptions(options []model.GroupPostOption) error {
	if len(options) == 0 {
		return nil
	}
	if err := r.db.Create(&options).Error; err != nil {
		return wrapDBError(err, "创建投票选项")
	}
	return nil
}

// FindOptionsByPostUuid 查找帖子的所有选项
func (r *groupPostRepository) FindOptionsByPostUuid(postUuid string) ([]model.GroupPostOption, error) {
	var options []model.GroupPostOption
	if err := r.db.Where("post_uuid = ?", postUuid).Order("id ASC").Find(&options).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询投票选项 post_uuid=%s", postUuid)
	}
	return options, nil
}

// FindOptionByUuid 根据选项 UUID 查找
func (r *groupPostRepository) FindOptionByUuid(uuid string) (*model.GroupPostOption, error) {
	var option model.GroupPostOption
	if err := r.db.First(&option, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询投票选项 uuid=%s", uuid)
	}
	return &option, nil
}

// SoftDeleteByGroupUuid 软删除群组的所有帖子
func (r *groupPostRepository) SoftDeleteByGroupUuid(groupUuid string) error {
	if err := r.db.Where("group_uuid = ?", groupUuid).Delete(&model.GroupPost{}).Error; err != nil {
		return wrapDBErrorf(err, "删除群所有帖子 group_uuid=%s", groupUuid)
	}
	return nil
}

// SoftDeleteOptionsByPostUuids 软删除帖子的所有选项
func (r *groupPostRepository) SoftDeleteOptionsByPostUuids(postUuids []string) error {
	if len(postUuids) == 0 {
		return nil
	}
	if err := r.db.Where("post_uuid IN ?", postUuids).Delete(&model.GroupPostOption{}).Error; err != nil {
		return wrapDBError(err, "删除帖子选项")
	}
	return nil
}
