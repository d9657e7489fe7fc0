// Package repository 提供数据访问层的具体实现
// 本文件实现 GroupPostCommentRepository 接口，处理帖子评论的数据库操作
package repository

import (
	"agora_poll_server/internal/model"

	"gorm.io/gorm"
)

// groupPostCommentRepository GroupPostCommentRepository 接口的实现
type groupPostCommentRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewGroupPostCommentRepository 创建 GroupPostCommentRepository 实例
func NewGroupPostCommentRepository(db *gorm.DB) GroupPostCommentRepository {
	return &groupPostCommentRepository{db: db}
}

// FindByPostUuid 查找帖子的所有评论
// 按创建时间正序返回
func (r *groupPostCommentRepository) FindByPostUuid(postUuid string) ([]model.GroupPostComment, error) {
	var comments []model.GroupPostComment
	if err := r.db.Where("post_uuid = ?", postUuid).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询帖子评论 post_uuid=%s", postUuid)
	}
	return comments, nil
}

// CountByPostUuid 统计帖子评论数
func (r *groupPostCommentRepository) CountByPostUuid(postUuid string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.GroupPostComment{}).Where("post_uuid = ?", postUuid).Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计帖子评论数 post_uuid=%s", postUuid)
	}
	return count, nil
}

// Create 创建评论
func (r *groupPostCommentRepository) Create(comment *model.GroupPostComment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return wrapDBError(err, "创建评论")
	}
	return nil
}

// SoftDeleteByPostUuids 软删除帖子的所有评论
func (r *groupPostCommentRepository) SoftDeleteByPostUuids(postUuids []string) error {
	if len(postUuids) == 0 {
		return nil
	}
	if err := r.db.Where("post_uuid IN ?", postUuids).Delete(&model.GroupPostComment{}).Error; err != nil {
		return wrapDBError(err, "删除帖子评论")
	}
	return nil
}
