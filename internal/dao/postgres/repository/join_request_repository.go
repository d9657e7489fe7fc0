// Package repository 提供数据访问层的具体实现
// 本文件实现 JoinRequestRepository 接口，处理入群申请相关的数据库操作
package repository

import (
	"agora_poll_server/internal/model"
	"agora_poll_server/pkg/enum/join_request/join_request_status_enum"

	"gorm.io/gorm"
)

// joinRequestRepository JoinRequestRepository 接口的实现
type joinRequestRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewJoinRequestRepository 创建 JoinRequestRepository 实例
func NewJoinRequestRepository(db *gorm.DB) JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

// FindByUuid 根据申请 UUID 查找
func (r *joinRequestRepository) FindByUuid(uuid string) (*model.JoinRequest, error) {
	var req model.JoinRequest
	if err := r.db.First(&req, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询入群申请 uuid=%s", uuid)
	}
	return &req, nil
}

// FindByGroupAndUser 根据群组和申请人查找申请
// 用于检查是否已存在申请记录（再次申请时复用）
func (r *joinRequestRepository) FindByGroupAndUser(groupUuid, userUuid string) (*model.JoinRequest, error) {
	var req model.JoinRequest
	if err := r.db.Where("group_uuid = ? AND user_uuid = ?", groupUuid, userUuid).First(&req).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询入群申请 group_uuid=%s user_uuid=%s", groupUuid, userUuid)
	}
	return &req, nil
}

// FindPendingByGroup 查找群组的待处理申请
// 用于群主/管理员获取审批列表
func (r *joinRequestRepository) FindPendingByGroup(groupUuid string) ([]model.JoinRequest, error) {
	var reqs []model.JoinRequest
	// 只查询状态为 PENDING 的申请，按申请时间正序
	if err := r.db.Where("group_uuid = ? AND status = ?", groupUuid, join_request_status_enum.PENDING).
		Order("last_applied_at ASC").Find(&reqs).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询待处理申请 group_uuid=%s", groupUuid)
	}
	return reqs, nil
}

// Create 创建新的申请记录
func (r *joinRequestRepository) Create(req *model.JoinRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		return wrapDBError(err, "创建入群申请")
	}
	return nil
}

// Update 更新申请记录（全字段更新）
func (r *joinRequestRepository) Update(req *model.JoinRequest) error {
	if err := r.db.Save(req).Error; err != nil {
		return wrapDBError(err, "更新入群申请")
	}
	return nil
}

// DeleteByGroupUuid 删除群组的所有申请
// 解散群组时物理删除，避免残留行占用 (group, user) 唯一索引
func (r *joinRequestRepository) DeleteByGroupUuid(groupUuid string) error {
	if err := r.db.Unscoped().Where("group_uuid = ?", groupUuid).Delete(&model.JoinRequest{}).Error; err != nil {
		return wrapDBErrorf(err, "删除群所有申请 group_uuid=%s", groupUuid)
	}
	return nil
}
