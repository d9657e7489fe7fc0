// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"errors"

	"agora_poll_server/internal/model"
	"agora_poll_server/pkg/errorx"

	"gorm.io/gorm"
)

// ==================== 错误包装辅助函数 ====================

// wrapDBError 包装数据库错误
// 根据错误类型返回不同的错误码：
//   - ErrRecordNotFound -> CodeNotFound
//   - ErrDuplicatedKey  -> CodeConflict（唯一索引冲突，并发竞态的兜底）
//   - 其他错误 -> CodeDBError
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errorx.Wrap(err, errorx.CodeConflict, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// wrapDBErrorf 包装数据库错误（支持格式化消息）
// 功能同 wrapDBError，但支持 fmt.Sprintf 风格的格式化
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errorx.Wrapf(err, errorx.CodeConflict, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
// 提供用户的增删改查操作
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByTelephone 根据手机号查找用户
	FindByTelephone(telephone string) (*model.UserInfo, error)
	// FindByEmail 根据邮箱查找用户
	FindByEmail(email string) (*model.UserInfo, error)
	// FindByUuids 批量根据 UUID 查找用户
	FindByUuids(uuids []string) ([]model.UserInfo, error)
	// Create 创建新用户
	Create(user *model.UserInfo) error
	// Update 更新用户信息（全字段更新）
	Update(user *model.UserInfo) error
	// SoftDeleteByUuid 软删除用户（注销账号）
	SoftDeleteByUuid(uuid string) error
}

// GroupRepository 群组数据访问接口
type GroupRepository interface {
	// FindByUuid 根据 UUID 查找群组
	FindByUuid(uuid string) (*model.GroupInfo, error)
	// FindByUuids 批量根据 UUID 查找群组
	FindByUuids(uuids []string) ([]model.GroupInfo, error)
	// FindByOwnerId 根据群主 ID 查找群组
	FindByOwnerId(ownerId string) ([]model.GroupInfo, error)
	// SearchByName 按名称子串搜索群组
	SearchByName(keyword string, limit int) ([]model.GroupInfo, error)
	// Create 创建新群组
	Create(group *model.GroupInfo) error
	// Update 更新群组信息
	Update(group *model.GroupInfo) error
	// IncrementMemberCount 增加群成员数量（+1）
	IncrementMemberCount(uuid string) error
	// DecrementMemberCountBy 减少群成员数量（指定数量）
	DecrementMemberCountBy(uuid string, count int) error
	// SoftDeleteByUuid 软删除群组
	SoftDeleteByUuid(uuid string) error
}

// GroupMemberWithUserInfo 群成员详细信息（含用户资料）
// 用于群成员列表展示
type GroupMemberWithUserInfo struct {
	UserId   string `json:"user_id"`  // 用户 UUID
	Nickname string `json:"nickname"` // 用户昵称
	Avatar   string `json:"avatar"`   // 用户头像
	Role     int8   `json:"role"`     // 角色：1成员 2管理员 3群主
}

// GroupMemberRepository 群成员数据访问接口
type GroupMemberRepository interface {
	// FindByGroupAndUser 查找成员关系（用于角色解析与在群检查）
	FindByGroupAndUser(groupUuid, userUuid string) (*model.GroupMember, error)
	// FindByUserUuid 查找用户加入的所有群
	FindByUserUuid(userUuid string) ([]model.GroupMember, error)
	// FindMembersWithUserInfo 查询群成员详细信息（JOIN 用户表）
	FindMembersWithUserInfo(groupUuid string) ([]GroupMemberWithUserInfo, error)
	// Create 添加群成员
	Create(member *model.GroupMember) error
	// Delete 删除单个群成员（物理删除）
	Delete(groupUuid, userUuid string) error
	// DeleteByGroupUuid 删除群组的所有成员（解散群组时）
	DeleteByGroupUuid(groupUuid string) error
	// DeleteByUserUuid 删除用户的所有成员记录（注销账号时）
	DeleteByUserUuid(userUuid string) error
}

// JoinRequestRepository 入群申请数据访问接口
type JoinRequestRepository interface {
	// FindByUuid 根据申请 UUID 查找
	FindByUuid(uuid string) (*model.JoinRequest, error)
	// FindByGroupAndUser 根据群组和申请人查找
	FindByGroupAndUser(groupUuid, userUuid string) (*model.JoinRequest, error)
	// FindPendingByGroup 查找群组的所有待处理申请
	FindPendingByGroup(groupUuid string) ([]model.JoinRequest, error)
	// Create 创建新申请
	Create(req *model.JoinRequest) error
	// Update 更新申请（全字段更新）
	Update(req *model.JoinRequest) error
	// DeleteByGroupUuid 删除群组的所有申请（解散群组时，物理删除）
	DeleteByGroupUuid(groupUuid string) error
}

// GroupPostRepository 群帖子数据访问接口
// 帖子及其选项共用本接口
type GroupPostRepository interface {
	// FindByUuid 根据 UUID 查找帖子
	FindByUuid(uuid string) (*model.GroupPost, error)
	// FindByGroupUuid 查找群组帖子，approvedOnly 控制是否只返回已通过的
	FindByGroupUuid(groupUuid string, approvedOnly bool) ([]model.GroupPost, error)
	// FindUuidsByGroupUuid 查找群组所有帖子的 UUID（用于级联清理）
	FindUuidsByGroupUuid(groupUuid string) ([]string, error)
	// Create 创建帖子
	Create(post *model.GroupPost) error
	// UpdateStatus 更新帖子审核状态
	UpdateStatus(uuid string, status int8) error
	// CreateOptions 批量创建投票选项
	CreateOptions(options []model.GroupPostOption) error
	// FindOptionsByPostUuid 查找帖子的所有选项
	FindOptionsByPostUuid(postUuid string) ([]model.GroupPostOption, error)
	// FindOptionByUuid 根据选项 UUID 查找
	FindOptionByUuid(uuid string) (*model.GroupPostOption, error)
	// SoftDeleteByGroupUuid 软删除群组的所有帖子（解散群组时）
	SoftDeleteByGroupUuid(groupUuid string) error
	// SoftDeleteOptionsByPostUuids 软删除帖子的所有选项
	SoftDeleteOptionsByPostUuids(postUuids []string) error
}

// OptionVoteCount 单个选项的聚合票数
type OptionVoteCount struct {
	OptionUuid string `json:"option_id"` // 选项 UUID
	Label      string `json:"label"`     // 选项文本
	Count      int64  `json:"count"`     // 得票数（无票为 0）
}

// GroupPostVoteRepository 投票帖投票数据访问接口
type GroupPostVoteRepository interface {
	// FindByPostAndUser 查找用户在帖子上的投票记录
	FindByPostAndUser(postUuid, userUuid string) (*model.GroupPostVote, error)
	// Create 记录一票
	Create(vote *model.GroupPostVote) error
	// CountByOption 按选项聚合帖子票数（LEFT JOIN，零票选项计 0）
	CountByOption(postUuid string) ([]OptionVoteCount, error)
	// DeleteByPostUuids 删除帖子的所有投票（解散群组时，物理删除）
	DeleteByPostUuids(postUuids []string) error
}

// GroupPostCommentRepository 帖子评论数据访问接口
type GroupPostCommentRepository interface {
	// FindByPostUuid 查找帖子的所有评论（创建时间正序）
	FindByPostUuid(postUuid string) ([]model.GroupPostComment, error)
	// CountByPostUuid 统计帖子评论数
	CountByPostUuid(postUuid string) (int64, error)
	// Create 创建评论
	Create(comment *model.GroupPostComment) error
	// SoftDeleteByPostUuids 软删除帖子的所有评论
	SoftDeleteByPostUuids(postUuids []string) error
}

// PollRepository 独立投票数据访问接口
// 投票、选项与投票记录共用本接口
type PollRepository interface {
	// FindByUuid 根据 UUID 查找投票
	FindByUuid(uuid string) (*model.PollInfo, error)
	// FindRecent 查找最新的投票（动态流）
	FindRecent(limit int) ([]model.PollInfo, error)
	// Create 创建投票
	Create(poll *model.PollInfo) error
	// CreateOptions 批量创建选项
	CreateOptions(options []model.PollOption) error
	// FindOptionsByPollUuid 查找投票的所有选项
	FindOptionsByPollUuid(pollUuid string) ([]model.PollOption, error)
	// FindOptionByUuid 根据选项 UUID 查找
	FindOptionByUuid(uuid string) (*model.PollOption, error)
	// FindVotesByPollAndUser 查找用户在该投票下的全部投票记录（跨选项）
	FindVotesByPollAndUser(pollUuid, userUuid string) ([]model.PollVote, error)
	// CreateVote 记录一票
	CreateVote(vote *model.PollVote) error
	// CountByOption 按选项聚合票数（LEFT JOIN，零票选项计 0）
	CountByOption(pollUuid string) ([]OptionVoteCount, error)
}

// ==================== Repository 聚合 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db          *gorm.DB                   // GORM 数据库实例
	User        UserRepository             // 用户 Repository
	Group       GroupRepository            // 群组 Repository
	GroupMember GroupMemberRepository      // 群成员 Repository
	JoinRequest JoinRequestRepository      // 入群申请 Repository
	Post        GroupPostRepository        // 群帖子 Repository
	Vote        GroupPostVoteRepository    // 投票帖投票 Repository
	Comment     GroupPostCommentRepository // 帖子评论 Repository
	Poll        PollRepository             // 独立投票 Repository
}

// NewRepositories 创建所有 Repository 实例
// 接收 GORM 数据库实例，初始化并返回 Repositories 聚合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:          db,
		User:        NewUserRepository(db),
		Group:       NewGroupRepository(db),
		GroupMember: NewGroupMemberRepository(db),
		JoinRequest: NewJoinRequestRepository(db),
		Post:        NewGroupPostRepository(db),
		Vote:        NewGroupPostVoteRepository(db),
		Comment:     NewGroupPostCommentRepository(db),
		Poll:        NewPollRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// fn: 事务执行函数，接收事务内的 Repositories 实例
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 使用事务 db 创建新的 Repositories 实例
		return fn(NewRepositories(tx))
	})
}
