// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"agora_poll_server/internal/dto/request"
	"agora_poll_server/internal/dto/respond"
)

// UserService 用户业务接口
// 处理用户注册、登录、令牌刷新与个人资料管理
type UserService interface {
	// Register 用户注册（注册成功直接登录，签发令牌）
	Register(req request.RegisterRequest) (*respond.LoginRespond, error)
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// RefreshToken 使用 Refresh Token 换取新令牌对
	RefreshToken(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error)
	// GetUserInfo 获取用户信息
	GetUserInfo(uuid string) (*respond.GetUserInfoRespond, error)
	// UpdateUserInfo 更新当前用户资料
	UpdateUserInfo(userId string, req request.UpdateUserInfoRequest) (*respond.GetUserInfoRespond, error)
	// DeleteAccount 注销当前账号（软删除）
	DeleteAccount(userId string) error
}

// GroupService 群组业务接口
// 处理群组的创建、查询、管理、成员与入群申请
type GroupService interface {
	// CreateGroup 创建群组，创建者成为群主，返回群组 uuid
	CreateGroup(ownerId string, req request.CreateGroupRequest) (string, error)
	// SearchGroup 按名称子串搜索群组（公开）
	SearchGroup(keyword string) ([]respond.GetGroupInfoRespond, error)
	// GetMyGroupList 获取当前用户加入的所有群组
	GetMyGroupList(userId string) ([]respond.GetGroupInfoRespond, error)
	// GetGroupDetail 获取群组详情（含成员列表与访问者状态标记）
	GetGroupDetail(groupId, viewerId string) (*respond.GetGroupDetailRespond, error)
	// UpdateGroupInfo 更新群组信息（群主/管理员）
	UpdateGroupInfo(callerId string, req request.UpdateGroupInfoRequest) error
	// DeleteGroup 解散群组（仅群主，级联清理成员/申请/帖子/选项/投票/评论）
	DeleteGroup(callerId, groupId string) error
	// ResolveRole 解析用户在群组中的角色
	ResolveRole(groupId, userId string) (int8, error)
	// JoinGroup 加入群组（直接加入或提交申请，取决于 join_mode）
	JoinGroup(userId string, req request.JoinGroupRequest) error
	// GetJoinRequestList 获取待处理入群申请（群主/管理员）
	GetJoinRequestList(groupId, callerId string) ([]respond.GetJoinRequestListRespond, error)
	// ApproveJoinRequest 批准入群申请（群主/管理员）
	ApproveJoinRequest(callerId string, req request.HandleJoinRequestRequest) error
	// RejectJoinRequest 拒绝入群申请（群主/管理员）
	RejectJoinRequest(callerId string, req request.HandleJoinRequestRequest) error
	// LeaveGroup 退出群组（群主不可退出，只能解散）
	LeaveGroup(userId, groupId string) error
	// RemoveGroupMember 移除群成员（群主/管理员，群主不可被移除）
	RemoveGroupMember(callerId string, req request.RemoveGroupMemberRequest) error
}

// PostService 群帖子业务接口
// 处理讨论帖/投票帖的发布、审核、投票与评论
type PostService interface {
	// CreatePost 发布帖子，审核状态由服务端计算
	CreatePost(authorId string, req request.CreatePostRequest) (*respond.GetPostListRespond, error)
	// GetPostList 获取群组帖子列表，可见范围取决于访问者角色
	GetPostList(groupId, viewerId string) ([]respond.GetPostListRespond, error)
	// GetPostDetail 获取帖子详情（选项票数、访问者投票、评论数）
	GetPostDetail(postId, viewerId string) (*respond.GetPostDetailRespond, error)
	// ApprovePost 审核通过帖子（群主/管理员）
	ApprovePost(callerId string, req request.ReviewPostRequest) error
	// RejectPost 审核拒绝帖子（群主/管理员）
	RejectPost(callerId string, req request.ReviewPostRequest) error
	// VotePost 在投票帖上投票，返回各选项最新票数
	VotePost(userId string, req request.VotePostRequest) (*respond.VotePostRespond, error)
	// CreateComment 发表评论（仅群成员）
	CreateComment(userId string, req request.CreateCommentRequest) error
	// GetCommentList 获取帖子评论列表（创建时间正序）
	GetCommentList(postId string) ([]respond.GetCommentListRespond, error)
}

// PollService 独立投票业务接口
// 群组之外的单题投票，支持多选开关
type PollService interface {
	// CreatePoll 创建独立投票
	CreatePoll(authorId string, req request.CreatePollRequest) (*respond.GetPollDetailRespond, error)
	// GetPollList 获取最新投票列表（动态流）
	GetPollList() ([]respond.GetPollListRespond, error)
	// GetPollDetail 获取投票详情（选项票数与访问者投票记录）
	GetPollDetail(pollId, viewerId string) (*respond.GetPollDetailRespond, error)
	// VotePoll 投票，multi_select 关闭时只允许一个选项
	VotePoll(userId string, req request.VotePollRequest) (*respond.GetPollDetailRespond, error)
}
