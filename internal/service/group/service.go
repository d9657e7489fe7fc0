// Package group 提供群组业务逻辑
// 处理群组的创建、查询、管理、成员关系与入群申请审批
package group

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"agora_poll_server/internal/dao/postgres/repository"
	myredis "agora_poll_server/internal/dao/redis"
	"agora_poll_server/internal/dto/request"
	"agora_poll_server/internal/dto/respond"
	"agora_poll_server/internal/model"
	"agora_poll_server/pkg/enum/group_info/join_mode_enum"
	"agora_poll_server/pkg/enum/group_member/role_enum"
	"agora_poll_server/pkg/enum/join_request/join_request_status_enum"
	"agora_poll_server/pkg/errorx"
	"agora_poll_server/pkg/util/random"
)

// 群详情缓存有效期
const groupDetailCacheTTL = 5 * time.Minute

// groupService 群组业务逻辑实现
// 通过构造函数注入 Repository 和 Cache 依赖
type groupService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewGroupService 构造函数，注入所有依赖
func NewGroupService(repos *repository.Repositories, cacheService myredis.AsyncCacheService) *groupService {
	return &groupService{
		repos: repos,
		cache: cacheService,
	}
}

// CreateGroup 创建群组
// 创建者成为群主，群组记录与群主成员记录在同一事务内写入
func (g *groupService) CreateGroup(ownerId string, req request.CreateGroupRequest) (string, error) {
	group := model.GroupInfo{
		Uuid:        fmt.Sprintf("G%s", random.GetNowAndLenRandomString(11)),
		Name:        req.Name,
		Description: req.Description,
		Avatar:      req.Avatar,
		OwnerId:     ownerId,
		MemberCnt:   1,
		JoinMode:    req.JoinMode,
		PostReview:  req.PostReview,
	}

	err := g.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Group.Create(&group); err != nil {
			return err
		}
		member := model.GroupMember{
			GroupUuid: group.Uuid,
			UserUuid:  ownerId,
			Role:      role_enum.OWNER,
		}
		return txRepos.GroupMember.Create(&member)
	})
	if err != nil {
		zap.L().Error("create group error", zap.Error(err))
		return "", errorx.ErrServerBusy
	}
	return group.Uuid, nil
}

// SearchGroup 按名称子串搜索群组（公开接口）
func (g *groupService) SearchGroup(keyword string) ([]respond.GetGroupInfoRespond, error) {
	groups, err := g.repos.Group.SearchByName(keyword, 50)
	if err != nil {
		zap.L().Error("search group error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := make([]respond.GetGroupInfoRespond, 0, len(groups))
	for _, grp := range groups {
		rsp = append(rsp, buildGroupInfoRespond(&grp))
	}
	return rsp, nil
}

// GetMyGroupList 获取当前用户加入的所有群组
func (g *groupService) GetMyGroupList(userId string) ([]respond.GetGroupInfoRespond, error) {
	members, err := g.repos.GroupMember.FindByUserUuid(userId)
	if err != nil {
		zap.L().Error("find memberships error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	groupUuids := make([]string, 0, len(members))
	for _, m := range members {
		groupUuids = append(groupUuids, m.GroupUuid)
	}
	groups, err := g.repos.Group.FindByUuids(groupUuids)
	if err != nil {
		zap.L().Error("find groups error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := make([]respond.GetGroupInfoRespond, 0, len(groups))
	for _, grp := range groups {
		rsp = append(rsp, buildGroupInfoRespond(&grp))
	}
	return rsp, nil
}

// GetGroupDetail 获取群组详情
// 群组与成员列表走缓存（Cache-Aside），访问者状态标记每次实时计算
func (g *groupService) GetGroupDetail(groupId, viewerId string) (*respond.GetGroupDetailRespond, error) {
	detail, err := g.loadGroupDetail(groupId)
	if err != nil {
		return nil, err
	}

	// 访问者标记：匿名访问 viewerId 为空
	if viewerId != "" {
		role, err := g.ResolveRole(groupId, viewerId)
		if err != nil {
			return nil, err
		}
		detail.ViewerRole = role
		if role == role_enum.NOT_MEMBER {
			joinReq, err := g.repos.JoinRequest.FindByGroupAndUser(groupId, viewerId)
			if err == nil && joinReq.Status == join_request_status_enum.PENDING {
				detail.ViewerPending = true
			} else if err != nil && !errorx.IsNotFound(err) {
				zap.L().Error("find join request error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
		}
	}
	return detail, nil
}

// loadGroupDetail 加载群组详情（不含访问者标记），优先读缓存
func (g *groupService) loadGroupDetail(groupId string) (*respond.GetGroupDetailRespond, error) {
	cacheKey := "group_detail_" + groupId

	// 1. 尝试从缓存获取 (Happy Path)
	rspString, err := g.cache.Get(context.Background(), cacheKey)
	if err == nil && rspString != "" {
		var detail respond.GetGroupDetailRespond
		if err := json.Unmarshal([]byte(rspString), &detail); err == nil {
			return &detail, nil
		}
		zap.L().Error("Unmarshal group detail cache error", zap.Error(err))
	} else if err != nil {
		zap.L().Error("Redis get error", zap.Error(err))
	}

	// 2. 缓存未命中 -> 查询数据库
	group, err := g.repos.Group.FindByUuid(groupId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error("find group error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	members, err := g.repos.GroupMember.FindMembersWithUserInfo(groupId)
	if err != nil {
		zap.L().Error("find group members error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	memberList := make([]respond.GetGroupMemberListRespond, 0, len(members))
	for _, m := range members {
		memberList = append(memberList, respond.GetGroupMemberListRespond{
			UserId:   m.UserId,
			Nickname: m.Nickname,
			Avatar:   m.Avatar,
			Role:     m.Role,
		})
	}
	detail := &respond.GetGroupDetailRespond{
		Uuid:        group.Uuid,
		Name:        group.Name,
		Description: group.Description,
		Avatar:      group.Avatar,
		MemberCnt:   group.MemberCnt,
		OwnerId:     group.OwnerId,
		JoinMode:    group.JoinMode,
		PostReview:  group.PostReview,
		Members:     memberList,
	}

	// 3. 异步回填缓存
	if data, err := json.Marshal(detail); err == nil {
		g.cache.SubmitTask(func() {
			if err := g.cache.Set(context.Background(), cacheKey, string(data), groupDetailCacheTTL); err != nil {
				zap.L().Error("set group detail cache error", zap.Error(err))
			}
		})
	}
	return detail, nil
}

// invalidateGroupDetail 异步失效群详情缓存
func (g *groupService) invalidateGroupDetail(groupId string) {
	g.cache.SubmitTask(func() {
		if err := g.cache.Delete(context.Background(), "group_detail_"+groupId); err != nil {
			zap.L().Error("invalidate group detail cache error", zap.Error(err))
		}
	})
}

// ResolveRole 解析用户在群组中的角色
// 群主通过 group_info.owner_id 快速判定，其余查成员表；群组不存在返回 CodeNotFound
func (g *groupService) ResolveRole(groupId, userId string) (int8, error) {
	group, err := g.repos.Group.FindByUuid(groupId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return role_enum.NOT_MEMBER, errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error("find group error", zap.Error(err))
		return role_enum.NOT_MEMBER, errorx.ErrServerBusy
	}
	if group.OwnerId == userId {
		return role_enum.OWNER, nil
	}
	member, err := g.repos.GroupMember.FindByGroupAndUser(groupId, userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return role_enum.NOT_MEMBER, nil
		}
		zap.L().Error("find group member error", zap.Error(err))
		return role_enum.NOT_MEMBER, errorx.ErrServerBusy
	}
	return member.Role, nil
}

// UpdateGroupInfo 更新群组信息（群主/管理员）
func (g *groupService) UpdateGroupInfo(callerId string, req request.UpdateGroupInfoRequest) error {
	role, err := g.ResolveRole(req.GroupId, callerId)
	if err != nil {
		return err
	}
	if role < role_enum.ADMIN {
		return errorx.ErrForbidden
	}

	group, err := g.repos.Group.FindByUuid(req.GroupId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error("find group error", zap.Error(err))
		return errorx.ErrServerBusy
	}

	if req.Name != "" {
		group.Name = req.Name
	}
	if req.Description != "" {
		group.Description = req.Description
	}
	if req.Avatar != "" {
		group.Avatar = req.Avatar
	}
	if req.JoinMode != nil {
		group.JoinMode = *req.JoinMode
	}
	if req.PostReview != nil {
		group.PostReview = *req.PostReview
	}
	if err := g.repos.Group.Update(group); err != nil {
		zap.L().Error("update group error", zap.Error(err))
		return errorx.ErrServerBusy
	}

	g.invalidateGroupDetail(req.GroupId)
	return nil
}

// JoinGroup 加入群组
// join_mode 为直接加入时写成员记录，为审批制时写入群申请；
// 重复加入/重复申请由唯一索引和状态检查挡下，返回冲突
func (g *groupService) JoinGroup(userId string, req request.JoinGroupRequest) error {
	role, err := g.ResolveRole(req.GroupId, userId)
	if err != nil {
		return err
	}
	if role != role_enum.NOT_MEMBER {
		return errorx.New(errorx.CodeConflict, "已是群成员")
	}

	group, err := g.repos.Group.FindByUuid(req.GroupId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error("find group error", zap.Error(err))
		return errorx.ErrServerBusy
	}

	if group.JoinMode == join_mode_enum.DIRECT {
		err := g.repos.Transaction(func(txRepos *repository.Repositories) error {
			member := model.GroupMember{
				GroupUuid: req.GroupId,
				UserUuid:  userId,
				Role:      role_enum.MEMBER,
			}
			if err := txRepos.GroupMember.Create(&member); err != nil {
				return err
			}
			return txRepos.Group.IncrementMemberCount(req.GroupId)
		})
		if err != nil {
			// 并发重复加入被唯一索引挡下
			if errorx.IsConflict(err) {
				return errorx.New(errorx.CodeConflict, "已是群成员")
			}
			zap.L().Error("join group error", zap.Error(err))
			return errorx.ErrServerBusy
		}
		g.invalidateGroupDetail(req.GroupId)
		return nil
	}

	// 审批制：复用已有申请记录或新建
	joinReq, err := g.repos.JoinRequest.FindByGroupAndUser(req.GroupId, userId)
	if err == nil {
		if joinReq.Status == join_request_status_enum.PENDING {
			return errorx.New(errorx.CodeConflict, "已有待处理的入群申请")
		}
		// 被拒绝/已通过后再次申请：复用记录重置为待处理
		joinReq.Status = join_request_status_enum.PENDING
		joinReq.Message = req.Message
		joinReq.LastAppliedAt = time.Now()
		if err := g.repos.JoinRequest.Update(joinReq); err != nil {
			zap.L().Error("reset join request error", zap.Error(err))
			return errorx.ErrServerBusy
		}
		return nil
	}
	if !errorx.IsNotFound(err) {
		zap.L().Error("find join request error", zap.Error(err))
		return errorx.ErrServerBusy
	}

	newReq := model.JoinRequest{
		Uuid:          fmt.Sprintf("R%s", random.GetNowAndLenRandomString(11)),
		GroupUuid:     req.GroupId,
		UserUuid:      userId,
		Status:        join_request_status_enum.PENDING,
		Message:       req.Message,
		LastAppliedAt: time.Now(),
	}
	if err := g.repos.JoinRequest.Create(&newReq); err != nil {
		if errorx.IsConflict(err) {
			return errorx.New(errorx.CodeConflict, "已有待处理的入群申请")
		}
		zap.L().Error("create join request error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// GetJoinRequestList 获取待处理入群申请（群主/管理员）
// 按申请时间正序返回，并带上申请人资料
func (g *groupService) GetJoinRequestList(groupId, callerId string) ([]respond.GetJoinRequestListRespond, error) {
	role, err := g.ResolveRole(groupId, callerId)
	if err != nil {
		return nil, err
	}
	if role < role_enum.ADMIN {
		return nil, errorx.ErrForbidden
	}

	requests, err := g.repos.JoinRequest.FindPendingByGroup(groupId)
	if err != nil {
		zap.L().Error("find pending join requests error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	userUuids := make([]string, 0, len(requests))
	for _, r := range requests {
		userUuids = append(userUuids, r.UserUuid)
	}
	users, err := g.repos.User.FindByUuids(userUuids)
	if err != nil {
		zap.L().Error("find applicants error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	userMap := make(map[string]model.UserInfo, len(users))
	for _, u := range users {
		userMap[u.Uuid] = u
	}

	rsp := make([]respond.GetJoinRequestListRespond, 0, len(requests))
	for _, r := range requests {
		item := respond.GetJoinRequestListRespond{
			RequestId:     r.Uuid,
			UserId:        r.UserUuid,
			Message:       r.Message,
			LastAppliedAt: r.LastAppliedAt.Format("2006-01-02 15:04:05"),
		}
		if u, ok := userMap[r.UserUuid]; ok {
			item.Nickname = u.Nickname
			item.Avatar = u.Avatar
		}
		rsp = append(rsp, item)
	}
	return rsp, nil
}

// findPendingRequest 校验申请归属与状态，供审批/拒绝共用
// 申请不属于该群按不存在处理；非待处理状态按冲突处理（已审批的申请是终态）
func (g *groupService) findPendingRequest(groupId, requestId string) (*model.JoinRequest, error) {
	joinReq, err := g.repos.JoinRequest.FindByUuid(requestId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "入群申请不存在")
		}
		zap.L().Error("find join request error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if joinReq.GroupUuid != groupId {
		return nil, errorx.New(errorx.CodeNotFound, "入群申请不存在")
	}
	if joinReq.Status != join_request_status_enum.PENDING {
		return nil, errorx.New(errorx.CodeConflict, "该申请已被处理")
	}
	return joinReq, nil
}

// ApproveJoinRequest 批准入群申请（群主/管理员）
// 状态流转、成员写入与计数自增在同一事务内完成；
// 并发重复批准由成员表唯一索引兜底
func (g *groupService) ApproveJoinRequest(callerId string, req request.HandleJoinRequestRequest) error {
	role, err := g.ResolveRole(req.GroupId, callerId)
	if err != nil {
		return err
	}
	if role < role_enum.ADMIN {
		return errorx.ErrForbidden
	}

	joinReq, err := g.findPendingRequest(req.GroupId, req.RequestId)
	if err != nil {
		return err
	}

	err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
		joinReq.Status = join_request_status_enum.APPROVED
		if err := txRepos.JoinRequest.Update(joinReq); err != nil {
			return err
		}
		member := model.GroupMember{
			GroupUuid: joinReq.GroupUuid,
			UserUuid:  joinReq.UserUuid,
			Role:      role_enum.MEMBER,
		}
		if err := txRepos.GroupMember.Create(&member); err != nil {
			return err
		}
		return txRepos.Group.IncrementMemberCount(joinReq.GroupUuid)
	})
	if err != nil {
		if errorx.IsConflict(err) {
			return errorx.New(errorx.CodeConflict, "该用户已是群成员")
		}
		zap.L().Error("approve join request error", zap.Error(err))
		return errorx.ErrServerBusy
	}

	g.invalidateGroupDetail(req.GroupId)
	return nil
}

// RejectJoinRequest 拒绝入群申请（群主/管理员）
// 仅状态流转，不产生成员记录；被拒绝的用户可再次申请
func (g *groupService) RejectJoinRequest(callerId string, req request.HandleJoinRequestRequest) error {
	role, err := g.ResolveRole(req.GroupId, callerId)
	if err != nil {
		return err
	}
	if role < role_enum.ADMIN {
		return errorx.ErrForbidden
	}

	joinReq, err := g.findPendingRequest(req.GroupId, req.RequestId)
	if err != nil {
		return err
	}

	joinReq.Status = join_request_status_enum.REJECTED
	if err := g.repos.JoinRequest.Update(joinReq); err != nil {
		zap.L().Error("reject join request error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// LeaveGroup 退出群组
// 群主不可退出，只能解散群组
func (g *groupService) LeaveGroup(userId, groupId string) error {
	role, err := g.ResolveRole(groupId, userId)
	if err != nil {
		return err
	}
	if role == role_enum.NOT_MEMBER {
		return errorx.New(errorx.CodeConflict, "不是该群成员")
	}
	if role == role_enum.OWNER {
		return errorx.New(errorx.CodeForbidden, "群主不能退出群组，请解散群组")
	}

	err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.GroupMember.Delete(groupId, userId); err != nil {
			return err
		}
		return txRepos.Group.DecrementMemberCountBy(groupId, 1)
	})
	if err != nil {
		zap.L().Error("leave group error", zap.Error(err))
		return errorx.ErrServerBusy
	}

	g.invalidateGroupDetail(groupId)
	return nil
}

// RemoveGroupMember 移除群成员（群主/管理员）
// 群主不可被移除；移除自己请走退出群组
func (g *groupService) RemoveGroupMember(callerId string, req request.RemoveGroupMemberRequest) error {
	if req.MemberId == callerId {
		return errorx.New(errorx.CodeInvalidParam, "不能移除自己，请使用退出群组")
	}

	role, err := g.ResolveRole(req.GroupId, callerId)
	if err != nil {
		return err
	}
	if role < role_enum.ADMIN {
		return errorx.ErrForbidden
	}

	targetRole, err := g.ResolveRole(req.GroupId, req.MemberId)
	if err != nil {
		return err
	}
	if targetRole == role_enum.NOT_MEMBER {
		return errorx.New(errorx.CodeNotFound, "该用户不是群成员")
	}
	if targetRole == role_enum.OWNER {
		return errorx.New(errorx.CodeForbidden, "不能移除群主")
	}

	err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.GroupMember.Delete(req.GroupId, req.MemberId); err != nil {
			return err
		}
		return txRepos.Group.DecrementMemberCountBy(req.GroupId, 1)
	})
	if err != nil {
		zap.L().Error("remove group member error", zap.Error(err))
		return errorx.ErrServerBusy
	}

	g.invalidateGroupDetail(req.GroupId)
	return nil
}

// DeleteGroup 解散群组（仅群主）
// 成员、申请、帖子、选项、投票、评论在同一事务内级联清理
func (g *groupService) DeleteGroup(callerId, groupId string) error {
	role, err := g.ResolveRole(groupId, callerId)
	if err != nil {
		return err
	}
	if role != role_enum.OWNER {
		return errorx.ErrForbidden
	}

	err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
		postUuids, err := txRepos.Post.FindUuidsByGroupUuid(groupId)
		if err != nil {
			return err
		}
		if len(postUuids) > 0 {
			if err := txRepos.Vote.DeleteByPostUuids(postUuids); err != nil {
				return err
			}
			if err := txRepos.Comment.SoftDeleteByPostUuids(postUuids); err != nil {
				return err
			}
			if err := txRepos.Post.SoftDeleteOptionsByPostUuids(postUuids); err != nil {
				return err
			}
		}
		if err := txRepos.Post.SoftDeleteByGroupUuid(groupId); err != nil {
			return err
		}
		if err := txRepos.JoinRequest.DeleteByGroupUuid(groupId); err != nil {
			return err
		}
		if err := txRepos.GroupMember.DeleteByGroupUuid(groupId); err != nil {
			return err
		}
		return txRepos.Group.SoftDeleteByUuid(groupId)
	})
	if err != nil {
		zap.L().Error("delete group error", zap.Error(err))
		return errorx.ErrServerBusy
	}

	g.invalidateGroupDetail(groupId)
	return nil
}

// buildGroupInfoRespond 构建群组概要响应
func buildGroupInfoRespond(group *model.GroupInfo) respond.GetGroupInfoRespond {
	return respond.GetGroupInfoRespond{
		Uuid:        group.Uuid,
		Name:        group.Name,
		Description: group.Description,
		Avatar:      group.Avatar,
		MemberCnt:   group.MemberCnt,
		OwnerId:     group.OwnerId,
		JoinMode:    group.JoinMode,
		PostReview:  group.PostReview,
	}
}
