// Package post 提供群帖子业务逻辑
// 处理讨论帖/投票帖的发布、审核流转、投票与评论
package post

import (
	"fmt"

	"go.uber.org/zap"

	"agora_poll_server/internal/dao/postgres/repository"
	"agora_poll_server/internal/dto/request"
	"agora_poll_server/internal/dto/respond"
	"agora_poll_server/internal/model"
	"agora_poll_server/pkg/constants"
	"agora_poll_server/pkg/enum/group_member/role_enum"
	"agora_poll_server/pkg/enum/group_post/post_status_enum"
	"agora_poll_server/pkg/enum/group_post/post_type_enum"
	"agora_poll_server/pkg/errorx"
	"agora_poll_server/pkg/util/random"
)

// roleResolver 群组角色解析依赖
// 由群组 Service 提供实现，避免双向依赖
type roleResolver interface {
	ResolveRole(groupId, userId string) (int8, error)
}

// postService 群帖子业务逻辑实现
type postService struct {
	repos    *repository.Repositories
	resolver roleResolver
}

// NewPostService 构造函数，注入所有依赖
func NewPostService(repos *repository.Repositories, resolver roleResolver) *postService {
	return &postService{
		repos:    repos,
		resolver: resolver,
	}
}

// CreatePost 发布帖子
// 审核状态由服务端计算：群开启审核且作者是普通成员时为待审核，否则直接通过；
// 投票帖必须携带至少两个选项，帖子与选项在同一事务内写入
func (p *postService) CreatePost(authorId string, req request.CreatePostRequest) (*respond.GetPostListRespond, error) {
	role, err := p.resolver.ResolveRole(req.GroupId, authorId)
	if err != nil {
		return nil, err
	}
	if role == role_enum.NOT_MEMBER {
		return nil, errorx.ErrForbidden
	}

	if req.Type == post_type_enum.POLL {
		if len(req.Options) < constants.MIN_POLL_OPTION_CNT {
			return nil, errorx.Newf(errorx.CodeInvalidParam, "投票帖至少需要 %d 个选项", constants.MIN_POLL_OPTION_CNT)
		}
	} else if len(req.Options) > 0 {
		return nil, errorx.New(errorx.CodeInvalidParam, "讨论帖不能携带投票选项")
	}

	group, err := p.repos.Group.FindByUuid(req.GroupId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error("find group error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 状态由服务端决定，客户端无法自选
	status := post_status_enum.APPROVED
	if group.PostReview == 1 && role == role_enum.MEMBER {
		status = post_status_enum.PENDING
	}

	newPost := model.GroupPost{
		Uuid:       fmt.Sprintf("P%s", random.GetNowAndLenRandomString(11)),
		GroupUuid:  req.GroupId,
		AuthorUuid: authorId,
		Type:       req.Type,
		Status:     status,
		Title:      req.Title,
		Content:    req.Content,
		MediaUrl:   req.MediaUrl,
	}

	err = p.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Post.Create(&newPost); err != nil {
			return err
		}
		if req.Type != post_type_enum.POLL {
			return nil
		}
		options := make([]model.GroupPostOption, 0, len(req.Options))
		for _, label := range req.Options {
			options = append(options, model.GroupPostOption{
				Uuid:     fmt.Sprintf("O%s", random.GetNowAndLenRandomString(11)),
				PostUuid: newPost.Uuid,
				Label:    label,
			})
		}
		return txRepos.Post.CreateOptions(options)
	})
	if err != nil {
		zap.L().Error("create post error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return buildPostListRespond(&newPost, 0), nil
}

// GetPostList 获取群组帖子列表
// 群主/管理员可见全部状态，其余访问者（成员/匿名）只见已通过的帖子
func (p *postService) GetPostList(groupId, viewerId string) ([]respond.GetPostListRespond, error) {
	role := role_enum.NOT_MEMBER
	if viewerId != "" {
		var err error
		role, err = p.resolver.ResolveRole(groupId, viewerId)
		if err != nil {
			return nil, err
		}
	} else {
		// 匿名访问也要先确认群组存在
		if _, err := p.repos.Group.FindByUuid(groupId); err != nil {
			if errorx.IsNotFound(err) {
				return nil, errorx.New(errorx.CodeNotFound, "群组不存在")
			}
			zap.L().Error("find group error", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
	}

	approvedOnly := role < role_enum.ADMIN
	posts, err := p.repos.Post.FindByGroupUuid(groupId, approvedOnly)
	if err != nil {
		zap.L().Error("find posts error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rsp := make([]respond.GetPostListRespond, 0, len(posts))
	for _, post := range posts {
		commentCnt, err := p.repos.Comment.CountByPostUuid(post.Uuid)
		if err != nil {
			zap.L().Error("count comments error", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		rsp = append(rsp, *buildPostListRespond(&post, commentCnt))
	}
	return rsp, nil
}

// visiblePost 查找帖子并检查访问者可见性
// 未通过审核的帖子仅作者和群主/管理员可见，其余访问者按不存在处理
func (p *postService) visiblePost(postId, viewerId string) (*model.GroupPost, error) {
	post, err := p.repos.Post.FindByUuid(postId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "帖子不存在")
		}
		zap.L().Error("find post error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if post.Status == post_status_enum.APPROVED {
		return post, nil
	}
	if viewerId != "" {
		if post.AuthorUuid == viewerId {
			return post, nil
		}
		role, err := p.resolver.ResolveRole(post.GroupUuid, viewerId)
		if err != nil {
			return nil, err
		}
		if role >= role_enum.ADMIN {
			return post, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "帖子不存在")
}

// GetPostDetail 获取帖子详情
// 投票帖附带各选项票数与访问者已投选项
func (p *postService) GetPostDetail(postId, viewerId string) (*respond.GetPostDetailRespond, error) {
	post, err := p.visiblePost(postId, viewerId)
	if err != nil {
		return nil, err
	}

	commentCnt, err := p.repos.Comment.CountByPostUuid(post.Uuid)
	if err != nil {
		zap.L().Error("count comments error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	detail := &respond.GetPostDetailRespond{
		Uuid:       post.Uuid,
		GroupId:    post.GroupUuid,
		AuthorId:   post.AuthorUuid,
		Type:       post.Type,
		Status:     post.Status,
		Title:      post.Title,
		Content:    post.Content,
		MediaUrl:   post.MediaUrl,
		Options:    make([]respond.PostOptionRespond, 0),
		CommentCnt: commentCnt,
		CreatedAt:  post.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if post.Type == post_type_enum.POLL {
		counts, err := p.repos.Vote.CountByOption(post.Uuid)
		if err != nil {
			zap.L().Error("count votes error", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		for _, c := range counts {
			detail.Options = append(detail.Options, respond.PostOptionRespond{
				OptionId: c.OptionUuid,
				Label:    c.Label,
				VoteCnt:  c.Count,
			})
		}
		if viewerId != "" {
			vote, err := p.repos.Vote.FindByPostAndUser(post.Uuid, viewerId)
			if err == nil {
				detail.MyVote = vote.OptionUuid
			} else if !errorx.IsNotFound(err) {
				zap.L().Error("find vote error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
		}
	}
	return detail, nil
}

// reviewPost 审核状态流转，批准/拒绝共用
// 只有待审核的帖子可以流转，已通过/已拒绝是终态
func (p *postService) reviewPost(callerId string, req request.ReviewPostRequest, target int8) error {
	role, err := p.resolver.ResolveRole(req.GroupId, callerId)
	if err != nil {
		return err
	}
	if role < role_enum.ADMIN {
		return errorx.ErrForbidden
	}

	post, err := p.repos.Post.FindByUuid(req.PostId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "帖子不存在")
		}
		zap.L().Error("find post error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if post.GroupUuid != req.GroupId {
		return errorx.New(errorx.CodeNotFound, "帖子不存在")
	}
	if post.Status != post_status_enum.PENDING {
		return errorx.New(errorx.CodeConflict, "该帖子已审核")
	}

	if err := p.repos.Post.UpdateStatus(post.Uuid, target); err != nil {
		zap.L().Error("update post status error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// ApprovePost 审核通过帖子（群主/管理员）
func (p *postService) ApprovePost(callerId string, req request.ReviewPostRequest) error {
	return p.reviewPost(callerId, req, post_status_enum.APPROVED)
}

// RejectPost 审核拒绝帖子（群主/管理员）
func (p *postService) RejectPost(callerId string, req request.ReviewPostRequest) error {
	return p.reviewPost(callerId, req, post_status_enum.REJECTED)
}

// VotePost 在投票帖上投票
// 一人一票不可改不可撤，重复投票返回冲突；
// 并发下的重复投票由 (post_uuid, user_uuid) 唯一索引兜底
func (p *postService) VotePost(userId string, req request.VotePostRequest) (*respond.VotePostRespond, error) {
	role, err := p.resolver.ResolveRole(req.GroupId, userId)
	if err != nil {
		return nil, err
	}
	if role == role_enum.NOT_MEMBER {
		return nil, errorx.ErrForbidden
	}

	post, err := p.repos.Post.FindByUuid(req.PostId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "帖子不存在")
		}
		zap.L().Error("find post error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if post.GroupUuid != req.GroupId {
		return nil, errorx.New(errorx.CodeNotFound, "帖子不存在")
	}
	if post.Type != post_type_enum.POLL {
		return nil, errorx.New(errorx.CodeInvalidParam, "该帖子不是投票帖")
	}
	if post.Status != post_status_enum.APPROVED {
		return nil, errorx.New(errorx.CodeConflict, "帖子未通过审核，不能投票")
	}

	option, err := p.repos.Post.FindOptionByUuid(req.OptionId)
	if err != nil || option.PostUuid != post.Uuid {
		if err != nil && !errorx.IsNotFound(err) {
			zap.L().Error("find option error", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		return nil, errorx.New(errorx.CodeNotFound, "投票选项不存在")
	}

	if _, err := p.repos.Vote.FindByPostAndUser(post.Uuid, userId); err == nil {
		return nil, errorx.New(errorx.CodeConflict, "已在该帖子投过票")
	} else if !errorx.IsNotFound(err) {
		zap.L().Error("find vote error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	vote := model.GroupPostVote{
		PostUuid:   post.Uuid,
		OptionUuid: option.Uuid,
		UserUuid:   userId,
	}
	if err := p.repos.Vote.Create(&vote); err != nil {
		if errorx.IsConflict(err) {
			return nil, errorx.New(errorx.CodeConflict, "已在该帖子投过票")
		}
		zap.L().Error("create vote error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	counts, err := p.repos.Vote.CountByOption(post.Uuid)
	if err != nil {
		zap.L().Error("count votes error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := &respond.VotePostRespond{
		PostId:  post.Uuid,
		Options: make([]respond.PostOptionRespond, 0, len(counts)),
	}
	for _, c := range counts {
		rsp.Options = append(rsp.Options, respond.PostOptionRespond{
			OptionId: c.OptionUuid,
			Label:    c.Label,
			VoteCnt:  c.Count,
		})
	}
	return rsp, nil
}

// CreateComment 发表评论
// 仅群成员可评论，且帖子必须对评论人可见
func (p *postService) CreateComment(userId string, req request.CreateCommentRequest) error {
	role, err := p.resolver.ResolveRole(req.GroupId, userId)
	if err != nil {
		return err
	}
	if role == role_enum.NOT_MEMBER {
		return errorx.ErrForbidden
	}

	post, err := p.visiblePost(req.PostId, userId)
	if err != nil {
		return err
	}
	if post.GroupUuid != req.GroupId {
		return errorx.New(errorx.CodeNotFound, "帖子不存在")
	}

	comment := model.GroupPostComment{
		Uuid:       fmt.Sprintf("C%s", random.GetNowAndLenRandomString(11)),
		PostUuid:   post.Uuid,
		AuthorUuid: userId,
		Content:    req.Content,
	}
	if err := p.repos.Comment.Create(&comment); err != nil {
		zap.L().Error("create comment error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// GetCommentList 获取帖子评论列表
// 公开读，按创建时间正序，带上评论人资料
func (p *postService) GetCommentList(postId string) ([]respond.GetCommentListRespond, error) {
	// 评论列表公开读，仅已通过审核的帖子可见
	if _, err := p.visiblePost(postId, ""); err != nil {
		return nil, err
	}

	comments, err := p.repos.Comment.FindByPostUuid(postId)
	if err != nil {
		zap.L().Error("find comments error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	authorUuids := make([]string, 0, len(comments))
	for _, c := range comments {
		authorUuids = append(authorUuids, c.AuthorUuid)
	}
	users, err := p.repos.User.FindByUuids(authorUuids)
	if err != nil {
		zap.L().Error("find comment authors error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	userMap := make(map[string]model.UserInfo, len(users))
	for _, u := range users {
		userMap[u.Uuid] = u
	}

	rsp := make([]respond.GetCommentListRespond, 0, len(comments))
	for _, c := range comments {
		item := respond.GetCommentListRespond{
			Uuid:      c.Uuid,
			AuthorId:  c.AuthorUuid,
			Content:   c.Content,
			CreatedAt: c.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if u, ok := userMap[c.AuthorUuid]; ok {
			item.Nickname = u.Nickname
			item.Avatar = u.Avatar
		}
		rsp = append(rsp, item)
	}
	return rsp, nil
}

// buildPostListRespond 构建帖子列表条目响应
func buildPostListRespond(post *model.GroupPost, commentCnt int64) *respond.GetPostListRespond {
	return &respond.GetPostListRespond{
		Uuid:       post.Uuid,
		GroupId:    post.GroupUuid,
		AuthorId:   post.AuthorUuid,
		Type:       post.Type,
		Status:     post.Status,
		Title:      post.Title,
		Content:    post.Content,
		MediaUrl:   post.MediaUrl,
		CommentCnt: commentCnt,
		CreatedAt:  post.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
