// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"agora_poll_server/internal/dao/postgres/repository"
	myredis "agora_poll_server/internal/dao/redis"
	"agora_poll_server/internal/service/group"
	"agora_poll_server/internal/service/poll"
	"agora_poll_server/internal/service/post"
	"agora_poll_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过此结构访问各个 Service
type Services struct {
	User  UserService  // 用户 Service
	Group GroupService // 群组 Service
	Post  PostService  // 群帖子 Service
	Poll  PollService  // 独立投票 Service
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 接收 Repository 聚合实例和缓存服务
//  2. 创建各个 Service 实例，注入依赖
//  3. 返回 Services 聚合
//
// repos: Repository 层聚合实例
// cache: 异步缓存服务实例
// 返回: Services 聚合指针
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService) *Services {
	userSvc := user.NewUserService(repos, cache)
	groupSvc := group.NewGroupService(repos, cache)
	// 帖子 Service 复用群组 Service 的角色解析
	postSvc := post.NewPostService(repos, groupSvc)
	pollSvc := poll.NewPollService(repos, cache)

	return &Services{
		User:  userSvc,
		Group: groupSvc,
		Post:  postSvc,
		Poll:  pollSvc,
	}
}
