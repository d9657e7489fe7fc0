// Package auth 提供认证相关的业务逻辑
// 处理 Refresh Token 的 TokenID 存取与验证
package auth

import (
	"context"
	"time"

	myredis "agora_poll_server/internal/dao/redis"
)

// Service 认证服务实现
type Service struct {
	cache myredis.CacheService // 缓存服务（依赖倒置）
}

// NewAuthService 创建认证服务实例
// cache: 缓存服务接口实例
func NewAuthService(cache myredis.CacheService) *Service {
	return &Service{
		cache: cache,
	}
}

// StoreTokenID 记录用户当前有效的 Refresh TokenID
// 每次登录/刷新都会覆盖旧值，实现单点互踢：旧设备的 Refresh Token 立即失效
func (s *Service) StoreTokenID(userID, tokenID string, ttl time.Duration) error {
	return s.cache.Set(context.Background(), "user_token:"+userID, tokenID, ttl)
}

// ValidateTokenID 验证用户的 Token ID 是否有效
// userID: 用户ID
// tokenID: 需要验证的 Token ID
// 返回: 是否有效, 错误信息
func (s *Service) ValidateTokenID(userID, tokenID string) (bool, error) {
	validTokenID, err := s.cache.Get(context.Background(), "user_token:"+userID)
	if err != nil {
		return false, err
	}
	if validTokenID == "" {
		return false, nil
	}
	return tokenID == validTokenID, nil
}

// DropTokenID 清除用户的 TokenID 记录
// 注销账号时调用，使尚未过期的 Refresh Token 失效
func (s *Service) DropTokenID(userID string) error {
	return s.cache.Delete(context.Background(), "user_token:"+userID)
}
