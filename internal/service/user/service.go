// Package user 提供用户业务逻辑
// 处理注册、登录、令牌刷新与个人资料管理
package user

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"agora_poll_server/internal/dao/postgres/repository"
	myredis "agora_poll_server/internal/dao/redis"
	"agora_poll_server/internal/dto/request"
	"agora_poll_server/internal/dto/respond"
	"agora_poll_server/internal/model"
	"agora_poll_server/internal/service/auth"
	"agora_poll_server/pkg/constants"
	"agora_poll_server/pkg/errorx"
	"agora_poll_server/pkg/util/jwt"
	"agora_poll_server/pkg/util/random"
)

// userService 用户业务逻辑实现
// 通过构造函数注入 Repository 和认证服务依赖
type userService struct {
	repos   *repository.Repositories
	authSvc *auth.Service
}

// NewUserService 构造函数，注入所有依赖
func NewUserService(repos *repository.Repositories, cache myredis.CacheService) *userService {
	return &userService{
		repos:   repos,
		authSvc: auth.NewAuthService(cache),
	}
}

// Register 用户注册
// 手机号和邮箱至少填写一项；注册成功后直接签发令牌对
func (u *userService) Register(req request.RegisterRequest) (*respond.LoginRespond, error) {
	if req.Telephone == "" && req.Email == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "手机号和邮箱至少填写一项")
	}

	// 联系方式查重
	if req.Telephone != "" {
		if _, err := u.repos.User.FindByTelephone(req.Telephone); err == nil {
			return nil, errorx.New(errorx.CodeUserExist, "该手机号已注册")
		} else if !errorx.IsNotFound(err) {
			zap.L().Error("find user by telephone error", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
	}
	if req.Email != "" {
		if _, err := u.repos.User.FindByEmail(req.Email); err == nil {
			return nil, errorx.New(errorx.CodeUserExist, "该邮箱已注册")
		} else if !errorx.IsNotFound(err) {
			zap.L().Error("find user by email error", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
	}

	newUser := model.UserInfo{
		Uuid:        fmt.Sprintf("U%s", random.GetNowAndLenRandomString(11)),
		Nickname:    req.Nickname,
		Telephone:   req.Telephone,
		Email:       req.Email,
		RawPassword: req.Password, // BeforeSave Hook 中加密
	}
	if err := u.repos.User.Create(&newUser); err != nil {
		// 并发注册同一联系方式时兜底为"已存在"
		if errorx.IsConflict(err) {
			return nil, errorx.New(errorx.CodeUserExist, "该联系方式已注册")
		}
		zap.L().Error("create user error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return u.issueTokens(&newUser)
}

// Login 密码登录
// account 可以是手机号或邮箱
func (u *userService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	userInfo, err := u.repos.User.FindByTelephone(req.Account)
	if err != nil {
		if !errorx.IsNotFound(err) {
			zap.L().Error("find user by telephone error", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		userInfo, err = u.repos.User.FindByEmail(req.Account)
		if err != nil {
			if errorx.IsNotFound(err) {
				return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
			}
			zap.L().Error("find user by email error", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
	}

	if !userInfo.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码错误")
	}

	return u.issueTokens(userInfo)
}

// issueTokens 签发令牌对并记录 TokenID
func (u *userService) issueTokens(userInfo *model.UserInfo) (*respond.LoginRespond, error) {
	accessToken, err := jwt.GenerateAccessToken(userInfo.Uuid)
	if err != nil {
		zap.L().Error("generate access token error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(userInfo.Uuid)
	if err != nil {
		zap.L().Error("generate refresh token error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	ttl := time.Duration(constants.REFRESH_TOKEN_EXPIRY_HOURS) * time.Hour
	if err := u.authSvc.StoreTokenID(userInfo.Uuid, tokenID, ttl); err != nil {
		zap.L().Error("store token id error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.LoginRespond{
		Uuid:         userInfo.Uuid,
		Nickname:     userInfo.Nickname,
		Avatar:       userInfo.Avatar,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken 使用 Refresh Token 换取新令牌对
// TokenID 必须与 Redis 中记录的一致（单点互踢）；刷新后轮换 TokenID
func (u *userService) RefreshToken(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error) {
	claims, err := jwt.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, errorx.New(errorx.CodeUnauthorized, "Refresh Token 无效或已过期")
	}
	if claims.Subject != "refresh_token" || claims.TokenID == "" {
		return nil, errorx.New(errorx.CodeUnauthorized, "Token 类型错误")
	}

	valid, err := u.authSvc.ValidateTokenID(claims.UserID, claims.TokenID)
	if err != nil {
		zap.L().Error("validate token id error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !valid {
		return nil, errorx.New(errorx.CodeUnauthorized, "Refresh Token 已失效，请重新登录")
	}

	// 用户可能已注销
	if _, err := u.repos.User.FindByUuid(claims.UserID); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("find user error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	accessToken, err := jwt.GenerateAccessToken(claims.UserID)
	if err != nil {
		zap.L().Error("generate access token error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(claims.UserID)
	if err != nil {
		zap.L().Error("generate refresh token error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	ttl := time.Duration(constants.REFRESH_TOKEN_EXPIRY_HOURS) * time.Hour
	if err := u.authSvc.StoreTokenID(claims.UserID, tokenID, ttl); err != nil {
		zap.L().Error("store token id error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.RefreshTokenRespond{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetUserInfo 获取用户信息
func (u *userService) GetUserInfo(uuid string) (*respond.GetUserInfoRespond, error) {
	userInfo, err := u.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("find user error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return buildUserInfoRespond(userInfo), nil
}

// UpdateUserInfo 更新当前用户资料
// 只更新请求中提供的字段
func (u *userService) UpdateUserInfo(userId string, req request.UpdateUserInfoRequest) (*respond.GetUserInfoRespond, error) {
	userInfo, err := u.repos.User.FindByUuid(userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("find user error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	if req.Nickname != "" {
		userInfo.Nickname = req.Nickname
	}
	if req.Avatar != "" {
		userInfo.Avatar = req.Avatar
	}
	if req.Signature != "" {
		userInfo.Signature = req.Signature
	}
	if err := u.repos.User.Update(userInfo); err != nil {
		zap.L().Error("update user error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return buildUserInfoRespond(userInfo), nil
}

// DeleteAccount 注销账号
// 软删除用户记录，物理删除其群成员关系，并作废 Refresh Token
func (u *userService) DeleteAccount(userId string) error {
	err := u.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.User.SoftDeleteByUuid(userId); err != nil {
			return err
		}
		return txRepos.GroupMember.DeleteByUserUuid(userId)
	})
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("delete account error", zap.Error(err))
		return errorx.ErrServerBusy
	}

	if err := u.authSvc.DropTokenID(userId); err != nil {
		zap.L().Error("drop token id error", zap.Error(err))
	}
	return nil
}

// buildUserInfoRespond 构建用户信息响应
func buildUserInfoRespond(userInfo *model.UserInfo) *respond.GetUserInfoRespond {
	return &respond.GetUserInfoRespond{
		Uuid:      userInfo.Uuid,
		Nickname:  userInfo.Nickname,
		Telephone: userInfo.Telephone,
		Email:     userInfo.Email,
		Avatar:    userInfo.Avatar,
		Signature: userInfo.Signature,
		CreatedAt: userInfo.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
