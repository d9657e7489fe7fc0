package user

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"agora_poll_server/internal/dao/postgres/repository"
	"agora_poll_server/internal/dto/request"
	"agora_poll_server/internal/model"
	"agora_poll_server/pkg/errorx"
	"agora_poll_server/pkg/util/jwt"
)

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key], nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeCache) DeleteByPattern(ctx context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			delete(f.data, key)
		}
	}
	return nil
}

func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.UserInfo{},
		&model.GroupInfo{},
		&model.GroupMember{},
		&model.JoinRequest{},
	)
	if err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return repository.NewRepositories(db)
}

func newTestUserService(t *testing.T) *userService {
	t.Helper()
	jwt.Init("unit-test-secret", 30, 168)
	return NewUserService(newTestRepos(t), newFakeCache())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestUserService(t)

	reg, err := svc.Register(request.RegisterRequest{
		Nickname:  "小明",
		Password:  "abc123456",
		Telephone: "13800138000",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.Uuid == "" || reg.AccessToken == "" || reg.RefreshToken == "" {
		t.Fatalf("register respond incomplete: %+v", reg)
	}

	// 手机号已注册
	_, err = svc.Register(request.RegisterRequest{
		Nickname:  "小红",
		Password:  "abc123456",
		Telephone: "13800138000",
	})
	if errorx.GetCode(err) != errorx.CodeUserExist {
		t.Fatalf("duplicate telephone err code = %d, want CodeUserExist", errorx.GetCode(err))
	}

	login, err := svc.Login(request.LoginRequest{
		Account:  "13800138000",
		Password: "abc123456",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.Uuid != reg.Uuid {
		t.Fatalf("login uuid = %s, want %s", login.Uuid, reg.Uuid)
	}

	// 密码错误
	_, err = svc.Login(request.LoginRequest{
		Account:  "13800138000",
		Password: "wrong-password",
	})
	if errorx.GetCode(err) != errorx.CodeInvalidPassword {
		t.Fatalf("wrong password err code = %d, want CodeInvalidPassword", errorx.GetCode(err))
	}

	// 账号不存在
	_, err = svc.Login(request.LoginRequest{
		Account:  "nobody@example.com",
		Password: "abc123456",
	})
	if errorx.GetCode(err) != errorx.CodeUserNotExist {
		t.Fatalf("unknown account err code = %d, want CodeUserNotExist", errorx.GetCode(err))
	}
}

func TestRegisterRequiresContact(t *testing.T) {
	svc := newTestUserService(t)

	// 手机号和邮箱至少填一项
	_, err := svc.Register(request.RegisterRequest{
		Nickname: "无联系方式",
		Password: "abc123456",
	})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("no contact err code = %d, want CodeInvalidParam", errorx.GetCode(err))
	}

	// 仅邮箱可注册并登录
	reg, err := svc.Register(request.RegisterRequest{
		Nickname: "邮箱用户",
		Password: "abc123456",
		Email:    "user@example.com",
	})
	if err != nil {
		t.Fatalf("register by email: %v", err)
	}
	login, err := svc.Login(request.LoginRequest{
		Account:  "user@example.com",
		Password: "abc123456",
	})
	if err != nil {
		t.Fatalf("login by email: %v", err)
	}
	if login.Uuid != reg.Uuid {
		t.Fatalf("login uuid = %s, want %s", login.Uuid, reg.Uuid)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	svc := newTestUserService(t)

	reg, err := svc.Register(request.RegisterRequest{
		Nickname:  "小明",
		Password:  "abc123456",
		Telephone: "13800138000",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	refreshed, err := svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: reg.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatalf("refresh respond incomplete: %+v", refreshed)
	}

	// 旋转后旧 refresh token 作废（单会话）
	_, err = svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: reg.RefreshToken})
	if errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("stale refresh err code = %d, want CodeUnauthorized", errorx.GetCode(err))
	}

	// access token 不能当作 refresh token 用
	_, err = svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: refreshed.AccessToken})
	if errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("access-as-refresh err code = %d, want CodeUnauthorized", errorx.GetCode(err))
	}
}

func TestUpdateUserInfo(t *testing.T) {
	svc := newTestUserService(t)

	reg, _ := svc.Register(request.RegisterRequest{
		Nickname:  "旧昵称",
		Password:  "abc123456",
		Telephone: "13800138000",
	})

	info, err := svc.UpdateUserInfo(reg.Uuid, request.UpdateUserInfoRequest{
		Nickname:  "新昵称",
		Signature: "个性签名",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if info.Nickname != "新昵称" || info.Signature != "个性签名" {
		t.Fatalf("updated info = %+v", info)
	}

	// 空字段不覆盖
	info, err = svc.UpdateUserInfo(reg.Uuid, request.UpdateUserInfoRequest{Avatar: "http://cdn/a.png"})
	if err != nil {
		t.Fatalf("update avatar: %v", err)
	}
	if info.Nickname != "新昵称" {
		t.Fatalf("nickname overwritten: %+v", info)
	}
}

func TestDeleteAccount(t *testing.T) {
	svc := newTestUserService(t)

	reg, _ := svc.Register(request.RegisterRequest{
		Nickname:  "注销用户",
		Password:  "abc123456",
		Telephone: "13800138000",
	})

	if err := svc.DeleteAccount(reg.Uuid); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	_, err := svc.GetUserInfo(reg.Uuid)
	if errorx.GetCode(err) != errorx.CodeUserNotExist && !errorx.IsNotFound(err) {
		t.Fatalf("deleted user lookup err = %v, want not exist", err)
	}

	// 注销后 refresh token 作废
	_, err = svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: reg.RefreshToken})
	if errorx.GetCode(err) != errorx.CodeUnauthorized && errorx.GetCode(err) != errorx.CodeUserNotExist {
		t.Fatalf("refresh after delete err code = %d", errorx.GetCode(err))
	}
}
