// Package postgres 提供数据访问层的初始化和数据库实例管理
// 负责建立 PostgreSQL 连接、自动迁移表结构、初始化 Repository 层
package postgres

import (
	"fmt"

	"agora_poll_server/internal/config"               // 配置管理
	"agora_poll_server/internal/dao/postgres/repository" // Repository 层
	"agora_poll_server/internal/model"                // 数据模型

	"go.uber.org/zap"         // 日志库
	pgdriver "gorm.io/driver/postgres" // GORM PostgreSQL 驱动
	"gorm.io/gorm"            // GORM ORM 框架
)

// Init 初始化数据库连接并返回 Repository 层实例
// 执行步骤：
//  1. 从配置读取 PostgreSQL 连接信息
//  2. 构建 DSN（Data Source Name）连接字符串
//  3. 使用 GORM 建立数据库连接
//  4. 执行 AutoMigrate 自动迁移表结构
//  5. 创建并返回 Repository 实例
func Init(conf *config.Config) *repository.Repositories {
	// 构建 PostgreSQL DSN 连接字符串
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		conf.PostgresConfig.Host,         // 主机地址
		conf.PostgresConfig.Port,         // 端口
		conf.PostgresConfig.User,         // 用户名
		conf.PostgresConfig.Password,     // 密码
		conf.PostgresConfig.DatabaseName, // 数据库名
		conf.PostgresConfig.SSLMode,      // SSL 模式
	)

	// 使用 GORM 打开数据库连接
	// TranslateError: 将驱动错误翻译为 gorm 统一错误，
	// 唯一索引冲突会以 gorm.ErrDuplicatedKey 暴露，供 Repository 层识别为业务冲突
	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		// 连接失败，记录致命错误并退出程序
		zap.L().Fatal(err.Error())
	}

	// AutoMigrate 自动迁移表结构
	// 如果表不存在则创建，如果字段变更则更新结构
	// 注意：不会删除已有字段或数据
	err = db.AutoMigrate(
		&model.UserInfo{},         // 用户信息表
		&model.GroupInfo{},        // 群组信息表
		&model.GroupMember{},      // 群成员表
		&model.JoinRequest{},      // 入群申请表
		&model.GroupPost{},        // 群帖子表
		&model.GroupPostOption{},  // 投票帖选项表
		&model.GroupPostVote{},    // 投票帖投票表
		&model.GroupPostComment{}, // 帖子评论表
		&model.PollInfo{},         // 独立投票表
		&model.PollOption{},       // 独立投票选项表
		&model.PollVote{},         // 独立投票记录表
	)
	if err != nil {
		// 迁移失败，记录致命错误并退出程序
		zap.L().Fatal(err.Error())
	}

	// 创建并返回 Repository 实例集合
	return repository.NewRepositories(db)
}
