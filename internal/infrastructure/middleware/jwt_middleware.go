package middleware

import (
	"net/http"
	"strings"

	"agora_poll_server/pkg/errorx"
	"agora_poll_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

// parseBearerToken 从 Authorization Header 中解析 Access Token
// 返回 user_id；任一校验失败返回空串和失败原因
func parseBearerToken(c *gin.Context) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", "请先登录"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "Token 格式错误，请使用 Bearer Token"
	}

	claims, err := jwt.ParseToken(parts[1])
	if err != nil {
		return "", "Token 已过期或无效，请重新登录"
	}
	if claims.Subject != "access_token" {
		return "", "请使用 Access Token 访问此接口"
	}
	return claims.UserID, ""
}

// JWTAuth JWT 认证中间件
// 验证 Access Token 并将 user_id 存入上下文，失败直接拒绝请求
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, failMsg := parseBearerToken(c)
		if userId == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  failMsg,
			})
			return
		}
		c.Set("user_id", userId)
		c.Next()
	}
}

// OptionalAuth 可选认证中间件
// 用于公开读接口：携带有效 Token 时解析出 user_id 供可见性判断使用，
// 未携带或 Token 无效时按匿名访问放行，不写 user_id
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userId, _ := parseBearerToken(c); userId != "" {
			c.Set("user_id", userId)
		}
		c.Next()
	}
}
