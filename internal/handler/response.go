package handler

import (
	"errors"
	"net/http"

	"agora_poll_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ResponseData 统一响应结构体
type ResponseData struct {
	Code int `json:"code"`           // 业务响应状态码
	Msg  any `json:"msg"`            // 提示信息
	Data any `json:"data,omitempty"` // 数据
}

// 业务错误码到 HTTP 状态码的映射
// 未列出的错误码（DB/缓存/服务繁忙）一律 500
var codeToHTTPStatus = map[int]int{
	errorx.CodeInvalidParam:    http.StatusBadRequest,
	errorx.CodeUserExist:       http.StatusConflict,
	errorx.CodeUserNotExist:    http.StatusNotFound,
	errorx.CodeInvalidPassword: http.StatusUnauthorized,
	errorx.CodeUnauthorized:    http.StatusUnauthorized,
	errorx.CodeForbidden:       http.StatusForbidden,
	errorx.CodeNotFound:        http.StatusNotFound,
	errorx.CodeConflict:        http.StatusConflict,
}

// HandleSuccess 返回成功响应
func HandleSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code": errorx.CodeSuccess,
		"msg":  "success",
		"data": data,
	})
}

// HandleError 通用错误处理方法
// 识别 errorx.CodeError 业务错误并映射对应的 HTTP 状态码，
// 其余错误记录日志后统一按服务繁忙返回
// 使用示例：
//
//	if err := svc.DoSomething(); err != nil {
//	    HandleError(c, err)
//	    return
//	}
func HandleError(c *gin.Context, err error) {
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		status, ok := codeToHTTPStatus[codeErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{
			"code": codeErr.Code,
			"msg":  codeErr.Msg,
			"data": nil,
		})
		return
	}

	// 系统错误或未知错误
	zap.L().Error("system error",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"code": errorx.ErrServerBusy.Code,
		"msg":  errorx.ErrServerBusy.Msg,
		"data": nil,
	})
}

// HandleParamError 处理参数绑定错误（带 validator 翻译支持）
// 自动识别 validator.ValidationErrors 类型并进行翻译
func HandleParamError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		// 翻译后去除结构体名前缀
		translatedErrs := RemoveTopStruct(validationErrs.Translate(Trans))
		c.JSON(http.StatusBadRequest, gin.H{
			"code": errorx.ErrInvalidParam.Code,
			"msg":  translatedErrs,
			"data": nil,
		})
		return
	}

	// 非 validator 错误（如 JSON 格式错误）
	zap.L().Error("param bind error", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{
		"code": errorx.ErrInvalidParam.Code,
		"msg":  errorx.ErrInvalidParam.Msg,
		"data": nil,
	})
}

// currentUserId 从上下文取出认证中间件写入的用户ID
// JWTAuth 保护的接口必有值；OptionalAuth 的接口匿名访问时为空串
func currentUserId(c *gin.Context) string {
	return c.GetString("user_id")
}
