// Package handler 提供 HTTP 请求处理器
// 本文件处理群帖子相关的 API 请求（发布、审核、投票、评论）
package handler

import (
	"agora_poll_server/internal/dto/request"
	"agora_poll_server/internal/service"

	"github.com/gin-gonic/gin"
)

// PostHandler 群帖子请求处理器
type PostHandler struct {
	postSvc service.PostService
}

// NewPostHandler 创建群帖子处理器实例
// postSvc: 帖子服务接口
func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

// CreatePost 发布帖子
// POST /post/createPost
// 请求体: request.CreatePostRequest
// 响应: respond.GetPostListRespond（含服务端计算出的审核状态）
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req request.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.postSvc.CreatePost(currentUserId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetPostList 获取群组帖子列表（公开，可选认证）
// GET /post/list/:groupUuid
// 响应: []respond.GetPostListRespond
func (h *PostHandler) GetPostList(c *gin.Context) {
	data, err := h.postSvc.GetPostList(c.Param("groupUuid"), currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetPostDetail 获取帖子详情（公开，可选认证）
// GET /post/detail/:uuid
// 响应: respond.GetPostDetailRespond
func (h *PostHandler) GetPostDetail(c *gin.Context) {
	data, err := h.postSvc.GetPostDetail(c.Param("uuid"), currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ApprovePost 审核通过帖子（群主/管理员）
// POST /post/approvePost
// 请求体: request.ReviewPostRequest
// 响应: nil
func (h *PostHandler) ApprovePost(c *gin.Context) {
	var req request.ReviewPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.postSvc.ApprovePost(currentUserId(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RejectPost 审核拒绝帖子（群主/管理员）
// POST /post/rejectPost
// 请求体: request.ReviewPostRequest
// 响应: nil
func (h *PostHandler) RejectPost(c *gin.Context) {
	var req request.ReviewPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.postSvc.RejectPost(currentUserId(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// VotePost 投票帖投票
// POST /post/votePost
// 请求体: request.VotePostRequest
// 响应: respond.VotePostRespond（投票后各选项票数）
func (h *PostHandler) VotePost(c *gin.Context) {
	var req request.VotePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.postSvc.VotePost(currentUserId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CreateComment 发表评论
// POST /post/createComment
// 请求体: request.CreateCommentRequest
// 响应: nil
func (h *PostHandler) CreateComment(c *gin.Context) {
	var req request.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.postSvc.CreateComment(currentUserId(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetCommentList 获取帖子评论列表（公开）
// GET /post/commentList/:uuid
// 响应: []respond.GetCommentListRespond
func (h *PostHandler) GetCommentList(c *gin.Context) {
	data, err := h.postSvc.GetCommentList(c.Param("uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
