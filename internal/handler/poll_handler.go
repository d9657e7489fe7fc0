// Package handler 提供 HTTP 请求处理器
// 本文件处理独立投票相关的 API 请求
package handler

import (
	"agora_poll_server/internal/dto/request"
	"agora_poll_server/internal/service"

	"github.com/gin-gonic/gin"
)

// PollHandler 独立投票请求处理器
type PollHandler struct {
	pollSvc service.PollService
}

// NewPollHandler 创建独立投票处理器实例
// pollSvc: 投票服务接口
func NewPollHandler(pollSvc service.PollService) *PollHandler {
	return &PollHandler{pollSvc: pollSvc}
}

// CreatePoll 创建独立投票
// POST /poll/createPoll
// 请求体: request.CreatePollRequest
// 响应: respond.GetPollDetailRespond
func (h *PollHandler) CreatePoll(c *gin.Context) {
	var req request.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.pollSvc.CreatePoll(currentUserId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetPollList 获取最新投票列表（公开）
// GET /poll/list
// 响应: []respond.GetPollListRespond
func (h *PollHandler) GetPollList(c *gin.Context) {
	data, err := h.pollSvc.GetPollList()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetPollDetail 获取投票详情（公开，可选认证）
// GET /poll/detail/:uuid
// 响应: respond.GetPollDetailRespond
func (h *PollHandler) GetPollDetail(c *gin.Context) {
	data, err := h.pollSvc.GetPollDetail(c.Param("uuid"), currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// VotePoll 投票
// POST /poll/votePoll
// 请求体: request.VotePollRequest
// 响应: respond.GetPollDetailRespond（投票后的最新详情）
func (h *PollHandler) VotePoll(c *gin.Context) {
	var req request.VotePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.pollSvc.VotePoll(currentUserId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
