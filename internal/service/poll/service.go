// Package poll 提供独立投票业务逻辑
// 群组之外的单题投票：创建、浏览、按多选开关投票
package poll

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"agora_poll_server/internal/dao/postgres/repository"
	myredis "agora_poll_server/internal/dao/redis"
	"agora_poll_server/internal/dto/request"
	"agora_poll_server/internal/dto/respond"
	"agora_poll_server/internal/model"
	"agora_poll_server/pkg/constants"
	"agora_poll_server/pkg/errorx"
	"agora_poll_server/pkg/util/random"
)

// 投票结果缓存有效期
const pollResultCacheTTL = 3 * time.Minute

// 动态流返回的投票数量上限
const pollFeedLimit = 50

// pollService 独立投票业务逻辑实现
type pollService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewPollService 构造函数，注入所有依赖
func NewPollService(repos *repository.Repositories, cacheService myredis.AsyncCacheService) *pollService {
	return &pollService{
		repos: repos,
		cache: cacheService,
	}
}

// CreatePoll 创建独立投票
// 投票与选项在同一事务内写入，选项不足两个由参数校验挡下
func (p *pollService) CreatePoll(authorId string, req request.CreatePollRequest) (*respond.GetPollDetailRespond, error) {
	if len(req.Options) < constants.MIN_POLL_OPTION_CNT {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "投票至少需要 %d 个选项", constants.MIN_POLL_OPTION_CNT)
	}

	poll := model.PollInfo{
		Uuid:        fmt.Sprintf("Q%s", random.GetNowAndLenRandomString(11)),
		AuthorUuid:  authorId,
		Question:    req.Question,
		MultiSelect: req.MultiSelect,
	}
	options := make([]model.PollOption, 0, len(req.Options))
	for _, label := range req.Options {
		options = append(options, model.PollOption{
			Uuid:     fmt.Sprintf("O%s", random.GetNowAndLenRandomString(11)),
			PollUuid: poll.Uuid,
			Label:    label,
		})
	}

	err := p.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Poll.Create(&poll); err != nil {
			return err
		}
		return txRepos.Poll.CreateOptions(options)
	})
	if err != nil {
		zap.L().Error("create poll error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	detail := &respond.GetPollDetailRespond{
		Uuid:        poll.Uuid,
		AuthorId:    poll.AuthorUuid,
		Question:    poll.Question,
		MultiSelect: poll.MultiSelect,
		Options:     make([]respond.PollOptionRespond, 0, len(options)),
		MyVotes:     make([]string, 0),
		CreatedAt:   poll.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	for _, opt := range options {
		detail.Options = append(detail.Options, respond.PollOptionRespond{
			OptionId: opt.Uuid,
			Label:    opt.Label,
		})
	}
	return detail, nil
}

// GetPollList 获取最新投票列表（动态流，公开）
func (p *pollService) GetPollList() ([]respond.GetPollListRespond, error) {
	polls, err := p.repos.Poll.FindRecent(pollFeedLimit)
	if err != nil {
		zap.L().Error("find polls error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := make([]respond.GetPollListRespond, 0, len(polls))
	for _, poll := range polls {
		rsp = append(rsp, respond.GetPollListRespond{
			Uuid:        poll.Uuid,
			AuthorId:    poll.AuthorUuid,
			Question:    poll.Question,
			MultiSelect: poll.MultiSelect,
			CreatedAt:   poll.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return rsp, nil
}

// GetPollDetail 获取投票详情
// 选项票数走缓存（Cache-Aside，投票时失效），访问者投票记录实时查询
func (p *pollService) GetPollDetail(pollId, viewerId string) (*respond.GetPollDetailRespond, error) {
	poll, err := p.repos.Poll.FindByUuid(pollId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "投票不存在")
		}
		zap.L().Error("find poll error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	counts, err := p.loadOptionCounts(pollId)
	if err != nil {
		return nil, err
	}

	detail := &respond.GetPollDetailRespond{
		Uuid:        poll.Uuid,
		AuthorId:    poll.AuthorUuid,
		Question:    poll.Question,
		MultiSelect: poll.MultiSelect,
		Options:     counts,
		MyVotes:     make([]string, 0),
		CreatedAt:   poll.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if viewerId != "" {
		votes, err := p.repos.Poll.FindVotesByPollAndUser(pollId, viewerId)
		if err != nil {
			zap.L().Error("find poll votes error", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		for _, v := range votes {
			detail.MyVotes = append(detail.MyVotes, v.OptionUuid)
		}
	}
	return detail, nil
}

// loadOptionCounts 加载各选项票数，优先读缓存
func (p *pollService) loadOptionCounts(pollId string) ([]respond.PollOptionRespond, error) {
	cacheKey := "poll_result_" + pollId

	rspString, err := p.cache.Get(context.Background(), cacheKey)
	if err == nil && rspString != "" {
		var counts []respond.PollOptionRespond
		if err := json.Unmarshal([]byte(rspString), &counts); err == nil {
			return counts, nil
		}
		zap.L().Error("Unmarshal poll result cache error", zap.Error(err))
	} else if err != nil {
		zap.L().Error("Redis get error", zap.Error(err))
	}

	rawCounts, err := p.repos.Poll.CountByOption(pollId)
	if err != nil {
		zap.L().Error("count poll votes error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	counts := make([]respond.PollOptionRespond, 0, len(rawCounts))
	for _, c := range rawCounts {
		counts = append(counts, respond.PollOptionRespond{
			OptionId: c.OptionUuid,
			Label:    c.Label,
			VoteCnt:  c.Count,
		})
	}

	if data, err := json.Marshal(counts); err == nil {
		p.cache.SubmitTask(func() {
			if err := p.cache.Set(context.Background(), cacheKey, string(data), pollResultCacheTTL); err != nil {
				zap.L().Error("set poll result cache error", zap.Error(err))
			}
		})
	}
	return counts, nil
}

// VotePoll 投票
// multi_select 关闭时只允许选择一个选项，且同一投票只能投一次；
// multi_select 开启时可一次或分次勾选多个选项，同一选项不可重复投。
// 并发重复投票由 (option_uuid, user_uuid) 唯一索引兜底
func (p *pollService) VotePoll(userId string, req request.VotePollRequest) (*respond.GetPollDetailRespond, error) {
	poll, err := p.repos.Poll.FindByUuid(req.PollId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "投票不存在")
		}
		zap.L().Error("find poll error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	if poll.MultiSelect == 0 && len(req.OptionIds) > 1 {
		return nil, errorx.New(errorx.CodeInvalidParam, "该投票不允许多选")
	}

	// 选项必须全部属于该投票
	optionSet := make(map[string]struct{}, len(req.OptionIds))
	for _, optionId := range req.OptionIds {
		if _, dup := optionSet[optionId]; dup {
			return nil, errorx.New(errorx.CodeInvalidParam, "选项重复")
		}
		optionSet[optionId] = struct{}{}
		option, err := p.repos.Poll.FindOptionByUuid(optionId)
		if err != nil || option.PollUuid != poll.Uuid {
			if err != nil && !errorx.IsNotFound(err) {
				zap.L().Error("find poll option error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			return nil, errorx.New(errorx.CodeNotFound, "投票选项不存在")
		}
	}

	// 跨选项存在性检查：单选投票一人一票，多选投票同一选项不可重复
	existing, err := p.repos.Poll.FindVotesByPollAndUser(poll.Uuid, userId)
	if err != nil {
		zap.L().Error("find poll votes error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if poll.MultiSelect == 0 && len(existing) > 0 {
		return nil, errorx.New(errorx.CodeConflict, "已在该投票投过票")
	}
	for _, v := range existing {
		if _, picked := optionSet[v.OptionUuid]; picked {
			return nil, errorx.New(errorx.CodeConflict, "已投过该选项")
		}
	}

	err = p.repos.Transaction(func(txRepos *repository.Repositories) error {
		for _, optionId := range req.OptionIds {
			vote := model.PollVote{
				PollUuid:   poll.Uuid,
				OptionUuid: optionId,
				UserUuid:   userId,
			}
			if err := txRepos.Poll.CreateVote(&vote); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errorx.IsConflict(err) {
			return nil, errorx.New(errorx.CodeConflict, "已投过该选项")
		}
		zap.L().Error("create poll vote error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 同步失效缓存，保证本次返回的票数包含刚落库的票
	if err := p.cache.Delete(context.Background(), "poll_result_"+poll.Uuid); err != nil {
		zap.L().Error("invalidate poll result cache error", zap.Error(err))
	}
	return p.GetPollDetail(poll.Uuid, userId)
}
