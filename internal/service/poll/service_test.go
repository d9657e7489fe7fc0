package poll

import (
	"context"
	"fmt"
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
	"agora_poll_server/pkg/util/random"
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

func (f *fakeCache) SubmitTask(action func()) {
	action()
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
		&model.PollInfo{},
		&model.PollOption{},
		&model.PollVote{},
	)
	if err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return repository.NewRepositories(db)
}

func createTestUser(t *testing.T, repos *repository.Repositories, nickname string) string {
	t.Helper()
	user := model.UserInfo{
		Uuid:        fmt.Sprintf("U%s", random.GetNowAndLenRandomString(11)),
		Nickname:    nickname,
		Telephone:   fmt.Sprintf("1%010d", random.GetRandomInt(10)),
		RawPassword: "test123456",
	}
	if err := repos.User.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user.Uuid
}

func newTestPollService(t *testing.T) (*pollService, *repository.Repositories) {
	t.Helper()
	repos := newTestRepos(t)
	return NewPollService(repos, newFakeCache()), repos
}

func TestCreatePoll(t *testing.T) {
	svc, repos := newTestPollService(t)
	authorId := createTestUser(t, repos, "author")

	detail, err := svc.CreatePoll(authorId, request.CreatePollRequest{
		Question: "周末去哪",
		Options:  []string{"爬山", "看电影"},
	})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	if len(detail.Options) != 2 {
		t.Fatalf("options = %d, want 2", len(detail.Options))
	}
	for _, opt := range detail.Options {
		if opt.VoteCnt != 0 {
			t.Fatalf("fresh option vote_cnt = %d, want 0", opt.VoteCnt)
		}
	}

	// 少于两个选项拒绝
	_, err = svc.CreatePoll(authorId, request.CreatePollRequest{
		Question: "无效",
		Options:  []string{"独木"},
	})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("single-option err code = %d, want CodeInvalidParam", errorx.GetCode(err))
	}
}

func TestVotePollSingleSelect(t *testing.T) {
	svc, repos := newTestPollService(t)
	authorId := createTestUser(t, repos, "author")
	voterId := createTestUser(t, repos, "voter")

	detail, _ := svc.CreatePoll(authorId, request.CreatePollRequest{
		Question: "单选投票",
		Options:  []string{"A", "B"},
	})
	optionA := detail.Options[0].OptionId
	optionB := detail.Options[1].OptionId

	// 单选投票不允许一次提交多个选项
	_, err := svc.VotePoll(voterId, request.VotePollRequest{
		PollId:    detail.Uuid,
		OptionIds: []string{optionA, optionB},
	})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("multi option on single-select err code = %d, want CodeInvalidParam", errorx.GetCode(err))
	}

	result, err := svc.VotePoll(voterId, request.VotePollRequest{
		PollId:    detail.Uuid,
		OptionIds: []string{optionA},
	})
	if err != nil {
		t.Fatalf("vote: %v", err)
	}
	counts := make(map[string]int64)
	for _, opt := range result.Options {
		counts[opt.OptionId] = opt.VoteCnt
	}
	if counts[optionA] != 1 || counts[optionB] != 0 {
		t.Fatalf("counts = %v, want A=1 B=0", counts)
	}
	if len(result.MyVotes) != 1 || result.MyVotes[0] != optionA {
		t.Fatalf("my_votes = %v, want [%s]", result.MyVotes, optionA)
	}

	// 一人一票，改投也算重复
	_, err = svc.VotePoll(voterId, request.VotePollRequest{
		PollId:    detail.Uuid,
		OptionIds: []string{optionB},
	})
	if errorx.GetCode(err) != errorx.CodeConflict {
		t.Fatalf("second vote err code = %d, want CodeConflict", errorx.GetCode(err))
	}
}

func TestVotePollMultiSelect(t *testing.T) {
	svc, repos := newTestPollService(t)
	authorId := createTestUser(t, repos, "author")
	voterId := createTestUser(t, repos, "voter")

	detail, _ := svc.CreatePoll(authorId, request.CreatePollRequest{
		Question:    "多选投票",
		MultiSelect: 1,
		Options:     []string{"A", "B", "C"},
	})
	optionA := detail.Options[0].OptionId
	optionB := detail.Options[1].OptionId
	optionC := detail.Options[2].OptionId

	// 同一请求内重复选项拒绝
	_, err := svc.VotePoll(voterId, request.VotePollRequest{
		PollId:    detail.Uuid,
		OptionIds: []string{optionA, optionA},
	})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("duplicate in request err code = %d, want CodeInvalidParam", errorx.GetCode(err))
	}

	result, err := svc.VotePoll(voterId, request.VotePollRequest{
		PollId:    detail.Uuid,
		OptionIds: []string{optionA, optionB},
	})
	if err != nil {
		t.Fatalf("vote: %v", err)
	}
	if len(result.MyVotes) != 2 {
		t.Fatalf("my_votes = %v, want 2 entries", result.MyVotes)
	}

	// 多选允许补投未投过的选项
	result, err = svc.VotePoll(voterId, request.VotePollRequest{
		PollId:    detail.Uuid,
		OptionIds: []string{optionC},
	})
	if err != nil {
		t.Fatalf("additional vote: %v", err)
	}
	if len(result.MyVotes) != 3 {
		t.Fatalf("my_votes = %v, want 3 entries", result.MyVotes)
	}

	// 已投过的选项不能再投
	_, err = svc.VotePoll(voterId, request.VotePollRequest{
		PollId:    detail.Uuid,
		OptionIds: []string{optionA},
	})
	if errorx.GetCode(err) != errorx.CodeConflict {
		t.Fatalf("revote err code = %d, want CodeConflict", errorx.GetCode(err))
	}
}

func TestVotePollOptionOwnership(t *testing.T) {
	svc, repos := newTestPollService(t)
	authorId := createTestUser(t, repos, "author")
	voterId := createTestUser(t, repos, "voter")

	pollA, _ := svc.CreatePoll(authorId, request.CreatePollRequest{
		Question: "A",
		Options:  []string{"1", "2"},
	})
	pollB, _ := svc.CreatePoll(authorId, request.CreatePollRequest{
		Question: "B",
		Options:  []string{"1", "2"},
	})

	_, err := svc.VotePoll(voterId, request.VotePollRequest{
		PollId:    pollA.Uuid,
		OptionIds: []string{pollB.Options[0].OptionId},
	})
	if !errorx.IsNotFound(err) {
		t.Fatalf("cross-poll option err = %v, want not found", err)
	}

	_, err = svc.VotePoll(voterId, request.VotePollRequest{
		PollId:    "Q_not_exist",
		OptionIds: []string{pollA.Options[0].OptionId},
	})
	if !errorx.IsNotFound(err) {
		t.Fatalf("missing poll err = %v, want not found", err)
	}
}

func TestGetPollList(t *testing.T) {
	svc, repos := newTestPollService(t)
	authorId := createTestUser(t, repos, "author")

	first, _ := svc.CreatePoll(authorId, request.CreatePollRequest{
		Question: "第一个",
		Options:  []string{"A", "B"},
	})
	second, _ := svc.CreatePoll(authorId, request.CreatePollRequest{
		Question: "第二个",
		Options:  []string{"A", "B"},
	})

	list, err := svc.GetPollList()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list length = %d, want 2", len(list))
	}
	// 按创建时间倒序
	if list[0].Uuid != second.Uuid || list[1].Uuid != first.Uuid {
		t.Fatalf("list order = [%s %s], want newest first", list[0].Uuid, list[1].Uuid)
	}

	// 匿名访问详情不带 my_votes
	detail, err := svc.GetPollDetail(first.Uuid, "")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if len(detail.MyVotes) != 0 {
		t.Fatalf("anonymous my_votes = %v, want empty", detail.MyVotes)
	}
}
