package post

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
	"agora_poll_server/internal/service/group"
	"agora_poll_server/pkg/enum/group_info/join_mode_enum"
	"agora_poll_server/pkg/enum/group_member/role_enum"
	"agora_poll_server/pkg/enum/group_post/post_status_enum"
	"agora_poll_server/pkg/enum/group_post/post_type_enum"
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
		&model.GroupInfo{},
		&model.GroupMember{},
		&model.JoinRequest{},
		&model.GroupPost{},
		&model.GroupPostOption{},
		&model.GroupPostVote{},
		&model.GroupPostComment{},
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

// testFixture 帖子测试通用环境：一个群、群主、普通成员和群外用户
type testFixture struct {
	svc      *postService
	repos    *repository.Repositories
	groupId  string
	ownerId  string
	memberId string
	otherId  string
}

// newTestFixture 构建帖子测试环境
// postReview 为 1 时普通成员发帖需审核
func newTestFixture(t *testing.T, postReview int8) *testFixture {
	t.Helper()
	repos := newTestRepos(t)
	groupSvc := group.NewGroupService(repos, newFakeCache())

	ownerId := createTestUser(t, repos, "owner")
	memberId := createTestUser(t, repos, "member")
	otherId := createTestUser(t, repos, "other")

	groupId, err := groupSvc.CreateGroup(ownerId, request.CreateGroupRequest{
		Name:       "测试群",
		JoinMode:   join_mode_enum.DIRECT,
		PostReview: postReview,
	})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if err := groupSvc.JoinGroup(memberId, request.JoinGroupRequest{GroupId: groupId}); err != nil {
		t.Fatalf("join group: %v", err)
	}

	return &testFixture{
		svc:      NewPostService(repos, groupSvc),
		repos:    repos,
		groupId:  groupId,
		ownerId:  ownerId,
		memberId: memberId,
		otherId:  otherId,
	}
}

func TestCreatePostPermission(t *testing.T) {
	fx := newTestFixture(t, 0)

	// 非成员不能发帖
	_, err := fx.svc.CreatePost(fx.otherId, request.CreatePostRequest{
		GroupId: fx.groupId,
		Type:    post_type_enum.DISCUSSION,
		Title:   "hello",
	})
	if errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("outsider post err code = %d, want CodeForbidden", errorx.GetCode(err))
	}

	post, err := fx.svc.CreatePost(fx.memberId, request.CreatePostRequest{
		GroupId: fx.groupId,
		Type:    post_type_enum.DISCUSSION,
		Title:   "hello",
		Content: "first post",
	})
	if err != nil {
		t.Fatalf("member post: %v", err)
	}
	if post.Status != post_status_enum.APPROVED {
		t.Fatalf("status = %d, want APPROVED when review off", post.Status)
	}
}

func TestCreatePostOptionRules(t *testing.T) {
	fx := newTestFixture(t, 0)

	// 投票帖至少两个选项
	_, err := fx.svc.CreatePost(fx.memberId, request.CreatePostRequest{
		GroupId: fx.groupId,
		Type:    post_type_enum.POLL,
		Title:   "只有一个选项",
		Options: []string{"A"},
	})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("single-option poll err code = %d, want CodeInvalidParam", errorx.GetCode(err))
	}

	// 讨论帖不能携带选项
	_, err = fx.svc.CreatePost(fx.memberId, request.CreatePostRequest{
		GroupId: fx.groupId,
		Type:    post_type_enum.DISCUSSION,
		Title:   "讨论",
		Options: []string{"A", "B"},
	})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("discussion with options err code = %d, want CodeInvalidParam", errorx.GetCode(err))
	}
}

func TestCreatePostModerationGate(t *testing.T) {
	fx := newTestFixture(t, 1)

	// 审核开启时普通成员的帖子进入待审核
	memberPost, err := fx.svc.CreatePost(fx.memberId, request.CreatePostRequest{
		GroupId: fx.groupId,
		Type:    post_type_enum.DISCUSSION,
		Title:   "成员帖",
	})
	if err != nil {
		t.Fatalf("member post: %v", err)
	}
	if memberPost.Status != post_status_enum.PENDING {
		t.Fatalf("member post status = %d, want PENDING", memberPost.Status)
	}

	// 群主发帖不需审核
	ownerPost, err := fx.svc.CreatePost(fx.ownerId, request.CreatePostRequest{
		GroupId: fx.groupId,
		Type:    post_type_enum.DISCUSSION,
		Title:   "群主帖",
	})
	if err != nil {
		t.Fatalf("owner post: %v", err)
	}
	if ownerPost.Status != post_status_enum.APPROVED {
		t.Fatalf("owner post status = %d, want APPROVED", ownerPost.Status)
	}

	// 管理员同样免审
	if err := fx.repos.GroupMember.Create(&model.GroupMember{
		GroupUuid: fx.groupId,
		UserUuid:  fx.otherId,
		Role:      role_enum.ADMIN,
	}); err != nil {
		t.Fatalf("create admin member: %v", err)
	}
	adminPost, err := fx.svc.CreatePost(fx.otherId, request.CreatePostRequest{
		GroupId: fx.groupId,
		Type:    post_type_enum.DISCUSSION,
		Title:   "管理员帖",
	})
	if err != nil {
		t.Fatalf("admin post: %v", err)
	}
	if adminPost.Status != post_status_enum.APPROVED {
		t.Fatalf("admin post status = %d, want APPROVED", adminPost.Status)
	}
}

func TestPostListVisibility(t *testing.T) {
	fx := newTestFixture(t, 1)

	pending, _ := fx.svc.CreatePost(fx.memberId, request.CreatePostRequest{
		GroupId: fx.groupId,
		Type:    post_type_enum.DISCUSSION,
		Title:   "待审核帖",
	})
	approved, _ := fx.svc.CreatePost(fx.ownerId, request.CreatePostRequest{
		GroupId: fx.groupId,
		Type:    post_type_enum.DISCUSSION,
		Title:   "已通过帖",
	})

	// 普通成员的列表仅含已通过帖
	list, err := fx.svc.GetPostList(fx.groupId, fx.memberId)
	if err != nil {
		t.Fatalf("member list: %v", err)
	}
	if len(list) != 1 || list[0].Uuid != approved.Uuid {
		t.Fatalf("member list = %+v, want only approved post", list)
	}

	// 群主的列表包含待审核帖
	list, err = fx.svc.GetPostList(fx.groupId, fx.ownerId)
	if err != nil {
		t.Fatalf("owner list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("owner list length = %d, want 2", len(list))
	}

	// 待审核帖详情：作者可见，其他成员视同不存在
	if _, err := fx.svc.GetPostDetail(pending.Uuid, fx.memberId); err != nil {
		t.Fatalf("author should see own pending post: %v", err)
	}
	_, err = fx.svc.GetPostDetail(pending.Uuid, fx.otherId)
	if !errorx.IsNotFound(err) {
		t.Fatalf("pending post detail err = %v, want not found", err)
	}
}

func TestReviewPost(t *testing.T) {
	fx := newTestFixture(t, 1)

	pending, _ := fx.svc.CreatePost(fx.memberId, request.CreatePostRequest{
		GroupId: fx.groupId,
		Type:    post_type_enum.DISCUSSION,
		Title:   "待审核帖",
	})

	// 普通成员无权审核
	err := fx.svc.ApprovePost(fx.memberId, request.ReviewPostRequest{GroupId: fx.groupId, PostId: pending.Uuid})
	if errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("member review err code = %d, want CodeForbidden", errorx.GetCode(err))
	}

	if err := fx.svc.ApprovePost(fx.ownerId, request.ReviewPostRequest{GroupId: fx.groupId, PostId: pending.Uuid}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	detail, err := fx.svc.GetPostDetail(pending.Uuid, "")
	if err != nil {
		t.Fatalf("detail after approve: %v", err)
	}
	if detail.Status != post_status_enum.APPROVED {
		t.Fatalf("status = %d, want APPROVED", detail.Status)
	}

	// 审核是终态，重复审核返回冲突
	err = fx.svc.RejectPost(fx.ownerId, request.ReviewPostRequest{GroupId: fx.groupId, PostId: pending.Uuid})
	if errorx.GetCode(err) != errorx.CodeConflict {
		t.Fatalf("re-review err code = %d, want CodeConflict", errorx.GetCode(err))
	}
}

func TestVotePost(t *testing.T) {
	fx := newTestFixture(t, 0)

	poll, err := fx.svc.CreatePost(fx.ownerId, request.CreatePostRequest{
		GroupId: fx.groupId,
		Type:    post_type_enum.POLL,
		Title:   "吃什么",
		Options: []string{"火锅", "烧烤", "面条"},
	})
	if err != nil {
		t.Fatalf("create poll post: %v", err)
	}
	detail, err := fx.svc.GetPostDetail(poll.Uuid, fx.memberId)
	if err != nil {
		t.Fatalf("poll detail: %v", err)
	}
	if len(detail.Options) != 3 {
		t.Fatalf("options = %d, want 3", len(detail.Options))
	}
	optionId := detail.Options[0].OptionId

	// 非成员不能投票
	_, err = fx.svc.VotePost(fx.otherId, request.VotePostRequest{
		GroupId: fx.groupId, PostId: poll.Uuid, OptionId: optionId,
	})
	if errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("outsider vote err code = %d, want CodeForbidden", errorx.GetCode(err))
	}

	result, err := fx.svc.VotePost(fx.memberId, request.VotePostRequest{
		GroupId: fx.groupId, PostId: poll.Uuid, OptionId: optionId,
	})
	if err != nil {
		t.Fatalf("vote: %v", err)
	}
	counts := make(map[string]int64)
	for _, opt := range result.Options {
		counts[opt.OptionId] = opt.VoteCnt
	}
	if counts[optionId] != 1 {
		t.Fatalf("voted option count = %d, want 1", counts[optionId])
	}
	if counts[detail.Options[1].OptionId] != 0 {
		t.Fatal("untouched option should report zero votes")
	}

	// 一人一票，换选项也算重复
	_, err = fx.svc.VotePost(fx.memberId, request.VotePostRequest{
		GroupId: fx.groupId, PostId: poll.Uuid, OptionId: detail.Options[1].OptionId,
	})
	if errorx.GetCode(err) != errorx.CodeConflict {
		t.Fatalf("second vote err code = %d, want CodeConflict", errorx.GetCode(err))
	}

	// 投票后详情携带 my_vote
	detail, _ = fx.svc.GetPostDetail(poll.Uuid, fx.memberId)
	if detail.MyVote != optionId {
		t.Fatalf("my_vote = %q, want %q", detail.MyVote, optionId)
	}
}

func TestVotePostGuards(t *testing.T) {
	fx := newTestFixture(t, 0)

	discussion, _ := fx.svc.CreatePost(fx.ownerId, request.CreatePostRequest{
		GroupId: fx.groupId,
		Type:    post_type_enum.DISCUSSION,
		Title:   "纯讨论",
	})
	pollA, _ := fx.svc.CreatePost(fx.ownerId, request.CreatePostRequest{
		GroupId: fx.groupId,
		Type:    post_type_enum.POLL,
		Title:   "A",
		Options: []string{"1", "2"},
	})
	pollB, _ := fx.svc.CreatePost(fx.ownerId, request.CreatePostRequest{
		GroupId: fx.groupId,
		Type:    post_type_enum.POLL,
		Title:   "B",
		Options: []string{"1", "2"},
	})

	// 讨论帖不能投票
	_, err := fx.svc.VotePost(fx.memberId, request.VotePostRequest{
		GroupId: fx.groupId, PostId: discussion.Uuid, OptionId: "O_whatever",
	})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("vote on discussion err code = %d, want CodeInvalidParam", errorx.GetCode(err))
	}

	// 选项必须属于目标帖子
	detailB, _ := fx.svc.GetPostDetail(pollB.Uuid, "")
	_, err = fx.svc.VotePost(fx.memberId, request.VotePostRequest{
		GroupId: fx.groupId, PostId: pollA.Uuid, OptionId: detailB.Options[0].OptionId,
	})
	if !errorx.IsNotFound(err) {
		t.Fatalf("cross-post option err = %v, want not found", err)
	}
}

func TestComments(t *testing.T) {
	fx := newTestFixture(t, 1)

	pending, _ := fx.svc.CreatePost(fx.memberId, request.CreatePostRequest{
		GroupId: fx.groupId,
		Type:    post_type_enum.DISCUSSION,
		Title:   "待审核帖",
	})
	approved, _ := fx.svc.CreatePost(fx.ownerId, request.CreatePostRequest{
		GroupId: fx.groupId,
		Type:    post_type_enum.DISCUSSION,
		Title:   "已通过帖",
	})

	// 非成员不能评论
	err := fx.svc.CreateComment(fx.otherId, request.CreateCommentRequest{
		GroupId: fx.groupId, PostId: approved.Uuid, Content: "不让说",
	})
	if errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("outsider comment err code = %d, want CodeForbidden", errorx.GetCode(err))
	}

	// 待审核帖对群主可见，可评论
	if err := fx.svc.CreateComment(fx.ownerId, request.CreateCommentRequest{
		GroupId: fx.groupId, PostId: pending.Uuid, Content: "ok",
	}); err != nil {
		t.Fatalf("owner comment on pending: %v", err)
	}

	if err := fx.svc.CreateComment(fx.memberId, request.CreateCommentRequest{
		GroupId: fx.groupId, PostId: approved.Uuid, Content: "沙发",
	}); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if err := fx.svc.CreateComment(fx.ownerId, request.CreateCommentRequest{
		GroupId: fx.groupId, PostId: approved.Uuid, Content: "板凳",
	}); err != nil {
		t.Fatalf("comment: %v", err)
	}

	list, err := fx.svc.GetCommentList(approved.Uuid)
	if err != nil {
		t.Fatalf("comment list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("comment list length = %d, want 2", len(list))
	}

	detail, _ := fx.svc.GetPostDetail(approved.Uuid, "")
	if detail.CommentCnt != 2 {
		t.Fatalf("comment_cnt = %d, want 2", detail.CommentCnt)
	}
}
