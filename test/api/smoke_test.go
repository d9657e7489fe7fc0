package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"agora_poll_server/internal/dto/request"
	"agora_poll_server/internal/dto/respond"
	"agora_poll_server/internal/handler"
	"agora_poll_server/internal/https_server"
	"agora_poll_server/internal/service"
	"agora_poll_server/pkg/util/jwt"
)

type stubUserService struct{}

type stubGroupService struct{}

type stubPostService struct{}

type stubPollService struct{}

func (s stubUserService) Register(req request.RegisterRequest) (*respond.LoginRespond, error) {
	return &respond.LoginRespond{Uuid: "U_TEST"}, nil
}
func (s stubUserService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	return &respond.LoginRespond{Uuid: "U_TEST"}, nil
}
func (s stubUserService) RefreshToken(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error) {
	return &respond.RefreshTokenRespond{}, nil
}
func (s stubUserService) GetUserInfo(uuid string) (*respond.GetUserInfoRespond, error) {
	return &respond.GetUserInfoRespond{}, nil
}
func (s stubUserService) UpdateUserInfo(userId string, req request.UpdateUserInfoRequest) (*respond.GetUserInfoRespond, error) {
	return &respond.GetUserInfoRespond{}, nil
}
func (s stubUserService) DeleteAccount(userId string) error { return nil }

func (s stubGroupService) CreateGroup(ownerId string, req request.CreateGroupRequest) (string, error) {
	return "G_TEST", nil
}
func (s stubGroupService) SearchGroup(keyword string) ([]respond.GetGroupInfoRespond, error) {
	return []respond.GetGroupInfoRespond{}, nil
}
func (s stubGroupService) GetMyGroupList(userId string) ([]respond.GetGroupInfoRespond, error) {
	return []respond.GetGroupInfoRespond{}, nil
}
func (s stubGroupService) GetGroupDetail(groupId, viewerId string) (*respond.GetGroupDetailRespond, error) {
	return &respond.GetGroupDetailRespond{}, nil
}
func (s stubGroupService) UpdateGroupInfo(callerId string, req request.UpdateGroupInfoRequest) error {
	return nil
}
func (s stubGroupService) DeleteGroup(callerId, groupId string) error { return nil }
func (s stubGroupService) ResolveRole(groupId, userId string) (int8, error) {
	return 0, nil
}
func (s stubGroupService) JoinGroup(userId string, req request.JoinGroupRequest) error { return nil }
func (s stubGroupService) GetJoinRequestList(groupId, callerId string) ([]respond.GetJoinRequestListRespond, error) {
	return []respond.GetJoinRequestListRespond{}, nil
}
func (s stubGroupService) ApproveJoinRequest(callerId string, req request.HandleJoinRequestRequest) error {
	return nil
}
func (s stubGroupService) RejectJoinRequest(callerId string, req request.HandleJoinRequestRequest) error {
	return nil
}
func (s stubGroupService) LeaveGroup(userId, groupId string) error { return nil }
func (s stubGroupService) RemoveGroupMember(callerId string, req request.RemoveGroupMemberRequest) error {
	return nil
}

func (s stubPostService) CreatePost(authorId string, req request.CreatePostRequest) (*respond.GetPostListRespond, error) {
	return &respond.GetPostListRespond{Uuid: "P_TEST"}, nil
}
func (s stubPostService) GetPostList(groupId, viewerId string) ([]respond.GetPostListRespond, error) {
	return []respond.GetPostListRespond{}, nil
}
func (s stubPostService) GetPostDetail(postId, viewerId string) (*respond.GetPostDetailRespond, error) {
	return &respond.GetPostDetailRespond{}, nil
}
func (s stubPostService) ApprovePost(callerId string, req request.ReviewPostRequest) error {
	return nil
}
func (s stubPostService) RejectPost(callerId string, req request.ReviewPostRequest) error { return nil }
func (s stubPostService) VotePost(userId string, req request.VotePostRequest) (*respond.VotePostRespond, error) {
	return &respond.VotePostRespond{}, nil
}
func (s stubPostService) CreateComment(userId string, req request.CreateCommentRequest) error {
	return nil
}
func (s stubPostService) GetCommentList(postId string) ([]respond.GetCommentListRespond, error) {
	return []respond.GetCommentListRespond{}, nil
}

func (s stubPollService) CreatePoll(authorId string, req request.CreatePollRequest) (*respond.GetPollDetailRespond, error) {
	return &respond.GetPollDetailRespond{Uuid: "Q_TEST"}, nil
}
func (s stubPollService) GetPollList() ([]respond.GetPollListRespond, error) {
	return []respond.GetPollListRespond{}, nil
}
func (s stubPollService) GetPollDetail(pollId, viewerId string) (*respond.GetPollDetailRespond, error) {
	return &respond.GetPollDetailRespond{}, nil
}
func (s stubPollService) VotePoll(userId string, req request.VotePollRequest) (*respond.GetPollDetailRespond, error) {
	return &respond.GetPollDetailRespond{}, nil
}

func mustJSON(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(data)
}

func doReq(t *testing.T, client *http.Client, method, url string, body io.Reader, authHeader string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request %s %s: %v", method, url, err)
	}
	return resp
}

func requireStatus(t *testing.T, path string, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s status=%d, want %d", path, resp.StatusCode, want)
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwt.Init("test-secret", 15, 168)
	if err := handler.InitTrans("zh"); err != nil {
		t.Fatalf("init trans: %v", err)
	}

	svcs := &service.Services{
		User:  stubUserService{},
		Group: stubGroupService{},
		Post:  stubPostService{},
		Poll:  stubPollService{},
	}
	server := httptest.NewServer(https_server.Init(handler.NewHandlers(svcs)))
	t.Cleanup(server.Close)
	return server
}

func TestAllHTTPEndpoints_Smoke(t *testing.T) {
	server := newTestServer(t)
	client := &http.Client{Timeout: 5 * time.Second}

	accessToken, err := jwt.GenerateAccessToken("U_TEST")
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}
	authHeader := "Bearer " + accessToken

	refreshToken, _, err := jwt.GenerateRefreshToken("U_TEST")
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	// ===== 公开接口（无需鉴权） =====
	resp := doReq(t, client, http.MethodPost, server.URL+"/user/register", mustJSON(t, map[string]any{
		"nickname":  "n",
		"password":  "123456",
		"telephone": "13000000000",
	}), "")
	requireStatus(t, "/user/register", resp, http.StatusOK)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/user/login", mustJSON(t, map[string]any{
		"account":  "13000000000",
		"password": "123456",
	}), "")
	requireStatus(t, "/user/login", resp, http.StatusOK)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/user/refreshToken", mustJSON(t, map[string]any{
		"refresh_token": refreshToken,
	}), "")
	requireStatus(t, "/user/refreshToken", resp, http.StatusOK)
	_ = resp.Body.Close()

	// ===== 公开读接口（可选鉴权，匿名可访问） =====
	for _, path := range []string{
		"/group/search?keyword=go",
		"/group/detail/G_TEST",
		"/post/list/G_TEST",
		"/post/detail/P_TEST",
		"/post/commentList/P_TEST",
		"/poll/list",
		"/poll/detail/Q_TEST",
	} {
		resp = doReq(t, client, http.MethodGet, server.URL+path, nil, "")
		requireStatus(t, path, resp, http.StatusOK)
		_ = resp.Body.Close()
	}

	// ===== 用户接口 =====
	resp = doReq(t, client, http.MethodGet, server.URL+"/user/myInfo", nil, authHeader)
	requireStatus(t, "/user/myInfo", resp, http.StatusOK)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodGet, server.URL+"/user/info/U_2", nil, authHeader)
	requireStatus(t, "/user/info/:uuid", resp, http.StatusOK)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/user/updateUserInfo", mustJSON(t, map[string]any{
		"nickname": "new",
	}), authHeader)
	requireStatus(t, "/user/updateUserInfo", resp, http.StatusOK)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/user/deleteAccount", nil, authHeader)
	requireStatus(t, "/user/deleteAccount", resp, http.StatusOK)
	_ = resp.Body.Close()

	// ===== 群组接口 =====
	resp = doReq(t, client, http.MethodPost, server.URL+"/group/createGroup", mustJSON(t, map[string]any{
		"name": "g",
	}), authHeader)
	requireStatus(t, "/group/createGroup", resp, http.StatusOK)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodGet, server.URL+"/group/myGroupList", nil, authHeader)
	requireStatus(t, "/group/myGroupList", resp, http.StatusOK)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/group/updateGroupInfo", mustJSON(t, map[string]any{
		"group_id": "G_TEST",
		"name":     "g2",
	}), authHeader)
	requireStatus(t, "/group/updateGroupInfo", resp, http.StatusOK)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/group/joinGroup", mustJSON(t, map[string]any{
		"group_id": "G_TEST",
		"message":  "hi",
	}), authHeader)
	requireStatus(t, "/group/joinGroup", resp, http.StatusOK)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodGet, server.URL+"/group/joinRequestList/G_TEST", nil, authHeader)
	requireStatus(t, "/group/joinRequestList/:uuid", resp, http.StatusOK)
	_ = resp.Body.Close()

	for _, path := range []string{"/group/approveJoinRequest", "/group/rejectJoinRequest"} {
		resp = doReq(t, client, http.MethodPost, server.URL+path, mustJSON(t, map[string]any{
			"group_id":   "G_TEST",
			"request_id": "R_TEST",
		}), authHeader)
		requireStatus(t, path, resp, http.StatusOK)
		_ = resp.Body.Close()
	}

	resp = doReq(t, client, http.MethodPost, server.URL+"/group/leaveGroup", mustJSON(t, map[string]any{
		"group_id": "G_TEST",
	}), authHeader)
	requireStatus(t, "/group/leaveGroup", resp, http.StatusOK)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/group/removeGroupMember", mustJSON(t, map[string]any{
		"group_id":  "G_TEST",
		"member_id": "U_2",
	}), authHeader)
	requireStatus(t, "/group/removeGroupMember", resp, http.StatusOK)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/group/deleteGroup", mustJSON(t, map[string]any{
		"group_id": "G_TEST",
	}), authHeader)
	requireStatus(t, "/group/deleteGroup", resp, http.StatusOK)
	_ = resp.Body.Close()

	// ===== 帖子接口 =====
	resp = doReq(t, client, http.MethodPost, server.URL+"/post/createPost", mustJSON(t, map[string]any{
		"group_id": "G_TEST",
		"type":     0,
		"title":    "t",
	}), authHeader)
	requireStatus(t, "/post/createPost", resp, http.StatusOK)
	_ = resp.Body.Close()

	for _, path := range []string{"/post/approvePost", "/post/rejectPost"} {
		resp = doReq(t, client, http.MethodPost, server.URL+path, mustJSON(t, map[string]any{
			"group_id": "G_TEST",
			"post_id":  "P_TEST",
		}), authHeader)
		requireStatus(t, path, resp, http.StatusOK)
		_ = resp.Body.Close()
	}

	resp = doReq(t, client, http.MethodPost, server.URL+"/post/votePost", mustJSON(t, map[string]any{
		"group_id":  "G_TEST",
		"post_id":   "P_TEST",
		"option_id": "O_TEST",
	}), authHeader)
	requireStatus(t, "/post/votePost", resp, http.StatusOK)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/post/createComment", mustJSON(t, map[string]any{
		"group_id": "G_TEST",
		"post_id":  "P_TEST",
		"content":  "c",
	}), authHeader)
	requireStatus(t, "/post/createComment", resp, http.StatusOK)
	_ = resp.Body.Close()

	// ===== 独立投票接口 =====
	resp = doReq(t, client, http.MethodPost, server.URL+"/poll/createPoll", mustJSON(t, map[string]any{
		"question": "q",
		"options":  []string{"a", "b"},
	}), authHeader)
	requireStatus(t, "/poll/createPoll", resp, http.StatusOK)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/poll/votePoll", mustJSON(t, map[string]any{
		"poll_id":    "Q_TEST",
		"option_ids": []string{"O_TEST"},
	}), authHeader)
	requireStatus(t, "/poll/votePoll", resp, http.StatusOK)
	_ = resp.Body.Close()
}

func TestAuthRequired(t *testing.T) {
	server := newTestServer(t)
	client := &http.Client{Timeout: 5 * time.Second}

	// 未携带 Token 访问受保护接口返回 401
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/user/myInfo"},
		{http.MethodPost, "/group/createGroup"},
		{http.MethodPost, "/post/createPost"},
		{http.MethodPost, "/poll/createPoll"},
	}
	for _, p := range paths {
		resp := doReq(t, client, p.method, server.URL+p.path, nil, "")
		requireStatus(t, p.path, resp, http.StatusUnauthorized)
		_ = resp.Body.Close()
	}

	// 伪造 Token 同样拒绝
	resp := doReq(t, client, http.MethodGet, server.URL+"/user/myInfo", nil, "Bearer not-a-token")
	requireStatus(t, "/user/myInfo", resp, http.StatusUnauthorized)
	_ = resp.Body.Close()
}

func TestParamBinding(t *testing.T) {
	server := newTestServer(t)
	client := &http.Client{Timeout: 5 * time.Second}

	// 缺少必填字段返回 400
	resp := doReq(t, client, http.MethodPost, server.URL+"/user/register", mustJSON(t, map[string]any{
		"nickname": "n",
	}), "")
	requireStatus(t, "/user/register", resp, http.StatusBadRequest)
	_ = resp.Body.Close()

	// 投票选项少于两个返回 400
	accessToken, err := jwt.GenerateAccessToken("U_TEST")
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}
	resp = doReq(t, client, http.MethodPost, server.URL+"/poll/createPoll", mustJSON(t, map[string]any{
		"question": "q",
		"options":  []string{"only"},
	}), "Bearer "+accessToken)
	requireStatus(t, "/poll/createPoll", resp, http.StatusBadRequest)
	_ = resp.Body.Close()
}
