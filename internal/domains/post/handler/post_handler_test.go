package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidehustle-backend/internal/domains/post/model"
	"sidehustle-backend/internal/domains/post/repository"
	"sidehustle-backend/internal/domains/post/service"
	userModel "sidehustle-backend/internal/domains/user/model"
	userRepo "sidehustle-backend/internal/domains/user/repository"
	userService "sidehustle-backend/internal/domains/user/service"
	"sidehustle-backend/internal/shared/middleware"
	"sidehustle-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
}

func (a *apiClient) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(a.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func setup(t *testing.T) (*apiClient, string, string) {
	t.Helper()
	ctx := context.Background()

	users := userRepo.NewMemoryRepository()
	identity := userService.NewUserService(users, jwt.NewManager("test-secret", time.Hour))
	posts := service.NewPostService(repository.NewMemoryRepository(), users)

	r := gin.New()
	api := r.Group("/api")
	NewPostHandler(posts).RegisterRoutes(api, middleware.AuthMiddleware(identity))

	register := func(name, aNumber string) string {
		resp, err := identity.Register(ctx, userModel.RegisterRequest{
			Username:  name,
			Email:     name + "@example.com",
			Password:  "long-enough-password",
			ANumber:   aNumber,
			FirstName: name,
			LastName:  "Test",
		})
		require.NoError(t, err)
		return resp.Token
	}

	return &apiClient{t: t, router: r}, register("alice", "A100"), register("bob", "A200")
}

func decodePost(t *testing.T, w *httptest.ResponseRecorder) model.PostResponse {
	t.Helper()
	var p model.PostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p), w.Body.String())
	return p
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []model.PostResponse {
	t.Helper()
	var posts []model.PostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts), w.Body.String())
	return posts
}

func TestPostsRequireAuthentication(t *testing.T) {
	api, _, _ := setup(t)

	w := api.do(http.MethodGet, "/api/posts/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Authentication credentials were not provided."}`, w.Body.String())
}

func TestCreateAndPublishFlow(t *testing.T) {
	api, alice, bob := setup(t)

	w := api.do(http.MethodPost, "/api/posts/", alice, `{
		"Title": "Campus food delivery",
		"Description": "Late night snacks",
		"Category": "food",
		"FundingNeeds": 1500,
		"Status": "published",
		"AuthorID": 12345
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"FundingNeeds":"1500.00"`)
	created := decodePost(t, w)
	assert.Equal(t, model.StatusDraft, created.Status)
	assert.Equal(t, "alice", created.Author.Username)

	w = api.do(http.MethodGet, "/api/posts/", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))

	path := "/api/posts/" + jsonID(created.PostID) + "/publish/"
	w = api.do(http.MethodPost, path, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Permission denied"}`, w.Body.String())

	w = api.do(http.MethodPost, path, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.StatusPublished, decodePost(t, w).Status)

	w = api.do(http.MethodPost, path, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/api/posts/published/", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	public := decodeList(t, w)
	require.Len(t, public, 1)
	assert.Equal(t, created.PostID, public[0].PostID)
}

func TestCreateValidationErrors(t *testing.T) {
	api, alice, _ := setup(t)

	w := api.do(http.MethodPost, "/api/posts/", alice, map[string]interface{}{"Category": "crypto"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var fields map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fields))
	assert.Equal(t, []string{"This field is required."}, fields["Title"])
	assert.Equal(t, []string{"This field is required."}, fields["Description"])
	assert.Equal(t, []string{`"crypto" is not a valid choice.`}, fields["Category"])

	w = api.do(http.MethodPost, "/api/posts/", alice, `{"Title": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDetailVisibilityAndPermissions(t *testing.T) {
	api, alice, bob := setup(t)

	w := api.do(http.MethodPost, "/api/posts/", alice, map[string]string{"Title": "t", "Description": "d"})
	require.Equal(t, http.StatusCreated, w.Code)
	path := "/api/posts/" + jsonID(decodePost(t, w).PostID) + "/"

	w = api.do(http.MethodGet, path, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, path, bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Not found."}`, w.Body.String())

	w = api.do(http.MethodPatch, path, bob, map[string]string{"Title": "mine now"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"detail":"You do not have permission to perform this action."}`, w.Body.String())

	w = api.do(http.MethodPatch, path, alice, map[string]string{"Title": "renamed", "Status": "published"})
	require.Equal(t, http.StatusOK, w.Code)
	patched := decodePost(t, w)
	assert.Equal(t, "renamed", patched.Title)
	assert.Equal(t, "d", patched.Description)
	assert.Equal(t, model.StatusDraft, patched.Status)

	w = api.do(http.MethodPut, path, alice, map[string]string{"Title": "only title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodDelete, path, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodDelete, path, alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodGet, path, alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/api/posts/abc/", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMyPostsAndArchive(t *testing.T) {
	api, alice, bob := setup(t)

	var ids []int64
	for _, title := range []string{"one", "two"} {
		w := api.do(http.MethodPost, "/api/posts/", alice, map[string]string{"Title": title, "Description": "d"})
		require.Equal(t, http.StatusCreated, w.Code)
		ids = append(ids, decodePost(t, w).PostID)
	}

	archivePath := "/api/posts/" + jsonID(ids[0]) + "/archive/"
	w := api.do(http.MethodPost, archivePath, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Permission denied"}`, w.Body.String())

	w = api.do(http.MethodPost, archivePath, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.StatusArchived, decodePost(t, w).Status)

	w = api.do(http.MethodGet, "/api/posts/my_posts/", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decodeList(t, w)
	require.Len(t, mine, 2)
	assert.Equal(t, ids[1], mine[0].PostID, "newest first")

	w = api.do(http.MethodGet, "/api/posts/my_posts/", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
