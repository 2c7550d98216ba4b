package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/config"
)

const pngHeader = "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code  string `json:"code"`
		Field string `json:"field"`
	} `json:"error"`
}

type testApp struct {
	t      *testing.T
	router *gin.Engine
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiration = time.Hour
	cfg.JWT.Issuer = "campusbuzz.test"
	cfg.Latency.Enabled = false
	cfg.Simulator.Enabled = false
	cfg.Toast.Display = 5 * time.Second
	cfg.Toast.Fade = 300 * time.Millisecond
	cfg.Feed.Timezone = "UTC"
	cfg.Seed.CurrentUserID = "u1"
	return cfg
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := testConfig()
	lgr := zerolog.Nop()

	st, err := SetupStore(cfg, lgr)
	require.NoError(t, err)

	deps, err := BuildDependencies(cfg, st, lgr)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		deps.Hub.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return &testApp{t: t, router: SetupRouter(cfg, deps, lgr)}
}

func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) login(userID string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/v1/session", "", map[string]string{"userId": userID})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var session struct {
		AccessToken string `json:"accessToken"`
	}
	decodeData(a.t, w, &session)
	require.NotEmpty(a.t, session.AccessToken)
	return session.AccessToken
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	return env.Error.Code
}

func TestPingAndAuthRequired(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, "/api/v1/posts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(http.MethodGet, "/api/v1/posts", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionForUnknownUser(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/api/v1/session", "", map[string]string{"userId": "nobody"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedAndHashtagFilter(t *testing.T) {
	app := newTestApp(t)
	token := app.login("u1")

	w := app.do(http.MethodGet, "/api/v1/posts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var feed struct {
		Posts []struct {
			ID      string `json:"id"`
			Content string `json:"content"`
		} `json:"posts"`
		Total int `json:"total"`
	}
	decodeData(t, w, &feed)
	assert.NotEmpty(t, feed.Posts)
	assert.Equal(t, len(feed.Posts), feed.Total)

	w = app.do(http.MethodPost, "/api/v1/posts", token, map[string]string{"content": "Hello #golang"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(http.MethodGet, "/api/v1/posts?hashtag=golang", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &feed)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "Hello #golang", feed.Posts[0].Content)
}

func TestCreatePostValidation(t *testing.T) {
	app := newTestApp(t)
	token := app.login("u1")

	w := app.do(http.MethodPost, "/api/v1/posts", token, map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", decodeError(t, w))
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/api/v1/admin/dashboard", app.login("u1"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(http.MethodGet, "/api/v1/admin/dashboard", app.login("u5"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFriendRequestRaisesToastForRecipient(t *testing.T) {
	app := newTestApp(t)
	sender := app.login("u1")
	recipient := app.login("u3")

	w := app.do(http.MethodPost, "/api/v1/friends/requests", sender, map[string]string{"toUserId": "u3"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(http.MethodGet, "/api/v1/toast", recipient, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snapshot struct {
		Phase        string `json:"phase"`
		Notification *struct {
			Type string `json:"type"`
		} `json:"notification"`
	}
	decodeData(t, w, &snapshot)
	assert.Equal(t, "visible", snapshot.Phase)
	require.NotNil(t, snapshot.Notification)
	assert.Equal(t, "friend_request", snapshot.Notification.Type)

	// the sender sees nothing new
	w = app.do(http.MethodGet, "/api/v1/toast", sender, nil)
	decodeData(t, w, &snapshot)
	assert.Equal(t, "hidden", snapshot.Phase)

	w = app.do(http.MethodDelete, "/api/v1/toast", recipient, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &snapshot)
	assert.NotEqual(t, "visible", snapshot.Phase)
}

func TestCreateListingWithUploadedImage(t *testing.T) {
	app := newTestApp(t)
	token := app.login("u1")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Desk lamp"))
	require.NoError(t, mw.WriteField("price", "12.5"))
	part, err := mw.CreateFormFile("files", "lamp.png")
	require.NoError(t, err)
	_, err = part.Write([]byte(pngHeader))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/listings", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var listing struct {
		Title  string   `json:"title"`
		Images []string `json:"images"`
	}
	decodeData(t, w, &listing)
	assert.Equal(t, "Desk lamp", listing.Title)
	require.Len(t, listing.Images, 1)
	assert.True(t, strings.HasPrefix(listing.Images[0], "data:image/png"))
}

func TestSuspendedUserIsLockedOut(t *testing.T) {
	app := newTestApp(t)
	admin := app.login("u5")
	student := app.login("u2")

	w := app.do(http.MethodGet, "/api/v1/me", student, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodPut, "/api/v1/admin/users/u2/status", admin, map[string]string{"status": "suspended"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(http.MethodGet, "/api/v1/me", student, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "AUTH_009", decodeError(t, w))
}

func TestJobsArePaginated(t *testing.T) {
	app := newTestApp(t)
	token := app.login("u1")

	w := app.do(http.MethodGet, "/api/v1/jobs?pageSize=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Items      []json.RawMessage `json:"items"`
		Pagination struct {
			TotalItems int `json:"totalItems"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	decodeData(t, w, &page)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	w = app.do(http.MethodPost, "/api/v1/jobs", token, map[string]string{"title": "Lab assistant"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHeroSlidesArePublic(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/api/v1/hero-slides", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var slides []json.RawMessage
	decodeData(t, w, &slides)
	assert.NotNil(t, slides)
}
