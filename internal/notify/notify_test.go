package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"moneta/internal/storage"

	"github.com/go-telegram/bot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vmkteam/embedlog"
)

type push struct {
	token, title, body string
}

type fakePusher struct {
	mu     sync.Mutex
	pushes []push
	err    error
}

func (f *fakePusher) Name() string { return "fake" }

func (f *fakePusher) Push(_ context.Context, token, title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, push{token, title, body})
	return f.err
}

// ServiceTestSuite provides a test suite for notification delivery
type ServiceTestSuite struct {
	suite.Suite
	db      *storage.DB
	ctx     context.Context
	pusher  *fakePusher
	service *Service
	userID  string
}

// SetupTest runs before each test
func (suite *ServiceTestSuite) SetupTest() {
	db, err := storage.NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
	suite.ctx = context.Background()
	suite.pusher = &fakePusher{}
	suite.service = NewService(db, suite.pusher, embedlog.NewDevLogger())
	suite.service.now = func() time.Time { return time.Date(2024, time.March, 15, 20, 0, 0, 0, time.Local) }

	u, err := db.CreateUser(suite.ctx, "alice", "hash")
	require.NoError(suite.T(), err)
	suite.userID = u.ID
}

// TearDownTest runs after each test
func (suite *ServiceTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *ServiceTestSuite) TestDeliverWithoutDevice() {
	require.NoError(suite.T(), suite.service.Deliver(suite.ctx, suite.userID, "Evening", "Time to record your accounts!"))
	assert.Empty(suite.T(), suite.pusher.pushes)

	notifications, err := suite.db.ListNotifications(suite.ctx, suite.userID)
	require.NoError(suite.T(), err)
	if assert.Len(suite.T(), notifications, 1) {
		assert.Equal(suite.T(), "Evening", notifications[0].Title)
		assert.Equal(suite.T(), "2024-03-15 20:00:00", notifications[0].Timestamp)
	}
}

func (suite *ServiceTestSuite) TestDeliverPushesToDevice() {
	_, err := suite.db.SetDeviceToken(suite.ctx, suite.userID, "42")
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.service.Deliver(suite.ctx, suite.userID, "", ""))
	if assert.Len(suite.T(), suite.pusher.pushes, 1) {
		assert.Equal(suite.T(), push{"42", DefaultTitle, DefaultBody}, suite.pusher.pushes[0])
	}
}

func (suite *ServiceTestSuite) TestDeliverPushFailure() {
	_, err := suite.db.SetDeviceToken(suite.ctx, suite.userID, "42")
	require.NoError(suite.T(), err)
	suite.pusher.err = errors.New("unreachable")

	err = suite.service.Deliver(suite.ctx, suite.userID, "Evening", "Body")
	assert.Error(suite.T(), err)

	notifications, err := suite.db.ListNotifications(suite.ctx, suite.userID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), notifications, 1, "the notification is kept even when the push fails")
}

func (suite *ServiceTestSuite) TestDeliverUnknownUser() {
	err := suite.service.Deliver(suite.ctx, "missing", "Evening", "Body")
	assert.ErrorIs(suite.T(), err, storage.ErrNotFound)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func TestWebhookPusher(t *testing.T) {
	var (
		got  webhookPayload
		auth string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	p := NewWebhookPusher(srv.URL, "secret", srv.Client())
	require.NoError(t, p.Push(context.Background(), "device-1", "Evening", "Body"))

	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, webhookPayload{Token: "device-1", Title: "Evening", Body: "Body"}, got)
	assert.Equal(t, "webhook", p.Name())
}

func TestWebhookPusherError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewWebhookPusher(srv.URL, "", nil).Push(context.Background(), "device-1", "Evening", "Body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "bad token")
}

func TestTelegramPusher(t *testing.T) {
	var (
		mu   sync.Mutex
		path string
		body string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		path, body = r.URL.Path, string(b)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`)
	}))
	defer srv.Close()

	p, err := NewTelegramPusher("123:abc", bot.WithServerURL(srv.URL))
	require.NoError(t, err)
	require.NoError(t, p.Push(context.Background(), "42", "Evening", "Time to record your accounts!"))

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, strings.HasSuffix(path, "/sendMessage"), path)
	assert.Contains(t, body, "42")
	assert.Contains(t, body, "Time to record your accounts!")
}

func TestTelegramPusherRequiresToken(t *testing.T) {
	_, err := NewTelegramPusher("")
	assert.Error(t, err)
}

func TestLogPusher(t *testing.T) {
	p := NewLogPusher(embedlog.NewDevLogger())
	assert.NoError(t, p.Push(context.Background(), "42", "Evening", "Body"))
	assert.Equal(t, "log", p.Name())
}
