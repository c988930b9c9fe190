package handlers

import (
	"context"
	"net/http"
	"sync"

	"simple_pomodoro/internal/models"
	"simple_pomodoro/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockTimer struct {
	startErr     error
	pauseErr     error
	resetErr     error
	configureErr error
	settings     service.Settings
	settingsErr  error

	startCalled   int
	pauseCalled   int
	resetCalled   int
	lastConfigure *service.Settings
}

func (m *mockTimer) Start(ctx context.Context) error {
	m.startCalled++
	return m.startErr
}
func (m *mockTimer) Pause(ctx context.Context) error {
	m.pauseCalled++
	return m.pauseErr
}
func (m *mockTimer) Reset(ctx context.Context) error {
	m.resetCalled++
	return m.resetErr
}
func (m *mockTimer) Configure(ctx context.Context, s service.Settings) error {
	m.lastConfigure = &s
	return m.configureErr
}
func (m *mockTimer) Settings(ctx context.Context) (service.Settings, error) {
	return m.settings, m.settingsErr
}

type mockMonitoring struct {
	state models.TimerState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.TimerState, error) {
	return m.state, m.err
}

type mockEventLog struct {
	resp       []models.SessionEvent
	err        error
	lastFilter service.LogFilter
	calls      int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.SessionEvent, error) {
	m.calls++
	m.lastFilter = f
	return m.resp, m.err
}

// mockEvents hands out one channel per subscriber and lets tests publish.
type mockEvents struct {
	mu   sync.Mutex
	subs []chan models.SessionEvent
	sub  chan struct{}
}

func newMockEvents() *mockEvents {
	return &mockEvents{sub: make(chan struct{}, 8)}
}

func (m *mockEvents) Subscribe(buffer int) (<-chan models.SessionEvent, func()) {
	ch := make(chan models.SessionEvent, buffer)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	m.sub <- struct{}{}
	return ch, func() {}
}

func (m *mockEvents) publish(ev models.SessionEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		ch <- ev
	}
}

func (m *mockEvents) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		close(ch)
	}
	m.subs = nil
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withAuth(req *http.Request, token string) *http.Request {
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
