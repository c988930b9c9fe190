package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"simple_pomodoro/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
	eventBuffer      = 64

	envelopeState = "state"
	envelopeEvent = "event"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Live timer stream
// @Description  WebSocket. Sends {"type":"state"} now and every interval, and {"type":"event"} for each session event.
// @Tags         timer
// @Param        interval     query  string  false  "State push period, e.g. 2s (max 10s)"
// @Param        interval_ms  query  int     false  "State push period in ms (max 10000)"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.wsLog("ws_upgrade_failed", err)
		return
	}
	st := &stream{conn: conn}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	events, unsubscribe := h.subscribe()
	defer unsubscribe()

	ctx := c.Request.Context()
	if err := h.pushState(ctx, st); err != nil {
		h.wsLog("ws_write_failed_initial", err)
		return
	}

	stateTick := time.NewTicker(interval)
	defer stateTick.Stop()
	pingTick := time.NewTicker(pingPeriod)
	defer pingTick.Stop()

	for {
		var err error
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-pingTick.C:
			err = st.ping()
		case <-stateTick.C:
			err = h.pushState(ctx, st)
		case ev, ok := <-events:
			if !ok {
				st.goingAway()
				return
			}
			err = st.send(envelopeEvent, ev)
		}
		if err != nil {
			h.wsLog("ws_write_failed", err)
			return
		}
	}
}

// stream serializes writes to one websocket client.
type stream struct {
	conn *websocket.Conn
}

func (s *stream) send(kind string, data any) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(wsEnvelope{Type: kind, Data: data})
}

func (s *stream) ping() error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.PingMessage, nil)
}

// goingAway tells the client the server is shutting down.
func (s *stream) goingAway() {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

func (h *Handler) wsLog(event string, err error) {
	if h.log != nil {
		h.log.Infow(event, "err", err)
	}
}

// subscribe attaches to the live event stream. Without one, the returned
// channel is nil and never fires.
func (h *Handler) subscribe() (<-chan models.SessionEvent, func()) {
	if h.services.Events == nil {
		return nil, func() {}
	}
	return h.services.Events.Subscribe(eventBuffer)
}

// parseInterval reads ?interval=2s or ?interval_ms=2000; out-of-range values fall back to the default.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if d, err := time.ParseDuration(c.Query("interval")); err == nil && d > 0 && d <= maxInterval {
		return d
	}
	if ms, err := strconv.Atoi(c.Query("interval_ms")); err == nil && ms > 0 && ms <= maxIntervalMilli {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultInterval
}

// startReader consumes client frames so pongs are processed; done closes on disconnect.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.wsLog("ws_read_closed", err)
			return
		}
	}
}

// pushState writes the current timer state.
func (h *Handler) pushState(ctx context.Context, st *stream) error {
	state, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_get_state_failed", "err", err)
		}
		return err
	}
	return st.send(envelopeState, state)
}
