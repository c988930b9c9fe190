package handlers

import (
	"context"
	"errors"
	"net/http"

	"simple_pomodoro/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK          = "ok"
	statusStarted     = "started"
	statusPaused      = "paused"
	statusReset       = "reset"
	statusSettingsSet = "settings_updated"

	errStartTimer      = "failed to start timer"
	errPauseTimer      = "failed to pause timer"
	errResetTimer      = "failed to reset timer"
	errGetState        = "failed to load state"
	errGetSettings     = "failed to load settings"
	errUpdateSettings  = "failed to update settings"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...any) {
	if h.log != nil && err != nil {
		fields := append([]any{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status and include current state if available (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	ctx := c.Request.Context()
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	st, err := h.services.Monitoring.GetState(ctx)
	if err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// Request DTO for updating settings. Every field is required.
type settingsRequest struct {
	FocusSeconds *int  `json:"focus_seconds" binding:"required"`
	BreakSeconds *int  `json:"break_seconds" binding:"required"`
	Repeat       *bool `json:"repeat" binding:"required"`
}

// SettingsRequest is an exported model for Swagger docs of the settings payload.
type SettingsRequest struct {
	// Focus phase length in seconds
	FocusSeconds int `json:"focus_seconds" example:"1500"`
	// Break phase length in seconds
	BreakSeconds int `json:"break_seconds" example:"300"`
	// Start a new focus phase after each break
	Repeat bool `json:"repeat" example:"false"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// runCommand executes a timer command and responds with the resulting state.
func (h *Handler) runCommand(c *gin.Context, cmd func(context.Context) error, status, userErr, logKey string) {
	if err := cmd(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, userErr, logKey, err, "user_id", userID(c))
		return
	}
	if h.log != nil {
		h.log.Debugw("timer_command", "status", status, "user_id", userID(c))
	}
	h.respondWithStatusAndState(c, status, gin.H{})
}

// @Summary      Start or resume the timer
// @Description  From idle a fresh focus phase begins; a paused phase resumes.
// @Tags         timer
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/timer/start [post]
// @Security     BearerAuth
func (h *Handler) startTimer(c *gin.Context) {
	h.runCommand(c, h.services.Timer.Start, statusStarted, errStartTimer, "timer_start_failed")
}

// @Summary      Pause the timer
// @Tags         timer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/timer/pause [post]
// @Security     BearerAuth
func (h *Handler) pauseTimer(c *gin.Context) {
	h.runCommand(c, h.services.Timer.Pause, statusPaused, errPauseTimer, "timer_pause_failed")
}

// @Summary      Reset the timer
// @Description  Discards the current phase; the next start begins with focus.
// @Tags         timer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/timer/reset [post]
// @Security     BearerAuth
func (h *Handler) resetTimer(c *gin.Context) {
	h.runCommand(c, h.services.Timer.Reset, statusReset, errResetTimer, "timer_reset_failed")
}

// @Summary      Get timer state
// @Tags         timer
// @Produce      json
// @Success      200  {object}  models.TimerState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/timer/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "timer_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Get timer settings
// @Tags         timer
// @Produce      json
// @Success      200  {object}  SettingsRequest
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/timer/settings [get]
// @Security     BearerAuth
func (h *Handler) getSettings(c *gin.Context) {
	s, err := h.services.Timer.Settings(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetSettings, "timer_get_settings_failed", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// @Summary      Update timer settings
// @Description  New durations apply from the next phase; the running phase keeps its remaining time.
// @Tags         timer
// @Accept       json
// @Produce      json
// @Param        body  body   SettingsRequest  true  "Settings payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/timer/settings [put]
// @Security     BearerAuth
func (h *Handler) updateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	settings := service.Settings{
		FocusSeconds: *req.FocusSeconds,
		BreakSeconds: *req.BreakSeconds,
		Repeat:       *req.Repeat,
	}
	if err := h.services.Timer.Configure(c.Request.Context(), settings); err != nil {
		if errors.Is(err, service.ErrInvalidSettings) {
			if h.log != nil {
				h.log.Infow("timer_settings_rejected", "err", err)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errUpdateSettings, "timer_update_settings_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusSettingsSet, gin.H{"settings": settings})
}
