package service

import (
	"context"
	"time"

	"simple_pomodoro/internal/logger"
	"simple_pomodoro/internal/models"
	"simple_pomodoro/internal/repository"
)

const (
	defaultRecorderBuffer = 256
	appendTimeout         = 5 * time.Second
)

// RecorderService persists session events off the timer's tick path.
type RecorderService struct {
	eventRepo repository.EventRepo
	queue     chan models.SessionEvent
	log       *logger.Logger
}

// NewRecorderService returns a recorder with room for buffer pending events.
func NewRecorderService(eventRepo repository.EventRepo, buffer int, log *logger.Logger) *RecorderService {
	if buffer <= 0 {
		buffer = defaultRecorderBuffer
	}
	return &RecorderService{
		eventRepo: eventRepo,
		queue:     make(chan models.SessionEvent, buffer),
		log:       log,
	}
}

// Enqueue schedules ev for persistence. It reports false, dropping ev, when
// the queue is full.
func (r *RecorderService) Enqueue(ev models.SessionEvent) bool {
	select {
	case r.queue <- ev:
		return true
	default:
		if r.log != nil {
			r.log.Warnw("recorder_queue_full", "event_id", ev.EventID, "type", ev.Type)
		}
		return false
	}
}

// Run appends queued events until ctx is canceled, then flushes whatever
// is still queued and returns.
func (r *RecorderService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			r.drain(context.WithoutCancel(ctx))
			return
		case ev := <-r.queue:
			r.store(ctx, ev)
		}
	}
}

func (r *RecorderService) drain(ctx context.Context) {
	for {
		select {
		case ev := <-r.queue:
			r.store(ctx, ev)
		default:
			return
		}
	}
}

func (r *RecorderService) store(ctx context.Context, ev models.SessionEvent) {
	ctx, cancel := context.WithTimeout(ctx, appendTimeout)
	defer cancel()

	if err := r.eventRepo.Append(ctx, ev); err != nil && r.log != nil {
		r.log.Errorw("recorder_append_failed", "err", err, "event_id", ev.EventID, "type", ev.Type)
	}
}
