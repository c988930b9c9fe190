package db_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"simple_pomodoro/internal/models"
	"simple_pomodoro/internal/repository"
	"simple_pomodoro/internal/repository/db"
)

func TestInitDB_RoundTrip(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "pomodoro.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	repos := repository.NewRepository(conn)
	ctx := context.Background()
	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	for i, typ := range []string{"FOCUS_STARTING", "PAUSED", "RESUMED", "FOCUS_FINISHED"} {
		err := repos.EventRepo.Append(ctx, models.SessionEvent{
			OccurredAt:  base.Add(time.Duration(i) * time.Minute),
			Type:        typ,
			Description: typ,
			Metadata:    map[string]any{"i": i},
		})
		if err != nil {
			t.Fatalf("Append %s: %v", typ, err)
		}
	}

	all, err := repos.EventRepo.List(ctx, repository.EventQuery{})
	if err != nil || len(all) != 4 {
		t.Fatalf("List all: %d events, err=%v", len(all), err)
	}
	if all[0].Type != "FOCUS_STARTING" || !all[0].OccurredAt.Equal(base) || all[0].EventID == "" {
		t.Fatalf("unexpected first event %+v", all[0])
	}

	window, err := repos.EventRepo.List(ctx, repository.EventQuery{
		From:  base.Add(time.Minute),
		To:    base.Add(3 * time.Minute),
		Limit: 2,
	})
	if err != nil {
		t.Fatalf("List window: %v", err)
	}
	if len(window) != 2 || window[0].Type != "PAUSED" || window[1].Type != "RESUMED" {
		t.Fatalf("unexpected window %+v", window)
	}

	byType, err := repos.EventRepo.List(ctx, repository.EventQuery{Type: "focus_finished"})
	if err != nil || len(byType) != 1 {
		t.Fatalf("List by type: %+v err=%v", byType, err)
	}

	id, err := repos.Auth.Create(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}
	u, err := repos.Auth.GetByUsername(ctx, "alice")
	if err != nil || u == nil || u.ID != id || u.CreatedAt.IsZero() {
		t.Fatalf("GetByUsername: %+v err=%v", u, err)
	}
	if _, err := repos.Auth.Create(ctx, "alice", "other"); err == nil {
		t.Fatalf("duplicate username accepted")
	}
}

func TestInitDB_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pomodoro.db")
	for i := 0; i < 2; i++ {
		conn, err := db.InitDB(path)
		if err != nil {
			t.Fatalf("InitDB #%d: %v", i+1, err)
		}
		_ = conn.Close()
	}
}
