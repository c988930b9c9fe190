package server

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":      "",
		"8080":  ":8080",
		":9090": ":9090",
	}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Fatalf("normalizeAddr(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	s := New(Options{WriteTimeout: 3 * time.Second})

	if s.opts.WriteTimeout != 3*time.Second {
		t.Fatalf("write timeout overridden: %v", s.opts.WriteTimeout)
	}
	if s.opts.ReadHeaderTimeout != defaultReadHeaderTimeout || s.opts.IdleTimeout != defaultIdleTimeout {
		t.Fatalf("defaults not applied: %+v", s.opts)
	}

	hs := newHTTPServer(":1", http.NotFoundHandler(), s.opts)
	if hs.WriteTimeout != 3*time.Second || hs.MaxHeaderBytes != maxHeaderBytes {
		t.Fatalf("unexpected http.Server %+v", hs)
	}
}

func TestShutdownBeforeRun(t *testing.T) {
	var s Server
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
