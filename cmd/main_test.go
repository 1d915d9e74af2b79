package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/guttosm/sessioncal/internal/calendar"
	"github.com/guttosm/sessioncal/internal/domain/dto"
	"github.com/guttosm/sessioncal/internal/service"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	// Give server a moment to start
	time.Sleep(50 * time.Millisecond)

	// Shutdown quickly with short timeout and no-op cleanup
	_, cancel := context.WithCancel(context.Background())
	go func() {
		// trigger gracefulShutdown select by simulating signal via closing after a brief delay
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	// We cannot send OS signals easily here; instead, directly call Shutdown to simulate graceful flow.
	// Verify it doesn't panic and completes.
	shutdownCtx, c := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer c()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	// Use a server that responds immediately
	srv := startServer(dummyHandler{}, "0")

	cleaned := make(chan struct{}, 1)
	go func() {
		ctx := context.Background()
		gracefulShutdown(ctx, srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	// Send SIGTERM to current process
	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
		// success
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

func newCLIService() service.SessionService {
	reg := calendar.NewRegistry(calendar.Generator{FirstYear: 2015, LastYear: 2017}, calendar.NYSE)
	return service.NewSessionService(reg, service.Options{})
}

func TestParseDates(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "single", in: "2017-05-19", want: 1},
		{name: "list with blanks", in: "2015-07-04, ,2017-01-16,", want: 2},
		{name: "empty", in: "  ", wantErr: true},
		{name: "malformed", in: "2017/05/19", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := parseDates(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil || len(out) != tc.want {
				t.Fatalf("got %v err=%v", out, err)
			}
		})
	}
}

func TestRunRoll_JSONLines(t *testing.T) {
	var buf bytes.Buffer
	if err := runRoll(context.Background(), newCLIService(), "NYSE", "2017-05-19,2015-07-04,2017-01-16", &buf); err != nil {
		t.Fatalf("runRoll: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{"2017-05-19", "2015-07-02", "2017-01-13"}
	if len(lines) != len(want) {
		t.Fatalf("want %d lines got %q", len(want), buf.String())
	}
	for i, l := range lines {
		var r dto.RolledDate
		if err := json.Unmarshal([]byte(l), &r); err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if r.Session != want[i] {
			t.Fatalf("line %d: want %s got %+v", i, want[i], r)
		}
	}

	if err := runRoll(context.Background(), newCLIService(), "NYSE", "2014-12-31", &buf); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestRunChunks_JSONLines(t *testing.T) {
	var buf bytes.Buffer
	if err := runChunks(context.Background(), newCLIService(), "NYSE", "2017-01-03", "2017-01-31", 10, &buf); err != nil {
		t.Fatalf("runChunks: %v", err)
	}
	want := "{\"start\":\"2017-01-03\",\"end\":\"2017-01-17\"}\n{\"start\":\"2017-01-18\",\"end\":\"2017-01-31\"}\n"
	if buf.String() != want {
		t.Fatalf("want %q got %q", want, buf.String())
	}

	for _, bad := range [][2]string{{"03-01-2017", "2017-01-31"}, {"2017-01-03", ""}, {"2017-01-01", "2017-01-31"}} {
		if err := runChunks(context.Background(), newCLIService(), "NYSE", bad[0], bad[1], 0, io.Discard); err == nil {
			t.Fatalf("expected error for %v", bad)
		}
	}
}
