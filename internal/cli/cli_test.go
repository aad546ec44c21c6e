package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/goleak"

	"github.com/stridex/stridex/internal/config"
	"github.com/stridex/stridex/internal/logger"
	"github.com/stridex/stridex/internal/server"
	"github.com/stridex/stridex/internal/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestContext(t *testing.T, seed int64) *Context {
	t.Helper()
	ctx, err := NewContext(context.Background(), config.Default(), seed)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	t.Cleanup(func() { ctx.Close() })
	return ctx
}

func fixedClock() session.Option {
	return session.WithClock(func() time.Time { return time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC) })
}

func TestNewContextRejectsUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = "postgres"
	if _, err := NewContext(context.Background(), cfg, -1); err == nil {
		t.Fatal("NewContext() with an unknown backend should fail")
	}
}

func TestReportIsDeterministicWithSeed(t *testing.T) {
	cmd := &ReportCmd{Name: "Nova", Habits: []string{"Run", "Read", "Meditate"}}

	render := func() string {
		var buf bytes.Buffer
		if err := cmd.write(context.Background(), &buf, newTestContext(t, 42).Manager(fixedClock())); err != nil {
			t.Fatalf("write() error = %v", err)
		}
		return buf.String()
	}

	first := render()
	for _, want := range []string{"Commander Nova", "Run", "Weekday success", "Forecast", "Monday"} {
		if !strings.Contains(first, want) {
			t.Errorf("report missing %q:\n%s", want, first)
		}
	}
	if second := render(); second != first {
		t.Error("two reports with the same seed differ")
	}
}

func TestReportValidation(t *testing.T) {
	tests := []struct {
		name string
		cmd  ReportCmd
	}{
		{"blank name", ReportCmd{Name: " ", Habits: []string{"Run"}}},
		{"no habits", ReportCmd{Name: "Nova"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.write(context.Background(), io.Discard, newTestContext(t, 1).Manager())
			if err == nil {
				t.Error("write() should fail")
			}
		})
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	c := newTestContext(t, 7)
	handler, err := server.NewHandler(server.Options{Manager: c.Manager(), Logger: logger.New(io.Discard, log.InfoLevel, false)})
	if err != nil {
		t.Fatal(err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, ln, handler, time.Second) }()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		cancel()
		t.Fatalf("GET /healthz: %v", err)
	}
	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	resp.Body.Close()
	client.CloseIdleConnections()

	if body["ok"] != true {
		t.Errorf("healthz body = %v", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve() error = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("serve() did not return after cancel")
	}
}
