package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/heroman/heroman/internal/server"
)

func healthHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	return mux
}

func TestServer_ListenReportsAddr(t *testing.T) {
	srv := server.New("127.0.0.1:0", healthHandler(), zerolog.Nop())

	if srv.Addr() != "" {
		t.Errorf("Addr() before Listen = %q, expected empty", srv.Addr())
	}
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	defer srv.Shutdown(context.Background())

	if srv.Addr() == "" || srv.Addr() == "127.0.0.1:0" {
		t.Errorf("Addr() = %q, expected the bound port", srv.Addr())
	}
	if err := srv.Listen(); err != nil {
		t.Errorf("second Listen should be a no-op, got %v", err)
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv := server.New("127.0.0.1:0", healthHandler(), zerolog.Nop())
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen failed: %v", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	resp, err := http.Get(fmt.Sprintf("http://%s/v1/health", srv.Addr()))
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		t.Errorf("shutdown error: %v", err)
	}

	select {
	case err := <-errChan:
		if err != http.ErrServerClosed {
			t.Errorf("unexpected error from Start: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("server did not stop after shutdown")
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	srv := server.New("127.0.0.1:0", healthHandler(), zerolog.Nop())
	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	resp, err := http.Get(fmt.Sprintf("http://%s/v1/health", srv.Addr()))
	if err != nil {
		cancel()
		t.Fatalf("health request failed: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestServer_ListenConflict(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()

	srv := server.New(ln.Addr().String(), healthHandler(), zerolog.Nop())
	if err := srv.Run(context.Background()); err == nil {
		t.Error("expected an error when the address is in use")
	}
}
