package server_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"microsvc/internal/server"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pingRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})
}

func TestServer_StartsAndServesRoutes(t *testing.T) {
	log, _ := test.NewNullLogger()
	srv := server.New(server.Config{Port: 18181, ShutdownTimeout: 5 * time.Second}, log, pingRoutes)

	go func() {
		_ = srv.Start()
	}()
	waitForServer(t, "http://localhost:18181/ping", 2*time.Second)

	resp, err := http.Get("http://localhost:18181/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Processing-Time-Micros"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))
}

func TestServer_Run_ShutdownOnContextCancel(t *testing.T) {
	log, _ := test.NewNullLogger()
	srv := server.New(server.Config{Port: 18182, ShutdownTimeout: 5 * time.Second}, log, pingRoutes)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	waitForServer(t, "http://localhost:18182/ping", 2*time.Second)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shutdown")
	}
}

func TestServer_Run_CompletesInFlightRequestsOnShutdown(t *testing.T) {
	log, _ := test.NewNullLogger()
	srv := server.New(server.Config{Port: 18183, ShutdownTimeout: 5 * time.Second}, log, pingRoutes)
	srv.HandleFunc("GET /slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte("completed"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()
	waitForServer(t, "http://localhost:18183/ping", 2*time.Second)

	status := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://localhost:18183/slow")
		if err != nil {
			status <- 0
			return
		}
		resp.Body.Close()
		status <- resp.StatusCode
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case code := <-status:
		assert.Equal(t, http.StatusOK, code)
	case <-time.After(3 * time.Second):
		t.Fatal("in-flight request did not complete")
	}
	assert.NoError(t, <-done)
}

func TestServer_Run_ReportsListenError(t *testing.T) {
	log, _ := test.NewNullLogger()
	first := server.New(server.Config{Port: 18184, ShutdownTimeout: time.Second}, log, pingRoutes)
	go func() {
		_ = first.Start()
	}()
	waitForServer(t, "http://localhost:18184/ping", 2*time.Second)
	defer first.Shutdown(context.Background())

	second := server.New(server.Config{Port: 18184, ShutdownTimeout: time.Second}, log, pingRoutes)
	err := second.Run(context.Background())
	assert.ErrorContains(t, err, "server error")
}

func TestServer_RecoversFromPanics(t *testing.T) {
	log, hook := test.NewNullLogger()
	srv := server.New(server.Config{}, log)
	srv.HandleFunc("GET /panic", func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})

	rec := serve(srv, http.MethodGet, "/panic", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "kaboom")
	assert.Equal(t, "request failed", hook.LastEntry().Message)
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}
