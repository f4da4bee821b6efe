package web

import (
	"context"
	"net/http"
	"time"
)

// StartWebServer initializes and starts the status server in a new goroutine.
// It takes an AppController, which is an interface implemented by the main
// application. The server shuts down gracefully when ctx is cancelled.
func StartWebServer(ctx context.Context, controller AppController, addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", statusHandler(controller))
	mux.HandleFunc("/metrics", metricsHandler(controller))
	mux.HandleFunc("/report", reportHandler(controller))
	mux.HandleFunc("/health", healthHandler())

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		controller.Logger().LogInfo("Starting status server on %s", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			controller.Logger().LogError("Status server failed: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		controller.Logger().LogInfo("Shutting down status server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			controller.Logger().LogError("Status server graceful shutdown failed: %v", err)
		}
	}()
}
