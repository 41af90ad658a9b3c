package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sajeeb007/qkd-bb84-sim/internal/handlers"
)

func main() {
	// Get port from environment variable or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create a new HTTP multiplexer
	mux := http.NewServeMux()

	simHandler := handlers.NewSimHandler()

	// Register routes
	mux.HandleFunc("/", handlers.HomeHandler)
	mux.HandleFunc("/health", handlers.HealthHandler)

	// Register simulation routes
	mux.HandleFunc("/api/v1/sim/run", simHandler.RunHandler)
	mux.HandleFunc("/api/v1/sim/runs", simHandler.ListRunsHandler)
	mux.HandleFunc("/api/v1/sim/run/", handleSimRun(simHandler))

	// Create server with timeouts
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      loggingMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Server starting on port %s", port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("%s %s %s", r.Method, r.RequestURI, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("Request completed in %v", time.Since(start))
	})
}

// handleSimRun routes run-scoped requests
func handleSimRun(simHandler *handlers.SimHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/image") {
			simHandler.GetImageHandler(w, r)
		} else {
			simHandler.GetRunHandler(w, r)
		}
	}
}
