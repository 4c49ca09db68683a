package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"gameapi/internal/catalog"
	"gameapi/internal/game"
	"gameapi/internal/httpx"
	"gameapi/internal/user"
)

const maxRequestBody = 1 << 20

type pinger interface {
	Ping(ctx context.Context) error
}

type routerDeps struct {
	log            *zap.Logger
	db             pinger
	metrics        http.Handler
	catalogHandler *catalog.HTTPHandler
	gameHandler    *game.HTTPHandler
	userHandler    *user.HTTPHandler
	rateLimiter    *httpx.RateLimiter
	allowedOrigins []string
	enableHSTS     bool
}

func newRouter(d routerDeps) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := d.db.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if d.metrics != nil {
		router.Handle("GET /metrics", d.metrics)
	}

	router.HandleFunc("GET /v1/games", d.catalogHandler.List)
	router.HandleFunc("GET /v1/catalog/games", d.catalogHandler.Search)

	router.HandleFunc("POST /v1/games", d.gameHandler.Create)
	router.HandleFunc("GET /v1/games/{id}", d.gameHandler.GetByID)
	router.HandleFunc("DELETE /v1/games/{id}", d.gameHandler.Delete)
	router.HandleFunc("GET /v1/games/user/{userId}", d.gameHandler.ListByUser)

	router.HandleFunc("POST /v1/users", d.userHandler.Create)
	router.HandleFunc("GET /v1/users", d.userHandler.List)
	router.HandleFunc("GET /v1/users/{id}", d.userHandler.GetByID)

	mws := []httpx.Middleware{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(d.log),
		httpx.RecoveryMiddleware(d.log),
		httpx.SecurityHeadersMiddleware(d.enableHSTS),
		httpx.CORSMiddleware(d.allowedOrigins),
		httpx.RequestSizeLimitMiddleware(maxRequestBody),
	}
	if d.rateLimiter != nil {
		mws = append(mws, d.rateLimiter.Middleware)
	}
	return httpx.Chain(router, mws...)
}
