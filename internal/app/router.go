package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/eventfeed-backend/internal/adapter/postgres"
	documentrepo "github.com/heartmarshall/eventfeed-backend/internal/adapter/postgres/document"
	eventrepo "github.com/heartmarshall/eventfeed-backend/internal/adapter/postgres/event"
	membershiprepo "github.com/heartmarshall/eventfeed-backend/internal/adapter/postgres/membership"
	userrepo "github.com/heartmarshall/eventfeed-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/eventfeed-backend/internal/auth"
	"github.com/heartmarshall/eventfeed-backend/internal/config"
	"github.com/heartmarshall/eventfeed-backend/internal/service/access"
	eventsvc "github.com/heartmarshall/eventfeed-backend/internal/service/event"
	"github.com/heartmarshall/eventfeed-backend/internal/transport/middleware"
	"github.com/heartmarshall/eventfeed-backend/internal/transport/rest"
)

// Database is what the router needs from the connection pool.
type Database interface {
	postgres.Querier
	Ping(ctx context.Context) error
}

// NewRouter wires repositories, services and handlers into the HTTP API.
// The limiter may be nil to switch rate limiting off.
func NewRouter(logger *slog.Logger, cfg *config.Config, db Database, limiter *middleware.RateLimiter) http.Handler {
	users := userrepo.New(db)
	documents := documentrepo.New(db)
	memberships := membershiprepo.New(db)
	events := eventrepo.New(db)

	policy := access.NewPolicy(logger, memberships)
	resolver := access.NewResolver(logger, memberships, policy)

	query := eventsvc.NewQuery(logger, events, users, cfg.Feed.MaxLimit)
	feed := eventsvc.NewService(logger, users, documents, resolver, policy, query, cfg.Feed)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	var rateLimit middleware.Middleware
	if limiter != nil {
		rateLimit = limiter.Limit(cfg.RateLimit.RequestsPerMinute)
	}

	api := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CORS(cfg.CORS),
		middleware.Auth(logger, tokens),
		middleware.Logger(logger),
		rateLimit,
	)

	eventHandler := rest.NewEventHandler(feed, logger)
	health := rest.NewHealthHandler(Version, map[string]rest.Pinger{"database": db})

	mux := http.NewServeMux()
	mux.Handle("POST /events.list", api(http.HandlerFunc(eventHandler.List)))
	mux.Handle("OPTIONS /events.list", api(http.NotFoundHandler()))
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	return mux
}
