// cmd/server/main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	g "github.com/mahabubulhasibshawon/rider-tracker/internal/adapters/grpc"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/adapters/inmem"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/adapters/redis"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/adapters/repository"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/adapters/rest"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/application"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/config"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/domain"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/logger"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/ports"
	"github.com/mahabubulhasibshawon/rider-tracker/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer lg.Sync()

	ctx := context.Background()
	var checks []func(context.Context) error

	var repo ports.RepositoryPort
	switch cfg.StorageBackend {
	case "postgres":
		db, err := sql.Open(cfg.DBDriver, cfg.PostgresDSN())
		if err != nil {
			lg.Fatalf("failed to connect to DB: %v", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			lg.Fatalf("failed to ping DB: %v", err)
		}
		pg := repository.NewPostgresRepository(db)
		if err := pg.Migrate(ctx); err != nil {
			lg.Fatalf("failed to init DB: %v", err)
		}
		checks = append(checks, db.PingContext)
		repo = pg
	default:
		lg.Warn("using in-memory storage; data is lost on restart")
		repo = repository.NewMemoryRepository()
	}

	var (
		cache       ports.CachePort
		sessions    ports.SessionPort
		revocations ports.RevocationPort
	)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
		defer client.Close()
		redisCache := redis.NewCache(client, cfg.CacheTTL)
		if err := redisCache.Ping(ctx); err != nil {
			lg.Fatalf("failed to connect to Redis: %v", err)
		}
		cache = redisCache
		sessions = redis.NewSessionStore(client, "")
		revocations = redis.NewRevocationList(client)
		checks = append(checks, redisCache.Ping)
	} else {
		cache = inmem.NewCache(cfg.CacheTTL)
		sessions = inmem.NewSessionStore()
		revocations = inmem.NewRevocationList()
	}

	loc := cfg.Location()
	store := application.NewUserStore(repo, lg,
		application.WithClock(func() time.Time { return time.Now().In(loc) }),
		application.WithSessionPort(sessions),
	)
	if u, err := store.RestoreSession(ctx); err != nil {
		lg.Warnf("failed to restore session: %v", err)
	} else if u != nil {
		lg.Infof("restored session for %s", u.Username)
	}
	if cfg.SeedRider {
		seedRider(ctx, store, lg)
	}

	authService := application.NewAuthService(store, auth.NewManager(cfg.JWTSecret, cfg.JWTTTL), revocations)
	progress := application.NewProgressService(store, cache, store.Events(), lg)
	defer progress.Close()

	srv := g.NewServer(store, authService, progress, lg)
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(srv.RecoveryInterceptor, srv.LoggingInterceptor, srv.AuthInterceptor))
	g.RegisterRiderServiceServer(grpcServer, srv)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(g.RiderServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		lg.Fatalf("failed to listen: %v", err)
	}
	go func() {
		lg.Infof("gRPC server listening on %s", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			lg.Fatalf("failed to serve gRPC: %v", err)
		}
	}()

	handler := rest.NewHandler(store, authService, progress, lg).WithReadiness(func(ctx context.Context) error {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      rest.NewRouter(handler, lg, cfg.Env, cfg.CORSOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		lg.Infof("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatalf("failed to serve HTTP: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down...")
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		lg.Errorf("HTTP server forced to shutdown: %v", err)
	}
	grpcServer.GracefulStop()
	lg.Info("server exited")
}

// seedRider registers the demo account rider/123 when it is missing.
func seedRider(ctx context.Context, store *application.UserStore, lg logger.Logger) {
	_, err := store.AddUser(ctx, domain.NewUser("rider", "Demo Rider"), "123")
	switch {
	case err == nil:
		lg.Info("seeded demo user rider")
	case errors.Is(err, domain.ErrConflict):
	default:
		lg.Errorf("failed to seed demo user: %v", err)
	}
}
