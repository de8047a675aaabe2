// Package app wires the TaskFlow server runtime: config, logging, stores,
// auth, and HTTP routes.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	authapi "taskflow/internal/auth/api"
	"taskflow/internal/auth/session"
	"taskflow/internal/identity"
	"taskflow/internal/project"
	projectapi "taskflow/internal/project/api"
	"taskflow/internal/task"
	taskapi "taskflow/internal/task/api"

	"github.com/jackc/pgx/v5/pgxpool"
)

// stores bundles the persistence layer behind one switch: Postgres when a
// database URL is configured, in-memory otherwise.
type stores struct {
	users    identity.Store
	sessions session.Store
	projects project.Store
	tasks    task.Store

	pool *pgxpool.Pool
}

func (s stores) close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// App is the TaskFlow server runtime.
type App struct {
	cfg Config
	log Logger

	st        stores
	dbEnabled bool

	metrics  *Metrics
	sessions *session.Service
	gate     *authapi.Gate
	auth     *authapi.Handler
	projects *projectapi.Handler
	tasks    *taskapi.Handler
}

// New constructs a fully wired App instance from config and logger.
func New(cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel, cfg.Env)
	}

	st, dbEnabled, err := newStores(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	sessCfg, err := session.LoadConfigFromEnv()
	if err != nil {
		st.close()
		return nil, err
	}
	authCfg := authapi.LoadConfigFromEnv()

	tokens, err := session.NewHS256Manager(sessCfg)
	if err != nil {
		st.close()
		return nil, err
	}
	sessionSvc, err := session.NewService(sessCfg, st.sessions, tokens, st.users)
	if err != nil {
		st.close()
		return nil, err
	}

	gate := authapi.NewGate(log, sessionSvc)
	authHandler, err := authapi.NewHandler(log, authCfg, st.users, sessionSvc)
	if err != nil {
		st.close()
		return nil, err
	}
	projectHandler, err := projectapi.NewHandler(log, authCfg.MaxBodyBytes, st.projects, st.tasks)
	if err != nil {
		st.close()
		return nil, err
	}
	taskHandler, err := taskapi.NewHandler(log, authCfg.MaxBodyBytes, st.projects, st.tasks)
	if err != nil {
		st.close()
		return nil, err
	}

	return &App{
		cfg:       cfg,
		log:       log,
		st:        st,
		dbEnabled: dbEnabled,
		metrics:   NewMetrics(),
		sessions:  sessionSvc,
		gate:      gate,
		auth:      authHandler,
		projects:  projectHandler,
		tasks:     taskHandler,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or a
// fatal server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.st.pool, a.dbEnabled, a.metrics, a.gate, a.auth, a.projects, a.tasks)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           WithRequestLogging(a.metrics.Observe(mux), a.log, a.cfg.TrustProxy),
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "db_enabled", a.dbEnabled)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go a.sweepSessions(sweepCtx)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	a.st.close()
	a.log.Info("server.stopped")
	return nil
}

// sweepSessions periodically removes expired refresh sessions. Rotation
// already deletes consumed rows; this only reclaims sessions that expired
// without ever being presented again.
func (a *App) sweepSessions(ctx context.Context) {
	interval := nonZeroDuration(a.cfg.SessionSweepInterval, time.Hour)
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := a.sessions.SweepExpired(ctx, time.Now().UTC())
			if err != nil {
				a.log.Error("session.sweep.fail", "err", err)
				continue
			}
			if n > 0 {
				a.log.Info("session.sweep.ok", "deleted", n)
			}
		}
	}
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// newStores decides between Postgres-backed persistence and the in-memory
// dev store.
func newStores(ctx context.Context, cfg Config, log Logger) (stores, bool, error) {
	if cfg.DatabaseURL == "" {
		log.Info("db.disabled.inmemory_store")
		return stores{
			users:    identity.NewMemoryStore(),
			sessions: session.NewMemoryStore(),
			projects: project.NewMemoryStore(),
			tasks:    task.NewMemoryStore(),
		}, false, nil
	}

	pool, err := NewDBPool(ctx, cfg)
	if err != nil {
		return stores{}, false, err
	}
	log.Info("db.enabled.postgres_store")

	users, err := identity.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return stores{}, false, err
	}
	sessions, err := session.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return stores{}, false, err
	}
	projects, err := project.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return stores{}, false, err
	}
	tasks, err := task.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return stores{}, false, err
	}

	return stores{
		users:    users,
		sessions: sessions,
		projects: projects,
		tasks:    tasks,
		pool:     pool,
	}, true, nil
}
