package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ankibridge/ankibridge-service/internal/app"
	"github.com/ankibridge/ankibridge-service/internal/routers"
	"github.com/ankibridge/ankibridge-service/internal/routers/connect_router"
	"github.com/ankibridge/ankibridge-service/internal/task"
	"github.com/ankibridge/ankibridge-service/pkg/code"
	"github.com/ankibridge/ankibridge-service/pkg/logger"
	"github.com/ankibridge/ankibridge-service/pkg/util"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Server owns the two HTTP listeners and the background machinery.
type Server struct {
	app     *app.App
	handler *connect_router.Handler

	public  *http.Server
	private *http.Server
}

func newServer(cfg *app.Config, boot *zap.Logger) (*Server, error) {
	lg, err := logger.NewLogger(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		Production: cfg.Log.Production,
	})
	if err != nil {
		boot.Warn("file logger unavailable, staying on console", zap.Error(err))
		lg = boot
	}

	_ = code.SetGlobalDefaultLang("en")

	a, err := app.Build(cfg, lg)
	if err != nil {
		return nil, err
	}

	handler := connect_router.NewHandler(a.Service, connect_router.Config{
		APIKey:      cfg.Security.APIKey,
		CORSOrigins: cfg.Server.CORSOrigins,
	}, lg)

	publicEngine := routers.NewPublicRouter(routers.Config{
		RunMode:            cfg.Server.RunMode,
		AppName:            app.Name,
		AppVersion:         app.Version,
		ContextTimeout:     a.ContextTimeout(),
		CORSOrigins:        cfg.Server.CORSOrigins,
		RateLimitPerSecond: cfg.Server.RateLimitPerSecond,
	}, handler, lg)
	privateEngine := routers.NewPrivateRouter(a.Status, lg)

	readTimeout := parseDurationOr(cfg.Server.ReadTimeout, 60*time.Second)
	writeTimeout := parseDurationOr(cfg.Server.WriteTimeout, 60*time.Second)

	return &Server{
		app:     a,
		handler: handler,
		public: &http.Server{
			Addr:         cfg.Server.PublicListen,
			Handler:      publicEngine,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		private: &http.Server{
			Addr:         cfg.Server.PrivateListen,
			Handler:      privateEngine,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
	}, nil
}

// Run starts everything and blocks until shutdown completes.
func (s *Server) Run() error {
	a := s.app
	lg := a.Logger

	s.startTasks()
	s.startListener(s.public, "public")
	s.startListener(s.private, "private")

	w, err := watchConfig(cfgFile, lg, func(cfg *app.Config) {
		s.handler.UpdateConfig(connect_router.Config{
			APIKey:      cfg.Security.APIKey,
			CORSOrigins: cfg.Server.CORSOrigins,
		})
	})
	if err != nil {
		lg.Warn("config hot reload disabled", zap.Error(err))
	} else {
		a.Close.Attach(func(done func(), closeSignal <-chan struct{}) {
			<-closeSignal
			w.Close()
			done()
		})
	}

	lg.Info("server started",
		zap.String("public", s.public.Addr),
		zap.String("private", s.private.Addr),
		zap.String("version", app.Version),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		lg.Info("shutdown signal received", zap.String("signal", sig.String()))
		a.Close.SendCloseSignal(nil)
	case <-a.Close.CloseSignal():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.public.Shutdown(shutdownCtx); err != nil {
		lg.Warn("public server shutdown", zap.Error(err))
	}
	if err := s.private.Shutdown(shutdownCtx); err != nil {
		lg.Warn("private server shutdown", zap.Error(err))
	}
	if err := a.Pool.Shutdown(shutdownCtx); err != nil {
		lg.Warn("worker pool shutdown", zap.Error(err))
	}

	err = a.Close.WaitClosed()
	lg.Info("server stopped")
	return err
}

func (s *Server) startListener(srv *http.Server, name string) {
	a := s.app
	a.Close.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("listener failed", zap.String("listener", name), zap.Error(err))
			a.Close.SendCloseSignal(err)
		}
	})
}

func (s *Server) startTasks() {
	a := s.app
	cfg := a.Config
	scheduler := task.NewScheduler(a.Close, a.Logger)

	if cfg.Tasks.Backup.Enabled && cfg.Database.Type == "sqlite" {
		scheduler.Register(&task.BackupTask{
			DBPath:     cfg.Database.Path,
			BackupPath: cfg.Tasks.Backup.Path,
			Keep:       cfg.Tasks.Backup.Keep,
			Spec:       cfg.Tasks.Backup.Cron,
			Startup:    cfg.Tasks.Backup.Startup,
			Store:      a.Store,
			Logger:     a.Logger,
		})
	}
	scheduler.Register(&task.RevisionPruneTask{
		Svc:      a.Service,
		Interval: parseDurationOr(cfg.Tasks.RevisionPruneInterval, 6*time.Hour),
		Logger:   a.Logger,
	})
	scheduler.Register(&task.MediaCleanupTask{
		Store:    a.Store,
		Interval: parseDurationOr(cfg.Tasks.MediaCleanupInterval, time.Hour),
		Logger:   a.Logger,
	})
	if cfg.Tasks.CheckRelease {
		scheduler.Register(&task.CheckReleaseTask{
			ReleaseURL:     cfg.Tasks.ReleaseURL,
			CurrentVersion: app.Version,
			OnResult:       app.SetCheckVersion,
			Logger:         a.Logger,
		})
	}

	scheduler.Start()
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	d, err := util.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
