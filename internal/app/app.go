package app

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/ankibridge/ankibridge-service/internal/dao"
	"github.com/ankibridge/ankibridge-service/internal/service"
	"github.com/ankibridge/ankibridge-service/pkg/convert"
	"github.com/ankibridge/ankibridge-service/pkg/safe_close"
	"github.com/ankibridge/ankibridge-service/pkg/storage"
	"github.com/ankibridge/ankibridge-service/pkg/util"
	"github.com/ankibridge/ankibridge-service/pkg/workerpool"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the dependency container shared by the servers and tasks.
type App struct {
	Config  *Config
	Logger  *zap.Logger
	DB      *gorm.DB
	Dao     *dao.Dao
	Store   storage.Storager
	Pool    *workerpool.Pool
	Service *service.Service
	Close   *safe_close.SafeClose

	startedAt time.Time
}

// Build wires the container from a loaded config.
func Build(cfg *Config, lg *zap.Logger) (*App, error) {
	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
		Type:            cfg.Database.Type,
		Path:            cfg.Database.Path,
		UserName:        cfg.Database.UserName,
		Password:        cfg.Database.Password,
		Host:            cfg.Database.Host,
		Name:            cfg.Database.Name,
		TablePrefix:     cfg.Database.TablePrefix,
		AutoMigrate:     cfg.Database.AutoMigrate,
		Charset:         cfg.Database.Charset,
		ParseTime:       cfg.Database.ParseTime,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		RunMode:         cfg.Server.RunMode,
	}, lg)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	store, err := storage.NewClient(&storage.Config{
		Type:     cfg.Storage.Type,
		SavePath: cfg.Storage.SavePath,
	})
	if err != nil {
		return nil, errors.Wrap(err, "init storage")
	}

	poolCfg := workerpool.DefaultConfig()
	if cfg.WorkerPool.MaxWorkers > 0 {
		poolCfg.MaxWorkers = cfg.WorkerPool.MaxWorkers
	}
	if cfg.WorkerPool.QueueSize > 0 {
		poolCfg.QueueSize = cfg.WorkerPool.QueueSize
	}
	if cfg.WorkerPool.WarningPercent > 0 {
		poolCfg.WarningPercent = float64(cfg.WorkerPool.WarningPercent) / 100
	}
	pool := workerpool.New(&poolCfg, lg)

	maxUpload, err := convert.StrTo(cfg.Storage.MaxUploadSize).ToSize()
	if err != nil {
		return nil, errors.Wrapf(err, "parse storage.max-upload-size %q", cfg.Storage.MaxUploadSize)
	}

	d := dao.New(db, dao.WithLogger(lg))
	svc := service.New(d, store, pool, service.Config{
		Fsrs:          cfg.Scheduler.Fsrs,
		RevisionLimit: cfg.Scheduler.RevisionLimit,
		MaxMediaBytes: maxUpload,
	}, lg)

	a := &App{
		Config:    cfg,
		Logger:    lg,
		DB:        db,
		Dao:       d,
		Store:     store,
		Pool:      pool,
		Service:   svc,
		Close:     safe_close.NewSafeClose(),
		startedAt: time.Now(),
	}

	if err := svc.EnsureDefaultDeck(context.Background()); err != nil {
		return nil, errors.Wrap(err, "seed default deck")
	}
	return a, nil
}

// ContextTimeout returns the parsed request deadline.
func (a *App) ContextTimeout() time.Duration {
	d, err := util.ParseDuration(a.Config.Server.ContextTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// Status snapshots process and host health for the private endpoint.
func (a *App) Status() (interface{}, error) {
	snapshot := map[string]interface{}{
		"name":         Name,
		"version":      VersionInfo(),
		"checkVersion": GetCheckVersion(),
		"uptime":       time.Since(a.startedAt).Round(time.Second).String(),
		"goroutines":   runtime.NumGoroutine(),
		"pool": map[string]interface{}{
			"active": a.Pool.ActiveCount(),
			"queued": a.Pool.QueuedCount(),
		},
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		snapshot["cpuPercent"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		snapshot["memPercent"] = vm.UsedPercent
	}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := proc.MemoryInfo(); err == nil && info != nil {
			snapshot["rssBytes"] = info.RSS
		}
	}
	return snapshot, nil
}
