// Package task runs the background maintenance loops: collection backup,
// revision pruning, media temp cleanup and the release check.
package task

import (
	"context"
	"time"

	"github.com/ankibridge/ankibridge-service/pkg/logger"
	"github.com/ankibridge/ankibridge-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task is one background job. Interval tasks run every LoopInterval;
// returning a zero interval together with a CronSpec switches the task to
// cron scheduling.
type Task interface {
	Name() string
	Run(ctx context.Context) error
	LoopInterval() time.Duration
	// IsStartupRun runs the task once right after the scheduler starts
	IsStartupRun() bool
}

// CronTask schedules by cron expression instead of a fixed interval.
type CronTask interface {
	Task
	CronSpec() string
}

// Scheduler drives the registered tasks until shutdown.
type Scheduler struct {
	tasks  []Task
	logger *zap.Logger
	cron   *cron.Cron
	sc     *safe_close.SafeClose
}

func NewScheduler(sc *safe_close.SafeClose, lg *zap.Logger) *Scheduler {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Scheduler{
		logger: lg,
		cron:   cron.New(),
		sc:     sc,
	}
}

// Register adds a task. Call before Start.
func (s *Scheduler) Register(t Task) {
	s.tasks = append(s.tasks, t)
}

// Start launches every task loop and the cron runner, attached to the
// shutdown coordinator.
func (s *Scheduler) Start() {
	for _, t := range s.tasks {
		if ct, ok := t.(CronTask); ok && t.LoopInterval() <= 0 {
			s.startCron(ct)
			continue
		}
		s.startLoop(t)
	}
	s.cron.Start()

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		<-closeSignal
		cronCtx := s.cron.Stop()
		<-cronCtx.Done()
		done()
	})
}

func (s *Scheduler) startCron(t CronTask) {
	_, err := s.cron.AddFunc(t.CronSpec(), func() {
		s.runOnce(t)
	})
	if err != nil {
		s.logger.Error("cron task not scheduled",
			zap.String("task", t.Name()),
			zap.String("spec", t.CronSpec()),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("cron task scheduled",
		zap.String("task", t.Name()),
		zap.String("spec", t.CronSpec()),
	)
	if t.IsStartupRun() {
		go s.runOnce(t)
	}
}

func (s *Scheduler) startLoop(t Task) {
	interval := t.LoopInterval()
	if interval <= 0 {
		s.logger.Warn("task has no interval and no cron spec, skipped",
			zap.String("task", t.Name()))
		return
	}
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		if t.IsStartupRun() {
			s.runOnce(t)
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runOnce(t)
			case <-closeSignal:
				return
			}
		}
	})
	s.logger.Info("task scheduled",
		zap.String("task", t.Name()),
		zap.Duration("interval", interval),
	)
}

func (s *Scheduler) runOnce(t Task) {
	begin := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := t.Run(ctx); err != nil {
		s.logger.Error("task failed",
			zap.String("task", t.Name()),
			zap.Duration(logger.FieldDuration, time.Since(begin)),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("task finished",
		zap.String("task", t.Name()),
		zap.Duration(logger.FieldDuration, time.Since(begin)),
	)
}
