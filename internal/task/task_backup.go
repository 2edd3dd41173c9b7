package task

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ankibridge/ankibridge-service/pkg/storage"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// BackupTask zips the collection database and every stored media file into
// a timestamped archive, keeping the newest Keep archives.
type BackupTask struct {
	// DBPath the sqlite collection file; empty disables the task body
	DBPath string
	// BackupPath where archives are written
	BackupPath string
	// Keep archives retained after a run
	Keep int
	// Spec cron schedule
	Spec string
	// Startup run once at boot
	Startup bool

	Store  storage.Storager
	Logger *zap.Logger
}

func (t *BackupTask) Name() string                { return "backup" }
func (t *BackupTask) LoopInterval() time.Duration { return 0 }
func (t *BackupTask) IsStartupRun() bool          { return t.Startup }
func (t *BackupTask) CronSpec() string            { return t.Spec }

func (t *BackupTask) Run(ctx context.Context) error {
	if t.DBPath == "" {
		return nil
	}
	if err := os.MkdirAll(t.BackupPath, os.ModePerm); err != nil {
		return errors.Wrap(err, "create backup dir")
	}

	name := fmt.Sprintf("backup-%s.zip", time.Now().Format("20060102-150405"))
	target := filepath.Join(t.BackupPath, name)

	if err := t.writeArchive(ctx, target); err != nil {
		_ = os.Remove(target)
		return err
	}
	if t.Logger != nil {
		t.Logger.Info("backup written", zap.String("archive", target))
	}
	return t.pruneOld()
}

func (t *BackupTask) writeArchive(ctx context.Context, target string) error {
	f, err := os.Create(target)
	if err != nil {
		return errors.Wrap(err, "create archive")
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	if err := t.addFile(zw, t.DBPath, "collection.db"); err != nil {
		return err
	}

	if t.Store == nil {
		return nil
	}
	keys, err := t.Store.List()
	if err != nil {
		return errors.Wrap(err, "list media")
	}
	for _, key := range keys {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		content, err := t.Store.ReadContent(key)
		if err != nil {
			return errors.Wrapf(err, "read media %s", key)
		}
		w, err := zw.Create("media/" + key)
		if err != nil {
			return errors.Wrap(err, "archive entry")
		}
		if _, err := w.Write(content); err != nil {
			return errors.Wrap(err, "archive write")
		}
	}
	return nil
}

func (t *BackupTask) addFile(zw *zip.Writer, path string, entry string) error {
	src, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer src.Close()

	w, err := zw.Create(entry)
	if err != nil {
		return errors.Wrap(err, "archive entry")
	}
	_, err = io.Copy(w, src)
	return errors.Wrap(err, "archive write")
}

// pruneOld deletes the oldest archives past the Keep limit. Archive names
// sort chronologically.
func (t *BackupTask) pruneOld() error {
	if t.Keep <= 0 {
		return nil
	}
	entries, err := os.ReadDir(t.BackupPath)
	if err != nil {
		return errors.Wrap(err, "read backup dir")
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "backup-") && strings.HasSuffix(e.Name(), ".zip") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= t.Keep {
		return nil
	}
	sort.Strings(names)
	for _, name := range names[:len(names)-t.Keep] {
		if err := os.Remove(filepath.Join(t.BackupPath, name)); err != nil {
			return errors.Wrapf(err, "remove %s", name)
		}
	}
	return nil
}
