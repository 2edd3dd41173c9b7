package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ankibridge/ankibridge-service/internal/dao"
	"github.com/ankibridge/ankibridge-service/pkg/storage"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestService builds a Service on a throwaway sqlite file and local
// media dir. The worker pool is nil so note history stays synchronous off.
func newTestService(t *testing.T, cfg Config) (*Service, context.Context) {
	t.Helper()
	dir := t.TempDir()

	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
		Type:         "sqlite",
		Path:         filepath.Join(dir, "collection.db"),
		TablePrefix:  "ab_",
		AutoMigrate:  true,
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store, err := storage.NewClient(&storage.Config{
		Type:     storage.LOCAL,
		SavePath: filepath.Join(dir, "media"),
	})
	require.NoError(t, err)

	svc := New(dao.New(db), store, nil, cfg, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaultDeck(ctx))
	return svc, ctx
}

// mustAddBasicNote seeds a Basic model plus one note and returns its ID.
func mustAddBasicNote(t *testing.T, svc *Service, ctx context.Context, front string, back string) int64 {
	t.Helper()
	ensureBasicModel(t, svc, ctx)
	id, err := svc.AddNote(ctx, basicNote("Default", front, back))
	require.NoError(t, err)
	return id
}

func ensureBasicModel(t *testing.T, svc *Service, ctx context.Context) {
	t.Helper()
	names, err := svc.ModelNames(ctx)
	require.NoError(t, err)
	for _, n := range names {
		if n == "Basic" {
			return
		}
	}
	_, err = svc.CreateModel(ctx, basicModelParams("Basic"))
	require.NoError(t, err)
}
