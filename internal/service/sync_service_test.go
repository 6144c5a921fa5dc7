package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tscat/internal/service"
)

func writeCatalogDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chessx_it.ts"), readExcerpt(t), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.ts"), []byte("<TS version=\"2.1\"><context>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a catalog"), 0o644))
	return dir
}

func TestSyncService_SyncDir(t *testing.T) {
	f := newFixture(t)
	dir := writeCatalogDir(t)
	svc := service.NewSyncService(f.svc, service.NewImportTaskService(), 2)
	ctx := context.Background()

	res, err := svc.SyncDir(ctx, dir)
	require.NoError(t, err)
	require.Equal(t, 2, res.Files)
	require.Equal(t, 1, res.Imported)
	require.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	require.Equal(t, "broken.ts", res.Errors[0].File)

	catalogs, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, catalogs, 1)
	require.Equal(t, "chessx_it", catalogs[0].Name)

	res, err = svc.SyncDir(ctx, dir)
	require.NoError(t, err)
	require.Equal(t, 0, res.Imported)
	require.Equal(t, 1, res.Unchanged)
	require.False(t, svc.IsSyncing())
}

func TestSyncService_SyncDirErrors(t *testing.T) {
	f := newFixture(t)
	svc := service.NewSyncService(f.svc, service.NewImportTaskService(), 0)

	_, err := svc.SyncDir(context.Background(), "")
	require.ErrorIs(t, err, service.ErrInvalid)
	_, err = svc.SyncDir(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	require.False(t, svc.IsSyncing())
}

// blockingCatalogs holds ImportFile until release is closed or ctx ends.
type blockingCatalogs struct {
	service.CatalogService
	started chan struct{}
	release chan struct{}
}

func (b *blockingCatalogs) ImportFile(ctx context.Context, path string) (service.ImportResult, error) {
	select {
	case b.started <- struct{}{}:
	default:
	}
	select {
	case <-b.release:
		return service.ImportResult{}, nil
	case <-ctx.Done():
		return service.ImportResult{}, ctx.Err()
	}
}

func TestSyncService_StartTracksTask(t *testing.T) {
	dir := writeCatalogDir(t)
	catalogs := &blockingCatalogs{started: make(chan struct{}, 1), release: make(chan struct{})}
	svc := service.NewSyncService(catalogs, service.NewImportTaskService(), 1)

	require.Nil(t, svc.Status())
	task, err := svc.Start(dir)
	require.NoError(t, err)
	require.Equal(t, service.TaskRunning, task.Status)
	require.Equal(t, 2, task.Total)
	require.NotEmpty(t, task.ID)

	<-catalogs.started
	_, err = svc.Start(dir)
	require.ErrorIs(t, err, service.ErrSyncRunning)
	_, err = svc.SyncDir(context.Background(), dir)
	require.ErrorIs(t, err, service.ErrSyncRunning)

	close(catalogs.release)
	require.Eventually(t, func() bool { return !svc.IsSyncing() }, 5*time.Second, 10*time.Millisecond)

	done := svc.Status()
	require.Equal(t, service.TaskDone, done.Status)
	require.Equal(t, 2, done.Current)
	require.NotNil(t, done.Result)
	require.Equal(t, 2, done.Result.Imported)
}

func TestSyncService_Cancel(t *testing.T) {
	dir := writeCatalogDir(t)
	catalogs := &blockingCatalogs{started: make(chan struct{}, 1), release: make(chan struct{})}
	svc := service.NewSyncService(catalogs, service.NewImportTaskService(), 1)

	require.False(t, svc.Cancel())
	_, err := svc.Start(dir)
	require.NoError(t, err)
	<-catalogs.started

	require.True(t, svc.Cancel())
	require.Eventually(t, func() bool { return !svc.IsSyncing() }, 5*time.Second, 10*time.Millisecond)
	require.Equal(t, service.TaskCancelled, svc.Status().Status)
	require.False(t, svc.Cancel())
}
