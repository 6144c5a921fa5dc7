package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"tscat/internal/logger"
)

const DefaultSyncWorkers = 4

type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type SyncResult struct {
	Files     int         `json:"files"`
	Imported  int         `json:"imported"`
	Unchanged int         `json:"unchanged"`
	Failed    int         `json:"failed"`
	Errors    []FileError `json:"errors,omitempty"`
}

type SyncService interface {
	// SyncDir imports every *.ts file of dir. A file that fails to import is
	// recorded in the result and does not stop the others.
	SyncDir(ctx context.Context, dir string) (SyncResult, error)
	// Start runs SyncDir in the background and tracks it as an ImportTask.
	Start(dir string) (*ImportTask, error)
	Status() *ImportTask
	Cancel() bool
	IsSyncing() bool
}

type syncService struct {
	catalogs CatalogService
	tasks    ImportTaskService
	workers  int
	running  atomic.Bool
}

func NewSyncService(catalogs CatalogService, tasks ImportTaskService, workers int) SyncService {
	if workers <= 0 {
		workers = DefaultSyncWorkers
	}
	return &syncService{catalogs: catalogs, tasks: tasks, workers: workers}
}

func (s *syncService) SyncDir(ctx context.Context, dir string) (SyncResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return SyncResult{}, ErrSyncRunning
	}
	defer s.running.Store(false)

	files, err := listTSFiles(dir)
	if err != nil {
		return SyncResult{}, err
	}
	return s.sync(ctx, dir, files, nil)
}

func (s *syncService) Start(dir string) (*ImportTask, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSyncRunning
	}
	files, err := listTSFiles(dir)
	if err != nil {
		s.running.Store(false)
		return nil, err
	}

	_, ctx := s.tasks.Start(dir, len(files))
	go func() {
		defer s.running.Store(false)
		result, err := s.sync(ctx, dir, files, s.tasks.Update)
		if err != nil {
			s.tasks.Fail(err)
			return
		}
		s.tasks.Complete(result)
	}()
	return s.tasks.Get(), nil
}

func (s *syncService) Status() *ImportTask {
	return s.tasks.Get()
}

func (s *syncService) Cancel() bool {
	return s.tasks.Cancel()
}

func (s *syncService) IsSyncing() bool {
	return s.running.Load()
}

func (s *syncService) sync(ctx context.Context, dir string, files []string, progress func(int, string)) (SyncResult, error) {
	result := SyncResult{Files: len(files)}
	var (
		mu   sync.Mutex
		done int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := s.catalogs.ImportFile(ctx, file)

			mu.Lock()
			defer mu.Unlock()
			done++
			switch {
			case err != nil && ctx.Err() != nil:
				return ctx.Err()
			case err != nil:
				result.Failed++
				result.Errors = append(result.Errors, FileError{File: filepath.Base(file), Error: err.Error()})
				logger.Warn("catalog sync failed", "module", "service", "action", "sync", "resource", "catalog", "result", "failed", "file", file, "error", err)
			case res.Unchanged:
				result.Unchanged++
			default:
				result.Imported++
			}
			if progress != nil {
				progress(done, filepath.Base(file))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("catalog sync cancelled", "module", "service", "action", "sync", "resource", "catalog", "result", "cancelled", "dir", dir)
		}
		return result, err
	}

	sort.Slice(result.Errors, func(i, j int) bool { return result.Errors[i].File < result.Errors[j].File })
	logger.Info("catalog sync completed", "module", "service", "action", "sync", "resource", "catalog", "result", "ok",
		"dir", dir, "files", result.Files, "imported", result.Imported, "unchanged", result.Unchanged, "failed", result.Failed)
	return result, nil
}

func listTSFiles(dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: catalog directory not configured", ErrInvalid)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ".ts") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
