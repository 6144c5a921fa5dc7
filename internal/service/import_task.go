package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	TaskRunning   = "running"
	TaskDone      = "done"
	TaskError     = "error"
	TaskCancelled = "cancelled"
)

// ImportTask is the progress of one background directory sync.
type ImportTask struct {
	ID        string      `json:"id"`
	Status    string      `json:"status"`
	Dir       string      `json:"dir"`
	Total     int         `json:"total"`
	Current   int         `json:"current"`
	File      string      `json:"file,omitempty"`
	Result    *SyncResult `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

type ImportTaskService interface {
	Start(dir string, total int) (string, context.Context)
	Update(current int, file string)
	Complete(result SyncResult)
	Fail(err error)
	Get() *ImportTask
	Cancel() bool
}

type importTaskManager struct {
	mu      sync.RWMutex
	current *ImportTask
	cancel  context.CancelFunc
}

func NewImportTaskService() ImportTaskService {
	return &importTaskManager{}
}

// Start replaces the tracked task, cancelling a previous one still running.
func (m *importTaskManager) Start(dir string, total int) (string, context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	id := uuid.New().String()
	m.current = &ImportTask{
		ID:        id,
		Status:    TaskRunning,
		Dir:       dir,
		Total:     total,
		CreatedAt: time.Now(),
	}
	return id, ctx
}

func (m *importTaskManager) Update(current int, file string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.current.Status == TaskRunning {
		m.current.Current = current
		m.current.File = file
	}
}

func (m *importTaskManager) Complete(result SyncResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.current.Status == TaskRunning {
		m.current.Status = TaskDone
		m.current.Result = &result
		m.current.File = ""
	}
	m.release()
}

func (m *importTaskManager) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.current.Status == TaskRunning {
		m.current.Status = TaskError
		m.current.Error = err.Error()
		m.current.File = ""
	}
	m.release()
}

func (m *importTaskManager) Get() *ImportTask {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil
	}
	task := *m.current
	if m.current.Result != nil {
		result := *m.current.Result
		task.Result = &result
	}
	return &task
}

func (m *importTaskManager) Cancel() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil || m.current.Status != TaskRunning {
		return false
	}
	m.release()
	m.current.Status = TaskCancelled
	m.current.File = ""
	return true
}

// release cancels the task context. Callers hold mu.
func (m *importTaskManager) release() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}
