package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tscat/internal/service"
)

func TestImportTask_Lifecycle(t *testing.T) {
	tasks := service.NewImportTaskService()
	require.Nil(t, tasks.Get())

	id, ctx := tasks.Start("/srv/i18n", 3)
	require.NotEmpty(t, id)
	tasks.Update(1, "chessx_it.ts")

	task := tasks.Get()
	require.Equal(t, id, task.ID)
	require.Equal(t, service.TaskRunning, task.Status)
	require.Equal(t, 1, task.Current)
	require.Equal(t, "chessx_it.ts", task.File)

	tasks.Complete(service.SyncResult{Files: 3, Imported: 3})
	task = tasks.Get()
	require.Equal(t, service.TaskDone, task.Status)
	require.Empty(t, task.File)
	require.Equal(t, 3, task.Result.Imported)
	require.Error(t, ctx.Err())

	// updates after completion are ignored
	tasks.Update(2, "late.ts")
	require.Equal(t, 1, tasks.Get().Current)
}

func TestImportTask_GetReturnsCopy(t *testing.T) {
	tasks := service.NewImportTaskService()
	tasks.Start("dir", 1)
	tasks.Complete(service.SyncResult{Imported: 1})

	task := tasks.Get()
	task.Result.Imported = 42
	task.Status = "mutated"
	require.Equal(t, 1, tasks.Get().Result.Imported)
	require.Equal(t, service.TaskDone, tasks.Get().Status)
}

func TestImportTask_FailAndCancel(t *testing.T) {
	tasks := service.NewImportTaskService()

	tasks.Start("dir", 2)
	tasks.Fail(errors.New("disk gone"))
	require.Equal(t, service.TaskError, tasks.Get().Status)
	require.Equal(t, "disk gone", tasks.Get().Error)
	require.False(t, tasks.Cancel())

	_, ctx := tasks.Start("dir", 2)
	require.True(t, tasks.Cancel())
	require.Error(t, ctx.Err())
	tasks.Fail(errors.New("context canceled"))
	require.Equal(t, service.TaskCancelled, tasks.Get().Status)
}

func TestImportTask_StartCancelsPrevious(t *testing.T) {
	tasks := service.NewImportTaskService()
	first, firstCtx := tasks.Start("a", 1)
	second, _ := tasks.Start("b", 1)
	require.NotEqual(t, first, second)
	require.Error(t, firstCtx.Err())
	require.Equal(t, "b", tasks.Get().Dir)
}
