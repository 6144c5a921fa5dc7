package service_test

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tscat/internal/model"
	"tscat/internal/repository"
	"tscat/internal/repository/mock"
	"tscat/internal/repository/testutil"
	"tscat/internal/service"
	"tscat/internal/validate"
)

const excerptPath = "../ts/testdata/chessx_it_excerpt.ts"

type invalidatorStub struct {
	mu  sync.Mutex
	ids []int64
}

func (s *invalidatorStub) Invalidate(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, id)
}

func (s *invalidatorStub) calls() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.ids...)
}

type fixture struct {
	db       *sql.DB
	catalogs repository.CatalogRepository
	messages repository.MessageRepository
	cache    *invalidatorStub
	svc      service.CatalogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	f := &fixture{
		db:       db,
		catalogs: repository.NewCatalogRepository(db),
		messages: repository.NewMessageRepository(db),
		cache:    &invalidatorStub{},
	}
	f.svc = service.NewCatalogService(f.catalogs, f.messages, repository.NewTxRunner(db), f.cache)
	return f
}

func readExcerpt(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(excerptPath)
	require.NoError(t, err)
	return data
}

func (f *fixture) importExcerpt(t *testing.T) model.Catalog {
	t.Helper()
	res, err := f.svc.Import(context.Background(), "chessx_it", bytes.NewReader(readExcerpt(t)))
	require.NoError(t, err)
	return res.Catalog
}

func TestCatalogService_ImportAndExportRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	original := readExcerpt(t)

	res, err := f.svc.Import(ctx, "chessx_it", bytes.NewReader(original))
	require.NoError(t, err)
	require.True(t, res.Created)
	require.False(t, res.Unchanged)
	require.Equal(t, 33, res.Messages)
	require.Equal(t, "it_IT", res.Catalog.Language)
	require.Equal(t, "2.1", res.Catalog.Version)
	require.Len(t, res.Catalog.Hash, 64)

	exported, err := f.svc.Export(ctx, res.Catalog.ID)
	require.NoError(t, err)
	require.Equal(t, string(original), string(exported))

	got, err := f.svc.Get(ctx, res.Catalog.ID)
	require.NoError(t, err)
	require.Equal(t, 33, got.MessageCount)
	require.Equal(t, []model.StatusCount{
		{Status: "finished", Count: 24},
		{Status: "obsolete", Count: 1},
		{Status: "unfinished", Count: 7},
		{Status: "vanished", Count: 1},
	}, got.StatusCounts)
	require.Equal(t, []int64{res.Catalog.ID}, f.cache.calls())
}

func TestCatalogService_ReimportSkipsUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.importExcerpt(t)

	res, err := f.svc.Import(ctx, "chessx_it", bytes.NewReader(readExcerpt(t)))
	require.NoError(t, err)
	require.True(t, res.Unchanged)
	require.Equal(t, first.ID, res.Catalog.ID)
	require.Len(t, f.cache.calls(), 1)
}

func TestCatalogService_ReimportAfterEditRestoresFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	original := readExcerpt(t)
	c := f.importExcerpt(t)

	messages := service.NewMessageService(f.catalogs, f.messages, repository.NewTxRunner(f.db), f.cache)
	resigns := findMessage(t, f, c.ID, "Analysis", "Resigns")
	_, err := messages.UpdateTranslation(ctx, resigns.ID, service.UpdateTranslationInput{Translation: "Abbandona", Finished: true})
	require.NoError(t, err)

	stored, err := f.svc.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Empty(t, stored.Hash)

	res, err := f.svc.Import(ctx, "chessx_it", bytes.NewReader(original))
	require.NoError(t, err)
	require.False(t, res.Unchanged)
	require.Equal(t, c.Hash, res.Catalog.Hash)

	exported, err := f.svc.Export(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, string(original), string(exported))
}

func TestCatalogService_ReimportReplacesMessages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.importExcerpt(t)

	edited := strings.Replace(string(readExcerpt(t)),
		`<translation type="unfinished"></translation>`, `<translation>Abbandona</translation>`, 1)
	res, err := f.svc.Import(ctx, "chessx_it", strings.NewReader(edited))
	require.NoError(t, err)
	require.False(t, res.Created)
	require.False(t, res.Unchanged)
	require.Equal(t, first.ID, res.Catalog.ID)
	require.False(t, res.Catalog.CreatedAt.IsZero())

	exported, err := f.svc.Export(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, edited, string(exported))

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestCatalogService_ImportRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Import(ctx, "", strings.NewReader("<TS/>"))
	require.ErrorIs(t, err, service.ErrInvalid)
	_, err = f.svc.Import(ctx, "../etc", strings.NewReader("<TS/>"))
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = f.svc.Import(ctx, "broken", strings.NewReader("<TS><context>"))
	require.ErrorIs(t, err, service.ErrInvalid)
	var parseErr *service.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "broken", parseErr.Name)

	_, err = f.svc.Import(ctx, "html", strings.NewReader("<html></html>"))
	require.ErrorIs(t, err, service.ErrInvalid)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCatalogService_ImportFileUsesBaseName(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "chessx_it.ts")
	require.NoError(t, os.WriteFile(path, readExcerpt(t), 0o644))

	res, err := f.svc.ImportFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "chessx_it", res.Catalog.Name)
	require.NotNil(t, res.Catalog.Path)
	require.Equal(t, path, *res.Catalog.Path)

	require.Equal(t, "chessx_it", service.CatalogName("i18n/chessx_it.ts"))
}

func TestCatalogService_ReportAndValidate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.importExcerpt(t)

	rep, err := f.svc.Report(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "chessx_it", rep.Catalog)
	require.Equal(t, 33, rep.Counts.Total)
	require.Equal(t, 24, rep.Counts.Finished)
	require.Equal(t, 77.4, rep.Counts.Completion)

	issues, err := f.svc.Validate(ctx, c.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, issues)
	require.Empty(t, issues)

	_, err = f.svc.Validate(ctx, c.ID, []string{"spelling"})
	require.ErrorIs(t, err, service.ErrInvalid)

	issues, err = f.svc.Validate(ctx, c.ID, []string{validate.RuleEmptyFinished})
	require.NoError(t, err)
	require.Empty(t, issues)
}

func TestCatalogService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.importExcerpt(t)

	require.NoError(t, f.svc.Delete(ctx, c.ID))
	require.ErrorIs(t, f.svc.Delete(ctx, c.ID), service.ErrNotFound)
	_, err := f.svc.Get(ctx, c.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
	_, err = f.svc.Export(ctx, c.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
	require.Equal(t, []int64{c.ID, c.ID}, f.cache.calls())
}

func TestCatalogService_RepositoryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalogs := mock.NewMockCatalogRepository(ctrl)
	messages := mock.NewMockMessageRepository(ctrl)
	svc := service.NewCatalogService(catalogs, messages, nil, nil)
	ctx := context.Background()

	catalogs.EXPECT().GetByID(gomock.Any(), int64(7)).Return(model.Catalog{}, sql.ErrNoRows)
	_, err := svc.Get(ctx, 7)
	require.ErrorIs(t, err, service.ErrNotFound)

	boom := errors.New("disk I/O error")
	catalogs.EXPECT().GetByID(gomock.Any(), int64(8)).Return(model.Catalog{}, boom)
	_, err = svc.Get(ctx, 8)
	require.ErrorIs(t, err, boom)

	catalogs.EXPECT().FindByName(gomock.Any(), "chessx_it").Return(nil, boom)
	_, err = svc.Import(ctx, "chessx_it", bytes.NewReader(readExcerpt(t)))
	require.ErrorIs(t, err, boom)

	catalogs.EXPECT().GetByID(gomock.Any(), int64(9)).Return(model.Catalog{ID: 9, Name: "chessx_it"}, nil)
	messages.EXPECT().ListContexts(gomock.Any(), int64(9)).Return(nil, boom)
	_, err = svc.Export(ctx, 9)
	require.ErrorIs(t, err, boom)
}
