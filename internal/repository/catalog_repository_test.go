package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tscat/internal/model"
	"tscat/internal/repository"
	"tscat/internal/repository/testutil"
)

func TestCatalogRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewCatalogRepository(db)
	ctx := context.Background()

	path := "/srv/i18n/chessx_it.ts"
	created, err := repo.Create(ctx, model.Catalog{
		Name:     "chessx_it",
		Language: "it_IT",
		Version:  "2.1",
		Doctype:  true,
		Hash:     "abc",
		Path:     &path,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "chessx_it", fetched.Name)
	require.Equal(t, "it_IT", fetched.Language)
	require.True(t, fetched.Doctype)
	require.Equal(t, path, *fetched.Path)
	require.Zero(t, fetched.MessageCount)
	require.False(t, fetched.CreatedAt.IsZero())

	_, err = repo.GetByID(ctx, created.ID+1)
	require.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestCatalogRepository_NameIsUnique(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewCatalogRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, model.Catalog{Name: "chessx_it"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, model.Catalog{Name: "chessx_it"})
	require.Error(t, err)
}

func TestCatalogRepository_FindByNameAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewCatalogRepository(db)
	ctx := context.Background()

	testutil.SeedCatalog(t, db, model.Catalog{Name: "chessx_it", Language: "it_IT"}, nil, []model.Message{
		testutil.Message(0, "AboutDlg", "Version", "Versione"),
		testutil.Message(1, "AboutDlg", "License", "Licenza"),
	})
	testutil.SeedCatalog(t, db, model.Catalog{Name: "chessx_de", Language: "de_DE"}, nil, nil)

	found, err := repo.FindByName(ctx, "chessx_it")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, 2, found.MessageCount)

	missing, err := repo.FindByName(ctx, "chessx_fr")
	require.NoError(t, err)
	require.Nil(t, missing)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "chessx_de", list[0].Name)
	require.Equal(t, "chessx_it", list[1].Name)
}

func TestCatalogRepository_UpdateMeta(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewCatalogRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Catalog{Name: "chessx_it", Hash: "old", Version: "2.0"})
	require.NoError(t, err)

	created.Hash = "new"
	created.Version = "2.1"
	_, err = repo.UpdateMeta(ctx, created)
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "new", fetched.Hash)
	require.Equal(t, "2.1", fetched.Version)

	_, err = repo.UpdateMeta(ctx, model.Catalog{ID: 42})
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCatalogRepository_SetHash(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewCatalogRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Catalog{Name: "chessx_it", Hash: "abc"})
	require.NoError(t, err)

	require.NoError(t, repo.SetHash(ctx, created.ID, ""))
	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Empty(t, fetched.Hash)

	require.ErrorIs(t, repo.SetHash(ctx, 42, ""), sql.ErrNoRows)
}

func TestCatalogRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewCatalogRepository(db)
	messages := repository.NewMessageRepository(db)
	ctx := context.Background()

	id := testutil.SeedCatalog(t, db, model.Catalog{Name: "chessx_it"},
		[]model.Context{{Position: 0, Name: "AboutDlg"}},
		[]model.Message{testutil.Message(0, "AboutDlg", "Version", "Versione")},
	)

	require.NoError(t, repo.Delete(ctx, id))
	require.ErrorIs(t, repo.Delete(ctx, id), sql.ErrNoRows)

	left, err := messages.List(ctx, repository.MessageListFilter{CatalogID: id})
	require.NoError(t, err)
	require.Empty(t, left)
	contexts, err := messages.ListContexts(ctx, id)
	require.NoError(t, err)
	require.Empty(t, contexts)
}
