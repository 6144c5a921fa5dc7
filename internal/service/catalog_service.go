package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tscat/internal/logger"
	"tscat/internal/model"
	"tscat/internal/report"
	"tscat/internal/repository"
	"tscat/internal/ts"
	"tscat/internal/validate"
)

// MaxImportSize bounds one uploaded TS file.
const MaxImportSize = 32 << 20

type CatalogService interface {
	// Import parses r and stores it under name, replacing any catalog with
	// that name. Identical content is detected by hash and left untouched.
	Import(ctx context.Context, name string, r io.Reader) (ImportResult, error)
	// ImportFile imports a file from disk; the catalog name is the base
	// name without the .ts extension.
	ImportFile(ctx context.Context, path string) (ImportResult, error)
	Export(ctx context.Context, id int64) ([]byte, error)
	Document(ctx context.Context, id int64) (model.Catalog, *ts.Document, error)
	List(ctx context.Context) ([]model.Catalog, error)
	Get(ctx context.Context, id int64) (model.Catalog, error)
	Delete(ctx context.Context, id int64) error
	Report(ctx context.Context, id int64) (report.Report, error)
	Validate(ctx context.Context, id int64, rules []string) ([]validate.Issue, error)
}

type ImportResult struct {
	Catalog   model.Catalog `json:"catalog"`
	Created   bool          `json:"created"`
	Unchanged bool          `json:"unchanged"`
	Messages  int           `json:"messages"`
}

// CacheInvalidator drops derived state for a catalog after it changes.
type CacheInvalidator interface {
	Invalidate(catalogID int64)
}

type catalogService struct {
	catalogs repository.CatalogRepository
	messages repository.MessageRepository
	tx       repository.TxRunner
	cache    CacheInvalidator
}

func NewCatalogService(catalogs repository.CatalogRepository, messages repository.MessageRepository, tx repository.TxRunner, cache CacheInvalidator) CatalogService {
	return &catalogService{catalogs: catalogs, messages: messages, tx: tx, cache: cache}
}

func (s *catalogService) Import(ctx context.Context, name string, r io.Reader) (ImportResult, error) {
	return s.importData(ctx, name, nil, r)
}

func (s *catalogService) ImportFile(ctx context.Context, path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return s.importData(ctx, CatalogName(path), &abs, f)
}

// CatalogName derives a catalog name from a file path: "i18n/chessx_it.ts" is "chessx_it".
func CatalogName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func (s *catalogService) importData(ctx context.Context, name string, path *string, r io.Reader) (ImportResult, error) {
	name = strings.TrimSpace(name)
	if !validName(name) {
		return ImportResult{}, ErrInvalid
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxImportSize+1))
	if err != nil {
		return ImportResult{}, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) > MaxImportSize {
		return ImportResult{}, &ParseError{Name: name, Err: errors.New("file too large")}
	}
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	doc, err := ts.Parse(bytes.NewReader(data))
	if err != nil {
		logger.Warn("catalog parse failed", "module", "service", "action", "import", "resource", "catalog", "result", "failed", "catalog", name, "error", err)
		return ImportResult{}, &ParseError{Name: name, Err: err}
	}

	existing, err := s.catalogs.FindByName(ctx, name)
	if err != nil {
		return ImportResult{}, fmt.Errorf("find catalog: %w", err)
	}
	if existing != nil && existing.Hash == hash {
		logger.Debug("catalog unchanged", "module", "service", "action", "import", "resource", "catalog", "result", "skipped", "catalog", name)
		return ImportResult{Catalog: *existing, Unchanged: true, Messages: existing.MessageCount}, nil
	}

	contexts, messages := flatten(doc)
	meta := model.Catalog{
		Name:           name,
		Language:       doc.Language,
		SourceLanguage: doc.SourceLanguage,
		Version:        doc.Version,
		Doctype:        doc.Doctype,
		Hash:           hash,
		Path:           path,
	}

	var stored model.Catalog
	err = s.tx.RunInTx(ctx, func(tx repository.Tx) error {
		var err error
		if existing == nil {
			stored, err = tx.Catalogs.Create(ctx, meta)
		} else {
			meta.ID = existing.ID
			meta.CreatedAt = existing.CreatedAt
			if meta.Path == nil {
				meta.Path = existing.Path
			}
			stored, err = tx.Catalogs.UpdateMeta(ctx, meta)
		}
		if err != nil {
			return fmt.Errorf("save catalog: %w", err)
		}
		return tx.Messages.ReplaceAll(ctx, stored.ID, contexts, messages)
	})
	if err != nil {
		logger.Error("catalog import failed", "module", "service", "action", "import", "resource", "catalog", "result", "failed", "catalog", name, "error", err)
		return ImportResult{}, err
	}
	stored.MessageCount = len(messages)
	s.invalidate(stored.ID)

	logger.Info("catalog imported", "module", "service", "action", "import", "resource", "catalog", "result", "ok", "catalog", name, "language", doc.Language, "messages", len(messages))
	return ImportResult{Catalog: stored, Created: existing == nil, Messages: len(messages)}, nil
}

func (s *catalogService) Document(ctx context.Context, id int64) (model.Catalog, *ts.Document, error) {
	catalog, err := s.Get(ctx, id)
	if err != nil {
		return model.Catalog{}, nil, err
	}
	contexts, err := s.messages.ListContexts(ctx, id)
	if err != nil {
		return model.Catalog{}, nil, fmt.Errorf("list contexts: %w", err)
	}
	messages, err := s.messages.List(ctx, repository.MessageListFilter{CatalogID: id})
	if err != nil {
		return model.Catalog{}, nil, fmt.Errorf("list messages: %w", err)
	}
	return catalog, assemble(catalog, contexts, messages), nil
}

func (s *catalogService) Export(ctx context.Context, id int64) ([]byte, error) {
	_, doc, err := s.Document(ctx, id)
	if err != nil {
		return nil, err
	}
	return ts.Marshal(doc)
}

func (s *catalogService) List(ctx context.Context) ([]model.Catalog, error) {
	return s.catalogs.List(ctx)
}

func (s *catalogService) Get(ctx context.Context, id int64) (model.Catalog, error) {
	catalog, err := s.catalogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Catalog{}, ErrNotFound
		}
		return model.Catalog{}, fmt.Errorf("get catalog: %w", err)
	}
	catalog.StatusCounts, err = s.messages.CountByStatus(ctx, id)
	if err != nil {
		return model.Catalog{}, err
	}
	return catalog, nil
}

func (s *catalogService) Delete(ctx context.Context, id int64) error {
	if err := s.catalogs.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete catalog: %w", err)
	}
	s.invalidate(id)
	logger.Info("catalog deleted", "module", "service", "action", "delete", "resource", "catalog", "result", "ok", "catalog_id", id)
	return nil
}

func (s *catalogService) Report(ctx context.Context, id int64) (report.Report, error) {
	catalog, doc, err := s.Document(ctx, id)
	if err != nil {
		return report.Report{}, err
	}
	return report.Build(catalog.Name, doc), nil
}

func (s *catalogService) Validate(ctx context.Context, id int64, rules []string) ([]validate.Issue, error) {
	for _, r := range rules {
		if !knownRule(r) {
			return nil, fmt.Errorf("%w: unknown rule %q", ErrInvalid, r)
		}
	}
	_, doc, err := s.Document(ctx, id)
	if err != nil {
		return nil, err
	}
	issues := validate.Check(doc, validate.Options{Rules: rules})
	if issues == nil {
		issues = []validate.Issue{}
	}
	return issues, nil
}

func (s *catalogService) invalidate(id int64) {
	if s.cache != nil {
		s.cache.Invalidate(id)
	}
}

func knownRule(rule string) bool {
	for _, r := range validate.Rules {
		if r == rule {
			return true
		}
	}
	return false
}
