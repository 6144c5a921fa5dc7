package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	"tscat/internal/catalog"
	"tscat/internal/logger"
	"tscat/internal/model"
	"tscat/internal/repository"
)

var (
	catalogCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tscat_catalog_cache_hits_total",
		Help: "Translate lookups served from a cached catalog.",
	})
	catalogCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tscat_catalog_cache_misses_total",
		Help: "Translate lookups that had to load a catalog from storage.",
	})
)

const (
	FormatRaw  = ""
	FormatText = "text"
	FormatHTML = "html"
)

type TranslateRequest struct {
	CatalogID int64
	// Catalog selects by name when CatalogID is zero.
	Catalog        string
	Context        string
	Source         string
	Disambiguation string
	// N selects a numerus form and replaces %n / %Ln.
	N      *int
	Args   []string
	Format string
}

type TranslateResult struct {
	Catalog    string `json:"catalog"`
	Language   string `json:"language"`
	Text       string `json:"text"`
	Translated bool   `json:"translated"`
}

type TranslateService interface {
	Translate(ctx context.Context, req TranslateRequest) (TranslateResult, error)
	CacheInvalidator
}

type loadedCatalog struct {
	meta    model.Catalog
	catalog *catalog.Catalog
}

type translateService struct {
	catalogs repository.CatalogRepository
	messages repository.MessageRepository
	cache    *expirable.LRU[int64, *loadedCatalog]
	group    singleflight.Group
	// gens counts invalidations per catalog; a load only caches its result
	// if no invalidation happened while it was reading.
	mu       sync.Mutex
	gens     map[int64]uint64
	text     *bluemonday.Policy
	rich     *bluemonday.Policy
}

func NewTranslateService(catalogs repository.CatalogRepository, messages repository.MessageRepository, size int, ttl time.Duration) TranslateService {
	if size <= 0 {
		size = 32
	}
	return &translateService{
		catalogs: catalogs,
		messages: messages,
		cache:    expirable.NewLRU[int64, *loadedCatalog](size, nil, ttl),
		gens:     make(map[int64]uint64),
		text:     bluemonday.StrictPolicy(),
		rich:     bluemonday.UGCPolicy(),
	}
}

func (s *translateService) Translate(ctx context.Context, req TranslateRequest) (TranslateResult, error) {
	switch req.Format {
	case FormatRaw, FormatText, FormatHTML:
	default:
		return TranslateResult{}, fmt.Errorf("%w: unknown format %q", ErrInvalid, req.Format)
	}
	id, err := s.resolveID(ctx, req)
	if err != nil {
		return TranslateResult{}, err
	}
	loaded, err := s.load(ctx, id)
	if err != nil {
		return TranslateResult{}, err
	}

	c := loaded.catalog
	m, found := c.Lookup(req.Context, req.Source, req.Disambiguation)
	var text string
	if req.N != nil {
		text = c.TranslatePlural(req.Context, req.Source, req.Disambiguation, *req.N)
	} else {
		text = c.Translate(req.Context, req.Source, req.Disambiguation)
	}
	if len(req.Args) > 0 {
		text = catalog.Arg(text, req.Args...)
	}

	return TranslateResult{
		Catalog:    loaded.meta.Name,
		Language:   c.Language(),
		Text:       s.render(text, req.Format),
		Translated: found && m.HasTranslation(),
	}, nil
}

// Invalidate drops the cached catalog; the next lookup reloads it.
func (s *translateService) Invalidate(catalogID int64) {
	s.mu.Lock()
	s.gens[catalogID]++
	s.mu.Unlock()
	s.group.Forget(strconv.FormatInt(catalogID, 10))
	s.cache.Remove(catalogID)
}

func (s *translateService) generation(id int64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[id]
}

func (s *translateService) resolveID(ctx context.Context, req TranslateRequest) (int64, error) {
	if req.CatalogID != 0 {
		return req.CatalogID, nil
	}
	name := strings.TrimSpace(req.Catalog)
	if name == "" {
		return 0, fmt.Errorf("%w: catalog is required", ErrInvalid)
	}
	found, err := s.catalogs.FindByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("find catalog: %w", err)
	}
	if found == nil {
		return 0, ErrNotFound
	}
	return found.ID, nil
}

// load returns the cached catalog or builds it once for all concurrent callers.
func (s *translateService) load(ctx context.Context, id int64) (*loadedCatalog, error) {
	if c, ok := s.cache.Get(id); ok {
		catalogCacheHits.Inc()
		return c, nil
	}
	catalogCacheMisses.Inc()

	v, err, _ := s.group.Do(strconv.FormatInt(id, 10), func() (any, error) {
		gen := s.generation(id)
		meta, err := s.catalogs.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("get catalog: %w", err)
		}
		contexts, err := s.messages.ListContexts(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("list contexts: %w", err)
		}
		messages, err := s.messages.List(ctx, repository.MessageListFilter{CatalogID: id})
		if err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}
		loaded := &loadedCatalog{meta: meta, catalog: catalog.New(assemble(meta, contexts, messages))}
		s.mu.Lock()
		if s.gens[id] == gen {
			s.cache.Add(id, loaded)
		}
		s.mu.Unlock()
		logger.Debug("catalog loaded", "module", "service", "action", "load", "resource", "catalog", "result", "ok", "catalog_id", id, "entries", loaded.catalog.Len())
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*loadedCatalog), nil
}

var lineBreaks = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n")

func (s *translateService) render(text, format string) string {
	switch format {
	case FormatText:
		return html.UnescapeString(s.text.Sanitize(lineBreaks.Replace(text)))
	case FormatHTML:
		return s.rich.Sanitize(text)
	default:
		return text
	}
}
