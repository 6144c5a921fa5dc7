package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"tscat/internal/handler"
	"tscat/internal/repository"
	"tscat/internal/repository/testutil"
	"tscat/internal/service"
	"tscat/internal/service/ai"
)

const excerptPath = "../ts/testdata/chessx_it_excerpt.ts"

type testServer struct {
	e       *echo.Echo
	syncDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewTestDB(t)
	catalogRepo := repository.NewCatalogRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	limiter := ai.NewRateLimiter(ai.DefaultRateLimit)

	settings := service.NewSettingsService(repository.NewSettingsRepository(db), limiter)
	translate := service.NewTranslateService(catalogRepo, messageRepo, 8, time.Minute)
	catalogs := service.NewCatalogService(catalogRepo, messageRepo, repository.NewTxRunner(db), translate)
	messages := service.NewMessageService(catalogRepo, messageRepo, repository.NewTxRunner(db), translate)
	suggestions := service.NewSuggestService(catalogRepo, messageRepo, repository.NewSuggestionRepository(db), settings, limiter, nil)

	dir := t.TempDir()
	syncs := service.NewSyncService(catalogs, service.NewImportTaskService(), 2)

	e := echo.New()
	g := e.Group("/api")
	handler.NewCatalogHandler(catalogs, suggestions).RegisterRoutes(g)
	handler.NewMessageHandler(messages, suggestions).RegisterRoutes(g)
	handler.NewTranslateHandler(translate).RegisterRoutes(g)
	handler.NewSyncHandler(syncs, dir).RegisterRoutes(g)
	handler.NewSettingsHandler(settings).RegisterRoutes(g)
	return &testServer{e: e, syncDir: dir}
}

func (s *testServer) do(t *testing.T, method, target string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func readExcerpt(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(excerptPath)
	require.NoError(t, err)
	return data
}

type catalogJSON struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Language     string         `json:"language"`
	MessageCount int            `json:"messageCount"`
	StatusCounts map[string]int `json:"statusCounts"`
}

type importJSON struct {
	Catalog   catalogJSON `json:"catalog"`
	Created   bool        `json:"created"`
	Unchanged bool        `json:"unchanged"`
	Messages  int         `json:"messages"`
}

type messageJSON struct {
	ID           string   `json:"id"`
	Context      string   `json:"context"`
	Source       string   `json:"source"`
	Translation  string   `json:"translation"`
	NumerusForms []string `json:"numerusForms"`
	Status       string   `json:"status"`
}

func (s *testServer) importMultipart(t *testing.T) importJSON {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "chessx_it.ts")
	require.NoError(t, err)
	_, err = part.Write(readExcerpt(t))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rec := s.do(t, http.MethodPost, "/api/catalogs/import", buf.Bytes(), w.FormDataContentType())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[importJSON](t, rec)
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t)
	imported := s.importMultipart(t)
	require.True(t, imported.Created)
	require.Equal(t, "chessx_it", imported.Catalog.Name)
	require.Equal(t, "it_IT", imported.Catalog.Language)
	require.Equal(t, 33, imported.Messages)
	id := imported.Catalog.ID

	// raw body with the same content is skipped
	rec := s.do(t, http.MethodPost, "/api/catalogs/import?name=chessx_it", readExcerpt(t), "application/xml")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[importJSON](t, rec).Unchanged)

	rec = s.do(t, http.MethodGet, "/api/catalogs", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]catalogJSON](t, rec)
	require.Len(t, list, 1)
	require.Equal(t, id, list[0].ID)
	require.Empty(t, list[0].StatusCounts)

	rec = s.do(t, http.MethodGet, "/api/catalogs/"+id, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[catalogJSON](t, rec)
	require.Equal(t, 33, got.MessageCount)
	require.Equal(t, map[string]int{"finished": 24, "unfinished": 7, "obsolete": 1, "vanished": 1}, got.StatusCounts)

	rec = s.do(t, http.MethodGet, "/api/catalogs/"+id+"/export", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, readExcerpt(t), rec.Body.Bytes())
	require.Contains(t, rec.Header().Get("Content-Disposition"), `filename="chessx_it.ts"`)

	rec = s.do(t, http.MethodGet, "/api/catalogs/"+id+"/report", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "77.4")

	rec = s.do(t, http.MethodGet, "/api/catalogs/"+id+"/report?format=markdown", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "text/markdown"))
	require.Contains(t, rec.Body.String(), "|")

	rec = s.do(t, http.MethodGet, "/api/catalogs/"+id+"/report?format=pdf", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/catalogs/"+id+"/issues", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/catalogs/"+id+"/issues?rule=nonsense", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/catalogs/"+id+"/suggestions", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"deleted":0}`, rec.Body.String())

	rec = s.do(t, http.MethodDelete, "/api/catalogs/"+id, nil, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/catalogs/"+id, nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogImportErrors(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/catalogs/import", readExcerpt(t), "application/xml")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/catalogs/import?name=broken", []byte("<TS><context>"), "application/xml")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/catalogs/abc", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMessageRoutes(t *testing.T) {
	s := newTestServer(t)
	id := s.importMultipart(t).Catalog.ID

	rec := s.do(t, http.MethodGet, "/api/catalogs/"+id+"/messages?status=unfinished", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	unfinished := decode[[]messageJSON](t, rec)
	require.Len(t, unfinished, 7)
	require.Equal(t, "Resigns", unfinished[0].Source)

	rec = s.do(t, http.MethodGet, "/api/catalogs/"+id+"/messages?status=bogus", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/catalogs/"+id+"/messages?limit=x", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	msgURL := "/api/messages/" + unfinished[0].ID
	rec = s.do(t, http.MethodPut, msgURL, []byte(`{"translation":"Abbandona","finished":true}`), echo.MIMEApplicationJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[messageJSON](t, rec)
	require.Equal(t, "finished", updated.Status)
	require.Equal(t, "Abbandona", updated.Translation)

	rec = s.do(t, http.MethodGet, msgURL, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Abbandona", decode[messageJSON](t, rec).Translation)

	rec = s.do(t, http.MethodPut, msgURL, []byte(`{"finished":true}`), echo.MIMEApplicationJSON)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// the edit is visible to lookups right away
	q := url.Values{"catalog": {"chessx_it"}, "context": {"Analysis"}, "source": {"Resigns"}}
	rec = s.do(t, http.MethodGet, "/api/translate?"+q.Encode(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"catalog":"chessx_it","language":"it_IT","text":"Abbandona","translated":true}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/messages/"+unfinished[1].ID+"/suggest", nil, "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTranslateRoute(t *testing.T) {
	s := newTestServer(t)
	id := s.importMultipart(t).Catalog.ID

	q := url.Values{"catalog": {id}, "context": {"AnalysisWidget"}, "source": {"White wins in %n moves"}, "n": {"5"}}
	rec := s.do(t, http.MethodGet, "/api/translate?"+q.Encode(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Il Bianco vince in 5 mosse", decode[service.TranslateResult](t, rec).Text)

	q = url.Values{"catalog": {"chessx_it"}, "context": {"Analysis"}, "source": {"Mate in %1"}, "arg": {"2"}}
	rec = s.do(t, http.MethodGet, "/api/translate?"+q.Encode(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Matto in 2", decode[service.TranslateResult](t, rec).Text)

	rec = s.do(t, http.MethodGet, "/api/translate?catalog=chessx_it&n=x&source=Mate", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/translate?catalog=chessx_it", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/translate?catalog=chessx_de&source=Mate", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	// a numeric name that is not an ID resolves by name
	rec = s.do(t, http.MethodPost, "/api/catalogs/import?name=2024", readExcerpt(t), "application/xml")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.do(t, http.MethodGet, "/api/translate?catalog=2024&context=Analysis&source=Mate", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[service.TranslateResult](t, rec)
	require.Equal(t, "2024", res.Catalog)
	require.Equal(t, "Matto", res.Text)
	rec = s.do(t, http.MethodGet, "/api/translate?catalog=99&source=Mate", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSyncRoutes(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.syncDir, "chessx_it.ts"), readExcerpt(t), 0o644))

	rec := s.do(t, http.MethodGet, "/api/sync/status", nil, "")
	require.JSONEq(t, `{"status":"idle"}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/sync", nil, "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, service.TaskRunning, decode[service.ImportTask](t, rec).Status)

	require.Eventually(t, func() bool {
		rec := s.do(t, http.MethodGet, "/api/sync/status", nil, "")
		return decode[service.ImportTask](t, rec).Status == service.TaskDone
	}, 5*time.Second, 20*time.Millisecond)

	rec = s.do(t, http.MethodGet, "/api/catalogs", nil, "")
	require.Len(t, decode[[]catalogJSON](t, rec), 1)

	rec = s.do(t, http.MethodPost, "/api/sync/cancel", nil, "")
	require.JSONEq(t, `{"cancelled":false}`, rec.Body.String())
}

func TestSettingsRoutes(t *testing.T) {
	s := newTestServer(t)

	body := []byte(`{"provider":"openai","apiKey":"sk-proj-abcdefghijklmnop","model":"gpt-4o-mini","rateLimit":5}`)
	rec := s.do(t, http.MethodPut, "/api/settings/ai", body, echo.MIMEApplicationJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/settings/ai", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[service.AISettings](t, rec)
	require.Equal(t, "sk-***nop", got.APIKey)
	require.Equal(t, 5, got.RateLimit)

	rec = s.do(t, http.MethodPut, "/api/settings/ai", []byte(`{"provider":"gemini"}`), echo.MIMEApplicationJSON)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
