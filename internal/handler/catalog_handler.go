package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"tscat/internal/model"
	"tscat/internal/report"
	"tscat/internal/service"
	"tscat/internal/validate"
)

type CatalogHandler struct {
	catalogs    service.CatalogService
	suggestions service.SuggestService
}

type catalogResponse struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Language       string         `json:"language"`
	SourceLanguage string         `json:"sourceLanguage,omitempty"`
	Version        string         `json:"version"`
	Hash           string         `json:"hash"`
	Path           *string        `json:"path,omitempty"`
	MessageCount   int            `json:"messageCount"`
	StatusCounts   map[string]int `json:"statusCounts,omitempty"`
	CreatedAt      string         `json:"createdAt"`
	UpdatedAt      string         `json:"updatedAt"`
}

type importResponse struct {
	Catalog   catalogResponse `json:"catalog"`
	Created   bool            `json:"created"`
	Unchanged bool            `json:"unchanged"`
	Messages  int             `json:"messages"`
}

type issuesResponse struct {
	Issues    []validate.Issue `json:"issues"`
	HasErrors bool             `json:"hasErrors"`
}

func NewCatalogHandler(catalogs service.CatalogService, suggestions service.SuggestService) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs, suggestions: suggestions}
}

func (h *CatalogHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/catalogs/import", h.Import)
	g.GET("/catalogs", h.List)
	g.GET("/catalogs/:id", h.Get)
	g.DELETE("/catalogs/:id", h.Delete)
	g.GET("/catalogs/:id/export", h.Export)
	g.GET("/catalogs/:id/report", h.Report)
	g.GET("/catalogs/:id/issues", h.Issues)
	g.DELETE("/catalogs/:id/suggestions", h.ClearSuggestions)
}

// Import stores a TS file as a catalog.
// @Summary Import a TS file
// @Description Upload a Qt Linguist TS file as multipart "file" or raw XML body. A catalog with the same name is replaced; identical content is skipped.
// @Tags catalogs
// @Accept multipart/form-data
// @Accept xml
// @Produce json
// @Param name query string false "Catalog name (defaults to the uploaded file name)"
// @Param file formData file false "TS file"
// @Success 200 {object} importResponse
// @Success 201 {object} importResponse
// @Failure 400 {object} errorResponse
// @Failure 413 {object} errorResponse
// @Router /catalogs/import [post]
func (h *CatalogHandler) Import(c echo.Context) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response().Writer, req.Body, service.MaxImportSize)

	name := strings.TrimSpace(c.QueryParam("name"))
	var reader io.Reader
	if strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/") {
		file, err := c.FormFile("file")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: "missing file"})
			}
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		}
		if file.Size > service.MaxImportSize {
			return c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
		}
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		}
		defer src.Close()
		if name == "" {
			name = service.CatalogName(file.Filename)
		}
		reader = src
	} else {
		reader = req.Body
	}
	if name == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "name is required"})
	}

	result, err := h.catalogs.Import(req.Context(), name, reader)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
		}
		return writeServiceError(c, err)
	}
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	return c.JSON(status, importResponse{
		Catalog:   toCatalogResponse(result.Catalog),
		Created:   result.Created,
		Unchanged: result.Unchanged,
		Messages:  result.Messages,
	})
}

// List returns all catalogs.
// @Summary List catalogs
// @Tags catalogs
// @Produce json
// @Success 200 {array} catalogResponse
// @Router /catalogs [get]
func (h *CatalogHandler) List(c echo.Context) error {
	catalogs, err := h.catalogs.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]catalogResponse, len(catalogs))
	for i, catalog := range catalogs {
		response[i] = toCatalogResponse(catalog)
	}
	return c.JSON(http.StatusOK, response)
}

// Get returns one catalog.
// @Summary Get a catalog
// @Tags catalogs
// @Produce json
// @Param id path string true "Catalog ID"
// @Success 200 {object} catalogResponse
// @Failure 404 {object} errorResponse
// @Router /catalogs/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}
	catalog, err := h.catalogs.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toCatalogResponse(catalog))
}

// Delete removes a catalog with its messages and suggestions.
// @Summary Delete a catalog
// @Tags catalogs
// @Param id path string true "Catalog ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /catalogs/{id} [delete]
func (h *CatalogHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}
	if err := h.catalogs.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Export writes the catalog back as a TS file.
// @Summary Export a catalog
// @Tags catalogs
// @Produce xml
// @Param id path string true "Catalog ID"
// @Success 200 {string} string "TS file content"
// @Failure 404 {object} errorResponse
// @Router /catalogs/{id}/export [get]
func (h *CatalogHandler) Export(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}
	ctx := c.Request().Context()
	catalog, err := h.catalogs.Get(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	payload, err := h.catalogs.Export(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.ts"`, catalog.Name))
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", payload)
}

// Report returns translation progress per context.
// @Summary Catalog status report
// @Tags catalogs
// @Produce json
// @Produce text/markdown
// @Param id path string true "Catalog ID"
// @Param format query string false "json (default) or markdown"
// @Success 200 {object} report.Report
// @Failure 404 {object} errorResponse
// @Router /catalogs/{id}/report [get]
func (h *CatalogHandler) Report(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}
	rep, err := h.catalogs.Report(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	switch c.QueryParam("format") {
	case "", "json":
		return c.JSON(http.StatusOK, rep)
	case "markdown", "md":
		c.Response().Header().Set(echo.HeaderContentType, "text/markdown; charset=utf-8")
		c.Response().WriteHeader(http.StatusOK)
		return report.WriteMarkdown(c.Response(), rep)
	default:
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid format"})
	}
}

// Issues runs the integrity checks over the catalog.
// @Summary Validate a catalog
// @Tags catalogs
// @Produce json
// @Param id path string true "Catalog ID"
// @Param rule query []string false "Restrict to rules" collectionFormat(multi)
// @Success 200 {object} issuesResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /catalogs/{id}/issues [get]
func (h *CatalogHandler) Issues(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}
	issues, err := h.catalogs.Validate(c.Request().Context(), id, c.QueryParams()["rule"])
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, issuesResponse{Issues: issues, HasErrors: validate.HasErrors(issues)})
}

// ClearSuggestions drops the stored AI suggestions of a catalog.
// @Summary Clear suggestions
// @Tags catalogs
// @Produce json
// @Param id path string true "Catalog ID"
// @Success 200 {object} deletedCountResponse
// @Failure 404 {object} errorResponse
// @Router /catalogs/{id}/suggestions [delete]
func (h *CatalogHandler) ClearSuggestions(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}
	n, err := h.suggestions.Clear(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, deletedCountResponse{Deleted: n})
}

func toCatalogResponse(catalog model.Catalog) catalogResponse {
	var counts map[string]int
	if len(catalog.StatusCounts) > 0 {
		counts = make(map[string]int, len(catalog.StatusCounts))
		for _, sc := range catalog.StatusCounts {
			counts[sc.Status] = sc.Count
		}
	}
	return catalogResponse{
		ID:             formatID(catalog.ID),
		Name:           catalog.Name,
		Language:       catalog.Language,
		SourceLanguage: catalog.SourceLanguage,
		Version:        catalog.Version,
		Hash:           catalog.Hash,
		Path:           catalog.Path,
		MessageCount:   catalog.MessageCount,
		StatusCounts:   counts,
		CreatedAt:      catalog.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      catalog.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
