package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tscat/internal/service"
)

type TranslateHandler struct {
	service service.TranslateService
}

func NewTranslateHandler(service service.TranslateService) *TranslateHandler {
	return &TranslateHandler{service: service}
}

func (h *TranslateHandler) RegisterRoutes(g *echo.Group, middleware ...echo.MiddlewareFunc) {
	g.GET("/translate", h.Translate, middleware...)
}

// Translate resolves one source string against a catalog.
// @Summary Translate a string
// @Description Unfinished, obsolete and unknown entries return the source text.
// @Tags translate
// @Produce json
// @Param catalog query string true "Catalog name or ID"
// @Param context query string true "Context name"
// @Param source query string true "Source text"
// @Param disambiguation query string false "Disambiguation comment"
// @Param n query int false "Count for numerus messages"
// @Param arg query []string false "Values for %1, %2, ..." collectionFormat(multi)
// @Param format query string false "text strips markup, html sanitizes it"
// @Success 200 {object} service.TranslateResult
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /translate [get]
func (h *TranslateHandler) Translate(c echo.Context) error {
	req := service.TranslateRequest{
		Context:        c.QueryParam("context"),
		Source:         c.QueryParam("source"),
		Disambiguation: c.QueryParam("disambiguation"),
		Args:           c.QueryParams()["arg"],
		Format:         c.QueryParam("format"),
	}
	if req.Source == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "source is required"})
	}
	catalog := c.QueryParam("catalog")
	if id, err := strconv.ParseInt(catalog, 10, 64); err == nil {
		req.CatalogID = id
	} else {
		req.Catalog = catalog
	}
	if raw := c.QueryParam("n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid n"})
		}
		req.N = &n
	}

	result, err := h.service.Translate(c.Request().Context(), req)
	if errors.Is(err, service.ErrNotFound) && req.CatalogID != 0 {
		// all-digit catalog names are valid too
		req.CatalogID, req.Catalog = 0, catalog
		result, err = h.service.Translate(c.Request().Context(), req)
	}
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
