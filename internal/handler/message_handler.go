package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tscat/internal/model"
	"tscat/internal/service"
)

type MessageHandler struct {
	messages    service.MessageService
	suggestions service.SuggestService
}

type messageResponse struct {
	ID                string           `json:"id"`
	CatalogID         string           `json:"catalogId"`
	Position          int              `json:"position"`
	Context           string           `json:"context"`
	MsgID             string           `json:"msgId,omitempty"`
	Numerus           bool             `json:"numerus"`
	Source            string           `json:"source"`
	OldSource         string           `json:"oldSource,omitempty"`
	Disambiguation    string           `json:"disambiguation,omitempty"`
	ExtraComment      string           `json:"extraComment,omitempty"`
	TranslatorComment string           `json:"translatorComment,omitempty"`
	Translation       string           `json:"translation"`
	NumerusForms      []string         `json:"numerusForms,omitempty"`
	Status            string           `json:"status"`
	Locations         []model.Location `json:"locations,omitempty"`
	UpdatedAt         string           `json:"updatedAt"`
}

type updateTranslationRequest struct {
	Translation string   `json:"translation"`
	Forms       []string `json:"forms"`
	Finished    bool     `json:"finished"`
}

type suggestionResponse struct {
	MessageID string   `json:"messageId"`
	Language  string   `json:"language"`
	Text      string   `json:"text"`
	Forms     []string `json:"forms,omitempty"`
	Provider  string   `json:"provider"`
	Model     string   `json:"model"`
	Cached    bool     `json:"cached"`
	CreatedAt string   `json:"createdAt"`
}

func NewMessageHandler(messages service.MessageService, suggestions service.SuggestService) *MessageHandler {
	return &MessageHandler{messages: messages, suggestions: suggestions}
}

func (h *MessageHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/catalogs/:id/messages", h.List)
	g.GET("/messages/:id", h.Get)
	g.PUT("/messages/:id", h.Update)
	g.POST("/messages/:id/suggest", h.Suggest)
}

// List returns the messages of a catalog in file order.
// @Summary List messages
// @Tags messages
// @Produce json
// @Param id path string true "Catalog ID"
// @Param context query string false "Context name"
// @Param status query string false "finished, unfinished, obsolete or vanished"
// @Param q query string false "Text search in source, translation and translator comment"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /catalogs/{id}/messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}
	limit, err := intQuery(c, "limit", 0)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid limit"})
	}
	offset, err := intQuery(c, "offset", 0)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid offset"})
	}

	messages, err := h.messages.List(c.Request().Context(), id, service.MessageFilter{
		Context: optionalQuery(c, "context"),
		Status:  optionalQuery(c, "status"),
		Query:   c.QueryParam("q"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]messageResponse, len(messages))
	for i, m := range messages {
		response[i] = toMessageResponse(m)
	}
	return c.JSON(http.StatusOK, response)
}

// Get returns one message.
// @Summary Get a message
// @Tags messages
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} messageResponse
// @Failure 404 {object} errorResponse
// @Router /messages/{id} [get]
func (h *MessageHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}
	msg, err := h.messages.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toMessageResponse(msg))
}

// Update edits a translation.
// @Summary Update a translation
// @Description Numerus messages take "forms" with one entry per plural form of the catalog language.
// @Tags messages
// @Accept json
// @Produce json
// @Param id path string true "Message ID"
// @Param translation body updateTranslationRequest true "Translation"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /messages/{id} [put]
func (h *MessageHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}
	var req updateTranslationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	msg, err := h.messages.UpdateTranslation(c.Request().Context(), id, service.UpdateTranslationInput{
		Translation: req.Translation,
		Forms:       req.Forms,
		Finished:    req.Finished,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toMessageResponse(msg))
}

// Suggest asks the configured AI provider for a translation.
// @Summary Suggest a translation
// @Description The suggestion is stored separately and never marks the message finished.
// @Tags messages
// @Produce json
// @Param id path string true "Message ID"
// @Param refresh query bool false "Ignore a stored suggestion"
// @Success 200 {object} suggestionResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /messages/{id}/suggest [post]
func (h *MessageHandler) Suggest(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}
	res, err := h.suggestions.Suggest(c.Request().Context(), id, boolQuery(c, "refresh"))
	if err != nil {
		return writeServiceError(c, err)
	}
	s := res.Suggestion
	return c.JSON(http.StatusOK, suggestionResponse{
		MessageID: formatID(s.MessageID),
		Language:  s.Language,
		Text:      s.Text,
		Forms:     res.Forms,
		Provider:  s.Provider,
		Model:     s.Model,
		Cached:    res.Cached,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func toMessageResponse(m model.Message) messageResponse {
	return messageResponse{
		ID:                formatID(m.ID),
		CatalogID:         formatID(m.CatalogID),
		Position:          m.Position,
		Context:           m.Context,
		MsgID:             m.MsgID,
		Numerus:           m.Numerus,
		Source:            m.Source,
		OldSource:         m.OldSource,
		Disambiguation:    m.Disambiguation,
		ExtraComment:      m.ExtraComment,
		TranslatorComment: m.TranslatorComment,
		Translation:       m.Translation,
		NumerusForms:      m.NumerusForms,
		Status:            m.Status,
		Locations:         m.Locations,
		UpdatedAt:         m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
