package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tscat/internal/service"
)

type SyncHandler struct {
	service service.SyncService
	dir     string
}

// NewSyncHandler serves directory syncs of dir, the configured catalog directory.
func NewSyncHandler(service service.SyncService, dir string) *SyncHandler {
	return &SyncHandler{service: service, dir: dir}
}

func (h *SyncHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/sync", h.Start)
	g.GET("/sync/status", h.Status)
	g.POST("/sync/cancel", h.Cancel)
}

// Start imports the catalog directory in the background.
// @Summary Start a directory sync
// @Tags sync
// @Produce json
// @Success 202 {object} service.ImportTask
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /sync [post]
func (h *SyncHandler) Start(c echo.Context) error {
	task, err := h.service.Start(h.dir)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusAccepted, task)
}

// Status returns the last sync task.
// @Summary Sync status
// @Tags sync
// @Produce json
// @Success 200 {object} service.ImportTask
// @Router /sync/status [get]
func (h *SyncHandler) Status(c echo.Context) error {
	task := h.service.Status()
	if task == nil {
		return c.JSON(http.StatusOK, idleResponse{Status: "idle"})
	}
	return c.JSON(http.StatusOK, task)
}

// Cancel stops a running sync.
// @Summary Cancel the running sync
// @Tags sync
// @Produce json
// @Success 200 {object} cancelledResponse
// @Router /sync/cancel [post]
func (h *SyncHandler) Cancel(c echo.Context) error {
	return c.JSON(http.StatusOK, cancelledResponse{Cancelled: h.service.Cancel()})
}
