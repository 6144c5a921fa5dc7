package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"tscat/internal/logger"
	"tscat/internal/service"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type deletedCountResponse struct {
	Deleted int64 `json:"deleted"`
}

type cancelledResponse struct {
	Cancelled bool `json:"cancelled"`
}

type idleResponse struct {
	Status string `json:"status"`
}

func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request", Detail: detail(err, service.ErrInvalid)})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, errorResponse{Error: "conflict", Detail: detail(err, service.ErrConflict)})
	case errors.Is(err, service.ErrSyncRunning):
		return c.JSON(http.StatusConflict, errorResponse{Error: "sync already running"})
	case errors.Is(err, service.ErrAIUnavailable):
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "ai provider not configured", Detail: detail(err, service.ErrAIUnavailable)})
	case errors.Is(err, service.ErrAIReply):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "unusable ai reply", Detail: detail(err, service.ErrAIReply)})
	default:
		logger.Error("request failed", "module", "handler", "action", "request", "resource", "http", "result", "failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// detail strips the sentinel text from a wrapped error message.
func detail(err, sentinel error) string {
	msg := err.Error()
	if msg == sentinel.Error() {
		return ""
	}
	return strings.TrimPrefix(msg, sentinel.Error()+": ")
}
