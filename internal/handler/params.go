package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// optionalQuery returns nil when the parameter is absent or blank.
func optionalQuery(c echo.Context, name string) *string {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil
	}
	return &v
}

// intQuery parses an integer parameter, returning def when absent.
func intQuery(c echo.Context, name string, def int) (int, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func boolQuery(c echo.Context, name string) bool {
	b, _ := strconv.ParseBool(c.QueryParam(name))
	return b
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
