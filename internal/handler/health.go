package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers liveness probes with a bare 200 "ok". It touches no
// dependency, so it stays green even when MySQL or Redis are down.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
