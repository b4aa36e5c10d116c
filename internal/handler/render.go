package handler

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/farahelsenaryyy/Autofixer/internal/flash"
)

// renderPage wraps a body fragment in the minimal page shell and
// prepends any pending flash notices. The real presentation layer is
// out of the core's scope; these pages exist so the redirect and
// notice semantics of the workflows have somewhere to land.
func renderPage(c echo.Context, title, body string) error {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html><html><head><title>")
	sb.WriteString(template.HTMLEscapeString(title))
	sb.WriteString(" | Autofixer</title></head><body>")
	for _, n := range flash.Pop(c) {
		fmt.Fprintf(&sb, `<p class="notice notice-%s">%s</p>`,
			template.HTMLEscapeString(n.Level), template.HTMLEscapeString(n.Message))
	}
	sb.WriteString(body)
	sb.WriteString("</body></html>")
	return c.HTML(http.StatusOK, sb.String())
}
