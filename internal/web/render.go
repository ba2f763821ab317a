package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"Inventario/internal/inventory"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(
	template.New("pages").
		Funcs(template.FuncMap{"precio": inventory.FormatPrecio}).
		ParseFS(templateFS, "templates/*.html"),
)

type indexPage struct {
	inventory.Snapshot
	Notice *inventory.Notice
}

type confirmPage struct {
	ID     int
	Nombre string
	Token  string
}

// render buffers the page so a template error never leaves a half-written
// response.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger().Error("render template", zap.String("template", name), zap.Error(err))
		http.Error(w, "Error al renderizar la página", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
