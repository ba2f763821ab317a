package web

import (
	"net/http"

	"github.com/google/uuid"
)

const viewerCookie = "inventario_vista"

// viewerID names the browser's own draft and notices, issuing the cookie on
// the first visit. It must run before the response header is written.
func viewerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(viewerCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     viewerCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
