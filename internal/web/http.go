// Package web renders the inventory page and turns form posts into
// controller intents.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Inventario/internal/cache"
	"Inventario/internal/inventory"
	"Inventario/pkg/kit"
)

const (
	maxFormBytes = 1 << 16

	readyTimeout      = 2 * time.Second
	readyProbeTimeout = 700 * time.Millisecond
)

var readyClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     30 * time.Second,
	},
}

type Server struct {
	Inventory *inventory.Controller
	Cache     cache.Store
	Confirm   *ConfirmTokens
	APIURL    string
	Log       *zap.Logger
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	vid := viewerID(w, r)

	page := indexPage{Snapshot: s.Inventory.Snapshot(vid)}
	if n, ok := s.Inventory.TakeNotice(vid); ok {
		page.Notice = &n
	}
	s.render(w, "index.html", page)
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Inventory.Snapshot(viewerID(w, r)))
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	vid := viewerID(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.logger().Warn("bad producto form", zap.Error(err))
		kit.SeeOther(w, r, "/")
		return
	}

	d, err := draftFromForm(r)
	if err != nil {
		s.logger().Warn("bad producto form", zap.Error(err))
		kit.SeeOther(w, r, "/")
		return
	}

	// Outcome is reported through the viewer's notice.
	_ = s.Inventory.Submit(r.Context(), vid, d)

	kit.SeeOther(w, r, "/")
}

// draftFromForm rebuilds the draft the user saw, mode included: the hidden
// id field is empty in create mode.
func draftFromForm(r *http.Request) (inventory.Draft, error) {
	d := inventory.Draft{
		Nombre: r.PostFormValue("nombre"),
		Precio: r.PostFormValue("precio"),
		Stock:  r.PostFormValue("stock"),
	}

	raw := strings.TrimSpace(r.PostFormValue("id"))
	if raw == "" {
		return d, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return inventory.Draft{}, fmt.Errorf("id %q: %w", raw, err)
	}
	d.ID = &id
	return d, nil
}

func (s *Server) edit(w http.ResponseWriter, r *http.Request) {
	vid := viewerID(w, r)

	id, ok := s.productID(w, r)
	if !ok {
		return
	}

	if err := s.Inventory.Edit(vid, id); err != nil {
		s.logger().Warn("edit unknown producto", zap.Int("id", id))
	}
	kit.SeeOther(w, r, "/")
}

func (s *Server) cancel(w http.ResponseWriter, r *http.Request) {
	s.Inventory.Cancel(viewerID(w, r))
	kit.SeeOther(w, r, "/")
}

func (s *Server) reload(w http.ResponseWriter, r *http.Request) {
	_ = s.Inventory.Load(r.Context(), true)
	kit.SeeOther(w, r, "/")
}

func (s *Server) confirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.productID(w, r)
	if !ok {
		return
	}

	tok, err := s.Confirm.Issue(id)
	if err != nil {
		s.logger().Error("issue confirmation", zap.Error(err), zap.Int("id", id))
		kit.SeeOther(w, r, "/")
		return
	}

	page := confirmPage{ID: id, Token: tok}
	if p, found := s.Inventory.Product(id); found {
		page.Nombre = p.Nombre
	}
	s.render(w, "confirm.html", page)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.productID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.logger().Warn("bad delete form", zap.Error(err), zap.Int("id", id))
		kit.SeeOther(w, r, "/")
		return
	}

	confirmed := r.PostFormValue("confirmar") == "si" &&
		s.Confirm.Verify(r.PostFormValue("token"), id) == nil
	if !confirmed {
		s.logger().Info("delete not confirmed", zap.Int("id", id))
	}

	_ = s.Inventory.Delete(r.Context(), id, confirmed)
	kit.SeeOther(w, r, "/")
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Cache.Ping(ctx); err != nil {
		s.logger().Warn("readyz failed: cache", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "cache not ready", nil)
		return
	}

	if err := checkReady(ctx, s.APIURL+"/productos"); err != nil {
		s.logger().Warn("readyz failed: product api", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "product api not ready", nil)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func checkReady(ctx context.Context, url string) error {
	cctx, cancel := context.WithTimeout(ctx, readyProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := readyClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status=%d", resp.StatusCode)
	}
	return nil
}

// productID reads the {id} path segment. HTML routes answer a bad id by
// sending the browser back to the page.
func (s *Server) productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		s.logger().Warn("bad producto id", zap.String("id", raw))
		kit.SeeOther(w, r, "/")
		return 0, false
	}
	return id, true
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
