package productos_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"Inventario/internal/productos"
)

type recorded struct {
	method      string
	path        string
	contentType string
	body        string
}

func newAPI(t *testing.T, status int, respBody string) (*httptest.Server, *[]recorded) {
	t.Helper()

	var calls []recorded
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        string(raw),
		})
		w.WriteHeader(status)
		_, _ = io.WriteString(w, respBody)
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func TestClient_List(t *testing.T) {
	ts, calls := newAPI(t, http.StatusOK, `[{"id":1,"nombre":"Pen","precio":1.5,"stock":10}]`)

	got, err := productos.NewClient(ts.URL+"/", 0).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0] != (productos.Product{ID: 1, Nombre: "Pen", Precio: 1.5, Stock: 10}) {
		t.Fatalf("list=%+v", got)
	}
	if c := (*calls)[0]; c.method != http.MethodGet || c.path != "/productos" {
		t.Fatalf("call=%+v", c)
	}
}

func TestClient_ListNullIsEmpty(t *testing.T) {
	ts, _ := newAPI(t, http.StatusOK, `null`)

	got, err := productos.NewClient(ts.URL, 0).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("list=%#v", got)
	}
}

func TestClient_CreateBody(t *testing.T) {
	ts, calls := newAPI(t, http.StatusCreated, `{"id":7}`)

	err := productos.NewClient(ts.URL, 0).Create(context.Background(), productos.Payload{
		Nombre: "Pen", Precio: 1.5, Stock: 10,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	c := (*calls)[0]
	if c.method != http.MethodPost || c.path != "/productos" {
		t.Fatalf("call=%+v", c)
	}
	if c.contentType != "application/json" {
		t.Fatalf("content-type=%q", c.contentType)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(c.body), &body); err != nil {
		t.Fatalf("decode body: %v body=%s", err, c.body)
	}
	if body["nombre"] != "Pen" || body["precio"] != 1.5 || body["stock"] != float64(10) {
		t.Fatalf("body=%s", c.body)
	}
}

func TestClient_UpdateAndRemovePaths(t *testing.T) {
	ts, calls := newAPI(t, http.StatusNoContent, "")
	c := productos.NewClient(ts.URL, 0)

	if err := c.Update(context.Background(), 42, productos.Payload{Nombre: "X"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := c.Remove(context.Background(), 42); err != nil {
		t.Fatalf("remove: %v", err)
	}

	want := []struct{ method, path string }{
		{http.MethodPut, "/productos/42"},
		{http.MethodDelete, "/productos/42"},
	}
	for i, w := range want {
		got := (*calls)[i]
		if got.method != w.method || got.path != w.path {
			t.Fatalf("call[%d]=%s %s want=%s %s", i, got.method, got.path, w.method, w.path)
		}
	}
	if (*calls)[1].body != "" {
		t.Fatalf("delete must not send a body: %q", (*calls)[1].body)
	}
}

func TestClient_Errors(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		ts, _ := newAPI(t, http.StatusInternalServerError, `{"error":"boom"}`)
		err := productos.NewClient(ts.URL, 0).Create(context.Background(), productos.Payload{})
		if !errors.Is(err, productos.ErrBadStatus) {
			t.Fatalf("err=%v", err)
		}
	})

	t.Run("bad payload", func(t *testing.T) {
		ts, _ := newAPI(t, http.StatusOK, `{"not":"a list"}`)
		_, err := productos.NewClient(ts.URL, 0).List(context.Background())
		if !errors.Is(err, productos.ErrBadPayload) {
			t.Fatalf("err=%v", err)
		}
	})

	t.Run("unavailable", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()

		_, err := productos.NewClient(url, 0).List(context.Background())
		if !errors.Is(err, productos.ErrUnavailable) {
			t.Fatalf("err=%v", err)
		}
	})
}
