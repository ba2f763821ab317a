package cache

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"Inventario/internal/productos"
	"Inventario/pkg/kit"
)

var (
	listA = []productos.Product{
		{ID: 1, Nombre: "Pen", Precio: 1.5, Stock: 10},
		{ID: 2, Nombre: "Cuaderno", Precio: 12.9, Stock: 0},
	}
	listB = []productos.Product{
		{ID: 3, Nombre: "Lápiz", Precio: 0.5, Stock: 100},
	}
)

// exerciseStore checks the slot contract every backend must honour.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("empty slot should load as empty list, got %#v", got)
	}

	if err := s.Save(ctx, listA); err != nil {
		t.Fatalf("save A: %v", err)
	}
	got, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("load A: %v", err)
	}
	if !reflect.DeepEqual(got, listA) {
		t.Fatalf("round trip A: got %+v", got)
	}

	if err := s.Save(ctx, listB); err != nil {
		t.Fatalf("save B: %v", err)
	}
	got, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("load B: %v", err)
	}
	if !reflect.DeepEqual(got, listB) {
		t.Fatalf("save must replace, not merge: got %+v", got)
	}

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestMemStore(t *testing.T) {
	exerciseStore(t, NewMemStore())
}

func TestMemStore_Corrupt(t *testing.T) {
	s := NewMemStore()
	s.SetRaw("{not json")

	_, err := s.Load(context.Background())
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("err=%v", err)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	exerciseStore(t, s)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := first.Save(context.Background(), listA); err != nil {
		t.Fatalf("save: %v", err)
	}

	second, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := second.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, listA) {
		t.Fatalf("got %+v", got)
	}
}

func TestFileStore_Corrupt(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := os.WriteFile(s.Path(), []byte(`{"id":1}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err = s.Load(context.Background())
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("err=%v", err)
	}

	raw, _ := os.ReadFile(s.Path())
	if string(raw) != `{"id":1}` {
		t.Fatalf("corrupt slot must be left untouched, got %q", raw)
	}
}

func TestWithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := kit.NewUpstreamMetrics(reg)
	s := WithMetrics(NewMemStore(), m)
	ctx := context.Background()

	if _, err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := s.Save(ctx, listA); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	checks := []struct {
		op, outcome string
		want        float64
	}{
		{"load", "miss", 1},
		{"load", "hit", 1},
		{"save", "ok", 1},
	}
	for _, c := range checks {
		if got := testutil.ToFloat64(m.CacheOps.WithLabelValues(c.op, c.outcome)); got != c.want {
			t.Errorf("%s/%s=%v want=%v", c.op, c.outcome, got, c.want)
		}
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, closeFn, err := Open(context.Background(), Options{Backend: "s3"}, zap.NewNop())
	if err == nil {
		t.Fatalf("expected error")
	}
	closeFn()
}

func TestOpen_File(t *testing.T) {
	s, closeFn, err := Open(context.Background(), Options{Backend: BackendFile, Dir: t.TempDir()}, zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closeFn()

	if _, ok := s.(*FileStore); !ok {
		t.Fatalf("store=%T", s)
	}
}
