package inventory

import (
	"errors"
	"testing"

	"Inventario/internal/productos"
)

func TestDraftPayload(t *testing.T) {
	tests := []struct {
		name    string
		draft   Draft
		want    productos.Payload
		wantErr bool
	}{
		{
			name:  "pen",
			draft: Draft{Nombre: "Pen", Precio: "1.50", Stock: "10"},
			want:  productos.Payload{Nombre: "Pen", Precio: 1.5, Stock: 10},
		},
		{
			name:  "trims",
			draft: Draft{Nombre: "  Goma ", Precio: " 0 ", Stock: " 0"},
			want:  productos.Payload{Nombre: "Goma", Precio: 0, Stock: 0},
		},
		{name: "blank nombre", draft: Draft{Nombre: "  ", Precio: "1", Stock: "1"}, wantErr: true},
		{name: "bad precio", draft: Draft{Nombre: "x", Precio: "uno", Stock: "1"}, wantErr: true},
		{name: "negative precio", draft: Draft{Nombre: "x", Precio: "-0.01", Stock: "1"}, wantErr: true},
		{name: "fractional stock", draft: Draft{Nombre: "x", Precio: "1", Stock: "1.5"}, wantErr: true},
		{name: "negative stock", draft: Draft{Nombre: "x", Precio: "1", Stock: "-3"}, wantErr: true},
		{name: "empty precio", draft: Draft{Nombre: "x", Precio: "", Stock: "1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.draft.Payload()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDraft) {
					t.Fatalf("err=%v want ErrInvalidDraft", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tt.want {
				t.Fatalf("payload=%+v want=%+v", got, tt.want)
			}
		})
	}
}

func TestDraftFrom(t *testing.T) {
	d := DraftFrom(productos.Product{ID: 4, Nombre: "Regla", Precio: 2.5, Stock: 7})

	if !d.Editing() || *d.ID != 4 {
		t.Fatalf("draft should edit id 4: %+v", d)
	}
	if d.Nombre != "Regla" || d.Precio != "2.5" || d.Stock != "7" {
		t.Fatalf("draft=%+v", d)
	}
}

func TestFormatPrecio(t *testing.T) {
	cases := map[float64]string{
		1.5:    "1.5",
		12.9:   "12.9",
		10:     "10",
		0.01:   "0.01",
		199.99: "199.99",
	}
	for in, want := range cases {
		if got := FormatPrecio(in); got != want {
			t.Errorf("FormatPrecio(%v)=%q want=%q", in, got, want)
		}
	}
}

func TestDraftFormID(t *testing.T) {
	if got := (Draft{}).FormID(); got != "" {
		t.Fatalf("create mode id=%q", got)
	}
	if got := DraftFrom(productos.Product{ID: 12}).FormID(); got != "12" {
		t.Fatalf("edit mode id=%q", got)
	}
}
