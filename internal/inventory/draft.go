package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"Inventario/internal/productos"
)

var ErrInvalidDraft = errors.New("datos inválidos")

// Draft is the form as typed. ID nil means create mode.
type Draft struct {
	ID     *int   `json:"id"`
	Nombre string `json:"nombre"`
	Precio string `json:"precio"`
	Stock  string `json:"stock"`
}

func (d Draft) Editing() bool { return d.ID != nil }

// FormID is the id as carried by the form's hidden field, "" in create mode.
func (d Draft) FormID() string {
	if d.ID == nil {
		return ""
	}
	return strconv.Itoa(*d.ID)
}

func (d Draft) clone() Draft {
	if d.ID != nil {
		id := *d.ID
		d.ID = &id
	}
	return d
}

// DraftFrom fills a draft for editing p.
func DraftFrom(p productos.Product) Draft {
	id := p.ID
	return Draft{
		ID:     &id,
		Nombre: p.Nombre,
		Precio: FormatPrecio(p.Precio),
		Stock:  strconv.Itoa(p.Stock),
	}
}

// Payload parses the raw text fields. "1.50" becomes 1.5, "10" becomes 10.
func (d Draft) Payload() (productos.Payload, error) {
	nombre := strings.TrimSpace(d.Nombre)
	if nombre == "" {
		return productos.Payload{}, fmt.Errorf("%w: el nombre es obligatorio", ErrInvalidDraft)
	}

	precio, err := decimal.NewFromString(strings.TrimSpace(d.Precio))
	if err != nil {
		return productos.Payload{}, fmt.Errorf("%w: precio %q no es un número", ErrInvalidDraft, d.Precio)
	}
	if precio.IsNegative() {
		return productos.Payload{}, fmt.Errorf("%w: el precio no puede ser negativo", ErrInvalidDraft)
	}

	stock, err := strconv.Atoi(strings.TrimSpace(d.Stock))
	if err != nil {
		return productos.Payload{}, fmt.Errorf("%w: stock %q no es un entero", ErrInvalidDraft, d.Stock)
	}
	if stock < 0 {
		return productos.Payload{}, fmt.Errorf("%w: el stock no puede ser negativo", ErrInvalidDraft)
	}

	return productos.Payload{
		Nombre: nombre,
		Precio: precio.InexactFloat64(),
		Stock:  stock,
	}, nil
}

// FormatPrecio renders a price the shortest exact way (1.5, not 1.50).
func FormatPrecio(v float64) string {
	return decimal.NewFromFloat(v).String()
}
