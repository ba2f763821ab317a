// Package cache keeps the last successfully fetched product list in a single
// persistent slot so the view can paint before the network answers.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"Inventario/internal/productos"
)

// Key names the slot in every backend.
const Key = "productos_cache"

// ErrCorrupt is returned by Load when the slot holds something that is not a
// product list. The slot is left as is.
var ErrCorrupt = errors.New("cache slot corrupt")

// Store is one slot. Save replaces the whole value; there is no merge, no
// expiry and no invalidation on writes.
type Store interface {
	Save(ctx context.Context, list []productos.Product) error
	// Load returns an empty, non-nil list when the slot is absent.
	Load(ctx context.Context) ([]productos.Product, error)
	Ping(ctx context.Context) error
}

func encode(list []productos.Product) ([]byte, error) {
	if list == nil {
		list = []productos.Product{}
	}
	return json.Marshal(list)
}

func decode(raw []byte) ([]productos.Product, error) {
	var list []productos.Product
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if list == nil {
		list = []productos.Product{}
	}
	return list, nil
}
