// Package productos is the client side of the remote product REST API.
package productos

// Product is the server-owned record. The copy held here may be stale.
type Product struct {
	ID     int     `json:"id"`
	Nombre string  `json:"nombre"`
	Precio float64 `json:"precio"`
	Stock  int     `json:"stock"`
}

// Payload is the body of create and update calls.
type Payload struct {
	Nombre string  `json:"nombre"`
	Precio float64 `json:"precio"`
	Stock  int     `json:"stock"`
}
