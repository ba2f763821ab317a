package inventory

import "Inventario/internal/productos"

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseLoaded  Phase = "loaded"
)

const (
	MsgLoadFailed = "No se pudo conectar con el servidor. Verifica tu conexión."
	MsgCreated    = "Producto creado"
	MsgUpdated    = "Producto actualizado"
	MsgSaveFailed = "Error al guardar"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is shown once and then dropped.
type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
}

// Snapshot is a copy of one viewer's state safe to hand to the renderer.
type Snapshot struct {
	Phase     Phase               `json:"phase"`
	Loading   bool                `json:"loading"`
	Error     string              `json:"error,omitempty"`
	Productos []productos.Product `json:"productos"`
	Draft     Draft               `json:"draft"`
}

type state struct {
	phase     Phase
	loading   bool
	err       string
	productos []productos.Product
}

func (s *state) snapshot() Snapshot {
	list := make([]productos.Product, len(s.productos))
	copy(list, s.productos)

	return Snapshot{
		Phase:     s.phase,
		Loading:   s.loading,
		Error:     s.err,
		Productos: list,
	}
}
