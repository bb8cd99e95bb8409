package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntry = "entry" // entrada
	MovementTypeExit  = "exit"  // salida
)

// DateLayout formato de fecha calendario de los movimientos.
const DateLayout = "2006-01-02"

// Movement representa una entrada o salida de stock. Es inmutable una vez registrado.
type Movement struct {
	ID        string
	ProductID string
	Type      string
	Quantity  int // siempre positivo; el signo lo da Type
	Date      time.Time
	Notes     string
	CreatedAt time.Time
}

// IsValidMovementType indica si t es entry o exit.
func IsValidMovementType(t string) bool {
	return t == MovementTypeEntry || t == MovementTypeExit
}

// Delta devuelve la variación de stock que produce el movimiento.
func (m *Movement) Delta() int {
	if m.Type == MovementTypeExit {
		return -m.Quantity
	}
	return m.Quantity
}
