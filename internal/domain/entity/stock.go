package entity

import "time"

// Stock representa la cantidad agregada en existencia de un artículo del
// catálogo. Invariante: Quantity >= 0 en todo momento; el decremento falla
// cerrado si dejaría la cantidad en negativo.
type Stock struct {
	ItemID    string
	Quantity  int
	UpdatedAt time.Time
}
