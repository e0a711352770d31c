package repository

import "github.com/jhoicas/ActivosTI-api/internal/domain/entity"

// StockRepository define el puerto del libro mayor agregado de stock.
type StockRepository interface {
	Get(itemID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Usar solo dentro de
	// una transacción: la verificación de suficiencia y el decremento deben
	// ser atómicos.
	GetForUpdate(itemID string) (*entity.Stock, error)
	// Increment suma qty al agregado del artículo de forma atómica en SQL y
	// devuelve la cantidad resultante. Es la única vía de incremento: cuando
	// el artículo aún no tiene fila no hay nada que bloquear con FOR UPDATE,
	// y un leer-luego-escribir perdería recepciones concurrentes.
	Increment(itemID string, qty int) (int, error)
	// Upsert escribe una cantidad absoluta. Solo para el decremento del
	// despacho, que ya tiene la fila bloqueada con GetForUpdate.
	Upsert(stock *entity.Stock) error
}

// StockBatchRepository define el puerto de persistencia para lotes de
// recepción.
type StockBatchRepository interface {
	Create(batch *entity.StockBatch) error
	GetByID(id string) (*entity.StockBatch, error)
	// GetForUpdate bloquea la fila del lote dentro de la transacción.
	GetForUpdate(id string) (*entity.StockBatch, error)
	UpdateRemaining(id string, remaining int) error
	ListByItem(itemID string, limit, offset int) ([]*entity.StockBatch, error)
}

// StockReceivedRepository define el puerto para recepciones de compra
// (append-only).
type StockReceivedRepository interface {
	Create(received *entity.StockReceived) error
	GetByID(id string) (*entity.StockReceived, error)
	ListByItem(itemID string, limit, offset int) ([]*entity.StockReceived, error)
}

// StockIssuanceRepository define el puerto para registros de despacho.
// Create es un INSERT plano: un re-despacho nunca debe convertirse en upsert
// silencioso; la requisición en estado processed lo bloquea antes.
type StockIssuanceRepository interface {
	Create(issuance *entity.StockIssuance) error
	GetByID(id string) (*entity.StockIssuance, error)
	GetByRequisition(requisitionID string) (*entity.StockIssuance, error)
	List(limit, offset int) ([]*entity.StockIssuance, error)
}
