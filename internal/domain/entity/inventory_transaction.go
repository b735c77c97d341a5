package entity

import "time"

// Tipos de transacción del libro de inventario.
const (
	TransactionTypeAddition   = "addition"   // entrada
	TransactionTypeDeduction  = "deduction"  // salida
	TransactionTypeAdjustment = "adjustment" // conteo físico: fija el saldo
)

// Origen de la transacción.
const (
	ReferenceTypeManual    = "manual"
	ReferenceTypeTreatment = "treatment"
	ReferenceTypePurchase  = "purchase"
)

// InventoryTransaction es una fila inmutable del libro. Balance es el stock resultante.
type InventoryTransaction struct {
	ID              string
	ClinicID        string
	InventoryItemID string
	Type            string
	Quantity        int64
	Balance         int64
	Reason          string
	ReferenceID     string
	ReferenceType   string
	CreatedAt       time.Time
	CreatedBy       string
	// Seq lo asigna el almacenamiento en orden de inserción; desempata filas con el mismo CreatedAt
	// (p. ej. dos líneas del mismo artículo en un tratamiento).
	Seq int64
}

// NewerThan ordena el libro: más reciente primero, y a igual CreatedAt la insertada después.
func (t *InventoryTransaction) NewerThan(o *InventoryTransaction) bool {
	if !t.CreatedAt.Equal(o.CreatedAt) {
		return t.CreatedAt.After(o.CreatedAt)
	}
	return t.Seq > o.Seq
}
