package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/application/state"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
)

const usageWindowDays = 90

// ReplenishmentUseCase genera la lista de reposición de la clínica.
// Combina el stock actual con el consumo registrado en el libro para priorizar los artículos críticos.
type ReplenishmentUseCase struct {
	cache *state.Cache
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(cache *state.Cache) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{cache: cache}
}

// GenerateReplenishmentList devuelve los artículos en o bajo su nivel de reorden con la cantidad
// sugerida de pedido y un ranking de prioridad por déficit relativo y consumo reciente.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, clinicID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	snap, err := uc.cache.Snapshot(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	// 1. Consumo de los últimos 90 días por artículo (salidas del libro)
	since := time.Now().AddDate(0, 0, -usageWindowDays)
	used := make(map[string]int64)
	for _, tx := range snap.Transactions {
		if tx.Type == entity.TransactionTypeDeduction && !tx.CreatedAt.Before(since) {
			used[tx.InventoryItemID] += tx.Quantity
		}
	}

	// 2. Sugerencias para los artículos bajos
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, it := range snap.Items {
		if !it.IsLowStock() {
			continue
		}
		qty := SuggestedOrderQty(it)
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			InventoryItemID:    it.ID,
			ItemName:           it.Name,
			Category:           it.Category,
			Unit:               it.Unit,
			Supplier:           it.Supplier,
			CurrentStock:       it.CurrentStock,
			ReorderLevel:       it.ReorderLevel,
			SuggestedOrderQty:  qty,
			UnitCost:           it.UnitCost,
			EstimatedOrderCost: it.UnitCost.Mul(decimal.NewFromInt(qty)),
			UsedLast90Days:     used[it.ID],
		})
	}

	// 3. Ordenar: mayor déficit relativo, luego mayor consumo, luego nombre
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		da, db := deficitRatio(a), deficitRatio(b)
		if !da.Equal(db) {
			return da.GreaterThan(db)
		}
		if a.UsedLast90Days != b.UsedLast90Days {
			return a.UsedLast90Days > b.UsedLast90Days
		}
		return a.ItemName < b.ItemName
	})

	// 4. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// SuggestedOrderQty usa ReorderQuantity si está definido; si no, lo necesario para llegar
// al doble del nivel de reorden. Nunca menos de 1.
func SuggestedOrderQty(it *entity.InventoryItem) int64 {
	qty := it.ReorderQuantity
	if qty <= 0 {
		qty = 2*it.ReorderLevel - it.CurrentStock
	}
	if qty < 1 {
		qty = 1
	}
	return qty
}

// deficitRatio = (nivel - stock) / nivel; 1 cuando el nivel de reorden es 0.
func deficitRatio(s dto.ReplenishmentSuggestionDTO) decimal.Decimal {
	if s.ReorderLevel <= 0 {
		return decimal.NewFromInt(1)
	}
	deficit := decimal.NewFromInt(s.ReorderLevel - s.CurrentStock)
	return deficit.Div(decimal.NewFromInt(s.ReorderLevel))
}
