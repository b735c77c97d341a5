package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/application/state"
	"github.com/jhoicas/Clinica-api/internal/domain"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/inventory"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para artículos. El stock solo cambia vía el libro (RegisterTransactionUseCase).
type ItemUseCase struct {
	txRunner      TxRunner
	repo          repository.InventoryItemRepository
	ledger        *RegisterTransactionUseCase
	cache         *state.Cache
	expiryWarning time.Duration
}

// NewItemUseCase construye el caso de uso. expiryWarningDays define la ventana de alerta "expiring".
func NewItemUseCase(
	txRunner TxRunner,
	repo repository.InventoryItemRepository,
	ledger *RegisterTransactionUseCase,
	cache *state.Cache,
	expiryWarningDays int,
) *ItemUseCase {
	return &ItemUseCase{
		txRunner:      txRunner,
		repo:          repo,
		ledger:        ledger,
		cache:         cache,
		expiryWarning: time.Duration(expiryWarningDays) * 24 * time.Hour,
	}
}

// Create crea el artículo con stock 0 y, si InitialStock > 0, registra la entrada inicial en la misma transacción.
func (uc *ItemUseCase) Create(ctx context.Context, clinicID, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.Validation("name es obligatorio")
	}
	if !entity.ValidCategory(in.Category) {
		return nil, domain.Validation("category debe ser medication, supply o equipment")
	}
	if in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.Validation("unit_cost no puede ser negativo")
	}
	if in.ReorderLevel < 0 || in.ReorderQuantity < 0 || in.InitialStock < 0 {
		return nil, domain.Validation("reorder_level, reorder_quantity e initial_stock no pueden ser negativos")
	}
	expiry, err := dto.ParseDate("expiry_date", in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	if in.Unit == "" {
		in.Unit = "unidad"
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:              uuid.New().String(),
		ClinicID:        clinicID,
		Name:            in.Name,
		Category:        in.Category,
		Unit:            in.Unit,
		UnitCost:        in.UnitCost,
		ReorderLevel:    in.ReorderLevel,
		ReorderQuantity: in.ReorderQuantity,
		Supplier:        in.Supplier,
		Notes:           in.Notes,
		ExpiryDate:      expiry,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var initial *entity.InventoryTransaction
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Items.Create(ctx, item); err != nil {
			return err
		}
		if in.InitialStock == 0 {
			return nil
		}
		tx, err := uc.ledger.RecordInTx(ctx, repos, TransactionInputDTO{
			ClinicID: clinicID,
			UserID:   userID,
			ItemID:   item.ID,
			Type:     entity.TransactionTypeAddition,
			Quantity: in.InitialStock,
			Reason:   "Stock inicial",
		}, now)
		if err != nil {
			return err
		}
		initial = tx
		return nil
	})
	if err != nil {
		return nil, domain.Backend("crear artículo", err)
	}

	uc.cache.PutItem(item)
	if initial != nil {
		item.CurrentStock = initial.Balance
		uc.cache.AppendTransaction(initial)
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo de la clínica.
func (uc *ItemUseCase) GetByID(ctx context.Context, clinicID, id string) (*dto.ItemResponse, error) {
	item, err := uc.get(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

func (uc *ItemUseCase) get(ctx context.Context, clinicID, id string) (*entity.InventoryItem, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Backend("leer artículo", err)
	}
	if item == nil || item.ClinicID != clinicID {
		return nil, domain.NotFound("artículo de inventario")
	}
	return item, nil
}

// List lista los artículos desde la caché de la clínica, con filtros opcionales.
func (uc *ItemUseCase) List(ctx context.Context, clinicID string, f dto.ItemFilter) ([]dto.ItemResponse, error) {
	snap, err := uc.cache.Snapshot(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]dto.ItemResponse, 0, len(snap.Items))
	for _, it := range snap.Items {
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if f.LowStockOnly && !it.IsLowStock() {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) &&
			!strings.Contains(strings.ToLower(it.Supplier), search) {
			continue
		}
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// Update actualiza los datos descriptivos. No modifica CurrentStock (se maneja vía transacciones).
func (uc *ItemUseCase) Update(ctx context.Context, clinicID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.get(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Validation("name no puede estar vacío")
		}
		item.Name = name
	}
	if in.Category != nil {
		if !entity.ValidCategory(*in.Category) {
			return nil, domain.Validation("category debe ser medication, supply o equipment")
		}
		item.Category = *in.Category
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.UnitCost != nil {
		if in.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.Validation("unit_cost no puede ser negativo")
		}
		item.UnitCost = *in.UnitCost
	}
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return nil, domain.Validation("reorder_level no puede ser negativo")
		}
		item.ReorderLevel = *in.ReorderLevel
	}
	if in.ReorderQuantity != nil {
		if *in.ReorderQuantity < 0 {
			return nil, domain.Validation("reorder_quantity no puede ser negativo")
		}
		item.ReorderQuantity = *in.ReorderQuantity
	}
	if in.Supplier != nil {
		item.Supplier = *in.Supplier
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}
	if in.ExpiryDate != nil {
		expiry, err := dto.ParseDate("expiry_date", *in.ExpiryDate)
		if err != nil {
			return nil, err
		}
		item.ExpiryDate = expiry
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, domain.Backend("actualizar artículo", err)
	}
	// Releer para publicar el stock confirmado, no el leído antes del update.
	fresh, err := uc.get(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	uc.cache.PutItem(fresh)
	return toItemResponse(fresh), nil
}

// Delete elimina el artículo y su historial en una sola transacción.
func (uc *ItemUseCase) Delete(ctx context.Context, clinicID, id string) error {
	if _, err := uc.get(ctx, clinicID, id); err != nil {
		return err
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Transactions.DeleteByItem(ctx, id); err != nil {
			return err
		}
		return repos.Items.Delete(ctx, id)
	})
	if err != nil {
		return domain.Backend("eliminar artículo", err)
	}
	uc.cache.RemoveItem(clinicID, id)
	return nil
}

// Alerts devuelve las alertas de stock bajo, vencido y por vencer.
func (uc *ItemUseCase) Alerts(ctx context.Context, clinicID string) ([]dto.StockAlertDTO, error) {
	snap, err := uc.cache.Snapshot(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	alerts := inventory.Alerts(snap.Items, time.Now(), uc.expiryWarning)
	out := make([]dto.StockAlertDTO, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.StockAlertDTO{
			InventoryItemID: a.InventoryItemID,
			ItemName:        a.ItemName,
			Type:            a.Type,
			CurrentStock:    a.CurrentStock,
			ReorderLevel:    a.ReorderLevel,
			ExpiryDate:      dto.FormatDate(a.ExpiryDate),
			Message:         a.Message,
		})
	}
	return out, nil
}

// RecentTransactions devuelve las últimas transacciones de la clínica (limit <= 0: 50).
func (uc *ItemUseCase) RecentTransactions(ctx context.Context, clinicID string, limit int) ([]dto.TransactionResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	snap, err := uc.cache.Snapshot(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(snap.Items))
	for _, it := range snap.Items {
		names[it.ID] = it.Name
	}
	out := make([]dto.TransactionResponse, 0, limit)
	for _, tx := range snap.Transactions {
		if len(out) == limit {
			break
		}
		out = append(out, *ToTransactionResponse(tx, names[tx.InventoryItemID]))
	}
	return out, nil
}
