package inventory

import (
	"context"

	"github.com/jhoicas/Clinica-api/internal/application/dto"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
)

// RecordFromRequest adapta el request HTTP al caso de uso RecordTransaction(ctx, TransactionInputDTO).
func (uc *RegisterTransactionUseCase) RecordFromRequest(ctx context.Context, clinicID, userID string, in dto.RecordTransactionRequest) (*dto.TransactionResponse, error) {
	tx, err := uc.RecordTransaction(ctx, TransactionInputDTO{
		ClinicID:      clinicID,
		UserID:        userID,
		ItemID:        in.InventoryItemID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		Reason:        in.Reason,
		ReferenceID:   in.ReferenceID,
		ReferenceType: in.ReferenceType,
	})
	if err != nil {
		return nil, err
	}
	return ToTransactionResponse(tx, ""), nil
}

// HistoryResponse devuelve el historial del artículo como DTOs.
func (uc *RegisterTransactionUseCase) HistoryResponse(ctx context.Context, clinicID, itemID string) ([]dto.TransactionResponse, error) {
	list, err := uc.GetHistory(ctx, clinicID, itemID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		out = append(out, *ToTransactionResponse(tx, ""))
	}
	return out, nil
}

// ToTransactionResponse convierte una fila del libro en DTO.
func ToTransactionResponse(tx *entity.InventoryTransaction, itemName string) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:              tx.ID,
		InventoryItemID: tx.InventoryItemID,
		ItemName:        itemName,
		Type:            tx.Type,
		Quantity:        tx.Quantity,
		Balance:         tx.Balance,
		Reason:          tx.Reason,
		ReferenceID:     tx.ReferenceID,
		ReferenceType:   tx.ReferenceType,
		CreatedAt:       tx.CreatedAt,
		CreatedBy:       tx.CreatedBy,
	}
}

func toItemResponse(it *entity.InventoryItem) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:              it.ID,
		Name:            it.Name,
		Category:        it.Category,
		CurrentStock:    it.CurrentStock,
		Unit:            it.Unit,
		UnitCost:        it.UnitCost,
		ReorderLevel:    it.ReorderLevel,
		ReorderQuantity: it.ReorderQuantity,
		Supplier:        it.Supplier,
		Notes:           it.Notes,
		ExpiryDate:      dto.FormatDate(it.ExpiryDate),
		IsLowStock:      it.IsLowStock(),
		StockValue:      it.StockValue(),
		CreatedAt:       it.CreatedAt,
		UpdatedAt:       it.UpdatedAt,
	}
}
