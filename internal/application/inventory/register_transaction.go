package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Clinica-api/internal/application/state"
	"github.com/jhoicas/Clinica-api/internal/domain"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
	"github.com/jhoicas/Clinica-api/internal/domain/inventory"
	"github.com/jhoicas/Clinica-api/internal/domain/repository"
)

// RegisterTransactionUseCase registra transacciones del libro de inventario de forma transaccional
// (addition, deduction, adjustment) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterTransactionUseCase struct {
	txRunner TxRunner
	itemRepo repository.InventoryItemRepository
	txRepo   repository.InventoryTransactionRepository
	cache    *state.Cache
	log      zerolog.Logger
}

// NewRegisterTransactionUseCase construye el caso de uso.
func NewRegisterTransactionUseCase(
	txRunner TxRunner,
	itemRepo repository.InventoryItemRepository,
	txRepo repository.InventoryTransactionRepository,
	cache *state.Cache,
	log zerolog.Logger,
) *RegisterTransactionUseCase {
	return &RegisterTransactionUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		txRepo:   txRepo,
		cache:    cache,
		log:      log.With().Str("component", "inventory").Logger(),
	}
}

// TransactionInputDTO entrada validada para registrar una transacción.
type TransactionInputDTO struct {
	ClinicID      string
	UserID        string
	ItemID        string
	Type          string
	Quantity      int64
	Reason        string
	ReferenceID   string
	ReferenceType string
}

func (in *TransactionInputDTO) validate() error {
	if strings.TrimSpace(in.ItemID) == "" {
		return domain.Validation("inventory_item_id es obligatorio")
	}
	switch in.Type {
	case entity.TransactionTypeAddition, entity.TransactionTypeDeduction, entity.TransactionTypeAdjustment:
	default:
		return domain.Validation("type debe ser addition, deduction o adjustment")
	}
	if in.Quantity <= 0 {
		return domain.Validation("la cantidad debe ser un entero positivo")
	}
	if in.ReferenceType == "" {
		in.ReferenceType = entity.ReferenceTypeManual
	}
	switch in.ReferenceType {
	case entity.ReferenceTypeManual, entity.ReferenceTypeTreatment, entity.ReferenceTypePurchase:
	default:
		return domain.Validation("reference_type debe ser manual, treatment o purchase")
	}
	return nil
}

// RecordTransaction inicia una transacción, bloquea el artículo, calcula el nuevo saldo,
// guarda la fila del libro y actualiza CurrentStock. Solo tras el Commit se actualiza la caché.
func (uc *RegisterTransactionUseCase) RecordTransaction(ctx context.Context, in TransactionInputDTO) (*entity.InventoryTransaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var created *entity.InventoryTransaction
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		tx, err := uc.RecordInTx(ctx, repos, in, time.Now())
		if err != nil {
			return err
		}
		created = tx
		return nil
	})
	if err != nil {
		err = domain.Backend("registrar transacción de inventario", err)
		if errors.Is(err, domain.ErrBackend) {
			uc.log.Error().Err(err).Str("item_id", in.ItemID).Msg("fallo al registrar transacción")
		}
		return nil, err
	}

	uc.cache.AppendTransaction(created)
	uc.log.Info().
		Str("clinic_id", in.ClinicID).
		Str("item_id", created.InventoryItemID).
		Str("type", created.Type).
		Int64("quantity", created.Quantity).
		Int64("balance", created.Balance).
		Msg("transacción de inventario registrada")
	return created, nil
}

// RecordInTx aplica la transacción usando los repositorios del caller (misma transacción).
// La usan los tratamientos para descontar medicamentos; si retorna error el caller hace rollback.
func (uc *RegisterTransactionUseCase) RecordInTx(
	ctx context.Context,
	repos repository.Repos,
	in TransactionInputDTO,
	now time.Time,
) (*entity.InventoryTransaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	// Bloquea la fila del artículo (SELECT FOR UPDATE) para evitar saldos perdidos
	item, err := repos.Items.GetForUpdate(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.ClinicID != in.ClinicID {
		return nil, domain.NotFound("artículo de inventario")
	}

	tx := &entity.InventoryTransaction{
		ID:              uuid.New().String(),
		ClinicID:        in.ClinicID,
		InventoryItemID: item.ID,
		Type:            in.Type,
		Quantity:        in.Quantity,
		Reason:          in.Reason,
		ReferenceID:     in.ReferenceID,
		ReferenceType:   in.ReferenceType,
		CreatedAt:       now,
		CreatedBy:       in.UserID,
	}
	if err := inventory.Apply(item, tx); err != nil {
		return nil, err
	}
	if err := repos.Items.UpdateStock(ctx, item.ID, item.CurrentStock); err != nil {
		return nil, err
	}
	if err := repos.Transactions.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetHistory devuelve el historial del artículo, del más reciente al más antiguo.
func (uc *RegisterTransactionUseCase) GetHistory(ctx context.Context, clinicID, itemID string) ([]*entity.InventoryTransaction, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, domain.Backend("leer artículo", err)
	}
	if item == nil || item.ClinicID != clinicID {
		return nil, domain.NotFound("artículo de inventario")
	}
	list, err := uc.txRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, domain.Backend("leer historial", err)
	}
	return list, nil
}
