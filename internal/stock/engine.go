package stock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotelworks/hotelstock-backend/internal/inventory"
	"github.com/hotelworks/hotelstock-backend/internal/ledger"
	"github.com/hotelworks/hotelstock-backend/pkg/db"
	"github.com/hotelworks/hotelstock-backend/pkg/db/models"
	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	pkgerrors "github.com/hotelworks/hotelstock-backend/pkg/errors"
	"github.com/hotelworks/hotelstock-backend/pkg/logger"
	"github.com/hotelworks/hotelstock-backend/pkg/metrics"
)

// maxApplyAttempts bounds the optimistic-concurrency retry loop. A mutation
// losing the stock-equality guard this many times in a row gives up with a
// conflict instead of spinning.
const maxApplyAttempts = 3

// errStaleStock signals that a concurrent writer changed current_stock
// between our read and our guarded write.
var errStaleStock = errors.New("stale stock read")

// Engine is the single authority for changing an item's current stock. Every
// accepted mutation writes one ledger entry and the catalog update in the
// same database transaction, with a stock-equality guard serializing
// concurrent writers per item.
type Engine struct {
	dbClient     *db.Client
	itemRepo     *inventory.Repository
	ledgerRepo   ledger.Repository
	logg         *logger.Logger
	stockMetrics *metrics.StockMetrics

	// invoked between the catalog read and the guarded write; nil outside tests
	afterRead func()
}

// ApplyInput describes one requested stock mutation.
type ApplyInput struct {
	ItemID      uuid.UUID
	Type        enums.TransactionType
	Quantity    int
	ActorID     uuid.UUID
	ActorRole   enums.ActorRole
	RoomID      *uuid.UUID
	Notes       *string
	IsAutomatic bool
}

// Result carries the accepted ledger entry and the updated catalog row.
type Result struct {
	Transaction *models.StockTransaction
	Item        *models.InventoryItem
}

// NewEngine constructs the mutation engine.
func NewEngine(dbClient *db.Client, itemRepo *inventory.Repository, ledgerRepo ledger.Repository, logg *logger.Logger, stockMetrics *metrics.StockMetrics) (*Engine, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if itemRepo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if ledgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &Engine{
		dbClient:     dbClient,
		itemRepo:     itemRepo,
		ledgerRepo:   ledgerRepo,
		logg:         logg,
		stockMetrics: stockMetrics,
	}, nil
}

// Apply validates and applies one stock mutation. The role policy runs before
// any state is read; the ledger entry and the catalog update commit together
// or not at all.
func (e *Engine) Apply(ctx context.Context, input ApplyInput) (*Result, error) {
	if err := e.authorize(input); err != nil {
		e.stockMetrics.IncRejected(input.Type.String(), string(pkgerrors.CodeForbidden))
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxApplyAttempts; attempt++ {
		result, err := e.applyOnce(ctx, input)
		if err == nil {
			e.stockMetrics.IncApplied(input.Type.String(), input.IsAutomatic)
			return result, nil
		}
		if errors.Is(err, errStaleStock) {
			if e.logg != nil {
				lctx := e.logg.WithFields(ctx, map[string]any{
					"item_id": input.ItemID.String(),
					"attempt": attempt,
				})
				e.logg.Warn(lctx, "stock.apply.retry")
			}
			continue
		}
		if typed := pkgerrors.As(err); typed != nil {
			e.stockMetrics.IncRejected(input.Type.String(), string(typed.Code()))
		}
		return nil, err
	}

	e.stockMetrics.IncRejected(input.Type.String(), string(pkgerrors.CodeConflict))
	return nil, pkgerrors.New(pkgerrors.CodeConflict, "item stock is changing concurrently, retry the transaction")
}

func (e *Engine) applyOnce(ctx context.Context, input ApplyInput) (*Result, error) {
	// The read happens outside the write transaction on purpose: the
	// stock-equality guard below re-validates it, and the transaction only
	// has to cover the two writes.
	loaded, err := e.itemRepo.FindByID(ctx, input.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load item")
	}

	if e.afterRead != nil {
		e.afterRead()
	}

	previous := loaded.CurrentStock
	newStock, err := computeNewStock(input.Type, previous, input.Quantity)
	if err != nil {
		return nil, err
	}

	var entry *models.StockTransaction

	err = e.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		now := time.Now().UTC()
		updates := map[string]any{
			"current_stock": newStock,
			"is_low_stock":  loaded.ComputeLowStock(newStock),
			"updated_at":    now,
		}
		if input.Type == enums.TransactionTypeAdd {
			updates["last_restock_date"] = now
		}

		// The stock-equality guard serializes concurrent writers on this
		// item: whoever read a stale previous stock matches zero rows.
		res := tx.Model(&models.InventoryItem{}).
			Where("id = ? AND current_stock = ?", loaded.ID, previous).
			Updates(updates)
		if res.Error != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "db: update stock")
		}
		if res.RowsAffected == 0 {
			return errStaleStock
		}

		entry = &models.StockTransaction{
			ItemID:        loaded.ID,
			ItemName:      loaded.Name,
			Type:          input.Type,
			Quantity:      absQuantity(input.Quantity),
			PreviousStock: previous,
			NewStock:      newStock,
			ActorID:       input.ActorID,
			RoomID:        input.RoomID,
			Notes:         normalizeNotes(input.Notes),
			IsAutomatic:   input.IsAutomatic,
		}
		if err := e.ledgerRepo.WithTx(tx).Create(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert ledger entry")
		}

		loaded.CurrentStock = newStock
		loaded.IsLowStock = loaded.ComputeLowStock(newStock)
		loaded.UpdatedAt = now
		if input.Type == enums.TransactionTypeAdd {
			loaded.LastRestockDate = &now
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{Transaction: entry, Item: loaded}, nil
}

// authorize enforces the role policy before any mutable state is read:
// housekeeping may only move stock to and from rooms.
func (e *Engine) authorize(input ApplyInput) error {
	if input.ActorRole == enums.ActorRoleHousekeeping && !input.Type.IsRoomScoped() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "insufficient permissions for manual stock modification")
	}
	return nil
}

func validateInput(input ApplyInput) error {
	if input.ItemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if input.ActorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "actor id is required")
	}
	if !input.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid transaction type %q", input.Type))
	}
	if input.Quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if input.Quantity == 0 && input.Type != enums.TransactionTypeAdjustment {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	return nil
}

// computeNewStock applies the per-type stock rule. A result below zero is an
// insufficient-stock rejection, never a clamp: the ledger must only record
// states that actually existed.
func computeNewStock(t enums.TransactionType, previous, quantity int) (int, error) {
	var newStock int
	switch t {
	case enums.TransactionTypeAdd, enums.TransactionTypeRoomRefill:
		newStock = previous + quantity
	case enums.TransactionTypeReduce, enums.TransactionTypeRoomAllocation:
		newStock = previous - quantity
	case enums.TransactionTypeAdjustment:
		newStock = quantity
	default:
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid transaction type %q", t))
	}

	if newStock < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeInsufficient, "insufficient stock available").
			WithDetails(map[string]any{"available": previous, "requested": quantity})
	}
	return newStock, nil
}

func absQuantity(q int) int {
	if q < 0 {
		return -q
	}
	return q
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
