package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	pkgerrors "github.com/hotelworks/hotelstock-backend/pkg/errors"
)

// BulkKind selects how a bulk line changes stock.
type BulkKind string

const (
	BulkKindAdd BulkKind = "add"
	BulkKindSet BulkKind = "set"
)

// IsValid reports whether the value is a known BulkKind.
func (k BulkKind) IsValid() bool {
	return k == BulkKindAdd || k == BulkKindSet
}

// BulkUpdate is one line of a bulk stock update.
type BulkUpdate struct {
	ItemID   uuid.UUID
	Quantity int
	Kind     BulkKind
}

// BulkResult reports one successfully applied bulk line. Lines that could not
// be applied (missing item, invalid quantity) are omitted from the result
// list rather than failing the batch.
type BulkResult struct {
	ItemID   uuid.UUID `json:"item_id"`
	Success  bool      `json:"success"`
	NewStock int       `json:"new_stock"`
}

// BulkApply applies each update independently in sequence. A line's failure
// is logged and skipped; the remaining lines still run.
func (e *Engine) BulkApply(ctx context.Context, actorID uuid.UUID, actorRole enums.ActorRole, updates []BulkUpdate) ([]BulkResult, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor id is required")
	}

	results := make([]BulkResult, 0, len(updates))
	for _, update := range updates {
		if !update.Kind.IsValid() {
			e.logBulkSkip(ctx, update, fmt.Errorf("invalid bulk kind %q", update.Kind))
			continue
		}

		txType := enums.TransactionTypeAdd
		if update.Kind == BulkKindSet {
			txType = enums.TransactionTypeAdjustment
		}
		note := fmt.Sprintf("Bulk update: %s", update.Kind)

		result, err := e.Apply(ctx, ApplyInput{
			ItemID:    update.ItemID,
			Type:      txType,
			Quantity:  update.Quantity,
			ActorID:   actorID,
			ActorRole: actorRole,
			Notes:     &note,
		})
		if err != nil {
			e.logBulkSkip(ctx, update, err)
			continue
		}

		results = append(results, BulkResult{
			ItemID:   update.ItemID,
			Success:  true,
			NewStock: result.Item.CurrentStock,
		})
	}
	return results, nil
}

func (e *Engine) logBulkSkip(ctx context.Context, update BulkUpdate, err error) {
	if e.logg == nil {
		return
	}
	lctx := e.logg.WithFields(ctx, map[string]any{
		"item_id": update.ItemID.String(),
		"kind":    string(update.Kind),
		"error":   err.Error(),
	})
	e.logg.Warn(lctx, "stock.bulk.skip")
}
