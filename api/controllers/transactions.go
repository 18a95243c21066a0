package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hotelworks/hotelstock-backend/api/middleware"
	"github.com/hotelworks/hotelstock-backend/api/responses"
	"github.com/hotelworks/hotelstock-backend/api/validators"
	"github.com/hotelworks/hotelstock-backend/internal/ledger"
	"github.com/hotelworks/hotelstock-backend/internal/stock"
	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	pkgerrors "github.com/hotelworks/hotelstock-backend/pkg/errors"
	"github.com/hotelworks/hotelstock-backend/pkg/logger"
	"github.com/hotelworks/hotelstock-backend/pkg/pagination"
)

type applyTransactionRequest struct {
	ItemID   uuid.UUID  `json:"item_id" validate:"required"`
	Type     string     `json:"type" validate:"required"`
	Quantity int        `json:"quantity" validate:"min=0"`
	RoomID   *uuid.UUID `json:"room_id,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}

type bulkUpdateRequest struct {
	Updates []bulkUpdateLine `json:"updates" validate:"required,min=1,dive"`
}

type bulkUpdateLine struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"min=0"`
	Kind     string    `json:"kind" validate:"required"`
}

// ApplyTransaction runs one stock mutation through the engine.
func ApplyTransaction(engine *stock.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req applyTransactionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := engine.Apply(r.Context(), stock.ApplyInput{
			ItemID:    req.ItemID,
			Type:      enums.TransactionType(req.Type),
			Quantity:  req.Quantity,
			ActorID:   actorID,
			ActorRole: middleware.ActorRoleFromContext(r.Context()),
			RoomID:    req.RoomID,
			Notes:     req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"transaction": result.Transaction,
			"item":        result.Item,
		})
	}
}

// BulkUpdateStock applies a batch of add/set lines, skipping failures.
func BulkUpdateStock(engine *stock.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bulkUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updates := make([]stock.BulkUpdate, 0, len(req.Updates))
		for _, line := range req.Updates {
			updates = append(updates, stock.BulkUpdate{
				ItemID:   line.ItemID,
				Quantity: line.Quantity,
				Kind:     stock.BulkKind(line.Kind),
			})
		}

		results, err := engine.BulkApply(r.Context(), actorID, middleware.ActorRoleFromContext(r.Context()), updates)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"results": results})
	}
}

// ListTransactions returns a cursor page of ledger history, optionally
// filtered to one item.
func ListTransactions(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ledger.ListInput{
			Page: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}
		if raw := r.URL.Query().Get("item_id"); raw != "" {
			itemID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item_id"))
				return
			}
			input.ItemID = &itemID
		}

		page, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// ListItemTransactions returns the full ledger history of one item.
func ListItemTransactions(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := parseIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.ListByItem(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}
