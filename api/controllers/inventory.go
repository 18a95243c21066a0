package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hotelworks/hotelstock-backend/api/middleware"
	"github.com/hotelworks/hotelstock-backend/api/responses"
	"github.com/hotelworks/hotelstock-backend/api/validators"
	"github.com/hotelworks/hotelstock-backend/internal/inventory"
	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	pkgerrors "github.com/hotelworks/hotelstock-backend/pkg/errors"
	"github.com/hotelworks/hotelstock-backend/pkg/logger"
	"github.com/hotelworks/hotelstock-backend/pkg/types"
)

type createItemRequest struct {
	Name            string          `json:"name" validate:"required"`
	Category        string          `json:"category" validate:"required"`
	UnitType        string          `json:"unit_type" validate:"required"`
	CurrentStock    int             `json:"current_stock" validate:"min=0"`
	MinThreshold    int             `json:"min_threshold" validate:"min=0"`
	ReorderQuantity int             `json:"reorder_quantity" validate:"min=1"`
	CostPerUnit     decimal.Decimal `json:"cost_per_unit"`
	Supplier        types.Supplier  `json:"supplier" validate:"required"`
	StorageLocation string          `json:"storage_location,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
}

type updateItemRequest struct {
	Name            *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Category        *string          `json:"category,omitempty"`
	UnitType        *string          `json:"unit_type,omitempty"`
	MinThreshold    *int             `json:"min_threshold,omitempty" validate:"omitempty,min=0"`
	ReorderQuantity *int             `json:"reorder_quantity,omitempty" validate:"omitempty,min=1"`
	CostPerUnit     *decimal.Decimal `json:"cost_per_unit,omitempty"`
	Supplier        *types.Supplier  `json:"supplier,omitempty"`
	StorageLocation *string          `json:"storage_location,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

// ListItems returns the catalog, optionally narrowed to one category.
func ListItems(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items []*inventory.ItemDTO
			err   error
		)
		if raw := r.URL.Query().Get("category"); raw != "" {
			items, err = svc.ListByCategory(r.Context(), enums.ItemCategory(raw))
		} else {
			items, err = svc.List(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func GetItem(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := parseIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Get(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func CreateItem(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), actorID, inventory.CreateItemInput{
			Name:            validators.SanitizeString(req.Name, 200),
			Category:        enums.ItemCategory(req.Category),
			UnitType:        enums.UnitType(req.UnitType),
			CurrentStock:    req.CurrentStock,
			MinThreshold:    req.MinThreshold,
			ReorderQuantity: req.ReorderQuantity,
			CostPerUnit:     req.CostPerUnit,
			Supplier:        req.Supplier,
			StorageLocation: req.StorageLocation,
			Notes:           req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func UpdateItem(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := parseIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := inventory.UpdateItemInput{
			Name:            req.Name,
			MinThreshold:    req.MinThreshold,
			ReorderQuantity: req.ReorderQuantity,
			CostPerUnit:     req.CostPerUnit,
			Supplier:        req.Supplier,
			StorageLocation: req.StorageLocation,
			Notes:           req.Notes,
		}
		if req.Category != nil {
			category := enums.ItemCategory(*req.Category)
			input.Category = &category
		}
		if req.UnitType != nil {
			unit := enums.UnitType(*req.UnitType)
			input.UnitType = &unit
		}

		item, err := svc.Update(r.Context(), itemID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func DeleteItem(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := parseIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}

// requireActor resolves the acting staff member from context. The gateway is
// responsible for setting the identity headers; a request without them cannot
// mutate anything.
func requireActor(r *http.Request) (uuid.UUID, error) {
	raw := middleware.ActorIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity missing")
	}
	actorID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid actor id")
	}
	return actorID, nil
}
