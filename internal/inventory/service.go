package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hotelworks/hotelstock-backend/internal/ledger"
	"github.com/hotelworks/hotelstock-backend/pkg/db"
	"github.com/hotelworks/hotelstock-backend/pkg/db/models"
	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	pkgerrors "github.com/hotelworks/hotelstock-backend/pkg/errors"
	"github.com/hotelworks/hotelstock-backend/pkg/types"
)

const initialStockNote = "Initial stock entry"

// Service exposes catalog management operations.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*ItemDTO, error)
	List(ctx context.Context) ([]*ItemDTO, error)
	ListByCategory(ctx context.Context, category enums.ItemCategory) ([]*ItemDTO, error)
	Create(ctx context.Context, actorID uuid.UUID, input CreateItemInput) (*ItemDTO, error)
	Update(ctx context.Context, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	Delete(ctx context.Context, itemID uuid.UUID) error
}

// CreateItemInput holds the validated payload to create a catalog item.
type CreateItemInput struct {
	Name            string
	Category        enums.ItemCategory
	UnitType        enums.UnitType
	CurrentStock    int
	MinThreshold    int
	ReorderQuantity int
	CostPerUnit     decimal.Decimal
	Supplier        types.Supplier
	StorageLocation string
	Notes           *string
}

// UpdateItemInput holds optional mutation values for a catalog item. Stock is
// deliberately absent: current_stock only changes through the stock engine.
type UpdateItemInput struct {
	Name            *string
	Category        *enums.ItemCategory
	UnitType        *enums.UnitType
	MinThreshold    *int
	ReorderQuantity *int
	CostPerUnit     *decimal.Decimal
	Supplier        *types.Supplier
	StorageLocation *string
	Notes           *string
}

type service struct {
	repo       *Repository
	dbClient   *db.Client
	ledgerRepo ledger.Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client, ledgerRepo ledger.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if ledgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo, dbClient: dbClient, ledgerRepo: ledgerRepo}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load item")
	}
	return NewItemDTO(item), nil
}

func (s *service) List(ctx context.Context) ([]*ItemDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
	}
	return NewItemDTOs(items), nil
}

func (s *service) ListByCategory(ctx context.Context, category enums.ItemCategory) ([]*ItemDTO, error) {
	if !category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid item category %q", category))
	}
	items, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items by category")
	}
	return NewItemDTOs(items), nil
}

// Create validates the payload, inserts the item, and records the opening
// stock as an "add" ledger entry in the same transaction.
func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreateItemInput) (*ItemDTO, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor id is required")
	}

	location := strings.TrimSpace(input.StorageLocation)
	if location == "" {
		location = "Main Storage"
	}

	item := &models.InventoryItem{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(input.Name),
		Category:        input.Category,
		UnitType:        input.UnitType,
		CurrentStock:    input.CurrentStock,
		MinThreshold:    input.MinThreshold,
		ReorderQuantity: input.ReorderQuantity,
		CostPerUnit:     input.CostPerUnit,
		Supplier:        input.Supplier.Normalize(),
		StorageLocation: location,
		Notes:           input.Notes,
	}
	// derived, never trusted from input
	item.IsLowStock = item.ComputeLowStock(item.CurrentStock)

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.Create(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert item")
		}

		if item.CurrentStock > 0 {
			note := initialStockNote
			entry := &models.StockTransaction{
				ItemID:        item.ID,
				ItemName:      item.Name,
				Type:          enums.TransactionTypeAdd,
				Quantity:      item.CurrentStock,
				PreviousStock: 0,
				NewStock:      item.CurrentStock,
				ActorID:       actorID,
				Notes:         &note,
			}
			if err := s.ledgerRepo.WithTx(tx).Create(ctx, entry); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert opening ledger entry")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}

	return NewItemDTO(item), nil
}

func (s *service) Update(ctx context.Context, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load item")
	}

	applyUpdateToItem(item, input)
	item.IsLowStock = item.ComputeLowStock(item.CurrentStock)

	if _, err := s.repo.Save(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update item")
	}
	return NewItemDTO(item), nil
}

func (s *service) Delete(ctx context.Context, itemID uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, itemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete item")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
	}
	return nil
}

func validateCreateInput(input CreateItemInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid item category %q", input.Category))
	}
	if !input.UnitType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid unit type %q", input.UnitType))
	}
	if input.CurrentStock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "current_stock cannot be negative")
	}
	if input.MinThreshold < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_threshold cannot be negative")
	}
	if input.ReorderQuantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "reorder_quantity must be at least 1")
	}
	if input.CostPerUnit.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "cost_per_unit cannot be negative")
	}
	if strings.TrimSpace(input.Supplier.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "supplier name is required")
	}
	return nil
}

func validateUpdateInput(input UpdateItemInput) error {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
	}
	if input.Category != nil && !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid item category %q", *input.Category))
	}
	if input.UnitType != nil && !input.UnitType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid unit type %q", *input.UnitType))
	}
	if input.MinThreshold != nil && *input.MinThreshold < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_threshold cannot be negative")
	}
	if input.ReorderQuantity != nil && *input.ReorderQuantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "reorder_quantity must be at least 1")
	}
	if input.CostPerUnit != nil && input.CostPerUnit.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "cost_per_unit cannot be negative")
	}
	if input.Supplier != nil && strings.TrimSpace(input.Supplier.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "supplier name is required")
	}
	return nil
}

func applyUpdateToItem(item *models.InventoryItem, input UpdateItemInput) {
	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.UnitType != nil {
		item.UnitType = *input.UnitType
	}
	if input.MinThreshold != nil {
		item.MinThreshold = *input.MinThreshold
	}
	if input.ReorderQuantity != nil {
		item.ReorderQuantity = *input.ReorderQuantity
	}
	if input.CostPerUnit != nil {
		item.CostPerUnit = *input.CostPerUnit
	}
	if input.Supplier != nil {
		item.Supplier = input.Supplier.Normalize()
	}
	if input.StorageLocation != nil {
		if trimmed := strings.TrimSpace(*input.StorageLocation); trimmed != "" {
			item.StorageLocation = trimmed
		}
	}
	if input.Notes != nil {
		item.Notes = input.Notes
	}
}
