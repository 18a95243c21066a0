package reports

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hotelworks/hotelstock-backend/internal/inventory"
	"github.com/hotelworks/hotelstock-backend/pkg/db/models"
	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	pkgerrors "github.com/hotelworks/hotelstock-backend/pkg/errors"
)

// Urgency grades a reorder line by how badly the item needs restocking.
type Urgency string

const (
	UrgencyCritical Urgency = "Critical"
	UrgencyLow      Urgency = "Low"
)

// catalogReader is the catalog slice the report builders consume.
type catalogReader interface {
	List(ctx context.Context) ([]models.InventoryItem, error)
}

// Service builds back-office stock reports. All reports derive from the live
// catalog on every call so the alert flags never go stale.
type Service interface {
	LowStockAlerts(ctx context.Context) (*LowStockReport, error)
	CategorySummary(ctx context.Context) (*CategoryReport, error)
	ReorderReport(ctx context.Context) (*ReorderReport, error)
}

// LowStockReport splits alerting items into depleted and running-low buckets.
type LowStockReport struct {
	LowStockItems   []inventory.ItemDTO `json:"low_stock_items"`
	OutOfStockItems []inventory.ItemDTO `json:"out_of_stock_items"`
	TotalAlerts     int                 `json:"total_alerts"`
}

// CategoryTotals aggregates catalog figures for a single category.
type CategoryTotals struct {
	Category        enums.ItemCategory `json:"category"`
	TotalItems      int                `json:"total_items"`
	TotalValue      decimal.Decimal    `json:"total_value"`
	LowStockCount   int                `json:"low_stock_count"`
	OutOfStockCount int                `json:"out_of_stock_count"`
}

// CategoryReport is the per-category stock valuation summary.
type CategoryReport struct {
	Categories []CategoryTotals `json:"categories"`
	TotalValue decimal.Decimal  `json:"total_value"`
}

// ReorderLine is one purchase suggestion in the reorder report.
type ReorderLine struct {
	Item      inventory.ItemDTO `json:"item"`
	Quantity  int               `json:"quantity"`
	TotalCost decimal.Decimal   `json:"total_cost"`
	Urgency   Urgency           `json:"urgency"`
}

// ReorderReport lists every item at or below its threshold with the cost of
// bringing it back up by its configured reorder quantity.
type ReorderReport struct {
	Lines     []ReorderLine   `json:"lines"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

type service struct {
	catalog catalogReader
}

// NewService constructs a report service instance.
func NewService(catalog catalogReader) (Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	return &service{catalog: catalog}, nil
}

func (s *service) LowStockAlerts(ctx context.Context) (*LowStockReport, error) {
	items, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	report := &LowStockReport{
		LowStockItems:   []inventory.ItemDTO{},
		OutOfStockItems: []inventory.ItemDTO{},
	}
	for i := range items {
		item := &items[i]
		switch {
		case item.IsOutOfStock():
			report.OutOfStockItems = append(report.OutOfStockItems, *inventory.NewItemDTO(item))
		case item.NeedsReorder():
			report.LowStockItems = append(report.LowStockItems, *inventory.NewItemDTO(item))
		}
	}
	report.TotalAlerts = len(report.LowStockItems) + len(report.OutOfStockItems)
	return report, nil
}

func (s *service) CategorySummary(ctx context.Context) (*CategoryReport, error) {
	items, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := map[enums.ItemCategory]*CategoryTotals{}
	grandTotal := decimal.Zero
	for i := range items {
		item := &items[i]
		totals, ok := byCategory[item.Category]
		if !ok {
			totals = &CategoryTotals{Category: item.Category, TotalValue: decimal.Zero}
			byCategory[item.Category] = totals
		}

		value := item.CostPerUnit.Mul(decimal.NewFromInt(int64(item.CurrentStock)))
		totals.TotalItems++
		totals.TotalValue = totals.TotalValue.Add(value)
		grandTotal = grandTotal.Add(value)
		if item.IsOutOfStock() {
			totals.OutOfStockCount++
		} else if item.NeedsReorder() {
			totals.LowStockCount++
		}
	}

	categories := make([]CategoryTotals, 0, len(byCategory))
	for _, totals := range byCategory {
		categories = append(categories, *totals)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})
	return &CategoryReport{Categories: categories, TotalValue: grandTotal}, nil
}

func (s *service) ReorderReport(ctx context.Context) (*ReorderReport, error) {
	items, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	report := &ReorderReport{Lines: []ReorderLine{}, TotalCost: decimal.Zero}
	for i := range items {
		item := &items[i]
		if !item.NeedsReorder() {
			continue
		}

		urgency := UrgencyLow
		if item.IsOutOfStock() {
			urgency = UrgencyCritical
		}
		cost := item.CostPerUnit.Mul(decimal.NewFromInt(int64(item.ReorderQuantity)))
		report.Lines = append(report.Lines, ReorderLine{
			Item:      *inventory.NewItemDTO(item),
			Quantity:  item.ReorderQuantity,
			TotalCost: cost,
			Urgency:   urgency,
		})
		report.TotalCost = report.TotalCost.Add(cost)
	}
	return report, nil
}

func (s *service) loadCatalog(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.catalog.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list catalog items")
	}
	return items, nil
}
