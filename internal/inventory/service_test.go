package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hotelworks/hotelstock-backend/internal/ledger"
	"github.com/hotelworks/hotelstock-backend/pkg/db"
	"github.com/hotelworks/hotelstock-backend/pkg/db/models"
	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	pkgerrors "github.com/hotelworks/hotelstock-backend/pkg/errors"
	"github.com/hotelworks/hotelstock-backend/pkg/types"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:catalog_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	items := `
CREATE TABLE IF NOT EXISTS inventory_items (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  unit_type TEXT NOT NULL,
  current_stock INTEGER NOT NULL DEFAULT 0,
  min_threshold INTEGER NOT NULL DEFAULT 0,
  reorder_quantity INTEGER NOT NULL DEFAULT 1,
  cost_per_unit NUMERIC NOT NULL,
  supplier TEXT,
  storage_location TEXT NOT NULL DEFAULT 'Main Storage',
  notes TEXT,
  is_low_stock INTEGER NOT NULL DEFAULT 0,
  last_restock_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	transactions := `
CREATE TABLE IF NOT EXISTS stock_transactions (
  id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL,
  item_name TEXT NOT NULL,
  type TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  previous_stock INTEGER NOT NULL,
  new_stock INTEGER NOT NULL,
  actor_id TEXT NOT NULL,
  room_id TEXT,
  notes TEXT,
  is_automatic INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(items).Error)
	require.NoError(t, conn.Exec(transactions).Error)
	return conn
}

func newCatalogService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), db.NewFromConn(conn), ledger.NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func baseCreateInput() CreateItemInput {
	return CreateItemInput{
		Name:            "Bath Towel",
		Category:        enums.ItemCategoryHousekeeping,
		UnitType:        enums.UnitTypePiece,
		CurrentStock:    10,
		MinThreshold:    5,
		ReorderQuantity: 20,
		CostPerUnit:     decimal.NewFromFloat(4.50),
		Supplier:        types.Supplier{Name: "Linen Co"},
	}
}

func TestNewServiceRequiresDeps(t *testing.T) {
	conn := setupCatalogTestDB(t)
	if _, err := NewService(nil, db.NewFromConn(conn), ledger.NewRepository(conn)); err == nil {
		t.Fatal("expected error creating service without repo")
	}
	if _, err := NewService(NewRepository(conn), nil, ledger.NewRepository(conn)); err == nil {
		t.Fatal("expected error creating service without db client")
	}
	if _, err := NewService(NewRepository(conn), db.NewFromConn(conn), nil); err == nil {
		t.Fatal("expected error creating service without ledger repo")
	}
}

func TestCreateWritesOpeningLedgerEntry(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogService(t, conn)
	actorID := uuid.New()

	dto, err := svc.Create(context.Background(), actorID, baseCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "Bath Towel", dto.Name)
	assert.Equal(t, 10, dto.CurrentStock)
	assert.False(t, dto.IsLowStock)
	assert.Equal(t, "Main Storage", dto.StorageLocation)

	var entries []models.StockTransaction
	require.NoError(t, conn.Where("item_id = ?", dto.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, enums.TransactionTypeAdd, entries[0].Type)
	assert.Equal(t, 10, entries[0].Quantity)
	assert.Equal(t, 0, entries[0].PreviousStock)
	assert.Equal(t, 10, entries[0].NewStock)
	assert.Equal(t, actorID, entries[0].ActorID)
	require.NotNil(t, entries[0].Notes)
	assert.Equal(t, "Initial stock entry", *entries[0].Notes)
}

func TestCreateZeroStockSkipsLedgerEntry(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogService(t, conn)

	input := baseCreateInput()
	input.CurrentStock = 0

	dto, err := svc.Create(context.Background(), uuid.New(), input)
	require.NoError(t, err)
	assert.Equal(t, 0, dto.CurrentStock)
	assert.True(t, dto.IsLowStock)
	assert.True(t, dto.IsOutOfStock)

	var count int64
	require.NoError(t, conn.Model(&models.StockTransaction{}).Where("item_id = ?", dto.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateValidation(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogService(t, conn)

	cases := []struct {
		name   string
		mutate func(*CreateItemInput)
	}{
		{"emptyName", func(in *CreateItemInput) { in.Name = "   " }},
		{"invalidCategory", func(in *CreateItemInput) { in.Category = "Garage" }},
		{"invalidUnit", func(in *CreateItemInput) { in.UnitType = "barrel" }},
		{"negativeStock", func(in *CreateItemInput) { in.CurrentStock = -1 }},
		{"negativeThreshold", func(in *CreateItemInput) { in.MinThreshold = -1 }},
		{"zeroReorderQuantity", func(in *CreateItemInput) { in.ReorderQuantity = 0 }},
		{"negativeCost", func(in *CreateItemInput) { in.CostPerUnit = decimal.NewFromInt(-1) }},
		{"missingSupplierName", func(in *CreateItemInput) { in.Supplier = types.Supplier{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := baseCreateInput()
			tc.mutate(&input)

			_, err := svc.Create(context.Background(), uuid.New(), input)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestGetNotFound(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogService(t, conn)

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListOrdersByName(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogService(t, conn)

	for _, name := range []string{"Towel", "Soap", "Shampoo"} {
		input := baseCreateInput()
		input.Name = name
		_, err := svc.Create(context.Background(), uuid.New(), input)
		require.NoError(t, err)
	}

	dtos, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, dtos, 3)
	assert.Equal(t, "Shampoo", dtos[0].Name)
	assert.Equal(t, "Soap", dtos[1].Name)
	assert.Equal(t, "Towel", dtos[2].Name)
}

func TestListByCategoryFilters(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogService(t, conn)

	housekeeping := baseCreateInput()
	_, err := svc.Create(context.Background(), uuid.New(), housekeeping)
	require.NoError(t, err)

	minibar := baseCreateInput()
	minibar.Name = "Sparkling Water"
	minibar.Category = enums.ItemCategoryMinibar
	_, err = svc.Create(context.Background(), uuid.New(), minibar)
	require.NoError(t, err)

	dtos, err := svc.ListByCategory(context.Background(), enums.ItemCategoryMinibar)
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "Sparkling Water", dtos[0].Name)

	_, err = svc.ListByCategory(context.Background(), "Garage")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateRecomputesLowStockAndIgnoresStock(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogService(t, conn)

	dto, err := svc.Create(context.Background(), uuid.New(), baseCreateInput())
	require.NoError(t, err)
	assert.False(t, dto.IsLowStock)

	// raising the threshold above the stored stock flips the alert flag
	threshold := 15
	updated, err := svc.Update(context.Background(), dto.ID, UpdateItemInput{MinThreshold: &threshold})
	require.NoError(t, err)
	assert.True(t, updated.IsLowStock)
	assert.Equal(t, 10, updated.CurrentStock)
}

func TestUpdateNotFound(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogService(t, conn)

	name := "Renamed"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateItemInput{Name: &name})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteKeepsLedgerHistory(t *testing.T) {
	conn := setupCatalogTestDB(t)
	svc := newCatalogService(t, conn)

	dto, err := svc.Create(context.Background(), uuid.New(), baseCreateInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), dto.ID))

	_, err = svc.Get(context.Background(), dto.ID)
	require.Error(t, err)

	// the opening ledger entry survives the deletion
	var count int64
	require.NoError(t, conn.Model(&models.StockTransaction{}).Where("item_id = ?", dto.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	err = svc.Delete(context.Background(), dto.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
