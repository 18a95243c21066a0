package stock

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelworks/hotelstock-backend/pkg/db/models"
	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	pkgerrors "github.com/hotelworks/hotelstock-backend/pkg/errors"
)

func TestBulkApplyRequiresActor(t *testing.T) {
	conn := setupStockTestDB(t)
	engine := newTestEngine(t, conn)

	_, err := engine.BulkApply(context.Background(), uuid.Nil, enums.ActorRoleManager, nil)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestBulkApplyAddAndSet(t *testing.T) {
	conn := setupStockTestDB(t)
	engine := newTestEngine(t, conn)
	towels := mustCreateTestItem(t, conn, 10, 2)
	soap := mustCreateTestItem(t, conn, 4, 2)

	results, err := engine.BulkApply(context.Background(), uuid.New(), enums.ActorRoleManager, []BulkUpdate{
		{ItemID: towels.ID, Quantity: 5, Kind: BulkKindAdd},
		{ItemID: soap.ID, Quantity: 30, Kind: BulkKindSet},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 15, results[0].NewStock)
	assert.Equal(t, 30, results[1].NewStock)

	entries := ledgerEntries(t, conn, towels.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, enums.TransactionTypeAdd, entries[0].Type)
	require.NotNil(t, entries[0].Notes)
	assert.Equal(t, "Bulk update: add", *entries[0].Notes)

	entries = ledgerEntries(t, conn, soap.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, enums.TransactionTypeAdjustment, entries[0].Type)
	require.NotNil(t, entries[0].Notes)
	assert.Equal(t, "Bulk update: set", *entries[0].Notes)
}

func TestBulkApplySkipsFailedLines(t *testing.T) {
	conn := setupStockTestDB(t)
	engine := newTestEngine(t, conn)
	towels := mustCreateTestItem(t, conn, 10, 2)

	results, err := engine.BulkApply(context.Background(), uuid.New(), enums.ActorRoleManager, []BulkUpdate{
		{ItemID: uuid.New(), Quantity: 5, Kind: BulkKindAdd},
		{ItemID: towels.ID, Quantity: 5, Kind: BulkKind("drop")},
		{ItemID: towels.ID, Quantity: 5, Kind: BulkKindAdd},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, towels.ID, results[0].ItemID)
	assert.True(t, results[0].Success)
	assert.Equal(t, 15, results[0].NewStock)

	var stored models.InventoryItem
	require.NoError(t, conn.First(&stored, "id = ?", towels.ID).Error)
	assert.Equal(t, 15, stored.CurrentStock)
}
