package inventory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/database/dbtest"
	"github.com/georgemunganga/retailos/internal/modules/inventory"
)

func newService(t *testing.T) inventory.Service {
	db, _ := dbtest.Open(t)
	return inventory.NewService(inventory.NewSQLRepository(db))
}

func receiveA1(t *testing.T, svc inventory.Service, store uuid.UUID) *inventory.Item {
	t.Helper()
	item, err := svc.Receive(context.Background(), store, inventory.ReceiveRequest{
		Code: "A1", Name: "Apple juice", Buy: decimal.NewFromInt(2), Sell: decimal.NewFromInt(5), Qty: 5,
	})
	require.NoError(t, err)
	return item
}

func TestReceiveAndList(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	store := uuid.New()

	receiveA1(t, svc, store)
	_, err := svc.Receive(ctx, store, inventory.ReceiveRequest{Code: "B2", Name: "Bread", Buy: decimal.NewFromInt(1), Sell: decimal.NewFromInt(2), Qty: 10})
	require.NoError(t, err)

	items, err := svc.ListItems(ctx, store)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Apple juice", items[0].Name)
	assert.Equal(t, "Bread", items[1].Name)
	assert.Equal(t, 5, items[0].Stock)
	assert.True(t, decimal.NewFromInt(5).Equal(items[0].PriceSell))
}

func TestReceiveDuplicateCodeDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	store := uuid.New()
	receiveA1(t, svc, store)

	_, err := svc.Receive(ctx, store, inventory.ReceiveRequest{
		Code: "A1", Name: "Other", Buy: decimal.NewFromInt(9), Sell: decimal.NewFromInt(9), Qty: 100,
	})
	assert.ErrorIs(t, err, apperror.ErrDuplicateCode)

	items, err := svc.ListItems(ctx, store)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Stock)
	assert.Equal(t, "Apple juice", items[0].Name)
	assert.True(t, decimal.NewFromInt(2).Equal(items[0].PriceBuy))
}

func TestSameCodeInAnotherStoreIsAllowed(t *testing.T) {
	svc := newService(t)
	storeA, storeB := uuid.New(), uuid.New()
	receiveA1(t, svc, storeA)
	receiveA1(t, svc, storeB)

	items, err := svc.ListItems(context.Background(), storeB)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestRestock(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	store := uuid.New()
	receiveA1(t, svc, store)

	item, err := svc.Restock(ctx, store, inventory.RestockRequest{Code: "A1", Qty: 7})
	require.NoError(t, err)
	assert.Equal(t, 12, item.Stock)
	assert.True(t, decimal.NewFromInt(2).Equal(item.PriceBuy))

	_, err = svc.Restock(ctx, store, inventory.RestockRequest{Code: "ZZ", Qty: 1})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.Restock(ctx, uuid.New(), inventory.RestockRequest{Code: "A1", Qty: 1})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.Restock(ctx, store, inventory.RestockRequest{Code: "A1", Qty: 0})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestEditItemIsTenantScoped(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	storeA, storeB := uuid.New(), uuid.New()
	item := receiveA1(t, svc, storeA)

	edit := inventory.EditRequest{
		ID: item.ID, Code: "A1", Name: "Stolen", Buy: decimal.Zero, Sell: decimal.Zero, Qty: 0,
	}
	require.NoError(t, svc.EditItem(ctx, storeB, edit))

	items, err := svc.ListItems(ctx, storeA)
	require.NoError(t, err)
	assert.Equal(t, "Apple juice", items[0].Name)
	assert.Equal(t, 5, items[0].Stock)

	edit.Name = "Apple juice 1L"
	edit.Sell = decimal.RequireFromString("5.50")
	edit.Qty = 4
	require.NoError(t, svc.EditItem(ctx, storeA, edit))

	items, err = svc.ListItems(ctx, storeA)
	require.NoError(t, err)
	assert.Equal(t, "Apple juice 1L", items[0].Name)
	assert.Equal(t, 4, items[0].Stock)
	assert.True(t, decimal.RequireFromString("5.5").Equal(items[0].PriceSell))
}

func TestEditItemToExistingCode(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	store := uuid.New()
	receiveA1(t, svc, store)
	other, err := svc.Receive(ctx, store, inventory.ReceiveRequest{Code: "B2", Name: "Bread", Qty: 1})
	require.NoError(t, err)

	err = svc.EditItem(ctx, store, inventory.EditRequest{ID: other.ID, Code: "A1", Name: "Bread", Qty: 1})
	assert.ErrorIs(t, err, apperror.ErrDuplicateCode)
}

func TestReceiveValidation(t *testing.T) {
	svc := newService(t)
	_, err := svc.Receive(context.Background(), uuid.New(), inventory.ReceiveRequest{
		Code: "", Name: "Nameless", Buy: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestStoreFailureIsStorageError(t *testing.T) {
	db, _ := dbtest.Open(t)
	svc := inventory.NewService(inventory.NewSQLRepository(db))
	require.NoError(t, db.Close())

	_, err := svc.ListItems(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrStorage)

	_, err = svc.Receive(context.Background(), uuid.New(), inventory.ReceiveRequest{Code: "A1", Name: "Apple juice", Qty: 1})
	assert.ErrorIs(t, err, apperror.ErrStorage)
	assert.NotErrorIs(t, err, apperror.ErrDuplicateCode)
}
