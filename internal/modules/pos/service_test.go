package pos_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/database/dbtest"
	"github.com/georgemunganga/retailos/internal/modules/inventory"
	"github.com/georgemunganga/retailos/internal/modules/pos"
)

type fixture struct {
	db    *sql.DB
	inv   inventory.Service
	pos   pos.Service
	store uuid.UUID
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, _ := dbtest.Open(t)
	f := &fixture{
		db:    db,
		inv:   inventory.NewService(inventory.NewSQLRepository(db)),
		pos:   pos.NewService(pos.NewSQLRepository(db), 3),
		store: uuid.New(),
	}
	f.receive(t, f.store, "A1", "Apple juice", 2, 5, 5)
	f.receive(t, f.store, "B2", "Bread", 1, 3, 1)
	return f
}

func (f *fixture) receive(t *testing.T, store uuid.UUID, code, name string, buy, sell int64, qty int) {
	t.Helper()
	_, err := f.inv.Receive(context.Background(), store, inventory.ReceiveRequest{
		Code: code, Name: name, Buy: decimal.NewFromInt(buy), Sell: decimal.NewFromInt(sell), Qty: qty,
	})
	require.NoError(t, err)
}

func (f *fixture) stock(t *testing.T, store uuid.UUID, code string) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.QueryRow(`SELECT stock FROM inventory WHERE store_id=$1 AND code=$2`, store, code).Scan(&n))
	return n
}

func (f *fixture) saleLines(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(*) FROM sales`).Scan(&n))
	return n
}

func cart(lines ...pos.CartLine) pos.CheckoutRequest {
	return pos.CheckoutRequest{
		Cart:       lines,
		SellerName: "Olena",
		PayCash:    decimal.NewFromInt(10),
		PayCard:    decimal.Zero,
	}
}

func TestReceiveThenCheckout(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	receipt, err := f.pos.Checkout(ctx, f.store, cart(pos.CartLine{Code: "A1", Qty: 2}))
	require.NoError(t, err)

	assert.Equal(t, 3, f.stock(t, f.store, "A1"))
	assert.True(t, decimal.NewFromInt(10).Equal(receipt.Total), receipt.Total.String())
	assert.True(t, receipt.Change().IsZero())
	require.Len(t, receipt.Lines, 1)
	assert.Equal(t, "Apple juice", receipt.Lines[0].Name)
	assert.True(t, decimal.NewFromInt(2).Equal(receipt.Lines[0].PriceBuy))

	receipts, err := f.pos.ListReceipts(ctx, f.store, 0)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, receipt.ReceiptID, receipts[0].ReceiptID)
	assert.True(t, decimal.NewFromInt(10).Equal(receipts[0].Total))
	assert.Equal(t, "Olena", receipts[0].SellerName)

	lines, err := f.pos.ListLines(ctx, f.store, 0)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, receipt.ReceiptID, lines[0].ReceiptID)
	assert.Equal(t, 2, lines[0].Qty)
}

func TestCheckoutIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	// B2 has only one unit; the whole receipt must be rejected
	_, err := f.pos.Checkout(ctx, f.store, cart(
		pos.CartLine{Code: "A1", Qty: 2},
		pos.CartLine{Code: "B2", Qty: 2},
	))
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)

	assert.Equal(t, 5, f.stock(t, f.store, "A1"))
	assert.Equal(t, 1, f.stock(t, f.store, "B2"))
	assert.Equal(t, 0, f.saleLines(t))
}

func TestCheckoutUnknownCodeWritesNothing(t *testing.T) {
	f := setup(t)
	_, err := f.pos.Checkout(context.Background(), f.store, cart(
		pos.CartLine{Code: "A1", Qty: 1},
		pos.CartLine{Code: "NOPE", Qty: 1},
	))
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Equal(t, 5, f.stock(t, f.store, "A1"))
	assert.Equal(t, 0, f.saleLines(t))
}

func TestCheckoutStorageFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	// the decrement succeeds, the sale insert then fails
	_, err := f.db.Exec(`DROP TABLE sales`)
	require.NoError(t, err)

	_, err = f.pos.Checkout(ctx, f.store, cart(pos.CartLine{Code: "A1", Qty: 2}))
	assert.ErrorIs(t, err, apperror.ErrCheckoutFailed)
	assert.ErrorIs(t, err, apperror.ErrStorage)
	assert.Equal(t, 5, f.stock(t, f.store, "A1"))
}

func TestCheckoutValidation(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.pos.Checkout(ctx, f.store, cart())
	assert.ErrorIs(t, err, pos.ErrEmptyCart)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = f.pos.Checkout(ctx, uuid.Nil, cart(pos.CartLine{Code: "A1", Qty: 1}))
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.pos.Checkout(ctx, f.store, cart(pos.CartLine{Code: "A1", Qty: 0}))
	assert.ErrorIs(t, err, apperror.ErrValidation)

	req := cart(pos.CartLine{Code: "A1", Qty: 1})
	req.PayCash = decimal.NewFromInt(-5)
	_, err = f.pos.Checkout(ctx, f.store, req)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	assert.Equal(t, 5, f.stock(t, f.store, "A1"))
}

func TestCheckoutIsTenantScoped(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	other := uuid.New()

	_, err := f.pos.Checkout(ctx, other, cart(pos.CartLine{Code: "A1", Qty: 1}))
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Equal(t, 5, f.stock(t, f.store, "A1"))

	receipt, err := f.pos.Checkout(ctx, f.store, cart(pos.CartLine{Code: "A1", Qty: 1}))
	require.NoError(t, err)

	receipts, err := f.pos.ListReceipts(ctx, other, 0)
	require.NoError(t, err)
	assert.Empty(t, receipts)

	_, err = f.pos.GetReceipt(ctx, other, receipt.ReceiptID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	got, err := f.pos.GetReceipt(ctx, f.store, receipt.ReceiptID)
	require.NoError(t, err)
	assert.Len(t, got.Lines, 1)
	assert.True(t, decimal.NewFromInt(5).Equal(got.Total))
}

func TestConcurrentCheckoutsNeverOversell(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	var wg sync.WaitGroup
	results := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.pos.Checkout(ctx, f.store, cart(pos.CartLine{Code: "A1", Qty: 2}))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	}
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 1, f.stock(t, f.store, "A1"))
	assert.Equal(t, 2, f.saleLines(t))
}

func TestListReceiptsGroupsLines(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	first, err := f.pos.Checkout(ctx, f.store, cart(
		pos.CartLine{Code: "A1", Qty: 1},
		pos.CartLine{Code: "B2", Qty: 1},
	))
	require.NoError(t, err)
	second, err := f.pos.Checkout(ctx, f.store, cart(pos.CartLine{Code: "A1", Qty: 2}))
	require.NoError(t, err)
	assert.NotEqual(t, first.ReceiptID, second.ReceiptID)

	receipts, err := f.pos.ListReceipts(ctx, f.store, 0)
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	assert.Equal(t, second.ReceiptID, receipts[0].ReceiptID)
	assert.True(t, decimal.NewFromInt(10).Equal(receipts[0].Total))
	assert.True(t, decimal.NewFromInt(8).Equal(receipts[1].Total))

	limited, err := f.pos.ListReceipts(ctx, f.store, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	lines, err := f.pos.ListLines(ctx, f.store, 0)
	require.NoError(t, err)
	assert.Len(t, lines, 3)
}

func TestReceiptTotalsWithFractionalPrices(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	_, err := f.inv.Receive(ctx, f.store, inventory.ReceiveRequest{
		Code: "G", Name: "Gum", Buy: decimal.RequireFromString("0.1"), Sell: decimal.RequireFromString("0.7"), Qty: 10,
	})
	require.NoError(t, err)

	receipt, err := f.pos.Checkout(ctx, f.store, pos.CheckoutRequest{
		Cart:    []pos.CartLine{{Code: "G", Qty: 3}},
		PayCash: decimal.RequireFromString("2.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2.1", receipt.Total.String())
	assert.Equal(t, "0.4", receipt.Change().String())

	receipts, err := f.pos.ListReceipts(ctx, f.store, 0)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, "2.1", receipts[0].Total.String())
}
