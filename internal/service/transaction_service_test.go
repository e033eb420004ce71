package service

import (
	"testing"

	"go-grocery-pos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessSale_DecrementsStockAndSnapshotsPrice(t *testing.T) {
	env := newTestEnv(t)

	p := newProduct("Cooking Oil")
	p.CurrentQuantity = 5
	p.MinimumQuantity = 4
	env.mustCreate(t, p)

	tx, err := env.txs.ProcessSale(&SaleRequest{
		Items: []TransactionLine{{ProductID: p.ID, Quantity: 3}},
	}, "cashier-id", "cashier")
	require.NoError(t, err)

	assert.Equal(t, model.TxSale, tx.Type)
	require.Len(t, tx.Items, 1)
	// 10 SAR * 680 + 500 YER fixed profit = 7300 per unit
	assert.Equal(t, 7300.0, tx.Items[0].UnitPrice)
	assert.Equal(t, 21900.0, tx.Items[0].LineTotal)
	assert.Equal(t, 21900.0, tx.TotalAmount)
	assert.Equal(t, "Cooking Oil", tx.Items[0].ProductName)

	stored, err := env.catalog.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.CurrentQuantity)
	assert.True(t, stored.IsLowStock)

	// Dropping below the minimum opened a shortage entry in the same sale.
	item := env.shortageFor(t, stored)
	require.NotNil(t, item)
	assert.Equal(t, 2, item.CurrentQuantity)
	assert.False(t, item.AddedManually)
}

func TestProcessSale_PersistsOneRowPerLine(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustCreate(t, newProduct("Sugar"))
	b := env.mustCreate(t, newProduct("Tea"))

	tx, err := env.txs.ProcessSale(&SaleRequest{
		Items: []TransactionLine{
			{ProductID: a.ID, Quantity: 2},
			{ProductID: b.ID, Quantity: 1},
		},
	}, "cashier-id", "cashier")
	require.NoError(t, err)
	require.Len(t, tx.Items, 2)

	// Exactly one stored row per line, and the stored total matches them.
	var itemCount int64
	env.db.Model(&model.TransactionItem{}).Where("transaction_id = ?", tx.ID).Count(&itemCount)
	assert.Equal(t, int64(2), itemCount)

	var storedTotal float64
	env.db.Model(&model.Transaction{}).Where("id = ?", tx.ID).
		Select("total_amount").Scan(&storedTotal)
	assert.Equal(t, 3*7300.0, storedTotal)
	assert.Equal(t, storedTotal, tx.TotalAmount)
}

func TestProcessSale_InsufficientStockRollsBackEverything(t *testing.T) {
	env := newTestEnv(t)

	a := newProduct("Sugar")
	env.mustCreate(t, a) // 50 on hand

	b := newProduct("Flour")
	b.CurrentQuantity = 2
	env.mustCreate(t, b)

	_, err := env.txs.ProcessSale(&SaleRequest{
		Items: []TransactionLine{
			{ProductID: a.ID, Quantity: 10},
			{ProductID: b.ID, Quantity: 5},
		},
	}, "cashier-id", "cashier")
	require.ErrorIs(t, err, ErrInsufficientStock)

	// The first line's decrement was rolled back with the rest.
	stored, err := env.catalog.GetProduct(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, stored.CurrentQuantity)

	var txCount, itemCount int64
	env.db.Model(&model.Transaction{}).Count(&txCount)
	env.db.Model(&model.TransactionItem{}).Count(&itemCount)
	assert.Equal(t, int64(0), txCount)
	assert.Equal(t, int64(0), itemCount)
}

func TestProcessSale_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.txs.ProcessSale(&SaleRequest{
		Items: []TransactionLine{{ProductID: uuid.New(), Quantity: 1}},
	}, "cashier-id", "cashier")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProcessSale_ValidationRejectsBadLines(t *testing.T) {
	env := newTestEnv(t)
	p := env.mustCreate(t, newProduct("Sugar"))

	cases := []struct {
		name string
		req  *SaleRequest
	}{
		{"no items", &SaleRequest{}},
		{"zero quantity", &SaleRequest{Items: []TransactionLine{{ProductID: p.ID, Quantity: 0}}}},
		{"nil product id", &SaleRequest{Items: []TransactionLine{{Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.txs.ProcessSale(tc.req, "cashier-id", "cashier")
			assert.Error(t, err)
		})
	}
}

func TestProcessPurchase_IncrementsStockAndSnapshotsCost(t *testing.T) {
	env := newTestEnv(t)

	p := newProduct("Tea")
	p.CurrentQuantity = 3
	env.mustCreate(t, p)

	tx, err := env.txs.ProcessPurchase(&PurchaseRequest{
		Items:    []TransactionLine{{ProductID: p.ID, Quantity: 20}},
		Supplier: "Al-Noor Trading",
	}, "owner-id", "owner")
	require.NoError(t, err)

	assert.Equal(t, model.TxPurchase, tx.Type)
	assert.Equal(t, "Al-Noor Trading", tx.Supplier)
	require.Len(t, tx.Items, 1)
	// Purchase cost: 10 SAR normalized to YER at rate 680.
	assert.Equal(t, 6800.0, tx.Items[0].UnitPrice)
	assert.Equal(t, 136000.0, tx.TotalAmount)

	stored, err := env.catalog.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 23, stored.CurrentQuantity)
	assert.False(t, stored.IsLowStock)
}

func TestProcessPurchase_YERCostNotConverted(t *testing.T) {
	env := newTestEnv(t)

	p := newProduct("Water Bottle")
	p.PurchasePrice = 150
	p.PurchaseCurrency = model.CurrencyYER
	env.mustCreate(t, p)

	tx, err := env.txs.ProcessPurchase(&PurchaseRequest{
		Items: []TransactionLine{{ProductID: p.ID, Quantity: 4}},
	}, "owner-id", "owner")
	require.NoError(t, err)
	assert.Equal(t, 150.0, tx.Items[0].UnitPrice)
	assert.Equal(t, 600.0, tx.TotalAmount)
}

func TestGetAllTransactions_FilterByType(t *testing.T) {
	env := newTestEnv(t)
	p := env.mustCreate(t, newProduct("Sugar"))

	_, err := env.txs.ProcessSale(&SaleRequest{
		Items: []TransactionLine{{ProductID: p.ID, Quantity: 1}},
	}, "u", "u")
	require.NoError(t, err)
	_, err = env.txs.ProcessPurchase(&PurchaseRequest{
		Items: []TransactionLine{{ProductID: p.ID, Quantity: 10}},
	}, "u", "u")
	require.NoError(t, err)

	all, err := env.txs.GetAllTransactions(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	saleType := model.TxSale
	sales, err := env.txs.GetAllTransactions(&saleType)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, model.TxSale, sales[0].Type)
}

func TestGetTransactionByID(t *testing.T) {
	env := newTestEnv(t)
	p := env.mustCreate(t, newProduct("Sugar"))

	created, err := env.txs.ProcessSale(&SaleRequest{
		Items: []TransactionLine{{ProductID: p.ID, Quantity: 2}},
	}, "u", "u")
	require.NoError(t, err)

	fetched, err := env.txs.GetTransactionByID(created.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, created.TotalAmount, fetched.TotalAmount)

	_, err = env.txs.GetTransactionByID(uuid.New())
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}
