package service

import (
	"testing"

	"go-grocery-pos/internal/model"
	"go-grocery-pos/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full service stack against an in-memory database so the
// invariants can be checked across service boundaries (a sale must show up in
// the shortage tracker, a rate change in the price log, and so on).
type testEnv struct {
	db        *gorm.DB
	catalog   CatalogService
	rates     RateService
	shortages ShortageService
	txs       TransactionService
	units     UnitService
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Unit{},
		&model.Product{},
		&model.ExchangeRate{},
		&model.PriceUpdateLog{},
		&model.ShortageItem{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.User{},
		&model.Privilege{},
		&model.Role{},
	))

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)

	productRepo := repository.NewProductRepo(db)
	unitRepo := repository.NewUnitRepo(db)
	rateRepo := repository.NewRateRepo(db)
	shortageRepo := repository.NewShortageRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	env := &testEnv{
		db:        db,
		catalog:   NewCatalogService(productRepo, unitRepo, rateRepo, shortageRepo, db, nil),
		rates:     NewRateService(rateRepo, productRepo, db, nil),
		shortages: NewShortageService(shortageRepo, productRepo, rateRepo, db, nil),
		txs:       NewTransactionService(txRepo, productRepo, rateRepo, db, nil),
		units:     NewUnitService(unitRepo, productRepo),
	}

	for _, name := range []string{"piece", "can", "carton"} {
		require.NoError(t, db.Create(&model.Unit{Name: name}).Error)
	}
	env.seedRate(t, 680)

	return env
}

func (e *testEnv) seedRate(t *testing.T, rate float64) *model.ExchangeRate {
	t.Helper()
	entry := &model.ExchangeRate{Rate: rate}
	require.NoError(t, e.db.Create(entry).Error)
	return entry
}

// newProduct returns a valid create request; tests tweak what they need.
func newProduct(name string) *model.Product {
	return &model.Product{
		Name:             name,
		Unit:             "piece",
		CurrentQuantity:  50,
		MinimumQuantity:  10,
		PurchasePrice:    10,
		PurchaseCurrency: model.CurrencySAR,
		ProfitType:       model.ProfitFixed,
		ProfitValue:      500,
		ProfitCurrency:   model.CurrencyYER,
	}
}

func (e *testEnv) mustCreate(t *testing.T, p *model.Product) *model.Product {
	t.Helper()
	require.NoError(t, e.catalog.CreateProduct(p, "tester"))
	return p
}

func (e *testEnv) shortageFor(t *testing.T, p *model.Product) *model.ShortageItem {
	t.Helper()
	var item model.ShortageItem
	err := e.db.First(&item, "product_id = ?", p.ID).Error
	if err != nil {
		return nil
	}
	return &item
}
