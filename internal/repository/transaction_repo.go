package repository

import (
	"time"

	"go-grocery-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	FindAll(txType *model.TransactionType) ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetFinancialSummary(startDate, endDate time.Time) (float64, float64, error)
}

// StockMovementData aggregates quantities moved per day for chart data.
type StockMovementData struct {
	Date      string `json:"date"`
	Sold      int    `json:"sold"`
	Purchased int    `json:"purchased"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) FindAll(txType *model.TransactionType) ([]model.Transaction, error) {
	query := r.db.Preload("Items").Preload("CreatedByUser").Order("created_at DESC")
	if txType != nil {
		query = query.Where("type = ?", *txType)
	}
	var transactions []model.Transaction
	err := query.Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Items").Preload("CreatedByUser").First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *transactionRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	rows, err := r.db.Model(&model.TransactionItem{}).
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Select(`
			DATE(transactions.created_at) as date,
			COALESCE(SUM(CASE WHEN transactions.type = 'SALE' THEN transaction_items.quantity ELSE 0 END), 0) as sold,
			COALESCE(SUM(CASE WHEN transactions.type = 'PURCHASE' THEN transaction_items.quantity ELSE 0 END), 0) as purchased
		`).
		Where("transactions.created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(transactions.created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Sold, &data.Purchased); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

// GetFinancialSummary returns sale revenue and purchase spending (both YER)
// over a period.
func (r *transactionRepo) GetFinancialSummary(startDate, endDate time.Time) (float64, float64, error) {
	var revenue float64
	var spending float64

	err := r.db.Model(&model.Transaction{}).
		Where("type = ? AND created_at BETWEEN ? AND ?", model.TxSale, startDate, endDate).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, 0, err
	}

	err = r.db.Model(&model.Transaction{}).
		Where("type = ? AND created_at BETWEEN ? AND ?", model.TxPurchase, startDate, endDate).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&spending).Error
	if err != nil {
		return 0, 0, err
	}

	return revenue, spending, nil
}
