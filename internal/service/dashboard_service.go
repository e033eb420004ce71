package service

import (
	"time"

	"go-grocery-pos/internal/repository"

	"github.com/shopspring/decimal"
)

type DashboardService interface {
	GetStats() (*DashboardStats, error)
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetFinancialSummary(startDate, endDate time.Time) (*FinancialSummary, error)
}

type DashboardStats struct {
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_count"`
	TotalValuation decimal.Decimal `json:"total_valuation"` // YER, at selling prices
}

type FinancialSummary struct {
	Revenue  float64 `json:"revenue"`  // YER
	Spending float64 `json:"spending"` // YER
}

type dashboardService struct {
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
}

func NewDashboardService(txRepo repository.TransactionRepository, pRepo repository.ProductRepository) DashboardService {
	return &dashboardService{txRepo: txRepo, productRepo: pRepo}
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	stats := &DashboardStats{TotalValuation: decimal.Zero}

	var err error
	if stats.TotalProducts, err = s.productRepo.Count(); err != nil {
		return nil, err
	}
	if stats.LowStockCount, err = s.productRepo.CountLowStock(); err != nil {
		return nil, err
	}

	// Valuation summed with decimals so a big catalog does not pick up float
	// rounding noise.
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		value := decimal.NewFromFloat(p.CurrentSellingPrice).Mul(decimal.NewFromInt(int64(p.CurrentQuantity)))
		stats.TotalValuation = stats.TotalValuation.Add(value)
	}

	return stats, nil
}

func (s *dashboardService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.txRepo.GetStockMovement(startDate, endDate)
}

func (s *dashboardService) GetFinancialSummary(startDate, endDate time.Time) (*FinancialSummary, error) {
	revenue, spending, err := s.txRepo.GetFinancialSummary(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return &FinancialSummary{Revenue: revenue, Spending: spending}, nil
}
