package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inventorymis/internal/model"
	"inventorymis/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportService is the read side: everything here is recomputed from the
// current snapshot on each request, nothing is cached.
type ReportService interface {
	Dashboard(ctx context.Context, search string) (*model.DashboardResponse, error)
	ListInventory(ctx context.Context, search string, page, limit int) ([]model.Inventory, int64, error)
	TradeStats(ctx context.Context, startDate, endDate time.Time) (*model.TradeStatsResponse, error)
}

type reportService struct {
	db            *gorm.DB
	inventoryRepo repository.InventoryRepository
	purchaseRepo  repository.PurchaseRepository
	saleRepo      repository.SaleRepository
}

func NewReportService(
	db *gorm.DB,
	inventoryRepo repository.InventoryRepository,
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
) ReportService {
	return &reportService{
		db:            db,
		inventoryRepo: inventoryRepo,
		purchaseRepo:  purchaseRepo,
		saleRepo:      saleRepo,
	}
}

// recentLimit caps the recent-activity lists on the dashboard.
const recentLimit = 5

// SummarizeInventory computes the dashboard figures from an inventory
// snapshot. Pure function, threshold fixed at model.LowStockThreshold.
func SummarizeInventory(items []model.Inventory) model.InventorySummary {
	summary := model.InventorySummary{
		TotalProducts:     len(items),
		LowStockThreshold: model.LowStockThreshold,
	}
	for _, item := range items {
		summary.TotalQuantity += item.TotalBalanceQuantity
		if item.TotalBalanceQuantity <= model.LowStockThreshold {
			summary.LowStockCount++
		}
	}
	return summary
}

func (s *reportService) Dashboard(ctx context.Context, search string) (*model.DashboardResponse, error) {
	items, err := s.inventoryRepo.ListAll(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	recentPurchases, err := s.purchaseRepo.Recent(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent purchases: %w", err)
	}

	recentSales, err := s.saleRepo.Recent(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent sales: %w", err)
	}

	return &model.DashboardResponse{
		InventoryItems:  items,
		RecentPurchases: recentPurchases,
		RecentSales:     recentSales,
		Summary:         SummarizeInventory(items),
	}, nil
}

func (s *reportService) ListInventory(ctx context.Context, search string, page, limit int) ([]model.Inventory, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.inventoryRepo.List(ctx, search, page, limit)
}

// TradeStats aggregates purchase and sale totals for a time range. Money
// totals are accumulated as decimals so report figures add up exactly.
func (s *reportService) TradeStats(ctx context.Context, startDate, endDate time.Time) (*model.TradeStatsResponse, error) {
	response := model.TradeStatsResponse{
		TimeRangeStartDate: startDate,
		TimeRangeEndDate:   endDate,
	}

	var purchases []model.Purchase
	if err := s.db.WithContext(ctx).
		Where("purchase_date >= ? AND purchase_date <= ?", startDate, endDate).
		Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to load purchases: %w", err)
	}

	var sales []model.Sale
	if err := s.db.WithContext(ctx).
		Where("sale_date >= ? AND sale_date <= ?", startDate, endDate).
		Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	purchaseValue := decimal.Zero
	for _, p := range purchases {
		purchaseValue = purchaseValue.Add(decimal.NewFromFloat(p.TotalAmount))
	}
	saleValue := decimal.Zero
	for _, sl := range sales {
		saleValue = saleValue.Add(decimal.NewFromFloat(sl.TotalAmount))
	}

	response.TotalPurchaseValue = purchaseValue
	response.TotalSaleValue = saleValue
	response.Margin = saleValue.Sub(purchaseValue)
	response.TotalPurchases = len(purchases)
	response.TotalSales = len(sales)

	topPurchased, err := s.rankProducts(ctx, "purchases", "purchase_date", startDate, endDate)
	if err != nil {
		return nil, err
	}
	response.TopPurchasedItems = topPurchased

	topSold, err := s.rankProducts(ctx, "sales", "sale_date", startDate, endDate)
	if err != nil {
		return nil, err
	}
	response.TopSoldItems = topSold

	return &response, nil
}

// rankProducts returns the top products of a ledger table by accumulated quantity.
func (s *reportService) rankProducts(ctx context.Context, table, dateColumn string, startDate, endDate time.Time) ([]model.ProductRanking, error) {
	var rankings []model.ProductRanking
	err := s.db.WithContext(ctx).Table(table).
		Select("products.id as product_id, products.title as product_title, "+
			"SUM("+table+".quantity) as total_quantity, SUM("+table+".total_amount) as total_value").
		Joins("JOIN products ON products.id = "+table+".product_id").
		Where(table+"."+dateColumn+" >= ? AND "+table+"."+dateColumn+" <= ?", startDate, endDate).
		Group("products.id, products.title").
		Order("total_quantity DESC").
		Limit(5).
		Scan(&rankings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank %s: %w", strings.TrimSuffix(table, "s"), err)
	}
	return rankings, nil
}
