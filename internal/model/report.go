package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventorySummary aggregates a snapshot of inventory rows for the dashboard
type InventorySummary struct {
	TotalProducts     int     `json:"total_products"`
	TotalQuantity     float64 `json:"total_quantity"`
	LowStockThreshold int     `json:"low_stock_threshold"`
	LowStockCount     int     `json:"low_stock_count"`
}

// DashboardResponse is the landing-page payload: inventory snapshot, summary
// figures and the most recent ledger activity
type DashboardResponse struct {
	InventoryItems  []Inventory      `json:"inventory_items"`
	RecentPurchases []Purchase       `json:"recent_purchases"`
	RecentSales     []Sale           `json:"recent_sales"`
	Summary         InventorySummary `json:"summary"`
}

// TradeStatsResponse aggregates ledger totals and ranking data for a time range
type TradeStatsResponse struct {
	TotalPurchaseValue decimal.Decimal  `json:"total_purchase_value"`
	TotalSaleValue     decimal.Decimal  `json:"total_sale_value"`
	Margin             decimal.Decimal  `json:"margin"` // sale value - purchase value
	TotalPurchases     int              `json:"total_purchases"`
	TotalSales         int              `json:"total_sales"`
	TopPurchasedItems  []ProductRanking `json:"top_purchased_items"`
	TopSoldItems       []ProductRanking `json:"top_sold_items"`
	TimeRangeStartDate time.Time        `json:"time_range_start_date"`
	TimeRangeEndDate   time.Time        `json:"time_range_end_date"`
}

// ProductRanking represents a ranked product based on accumulated quantities
type ProductRanking struct {
	ProductID     string  `json:"product_id"`
	ProductTitle  string  `json:"product_title"`
	TotalQuantity float64 `json:"total_quantity"`
	TotalValue    float64 `json:"total_value"`
}
