// internal/domain/models/sales.go
package models

import "github.com/shopspring/decimal"

// SalesCategory carries the running sales total for one product category.
type SalesCategory struct {
	Category        string          `json:"category"`
	CumulativeSales decimal.Decimal `json:"cumulative_sales"`
}

// ChartPoint is one bar of a static chart series (e.g. weekly completion).
type ChartPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}
