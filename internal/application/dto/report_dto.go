package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportSummaryDTO respuesta de GET /api/reports/summary.
type ReportSummaryDTO struct {
	TotalProducts    int               `json:"total_products"`
	TotalMovements   int               `json:"total_movements"`
	TotalUnits       int               `json:"total_units"`
	CriticalCount    int               `json:"critical_count"`
	TotalValue       decimal.Decimal   `json:"total_value"` // redondeado a 2 decimales
	CriticalProducts []ProductResponse `json:"critical_products"`
	Chart            ChartDTO          `json:"chart"`
	GeneratedAt      time.Time         `json:"generated_at"`
}

// ChartDTO serie del gráfico de barras de stock actual: un nombre y un valor por producto.
type ChartDTO struct {
	Label  string   `json:"label"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}
