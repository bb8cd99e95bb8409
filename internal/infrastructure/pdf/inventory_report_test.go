package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-tracker/internal/application/dto"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
)

func TestGenerateInventoryReport(t *testing.T) {
	products := []*entity.Product{
		{ID: "p-1", Name: "Tornillos", Category: "Ferretería", Stock: 3, MinStock: 5, Price: decimal.RequireFromString("2.5")},
		{ID: "p-2", Name: "Tuercas", Stock: 20, MinStock: 5, Price: decimal.NewFromInt(1)},
	}
	summary := &dto.ReportSummaryDTO{
		TotalProducts:    2,
		TotalUnits:       23,
		CriticalCount:    1,
		TotalValue:       decimal.RequireFromString("27.50"),
		CriticalProducts: dto.NewProductList(products[:1]),
		GeneratedAt:      time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
	}

	out, err := NewMarotoReportGenerator().GenerateInventoryReport(context.Background(), summary, products)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInventoryReport_Vacio(t *testing.T) {
	summary := &dto.ReportSummaryDTO{CriticalProducts: []dto.ProductResponse{}, GeneratedAt: time.Now()}

	out, err := NewMarotoReportGenerator().GenerateInventoryReport(context.Background(), summary, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = NewMarotoReportGenerator().GenerateInventoryReport(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestMoneyFormat(t *testing.T) {
	g := NewMarotoReportGenerator()
	assert.Equal(t, "$2,50", g.money(decimal.RequireFromString("2.5")))
	assert.Equal(t, "7", g.integer(7))
}
