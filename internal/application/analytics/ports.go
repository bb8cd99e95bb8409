package analytics

import (
	"context"

	"github.com/jhoicas/inventario-tracker/internal/application/dto"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
)

// InventoryPDFGenerator puerto para generar el PDF del reporte de inventario (implementado en infrastructure/pdf).
type InventoryPDFGenerator interface {
	GenerateInventoryReport(ctx context.Context, summary *dto.ReportSummaryDTO, products []*entity.Product) ([]byte, error)
}
