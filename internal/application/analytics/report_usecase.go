// Package analytics contiene los casos de uso de reportes: resumen de stock crítico,
// valor del inventario, serie del gráfico y PDF descargable.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-tracker/internal/application/dto"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
	"github.com/jhoicas/inventario-tracker/internal/domain/inventory"
	"github.com/jhoicas/inventario-tracker/internal/domain/repository"
	"github.com/jhoicas/inventario-tracker/pkg/metrics"
)

// ChartLabel leyenda de la serie del gráfico de barras.
const ChartLabel = "Stock Actual"

// ReportUseCase arma el resumen a partir de la lista completa de productos y movimientos.
type ReportUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	generator    InventoryPDFGenerator // nil = PDF no disponible
	metrics      *metrics.InventoryMetrics
	now          func() time.Time
}

// NewReportUseCase construye el caso de uso. generator y m pueden ser nil.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	generator InventoryPDFGenerator,
	m *metrics.InventoryMetrics,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		generator:    generator,
		metrics:      m,
		now:          time.Now,
	}
}

// Summary construye el ReportSummaryDTO. Productos y movimientos se leen en paralelo.
func (uc *ReportUseCase) Summary(ctx context.Context) (*dto.ReportSummaryDTO, error) {
	summary, _, err := uc.load(ctx)
	return summary, err
}

// InventoryPDF genera el PDF del reporte. Devuelve los bytes y el nombre de archivo sugerido.
func (uc *ReportUseCase) InventoryPDF(ctx context.Context) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("reporte pdf: generador no configurado")
	}
	summary, products, err := uc.load(ctx)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateInventoryReport(ctx, summary, products)
	if err != nil {
		uc.metrics.IncFailure("report_pdf")
		return nil, "", fmt.Errorf("reporte pdf: generación fallida: %w", err)
	}
	filename := fmt.Sprintf("inventario_%s.pdf", summary.GeneratedAt.Format("20060102"))
	return pdfBytes, filename, nil
}

func (uc *ReportUseCase) load(ctx context.Context) (*dto.ReportSummaryDTO, []*entity.Product, error) {
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type movementsResult struct {
		list []*entity.Movement
		err  error
	}

	productsCh := make(chan productsResult, 1)
	movementsCh := make(chan movementsResult, 1)

	go func() {
		list, err := uc.productRepo.List(ctx)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.movementRepo.List(ctx)
		movementsCh <- movementsResult{list, err}
	}()

	products := <-productsCh
	movements := <-movementsCh

	if products.err != nil {
		uc.metrics.IncFailure("report")
		return nil, nil, fmt.Errorf("reporte: productos: %w", products.err)
	}
	if movements.err != nil {
		uc.metrics.IncFailure("report")
		return nil, nil, fmt.Errorf("reporte: movimientos: %w", movements.err)
	}

	labels, values := inventory.ChartSeries(products.list)
	critical := inventory.CriticalProducts(products.list)
	totalValue := inventory.TotalValue(products.list).Round(2)

	summary := &dto.ReportSummaryDTO{
		TotalProducts:    len(products.list),
		TotalMovements:   len(movements.list),
		TotalUnits:       inventory.TotalUnits(products.list),
		CriticalCount:    len(critical),
		TotalValue:       totalValue,
		CriticalProducts: dto.NewProductList(critical),
		Chart:            dto.ChartDTO{Label: ChartLabel, Labels: labels, Values: values},
		GeneratedAt:      uc.now(),
	}
	uc.metrics.ObserveReport(summary.TotalProducts, summary.CriticalCount, totalValue.InexactFloat64())
	return summary, products.list, nil
}
