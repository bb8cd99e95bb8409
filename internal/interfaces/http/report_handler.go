package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-tracker/internal/application/analytics"
	"github.com/jhoicas/inventario-tracker/pkg/logger"
)

// ReportHandler expone el resumen del inventario y su PDF.
type ReportHandler struct {
	uc  *analytics.ReportUseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Summary godoc
// @Summary      Resumen del inventario
// @Description  Stock crítico (stock <= mínimo), valor total, lista de críticos y serie del gráfico "Stock Actual".
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.ReportSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// InventoryPDF godoc
// @Summary      Reporte de inventario en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.InventoryPDF(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
