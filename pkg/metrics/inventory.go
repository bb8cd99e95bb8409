package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// InventoryMetrics expone contadores de movimientos y el estado agregado del último reporte.
// Un *InventoryMetrics nil es válido y no registra nada.
type InventoryMetrics struct {
	movements     *prometheus.CounterVec
	failures      *prometheus.CounterVec
	products      prometheus.Gauge
	criticalStock prometheus.Gauge
	totalValue    prometheus.Gauge
}

// NewInventoryMetrics registra las métricas en el registerer indicado.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	movements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_movements_total",
		Help: "Movimientos de inventario registrados por tipo.",
	}, []string{"type"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_operation_failures_total",
		Help: "Operaciones fallidas por operación.",
	}, []string{"operation"})
	products := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_products",
		Help: "Productos en el último reporte.",
	})
	critical := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_critical_products",
		Help: "Productos con stock <= stock mínimo en el último reporte.",
	})
	value := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_total_value",
		Help: "Valor total del inventario (stock * precio) en el último reporte.",
	})
	reg.MustRegister(movements, failures, products, critical, value)
	return &InventoryMetrics{
		movements:     movements,
		failures:      failures,
		products:      products,
		criticalStock: critical,
		totalValue:    value,
	}
}

// IncMovement cuenta un movimiento registrado.
func (m *InventoryMetrics) IncMovement(movementType string) {
	if m == nil || m.movements == nil {
		return
	}
	m.movements.WithLabelValues(normalizeLabel(movementType)).Inc()
}

// IncFailure cuenta una operación fallida.
func (m *InventoryMetrics) IncFailure(operation string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(operation)).Inc()
}

// ObserveReport actualiza los gauges con el último reporte calculado.
func (m *InventoryMetrics) ObserveReport(products, critical int, totalValue float64) {
	if m == nil || m.products == nil {
		return
	}
	m.products.Set(float64(products))
	m.criticalStock.Set(float64(critical))
	m.totalValue.Set(totalValue)
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
