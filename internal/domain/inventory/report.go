package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
)

// CriticalCount cuenta los productos con stock <= stock mínimo.
func CriticalCount(products []*entity.Product) int {
	n := 0
	for _, p := range products {
		if p.IsCritical() {
			n++
		}
	}
	return n
}

// CriticalProducts filtra los productos críticos conservando el orden.
func CriticalProducts(products []*entity.Product) []*entity.Product {
	out := make([]*entity.Product, 0)
	for _, p := range products {
		if p.IsCritical() {
			out = append(out, p)
		}
	}
	return out
}

// TotalValue suma stock * precio de todos los productos.
func TotalValue(products []*entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Value())
	}
	return total
}

// TotalUnits suma el stock de todos los productos.
func TotalUnits(products []*entity.Product) int {
	n := 0
	for _, p := range products {
		n += p.Stock
	}
	return n
}

// ChartSeries devuelve etiquetas (nombres) y valores (stock) para el gráfico de barras, en orden de lista.
func ChartSeries(products []*entity.Product) (labels []string, values []int) {
	labels = make([]string, 0, len(products))
	values = make([]int, 0, len(products))
	for _, p := range products {
		labels = append(labels, p.Name)
		values = append(values, p.Stock)
	}
	return labels, values
}
