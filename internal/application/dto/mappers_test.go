package dto_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-tracker/internal/application/dto"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
)

func TestNewMovementResponse_ProductoEliminado(t *testing.T) {
	products := []*entity.Product{{ID: "p-1", Name: "Tornillos"}}
	names := dto.ProductNames(products)
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	known := dto.NewMovementResponse(&entity.Movement{ID: "m-1", ProductID: "p-1", Type: "entry", Quantity: 2, Date: date}, names)
	orphan := dto.NewMovementResponse(&entity.Movement{ID: "m-2", ProductID: "borrado", Type: "exit", Quantity: 1, Date: date}, names)

	assert.Equal(t, "Tornillos", known.ProductName)
	assert.Equal(t, "2025-03-14", known.Date)
	assert.Equal(t, dto.UnknownProductName, orphan.ProductName)
}

func TestNewProductResponse_Derivados(t *testing.T) {
	out := dto.NewProductResponse(&entity.Product{ID: "p-1", Stock: 5, MinStock: 5, Price: decimal.RequireFromString("1.5")})

	assert.True(t, out.Critical)
	assert.True(t, out.Value.Equal(decimal.RequireFromString("7.5")))
	assert.Nil(t, dto.NewProductResponse(nil))
}
