package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
)

func TestProduct_IsCritical_Frontera(t *testing.T) {
	p := &entity.Product{Stock: 10, MinStock: 5}
	assert.False(t, p.IsCritical())

	p.Stock = 5
	assert.True(t, p.IsCritical(), "stock igual al mínimo es crítico")

	p.Stock = -2
	assert.True(t, p.IsCritical())
}

func TestProduct_Value(t *testing.T) {
	p := &entity.Product{Stock: 3, Price: decimal.RequireFromString("2.5")}
	assert.True(t, p.Value().Equal(decimal.RequireFromString("7.5")))
}

func TestMovement_Delta(t *testing.T) {
	in := &entity.Movement{Type: entity.MovementTypeEntry, Quantity: 4}
	out := &entity.Movement{Type: entity.MovementTypeExit, Quantity: 4}

	assert.Equal(t, 4, in.Delta())
	assert.Equal(t, -4, out.Delta())
	assert.True(t, entity.IsValidMovementType("exit"))
	assert.False(t, entity.IsValidMovementType("ADJUSTMENT"))
}
