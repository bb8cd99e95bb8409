package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-tracker/internal/domain"
)

func TestValidationError_EsErrInvalidInput(t *testing.T) {
	err := domain.NewValidationError("quantity", "debe ser mayor que cero")
	wrapped := fmt.Errorf("registrar movimiento: %w", err)

	assert.True(t, errors.Is(wrapped, domain.ErrInvalidInput))

	var ve *domain.ValidationError
	assert.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, "debe ser mayor que cero", ve.Fields["quantity"])
}

func TestValidationError_MensajeOrdenado(t *testing.T) {
	ve := &domain.ValidationError{}
	assert.True(t, ve.Empty())

	ve.Add("stock", "no puede ser negativo")
	ve.Add("price", "no puede ser negativo")
	assert.False(t, ve.Empty())
	assert.Equal(t, "entrada inválida: price: no puede ser negativo; stock: no puede ser negativo", ve.Error())
}
