package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/inventario-tracker/internal/application/dto"
	"github.com/jhoicas/inventario-tracker/internal/domain"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
	"github.com/jhoicas/inventario-tracker/internal/domain/inventory"
	"github.com/jhoicas/inventario-tracker/internal/domain/repository"
	"github.com/jhoicas/inventario-tracker/pkg/logger"
	"github.com/jhoicas/inventario-tracker/pkg/metrics"
)

// RegisterMovementUseCase registra entradas y salidas. El movimiento y el nuevo stock del
// producto se escriben dentro de un mismo TxRunner.Run.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	metrics  *metrics.InventoryMetrics
	log      *logger.Logger
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. m y log pueden ser nil.
func NewRegisterMovementUseCase(txRunner TxRunner, m *metrics.InventoryMetrics, log *logger.Logger) *RegisterMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		metrics:  m,
		log:      log.Component("movements"),
		now:      time.Now,
	}
}

// MovementInputDTO entrada ya tipada para registrar un movimiento.
type MovementInputDTO struct {
	ProductID string
	Type      string
	Quantity  int
	Date      time.Time
	Notes     string
}

// RegisterMovement valida la entrada, comprueba que el producto exista y dentro de la misma
// unidad de escritura guarda el movimiento y el stock resultante. Un producto inexistente
// devuelve domain.ErrNotFound sin escribir nada.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.Movement, *entity.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, nil, err
	}

	now := uc.now()
	movement := &entity.Movement{
		ProductID: input.ProductID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		Date:      input.Date,
		Notes:     strings.TrimSpace(input.Notes),
		CreatedAt: now,
	}
	var updated *entity.Product

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		inventory.ApplyMovement(product, movement)
		product.UpdatedAt = now

		if err := movRepo.Create(ctx, movement); err != nil {
			return err
		}
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		uc.metrics.IncFailure("register_movement")
		return nil, nil, err
	}

	uc.metrics.IncMovement(movement.Type)
	ev := uc.log.Info()
	if updated.Stock < 0 {
		ev = uc.log.Warn()
	}
	ev.Str("movement_id", movement.ID).
		Str("product_id", updated.ID).
		Str("type", movement.Type).
		Int("quantity", movement.Quantity).
		Int("stock", updated.Stock).
		Msg("movimiento registrado")
	return movement, updated, nil
}

// RegisterMovementFromRequest adapta el request HTTP: valida el body y parsea la fecha.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	date, err := time.Parse(entity.DateLayout, in.Date)
	if err != nil {
		return nil, domain.NewValidationError("date", "debe tener formato "+entity.DateLayout)
	}
	movement, product, err := uc.RegisterMovement(ctx, MovementInputDTO{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Date:      date,
		Notes:     in.Notes,
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewMovementResponse(movement, map[string]string{product.ID: product.Name})
	return &out, nil
}

func validateInput(input MovementInputDTO) error {
	ve := &domain.ValidationError{}
	if strings.TrimSpace(input.ProductID) == "" {
		ve.Add("product_id", "es requerido")
	}
	if !entity.IsValidMovementType(input.Type) {
		ve.Add("type", "debe ser uno de: entry exit")
	}
	if input.Quantity <= 0 {
		ve.Add("quantity", "debe ser mayor que 0")
	}
	if input.Date.IsZero() {
		ve.Add("date", "es requerido")
	}
	if ve.Empty() {
		return nil
	}
	return ve
}
