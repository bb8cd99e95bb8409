package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-tracker/internal/domain"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
	"github.com/jhoicas/inventario-tracker/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, type, quantity, date, notes, created_at`

// MovementRepo implementación de MovementRepository (usa Querier para poder correr dentro de una tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el repositorio.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento; asigna ID si viene vacío.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `INSERT INTO movimientos (` + movementColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, m.ID, m.ProductID, m.Type, m.Quantity, m.Date, m.Notes, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movement: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// List devuelve todos los movimientos en orden de inserción.
func (r *MovementRepo) List(ctx context.Context) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, `SELECT `+movementColumns+` FROM movimientos ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w: %w", domain.ErrStorage, err)
	}
	return collectMovements(rows)
}

// ListByProduct devuelve los movimientos de un producto en orden de inserción.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+movementColumns+` FROM movimientos WHERE product_id = $1 ORDER BY seq`, productID)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w: %w", domain.ErrStorage, err)
	}
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Date, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w: %w", domain.ErrStorage, err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list movements: %w: %w", domain.ErrStorage, err)
	}
	return list, nil
}
