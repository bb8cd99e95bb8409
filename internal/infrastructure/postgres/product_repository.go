package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-tracker/internal/domain"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
	"github.com/jhoicas/inventario-tracker/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, category, stock, min_stock, price, image_url, image_object, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q         Querier
	forUpdate bool // dentro de TxRunner: GetByID bloquea la fila (SELECT ... FOR UPDATE)
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto; asigna ID si viene vacío.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	query := `
		INSERT INTO productos (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Category, product.Stock, product.MinStock,
		product.Price, product.ImageURL, product.ImageObject, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert product %s: %w", product.ID, domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// GetByID obtiene un producto por ID. domain.ErrNotFound si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE id = $1`
	if r.forUpdate {
		query += ` FOR UPDATE`
	}
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w: %w", domain.ErrStorage, err)
	}
	return p, nil
}

// Update reemplaza todos los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE productos
		SET name = $2, category = $3, stock = $4, min_stock = $5, price = $6,
		    image_url = $7, image_object = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Category, product.Stock, product.MinStock,
		product.Price, product.ImageURL, product.ImageObject, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w: %w", domain.ErrStorage, err)
	}
	if notFoundIfNoRows(tag) {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto. Sus movimientos no se tocan.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w: %w", domain.ErrStorage, err)
	}
	if notFoundIfNoRows(tag) {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve los productos en orden de inserción.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM productos ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w: %w", domain.ErrStorage, err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w: %w", domain.ErrStorage, err)
	}
	return list, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Stock, &p.MinStock, &p.Price,
		&p.ImageURL, &p.ImageObject, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
