package mongodb

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
)

// productDoc documento de la colección productos. Seq conserva el orden de inserción.
type productDoc struct {
	ID          string               `bson:"_id"`
	Seq         int64                `bson:"seq"`
	Name        string               `bson:"name"`
	Category    string               `bson:"category"`
	Stock       int                  `bson:"stock"`
	MinStock    int                  `bson:"min_stock"`
	Price       primitive.Decimal128 `bson:"price"`
	ImageURL    string               `bson:"image_url,omitempty"`
	ImageObject string               `bson:"image_object,omitempty"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

type movementDoc struct {
	ID        string    `bson:"_id"`
	Seq       int64     `bson:"seq"`
	ProductID string    `bson:"product_id"`
	Type      string    `bson:"type"`
	Quantity  int       `bson:"quantity"`
	Date      string    `bson:"date"` // YYYY-MM-DD
	Notes     string    `bson:"notes,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

func newProductDoc(p *entity.Product, seq int64) (*productDoc, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return nil, fmt.Errorf("precio %s: %w", p.Price, err)
	}
	return &productDoc{
		ID:          p.ID,
		Seq:         seq,
		Name:        p.Name,
		Category:    p.Category,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Price:       price,
		ImageURL:    p.ImageURL,
		ImageObject: p.ImageObject,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func (d *productDoc) toEntity() (*entity.Product, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return nil, fmt.Errorf("producto %s: precio %q: %w", d.ID, d.Price.String(), err)
	}
	return &entity.Product{
		ID:          d.ID,
		Name:        d.Name,
		Category:    d.Category,
		Stock:       d.Stock,
		MinStock:    d.MinStock,
		Price:       price,
		ImageURL:    d.ImageURL,
		ImageObject: d.ImageObject,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

func newMovementDoc(m *entity.Movement, seq int64) *movementDoc {
	return &movementDoc{
		ID:        m.ID,
		Seq:       seq,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Date:      m.Date.Format(entity.DateLayout),
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

func (d *movementDoc) toEntity() (*entity.Movement, error) {
	date, err := time.Parse(entity.DateLayout, d.Date)
	if err != nil {
		return nil, fmt.Errorf("movimiento %s: fecha %q: %w", d.ID, d.Date, err)
	}
	return &entity.Movement{
		ID:        d.ID,
		ProductID: d.ProductID,
		Type:      d.Type,
		Quantity:  d.Quantity,
		Date:      date,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
	}, nil
}
