package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/inventario-tracker/internal/domain"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
	"github.com/jhoicas/inventario-tracker/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre la colección movimientos.
type MovementRepo struct {
	collection *mongo.Collection
	session    mongo.Session
}

// NewMovementRepository construye el repositorio.
func NewMovementRepository(db *mongo.Database) *MovementRepo {
	return &MovementRepo{collection: db.Collection(MovementsCollection)}
}

// Create inserta el movimiento; asigna un ObjectID hex si viene sin ID.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = primitive.NewObjectID().Hex()
	}
	seq, err := nextSeq(ctx, r.collection.Database(), MovementsCollection)
	if err != nil {
		return err
	}
	if _, err := r.collection.InsertOne(bind(ctx, r.session), newMovementDoc(m, seq)); err != nil {
		return fmt.Errorf("insert movement: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// List devuelve todos los movimientos en orden de secuencia (orden de inserción entre procesos).
func (r *MovementRepo) List(ctx context.Context) ([]*entity.Movement, error) {
	return r.find(ctx, bson.M{})
}

// ListByProduct devuelve los movimientos de un producto.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	return r.find(ctx, bson.M{"product_id": productID})
}

func (r *MovementRepo) find(ctx context.Context, filter bson.M) ([]*entity.Movement, error) {
	ctx = bind(ctx, r.session)
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list movements: %w: %w", domain.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	list := make([]*entity.Movement, 0)
	for cursor.Next(ctx) {
		var doc movementDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode movement: %w: %w", domain.ErrStorage, err)
		}
		m, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list movements: %w: %w", domain.ErrStorage, err)
	}
	return list, nil
}
