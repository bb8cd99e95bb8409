package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/inventario-tracker/internal/domain"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
	"github.com/jhoicas/inventario-tracker/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre la colección productos.
type ProductRepo struct {
	collection *mongo.Collection
	session    mongo.Session // no nil dentro de una transacción
}

// NewProductRepository construye el repositorio.
func NewProductRepository(db *mongo.Database) *ProductRepo {
	return &ProductRepo{collection: db.Collection(ProductsCollection)}
}

// Create inserta el producto; asigna un ObjectID hex si viene sin ID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = primitive.NewObjectID().Hex()
	}
	seq, err := nextSeq(ctx, r.collection.Database(), ProductsCollection)
	if err != nil {
		return err
	}
	doc, err := newProductDoc(product, seq)
	if err != nil {
		return err
	}
	if _, err := r.collection.InsertOne(bind(ctx, r.session), doc); err != nil {
		return fmt.Errorf("insert product: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// GetByID obtiene un producto por ID. domain.ErrNotFound si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var doc productDoc
	err := r.collection.FindOne(bind(ctx, r.session), bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w: %w", domain.ErrStorage, err)
	}
	return doc.toEntity()
}

// Update reemplaza los campos del producto conservando su orden.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	doc, err := newProductDoc(product, 0)
	if err != nil {
		return err
	}
	update := bson.M{
		"$set": bson.M{
			"name":         doc.Name,
			"category":     doc.Category,
			"stock":        doc.Stock,
			"min_stock":    doc.MinStock,
			"price":        doc.Price,
			"image_url":    doc.ImageURL,
			"image_object": doc.ImageObject,
			"updated_at":   doc.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(bind(ctx, r.session), bson.M{"_id": product.ID}, update)
	if err != nil {
		return fmt.Errorf("update product: %w: %w", domain.ErrStorage, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto. Sus movimientos no se tocan.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(bind(ctx, r.session), bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w: %w", domain.ErrStorage, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve los productos en orden de inserción.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	ctx = bind(ctx, r.session)
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list products: %w: %w", domain.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	list := make([]*entity.Product, 0)
	for cursor.Next(ctx) {
		var doc productDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode product: %w: %w", domain.ErrStorage, err)
		}
		p, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w: %w", domain.ErrStorage, err)
	}
	return list, nil
}
