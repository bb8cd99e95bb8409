package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/inventario-tracker/internal/domain"
)

// CountersCollection guarda un documento {_id: <colección>, n} por colección secuenciada.
const CountersCollection = "contadores"

type counterDoc struct {
	ID string `bson:"_id"`
	N  int64  `bson:"n"`
}

// nextSeq reserva el siguiente valor de orden de la colección con un $inc atómico.
// El valor es estrictamente creciente para todos los procesos que comparten la base y no
// depende del reloj. Se reserva fuera de la sesión: si la transacción se aborta queda un hueco,
// pero el orden de lo insertado se mantiene.
func nextSeq(ctx context.Context, db *mongo.Database, collection string) (int64, error) {
	var doc counterDoc
	err := db.Collection(CountersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": collection},
		bson.M{"$inc": bson.M{"n": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("secuencia %s: %w: %w", collection, domain.ErrStorage, err)
	}
	return doc.N, nil
}
