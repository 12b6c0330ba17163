package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Doc is the minimal contract a synced document type has to satisfy.
type Doc interface {
	EnsureID() primitive.ObjectID
	SetID(primitive.ObjectID)
}

// Collection adapts a mongo collection to the dashboard's sync model:
// ordered whole-list snapshots, store-assigned ids, full-document
// replacement on update. No field-level patching.
type Collection[T Doc] struct {
	coll       *mongo.Collection
	orderField string
}

func NewCollection[T Doc](coll *mongo.Collection, orderField string) *Collection[T] {
	return &Collection[T]{
		coll:       coll,
		orderField: orderField,
	}
}

func (c *Collection[T]) Name() string { return c.coll.Name() }

// List returns the full collection sorted ascending by the order field.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: c.orderField, Value: 1}})

	cursor, err := c.coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Create inserts the document and returns its store-assigned id.
func (c *Collection[T]) Create(ctx context.Context, doc T) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id := doc.EnsureID()
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return id.Hex(), nil
}

// Update replaces the whole document under the given id.
func (c *Collection[T]) Update(ctx context.Context, id string, doc T) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid %s ID", c.coll.Name())
	}

	doc.SetID(objID)
	result, err := c.coll.ReplaceOne(ctx, bson.M{"_id": objID}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%s not found", c.coll.Name())
	}
	return nil
}

// Delete removes the document permanently.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid %s ID", c.coll.Name())
	}

	result, err := c.coll.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%s not found", c.coll.Name())
	}
	return nil
}
