package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/franciscoedibles/storefront/internal/models"
	"github.com/franciscoedibles/storefront/internal/repository"
)

// OrderRepository implements repository.OrderRepository on MongoDB
type OrderRepository struct {
	collection *mongo.Collection
}

// NewOrderRepository creates an order repository over the "orders" collection
func NewOrderRepository(client *Client) *OrderRepository {
	return &OrderRepository{
		collection: client.db.Collection("orders"),
	}
}

// Create inserts the order snapshot. The _id is the order id, so a
// duplicate write surfaces as ErrOrderAlreadyExists.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if _, err := r.collection.InsertOne(ctx, toOrderDocument(order)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrOrderAlreadyExists
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// GetByID returns an order by id
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var doc orderDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return doc.toModel()
}

// GetAll returns all orders, newest first
func (r *OrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	for cursor.Next(ctx) {
		var doc orderDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		order, err := doc.toModel()
		if err != nil {
			continue
		}
		orders = append(orders, *order)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets the status field only; every other order field is
// write-once at creation.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrOrderNotFound
	}
	return nil
}
