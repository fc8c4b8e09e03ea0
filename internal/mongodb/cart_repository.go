package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/franciscoedibles/storefront/internal/cart"
)

// CartRepository implements cart.Persister on MongoDB, keyed by session id
type CartRepository struct {
	collection *mongo.Collection
}

// NewCartRepository creates a cart persister over the "carts" collection
func NewCartRepository(client *Client) *CartRepository {
	return &CartRepository{
		collection: client.db.Collection("carts"),
	}
}

// Save upserts the full cart state for the session
func (r *CartRepository) Save(ctx context.Context, sessionID string, state cart.State) error {
	doc := toCartDocument(sessionID, state)
	opts := options.Replace().SetUpsert(true)

	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": sessionID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Load returns the saved cart state; a session with no saved cart loads as
// an empty state, never an error.
func (r *CartRepository) Load(ctx context.Context, sessionID string) (cart.State, error) {
	var doc cartDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return cart.State{}, nil
		}
		return cart.State{}, fmt.Errorf("failed to load cart: %w", err)
	}
	return doc.toState(), nil
}

// Delete removes the saved cart state for the session
func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": sessionID}); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
