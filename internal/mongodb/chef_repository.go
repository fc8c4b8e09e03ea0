package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/franciscoedibles/storefront/internal/models"
	"github.com/franciscoedibles/storefront/internal/repository"
)

// ChefRepository implements repository.ChefRepository on MongoDB
type ChefRepository struct {
	collection *mongo.Collection
}

// NewChefRepository creates a chef repository over the "chefs" collection
func NewChefRepository(client *Client) *ChefRepository {
	return &ChefRepository{
		collection: client.db.Collection("chefs"),
	}
}

// GetAll returns the full roster
func (r *ChefRepository) GetAll(ctx context.Context) ([]models.Chef, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list chefs: %w", err)
	}
	defer cursor.Close(ctx)

	var chefs []models.Chef
	for cursor.Next(ctx) {
		var doc chefDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode chef: %w", err)
		}
		chefs = append(chefs, *doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chefs: %w", err)
	}
	return chefs, nil
}

// GetByID returns a chef by id
func (r *ChefRepository) GetByID(ctx context.Context, id string) (*models.Chef, error) {
	var doc chefDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrChefNotFound
		}
		return nil, fmt.Errorf("failed to find chef: %w", err)
	}
	return doc.toModel(), nil
}

// Create inserts a new chef profile
func (r *ChefRepository) Create(ctx context.Context, chef *models.Chef) error {
	if _, err := r.collection.InsertOne(ctx, toChefDocument(chef)); err != nil {
		return fmt.Errorf("failed to insert chef: %w", err)
	}
	return nil
}

// Update replaces an existing chef profile
func (r *ChefRepository) Update(ctx context.Context, chef *models.Chef) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": chef.ID}, toChefDocument(chef))
	if err != nil {
		return fmt.Errorf("failed to update chef: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrChefNotFound
	}
	return nil
}

// Delete removes a chef profile
func (r *ChefRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete chef: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrChefNotFound
	}
	return nil
}
