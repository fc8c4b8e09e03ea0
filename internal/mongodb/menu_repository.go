package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/franciscoedibles/storefront/internal/models"
	"github.com/franciscoedibles/storefront/internal/repository"
)

// MenuRepository implements repository.MenuRepository on MongoDB
type MenuRepository struct {
	collection *mongo.Collection
}

// NewMenuRepository creates a menu repository over the "menu_items" collection
func NewMenuRepository(client *Client) *MenuRepository {
	return &MenuRepository{
		collection: client.db.Collection("menu_items"),
	}
}

// GetAll returns every menu item, skipping documents that fail validation
func (r *MenuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.MenuItem
	for cursor.Next(ctx) {
		var doc menuItemDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode menu item: %w", err)
		}
		item, err := doc.toModel()
		if err != nil {
			// a single malformed document must not take the menu down
			continue
		}
		items = append(items, *item)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read menu items: %w", err)
	}
	return items, nil
}

// GetByID returns a menu item by its id
func (r *MenuRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	var doc menuItemDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to find menu item: %w", err)
	}
	return doc.toModel()
}

// Create inserts a new menu item
func (r *MenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	if _, err := r.collection.InsertOne(ctx, toMenuItemDocument(item)); err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	return nil
}

// Update replaces an existing menu item
func (r *MenuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": item.ID}, toMenuItemDocument(item))
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrMenuItemNotFound
	}
	return nil
}

// Delete removes a menu item
func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrMenuItemNotFound
	}
	return nil
}
