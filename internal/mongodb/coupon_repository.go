package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/franciscoedibles/storefront/internal/models"
	"github.com/franciscoedibles/storefront/internal/repository"
)

// CouponRepository implements repository.CouponRepository on MongoDB
type CouponRepository struct {
	collection *mongo.Collection
}

// NewCouponRepository creates a coupon repository over the "coupons"
// collection with a unique index on the code.
func NewCouponRepository(client *Client) (*CouponRepository, error) {
	collection := client.db.Collection("coupons")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create coupon index: %w", err)
	}

	return &CouponRepository{collection: collection}, nil
}

// GetAll returns every coupon
func (r *CouponRepository) GetAll(ctx context.Context) ([]models.Coupon, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []models.Coupon
	for cursor.Next(ctx) {
		var doc couponDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode coupon: %w", err)
		}
		coupon, err := doc.toModel()
		if err != nil {
			continue
		}
		coupons = append(coupons, *coupon)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read coupons: %w", err)
	}
	return coupons, nil
}

// FindActiveByCode is the query-by-field lookup behind coupon application:
// exact code match among active coupons only, consistent-read so a
// just-deactivated coupon misses on the next lookup.
func (r *CouponRepository) FindActiveByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var doc couponDocument
	err := r.collection.FindOne(ctx, bson.M{"code": code, "is_active": true}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to find coupon: %w", err)
	}
	return doc.toModel()
}

// Create inserts a new coupon
func (r *CouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	if _, err := r.collection.InsertOne(ctx, toCouponDocument(coupon)); err != nil {
		return fmt.Errorf("failed to insert coupon: %w", err)
	}
	return nil
}

// Update replaces an existing coupon
func (r *CouponRepository) Update(ctx context.Context, coupon *models.Coupon) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": coupon.ID}, toCouponDocument(coupon))
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrCouponNotFound
	}
	return nil
}

// Delete removes a coupon
func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrCouponNotFound
	}
	return nil
}
