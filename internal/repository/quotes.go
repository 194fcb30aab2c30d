// Package repository provides data access for quotes and their revisions.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ovenline/bakeops/internal/domain/model"
)

// QuoteRepository provides quote persistence.
type QuoteRepository struct {
	collection *mongo.Collection
}

// NewQuoteRepository creates a new quote repository.
func NewQuoteRepository(db *MongoDB) *QuoteRepository {
	return &QuoteRepository{collection: db.Quotes}
}

// Quote returns the quote by id, or (nil, nil) when absent.
func (r *QuoteRepository) Quote(ctx context.Context, id primitive.ObjectID) (*model.Quote, error) {
	return findOne[model.Quote](ctx, r.collection, bson.M{"_id": id})
}

// QuotesInChain returns every quote in the revision chain rooted at rootID,
// including the root itself, ordered by version ascending.
func (r *QuoteRepository) QuotesInChain(ctx context.Context, rootID primitive.ObjectID) ([]model.Quote, error) {
	filter := bson.M{"$or": []bson.M{
		{"_id": rootID},
		{"original_quote_id": rootID},
	}}
	opts := options.Find().SetSort(bson.M{"version": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var quotes []model.Quote
	if err := cursor.All(ctx, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// InsertRevision inserts the cloned quote. Children are embedded in the quote
// document, so the clone commits atomically or not at all.
func (r *QuoteRepository) InsertRevision(ctx context.Context, q *model.Quote) error {
	_, err := r.collection.InsertOne(ctx, q)
	return err
}
