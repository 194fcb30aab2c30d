//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
)

func TestQuoteRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewQuoteRepository(db)

	now := time.Now().Truncate(time.Millisecond)
	root := &model.Quote{
		ID:           primitive.NewObjectID(),
		Number:       "Q-200-v1",
		CustomerName: "Dana",
		Version:      1,
		Status:       model.QuoteSuperseded,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	second := &model.Quote{
		ID:              primitive.NewObjectID(),
		Number:          "Q-200-v2",
		CustomerName:    "Dana",
		OriginalQuoteID: &root.ID,
		Version:         2,
		Status:          model.QuoteDraft,
		CreatedAt:       now.Add(time.Minute),
		UpdatedAt:       now.Add(time.Minute),
	}
	require.NoError(t, repo.InsertRevision(ctx, root))
	require.NoError(t, repo.InsertRevision(ctx, second))

	t.Run("quote by id", func(t *testing.T) {
		got, err := repo.Quote(ctx, second.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Q-200-v2", got.Number)
		require.NotNil(t, got.OriginalQuoteID)
		assert.Equal(t, root.ID, *got.OriginalQuoteID)
	})

	t.Run("missing quote returns nil without error", func(t *testing.T) {
		got, err := repo.Quote(ctx, primitive.NewObjectID())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("chain includes root and orders by version", func(t *testing.T) {
		chain, err := repo.QuotesInChain(ctx, root.ID)
		require.NoError(t, err)
		require.Len(t, chain, 2)
		assert.Equal(t, 1, chain[0].Version)
		assert.Equal(t, 2, chain[1].Version)
	})

	t.Run("duplicate version in a chain is rejected", func(t *testing.T) {
		duplicate := &model.Quote{
			ID:              primitive.NewObjectID(),
			Number:          "Q-200-v2",
			OriginalQuoteID: &root.ID,
			Version:         2,
			Status:          model.QuoteDraft,
		}
		err := repo.InsertRevision(ctx, duplicate)
		assert.Error(t, err)
	})

	t.Run("same version in different chains is fine", func(t *testing.T) {
		otherRootID := primitive.NewObjectID()
		otherRoot := &model.Quote{ID: otherRootID, Number: "Q-400-v1", Version: 1, Status: model.QuoteDraft}
		require.NoError(t, repo.InsertRevision(ctx, otherRoot))

		revision := &model.Quote{
			ID:              primitive.NewObjectID(),
			Number:          "Q-400-v2",
			OriginalQuoteID: &otherRootID,
			Version:         2,
			Status:          model.QuoteDraft,
		}
		assert.NoError(t, repo.InsertRevision(ctx, revision))
	})

	t.Run("unrelated quote is not in the chain", func(t *testing.T) {
		stranger := &model.Quote{
			ID:      primitive.NewObjectID(),
			Number:  "Q-300-v1",
			Version: 1,
			Status:  model.QuoteDraft,
		}
		require.NoError(t, repo.InsertRevision(ctx, stranger))

		chain, err := repo.QuotesInChain(ctx, root.ID)
		require.NoError(t, err)
		assert.Len(t, chain, 2)
	})
}
