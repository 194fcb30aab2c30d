package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
	"github.com/ovenline/bakeops/internal/mocks"
	"github.com/ovenline/bakeops/internal/service"
)

func TestQuoteReviser_Revise(t *testing.T) {
	rootID := primitive.NewObjectID()
	tierID := primitive.NewObjectID()
	sizeID := primitive.NewObjectID()
	recipeID := primitive.NewObjectID()

	root := &model.Quote{
		ID:           rootID,
		Number:       "Q-100",
		CustomerName: "Dana Whitfield",
		EventDate:    time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		Version:      1,
		Status:       model.QuoteSent,
		CostingInput: model.CostingInput{
			Tiers: []model.OrderTier{{
				ID:               tierID,
				TierIndex:        1,
				TierSizeID:       sizeID,
				BatterRecipeID:   &recipeID,
				BatterMultiplier: floatPtr(2.0),
			}},
			Delivery: model.DeliveryInfo{Method: model.DeliveryPickup},
			Discount: &model.Discount{Type: model.DiscountPercent, Value: 5},
		},
	}

	mockQuotes := new(mocks.MockQuoteRepositoryInterface)
	mockQuotes.On("Quote", mock.Anything, rootID).Return(root, nil)
	mockQuotes.On("QuotesInChain", mock.Anything, rootID).Return([]model.Quote{*root}, nil)
	mockQuotes.On("InsertRevision", mock.Anything, mock.AnythingOfType("*model.Quote")).Return(nil)

	reviser := service.NewQuoteReviser(mockQuotes)
	revision, err := reviser.Revise(context.Background(), rootID)

	require.NoError(t, err)
	assert.Equal(t, "Q-100-v2", revision.Number)
	assert.Equal(t, 2, revision.Version)
	assert.Equal(t, model.QuoteDraft, revision.Status)
	require.NotNil(t, revision.OriginalQuoteID)
	assert.Equal(t, rootID, *revision.OriginalQuoteID)
	assert.Equal(t, root.CustomerName, revision.CustomerName)
	assert.Equal(t, root.EventDate, revision.EventDate)

	// The clone shares nothing with its source.
	require.Len(t, revision.Tiers, 1)
	clone := revision.Tiers[0]
	assert.NotEqual(t, tierID, clone.ID)
	assert.Equal(t, sizeID, clone.TierSizeID)
	require.NotNil(t, clone.BatterRecipeID)
	assert.Equal(t, recipeID, *clone.BatterRecipeID)
	assert.NotSame(t, root.Tiers[0].BatterRecipeID, clone.BatterRecipeID)
	assert.NotSame(t, root.Discount, revision.Discount)
	assert.Equal(t, *root.Discount, *revision.Discount)

	mockQuotes.AssertExpectations(t)
}

func TestQuoteReviser_Revise_AppendsToChainEnd(t *testing.T) {
	rootID := primitive.NewObjectID()
	v2ID := primitive.NewObjectID()

	v2 := &model.Quote{
		ID:              v2ID,
		Number:          "Q-100-v2",
		OriginalQuoteID: &rootID,
		Version:         2,
		Status:          model.QuoteSuperseded,
		CostingInput: model.CostingInput{
			Tiers: []model.OrderTier{{TierIndex: 1, TierSizeID: primitive.NewObjectID()}},
		},
	}
	chain := []model.Quote{
		{ID: rootID, Number: "Q-100", Version: 1},
		*v2,
		{ID: primitive.NewObjectID(), Number: "Q-100-v3", OriginalQuoteID: &rootID, Version: 3},
	}

	mockQuotes := new(mocks.MockQuoteRepositoryInterface)
	mockQuotes.On("Quote", mock.Anything, v2ID).Return(v2, nil)
	mockQuotes.On("QuotesInChain", mock.Anything, rootID).Return(chain, nil)
	mockQuotes.On("InsertRevision", mock.Anything, mock.AnythingOfType("*model.Quote")).Return(nil)

	reviser := service.NewQuoteReviser(mockQuotes)
	revision, err := reviser.Revise(context.Background(), v2ID)

	require.NoError(t, err)
	// Revising an older revision still appends after the chain's newest.
	assert.Equal(t, 4, revision.Version)
	assert.Equal(t, "Q-100-v4", revision.Number)
	require.NotNil(t, revision.OriginalQuoteID)
	assert.Equal(t, rootID, *revision.OriginalQuoteID)
}

// memQuoteRepo is a thread-safe in-memory quote store. The mock repositories
// return canned answers, which cannot show two concurrent revisions racing for
// the same version; this one reflects inserts back into chain reads.
type memQuoteRepo struct {
	mu     sync.Mutex
	quotes map[primitive.ObjectID]model.Quote
}

func newMemQuoteRepo(seed ...model.Quote) *memQuoteRepo {
	r := &memQuoteRepo{quotes: make(map[primitive.ObjectID]model.Quote)}
	for _, q := range seed {
		r.quotes[q.ID] = q
	}
	return r
}

func (r *memQuoteRepo) Quote(_ context.Context, id primitive.ObjectID) (*model.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (r *memQuoteRepo) QuotesInChain(_ context.Context, rootID primitive.ObjectID) ([]model.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var chain []model.Quote
	for _, q := range r.quotes {
		if q.ID == rootID || (q.OriginalQuoteID != nil && *q.OriginalQuoteID == rootID) {
			chain = append(chain, q)
		}
	}
	return chain, nil
}

func (r *memQuoteRepo) InsertRevision(_ context.Context, q *model.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes[q.ID] = *q
	return nil
}

func TestQuoteReviser_Revise_ConcurrentRevisionsNeverReuseAVersion(t *testing.T) {
	rootID := primitive.NewObjectID()
	repo := newMemQuoteRepo(model.Quote{
		ID:      rootID,
		Number:  "Q-100",
		Version: 1,
		Status:  model.QuoteSent,
	})
	reviser := service.NewQuoteReviser(repo)

	const revisions = 10
	type outcome struct {
		version int
		err     error
	}
	results := make(chan outcome, revisions)
	var wg sync.WaitGroup
	for i := 0; i < revisions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			revision, err := reviser.Revise(context.Background(), rootID)
			if err != nil {
				results <- outcome{err: err}
				return
			}
			results <- outcome{version: revision.Version}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int]bool)
	for res := range results {
		require.NoError(t, res.err)
		assert.False(t, seen[res.version], "version %d claimed twice", res.version)
		seen[res.version] = true
	}
	for v := 2; v <= revisions+1; v++ {
		assert.True(t, seen[v], "version %d missing", v)
	}
}

func TestQuoteReviser_Revise_NotFound(t *testing.T) {
	quoteID := primitive.NewObjectID()

	mockQuotes := new(mocks.MockQuoteRepositoryInterface)
	mockQuotes.On("Quote", mock.Anything, quoteID).Return(nil, nil)

	reviser := service.NewQuoteReviser(mockQuotes)
	revision, err := reviser.Revise(context.Background(), quoteID)

	assert.ErrorIs(t, err, service.ErrQuoteNotFound)
	assert.Nil(t, revision)
}
