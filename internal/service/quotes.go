package service

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
	"github.com/ovenline/bakeops/internal/repository"
)

// QuoteService creates quote revisions.
type QuoteService interface {
	// Revise clones the quote into a new draft revision at the end of its
	// chain. The source quote is never mutated.
	Revise(ctx context.Context, quoteID primitive.ObjectID) (*model.Quote, error)
}

// QuoteReviser implements QuoteService over the quote repository.
type QuoteReviser struct {
	quotes repository.QuoteRepositoryInterface

	chainLocks sync.Map // root quote id hex -> *sync.Mutex
}

// NewQuoteReviser creates a reviser backed by the given repository.
func NewQuoteReviser(quotes repository.QuoteRepositoryInterface) *QuoteReviser {
	return &QuoteReviser{quotes: quotes}
}

var revisionSuffix = regexp.MustCompile(`-v\d+$`)

// Revise implements QuoteService. The new revision's version is one above the
// highest version anywhere in the chain, so revising an older revision still
// appends to the end rather than forking.
func (r *QuoteReviser) Revise(ctx context.Context, quoteID primitive.ObjectID) (*model.Quote, error) {
	source, err := r.quotes.Quote(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("load quote: %w", err)
	}
	if source == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, quoteID.Hex())
	}

	// Serialize per chain so concurrent revisions cannot both claim the same
	// version. The unique (original_quote_id, version) index backstops this
	// across processes.
	rootID := source.RootID()
	mu := r.lockFor(rootID)
	mu.Lock()
	defer mu.Unlock()

	chain, err := r.quotes.QuotesInChain(ctx, rootID)
	if err != nil {
		return nil, fmt.Errorf("load revision chain: %w", err)
	}

	maxVersion := source.Version
	for _, q := range chain {
		if q.Version > maxVersion {
			maxVersion = q.Version
		}
	}
	newVersion := maxVersion + 1

	now := time.Now().UTC()
	revision := &model.Quote{
		ID:              primitive.NewObjectID(),
		Number:          revisionNumber(source.Number, newVersion),
		CustomerName:    source.CustomerName,
		EventDate:       source.EventDate,
		CostingInput:    cloneCostingInput(source.CostingInput),
		OriginalQuoteID: &rootID,
		Version:         newVersion,
		Status:          model.QuoteDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := r.quotes.InsertRevision(ctx, revision); err != nil {
		return nil, fmt.Errorf("insert revision: %w", err)
	}

	log.Info().
		Str("quote_id", source.ID.Hex()).
		Str("revision_id", revision.ID.Hex()).
		Int("version", newVersion).
		Msg("Quote revision created")
	return revision, nil
}

func (r *QuoteReviser) lockFor(rootID primitive.ObjectID) *sync.Mutex {
	actual, _ := r.chainLocks.LoadOrStore(rootID.Hex(), &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// revisionNumber derives the revision's human-facing number: the base number
// with any previous -vN suffix replaced.
func revisionNumber(number string, version int) string {
	base := revisionSuffix.ReplaceAllString(number, "")
	return fmt.Sprintf("%s-v%d", base, version)
}

// cloneCostingInput deep-copies the embedded order-shaped document, assigning
// fresh ids to every child so the revision shares nothing with its source.
func cloneCostingInput(in model.CostingInput) model.CostingInput {
	out := in

	out.Tiers = make([]model.OrderTier, len(in.Tiers))
	for i, tier := range in.Tiers {
		t := tier
		t.ID = primitive.NewObjectID()
		t.BatterRecipeID = cloneIDPtr(tier.BatterRecipeID)
		t.BatterMultiplier = cloneFloatPtr(tier.BatterMultiplier)
		t.FillingRecipeID = cloneIDPtr(tier.FillingRecipeID)
		t.FillingMultiplier = cloneFloatPtr(tier.FillingMultiplier)
		t.FrostingRecipeID = cloneIDPtr(tier.FrostingRecipeID)
		t.FrostingMultiplier = cloneFloatPtr(tier.FrostingMultiplier)
		out.Tiers[i] = t
	}

	out.Decorations = make([]model.OrderDecoration, len(in.Decorations))
	for i, deco := range in.Decorations {
		d := deco
		d.ID = primitive.NewObjectID()
		d.CostPerUnitOverride = cloneFloatPtr(deco.CostPerUnitOverride)
		out.Decorations[i] = d
	}

	out.Items = make([]model.OrderItem, len(in.Items))
	for i, item := range in.Items {
		it := item
		it.ID = primitive.NewObjectID()
		it.MenuItemID = cloneIDPtr(item.MenuItemID)
		it.ProductTypeID = cloneIDPtr(item.ProductTypeID)
		out.Items[i] = it
	}

	out.Packaging = make([]model.PackagingSelection, len(in.Packaging))
	copy(out.Packaging, in.Packaging)

	out.Delivery.Lat = cloneFloatPtr(in.Delivery.Lat)
	out.Delivery.Lng = cloneFloatPtr(in.Delivery.Lng)
	out.Delivery.ZoneID = cloneIDPtr(in.Delivery.ZoneID)
	out.MarkupPercent = cloneFloatPtr(in.MarkupPercent)
	out.ManualAdjustment = cloneFloatPtr(in.ManualAdjustment)
	if in.Discount != nil {
		d := *in.Discount
		out.Discount = &d
	}
	return out
}

func cloneIDPtr(id *primitive.ObjectID) *primitive.ObjectID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneFloatPtr(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
