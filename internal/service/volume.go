package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
	"github.com/ovenline/bakeops/internal/repository"
)

// VolumePricer resolves quantity-tiered discounts for menu items and product
// types.
type VolumePricer struct {
	catalog repository.CatalogRepositoryInterface
}

// NewVolumePricer creates a pricer backed by the given catalog.
func NewVolumePricer(catalog repository.CatalogRepositoryInterface) *VolumePricer {
	return &VolumePricer{catalog: catalog}
}

// Price applies the tightest applicable volume breakpoint to quantity units at
// basePrice each. Scoping is exclusive: menuItemID wins when present,
// productTypeID otherwise. Among breakpoints whose band covers the quantity,
// the one with the highest MinQuantity wins; a breakpoint's fixed PricePerUnit
// takes precedence over its DiscountPercent. No match returns the original
// price unchanged.
func (p *VolumePricer) Price(ctx context.Context, menuItemID, productTypeID *primitive.ObjectID, quantity int, basePrice float64) (*model.VolumePriceResult, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if basePrice < 0 {
		return nil, fmt.Errorf("%w: base price must be non-negative", ErrInvalidInput)
	}
	if menuItemID == nil && productTypeID == nil {
		return nil, fmt.Errorf("%w: a menu item or product type id is required", ErrInvalidInput)
	}
	if menuItemID != nil {
		productTypeID = nil
	}

	qty := decimal.NewFromInt(int64(quantity))
	original := decimal.NewFromFloat(basePrice).Mul(qty)
	result := &model.VolumePriceResult{
		OriginalPrice:   round2(original),
		DiscountedPrice: round2(original),
	}

	breakpoints, err := p.catalog.VolumeBreakpoints(ctx, menuItemID, productTypeID)
	if err != nil {
		return nil, fmt.Errorf("load volume breakpoints: %w", err)
	}

	winner := selectBreakpoint(breakpoints, quantity)
	if winner == nil {
		return result, nil
	}

	var discounted decimal.Decimal
	switch {
	case winner.PricePerUnit != nil:
		discounted = decimal.NewFromFloat(*winner.PricePerUnit).Mul(qty)
	case winner.DiscountPercent != nil:
		pct := decimal.NewFromFloat(*winner.DiscountPercent).Div(decimal.NewFromInt(100))
		discounted = original.Sub(original.Mul(pct))
	default:
		return result, nil
	}

	result.DiscountedPrice = round2(discounted)
	result.Savings = round2(original.Sub(discounted))
	if original.IsPositive() {
		effective := decimal.NewFromInt(1).Sub(discounted.Div(original)).Mul(decimal.NewFromInt(100))
		result.DiscountPercent = round2(effective)
	}
	id := winner.ID
	result.AppliedBreakpointID = &id
	return result, nil
}

// selectBreakpoint picks the tightest applicable band: candidates have
// MinQuantity <= quantity and a MaxQuantity that is absent or >= quantity;
// ties go to the highest MinQuantity.
func selectBreakpoint(breakpoints []model.VolumeBreakpoint, quantity int) *model.VolumeBreakpoint {
	candidates := make([]model.VolumeBreakpoint, 0, len(breakpoints))
	for _, b := range breakpoints {
		if !b.Valid() {
			continue
		}
		if b.MinQuantity > quantity {
			continue
		}
		if b.MaxQuantity != nil && *b.MaxQuantity < quantity {
			continue
		}
		candidates = append(candidates, b)
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MinQuantity > candidates[j].MinQuantity
	})
	return &candidates[0]
}
