package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/config"
	"github.com/ovenline/bakeops/internal/domain/model"
	"github.com/ovenline/bakeops/internal/events"
	"github.com/ovenline/bakeops/internal/metrics"
	"github.com/ovenline/bakeops/internal/repository"
)

// CostingService computes cost/price breakdowns for orders and quotes.
type CostingService interface {
	// Preview computes a breakdown for a draft document with no persistence
	// side effects. Safe to call concurrently.
	Preview(ctx context.Context, input model.CostingInput) (*model.CostBreakdown, error)
	// FinalizeOrder recomputes the order's breakdown and persists it, linked
	// to the order for audit. Finalizes for the same order are serialized so a
	// stale concurrent run cannot overwrite a later one.
	FinalizeOrder(ctx context.Context, orderID primitive.ObjectID) (*model.CostBreakdown, error)
}

// EngineOption configures a CostingEngine.
type EngineOption func(*CostingEngine)

// WithDistanceProvider sets the provider used for delivery distance.
func WithDistanceProvider(p DistanceProvider) EngineOption {
	return func(e *CostingEngine) { e.distance = p }
}

// WithOrderRepository enables finalize mode.
func WithOrderRepository(orders repository.OrderRepositoryInterface) EngineOption {
	return func(e *CostingEngine) { e.orders = orders }
}

// WithPublisher sets the event publisher for finalized costings.
func WithPublisher(p events.Publisher) EngineOption {
	return func(e *CostingEngine) { e.publisher = p }
}

// WithBakeryLocation sets the delivery origin coordinates.
func WithBakeryLocation(lat, lng float64) EngineOption {
	return func(e *CostingEngine) {
		e.originLat = lat
		e.originLng = lng
	}
}

// CostingEngine implements CostingService. Each invocation works over its own
// resolved data, so preview calls need no coordination; finalize holds a
// per-order mutex around compute-and-persist.
type CostingEngine struct {
	catalog  repository.CatalogRepositoryInterface
	orders   repository.OrderRepositoryInterface
	resolver *RecipeResolver
	pricer   *VolumePricer
	distance DistanceProvider
	pricing  config.PricingConfig

	publisher events.Publisher
	originLat float64
	originLng float64

	finalizeLocks sync.Map // order id hex -> *sync.Mutex
}

// NewCostingEngine creates an engine over the given catalog with the supplied
// pricing coefficients.
func NewCostingEngine(catalog repository.CatalogRepositoryInterface, pricing config.PricingConfig, opts ...EngineOption) *CostingEngine {
	e := &CostingEngine{
		catalog:   catalog,
		resolver:  NewRecipeResolver(catalog),
		pricer:    NewVolumePricer(catalog),
		distance:  NewResilientProvider(nil, 0, 0),
		pricing:   pricing,
		publisher: events.NoopPublisher{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Preview implements CostingService.
func (e *CostingEngine) Preview(ctx context.Context, input model.CostingInput) (*model.CostBreakdown, error) {
	start := time.Now()
	breakdown, err := e.compute(ctx, input)
	isEstimate := breakdown != nil && breakdown.IsEstimate
	metrics.RecordCosting("preview", time.Since(start), isEstimate, err)
	return breakdown, err
}

// FinalizeOrder implements CostingService.
func (e *CostingEngine) FinalizeOrder(ctx context.Context, orderID primitive.ObjectID) (*model.CostBreakdown, error) {
	if e.orders == nil {
		return nil, fmt.Errorf("finalize mode requires an order repository")
	}

	mu := e.lockFor(orderID)
	mu.Lock()
	defer mu.Unlock()

	start := time.Now()
	breakdown, err := e.finalizeLocked(ctx, orderID)
	isEstimate := breakdown != nil && breakdown.IsEstimate
	metrics.RecordCosting("finalize", time.Since(start), isEstimate, err)
	return breakdown, err
}

func (e *CostingEngine) finalizeLocked(ctx context.Context, orderID primitive.ObjectID) (*model.CostBreakdown, error) {
	order, err := e.orders.Order(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID.Hex())
	}

	breakdown, err := e.compute(ctx, order.CostingInput)
	if err != nil {
		return nil, err
	}
	breakdown.OrderID = &order.ID

	if prev, err := e.orders.LatestCosting(ctx, orderID); err == nil && prev != nil {
		breakdown.Version = prev.Version + 1
	}

	if err := e.orders.SaveCosting(ctx, orderID, breakdown); err != nil {
		return nil, fmt.Errorf("persist costing: %w", err)
	}

	if err := e.publisher.PublishCostingFinalized(ctx, events.CostingFinalized{
		OrderID:    orderID.Hex(),
		TotalCost:  breakdown.TotalCost,
		FinalPrice: breakdown.FinalPrice,
		IsEstimate: breakdown.IsEstimate,
		Version:    breakdown.Version,
		ComputedAt: breakdown.ComputedAt,
	}); err != nil {
		log.Warn().Err(err).Str("order_id", orderID.Hex()).Msg("Failed to publish costing event")
	}

	return breakdown, nil
}

func (e *CostingEngine) lockFor(orderID primitive.ObjectID) *sync.Mutex {
	actual, _ := e.finalizeLocks.LoadOrStore(orderID.Hex(), &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// rollup accumulates exact decimal totals during a compute pass.
type rollup struct {
	ingredient  decimal.Decimal
	labor       decimal.Decimal
	decoMat     decimal.Decimal
	decoLabor   decimal.Decimal
	delivery    decimal.Decimal
	topper      decimal.Decimal
	packaging   decimal.Decimal
	estimates   []string
}

func (r *rollup) flag(format string, args ...interface{}) {
	r.estimates = append(r.estimates, fmt.Sprintf(format, args...))
}

func (r *rollup) total() decimal.Decimal {
	return r.ingredient.
		Add(r.labor).
		Add(r.decoMat).
		Add(r.decoLabor).
		Add(r.delivery).
		Add(r.topper).
		Add(r.packaging)
}

// compute is the single-pass rollup. Missing catalog references degrade
// gracefully: the component contributes zero, the breakdown is flagged as an
// estimate, and the degraded item is itemized so a caller can see which tier
// or decoration lacked data.
func (e *CostingEngine) compute(ctx context.Context, input model.CostingInput) (*model.CostBreakdown, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	r := &rollup{}
	breakdown := &model.CostBreakdown{
		ComputedAt: time.Now().UTC(),
		Version:    1,
	}

	tiers := make([]model.OrderTier, len(input.Tiers))
	copy(tiers, input.Tiers)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].TierIndex < tiers[j].TierIndex })

	totalServings := 0
	for _, tier := range tiers {
		tc := e.costTier(ctx, tier, r)
		totalServings += tc.Servings
		breakdown.Tiers = append(breakdown.Tiers, tc)
	}

	e.costDecorations(ctx, input, len(tiers), r)
	breakdown.Delivery = e.costDelivery(ctx, input.Delivery, r)
	e.costTopper(input, r)
	e.costPackaging(ctx, input.Packaging, r)
	breakdown.Items = e.costItems(ctx, input.Items, r)

	totalCost := r.total()
	markup := e.pricing.DefaultMarkupPercent
	if input.MarkupPercent != nil {
		markup = *input.MarkupPercent
	}
	quote := FinalizePrice(totalCost, markup, input.Discount, input.ManualAdjustment, totalServings)

	breakdown.IngredientCost = round2(r.ingredient)
	breakdown.LaborCost = round2(r.labor)
	breakdown.DecorationMaterialCost = round2(r.decoMat)
	breakdown.DecorationLaborCost = round2(r.decoLabor)
	breakdown.DeliveryCost = round2(r.delivery)
	breakdown.TopperCost = round2(r.topper)
	breakdown.PackagingCost = round2(r.packaging)
	breakdown.TotalCost = round2(totalCost)
	breakdown.SuggestedPrice = quote.SuggestedPrice
	breakdown.FinalPrice = quote.FinalPrice
	breakdown.PricePerServing = quote.PricePerServing
	breakdown.TotalServings = totalServings
	breakdown.Estimates = r.estimates
	breakdown.IsEstimate = len(r.estimates) > 0

	// Discounted menu items are priced goods on top of the cake price.
	if breakdown.Items != nil {
		breakdown.FinalPrice = round2(decimal.NewFromFloat(breakdown.FinalPrice).
			Add(decimal.NewFromFloat(breakdown.Items.DiscountedTotal)))
	}

	return breakdown, nil
}

// costTier resolves one tier's components and accumulates ingredient and labor
// cost.
func (e *CostingEngine) costTier(ctx context.Context, tier model.OrderTier, r *rollup) model.TierCosting {
	tc := model.TierCosting{
		TierIndex:  tier.TierIndex,
		TierSizeID: tier.TierSizeID,
	}

	components, size, err := e.resolver.ResolveTier(ctx, tier)
	if err != nil {
		r.flag("tier %d: size lookup failed: %v", tier.TierIndex, err)
		tc.IsEstimate = true
		return tc
	}
	if size == nil {
		r.flag("tier %d: tier size not found", tier.TierIndex)
		tc.IsEstimate = true
	} else {
		tc.Servings = size.Servings
	}

	tierIngredient := decimal.Zero
	tierLabor := decimal.Zero
	for _, comp := range components {
		match := model.ComponentMatch{
			Kind:       comp.Kind,
			Multiplier: comp.Multiplier,
			IsEstimate: comp.IsEstimate,
			Note:       comp.Note,
		}
		if comp.Note != "" {
			r.flag("tier %d: %s", tier.TierIndex, comp.Note)
		}
		if comp.Recipe != nil {
			recipeID := comp.Recipe.ID
			match.RecipeID = &recipeID
			match.RecipeName = comp.Recipe.Name

			mult := decimal.NewFromFloat(comp.Multiplier)
			ingredientCost := e.ingredientCost(ctx, tier.TierIndex, comp.Recipe, mult, r)
			match.IngredientCost = round2(ingredientCost)
			tierIngredient = tierIngredient.Add(ingredientCost)

			rate, degraded := e.roleRate(ctx, comp.Recipe.LaborRoleID, e.pricing.BakerRate)
			if degraded {
				r.flag("tier %d: %s labor role not found, using baker rate", tier.TierIndex, comp.Kind)
				match.IsEstimate = true
			}
			laborCost := decimal.NewFromFloat(comp.Recipe.LaborMinutes).
				Mul(mult).
				Div(decimal.NewFromInt(60)).
				Mul(rate)
			match.LaborCost = round2(laborCost)
			tierLabor = tierLabor.Add(laborCost)
		}
		if match.IsEstimate {
			tc.IsEstimate = true
		}
		tc.Components = append(tc.Components, match)
	}

	if size != nil && size.AssemblyMinutes > 0 {
		rate, degraded := e.roleRate(ctx, size.AssemblyRoleID, e.pricing.AssistantRate)
		if degraded {
			r.flag("tier %d: assembly role not found, using assistant rate", tier.TierIndex)
			tc.IsEstimate = true
		}
		assembly := decimal.NewFromFloat(size.AssemblyMinutes).
			Div(decimal.NewFromInt(60)).
			Mul(rate)
		tc.AssemblyLaborCost = round2(assembly)
		tierLabor = tierLabor.Add(assembly)
	}

	tc.IngredientCost = round2(tierIngredient)
	tc.LaborCost = round2(tierLabor)
	r.ingredient = r.ingredient.Add(tierIngredient)
	r.labor = r.labor.Add(tierLabor)
	return tc
}

// ingredientCost sums quantity * multiplier * costPerUnit over a recipe's
// ingredient list. A missing ingredient contributes zero and flags the result.
func (e *CostingEngine) ingredientCost(ctx context.Context, tierIndex int, recipe *model.Recipe, mult decimal.Decimal, r *rollup) decimal.Decimal {
	total := decimal.Zero
	for _, line := range recipe.Ingredients {
		ing, err := e.catalog.Ingredient(ctx, line.IngredientID)
		if err != nil || ing == nil {
			r.flag("tier %d: ingredient %s of %q not found", tierIndex, line.IngredientID.Hex(), recipe.Name)
			continue
		}
		total = total.Add(decimal.NewFromFloat(line.Quantity).
			Mul(mult).
			Mul(decimal.NewFromFloat(ing.CostPerUnit)))
	}
	return total
}

func (e *CostingEngine) costDecorations(ctx context.Context, input model.CostingInput, tierCount int, r *rollup) {
	for _, deco := range input.Decorations {
		tech, err := e.catalog.DecorationTechnique(ctx, deco.TechniqueID)
		if err != nil || tech == nil {
			r.flag("decoration %s: technique not found", deco.TechniqueID.Hex())
			continue
		}

		quantity := deco.Quantity
		if tech.Unit == model.DecorationPerTier {
			quantity *= tierCount
		}
		qty := decimal.NewFromInt(int64(quantity))

		costPerUnit := tech.DefaultCostPerUnit
		if deco.CostPerUnitOverride != nil {
			costPerUnit = *deco.CostPerUnitOverride
		}
		r.decoMat = r.decoMat.Add(decimal.NewFromFloat(costPerUnit).Mul(qty))

		rate, degraded := e.roleRate(ctx, tech.LaborRoleID, e.pricing.DecoratorRate)
		if degraded {
			r.flag("decoration %q: labor role not found, using decorator rate", tech.Name)
		}
		r.decoLabor = r.decoLabor.Add(decimal.NewFromFloat(tech.LaborMinutes).
			Mul(qty).
			Div(decimal.NewFromInt(60)).
			Mul(rate))
	}
}

// costDelivery resolves the delivery fee. Zone resolution needs a distance,
// which comes from the provider (with its own straight-line fallback); an
// explicitly pinned zone skips distance-based selection.
func (e *CostingEngine) costDelivery(ctx context.Context, delivery model.DeliveryInfo, r *rollup) *model.DeliveryCostDetail {
	if delivery.Method != model.DeliveryCourier {
		return nil
	}

	detail := &model.DeliveryCostDetail{}

	if delivery.Lat != nil && delivery.Lng != nil {
		d, _ := e.distance.Distance(ctx, e.originLat, e.originLng, *delivery.Lat, *delivery.Lng)
		detail.Miles = d.Miles
		detail.Minutes = d.Minutes
		detail.IsEstimate = d.IsEstimate
		if d.IsEstimate {
			r.flag("delivery: distance is a straight-line estimate")
		}
	} else if delivery.ZoneID == nil {
		r.flag("delivery: no coordinates or zone, fee unknown")
		detail.IsEstimate = true
		return detail
	}

	zone := e.resolveZone(ctx, delivery, detail.Miles, r)
	if zone == nil {
		r.flag("delivery: no zone covers %.1f miles", detail.Miles)
		detail.IsEstimate = true
		return detail
	}
	zoneID := zone.ID
	detail.ZoneID = &zoneID
	detail.ZoneName = zone.Name

	fee := decimal.NewFromFloat(zone.BaseFee)
	if zone.PerMileFee != nil {
		extra := detail.Miles - zone.MinDistance
		if extra < 0 {
			extra = 0
		}
		fee = fee.Add(decimal.NewFromFloat(*zone.PerMileFee).Mul(decimal.NewFromFloat(extra)))
	}
	r.delivery = r.delivery.Add(fee)
	return detail
}

func (e *CostingEngine) resolveZone(ctx context.Context, delivery model.DeliveryInfo, miles float64, r *rollup) *model.DeliveryZone {
	zones, err := e.catalog.DeliveryZones(ctx)
	if err != nil {
		r.flag("delivery: zone lookup failed: %v", err)
		return nil
	}

	if delivery.ZoneID != nil {
		for i := range zones {
			if zones[i].ID == *delivery.ZoneID {
				return &zones[i]
			}
		}
		r.flag("delivery: zone %s not found", delivery.ZoneID.Hex())
		return nil
	}

	for i := range zones {
		z := zones[i]
		if miles < z.MinDistance {
			continue
		}
		if z.MaxDistance != nil && miles >= *z.MaxDistance {
			continue
		}
		return &zones[i]
	}
	return nil
}

func (e *CostingEngine) costTopper(input model.CostingInput, r *rollup) {
	switch input.TopperType {
	case model.TopperStandard:
		r.topper = r.topper.Add(decimal.NewFromFloat(e.pricing.StandardTopperFee))
	case model.TopperCustom:
		r.topper = r.topper.Add(decimal.NewFromFloat(input.CustomTopperFee))
	}
}

func (e *CostingEngine) costPackaging(ctx context.Context, selections []model.PackagingSelection, r *rollup) {
	for _, sel := range selections {
		pkg, err := e.catalog.Packaging(ctx, sel.PackagingID)
		if err != nil || pkg == nil {
			r.flag("packaging %s: not found", sel.PackagingID.Hex())
			continue
		}
		r.packaging = r.packaging.Add(decimal.NewFromFloat(pkg.CostPerUnit).
			Mul(decimal.NewFromInt(int64(sel.Quantity))))
	}
}

// costItems volume-prices the order's menu line items. Items are priced goods,
// not costed goods: they never touch the cost rollup, only the final price.
func (e *CostingEngine) costItems(ctx context.Context, items []model.OrderItem, r *rollup) *model.ItemPricing {
	if len(items) == 0 {
		return nil
	}

	original := decimal.Zero
	discounted := decimal.Zero
	for _, item := range items {
		lineOriginal := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		original = original.Add(lineOriginal)

		if item.MenuItemID == nil && item.ProductTypeID == nil {
			discounted = discounted.Add(lineOriginal)
			continue
		}
		priced, err := e.pricer.Price(ctx, item.MenuItemID, item.ProductTypeID, item.Quantity, item.UnitPrice)
		if err != nil {
			r.flag("item %q: volume pricing failed: %v", item.Name, err)
			discounted = discounted.Add(lineOriginal)
			continue
		}
		discounted = discounted.Add(decimal.NewFromFloat(priced.DiscountedPrice))
	}

	return &model.ItemPricing{
		OriginalTotal:   round2(original),
		DiscountedTotal: round2(discounted),
		Savings:         round2(original.Sub(discounted)),
	}
}

// roleRate returns the role's hourly rate, or the documented fallback when the
// reference is nil or does not resolve. The degraded flag is set only when a
// reference existed but could not be resolved.
func (e *CostingEngine) roleRate(ctx context.Context, roleID *primitive.ObjectID, fallback float64) (decimal.Decimal, bool) {
	if roleID == nil {
		return decimal.NewFromFloat(fallback), false
	}
	role, err := e.catalog.LaborRole(ctx, *roleID)
	if err != nil || role == nil || role.HourlyRate <= 0 {
		return decimal.NewFromFloat(fallback), true
	}
	return decimal.NewFromFloat(role.HourlyRate), false
}

// validateInput rejects malformed documents before calculation begins.
func validateInput(input model.CostingInput) error {
	if len(input.Tiers) == 0 {
		return fmt.Errorf("%w: at least one tier is required", ErrInvalidInput)
	}

	indexes := make(map[int]bool, len(input.Tiers))
	minIndex := input.Tiers[0].TierIndex
	for _, tier := range input.Tiers {
		if indexes[tier.TierIndex] {
			return fmt.Errorf("%w: duplicate tier index %d", ErrInvalidInput, tier.TierIndex)
		}
		indexes[tier.TierIndex] = true
		if tier.TierIndex < minIndex {
			minIndex = tier.TierIndex
		}
		for _, m := range []*float64{tier.BatterMultiplier, tier.FillingMultiplier, tier.FrostingMultiplier} {
			if m != nil && *m <= 0 {
				return fmt.Errorf("%w: tier %d has a non-positive multiplier", ErrInvalidInput, tier.TierIndex)
			}
		}
	}
	if minIndex != 0 && minIndex != 1 {
		return fmt.Errorf("%w: tier indexes must start at 0 or 1", ErrInvalidInput)
	}
	for i := 0; i < len(input.Tiers); i++ {
		if !indexes[minIndex+i] {
			return fmt.Errorf("%w: tier indexes must be contiguous", ErrInvalidInput)
		}
	}

	for _, deco := range input.Decorations {
		if deco.Quantity <= 0 {
			return fmt.Errorf("%w: decoration quantity must be positive", ErrInvalidInput)
		}
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item quantity must be positive", ErrInvalidInput)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("%w: item unit price must be non-negative", ErrInvalidInput)
		}
	}
	for _, sel := range input.Packaging {
		if sel.Quantity <= 0 {
			return fmt.Errorf("%w: packaging quantity must be positive", ErrInvalidInput)
		}
	}
	return nil
}
