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

// ShoppingService aggregates ingredient demand across orders.
type ShoppingService interface {
	// BuildList resolves every order's recipes to ingredient demand, sums by
	// ingredient, and groups by preferred vendor. Orders that do not resolve
	// (missing recipes, unknown ids) contribute what they can; the list never
	// fails on partial catalog data.
	BuildList(ctx context.Context, orderIDs []primitive.ObjectID) (*model.ShoppingList, error)
}

// ShoppingAggregator implements ShoppingService.
type ShoppingAggregator struct {
	catalog  repository.CatalogRepositoryInterface
	orders   repository.OrderRepositoryInterface
	resolver *RecipeResolver
}

// NewShoppingAggregator creates an aggregator over the given repositories.
func NewShoppingAggregator(catalog repository.CatalogRepositoryInterface, orders repository.OrderRepositoryInterface) *ShoppingAggregator {
	return &ShoppingAggregator{
		catalog:  catalog,
		orders:   orders,
		resolver: NewRecipeResolver(catalog),
	}
}

// demandLine accumulates exact quantities per ingredient during aggregation.
type demandLine struct {
	ingredient *model.Ingredient
	quantity   decimal.Decimal
}

// BuildList implements ShoppingService.
func (a *ShoppingAggregator) BuildList(ctx context.Context, orderIDs []primitive.ObjectID) (*model.ShoppingList, error) {
	if len(orderIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one order id is required", ErrInvalidInput)
	}

	orders, err := a.orders.Orders(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	demand := make(map[primitive.ObjectID]*demandLine)
	for _, order := range orders {
		for _, tier := range order.Tiers {
			components, _, err := a.resolver.ResolveTier(ctx, tier)
			if err != nil {
				continue
			}
			for _, comp := range components {
				if comp.Recipe == nil {
					continue
				}
				a.accumulate(ctx, demand, comp.Recipe, decimal.NewFromFloat(comp.Multiplier))
			}
		}
	}

	return a.assemble(ctx, demand, len(orders)), nil
}

func (a *ShoppingAggregator) accumulate(ctx context.Context, demand map[primitive.ObjectID]*demandLine, recipe *model.Recipe, mult decimal.Decimal) {
	for _, line := range recipe.Ingredients {
		qty := decimal.NewFromFloat(line.Quantity).Mul(mult)
		if existing, ok := demand[line.IngredientID]; ok {
			existing.quantity = existing.quantity.Add(qty)
			continue
		}
		ing, err := a.catalog.Ingredient(ctx, line.IngredientID)
		if err != nil || ing == nil {
			continue
		}
		demand[line.IngredientID] = &demandLine{ingredient: ing, quantity: qty}
	}
}

// assemble turns the accumulated demand into the vendor-grouped list. Output
// ordering is deterministic: vendors by name, items by ingredient name.
func (a *ShoppingAggregator) assemble(ctx context.Context, demand map[primitive.ObjectID]*demandLine, orderCount int) *model.ShoppingList {
	list := &model.ShoppingList{OrderCount: orderCount}

	type group struct {
		vendorID primitive.ObjectID
		items    []model.IngredientDemand
		total    decimal.Decimal
	}
	groups := make(map[primitive.ObjectID]*group)
	grandTotal := decimal.Zero

	for _, line := range demand {
		cost := line.quantity.Mul(decimal.NewFromFloat(line.ingredient.CostPerUnit))
		grandTotal = grandTotal.Add(cost)
		item := model.IngredientDemand{
			IngredientID:  line.ingredient.ID,
			Name:          line.ingredient.Name,
			Unit:          line.ingredient.Unit,
			Quantity:      round2(line.quantity),
			EstimatedCost: round2(cost),
		}

		if line.ingredient.VendorID == nil {
			list.UnlinkedIngredients = append(list.UnlinkedIngredients, item)
			continue
		}
		g, ok := groups[*line.ingredient.VendorID]
		if !ok {
			g = &group{vendorID: *line.ingredient.VendorID}
			groups[*line.ingredient.VendorID] = g
		}
		g.items = append(g.items, item)
		g.total = g.total.Add(cost)
	}

	for _, g := range groups {
		sort.Slice(g.items, func(i, j int) bool { return g.items[i].Name < g.items[j].Name })
		vg := model.VendorGroup{
			VendorID:      g.vendorID,
			Items:         g.items,
			EstimatedCost: round2(g.total),
		}
		if vendor, err := a.catalog.Vendor(ctx, g.vendorID); err == nil && vendor != nil {
			vg.VendorName = vendor.Name
		}
		list.VendorGroups = append(list.VendorGroups, vg)
	}
	sort.Slice(list.VendorGroups, func(i, j int) bool {
		return list.VendorGroups[i].VendorName < list.VendorGroups[j].VendorName
	})
	sort.Slice(list.UnlinkedIngredients, func(i, j int) bool {
		return list.UnlinkedIngredients[i].Name < list.UnlinkedIngredients[j].Name
	})

	list.GrandTotal = round2(grandTotal)
	return list
}
