package service

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
	"github.com/ovenline/bakeops/internal/repository"
)

// RecipeSelector picks a recipe from the catalog for one tier component.
// The two variants keep the matching strategy swappable and testable
// independently of persistence.
type RecipeSelector interface {
	Select(ctx context.Context, catalog repository.CatalogRepositoryInterface) (*model.Recipe, error)
}

// ExplicitRecipeRef selects a recipe by its catalog id.
type ExplicitRecipeRef struct {
	RecipeID primitive.ObjectID
}

// Select returns the referenced recipe, or (nil, nil) when the id does not
// resolve.
func (s ExplicitRecipeRef) Select(ctx context.Context, catalog repository.CatalogRepositoryInterface) (*model.Recipe, error) {
	return catalog.Recipe(ctx, s.RecipeID)
}

// KeywordMatch selects the first recipe of the scoped type whose name contains
// the pattern, case-insensitively.
type KeywordMatch struct {
	Scope   model.RecipeType
	Pattern string
}

// Select returns the first match, or (nil, nil) when nothing matches.
func (s KeywordMatch) Select(ctx context.Context, catalog repository.CatalogRepositoryInterface) (*model.Recipe, error) {
	recipes, err := catalog.RecipesByType(ctx, s.Scope)
	if err != nil {
		return nil, err
	}
	pattern := strings.ToLower(strings.TrimSpace(s.Pattern))
	if pattern == "" {
		return nil, nil
	}
	for i := range recipes {
		if strings.Contains(strings.ToLower(recipes[i].Name), pattern) {
			return &recipes[i], nil
		}
	}
	return nil, nil
}

// ResolvedComponent is the outcome of resolving one tier component.
// Recipe is nil when the component is absent; IsEstimate marks degraded
// resolution (unmatched hint, fallback multiplier, or catalog read failure).
type ResolvedComponent struct {
	Kind       model.ComponentKind
	Recipe     *model.Recipe
	Multiplier float64
	IsEstimate bool
	Note       string
}

// RecipeResolver resolves a tier's batter, filling, and frosting components.
type RecipeResolver struct {
	catalog repository.CatalogRepositoryInterface
}

// NewRecipeResolver creates a resolver backed by the given catalog.
func NewRecipeResolver(catalog repository.CatalogRepositoryInterface) *RecipeResolver {
	return &RecipeResolver{catalog: catalog}
}

// componentSpec normalizes a tier's per-component inputs.
type componentSpec struct {
	kind        model.ComponentKind
	scope       model.RecipeType
	explicitID  *primitive.ObjectID
	explicitMul *float64
	hint        string
	defaultID   *primitive.ObjectID
	defaultMul  float64
}

// ResolveTier resolves all three components of a tier against the catalog.
// It never fails on a missing reference: an unresolvable component contributes
// no cost and is flagged as an estimate instead. The returned tier size is nil
// when the tier's size reference does not resolve.
func (r *RecipeResolver) ResolveTier(ctx context.Context, tier model.OrderTier) ([]ResolvedComponent, *model.TierSize, error) {
	size, err := r.catalog.TierSize(ctx, tier.TierSizeID)
	if err != nil {
		return nil, nil, err
	}

	specs := []componentSpec{
		{
			kind: model.ComponentBatter, scope: model.RecipeBatter,
			explicitID: tier.BatterRecipeID, explicitMul: tier.BatterMultiplier,
			hint: tier.Flavor,
		},
		{
			kind: model.ComponentFilling, scope: model.RecipeFilling,
			explicitID: tier.FillingRecipeID, explicitMul: tier.FillingMultiplier,
			hint: tier.Filling,
		},
		{
			kind: model.ComponentFrosting, scope: model.RecipeFrosting,
			explicitID: tier.FrostingRecipeID, explicitMul: tier.FrostingMultiplier,
			hint: tier.Finish,
		},
	}
	if size != nil {
		specs[0].defaultID = size.DefaultBatterID
		specs[0].defaultMul = size.DefaultBatterMult
		specs[2].defaultID = size.DefaultFrostingID
		specs[2].defaultMul = size.DefaultFrostingMult
	}

	components := make([]ResolvedComponent, 0, len(specs))
	for _, spec := range specs {
		components = append(components, r.resolveComponent(ctx, spec, size))
	}
	return components, size, nil
}

func (r *RecipeResolver) resolveComponent(ctx context.Context, spec componentSpec, size *model.TierSize) ResolvedComponent {
	c := ResolvedComponent{Kind: spec.kind}

	var selector RecipeSelector
	switch {
	case spec.explicitID != nil:
		selector = ExplicitRecipeRef{RecipeID: *spec.explicitID}
	case strings.TrimSpace(spec.hint) != "":
		selector = KeywordMatch{Scope: spec.scope, Pattern: spec.hint}
	case spec.defaultID != nil:
		selector = ExplicitRecipeRef{RecipeID: *spec.defaultID}
	default:
		// No selection criteria at all; the component is legitimately absent.
		return c
	}

	recipe, err := selector.Select(ctx, r.catalog)
	if err != nil {
		c.IsEstimate = true
		c.Note = fmt.Sprintf("%s lookup failed: %v", spec.kind, err)
		return c
	}
	if recipe == nil {
		c.IsEstimate = true
		if spec.hint != "" {
			c.Note = fmt.Sprintf("no %s recipe matched %q", spec.kind, spec.hint)
		} else {
			c.Note = fmt.Sprintf("%s recipe reference not found", spec.kind)
		}
		return c
	}

	c.Recipe = recipe
	c.Multiplier, c.IsEstimate = resolveMultiplier(spec, size, recipe)
	if c.IsEstimate && c.Note == "" {
		c.Note = fmt.Sprintf("%s multiplier defaulted to 1.0", spec.kind)
	}
	return c
}

// resolveMultiplier derives the scale multiplier for a resolved recipe.
// Explicit positive multipliers win; otherwise tierVolume / yieldVolume when
// both are positive. Anything else falls back to 1.0 flagged as an estimate.
func resolveMultiplier(spec componentSpec, size *model.TierSize, recipe *model.Recipe) (float64, bool) {
	if spec.explicitMul != nil && *spec.explicitMul > 0 {
		return *spec.explicitMul, false
	}
	if spec.explicitID == nil && spec.defaultID != nil && strings.TrimSpace(spec.hint) == "" && spec.defaultMul > 0 {
		return spec.defaultMul, false
	}
	if size != nil && size.Volume > 0 && recipe.YieldVolume > 0 {
		return size.Volume / recipe.YieldVolume, false
	}
	return 1.0, true
}
