//go:build ignore

// This script seeds a local MongoDB with a small working catalog so the
// service can be exercised end to end during development.
// Run with: go run scripts/seed_catalog.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ovenline/bakeops/internal/domain/model"
)

func idPtr(id primitive.ObjectID) *primitive.ObjectID { return &id }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func main() {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "bakeops"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to MongoDB: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = client.Disconnect(ctx)
	}()

	db := client.Database(dbName)

	vendorMills := primitive.NewObjectID()
	vendorDairy := primitive.NewObjectID()

	flour := primitive.NewObjectID()
	sugar := primitive.NewObjectID()
	butter := primitive.NewObjectID()
	eggs := primitive.NewObjectID()

	baker := primitive.NewObjectID()
	decorator := primitive.NewObjectID()
	assistant := primitive.NewObjectID()

	vanillaBatter := primitive.NewObjectID()
	chocolateBatter := primitive.NewObjectID()
	buttercream := primitive.NewObjectID()

	sixInch := primitive.NewObjectID()
	eightInch := primitive.NewObjectID()
	tenInch := primitive.NewObjectID()

	seed := map[string][]interface{}{
		"vendors": {
			model.Vendor{ID: vendorMills, Name: "Acme Mills", Email: "orders@acmemills.example"},
			model.Vendor{ID: vendorDairy, Name: "Alpine Dairy", Email: "sales@alpinedairy.example"},
		},
		"ingredients": {
			model.Ingredient{ID: flour, Name: "All-Purpose Flour", Unit: "kg", CostPerUnit: 1.50, VendorID: idPtr(vendorMills)},
			model.Ingredient{ID: sugar, Name: "Granulated Sugar", Unit: "kg", CostPerUnit: 1.20, VendorID: idPtr(vendorMills)},
			model.Ingredient{ID: butter, Name: "Unsalted Butter", Unit: "kg", CostPerUnit: 8.00, VendorID: idPtr(vendorDairy)},
			model.Ingredient{ID: eggs, Name: "Eggs", Unit: "dozen", CostPerUnit: 3.50, VendorID: idPtr(vendorDairy)},
		},
		"labor_roles": {
			model.LaborRole{ID: baker, Name: "Baker", HourlyRate: 25},
			model.LaborRole{ID: decorator, Name: "Decorator", HourlyRate: 30},
			model.LaborRole{ID: assistant, Name: "Assistant", HourlyRate: 18},
		},
		"recipes": {
			model.Recipe{
				ID: vanillaBatter, Name: "Vanilla Bean Batter", Type: model.RecipeBatter,
				YieldVolume: 2000, LaborMinutes: 30, LaborRoleID: idPtr(baker),
				Ingredients: []model.RecipeIngredient{
					{IngredientID: flour, Quantity: 0.5},
					{IngredientID: sugar, Quantity: 0.4},
					{IngredientID: butter, Quantity: 0.25},
					{IngredientID: eggs, Quantity: 0.5},
				},
			},
			model.Recipe{
				ID: chocolateBatter, Name: "Chocolate Fudge Batter", Type: model.RecipeBatter,
				YieldVolume: 2000, LaborMinutes: 35, LaborRoleID: idPtr(baker),
				Ingredients: []model.RecipeIngredient{
					{IngredientID: flour, Quantity: 0.45},
					{IngredientID: sugar, Quantity: 0.5},
					{IngredientID: butter, Quantity: 0.3},
					{IngredientID: eggs, Quantity: 0.5},
				},
			},
			model.Recipe{
				ID: buttercream, Name: "Swiss Meringue Buttercream", Type: model.RecipeFrosting,
				YieldVolume: 1500, LaborMinutes: 25, LaborRoleID: idPtr(baker),
				Ingredients: []model.RecipeIngredient{
					{IngredientID: sugar, Quantity: 0.4},
					{IngredientID: butter, Quantity: 0.5},
					{IngredientID: eggs, Quantity: 0.5},
				},
			},
		},
		"tier_sizes": {
			model.TierSize{
				ID: sixInch, Name: `6" Round`, Volume: 1800, Servings: 12,
				DefaultBatterID: idPtr(vanillaBatter), DefaultBatterMult: 1.0,
				DefaultFrostingID: idPtr(buttercream), DefaultFrostingMult: 1.0,
				AssemblyMinutes: 20, AssemblyRoleID: idPtr(assistant),
			},
			model.TierSize{
				ID: eightInch, Name: `8" Round`, Volume: 3200, Servings: 24,
				DefaultBatterID: idPtr(vanillaBatter), DefaultBatterMult: 1.6,
				DefaultFrostingID: idPtr(buttercream), DefaultFrostingMult: 1.5,
				AssemblyMinutes: 30, AssemblyRoleID: idPtr(assistant),
			},
			model.TierSize{
				ID: tenInch, Name: `10" Round`, Volume: 5000, Servings: 38,
				DefaultBatterID: idPtr(chocolateBatter), DefaultBatterMult: 2.5,
				DefaultFrostingID: idPtr(buttercream), DefaultFrostingMult: 2.2,
				AssemblyMinutes: 45, AssemblyRoleID: idPtr(assistant),
			},
		},
		"decoration_techniques": {
			model.DecorationTechnique{
				ID: primitive.NewObjectID(), Name: "Sugar Flowers", Category: "FLORAL",
				Unit: model.DecorationPerEach, DefaultCostPerUnit: 2.50, LaborMinutes: 10, LaborRoleID: idPtr(decorator),
			},
			model.DecorationTechnique{
				ID: primitive.NewObjectID(), Name: "Gold Leaf Accent", Category: "FINISH",
				Unit: model.DecorationPerTier, DefaultCostPerUnit: 6.00, LaborMinutes: 15, LaborRoleID: idPtr(decorator),
			},
		},
		"packaging": {
			model.Packaging{ID: primitive.NewObjectID(), Name: "Tall Cake Box", CostPerUnit: 4.25},
			model.Packaging{ID: primitive.NewObjectID(), Name: "Drum Board", CostPerUnit: 2.75},
		},
		"delivery_zones": {
			model.DeliveryZone{ID: primitive.NewObjectID(), Name: "Downtown", MinDistance: 0, MaxDistance: floatPtr(5), BaseFee: 10},
			model.DeliveryZone{ID: primitive.NewObjectID(), Name: "Metro", MinDistance: 5, MaxDistance: floatPtr(20), BaseFee: 20},
			model.DeliveryZone{ID: primitive.NewObjectID(), Name: "Extended", MinDistance: 20, BaseFee: 8, PerMileFee: floatPtr(2)},
		},
		"volume_breakpoints": {
			model.VolumeBreakpoint{
				ID: primitive.NewObjectID(), ProductTypeID: idPtr(primitive.NewObjectID()),
				MinQuantity: 12, MaxQuantity: intPtr(23), DiscountPercent: floatPtr(10),
			},
			model.VolumeBreakpoint{
				ID: primitive.NewObjectID(), ProductTypeID: idPtr(primitive.NewObjectID()),
				MinQuantity: 24, PricePerUnit: floatPtr(1.75),
			},
		},
	}

	for collection, docs := range seed {
		if _, err := db.Collection(collection).InsertMany(ctx, docs); err != nil {
			fmt.Fprintf(os.Stderr, "Error seeding %s: %v\n", collection, err)
			os.Exit(1)
		}
		fmt.Printf("Seeded %d documents into %s\n", len(docs), collection)
	}

	fmt.Println()
	fmt.Printf("Catalog seeded into %s at %s\n", dbName, uri)
}
