// Package repository provides data access layer for MongoDB.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	// MaxPoolSize is the maximum number of connections in the pool.
	MaxPoolSize uint64
	// MinPoolSize is the minimum number of connections to keep in the pool.
	MinPoolSize uint64
	// MaxConnIdleTime is how long a connection can remain idle before being closed.
	MaxConnIdleTime time.Duration
	// ConnectTimeout is the timeout for establishing a connection.
	ConnectTimeout time.Duration
	// ServerSelectionTimeout is how long to wait for server selection.
	ServerSelectionTimeout time.Duration
	// SocketTimeout is the timeout for socket read/write operations.
	SocketTimeout time.Duration
	// EnableCompression enables wire protocol compression.
	EnableCompression bool
}

// DefaultMongoConfig returns production-optimized MongoDB configuration.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            10,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB provides MongoDB client and database access.
type MongoDB struct {
	Client               *mongo.Client
	Database             *mongo.Database
	Recipes              *mongo.Collection
	Ingredients          *mongo.Collection
	TierSizes            *mongo.Collection
	LaborRoles           *mongo.Collection
	DecorationTechniques *mongo.Collection
	Packaging            *mongo.Collection
	DeliveryZones        *mongo.Collection
	VolumeBreakpoints    *mongo.Collection
	Vendors              *mongo.Collection
	Orders               *mongo.Collection
	Quotes               *mongo.Collection
	Costings             *mongo.Collection
	ProductionTasks      *mongo.Collection
	TaskSignoffs         *mongo.Collection
	InventoryLots        *mongo.Collection
}

// NewMongoDB creates a new MongoDB connection with default configuration.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig creates a new MongoDB connection with custom configuration.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout)

	if cfg.EnableCompression {
		clientOptions.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	clientOptions.SetRetryWrites(true)
	clientOptions.SetRetryReads(true)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(databaseName)
	mongoDB := &MongoDB{
		Client:               client,
		Database:             db,
		Recipes:              db.Collection("recipes"),
		Ingredients:          db.Collection("ingredients"),
		TierSizes:            db.Collection("tier_sizes"),
		LaborRoles:           db.Collection("labor_roles"),
		DecorationTechniques: db.Collection("decoration_techniques"),
		Packaging:            db.Collection("packaging"),
		DeliveryZones:        db.Collection("delivery_zones"),
		VolumeBreakpoints:    db.Collection("volume_breakpoints"),
		Vendors:              db.Collection("vendors"),
		Orders:               db.Collection("orders"),
		Quotes:               db.Collection("quotes"),
		Costings:             db.Collection("costings"),
		ProductionTasks:      db.Collection("production_tasks"),
		TaskSignoffs:         db.Collection("task_signoffs"),
		InventoryLots:        db.Collection("inventory_lots"),
	}

	if err := mongoDB.createIndexes(ctx); err != nil {
		return nil, err
	}

	return mongoDB, nil
}

// createIndexes creates necessary indexes for collections.
// Errors on individual secondary indexes are ignored; the index might already
// exist with different options and the service still works without it.
func (m *MongoDB) createIndexes(ctx context.Context) error {
	recipeTypeIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"type": 1},
		Options: options.Index().SetUnique(false),
	}
	if _, err := m.Recipes.Indexes().CreateOne(ctx, recipeTypeIndex); err != nil {
		return err
	}

	breakpointMenuItemIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"menu_item_id": 1},
		Options: options.Index().SetUnique(false),
	}
	_, _ = m.VolumeBreakpoints.Indexes().CreateOne(ctx, breakpointMenuItemIndex)

	breakpointProductTypeIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"product_type_id": 1},
		Options: options.Index().SetUnique(false),
	}
	_, _ = m.VolumeBreakpoints.Indexes().CreateOne(ctx, breakpointProductTypeIndex)

	quoteChainIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"original_quote_id": 1},
		Options: options.Index().SetUnique(false),
	}
	_, _ = m.Quotes.Indexes().CreateOne(ctx, quoteChainIndex)

	// A version is claimed at most once per chain. Partial so root quotes,
	// which carry no original_quote_id, do not collide across chains.
	quoteVersionIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "original_quote_id", Value: 1}, {Key: "version", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"original_quote_id": bson.M{"$exists": true}}),
	}
	_, _ = m.Quotes.Indexes().CreateOne(ctx, quoteVersionIndex)

	costingOrderVersionIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"order_id": 1, "version": -1},
		Options: options.Index().SetUnique(false),
	}
	_, _ = m.Costings.Indexes().CreateOne(ctx, costingOrderVersionIndex)

	taskOrderIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"order_id": 1},
		Options: options.Index().SetUnique(false),
	}
	_, _ = m.ProductionTasks.Indexes().CreateOne(ctx, taskOrderIndex)

	taskDependsIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"depends_on_id": 1},
		Options: options.Index().SetUnique(false),
	}
	_, _ = m.ProductionTasks.Indexes().CreateOne(ctx, taskDependsIndex)

	signoffTaskIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"task_id": 1},
		Options: options.Index().SetUnique(false),
	}
	_, _ = m.TaskSignoffs.Indexes().CreateOne(ctx, signoffTaskIndex)

	lotSKUIndex := mongo.IndexModel{
		Keys:    map[string]interface{}{"sku": 1, "produced_at": 1},
		Options: options.Index().SetUnique(false),
	}
	_, _ = m.InventoryLots.Indexes().CreateOne(ctx, lotSKUIndex)

	return nil
}

// Close closes the MongoDB connection.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck verifies the MongoDB connection is healthy.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
