package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryMethod distinguishes pickup orders from delivered ones.
type DeliveryMethod string

const (
	DeliveryPickup  DeliveryMethod = "PICKUP"
	DeliveryCourier DeliveryMethod = "DELIVERY"
)

// TopperType selects an entry in the fixed topper fee table.
type TopperType string

const (
	TopperNone     TopperType = "NONE"
	TopperStandard TopperType = "STANDARD"
	TopperCustom   TopperType = "CUSTOM"
)

// DiscountType distinguishes flat-amount discounts from percentage ones.
type DiscountType string

const (
	DiscountAmount  DiscountType = "AMOUNT"
	DiscountPercent DiscountType = "PERCENT"
)

// Discount is applied to the suggested price during finalization.
// For DiscountPercent, Value is expressed as a percentage (10 means 10%).
type Discount struct {
	Type  DiscountType `bson:"type" json:"type"`
	Value float64      `bson:"value" json:"value"`
}

// OrderTier is one layer of a cake order or quote.
// TierIndex orders tiers bottom-up and is unique within the order.
// Explicit recipe refs win over the free-text hints; hints drive keyword matching.
type OrderTier struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TierIndex          int                 `bson:"tier_index" json:"tier_index"`
	TierSizeID         primitive.ObjectID  `bson:"tier_size_id" json:"tier_size_id"`
	BatterRecipeID     *primitive.ObjectID `bson:"batter_recipe_id,omitempty" json:"batter_recipe_id,omitempty"`
	BatterMultiplier   *float64            `bson:"batter_multiplier,omitempty" json:"batter_multiplier,omitempty"`
	FillingRecipeID    *primitive.ObjectID `bson:"filling_recipe_id,omitempty" json:"filling_recipe_id,omitempty"`
	FillingMultiplier  *float64            `bson:"filling_multiplier,omitempty" json:"filling_multiplier,omitempty"`
	FrostingRecipeID   *primitive.ObjectID `bson:"frosting_recipe_id,omitempty" json:"frosting_recipe_id,omitempty"`
	FrostingMultiplier *float64            `bson:"frosting_multiplier,omitempty" json:"frosting_multiplier,omitempty"`
	Flavor             string              `bson:"flavor,omitempty" json:"flavor,omitempty"`
	Filling            string              `bson:"filling,omitempty" json:"filling,omitempty"`
	Finish             string              `bson:"finish,omitempty" json:"finish,omitempty"`
	FinishType         string              `bson:"finish_type,omitempty" json:"finish_type,omitempty"`
	Color              string              `bson:"color,omitempty" json:"color,omitempty"`
}

// OrderDecoration attaches a decoration technique to an order with a quantity.
type OrderDecoration struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TechniqueID         primitive.ObjectID `bson:"technique_id" json:"technique_id"`
	Quantity            int                `bson:"quantity" json:"quantity"`
	CostPerUnitOverride *float64           `bson:"cost_per_unit_override,omitempty" json:"cost_per_unit_override,omitempty"`
}

// OrderItem is a priced menu line item subject to volume discounting.
type OrderItem struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name          string              `bson:"name" json:"name"`
	MenuItemID    *primitive.ObjectID `bson:"menu_item_id,omitempty" json:"menu_item_id,omitempty"`
	ProductTypeID *primitive.ObjectID `bson:"product_type_id,omitempty" json:"product_type_id,omitempty"`
	Quantity      int                 `bson:"quantity" json:"quantity"`
	UnitPrice     float64             `bson:"unit_price" json:"unit_price"`
}

// PackagingSelection is one packaging SKU and quantity on an order.
type PackagingSelection struct {
	PackagingID primitive.ObjectID `bson:"packaging_id" json:"packaging_id"`
	Quantity    int                `bson:"quantity" json:"quantity"`
}

// DeliveryInfo carries the order's delivery selections.
// Lat/Lng, when present, feed the distance provider; ZoneID pins a zone explicitly.
type DeliveryInfo struct {
	Method  DeliveryMethod      `bson:"method" json:"method"`
	Address string              `bson:"address,omitempty" json:"address,omitempty"`
	Lat     *float64            `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng     *float64            `bson:"lng,omitempty" json:"lng,omitempty"`
	ZoneID  *primitive.ObjectID `bson:"zone_id,omitempty" json:"zone_id,omitempty"`
}

// CostingInput is the order-shaped document the costing engine operates on.
// Orders and quotes embed it, and preview requests supply it directly.
type CostingInput struct {
	Tiers            []OrderTier          `bson:"tiers" json:"tiers"`
	Decorations      []OrderDecoration    `bson:"decorations,omitempty" json:"decorations,omitempty"`
	Items            []OrderItem          `bson:"items,omitempty" json:"items,omitempty"`
	Packaging        []PackagingSelection `bson:"packaging,omitempty" json:"packaging,omitempty"`
	Delivery         DeliveryInfo         `bson:"delivery" json:"delivery"`
	TopperType       TopperType           `bson:"topper_type,omitempty" json:"topper_type,omitempty"`
	CustomTopperFee  float64              `bson:"custom_topper_fee,omitempty" json:"custom_topper_fee,omitempty"`
	MarkupPercent    *float64             `bson:"markup_percent,omitempty" json:"markup_percent,omitempty"`
	Discount         *Discount            `bson:"discount,omitempty" json:"discount,omitempty"`
	ManualAdjustment *float64             `bson:"manual_adjustment,omitempty" json:"manual_adjustment,omitempty"`
}

// ProductionStatus is the order-level production lifecycle.
type ProductionStatus string

const (
	ProductionNotStarted ProductionStatus = "NOT_STARTED"
	ProductionInProgress ProductionStatus = "IN_PRODUCTION"
	ProductionReady      ProductionStatus = "READY"
)

// Order is the root aggregate for a confirmed order.
// Tiers, decorations, and selections are embedded so persistence of the
// aggregate is atomic at the document level.
type Order struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Number           string             `bson:"number" json:"number"`
	CustomerName     string             `bson:"customer_name" json:"customer_name"`
	EventDate        time.Time          `bson:"event_date" json:"event_date"`
	CostingInput     `bson:",inline"`
	ProductionStatus ProductionStatus `bson:"production_status" json:"production_status"`
	CreatedAt        time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `bson:"updated_at" json:"updated_at"`
}

// QuoteStatus is the quote lifecycle.
type QuoteStatus string

const (
	QuoteDraft      QuoteStatus = "DRAFT"
	QuoteSent       QuoteStatus = "SENT"
	QuoteAccepted   QuoteStatus = "ACCEPTED"
	QuoteSuperseded QuoteStatus = "SUPERSEDED"
)

// Quote is a priced proposal. Revisions form an immutable chain: every
// revision points at the chain's root via OriginalQuoteID, and Version strictly
// increases along the chain.
type Quote struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Number          string              `bson:"number" json:"number"`
	CustomerName    string              `bson:"customer_name" json:"customer_name"`
	EventDate       time.Time           `bson:"event_date" json:"event_date"`
	CostingInput    `bson:",inline"`
	OriginalQuoteID *primitive.ObjectID `bson:"original_quote_id,omitempty" json:"original_quote_id,omitempty"`
	Version         int                 `bson:"version" json:"version"`
	Status          QuoteStatus         `bson:"status" json:"status"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updated_at"`
}

// RootID returns the id of the revision chain's root quote.
func (q *Quote) RootID() primitive.ObjectID {
	if q.OriginalQuoteID != nil {
		return *q.OriginalQuoteID
	}
	return q.ID
}
