package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InventoryLot is one produced batch of a SKU. Lots are consumed oldest-first
// when computing available stock.
type InventoryLot struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SKU        string             `bson:"sku" json:"sku"`
	Quantity   float64            `bson:"quantity" json:"quantity"`
	ProducedAt time.Time          `bson:"produced_at" json:"produced_at"`
	ExpiresAt  time.Time          `bson:"expires_at" json:"expires_at"`
}

// Expired reports whether the lot is past its expiry at the given time.
func (l InventoryLot) Expired(at time.Time) bool {
	return !l.ExpiresAt.IsZero() && !at.Before(l.ExpiresAt)
}

// LotDraw is one lot's contribution to a FIFO consumption plan.
type LotDraw struct {
	LotID      primitive.ObjectID `json:"lot_id"`
	Quantity   float64            `json:"quantity"`
	ProducedAt time.Time          `json:"produced_at"`
}

// StockAvailability is the FIFO view of a SKU's usable stock.
type StockAvailability struct {
	SKU       string    `json:"sku"`
	Available float64   `json:"available"`
	Lots      []LotDraw `json:"lots"`
}
