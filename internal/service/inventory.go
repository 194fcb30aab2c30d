package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ovenline/bakeops/internal/domain/model"
	"github.com/ovenline/bakeops/internal/repository"
)

// InventoryService answers stock availability queries.
type InventoryService interface {
	// Availability returns the SKU's usable stock as a FIFO consumption plan:
	// unexpired lots oldest-first, expired lots excluded.
	Availability(ctx context.Context, sku string) (*model.StockAvailability, error)
}

// InventoryChecker implements InventoryService.
type InventoryChecker struct {
	lots repository.InventoryRepositoryInterface
	now  func() time.Time
}

// NewInventoryChecker creates a checker over the given lot repository.
func NewInventoryChecker(lots repository.InventoryRepositoryInterface) *InventoryChecker {
	return &InventoryChecker{lots: lots, now: time.Now}
}

// Availability implements InventoryService.
func (c *InventoryChecker) Availability(ctx context.Context, sku string) (*model.StockAvailability, error) {
	if sku == "" {
		return nil, fmt.Errorf("%w: sku is required", ErrInvalidInput)
	}

	lots, err := c.lots.LotsBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("load lots: %w", err)
	}

	at := c.now().UTC()
	avail := &model.StockAvailability{SKU: sku, Lots: []model.LotDraw{}}
	for _, lot := range lots {
		if lot.Expired(at) || lot.Quantity <= 0 {
			continue
		}
		avail.Available += lot.Quantity
		avail.Lots = append(avail.Lots, model.LotDraw{
			LotID:      lot.ID,
			Quantity:   lot.Quantity,
			ProducedAt: lot.ProducedAt,
		})
	}
	return avail, nil
}

// Plan returns the FIFO draw plan to cover quantity units of the SKU. The
// returned plan draws from oldest lots first; short reports whether available
// stock could not cover the request, in which case the plan drains everything.
func (c *InventoryChecker) Plan(ctx context.Context, sku string, quantity float64) ([]model.LotDraw, bool, error) {
	if quantity <= 0 {
		return nil, false, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	avail, err := c.Availability(ctx, sku)
	if err != nil {
		return nil, false, err
	}

	remaining := quantity
	var plan []model.LotDraw
	for _, lot := range avail.Lots {
		if remaining <= 0 {
			break
		}
		draw := lot
		if draw.Quantity > remaining {
			draw.Quantity = remaining
		}
		remaining -= draw.Quantity
		plan = append(plan, draw)
	}
	return plan, remaining > 0, nil
}
