package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// LotAllocation is one lot's share of a picking plan
type LotAllocation struct {
	Lot      *InventoryLot
	Quantity decimal.Decimal
}

// SortFEFO orders lots for picking: earliest expiry first, lots without an
// expiry date last, receipt time as the tie-breaker so equal-expiry lots
// are consumed first-in first-out.
func SortFEFO(lots []*InventoryLot) {
	sort.SliceStable(lots, func(i, j int) bool {
		a, b := lots[i], lots[j]
		switch {
		case a.ExpiryDate == nil && b.ExpiryDate == nil:
			return a.ReceivedAt.Before(b.ReceivedAt)
		case a.ExpiryDate == nil:
			return false
		case b.ExpiryDate == nil:
			return true
		case a.ExpiryDate.Equal(*b.ExpiryDate):
			return a.ReceivedAt.Before(b.ReceivedAt)
		default:
			return a.ExpiryDate.Before(*b.ExpiryDate)
		}
	})
}

// AllocateFEFO plans which lots to pick to fulfil the requested quantity.
// Lots are consumed in FEFO order and the plan fails as a whole when the
// lots cannot cover the request.
func AllocateFEFO(lots []*InventoryLot, requested decimal.Decimal) ([]LotAllocation, error) {
	if !requested.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested quantity must be positive")
	}

	SortFEFO(lots)

	remaining := requested
	allocations := make([]LotAllocation, 0, len(lots))
	for _, lot := range lots {
		if !lot.HasStock() {
			continue
		}
		take := decimal.Min(lot.Quantity, remaining)
		allocations = append(allocations, LotAllocation{Lot: lot, Quantity: take})
		remaining = remaining.Sub(take)
		if remaining.IsZero() {
			return allocations, nil
		}
	}

	return nil, shared.ErrInsufficientStock
}

// AllocateReturnLIFO plans how to put quantity back onto the lots a dispatch
// consumed, in the reverse of picking order. Lots that were fully drained are
// refilled last-picked first so the stock profile matches what an undone pick
// would have left behind.
func AllocateReturnLIFO(picked []LotAllocation, returned decimal.Decimal) ([]LotAllocation, error) {
	if !returned.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Returned quantity must be positive")
	}

	remaining := returned
	allocations := make([]LotAllocation, 0, len(picked))
	for i := len(picked) - 1; i >= 0; i-- {
		give := decimal.Min(picked[i].Quantity, remaining)
		if give.IsZero() {
			continue
		}
		allocations = append(allocations, LotAllocation{Lot: picked[i].Lot, Quantity: give})
		remaining = remaining.Sub(give)
		if remaining.IsZero() {
			return allocations, nil
		}
	}

	return nil, shared.NewDomainError("INVALID_QUANTITY", "Cannot return more than was originally picked")
}
