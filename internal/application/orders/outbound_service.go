package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/orders"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	outboundSequence        = "outbound_order"
	deliveryReceiptSequence = "delivery_receipt"
)

// OutboundService handles outbound order operations: creation with an
// overbooking check, FEFO dispatch under a delivery receipt number, and
// post-dispatch amendment.
type OutboundService struct {
	outboundRepo orders.OutboundOrderRepository
	customerRepo partner.CustomerRepository
	lotRepo      inventory.LotRepository
	txScope      TransactionScope
	logger       *zap.Logger
}

// NewOutboundService creates a new OutboundService
func NewOutboundService(
	outboundRepo orders.OutboundOrderRepository,
	customerRepo partner.CustomerRepository,
	lotRepo inventory.LotRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *OutboundService {
	return &OutboundService{
		outboundRepo: outboundRepo,
		customerRepo: customerRepo,
		lotRepo:      lotRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// Create creates a pending outbound order. Each line must fit within the
// product's available stock, counting the reservations other pending orders
// already hold.
func (s *OutboundService) Create(ctx context.Context, req CreateOutboundOrderRequest) (*OutboundOrderResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Cannot create orders for an inactive customer")
	}

	var response OutboundOrderResponse
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Sum requested quantity per product so duplicate lines cannot
		// slip past the availability check.
		requested := make(map[uuid.UUID]decimal.Decimal)
		for _, line := range req.Lines {
			if !line.Quantity.IsPositive() {
				return shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
			}
			requested[line.ProductID] = requested[line.ProductID].Add(line.Quantity)
		}

		for productID, quantity := range requested {
			availability, err := s.productAvailability(ctx, repos, productID)
			if err != nil {
				return err
			}
			if !availability.CanFulfil(quantity) {
				return shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Requested %s of product %s but only %s available", quantity, productID, availability.Available))
			}
		}

		seq, err := repos.SequenceRepo().Next(ctx, outboundSequence)
		if err != nil {
			return err
		}

		order, err := orders.NewOutboundOrder(fmt.Sprintf("SO-%06d", seq), req.CustomerID, req.RequiredBy)
		if err != nil {
			return err
		}
		order.Note = req.Note

		for _, line := range req.Lines {
			if err := order.AddLine(line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		if err := repos.OutboundRepo().Save(ctx, order); err != nil {
			return err
		}

		response = ToOutboundOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("outbound order created",
		zap.String("order_number", response.OrderNumber),
		zap.String("customer_id", req.CustomerID.String()))

	return &response, nil
}

// GetByID retrieves an outbound order by ID
func (s *OutboundService) GetByID(ctx context.Context, orderID uuid.UUID) (*OutboundOrderResponse, error) {
	order, err := s.outboundRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToOutboundOrderResponse(order)
	return &response, nil
}

// List retrieves outbound orders with filtering and pagination
func (s *OutboundService) List(ctx context.Context, filter OrderListFilter) ([]OutboundOrderResponse, int64, error) {
	domainFilter := buildOrderFilter(filter)

	list, err := s.outboundRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.outboundRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOutboundOrderResponses(list), total, nil
}

// Dispatch consumes stock for every line in FEFO order, records a dispatch
// movement per consumed lot, and stamps the order with the next delivery
// receipt number. The whole operation commits or rolls back as one unit, so
// a shortage on any line leaves all lots untouched.
func (s *OutboundService) Dispatch(ctx context.Context, orderID uuid.UUID) (*OutboundOrderResponse, error) {
	var response OutboundOrderResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OutboundRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.IsPending() {
			return shared.NewDomainError("INVALID_STATE", "Only pending orders can be dispatched")
		}

		seq, err := repos.SequenceRepo().Next(ctx, deliveryReceiptSequence)
		if err != nil {
			return err
		}
		drNumber := fmt.Sprintf("DR-%06d", seq)

		for i := range order.Lines {
			line := &order.Lines[i]

			lots, err := repos.LotRepo().FindStockedByProduct(ctx, line.ProductID)
			if err != nil {
				return err
			}

			allocations, err := inventory.AllocateFEFO(lots, line.Quantity)
			if err != nil {
				return err
			}

			for _, alloc := range allocations {
				if err := alloc.Lot.Deduct(alloc.Quantity); err != nil {
					return err
				}

				movement, err := inventory.NewStockMovement(alloc.Lot, inventory.MovementTypeDispatch, alloc.Quantity.Neg(), &order.ID, drNumber, "")
				if err != nil {
					return err
				}

				if err := repos.LotRepo().Save(ctx, alloc.Lot); err != nil {
					return err
				}
				if err := repos.MovementRepo().Save(ctx, movement); err != nil {
					return err
				}
			}
		}

		if err := order.Dispatch(drNumber); err != nil {
			return err
		}

		if err := repos.OutboundRepo().Save(ctx, order); err != nil {
			return err
		}

		response = ToOutboundOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("outbound order dispatched",
		zap.String("order_number", response.OrderNumber),
		zap.String("dr_number", response.DRNumber))

	return &response, nil
}

// Amend changes one line's quantity on a dispatched order under the same
// delivery receipt number. A decrease flows stock back onto the lots the
// dispatch consumed, refilling the last-picked lot first. An increase
// deducts the extra quantity FEFO like a dispatch would.
func (s *OutboundService) Amend(ctx context.Context, orderID uuid.UUID, req AmendOutboundOrderRequest) (*OutboundOrderResponse, error) {
	var response OutboundOrderResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OutboundRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		delta, err := order.AmendLine(req.ProductID, req.Quantity)
		if err != nil {
			return err
		}

		if delta.IsPositive() {
			if err := s.deductExtra(ctx, repos, order, req.ProductID, delta, req.Note); err != nil {
				return err
			}
		} else {
			if err := s.returnStock(ctx, repos, order, req.ProductID, delta.Neg(), req.Note); err != nil {
				return err
			}
		}

		if err := repos.OutboundRepo().Save(ctx, order); err != nil {
			return err
		}

		response = ToOutboundOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("outbound order amended",
		zap.String("order_number", response.OrderNumber),
		zap.String("product_id", req.ProductID.String()),
		zap.String("quantity", req.Quantity.String()))

	return &response, nil
}

// Cancel cancels a pending outbound order, releasing its reservation
func (s *OutboundService) Cancel(ctx context.Context, orderID uuid.UUID) (*OutboundOrderResponse, error) {
	order, err := s.outboundRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}

	if err := s.outboundRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOutboundOrderResponse(order)
	return &response, nil
}

// GetAvailability computes the stock position for one product
func (s *OutboundService) GetAvailability(ctx context.Context, productID uuid.UUID) (inventory.Availability, error) {
	onHand, err := s.lotRepo.SumOnHand(ctx, productID)
	if err != nil {
		return inventory.Availability{}, err
	}

	reserved, err := s.outboundRepo.SumReserved(ctx, productID)
	if err != nil {
		return inventory.Availability{}, err
	}

	return inventory.NewAvailability(productID, onHand, reserved), nil
}

func (s *OutboundService) productAvailability(ctx context.Context, repos TransactionalRepositories, productID uuid.UUID) (inventory.Availability, error) {
	onHand, err := repos.LotRepo().SumOnHand(ctx, productID)
	if err != nil {
		return inventory.Availability{}, err
	}

	reserved, err := repos.OutboundRepo().SumReserved(ctx, productID)
	if err != nil {
		return inventory.Availability{}, err
	}

	return inventory.NewAvailability(productID, onHand, reserved), nil
}

// deductExtra picks additional stock FEFO for an upward amendment. The extra
// quantity must fit within available stock so pending orders keep their
// reservations.
func (s *OutboundService) deductExtra(ctx context.Context, repos TransactionalRepositories, order *orders.OutboundOrder, productID uuid.UUID, extra decimal.Decimal, note string) error {
	availability, err := s.productAvailability(ctx, repos, productID)
	if err != nil {
		return err
	}
	if !availability.CanFulfil(extra) {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Amendment needs %s more but only %s available", extra, availability.Available))
	}

	lots, err := repos.LotRepo().FindStockedByProduct(ctx, productID)
	if err != nil {
		return err
	}

	allocations, err := inventory.AllocateFEFO(lots, extra)
	if err != nil {
		return err
	}

	for _, alloc := range allocations {
		if err := alloc.Lot.Deduct(alloc.Quantity); err != nil {
			return err
		}

		movement, err := inventory.NewStockMovement(alloc.Lot, inventory.MovementTypeAmendment, alloc.Quantity.Neg(), &order.ID, order.DRNumber, note)
		if err != nil {
			return err
		}

		if err := repos.LotRepo().Save(ctx, alloc.Lot); err != nil {
			return err
		}
		if err := repos.MovementRepo().Save(ctx, movement); err != nil {
			return err
		}
	}

	return nil
}

// returnStock flows quantity from a downward amendment back onto the lots
// the order's movements consumed. The net outflow per lot is rebuilt from
// the movement history, then refilled in reverse picking order.
func (s *OutboundService) returnStock(ctx context.Context, repos TransactionalRepositories, order *orders.OutboundOrder, productID uuid.UUID, returned decimal.Decimal, note string) error {
	movements, err := repos.MovementRepo().FindByReference(ctx, order.ID)
	if err != nil {
		return err
	}

	netOutflow := make(map[uuid.UUID]decimal.Decimal)
	for _, m := range movements {
		if m.ProductID != productID {
			continue
		}
		netOutflow[m.LotID] = netOutflow[m.LotID].Sub(m.Quantity)
	}

	lotIDs := make([]uuid.UUID, 0, len(netOutflow))
	for lotID, qty := range netOutflow {
		if qty.IsPositive() {
			lotIDs = append(lotIDs, lotID)
		}
	}
	if len(lotIDs) == 0 {
		return shared.NewDomainError("INVALID_STATE", "Order has no dispatched stock for this product")
	}

	lots, err := repos.LotRepo().FindByIDs(ctx, lotIDs)
	if err != nil {
		return err
	}

	// Expiry dates never change, so FEFO-sorting the consumed lots
	// reproduces the original picking order.
	inventory.SortFEFO(lots)
	picked := make([]inventory.LotAllocation, 0, len(lots))
	for _, lot := range lots {
		picked = append(picked, inventory.LotAllocation{Lot: lot, Quantity: netOutflow[lot.ID]})
	}

	returns, err := inventory.AllocateReturnLIFO(picked, returned)
	if err != nil {
		return err
	}

	for _, ret := range returns {
		if err := ret.Lot.Add(ret.Quantity); err != nil {
			return err
		}

		movement, err := inventory.NewStockMovement(ret.Lot, inventory.MovementTypeAmendment, ret.Quantity, &order.ID, order.DRNumber, note)
		if err != nil {
			return err
		}

		if err := repos.LotRepo().Save(ctx, ret.Lot); err != nil {
			return err
		}
		if err := repos.MovementRepo().Save(ctx, movement); err != nil {
			return err
		}
	}

	return nil
}
