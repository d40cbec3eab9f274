package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/orders"
	"github.com/wms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InventoryService exposes stock queries and manual adjustments.
// Availability is always computed on demand from lots and pending outbound
// orders, never cached.
type InventoryService struct {
	lotRepo      inventory.LotRepository
	movementRepo inventory.MovementRepository
	outboundRepo orders.OutboundOrderRepository
	txScope      TransactionScope
	logger       *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	lotRepo inventory.LotRepository,
	movementRepo inventory.MovementRepository,
	outboundRepo orders.OutboundOrderRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		lotRepo:      lotRepo,
		movementRepo: movementRepo,
		outboundRepo: outboundRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// GetAvailability computes the stock position for one product
func (s *InventoryService) GetAvailability(ctx context.Context, productID uuid.UUID) (*AvailabilityResponse, error) {
	onHand, err := s.lotRepo.SumOnHand(ctx, productID)
	if err != nil {
		return nil, err
	}

	reserved, err := s.outboundRepo.SumReserved(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToAvailabilityResponse(inventory.NewAvailability(productID, onHand, reserved))
	return &response, nil
}

// GetLot retrieves a single lot
func (s *InventoryService) GetLot(ctx context.Context, lotID uuid.UUID) (*LotResponse, error) {
	lot, err := s.lotRepo.FindByID(ctx, lotID)
	if err != nil {
		return nil, err
	}

	response := ToLotResponse(lot)
	return &response, nil
}

// ListLots retrieves lots with filtering and pagination
func (s *InventoryService) ListLots(ctx context.Context, filter LotListFilter) ([]LotResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.InStock {
		domainFilter.Filters["in_stock"] = true
	}

	lots, err := s.lotRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.lotRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToLotResponses(lots), total, nil
}

// ListMovements retrieves stock movements with filtering and pagination
func (s *InventoryService) ListMovements(ctx context.Context, filter MovementListFilter) ([]MovementResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.LotID != nil {
		domainFilter.Filters["lot_id"] = *filter.LotID
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}

	movements, err := s.movementRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.movementRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToMovementResponses(movements), total, nil
}

// AdjustStock sets a lot's quantity to a counted value and records an
// adjustment movement for the delta. Lot update and movement are committed
// atomically.
func (s *InventoryService) AdjustStock(ctx context.Context, req AdjustStockRequest) (*LotResponse, error) {
	var response LotResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		lot, err := repos.LotRepo().FindByID(ctx, req.LotID)
		if err != nil {
			return err
		}

		delta, err := lot.AdjustTo(req.Quantity)
		if err != nil {
			return err
		}
		if delta.IsZero() {
			return shared.NewDomainError("NO_CHANGE", "Counted quantity equals the current quantity")
		}

		movement, err := inventory.NewStockMovement(lot, inventory.MovementTypeAdjustment, delta, nil, "stock adjustment", req.Note)
		if err != nil {
			return err
		}

		if err := repos.LotRepo().Save(ctx, lot); err != nil {
			return err
		}
		if err := repos.MovementRepo().Save(ctx, movement); err != nil {
			return err
		}

		response = ToLotResponse(lot)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("lot_id", req.LotID.String()),
		zap.String("quantity", req.Quantity.String()))

	return &response, nil
}
