package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/orders"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const inboundSequence = "inbound_order"

// InboundService handles inbound order operations
type InboundService struct {
	inboundRepo  orders.InboundOrderRepository
	supplierRepo partner.SupplierRepository
	locationRepo partner.StorageLocationRepository
	txScope      TransactionScope
	logger       *zap.Logger
}

// NewInboundService creates a new InboundService
func NewInboundService(
	inboundRepo orders.InboundOrderRepository,
	supplierRepo partner.SupplierRepository,
	locationRepo partner.StorageLocationRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *InboundService {
	return &InboundService{
		inboundRepo:  inboundRepo,
		supplierRepo: supplierRepo,
		locationRepo: locationRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// Create creates a pending inbound order
func (s *InboundService) Create(ctx context.Context, req CreateInboundOrderRequest) (*InboundOrderResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsActive() {
		return nil, shared.NewDomainError("SUPPLIER_INACTIVE", "Cannot order from an inactive supplier")
	}

	location, err := s.locationRepo.FindByID(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}
	if !location.IsActive() {
		return nil, shared.NewDomainError("LOCATION_INACTIVE", "Cannot receive into an inactive location")
	}

	var response InboundOrderResponse
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		seq, err := repos.SequenceRepo().Next(ctx, inboundSequence)
		if err != nil {
			return err
		}

		order, err := orders.NewInboundOrder(fmt.Sprintf("PO-%06d", seq), req.SupplierID, req.LocationID, req.ExpectedAt)
		if err != nil {
			return err
		}
		order.Note = req.Note

		for _, line := range req.Lines {
			if err := order.AddLine(line.ProductID, line.Quantity, line.LotNumber, line.ExpiryDate); err != nil {
				return err
			}
		}

		if err := repos.InboundRepo().Save(ctx, order); err != nil {
			return err
		}

		response = ToInboundOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("inbound order created",
		zap.String("order_number", response.OrderNumber),
		zap.String("supplier_id", req.SupplierID.String()))

	return &response, nil
}

// GetByID retrieves an inbound order by ID
func (s *InboundService) GetByID(ctx context.Context, orderID uuid.UUID) (*InboundOrderResponse, error) {
	order, err := s.inboundRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToInboundOrderResponse(order)
	return &response, nil
}

// List retrieves inbound orders with filtering and pagination
func (s *InboundService) List(ctx context.Context, filter OrderListFilter) ([]InboundOrderResponse, int64, error) {
	domainFilter := buildOrderFilter(filter)

	list, err := s.inboundRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.inboundRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToInboundOrderResponses(list), total, nil
}

// Receive marks a pending order as received and books one inventory lot per
// line, each with a receipt movement. Everything commits atomically.
func (s *InboundService) Receive(ctx context.Context, orderID uuid.UUID) (*InboundOrderResponse, error) {
	var response InboundOrderResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.InboundRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if err := order.Receive(); err != nil {
			return err
		}

		for i := range order.Lines {
			line := &order.Lines[i]

			lotNumber := line.LotNumber
			if lotNumber == "" {
				lotNumber = fmt.Sprintf("%s-%d", order.OrderNumber, i+1)
			}

			lot, err := inventory.NewInventoryLot(line.ProductID, order.LocationID, lotNumber, line.Quantity, line.ExpiryDate)
			if err != nil {
				return err
			}

			movement, err := inventory.NewStockMovement(lot, inventory.MovementTypeReceipt, line.Quantity, &order.ID, order.OrderNumber, "")
			if err != nil {
				return err
			}

			if err := repos.LotRepo().Save(ctx, lot); err != nil {
				return err
			}
			if err := repos.MovementRepo().Save(ctx, movement); err != nil {
				return err
			}
		}

		if err := repos.InboundRepo().Save(ctx, order); err != nil {
			return err
		}

		response = ToInboundOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("inbound order received",
		zap.String("order_number", response.OrderNumber),
		zap.Int("lines", len(response.Lines)))

	return &response, nil
}

// Cancel cancels a pending inbound order
func (s *InboundService) Cancel(ctx context.Context, orderID uuid.UUID) (*InboundOrderResponse, error) {
	order, err := s.inboundRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}

	if err := s.inboundRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToInboundOrderResponse(order)
	return &response, nil
}

func buildOrderFilter(filter OrderListFilter) shared.Filter {
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
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}
