package orders

import (
	"context"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/orders"
)

// TransactionScope provides transactional access to the repositories an
// order operation touches. Receiving, dispatching, and amending all mutate
// orders and lots together, so every repository returned by
// TransactionalRepositories shares one database transaction.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to order and inventory
// repositories within a transaction
type TransactionalRepositories interface {
	InboundRepo() orders.InboundOrderRepository
	OutboundRepo() orders.OutboundOrderRepository
	LotRepo() inventory.LotRepository
	MovementRepo() inventory.MovementRepository
	SequenceRepo() orders.SequenceRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	inboundRepo  orders.InboundOrderRepository
	outboundRepo orders.OutboundOrderRepository
	lotRepo      inventory.LotRepository
	movementRepo inventory.MovementRepository
	sequenceRepo orders.SequenceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	inboundRepo orders.InboundOrderRepository,
	outboundRepo orders.OutboundOrderRepository,
	lotRepo inventory.LotRepository,
	movementRepo inventory.MovementRepository,
	sequenceRepo orders.SequenceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		inboundRepo:  inboundRepo,
		outboundRepo: outboundRepo,
		lotRepo:      lotRepo,
		movementRepo: movementRepo,
		sequenceRepo: sequenceRepo,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InboundRepo returns the inbound order repository
func (s *NoOpTransactionScope) InboundRepo() orders.InboundOrderRepository {
	return s.inboundRepo
}

// OutboundRepo returns the outbound order repository
func (s *NoOpTransactionScope) OutboundRepo() orders.OutboundOrderRepository {
	return s.outboundRepo
}

// LotRepo returns the lot repository
func (s *NoOpTransactionScope) LotRepo() inventory.LotRepository {
	return s.lotRepo
}

// MovementRepo returns the movement repository
func (s *NoOpTransactionScope) MovementRepo() inventory.MovementRepository {
	return s.movementRepo
}

// SequenceRepo returns the sequence repository
func (s *NoOpTransactionScope) SequenceRepo() orders.SequenceRepository {
	return s.sequenceRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
