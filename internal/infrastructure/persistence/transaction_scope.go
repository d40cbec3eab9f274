package persistence

import (
	"context"

	appinv "github.com/wms/backend/internal/application/inventory"
	apporders "github.com/wms/backend/internal/application/orders"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/orders"
	"gorm.io/gorm"
)

// GormInventoryTransactionScope implements the inventory application's
// TransactionScope using GORM transactions.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the function within a database transaction. An error rolls
// the transaction back.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

type gormInventoryRepositories struct {
	tx *gorm.DB
}

func (r *gormInventoryRepositories) LotRepo() inventory.LotRepository {
	return NewGormLotRepository(r.tx)
}

func (r *gormInventoryRepositories) MovementRepo() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

var _ appinv.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ appinv.TransactionalRepositories = (*gormInventoryRepositories)(nil)

// GormOrderTransactionScope implements the orders application's
// TransactionScope. Receiving, dispatching, and amending mutate orders,
// lots, movements, and sequences atomically through it.
type GormOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope
func NewGormOrderTransactionScope(db *gorm.DB) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db}
}

// Execute runs the function within a database transaction. An error rolls
// the transaction back.
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos apporders.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormOrderRepositories{tx: tx})
	})
}

type gormOrderRepositories struct {
	tx *gorm.DB
}

func (r *gormOrderRepositories) InboundRepo() orders.InboundOrderRepository {
	return NewGormInboundOrderRepository(r.tx)
}

func (r *gormOrderRepositories) OutboundRepo() orders.OutboundOrderRepository {
	return NewGormOutboundOrderRepository(r.tx)
}

func (r *gormOrderRepositories) LotRepo() inventory.LotRepository {
	return NewGormLotRepository(r.tx)
}

func (r *gormOrderRepositories) MovementRepo() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

func (r *gormOrderRepositories) SequenceRepo() orders.SequenceRepository {
	return NewGormSequenceRepository(r.tx)
}

var _ apporders.TransactionScope = (*GormOrderTransactionScope)(nil)
var _ apporders.TransactionalRepositories = (*gormOrderRepositories)(nil)
