package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/orders"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
)

// In-memory repositories for exercising order flows end to end without a
// database. They implement just enough of the repository contracts for the
// service tests.

type fakeLotRepo struct {
	lots map[uuid.UUID]*inventory.InventoryLot
}

func newFakeLotRepo() *fakeLotRepo {
	return &fakeLotRepo{lots: make(map[uuid.UUID]*inventory.InventoryLot)}
}

func (r *fakeLotRepo) put(lot *inventory.InventoryLot) {
	r.lots[lot.ID] = lot
}

func (r *fakeLotRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.InventoryLot, error) {
	lot, ok := r.lots[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return lot, nil
}

func (r *fakeLotRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.InventoryLot, error) {
	out := make([]inventory.InventoryLot, 0, len(r.lots))
	for _, lot := range r.lots {
		out = append(out, *lot)
	}
	return out, nil
}

func (r *fakeLotRepo) FindByProduct(_ context.Context, productID uuid.UUID) ([]*inventory.InventoryLot, error) {
	var out []*inventory.InventoryLot
	for _, lot := range r.lots {
		if lot.ProductID == productID {
			out = append(out, lot)
		}
	}
	return out, nil
}

func (r *fakeLotRepo) FindStockedByProduct(_ context.Context, productID uuid.UUID) ([]*inventory.InventoryLot, error) {
	var out []*inventory.InventoryLot
	for _, lot := range r.lots {
		if lot.ProductID == productID && lot.HasStock() {
			out = append(out, lot)
		}
	}
	return out, nil
}

func (r *fakeLotRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*inventory.InventoryLot, error) {
	var out []*inventory.InventoryLot
	for _, id := range ids {
		if lot, ok := r.lots[id]; ok {
			out = append(out, lot)
		}
	}
	return out, nil
}

func (r *fakeLotRepo) Save(_ context.Context, lot *inventory.InventoryLot) error {
	r.lots[lot.ID] = lot
	return nil
}

func (r *fakeLotRepo) SaveAll(ctx context.Context, lots []*inventory.InventoryLot) error {
	for _, lot := range lots {
		if err := r.Save(ctx, lot); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeLotRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.lots, id)
	return nil
}

func (r *fakeLotRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.lots)), nil
}

func (r *fakeLotRepo) SumOnHand(_ context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, lot := range r.lots {
		if lot.ProductID == productID {
			total = total.Add(lot.Quantity)
		}
	}
	return total, nil
}

var _ inventory.LotRepository = (*fakeLotRepo)(nil)

type fakeMovementRepo struct {
	movements []*inventory.StockMovement
}

func newFakeMovementRepo() *fakeMovementRepo {
	return &fakeMovementRepo{}
}

func (r *fakeMovementRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeMovementRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.StockMovement, error) {
	out := make([]inventory.StockMovement, 0, len(r.movements))
	for _, m := range r.movements {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMovementRepo) FindByReference(_ context.Context, referenceID uuid.UUID) ([]*inventory.StockMovement, error) {
	var out []*inventory.StockMovement
	for _, m := range r.movements {
		if m.ReferenceID != nil && *m.ReferenceID == referenceID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) Save(_ context.Context, movement *inventory.StockMovement) error {
	r.movements = append(r.movements, movement)
	return nil
}

func (r *fakeMovementRepo) SaveAll(ctx context.Context, movements []*inventory.StockMovement) error {
	for _, m := range movements {
		if err := r.Save(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeMovementRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.movements)), nil
}

var _ inventory.MovementRepository = (*fakeMovementRepo)(nil)

type fakeOutboundRepo struct {
	orders map[uuid.UUID]*orders.OutboundOrder
}

func newFakeOutboundRepo() *fakeOutboundRepo {
	return &fakeOutboundRepo{orders: make(map[uuid.UUID]*orders.OutboundOrder)}
}

func (r *fakeOutboundRepo) FindByID(_ context.Context, id uuid.UUID) (*orders.OutboundOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (r *fakeOutboundRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*orders.OutboundOrder, error) {
	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOutboundRepo) FindAll(_ context.Context, _ shared.Filter) ([]orders.OutboundOrder, error) {
	out := make([]orders.OutboundOrder, 0, len(r.orders))
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (r *fakeOutboundRepo) Save(_ context.Context, order *orders.OutboundOrder) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOutboundRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeOutboundRepo) SumReserved(_ context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, order := range r.orders {
		if !order.IsPending() {
			continue
		}
		for i := range order.Lines {
			if order.Lines[i].ProductID == productID {
				total = total.Add(order.Lines[i].Quantity)
			}
		}
	}
	return total, nil
}

var _ orders.OutboundOrderRepository = (*fakeOutboundRepo)(nil)

type fakeInboundRepo struct {
	orders map[uuid.UUID]*orders.InboundOrder
}

func newFakeInboundRepo() *fakeInboundRepo {
	return &fakeInboundRepo{orders: make(map[uuid.UUID]*orders.InboundOrder)}
}

func (r *fakeInboundRepo) FindByID(_ context.Context, id uuid.UUID) (*orders.InboundOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (r *fakeInboundRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*orders.InboundOrder, error) {
	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeInboundRepo) FindAll(_ context.Context, _ shared.Filter) ([]orders.InboundOrder, error) {
	out := make([]orders.InboundOrder, 0, len(r.orders))
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (r *fakeInboundRepo) Save(_ context.Context, order *orders.InboundOrder) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeInboundRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

var _ orders.InboundOrderRepository = (*fakeInboundRepo)(nil)

type fakeSequenceRepo struct {
	counters map[string]int64
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{counters: make(map[string]int64)}
}

func (r *fakeSequenceRepo) Next(_ context.Context, name string) (int64, error) {
	r.counters[name]++
	return r.counters[name], nil
}

var _ orders.SequenceRepository = (*fakeSequenceRepo)(nil)

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*partner.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*partner.Customer)}
}

func (r *fakeCustomerRepo) put(c *partner.Customer) {
	r.customers[c.ID] = c
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *fakeCustomerRepo) FindByCode(_ context.Context, code string) (*partner.Customer, error) {
	for _, c := range r.customers {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCustomerRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Customer, error) {
	out := make([]partner.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Save(_ context.Context, c *partner.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.customers)), nil
}

func (r *fakeCustomerRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, c := range r.customers {
		if c.Code == code {
			return true, nil
		}
	}
	return false, nil
}

var _ partner.CustomerRepository = (*fakeCustomerRepo)(nil)

type fakeSupplierRepo struct {
	suppliers map[uuid.UUID]*partner.Supplier
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{suppliers: make(map[uuid.UUID]*partner.Supplier)}
}

func (r *fakeSupplierRepo) put(s *partner.Supplier) {
	r.suppliers[s.ID] = s
}

func (r *fakeSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return s, nil
}

func (r *fakeSupplierRepo) FindByCode(_ context.Context, code string) (*partner.Supplier, error) {
	for _, s := range r.suppliers {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSupplierRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Supplier, error) {
	out := make([]partner.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSupplierRepo) Save(_ context.Context, s *partner.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *fakeSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.suppliers, id)
	return nil
}

func (r *fakeSupplierRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.suppliers)), nil
}

func (r *fakeSupplierRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, s := range r.suppliers {
		if s.Code == code {
			return true, nil
		}
	}
	return false, nil
}

var _ partner.SupplierRepository = (*fakeSupplierRepo)(nil)

type fakeLocationRepo struct {
	locations map[uuid.UUID]*partner.StorageLocation
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[uuid.UUID]*partner.StorageLocation)}
}

func (r *fakeLocationRepo) put(l *partner.StorageLocation) {
	r.locations[l.ID] = l
}

func (r *fakeLocationRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.StorageLocation, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return l, nil
}

func (r *fakeLocationRepo) FindByCode(_ context.Context, code string) (*partner.StorageLocation, error) {
	for _, l := range r.locations {
		if l.Code == code {
			return l, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeLocationRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.StorageLocation, error) {
	out := make([]partner.StorageLocation, 0, len(r.locations))
	for _, l := range r.locations {
		out = append(out, *l)
	}
	return out, nil
}

func (r *fakeLocationRepo) Save(_ context.Context, l *partner.StorageLocation) error {
	r.locations[l.ID] = l
	return nil
}

func (r *fakeLocationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.locations, id)
	return nil
}

func (r *fakeLocationRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.locations)), nil
}

func (r *fakeLocationRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, l := range r.locations {
		if l.Code == code {
			return true, nil
		}
	}
	return false, nil
}

var _ partner.StorageLocationRepository = (*fakeLocationRepo)(nil)
