package inventory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/restoqly/restopos-api/internal/domain"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

// Fakes en memoria para los casos de uso de inventario. Los Get devuelven
// copias y los Update escriben copias, igual que un repositorio real; el
// fakeTxRunner toma snapshot antes de fn y lo restaura ante error para
// reproducir el rollback.

type memLotRepo struct {
	lots       map[string]*entity.Lot
	warehouses map[string]*entity.Warehouse
	failCreate int // próximas creaciones fallan con ErrDuplicateInternalCode
}

func newMemLotRepo(warehouses map[string]*entity.Warehouse) *memLotRepo {
	return &memLotRepo{lots: make(map[string]*entity.Lot), warehouses: warehouses}
}

func (r *memLotRepo) Create(lot *entity.Lot) error {
	if r.failCreate > 0 {
		r.failCreate--
		return domain.ErrDuplicateInternalCode
	}
	c := *lot
	r.lots[lot.ID] = &c
	return nil
}

func (r *memLotRepo) GetByID(id string) (*entity.Lot, error) {
	lot, ok := r.lots[id]
	if !ok {
		return nil, nil
	}
	c := *lot
	return &c, nil
}

func (r *memLotRepo) GetByIDForUpdate(id string) (*entity.Lot, error) {
	return r.GetByID(id)
}

func (r *memLotRepo) FindByNumber(productID, warehouseID, lotNumber string) (*entity.Lot, error) {
	for _, lot := range r.lots {
		if lot.ProductID == productID && lot.WarehouseID == warehouseID && lot.LotNumber == lotNumber {
			c := *lot
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memLotRepo) findAvailable(match func(*entity.Lot) bool) []*entity.Lot {
	var out []*entity.Lot
	for _, lot := range r.lots {
		if lot.Status == entity.LotStatusAvailable && match(lot) {
			c := *lot
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EntryDate.Equal(out[j].EntryDate) {
			return out[i].EntryDate.Before(out[j].EntryDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *memLotRepo) FindAvailable(productID, warehouseID string) ([]*entity.Lot, error) {
	return r.findAvailable(func(l *entity.Lot) bool {
		return l.ProductID == productID && (warehouseID == "" || l.WarehouseID == warehouseID)
	}), nil
}

func (r *memLotRepo) FindAvailableForUpdate(productID, warehouseID string) ([]*entity.Lot, error) {
	return r.FindAvailable(productID, warehouseID)
}

func (r *memLotRepo) FindAvailableByBranchForUpdate(productID, branchID string) ([]*entity.Lot, error) {
	return r.findAvailable(func(l *entity.Lot) bool {
		wh := r.warehouses[l.WarehouseID]
		return l.ProductID == productID && wh != nil && wh.BranchID == branchID
	}), nil
}

func (r *memLotRepo) Update(lot *entity.Lot) error {
	c := *lot
	r.lots[lot.ID] = &c
	return nil
}

func (r *memLotRepo) AvailableQuantityByBranch(productID, branchID string) (decimal.Decimal, error) {
	lots, _ := r.FindAvailableByBranchForUpdate(productID, branchID)
	total := decimal.Zero
	for _, lot := range lots {
		total = total.Add(lot.AvailableQuantity())
	}
	return total, nil
}

func (r *memLotRepo) StockSummary(productID, warehouseID string) ([]*entity.StockSummary, error) {
	lots, _ := r.FindAvailable(productID, warehouseID)
	if len(lots) == 0 {
		return nil, nil
	}
	s := &entity.StockSummary{ProductID: productID, WarehouseID: warehouseID}
	for _, lot := range lots {
		s.TotalQuantity = s.TotalQuantity.Add(lot.CurrentQuantity)
		s.ReservedQuantity = s.ReservedQuantity.Add(lot.ReservedQuantity)
		s.LotCount++
	}
	s.AvailableQuantity = s.TotalQuantity.Sub(s.ReservedQuantity)
	return []*entity.StockSummary{s}, nil
}

func (r *memLotRepo) MarkExpired(now time.Time) (int64, error) {
	var n int64
	for _, lot := range r.lots {
		if lot.Status == entity.LotStatusAvailable && lot.IsExpired(now) {
			lot.Status = entity.LotStatusExpired
			n++
		}
	}
	return n, nil
}

func (r *memLotRepo) MaxInternalSequence(warehouseID, prefix string) (int, error) {
	max := 0
	for _, lot := range r.lots {
		if lot.WarehouseID != warehouseID || !strings.HasPrefix(lot.InternalCode, prefix) {
			continue
		}
		if seq, err := strconv.Atoi(strings.TrimPrefix(lot.InternalCode, prefix)); err == nil && seq > max {
			max = seq
		}
	}
	return max, nil
}

type memMovementRepo struct {
	movements []*entity.Movement
}

func (r *memMovementRepo) Create(m *entity.Movement) error {
	c := *m
	r.movements = append(r.movements, &c)
	return nil
}

func (r *memMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.WarehouseID == warehouseID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByLot(lotID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.LotID == lotID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByReference(referenceType, referenceID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.ReferenceType == referenceType && m.ReferenceID == referenceID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memTransferRepo struct {
	transfers []*entity.Transfer
}

func (r *memTransferRepo) Create(t *entity.Transfer) error {
	c := *t
	r.transfers = append(r.transfers, &c)
	return nil
}

func (r *memTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	for _, t := range r.transfers {
		if t.ID == id {
			c := *t
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memTransferRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	for _, t := range r.transfers {
		if t.FromWarehouseID == warehouseID || t.ToWarehouseID == warehouseID {
			out = append(out, t)
		}
	}
	return out, nil
}

type memAdjustmentRepo struct {
	adjustments map[string]*entity.Adjustment
}

func newMemAdjustmentRepo() *memAdjustmentRepo {
	return &memAdjustmentRepo{adjustments: make(map[string]*entity.Adjustment)}
}

func (r *memAdjustmentRepo) Create(a *entity.Adjustment) error {
	c := *a
	c.Items = append([]entity.AdjustmentItem(nil), a.Items...)
	r.adjustments[a.ID] = &c
	return nil
}

func (r *memAdjustmentRepo) GetByID(id string) (*entity.Adjustment, error) {
	a, ok := r.adjustments[id]
	if !ok {
		return nil, nil
	}
	c := *a
	c.Items = append([]entity.AdjustmentItem(nil), a.Items...)
	return &c, nil
}

func (r *memAdjustmentRepo) UpdateStatus(a *entity.Adjustment) error {
	stored, ok := r.adjustments[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = a.Status
	stored.ApprovedBy = a.ApprovedBy
	stored.ApprovedAt = a.ApprovedAt
	stored.AppliedBy = a.AppliedBy
	stored.AppliedAt = a.AppliedAt
	return nil
}

func (r *memAdjustmentRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Adjustment, error) {
	var out []*entity.Adjustment
	for _, a := range r.adjustments {
		if a.WarehouseID == warehouseID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memWasteRepo struct {
	wastes []*entity.WasteRecord
}

func (r *memWasteRepo) Create(w *entity.WasteRecord) error {
	c := *w
	r.wastes = append(r.wastes, &c)
	return nil
}

func (r *memWasteRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.WasteRecord, error) {
	var out []*entity.WasteRecord
	for _, w := range r.wastes {
		if w.WarehouseID == warehouseID {
			out = append(out, w)
		}
	}
	return out, nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *memProductRepo) GetByIDs(ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product)
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type memWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.warehouses[id], nil
}

func (r *memWarehouseRepo) ListByBranch(branchID string) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.warehouses {
		if w.BranchID == branchID {
			out = append(out, w)
		}
	}
	return out, nil
}

type memUserRepo struct {
	users map[string]*entity.User
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

type memCache struct {
	entries map[string][]*entity.StockSummary
	hits    int
	sets    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]*entity.StockSummary)}
}

func (c *memCache) Get(ctx context.Context, key string) ([]*entity.StockSummary, bool, error) {
	v, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *memCache) Set(ctx context.Context, key string, value []*entity.StockSummary, ttl time.Duration) error {
	c.sets++
	c.entries[key] = value
	return nil
}

// fakeTxRunner reproduce la atomicidad: snapshot antes de fn, restauración
// completa si fn falla.
type fakeTxRunner struct {
	lotRepo        *memLotRepo
	movRepo        *memMovementRepo
	transferRepo   *memTransferRepo
	adjustmentRepo *memAdjustmentRepo
	wasteRepo      *memWasteRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	repository.LotRepository,
	repository.MovementRepository,
	repository.TransferRepository,
	repository.AdjustmentRepository,
	repository.WasteRepository,
) error) error {
	snapLots := make(map[string]*entity.Lot, len(r.lotRepo.lots))
	for id, lot := range r.lotRepo.lots {
		c := *lot
		snapLots[id] = &c
	}
	snapAdjs := make(map[string]*entity.Adjustment, len(r.adjustmentRepo.adjustments))
	for id, a := range r.adjustmentRepo.adjustments {
		c := *a
		c.Items = append([]entity.AdjustmentItem(nil), a.Items...)
		snapAdjs[id] = &c
	}
	nMovs := len(r.movRepo.movements)
	nTransfers := len(r.transferRepo.transfers)
	nWastes := len(r.wasteRepo.wastes)

	err := fn(r.lotRepo, r.movRepo, r.transferRepo, r.adjustmentRepo, r.wasteRepo)
	if err != nil {
		r.lotRepo.lots = snapLots
		r.adjustmentRepo.adjustments = snapAdjs
		r.movRepo.movements = r.movRepo.movements[:nMovs]
		r.transferRepo.transfers = r.transferRepo.transfers[:nTransfers]
		r.wasteRepo.wastes = r.wasteRepo.wastes[:nWastes]
	}
	return err
}

// world agrupa los fakes prewireados de un escenario de prueba.
type world struct {
	lots       *memLotRepo
	movements  *memMovementRepo
	transfers  *memTransferRepo
	adjusts    *memAdjustmentRepo
	wastes     *memWasteRepo
	products   *memProductRepo
	warehouses *memWarehouseRepo
	users      *memUserRepo
	cache      *memCache
	tx         *fakeTxRunner
}

func newWorld() *world {
	whs := map[string]*entity.Warehouse{
		"wh-1": {ID: "wh-1", BranchID: "branch-1", Name: "Bodega Central"},
		"wh-2": {ID: "wh-2", BranchID: "branch-1", Name: "Bodega Cocina"},
		"wh-3": {ID: "wh-3", BranchID: "branch-2", Name: "Bodega Norte"},
	}
	w := &world{
		lots:      newMemLotRepo(whs),
		movements: &memMovementRepo{},
		transfers: &memTransferRepo{},
		adjusts:   newMemAdjustmentRepo(),
		wastes:    &memWasteRepo{},
		products: &memProductRepo{products: map[string]*entity.Product{
			"prod-1": {ID: "prod-1", SKU: "TOM-001", Name: "Tomate", Price: decimal.NewFromInt(30), Active: true},
			"prod-2": {ID: "prod-2", SKU: "QUE-001", Name: "Queso", Price: decimal.NewFromInt(120), Active: true},
		}},
		warehouses: &memWarehouseRepo{warehouses: whs},
		users: &memUserRepo{users: map[string]*entity.User{
			"user-1": {ID: "user-1", Email: "bodega@demo.mx", Role: entity.RoleBodeguero, BranchID: "branch-1", Active: true},
		}},
		cache: newMemCache(),
	}
	w.tx = &fakeTxRunner{
		lotRepo:        w.lots,
		movRepo:        w.movements,
		transferRepo:   w.transfers,
		adjustmentRepo: w.adjusts,
		wasteRepo:      w.wastes,
	}
	return w
}

// addLot siembra un lote AVAILABLE con EntryDate escalonado por día.
func (w *world) addLot(id, productID, warehouseID string, qty, cost float64, daysAgo int) *entity.Lot {
	entry := time.Now().AddDate(0, 0, -daysAgo)
	lot := &entity.Lot{
		ID:              id,
		ProductID:       productID,
		WarehouseID:     warehouseID,
		LotNumber:       "PROV-" + id,
		InternalCode:    "INT-2608-" + id,
		InitialQuantity: decimal.NewFromFloat(qty),
		CurrentQuantity: decimal.NewFromFloat(qty),
		UnitCost:        decimal.NewFromFloat(cost),
		EntryDate:       entry,
		Status:          entity.LotStatusAvailable,
		CreatedAt:       entry,
		UpdatedAt:       entry,
	}
	w.lots.lots[id] = lot
	return lot
}
