package sales

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/restoqly/restopos-api/internal/domain"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
	"github.com/restoqly/restopos-api/pkg/logger"
)

// Fakes en memoria del pipeline de ventas. El fakeTxRunner restaura el estado
// ante error de fn para reproducir el rollback de la transacción real.

type memLotRepo struct {
	lots       map[string]*entity.Lot
	warehouses map[string]*entity.Warehouse
}

func (r *memLotRepo) Create(lot *entity.Lot) error {
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

func (r *memLotRepo) GetByIDForUpdate(id string) (*entity.Lot, error) { return r.GetByID(id) }

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
	return nil, nil
}

func (r *memLotRepo) MarkExpired(now time.Time) (int64, error) { return 0, nil }

func (r *memLotRepo) MaxInternalSequence(warehouseID, prefix string) (int, error) { return 0, nil }

type memMovementRepo struct {
	movements []*entity.Movement
}

func (r *memMovementRepo) Create(m *entity.Movement) error {
	c := *m
	r.movements = append(r.movements, &c)
	return nil
}

func (r *memMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return nil, nil
}

func (r *memMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return nil, nil
}

func (r *memMovementRepo) ListByLot(lotID string) ([]*entity.Movement, error) { return nil, nil }

func (r *memMovementRepo) ListByReference(referenceType, referenceID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.ReferenceType == referenceType && m.ReferenceID == referenceID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memSaleRepo struct {
	sales     map[string]*entity.Sale
	sequences map[string]int64
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{sales: make(map[string]*entity.Sale), sequences: make(map[string]int64)}
}

func (r *memSaleRepo) Create(s *entity.Sale) error {
	c := *s
	c.Items = nil
	c.Payments = nil
	r.sales[s.ID] = &c
	return nil
}

func (r *memSaleRepo) CreateItem(item *entity.SaleItem) error {
	sale, ok := r.sales[item.SaleID]
	if !ok {
		return domain.ErrNotFound
	}
	sale.Items = append(sale.Items, *item)
	return nil
}

func (r *memSaleRepo) CreatePayment(p *entity.SalePayment) error {
	sale, ok := r.sales[p.SaleID]
	if !ok {
		return domain.ErrNotFound
	}
	sale.Payments = append(sale.Payments, *p)
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	c := *sale
	c.Items = append([]entity.SaleItem(nil), sale.Items...)
	c.Payments = append([]entity.SalePayment(nil), sale.Payments...)
	return &c, nil
}

func (r *memSaleRepo) UpdateStatus(s *entity.Sale) error {
	stored, ok := r.sales[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = s.Status
	stored.UpdatedAt = s.UpdatedAt
	return nil
}

func (r *memSaleRepo) NextSequence(dateKey string) (int64, error) {
	r.sequences[dateKey]++
	return r.sequences[dateKey], nil
}

func (r *memSaleRepo) ListBySession(sessionID string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.sales {
		if s.SessionID == sessionID {
			out = append(out, s)
		}
	}
	return out, nil
}

type memSessionRepo struct {
	sessions map[string]*entity.CashSession
	sales    *memSaleRepo
}

func (r *memSessionRepo) Create(s *entity.CashSession) error {
	for _, existing := range r.sessions {
		if existing.CashRegisterID == s.CashRegisterID && existing.Status == entity.SessionStatusOpen {
			return domain.ErrSessionAlreadyOpen
		}
	}
	c := *s
	r.sessions[s.ID] = &c
	return nil
}

func (r *memSessionRepo) GetByID(id string) (*entity.CashSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *memSessionRepo) GetByIDForUpdate(id string) (*entity.CashSession, error) {
	return r.GetByID(id)
}

func (r *memSessionRepo) FindOpenByRegister(registerID string) (*entity.CashSession, error) {
	for _, s := range r.sessions {
		if s.CashRegisterID == registerID && s.Status == entity.SessionStatusOpen {
			c := *s
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memSessionRepo) Update(s *entity.CashSession) error {
	c := *s
	r.sessions[s.ID] = &c
	return nil
}

func (r *memSessionRepo) SumPaymentsByMethod(sessionID, method string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, sale := range r.sales.sales {
		if sale.SessionID != sessionID || sale.Status != entity.SaleStatusCompleted {
			continue
		}
		for _, p := range sale.Payments {
			if p.Method == method {
				total = total.Add(p.Amount)
			}
		}
	}
	return total, nil
}

type memRegisterRepo struct {
	registers map[string]*entity.CashRegister
}

func (r *memRegisterRepo) GetByID(id string) (*entity.CashRegister, error) {
	return r.registers[id], nil
}

func (r *memRegisterRepo) ListByBranch(branchID string) ([]*entity.CashRegister, error) {
	var out []*entity.CashRegister
	for _, reg := range r.registers {
		if reg.BranchID == branchID {
			out = append(out, reg)
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

type memUserRepo struct {
	users map[string]*entity.User
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) { return r.users[id], nil }

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

type fakeTxRunner struct {
	lotRepo     *memLotRepo
	movRepo     *memMovementRepo
	saleRepo    *memSaleRepo
	sessionRepo *memSessionRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	repository.LotRepository,
	repository.MovementRepository,
	repository.SaleRepository,
	repository.SessionRepository,
) error) error {
	snapLots := make(map[string]*entity.Lot, len(r.lotRepo.lots))
	for id, lot := range r.lotRepo.lots {
		c := *lot
		snapLots[id] = &c
	}
	snapSales := make(map[string]*entity.Sale, len(r.saleRepo.sales))
	for id, s := range r.saleRepo.sales {
		c := *s
		c.Items = append([]entity.SaleItem(nil), s.Items...)
		c.Payments = append([]entity.SalePayment(nil), s.Payments...)
		snapSales[id] = &c
	}
	snapSeqs := make(map[string]int64, len(r.saleRepo.sequences))
	for k, v := range r.saleRepo.sequences {
		snapSeqs[k] = v
	}
	snapSessions := make(map[string]*entity.CashSession, len(r.sessionRepo.sessions))
	for id, s := range r.sessionRepo.sessions {
		c := *s
		snapSessions[id] = &c
	}
	nMovs := len(r.movRepo.movements)

	err := fn(r.lotRepo, r.movRepo, r.saleRepo, r.sessionRepo)
	if err != nil {
		r.lotRepo.lots = snapLots
		r.saleRepo.sales = snapSales
		r.saleRepo.sequences = snapSeqs
		r.sessionRepo.sessions = snapSessions
		r.movRepo.movements = r.movRepo.movements[:nMovs]
	}
	return err
}

// world agrupa los fakes prewireados de un escenario de ventas.
type world struct {
	lots      *memLotRepo
	movements *memMovementRepo
	sales     *memSaleRepo
	sessions  *memSessionRepo
	registers *memRegisterRepo
	products  *memProductRepo
	users     *memUserRepo
	tx        *fakeTxRunner
	log       *logger.Logger
}

func newWorld() *world {
	whs := map[string]*entity.Warehouse{
		"wh-1": {ID: "wh-1", BranchID: "branch-1", Name: "Bodega Central"},
		"wh-2": {ID: "wh-2", BranchID: "branch-1", Name: "Bodega Cocina"},
		"wh-3": {ID: "wh-3", BranchID: "branch-2", Name: "Bodega Norte"},
	}
	sales := newMemSaleRepo()
	w := &world{
		lots:      &memLotRepo{lots: make(map[string]*entity.Lot), warehouses: whs},
		movements: &memMovementRepo{},
		sales:     sales,
		sessions:  &memSessionRepo{sessions: make(map[string]*entity.CashSession), sales: sales},
		registers: &memRegisterRepo{registers: map[string]*entity.CashRegister{
			"reg-1": {ID: "reg-1", BranchID: "branch-1", Code: "CAJA-01", Name: "Caja Principal", Active: true},
			"reg-2": {ID: "reg-2", BranchID: "branch-1", Code: "CAJA-02", Name: "Caja Barra", Active: false},
		}},
		products: &memProductRepo{products: map[string]*entity.Product{
			"prod-1": {ID: "prod-1", SKU: "TAC-001", Name: "Taco pastor", Price: decimal.NewFromInt(30), Active: true},
			"prod-2": {ID: "prod-2", SKU: "REF-001", Name: "Refresco", Price: decimal.NewFromInt(25), Active: true},
			"prod-3": {ID: "prod-3", SKU: "DES-001", Name: "Descontinuado", Price: decimal.NewFromInt(10), Active: false},
		}},
		users: &memUserRepo{users: map[string]*entity.User{
			"cajero-1": {ID: "cajero-1", Email: "caja@demo.mx", Role: entity.RoleCajero, BranchID: "branch-1", Active: true},
		}},
		log: logger.New(logger.Config{Env: "test", Level: "error"}),
	}
	w.tx = &fakeTxRunner{
		lotRepo:     w.lots,
		movRepo:     w.movements,
		saleRepo:    w.sales,
		sessionRepo: w.sessions,
	}
	return w
}

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

// openSession siembra una sesión OPEN sobre reg-1.
func (w *world) openSession(id string, openingCash float64) *entity.CashSession {
	s := &entity.CashSession{
		ID:             id,
		CashRegisterID: "reg-1",
		UserID:         "cajero-1",
		OpenedAt:       time.Now(),
		OpeningCash:    decimal.NewFromFloat(openingCash),
		Status:         entity.SessionStatusOpen,
	}
	w.sessions.sessions[id] = s
	return s
}
