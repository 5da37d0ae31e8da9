package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/restoqly/restopos-api/internal/application/inventory"
	"github.com/restoqly/restopos-api/internal/domain"
	"github.com/restoqly/restopos-api/internal/domain/entity"
	"github.com/restoqly/restopos-api/internal/domain/repository"
)

// paymentTolerance margen aceptado entre la suma de pagos y el total
// (redondeos de terminal de tarjeta).
var paymentTolerance = decimal.NewFromFloat(0.01)

// CreateSaleUseCase ejecuta el pipeline de venta POS: validación, precios,
// folio, asignación PEPS por sucursal y acumulado de sesión, todo en una
// transacción.
type CreateSaleUseCase struct {
	txRunner       TxRunner
	sessionRepo    repository.SessionRepository
	registerRepo   repository.CashRegisterRepository
	productRepo    repository.ProductRepository
	userRepo       repository.UserRepository
	lotRepo        repository.LotRepository
	defaultTaxRate decimal.Decimal
}

// NewCreateSaleUseCase construye el caso de uso. defaultTaxRate aplica a los
// productos sin tasa propia (ej. 0.16).
func NewCreateSaleUseCase(
	txRunner TxRunner,
	sessionRepo repository.SessionRepository,
	registerRepo repository.CashRegisterRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	lotRepo repository.LotRepository,
	defaultTaxRate decimal.Decimal,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:       txRunner,
		sessionRepo:    sessionRepo,
		registerRepo:   registerRepo,
		productRepo:    productRepo,
		userRepo:       userRepo,
		lotRepo:        lotRepo,
		defaultTaxRate: defaultTaxRate,
	}
}

// SaleItemInput línea de venta. UnitPrice nil usa el precio de catálogo;
// DiscountPct va de 0 a 100.
type SaleItemInput struct {
	ProductID   string
	Quantity    decimal.Decimal
	UnitPrice   *decimal.Decimal
	DiscountPct decimal.Decimal
}

// SalePaymentInput pago aplicado a la venta.
type SalePaymentInput struct {
	Method    string
	Amount    decimal.Decimal
	Reference string
	CardLast4 string
}

// CreateSaleInput entrada del pipeline de venta.
type CreateSaleInput struct {
	SessionID string
	CashierID string
	Items     []SaleItemInput
	Payments  []SalePaymentInput
}

// CreateSale valida sesión, cajero, productos y pagos; asigna folio y consume
// stock PEPS sobre las bodegas de la sucursal de la caja. El faltante de
// cualquier línea o un descuadre de pagos revierte la venta completa.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in CreateSaleInput) (*entity.Sale, error) {
	if in.SessionID == "" || in.CashierID == "" || len(in.Items) == 0 || len(in.Payments) == 0 {
		return nil, domain.ErrInvalidInput
	}

	session, err := uc.sessionRepo.GetByID(in.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	if session.Status != entity.SessionStatusOpen {
		return nil, domain.ErrSessionClosed
	}
	register, err := uc.registerRepo.GetByID(session.CashRegisterID)
	if err != nil || register == nil {
		return nil, domain.ErrNotFound
	}
	cashier, err := uc.userRepo.GetByID(in.CashierID)
	if err != nil {
		return nil, err
	}
	if cashier == nil || !cashier.Active {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:             uuid.New().String(),
		SessionID:      session.ID,
		CashRegisterID: register.ID,
		Status:         entity.SaleStatusCompleted,
		CashierID:      in.CashierID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Precios y pre-verificación de stock por sucursal. La verificación
	// autoritativa ocurre al asignar bajo lock; esta solo corta temprano.
	for _, itemIn := range in.Items {
		if itemIn.ProductID == "" || !itemIn.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if itemIn.DiscountPct.LessThan(decimal.Zero) || itemIn.DiscountPct.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(itemIn.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if !product.Active {
			return nil, domain.ErrProductInactive
		}
		available, err := uc.lotRepo.AvailableQuantityByBranch(product.ID, register.BranchID)
		if err != nil {
			return nil, err
		}
		if available.LessThan(itemIn.Quantity) {
			return nil, &domain.StockShortfallError{
				ProductID: product.ID,
				Requested: itemIn.Quantity,
				Available: available,
			}
		}

		unitPrice := product.Price
		if itemIn.UnitPrice != nil {
			unitPrice = *itemIn.UnitPrice
		}
		if unitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		taxRate := product.TaxRate
		if taxRate.IsZero() {
			taxRate = uc.defaultTaxRate
		}

		subtotal := unitPrice.Mul(itemIn.Quantity)
		discount := subtotal.Mul(itemIn.DiscountPct).Div(decimal.NewFromInt(100))
		tax := subtotal.Sub(discount).Mul(taxRate)

		item := entity.SaleItem{
			ID:             uuid.New().String(),
			SaleID:         sale.ID,
			ProductID:      product.ID,
			Quantity:       itemIn.Quantity,
			UnitPrice:      unitPrice,
			TaxRate:        taxRate,
			TaxAmount:      tax,
			DiscountPct:    itemIn.DiscountPct,
			DiscountAmount: discount,
			Subtotal:       subtotal,
			Total:          subtotal.Sub(discount).Add(tax),
		}
		sale.Items = append(sale.Items, item)
		sale.Subtotal = sale.Subtotal.Add(subtotal)
		sale.DiscountAmount = sale.DiscountAmount.Add(discount)
		sale.TaxAmount = sale.TaxAmount.Add(tax)
	}
	sale.TotalAmount = sale.Subtotal.Sub(sale.DiscountAmount).Add(sale.TaxAmount)

	paid := decimal.Zero
	for _, payIn := range in.Payments {
		if !entity.ValidPaymentMethod(payIn.Method) || !payIn.Amount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		sale.Payments = append(sale.Payments, entity.SalePayment{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			Method:    payIn.Method,
			Amount:    payIn.Amount,
			Reference: payIn.Reference,
			CardLast4: payIn.CardLast4,
			PaidAt:    now,
		})
		paid = paid.Add(payIn.Amount)
	}
	if paid.Sub(sale.TotalAmount).Abs().GreaterThan(paymentTolerance) {
		return nil, fmt.Errorf("%w: pagado %s contra total %s", domain.ErrPaymentMismatch, paid, sale.TotalAmount)
	}

	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
		sessionRepo repository.SessionRepository,
	) error {
		seq, err := saleRepo.NextSequence(now.Format("20060102"))
		if err != nil {
			return err
		}
		sale.Number = fmt.Sprintf("V%s%06d", now.Format("20060102"), seq)
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		for i := range sale.Items {
			item := &sale.Items[i]
			alloc, err := inventory.AllocateAndConsumeByBranch(
				lotRepo, movRepo, item.ProductID, register.BranchID, item.Quantity,
				inventory.MovementMeta{
					Type:          entity.MovementTypeSale,
					ReferenceType: entity.ReferenceTypeSale,
					ReferenceID:   sale.ID,
					UserID:        in.CashierID,
					Now:           now,
				},
			)
			if err != nil {
				return err
			}
			item.UnitCost = alloc.WeightedUnitCost()
			item.TotalCost = alloc.TotalCost
			item.LotID = alloc.FirstLotID()
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		for i := range sale.Payments {
			if err := saleRepo.CreatePayment(&sale.Payments[i]); err != nil {
				return err
			}
		}

		// Acumulados de la sesión bajo lock de su fila.
		locked, err := sessionRepo.GetByIDForUpdate(session.ID)
		if err != nil {
			return err
		}
		if locked == nil || locked.Status != entity.SessionStatusOpen {
			return domain.ErrSessionClosed
		}
		locked.TotalSales = locked.TotalSales.Add(sale.TotalAmount)
		for _, pay := range sale.Payments {
			switch pay.Method {
			case entity.PaymentMethodCard:
				locked.CardSales = locked.CardSales.Add(pay.Amount)
			case entity.PaymentMethodTransfer:
				locked.TransferSales = locked.TransferSales.Add(pay.Amount)
			}
		}
		return sessionRepo.Update(locked)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}
