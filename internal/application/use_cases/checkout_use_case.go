package use_cases

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/donbacco/pos-service/internal/application/commands"
	"github.com/donbacco/pos-service/internal/application/ports"
	"github.com/donbacco/pos-service/internal/domain/cart"
	domainErrors "github.com/donbacco/pos-service/internal/domain/errors"
	"github.com/donbacco/pos-service/internal/domain/inventory"
	"github.com/donbacco/pos-service/internal/domain/pricing"
	"github.com/donbacco/pos-service/internal/domain/sale"
	"github.com/donbacco/pos-service/internal/pkg/clock"
	"github.com/donbacco/pos-service/internal/pkg/generator"
	"github.com/donbacco/pos-service/internal/pkg/logger"
)

type TerminalState int

const (
	StateOpen TerminalState = iota
	StateValidating
)

// Terminal is the checkout coordinator for one register session. It owns the
// single open cart and drives the OPEN → VALIDATING → REJECTED|COMMITTED
// state machine. The ledger append and the stock reconciliation of a
// committed sale run inside the unit of work, so external readers of either
// store observe them together or not at all.
type Terminal struct {
	mu    sync.Mutex
	state TerminalState
	cart  *cart.Cart

	uow      ports.UnitOfWork
	notifier ports.StockNotifier
	docs     ports.DocumentSink
	receipts ports.ReceiptRenderer

	idGen   *generator.SaleIDGenerator
	clock   clock.Clock
	log     *logger.Logger
	taxRate decimal.Decimal
}

func NewTerminal(
	uow ports.UnitOfWork,
	notifier ports.StockNotifier,
	docs ports.DocumentSink,
	receipts ports.ReceiptRenderer,
	idGen *generator.SaleIDGenerator,
	clk clock.Clock,
	log *logger.Logger,
	taxRate float64,
) *Terminal {
	return &Terminal{
		state:    StateOpen,
		cart:     cart.New(),
		uow:      uow,
		notifier: notifier,
		docs:     docs,
		receipts: receipts,
		idGen:    idGen,
		clock:    clk,
		log:      log,
		taxRate:  decimal.NewFromFloat(taxRate),
	}
}

// AddProduct snapshots the product from the catalog into the cart.
func (t *Terminal) AddProduct(ctx context.Context, productID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, err := t.uow.Catalog().Get(ctx, productID)
	if err != nil {
		return err
	}

	return t.cart.AddLine(p)
}

func (t *Terminal) AdjustQuantity(productID string, delta int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cart.AdjustQuantity(productID, delta)
}

func (t *Terminal) RemoveLine(productID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cart.RemoveLine(productID)
}

// Cancel abandons the open cart without recording anything.
func (t *Terminal) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cart.Clear()
}

func (t *Terminal) View() commands.CartView {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cartView()
}

func (t *Terminal) cartView() commands.CartView {
	lines := t.cart.Lines()
	views := make([]commands.CartLineView, 0, len(lines))
	for _, l := range lines {
		views = append(views, commands.CartLineView{
			ProductID: l.ProductID,
			Name:      l.Name,
			Capacity:  l.Capacity,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}

	total := t.cart.Total()
	base, tax := pricing.TaxDecomposition(total, t.taxRate)

	return commands.CartView{
		Lines:     views,
		ItemCount: t.cart.ItemCount(),
		Total:     total,
		TaxBase:   base,
		Tax:       tax,
	}
}

// Checkout finalizes the open cart. Outcomes:
//   - empty cart: no-op result, not a rejection, nothing recorded;
//   - cash with tender below total (or not entered): typed rejection, the
//     terminal returns to OPEN untouched and the attempt leaves no side
//     effects, so correcting the tender and retrying is always safe;
//   - unknown product, sold quantity beyond live stock, or sale id
//     collision: error, aborted before any append;
//   - otherwise: the sale is appended, stock reconciled, the cart cleared,
//     and alerts plus the receipt dispatched fire-and-forget.
func (t *Terminal) Checkout(ctx context.Context, cmd commands.CheckoutCommand) (*commands.CheckoutResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateOpen {
		return nil, domainErrors.ErrCheckoutInProgress
	}
	t.state = StateValidating
	defer func() { t.state = StateOpen }()

	if t.cart.IsEmpty() {
		return &commands.CheckoutResult{Noop: true}, nil
	}

	lines := t.cart.Lines()
	total := t.cart.Total()

	change := decimal.Zero
	if cmd.PaymentMethod.RequiresTender() {
		var status pricing.ChangeStatus
		change, status = pricing.ComputeChange(cmd.Tender, total)
		if status != pricing.ChangeOK {
			t.log.Info("Checkout rejected",
				"reason", "payment_insufficient",
				"total", total.StringFixed(2),
				"tender_entered", cmd.Tender.Entered(),
			)
			return &commands.CheckoutResult{Rejection: commands.RejectionPaymentInsufficient}, nil
		}
	}

	var (
		s      *sale.Sale
		alerts []inventory.Alert
	)
	// Snapshot, reconcile, apply, and append all run under the unit of
	// work's exclusive lock: no reader of either store can observe deducted
	// stock without the sale or the reverse, and no catalog edit can slip in
	// between the snapshot and the writes. A failed append restores the
	// prior snapshot inside the same critical section.
	err := t.uow.WithinCommit(ctx, func(ctx context.Context, catalogStore ports.CatalogStore, ledger ports.Ledger) error {
		products, err := catalogStore.List(ctx)
		if err != nil {
			return fmt.Errorf("load catalog snapshot: %w", err)
		}

		updated, reconcileAlerts, err := inventory.Reconcile(products, lines)
		if err != nil {
			return err
		}

		s, err = sale.NewSale(t.idGen.Generate(), t.clock.Now(), lines, total, cmd.PaymentMethod, cmd.CustomerID)
		if err != nil {
			return err
		}

		if err := catalogStore.ReplaceAll(ctx, updated); err != nil {
			return fmt.Errorf("apply reconciled stock: %w", err)
		}
		if err := ledger.Append(ctx, s); err != nil {
			if restoreErr := catalogStore.ReplaceAll(ctx, products); restoreErr != nil {
				t.log.Error("Failed to restore catalog after ledger append failure",
					"error", restoreErr, "sale_id", s.ID)
			}
			return err
		}

		alerts = reconcileAlerts
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.log.Info("Sale committed",
		"sale_id", s.ID,
		"total", s.Total.StringFixed(2),
		"payment_method", s.PaymentMethod.String(),
		"items", s.ItemCount(),
		"alerts", len(alerts),
	)

	t.dispatchAlerts(alerts)
	t.dispatchReceipt(s, cmd.Tender, change)

	t.cart.Clear()

	return &commands.CheckoutResult{
		Committed: true,
		Sale:      s,
		Change:    change,
	}, nil
}

// dispatchAlerts delivers edge-triggered stock alerts best-effort. The
// request context is not used: a committed sale's notifications must not be
// cancelled with the request.
func (t *Terminal) dispatchAlerts(alerts []inventory.Alert) {
	if t.notifier == nil || len(alerts) == 0 {
		return
	}

	go func() {
		for _, a := range alerts {
			if err := t.notifier.NotifyLowStock(context.Background(), a); err != nil {
				t.log.Warn("Stock alert delivery failed",
					"error", err, "product_id", a.ProductID)
			}
		}
	}()
}

func (t *Terminal) dispatchReceipt(s *sale.Sale, tender pricing.Tender, change decimal.Decimal) {
	if t.receipts == nil || t.docs == nil {
		return
	}

	go func() {
		doc, err := t.receipts.RenderReceipt(s, tender, change)
		if err != nil {
			t.log.Warn("Receipt rendering failed", "error", err, "sale_id", s.ID)
			return
		}
		if err := t.docs.Publish(context.Background(), doc); err != nil {
			t.log.Warn("Receipt delivery failed", "error", err, "sale_id", s.ID)
		}
	}()
}
