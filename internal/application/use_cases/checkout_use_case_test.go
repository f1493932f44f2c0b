package use_cases_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donbacco/pos-service/internal/application/commands"
	"github.com/donbacco/pos-service/internal/application/ports"
	"github.com/donbacco/pos-service/internal/application/use_cases"
	"github.com/donbacco/pos-service/internal/domain/catalog"
	domainErrors "github.com/donbacco/pos-service/internal/domain/errors"
	"github.com/donbacco/pos-service/internal/domain/inventory"
	"github.com/donbacco/pos-service/internal/domain/pricing"
	"github.com/donbacco/pos-service/internal/domain/sale"
	"github.com/donbacco/pos-service/internal/infrastructure/persistence/locked"
	"github.com/donbacco/pos-service/internal/infrastructure/persistence/memory"
	"github.com/donbacco/pos-service/internal/pkg/clock"
	"github.com/donbacco/pos-service/internal/pkg/generator"
	"github.com/donbacco/pos-service/internal/pkg/logger"
)

type capturingNotifier struct {
	mu     sync.Mutex
	alerts []inventory.Alert
}

func (n *capturingNotifier) NotifyLowStock(_ context.Context, a inventory.Alert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, a)
	return nil
}

func (n *capturingNotifier) Alerts() []inventory.Alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]inventory.Alert, len(n.alerts))
	copy(out, n.alerts)
	return out
}

type terminalFixture struct {
	terminal *use_cases.Terminal
	store    *locked.Store
	catalog  ports.CatalogStore
	ledger   ports.Ledger
	notifier *capturingNotifier
	clock    *clock.MockClock
}

func newFixture(t *testing.T, products ...catalog.Product) *terminalFixture {
	t.Helper()
	return newFixtureOver(t, memory.NewCatalogStore(), memory.NewLedger(), products...)
}

func newFixtureOver(t *testing.T, catalogStore ports.CatalogStore, ledger ports.Ledger, products ...catalog.Product) *terminalFixture {
	t.Helper()

	require.NoError(t, catalogStore.ReplaceAll(context.Background(), products))

	store := locked.NewStore(catalogStore, ledger)
	notifier := &capturingNotifier{}
	clk := clock.NewMockClock(time.Date(2025, 8, 30, 20, 0, 0, 0, time.UTC))
	log := logger.NewLoggerWithOutput(io.Discard)

	terminal := use_cases.NewTerminal(
		store, notifier, nil, nil,
		generator.NewSaleIDGenerator(clk), clk, log,
		pricing.DefaultTaxRate,
	)

	return &terminalFixture{
		terminal: terminal,
		store:    store,
		catalog:  store.Catalog(),
		ledger:   store.Ledger(),
		notifier: notifier,
		clock:    clk,
	}
}

func beerProduct() catalog.Product {
	return catalog.Product{
		ID:       "corona-355",
		Name:     "Cerveza Corona",
		Brand:    "Corona",
		Category: catalog.CategoryBeer,
		Capacity: "355ml",
		Price:    decimal.RequireFromString("8.50"),
		Cost:     decimal.RequireFromString("5.00"),
		Stock:    48,
		MinStock: 12,
	}
}

func whiskyProduct() catalog.Product {
	return catalog.Product{
		ID:       "blacklabel-750",
		Name:     "Whisky Black Label",
		Category: catalog.CategorySpirits,
		Capacity: "750ml",
		Price:    decimal.RequireFromString("120.00"),
		Stock:    11,
		MinStock: 10,
	}
}

func TestCheckoutCommitsSale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, beerProduct(), whiskyProduct())

	for i := 0; i < 3; i++ {
		require.NoError(t, f.terminal.AddProduct(ctx, "corona-355"))
	}

	result, err := f.terminal.Checkout(ctx, commands.CheckoutCommand{
		PaymentMethod: sale.PaymentCash,
		Tender:        pricing.TenderOf(decimal.RequireFromString("30.00")),
	})
	require.NoError(t, err)

	require.True(t, result.Committed)
	require.NotNil(t, result.Sale)
	assert.Equal(t, "25.50", result.Sale.Total.StringFixed(2))
	assert.Equal(t, "4.50", result.Change.StringFixed(2))

	// Exactly the sold quantity comes off the sold product, nothing else moves.
	p, err := f.catalog.Get(ctx, "corona-355")
	require.NoError(t, err)
	assert.Equal(t, 45, p.Stock)

	other, err := f.catalog.Get(ctx, "blacklabel-750")
	require.NoError(t, err)
	assert.Equal(t, 11, other.Stock)

	sales, err := f.ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, result.Sale.ID, sales[0].ID)

	assert.True(t, f.terminal.View().Total.IsZero(), "cart must be cleared after commit")
}

func TestCheckoutEmptyCartIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, beerProduct())

	result, err := f.terminal.Checkout(ctx, commands.CheckoutCommand{
		PaymentMethod: sale.PaymentCash,
		Tender:        pricing.TenderOf(decimal.RequireFromString("100.00")),
	})
	require.NoError(t, err)

	assert.True(t, result.Noop)
	assert.False(t, result.Committed)
	assert.Equal(t, commands.RejectionNone, result.Rejection, "an empty cart is not a rejection")

	sales, err := f.ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestCheckoutInsufficientCashLeavesEverythingUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, beerProduct())

	require.NoError(t, f.terminal.AddProduct(ctx, "corona-355"))
	require.NoError(t, f.terminal.AdjustQuantity("corona-355", 1))

	tenders := []pricing.Tender{
		pricing.NoTender(),
		pricing.TenderOf(decimal.RequireFromString("10.00")),
	}

	// Rejection must be side-effect free no matter how often it is retried.
	for _, tender := range tenders {
		for i := 0; i < 2; i++ {
			result, err := f.terminal.Checkout(ctx, commands.CheckoutCommand{
				PaymentMethod: sale.PaymentCash,
				Tender:        tender,
			})
			require.NoError(t, err)
			assert.False(t, result.Committed)
			assert.Equal(t, commands.RejectionPaymentInsufficient, result.Rejection)
		}
	}

	p, err := f.catalog.Get(ctx, "corona-355")
	require.NoError(t, err)
	assert.Equal(t, 48, p.Stock)

	sales, err := f.ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)

	assert.Equal(t, 2, f.terminal.View().ItemCount, "cart survives a rejected attempt")

	// Correcting the tender afterwards commits normally.
	result, err := f.terminal.Checkout(ctx, commands.CheckoutCommand{
		PaymentMethod: sale.PaymentCash,
		Tender:        pricing.TenderOf(decimal.RequireFromString("17.00")),
	})
	require.NoError(t, err)
	assert.True(t, result.Committed)
	assert.True(t, result.Change.IsZero())
}

func TestCheckoutNonCashSkipsTenderValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, beerProduct())

	require.NoError(t, f.terminal.AddProduct(ctx, "corona-355"))

	result, err := f.terminal.Checkout(ctx, commands.CheckoutCommand{
		PaymentMethod: sale.PaymentCard,
		Tender:        pricing.NoTender(),
	})
	require.NoError(t, err)

	assert.True(t, result.Committed)
	assert.True(t, result.Change.IsZero())
	assert.Equal(t, sale.PaymentCard, result.Sale.PaymentMethod)
}

func TestCheckoutUnknownProductAbortsBeforeAppend(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, beerProduct(), whiskyProduct())

	require.NoError(t, f.terminal.AddProduct(ctx, "corona-355"))
	require.NoError(t, f.terminal.AddProduct(ctx, "blacklabel-750"))

	// The product disappears from the catalog between add and checkout.
	require.NoError(t, f.catalog.ReplaceAll(ctx, []catalog.Product{beerProduct()}))

	_, err := f.terminal.Checkout(ctx, commands.CheckoutCommand{
		PaymentMethod: sale.PaymentCash,
		Tender:        pricing.TenderOf(decimal.RequireFromString("200.00")),
	})
	require.ErrorIs(t, err, domainErrors.ErrUnknownProduct)

	p, err := f.catalog.Get(ctx, "corona-355")
	require.NoError(t, err)
	assert.Equal(t, 48, p.Stock, "abort must leave even resolvable products untouched")

	sales, err := f.ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestCheckoutStockLoweredAfterAdd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, beerProduct())

	require.NoError(t, f.terminal.AddProduct(ctx, "corona-355"))
	require.NoError(t, f.terminal.AdjustQuantity("corona-355", 2))

	// An inventory correction drops the live stock below the quantity the
	// cart captured at add time.
	lowered := beerProduct()
	lowered.Stock = 1
	require.NoError(t, f.catalog.Save(ctx, lowered))

	_, err := f.terminal.Checkout(ctx, commands.CheckoutCommand{PaymentMethod: sale.PaymentCard})
	require.ErrorIs(t, err, domainErrors.ErrInsufficientStock)

	p, err := f.catalog.Get(ctx, "corona-355")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock, "stock must never go negative")

	sales, err := f.ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)

	assert.Equal(t, 3, f.terminal.View().ItemCount, "cart survives so the quantity can be corrected")
}

type failingLedger struct {
	ports.Ledger
}

func (l *failingLedger) Append(context.Context, *sale.Sale) error {
	return errors.New("ledger unavailable")
}

func TestCheckoutRestoresStockWhenAppendFails(t *testing.T) {
	ctx := context.Background()
	f := newFixtureOver(t, memory.NewCatalogStore(), &failingLedger{Ledger: memory.NewLedger()}, beerProduct())

	require.NoError(t, f.terminal.AddProduct(ctx, "corona-355"))

	_, err := f.terminal.Checkout(ctx, commands.CheckoutCommand{PaymentMethod: sale.PaymentCard})
	require.Error(t, err)

	p, err := f.catalog.Get(ctx, "corona-355")
	require.NoError(t, err)
	assert.Equal(t, 48, p.Stock, "deduction must be rolled back when the append fails")

	sales, err := f.ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)

	assert.Equal(t, 1, f.terminal.View().ItemCount, "cart survives a failed commit")
}

// gatedCatalog blocks the first ReplaceAll after arming, holding the commit
// open so the test can read the stores mid-commit.
type gatedCatalog struct {
	ports.CatalogStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedCatalog) ReplaceAll(ctx context.Context, products []catalog.Product) error {
	if g.entered != nil {
		g.once.Do(func() {
			close(g.entered)
			<-g.release
		})
	}
	return g.CatalogStore.ReplaceAll(ctx, products)
}

func TestCheckoutCommitObservedAtomically(t *testing.T) {
	ctx := context.Background()

	gated := &gatedCatalog{CatalogStore: memory.NewCatalogStore()}
	f := newFixtureOver(t, gated, memory.NewLedger(), beerProduct())

	require.NoError(t, f.terminal.AddProduct(ctx, "corona-355"))

	gated.entered = make(chan struct{})
	gated.release = make(chan struct{})

	checkoutDone := make(chan error, 1)
	go func() {
		_, err := f.terminal.Checkout(ctx, commands.CheckoutCommand{PaymentMethod: sale.PaymentCard})
		checkoutDone <- err
	}()

	<-gated.entered

	type observation struct {
		stock int
		sales int
	}
	observed := make(chan observation, 1)
	go func() {
		p, _ := f.catalog.Get(ctx, "corona-355")
		sales, _ := f.ledger.List(ctx)
		observed <- observation{stock: p.Stock, sales: len(sales)}
	}()

	// While the commit is in flight, no reader may see either store.
	select {
	case o := <-observed:
		t.Fatalf("read completed mid-commit: stock=%d sales=%d", o.stock, o.sales)
	case <-time.After(50 * time.Millisecond):
	}

	close(gated.release)
	require.NoError(t, <-checkoutDone)

	// Once released, the reader sees the deducted stock and the sale together.
	o := <-observed
	assert.Equal(t, 47, o.stock)
	assert.Equal(t, 1, o.sales)
}

func TestCheckoutDispatchesEdgeTriggeredAlerts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, whiskyProduct())

	// Stock 11, min 10: crossing to 9 fires exactly one alert.
	require.NoError(t, f.terminal.AddProduct(ctx, "blacklabel-750"))
	require.NoError(t, f.terminal.AdjustQuantity("blacklabel-750", 1))

	result, err := f.terminal.Checkout(ctx, commands.CheckoutCommand{
		PaymentMethod: sale.PaymentTransfer,
	})
	require.NoError(t, err)
	require.True(t, result.Committed)

	require.Eventually(t, func() bool {
		return len(f.notifier.Alerts()) == 1
	}, time.Second, 10*time.Millisecond)

	alert := f.notifier.Alerts()[0]
	assert.Equal(t, "blacklabel-750", alert.ProductID)
	assert.Equal(t, 9, alert.Stock)
	assert.Equal(t, 10, alert.MinStock)

	// A further sale of the already-critical product does not alert again.
	require.NoError(t, f.terminal.AddProduct(ctx, "blacklabel-750"))
	result, err = f.terminal.Checkout(ctx, commands.CheckoutCommand{PaymentMethod: sale.PaymentTransfer})
	require.NoError(t, err)
	require.True(t, result.Committed)

	time.Sleep(50 * time.Millisecond)
	assert.Len(t, f.notifier.Alerts(), 1)
}

func TestCheckoutGeneratesUniqueSaleIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, beerProduct())

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		require.NoError(t, f.terminal.AddProduct(ctx, "corona-355"))
		result, err := f.terminal.Checkout(ctx, commands.CheckoutCommand{PaymentMethod: sale.PaymentCard})
		require.NoError(t, err)
		require.True(t, result.Committed)
		assert.False(t, seen[result.Sale.ID], "sale id %s repeated", result.Sale.ID)
		seen[result.Sale.ID] = true
		f.clock.Advance(time.Second)
	}
}

func TestViewDecomposesTax(t *testing.T) {
	ctx := context.Background()
	p := beerProduct()
	p.Price = decimal.RequireFromString("59.00")
	f := newFixture(t, p)

	require.NoError(t, f.terminal.AddProduct(ctx, p.ID))
	require.NoError(t, f.terminal.AdjustQuantity(p.ID, 1))

	view := f.terminal.View()
	assert.Equal(t, "118.00", view.Total.StringFixed(2))
	assert.Equal(t, "100.00", view.TaxBase.StringFixed(2))
	assert.Equal(t, "18.00", view.Tax.StringFixed(2))
}

func TestCancelDiscardsCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, beerProduct())

	require.NoError(t, f.terminal.AddProduct(ctx, "corona-355"))
	f.terminal.Cancel()

	assert.Zero(t, f.terminal.View().ItemCount)

	sales, err := f.ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}
