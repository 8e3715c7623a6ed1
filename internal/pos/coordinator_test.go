package pos

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storekit/pos-engine/internal/domain/discount"
	"github.com/storekit/pos-engine/internal/domain/item"
	"github.com/storekit/pos-engine/internal/domain/money"
	"github.com/storekit/pos-engine/internal/domain/sale"
	"github.com/storekit/pos-engine/internal/register"
)

// --- Mock implementations ---

type mockInventory struct {
	byID  map[string]item.Item
	finds int
	err   error
}

func (m *mockInventory) Find(_ context.Context, id string) (item.Item, error) {
	m.finds++
	if m.err != nil {
		return item.Item{}, m.err
	}
	it, ok := m.byID[id]
	if !ok {
		return item.Item{}, &item.NotFoundError{ItemID: id}
	}
	return it, nil
}

type mockDiscounts struct {
	offer discount.Offer
	err   error
}

func (m *mockDiscounts) FindOffer(_ context.Context, _ int, _ sale.Snapshot) (discount.Offer, error) {
	if m.err != nil {
		return discount.Offer{}, m.err
	}
	return m.offer, nil
}

type mockAccounting struct {
	recorded []sale.Snapshot
	err      error
}

func (m *mockAccounting) Record(_ context.Context, info sale.Snapshot) error {
	m.recorded = append(m.recorded, info)
	return m.err
}

type mockStock struct {
	applied []sale.Snapshot
	err     error
}

func (m *mockStock) ApplySale(_ context.Context, info sale.Snapshot) error {
	m.applied = append(m.applied, info)
	return m.err
}

type mockPrinter struct {
	emitted []sale.Receipt
	err     error
}

func (m *mockPrinter) Emit(r sale.Receipt) error {
	m.emitted = append(m.emitted, r)
	return m.err
}

// --- Helpers ---

func testItem(id, price, taxRate string) item.Item {
	return item.Item{
		ID:      id,
		Name:    "Item " + id,
		TaxRate: decimal.RequireFromString(taxRate),
		Price:   money.RequireFromString(price),
	}
}

func m(v string) money.Amount {
	return money.RequireFromString(v)
}

type fixture struct {
	coordinator *Coordinator
	inventory   *mockInventory
	discounts   *mockDiscounts
	cash        *register.Register
	accounting  *mockAccounting
	stock       *mockStock
	printer     *mockPrinter
}

func newFixture(items ...item.Item) *fixture {
	byID := make(map[string]item.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	f := &fixture{
		inventory:  &mockInventory{byID: byID},
		discounts:  &mockDiscounts{offer: discount.NoOffer()},
		cash:       register.New(),
		accounting: &mockAccounting{},
		stock:      &mockStock{},
		printer:    &mockPrinter{},
	}
	f.coordinator = NewCoordinator(
		f.inventory, f.discounts, f.cash, f.accounting, f.stock, f.printer,
		zap.NewNop(),
	)
	return f
}

// --- Tests ---

func TestEnterItem_NoActiveSale(t *testing.T) {
	f := newFixture()

	_, err := f.coordinator.EnterItem(context.Background(), "1", 1)
	require.ErrorIs(t, err, ErrNoActiveSale)
}

func TestEnterItem_AddsAndTotals(t *testing.T) {
	f := newFixture(testItem("1", "100", "0.25"))
	f.coordinator.StartSale()

	it, err := f.coordinator.EnterItem(context.Background(), "1", 1)
	require.NoError(t, err)
	assert.Equal(t, "1", it.ID)

	total, err := f.coordinator.CurrentTotal()
	require.NoError(t, err)
	assert.True(t, m("125").Equal(total), "expected 125, got %s", total)
}

func TestEnterItem_RepeatScanSkipsInventory(t *testing.T) {
	f := newFixture(testItem("1", "100", "0.25"))
	f.coordinator.StartSale()

	_, err := f.coordinator.EnterItem(context.Background(), "1", 1)
	require.NoError(t, err)
	_, err = f.coordinator.EnterItem(context.Background(), "1", 2)
	require.NoError(t, err)

	assert.Equal(t, 1, f.inventory.finds, "second scan must reuse the captured snapshot")

	total, err := f.coordinator.CurrentTotal()
	require.NoError(t, err)
	assert.True(t, m("375").Equal(total), "expected 375, got %s", total)
}

func TestEnterItem_NotFound(t *testing.T) {
	f := newFixture()
	f.coordinator.StartSale()

	_, err := f.coordinator.EnterItem(context.Background(), "missing", 1)

	var nfErr *item.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "missing", nfErr.ItemID)
}

func TestEnterItem_InventoryUnavailable(t *testing.T) {
	f := newFixture()
	f.inventory.err = &item.UnavailableError{Op: "find"}
	f.coordinator.StartSale()

	_, err := f.coordinator.EnterItem(context.Background(), "1", 1)

	var uErr *item.UnavailableError
	require.ErrorAs(t, err, &uErr)
}

func TestEnterItem_InvalidQuantity(t *testing.T) {
	f := newFixture(testItem("1", "100", "0.25"))
	f.coordinator.StartSale()

	_, err := f.coordinator.EnterItem(context.Background(), "1", 0)

	var iqErr *sale.InvalidQuantityError
	require.ErrorAs(t, err, &iqErr)
}

func TestRequestDiscount_AppliesOffer(t *testing.T) {
	f := newFixture(testItem("1", "100", "0"))
	f.discounts.offer = discount.Offer{Amount: m("20"), Label: "fixed"}
	f.coordinator.StartSale()

	_, err := f.coordinator.EnterItem(context.Background(), "1", 1)
	require.NoError(t, err)
	require.NoError(t, f.coordinator.RequestDiscount(context.Background(), 25000))

	total, err := f.coordinator.CurrentTotal()
	require.NoError(t, err)
	assert.True(t, m("80").Equal(total))

	original, err := f.coordinator.OriginalTotal()
	require.NoError(t, err)
	assert.True(t, m("100").Equal(original))

	desc, err := f.coordinator.DiscountDescription()
	require.NoError(t, err)
	assert.Equal(t, "Fixed discount of 20", desc)
}

func TestPay_SettlesSale(t *testing.T) {
	f := newFixture(testItem("1", "100", "0.25"))
	f.coordinator.StartSale()

	_, err := f.coordinator.EnterItem(context.Background(), "1", 1)
	require.NoError(t, err)

	total, err := f.coordinator.EndSale()
	require.NoError(t, err)
	assert.True(t, m("125").Equal(total))

	receipt, err := f.coordinator.Pay(context.Background(), m("200"))
	require.NoError(t, err)

	assert.True(t, m("75").Equal(receipt.Change()), "expected change 75, got %s", receipt.Change())
	assert.True(t, m("125").Equal(f.cash.Balance()), "register records the discounted total")
	require.Len(t, f.accounting.recorded, 1)
	require.Len(t, f.stock.applied, 1)
	require.Len(t, f.printer.emitted, 1)
	assert.Equal(t, f.accounting.recorded[0].ID, f.stock.applied[0].ID)

	// The sale is terminal: further operations need a new StartSale.
	_, err = f.coordinator.EnterItem(context.Background(), "1", 1)
	require.ErrorIs(t, err, ErrNoActiveSale)
}

func TestPay_SinkFailuresDoNotFailPayment(t *testing.T) {
	f := newFixture(testItem("1", "100", "0"))
	f.accounting.err = assert.AnError
	f.stock.err = assert.AnError
	f.coordinator.StartSale()

	_, err := f.coordinator.EnterItem(context.Background(), "1", 1)
	require.NoError(t, err)

	_, err = f.coordinator.Pay(context.Background(), m("100"))
	require.NoError(t, err)
	assert.True(t, m("100").Equal(f.cash.Balance()))
}

func TestPay_UnderpaymentYieldsNegativeChange(t *testing.T) {
	f := newFixture(testItem("1", "100", "0"))
	f.coordinator.StartSale()

	_, err := f.coordinator.EnterItem(context.Background(), "1", 1)
	require.NoError(t, err)

	receipt, err := f.coordinator.Pay(context.Background(), m("60"))
	require.NoError(t, err)
	assert.True(t, m("-40").Equal(receipt.Change()))
}

func TestPay_PrinterFailurePropagates(t *testing.T) {
	f := newFixture(testItem("1", "100", "0"))
	f.printer.err = assert.AnError
	f.coordinator.StartSale()

	_, err := f.coordinator.EnterItem(context.Background(), "1", 1)
	require.NoError(t, err)

	_, err = f.coordinator.Pay(context.Background(), m("100"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "print receipt")
}

func TestStartSale_AbandonsPreviousSale(t *testing.T) {
	f := newFixture(testItem("1", "100", "0"))
	first := f.coordinator.StartSale()

	_, err := f.coordinator.EnterItem(context.Background(), "1", 1)
	require.NoError(t, err)

	second := f.coordinator.StartSale()
	assert.NotEqual(t, first, second)

	total, err := f.coordinator.CurrentTotal()
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}
