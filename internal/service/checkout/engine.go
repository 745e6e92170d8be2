// Package checkout owns the cart and the checkout state machine: cart
// mutation rules, total and tax computation, payment validation, and the
// terminal payment-confirmed transition that clears the cart.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cocktailhaven/internal/domain"
	"cocktailhaven/internal/pricing"
	"cocktailhaven/internal/store"
)

var (
	// ErrCheckoutActive is returned when BeginCheckout is called while a
	// checkout session is already in progress.
	ErrCheckoutActive = errors.New("checkout already in progress")
	// ErrNoCheckout is returned by checkout operations outside a session.
	ErrNoCheckout = errors.New("no checkout in progress")
)

// TaxRate is the fixed VAT applied on top of the subtotal.
var TaxRate = decimal.RequireFromString("0.12")

// State is a position in the checkout state machine.
type State string

const (
	StateIdle            State = "Idle"
	StateMethodSelection State = "MethodSelection"
	StateFieldEntry      State = "FieldEntry"
	StateValidating      State = "Validating"
	StateConfirmed       State = "Confirmed"
)

// Invoicer renders a document for a finalized cart and returns the path of
// the written file.
type Invoicer interface {
	Render(ctx context.Context, cart domain.Cart, customerName string) (string, error)
}

// NameSource yields the customer display name recorded at registration.
type NameSource interface {
	CustomerName(ctx context.Context) (string, error)
}

// InvoiceResult reports the outcome of the post-confirmation invoice task.
type InvoiceResult struct {
	Path string
	Err  error
}

// Confirmation is the terminal result of a successful SubmitPayment.
type Confirmation struct {
	Method domain.PaymentMethod
	Total  decimal.Decimal
	// Invoice yields exactly one result and is then closed. When no
	// renderer is configured it is closed immediately.
	Invoice <-chan InvoiceResult
}

// Snapshot is a read-only view of the checkout session for the UI.
type Snapshot struct {
	State   State
	Method  domain.PaymentMethod
	Details domain.PaymentDetails
	Total   decimal.Decimal
}

// Engine owns one customer's cart. All mutations write through to the
// store before the in-memory cart is updated, and a mutex serializes them
// so rapid successive calls persist in issuance order.
type Engine struct {
	mu     sync.Mutex
	store  store.Store
	prices *pricing.Table
	inv    Invoicer
	names  NameSource
	logger *zap.Logger

	cart domain.Cart

	state   State
	method  domain.PaymentMethod
	details domain.PaymentDetails
	total   decimal.Decimal
}

// New creates an Engine over the account's storage namespace. inv and
// names may be nil; confirmation then skips invoice rendering.
func New(st store.Store, prices *pricing.Table, inv Invoicer, names NameSource, logger *zap.Logger) *Engine {
	return &Engine{
		store:  st,
		prices: prices,
		inv:    inv,
		names:  names,
		logger: logger,
		state:  StateIdle,
	}
}

// Restore loads the persisted cart, if any. A missing cart key means an
// empty cart.
func (e *Engine) Restore(ctx context.Context) error {
	raw, err := e.store.Get(ctx, store.KeyCart)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return err
	}
	for i := range lines {
		if lines[i].LineID == "" {
			// Carts written by earlier builds addressed lines by position.
			lines[i].LineID = uuid.NewString()
		}
	}
	e.mu.Lock()
	e.cart = domain.Cart{Lines: lines}
	e.mu.Unlock()
	return nil
}

// Cart returns a copy of the current cart.
func (e *Engine) Cart() domain.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyCart(e.cart)
}

// Session returns the current checkout session view.
func (e *Engine) Session() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{State: e.state, Method: e.method, Details: e.details, Total: e.total}
}

// AddItem appends a fresh line for the drink, quantity 1, price resolved
// from the price table. Repeated adds of the same drink produce separate
// lines; lines are never merged.
func (e *Engine) AddItem(ctx context.Context, drink domain.DrinkSummary) (domain.CartLine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	line := domain.CartLine{
		LineID:   uuid.NewString(),
		DrinkID:  drink.ID,
		Name:     drink.Name,
		Thumb:    drink.Thumb,
		Price:    e.prices.Resolve(drink.ID),
		Quantity: 1,
	}
	next := copyCart(e.cart)
	next.Lines = append(next.Lines, line)
	if err := e.persist(ctx, next); err != nil {
		return domain.CartLine{}, err
	}
	e.cart = next
	e.logger.Info("cart line added",
		zap.String("drinkId", drink.ID),
		zap.Int("cartSize", e.cart.Len()),
	)
	return line, nil
}

// ChangeQuantity applies an integer delta to a line's quantity. A decrement
// at quantity 1 returns ErrConfirmRemoval and leaves the cart untouched;
// the caller confirms via RemoveLine. The quantity never drops below 1.
func (e *Engine) ChangeQuantity(ctx context.Context, lineID string, delta int) (domain.CartLine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	line, idx := e.cart.Find(lineID)
	if idx < 0 {
		return domain.CartLine{}, domain.ErrLineNotFound
	}
	if delta < 0 && line.Qty() <= 1 {
		return domain.CartLine{}, domain.ErrConfirmRemoval
	}
	qty := line.Qty() + delta
	if qty < 1 {
		qty = 1
	}
	next := copyCart(e.cart)
	next.Lines[idx].Quantity = qty
	if err := e.persist(ctx, next); err != nil {
		return domain.CartLine{}, err
	}
	e.cart = next
	return e.cart.Lines[idx], nil
}

// RemoveLine deletes the line. This is the confirmed branch of the removal
// prompt; cancelling is simply not calling it.
func (e *Engine) RemoveLine(ctx context.Context, lineID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, idx := e.cart.Find(lineID)
	if idx < 0 {
		return domain.ErrLineNotFound
	}
	next := copyCart(e.cart)
	next.Lines = append(next.Lines[:idx], next.Lines[idx+1:]...)
	if err := e.persist(ctx, next); err != nil {
		return err
	}
	e.cart = next
	return nil
}

// Subtotal sums price times quantity over all lines.
func Subtotal(c domain.Cart) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Qty()))))
	}
	return sum
}

// Tax is the fixed 12% of the subtotal.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate)
}

// Total is subtotal plus tax. This is the authoritative amount shown to
// the user, validated against, and invoiced.
func Total(c domain.Cart) decimal.Decimal {
	sub := Subtotal(c)
	return sub.Add(Tax(sub))
}

// Subtotal returns the current cart's subtotal.
func (e *Engine) Subtotal() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Subtotal(e.cart)
}

// Total returns the current cart's total including tax.
func (e *Engine) Total() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Total(e.cart)
}

// BeginCheckout snapshots the total and opens payment-method selection.
// An empty cart cannot be checked out.
func (e *Engine) BeginCheckout() (decimal.Decimal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateIdle && e.state != StateConfirmed {
		return decimal.Zero, ErrCheckoutActive
	}
	if e.cart.Len() == 0 {
		return decimal.Zero, domain.ErrEmptyCart
	}
	e.total = Total(e.cart)
	e.method = ""
	e.details = domain.PaymentDetails{}
	e.state = StateMethodSelection
	return e.total, nil
}

// SelectMethod sets the active payment method and blanks every
// method-specific field so values cannot leak across a switch.
func (e *Engine) SelectMethod(method domain.PaymentMethod) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateMethodSelection && e.state != StateFieldEntry {
		return ErrNoCheckout
	}
	if !method.IsValid() {
		return domain.Validation("paymentMethod", "unknown payment method")
	}
	e.method = method
	e.details = domain.PaymentDetails{}
	e.state = StateFieldEntry
	return nil
}

// UpdateDetails records the payment form fields for the selected method.
func (e *Engine) UpdateDetails(details domain.PaymentDetails) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateFieldEntry {
		return ErrNoCheckout
	}
	e.details = details
	return nil
}

// SubmitPayment validates the session's fields against the selected
// method. On failure the cart, fields, and session survive unchanged for
// correction. On success the cart is deleted from the store, all fields
// are blanked, the session transitions to the terminal Confirmed state,
// and invoice rendering starts as a background task whose result is
// delivered on the confirmation's Invoice channel.
func (e *Engine) SubmitPayment(ctx context.Context) (*Confirmation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateFieldEntry {
		return nil, ErrNoCheckout
	}
	e.state = StateValidating
	if err := ValidatePayment(e.method, e.details); err != nil {
		e.state = StateFieldEntry
		return nil, err
	}

	finalized := copyCart(e.cart)
	if err := e.store.Remove(ctx, store.KeyCart); err != nil {
		e.state = StateFieldEntry
		return nil, err
	}
	e.cart = domain.Cart{}
	e.details = domain.PaymentDetails{}
	e.state = StateConfirmed

	conf := &Confirmation{
		Method:  e.method,
		Total:   e.total,
		Invoice: e.renderInvoice(finalized),
	}
	e.logger.Info("payment confirmed",
		zap.String("method", string(conf.Method)),
		zap.String("total", conf.Total.String()),
	)
	return conf, nil
}

// Cancel returns to Idle from any non-terminal state without touching the
// cart. Cancelling an already-confirmed or idle session is a no-op.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateConfirmed || e.state == StateIdle {
		e.state = StateIdle
		return
	}
	e.method = ""
	e.details = domain.PaymentDetails{}
	e.total = decimal.Zero
	e.state = StateIdle
}

// renderInvoice launches the invoice task over the pre-clear cart. Render
// failures are logged, never surfaced to the checkout flow.
func (e *Engine) renderInvoice(finalized domain.Cart) <-chan InvoiceResult {
	ch := make(chan InvoiceResult, 1)
	if e.inv == nil {
		close(ch)
		return ch
	}
	go func() {
		defer close(ch)
		ctx := context.Background()
		name := ""
		if e.names != nil {
			var err error
			if name, err = e.names.CustomerName(ctx); err != nil {
				e.logger.Warn("customer name unavailable for invoice", zap.Error(err))
			}
		}
		path, err := e.inv.Render(ctx, finalized, name)
		if err != nil {
			e.logger.Error("invoice render failed", zap.Error(err))
			ch <- InvoiceResult{Err: err}
			return
		}
		e.logger.Info("invoice written", zap.String("path", path))
		ch <- InvoiceResult{Path: path}
	}()
	return ch
}

// persist writes the candidate cart through to the store. The in-memory
// cart is only replaced after the write succeeds, so a storage failure
// leaves memory and durable state consistent.
func (e *Engine) persist(ctx context.Context, next domain.Cart) error {
	raw, err := json.Marshal(next.Lines)
	if err != nil {
		return err
	}
	return e.store.Set(ctx, store.KeyCart, raw)
}

func copyCart(c domain.Cart) domain.Cart {
	lines := make([]domain.CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return domain.Cart{Lines: lines}
}
