package order

import (
	"errors"
	"sync"

	"github.com/dillkhus/order-api/internal/enum"
	"github.com/shopspring/decimal"
)

// Errors returned by cart mutations and submission.
var (
	ErrNegativeQuantity = errors.New("quantity must be >= 0")
	ErrUnknownCombo     = errors.New("unknown combo variant")
	ErrNotValid         = errors.New("order does not pass validation")
	ErrSubmitInFlight   = errors.New("a submission is already in progress")
)

// Cart is the order state for one storefront session. It is created empty,
// mutated only through its setters, and reset after a successful submission.
// All methods are safe for concurrent use; mutations serialize on one lock,
// matching the one-event-at-a-time model of the form it backs.
type Cart struct {
	mu         sync.Mutex
	items      map[string]LineItem
	combos     map[string]ComboSelection
	customer   CustomerInfo
	totals     Totals
	submitting bool
}

// NewCart creates an empty cart pinned to pre-order pricing.
func NewCart() *Cart {
	c := &Cart{}
	c.initLocked()
	return c
}

func (c *Cart) initLocked() {
	c.items = make(map[string]LineItem)
	c.combos = make(map[string]ComboSelection)
	c.customer = CustomerInfo{}
	c.totals = Totals{Subtotal: decimal.Zero, Discount: decimal.Zero, Total: decimal.Zero}
}

// SetItemQuantity upserts one à la carte line. Quantity 0 removes the line
// instead of keeping an empty entry.
func (c *Cart) SetItemQuantity(itemKey string, quantity int, unitPrice decimal.Decimal) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity == 0 {
		delete(c.items, itemKey)
	} else {
		qty := decimal.NewFromInt(int64(quantity))
		c.items[itemKey] = LineItem{
			Quantity:  quantity,
			UnitPrice: unitPrice,
			LineTotal: unitPrice.Mul(qty),
		}
	}
	c.recomputeLocked()
	return nil
}

// SetComboQuantity upserts one platter type. Quantity 0 removes the combo
// and discards its customizations. Growing the combo keeps existing platter
// choices by index and fills new slots with the variant's defaults;
// shrinking truncates from the end.
func (c *Cart) SetComboQuantity(variant string, quantity int, unitPrice decimal.Decimal) error {
	if !enum.IsComboVariant(variant) {
		return ErrUnknownCombo
	}
	if quantity < 0 {
		return ErrNegativeQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity == 0 {
		delete(c.combos, variant)
		c.recomputeLocked()
		return nil
	}

	prior := c.combos[variant].Customizations
	customizations := make([]PlatterChoice, quantity)
	for i := range customizations {
		if i < len(prior) {
			customizations[i] = prior[i]
		} else {
			customizations[i] = defaultChoice(variant)
		}
	}

	qty := decimal.NewFromInt(int64(quantity))
	c.combos[variant] = ComboSelection{
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		LineTotal:      unitPrice.Mul(qty),
		Customizations: customizations,
	}
	c.recomputeLocked()
	return nil
}

// SetPlatterOption mutates one slot of one platter. A missing combo, a
// stale index, or a value not selectable for the slot is silently ignored:
// the form can deliver change events for platters that no longer exist
// after a quantity reduction.
func (c *Cart) SetPlatterOption(variant string, platterIndex int, slot, value string) {
	if !ValidOption(variant, slot, value) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	combo, ok := c.combos[variant]
	if !ok || platterIndex < 0 || platterIndex >= len(combo.Customizations) {
		return
	}
	setSlot(&combo.Customizations[platterIndex], slot, value)
	c.combos[variant] = combo
}

// SetBulkPlatterOption applies one value to the given slot of every platter
// of the variant. Used when a single shared radio group drives all platters
// of a type. Missing combos and non-selectable values are ignored.
func (c *Cart) SetBulkPlatterOption(variant, slot, value string) {
	if !ValidOption(variant, slot, value) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	combo, ok := c.combos[variant]
	if !ok {
		return
	}
	for i := range combo.Customizations {
		setSlot(&combo.Customizations[i], slot, value)
	}
	c.combos[variant] = combo
}

func setSlot(pc *PlatterChoice, slot, value string) {
	switch slot {
	case enum.SlotOption1:
		pc.Option1 = value
	case enum.SlotOption2:
		pc.Option2 = value
	case enum.SlotOption3:
		pc.Option3 = value
	}
}

// SetCustomerInfo stores the contact/payment block. The bizum handle only
// exists while bizum is the selected payment method; switching away from
// bizum drops any stored handle.
func (c *Cart) SetCustomerInfo(info CustomerInfo) {
	if info.PaymentType != enum.PaymentBizum {
		info.BizumHandle = ""
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.customer = info
}

// CustomerInfo returns the stored contact/payment block.
func (c *Cart) CustomerInfo() CustomerInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customer
}

// ComputeTotals recomputes and returns the money summary. Recomputing is
// idempotent; every mutation already keeps the totals current.
func (c *Cart) ComputeTotals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recomputeLocked()
	return c.totals
}

// Totals returns the current money summary without recomputing.
func (c *Cart) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totals
}

// recomputeLocked derives subtotal/discount/total from the current lines.
// Pre-order prices already carry the discount, so discount stays zero.
func (c *Cart) recomputeLocked() {
	subtotal := decimal.Zero
	for _, item := range c.items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	for _, combo := range c.combos {
		subtotal = subtotal.Add(combo.LineTotal)
	}
	c.totals = Totals{
		Subtotal: subtotal,
		Discount: decimal.Zero,
		Total:    subtotal,
	}
}

// Validate checks the cart against the form rules and returns the failures
// in display order.
func (c *Cart) Validate() ValidationResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

func (c *Cart) validateLocked() ValidationResult {
	var errs []FieldError

	if c.customer.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Please enter your name"})
	}
	if c.customer.Mobile == "" {
		errs = append(errs, FieldError{Field: "mobile", Message: "Please enter your mobile number"})
	}
	if !enum.IsPaymentMethod(c.customer.PaymentType) {
		errs = append(errs, FieldError{Field: "payment_type", Message: "Please select a payment method"})
	} else if c.customer.PaymentType == enum.PaymentBizum && c.customer.BizumHandle == "" {
		errs = append(errs, FieldError{Field: "bizum_number", Message: "Please enter your Bizum number or name"})
	}
	if !c.hasLinesLocked() {
		errs = append(errs, FieldError{Field: "items", Message: "Please select at least one item"})
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func (c *Cart) hasLinesLocked() bool {
	for _, item := range c.items {
		if item.Quantity > 0 {
			return true
		}
	}
	for _, combo := range c.combos {
		if combo.Quantity > 0 {
			return true
		}
	}
	return false
}

// Reset restores the cart to its empty initial state.
func (c *Cart) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initLocked()
}

// Snapshot returns a deep copy of the cart as the serializable aggregate.
func (c *Cart) Snapshot() Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Cart) snapshotLocked() Order {
	items := make(map[string]LineItem, len(c.items))
	for k, v := range c.items {
		items[k] = v
	}
	combos := make(map[string]ComboSelection, len(c.combos))
	for k, v := range c.combos {
		customizations := make([]PlatterChoice, len(v.Customizations))
		copy(customizations, v.Customizations)
		v.Customizations = customizations
		combos[k] = v
	}
	return Order{
		Items:        items,
		Combos:       combos,
		CustomerInfo: c.customer,
		IsPreorder:   true,
		Subtotal:     c.totals.Subtotal,
		Discount:     c.totals.Discount,
		Total:        c.totals.Total,
	}
}
