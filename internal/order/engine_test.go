package order

import (
	"testing"

	"github.com/dillkhus/order-api/internal/enum"
	"github.com/shopspring/decimal"
)

// --- Test helpers ---

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func assertMoney(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

// subtotalOfLines sums line totals straight off the snapshot, so tests can
// check the computed subtotal against an independent aggregation.
func subtotalOfLines(o Order) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.LineTotal)
	}
	for _, combo := range o.Combos {
		sum = sum.Add(combo.LineTotal)
	}
	return sum
}

// --- Item quantity ---

func TestSetItemQuantityUpsertsLine(t *testing.T) {
	c := NewCart()

	if err := c.SetItemQuantity("phuchka-solo", 2, dec(t, "5.00")); err != nil {
		t.Fatalf("set item: %v", err)
	}

	snap := c.Snapshot()
	line, ok := snap.Items["phuchka-solo"]
	if !ok {
		t.Fatal("line item missing")
	}
	if line.Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", line.Quantity)
	}
	assertMoney(t, line.LineTotal, "10.00")
	assertMoney(t, snap.Subtotal, "10.00")
}

func TestSetItemQuantityZeroRemovesLine(t *testing.T) {
	c := NewCart()

	if err := c.SetItemQuantity("papri-chat", 3, dec(t, "5.00")); err != nil {
		t.Fatalf("set item: %v", err)
	}
	if err := c.SetItemQuantity("papri-chat", 0, dec(t, "5.00")); err != nil {
		t.Fatalf("set item to zero: %v", err)
	}

	snap := c.Snapshot()
	if _, ok := snap.Items["papri-chat"]; ok {
		t.Fatal("line item should be removed, not retained at quantity 0")
	}
	assertMoney(t, snap.Subtotal, "0.00")

	// Setting it back recreates the line with a fresh total.
	if err := c.SetItemQuantity("papri-chat", 4, dec(t, "5.00")); err != nil {
		t.Fatalf("set item again: %v", err)
	}
	assertMoney(t, c.Snapshot().Items["papri-chat"].LineTotal, "20.00")
}

func TestSetItemQuantityRejectsNegative(t *testing.T) {
	c := NewCart()
	if err := c.SetItemQuantity("phuchka-solo", -1, dec(t, "5.00")); err != ErrNegativeQuantity {
		t.Fatalf("err = %v, want ErrNegativeQuantity", err)
	}
}

func TestSubtotalMatchesLineSumAfterEveryMutation(t *testing.T) {
	c := NewCart()
	price := dec(t, "5.00")

	steps := []func() error{
		func() error { return c.SetItemQuantity("phuchka-solo", 2, price) },
		func() error { return c.SetItemQuantity("papri-chat", 1, price) },
		func() error { return c.SetComboQuantity(enum.ComboVeg, 2, dec(t, "10.00")) },
		func() error { return c.SetItemQuantity("phuchka-solo", 5, price) },
		func() error { return c.SetComboQuantity(enum.ComboVeg, 0, dec(t, "10.00")) },
		func() error { return c.SetItemQuantity("papri-chat", 0, price) },
	}

	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		snap := c.Snapshot()
		if !snap.Subtotal.Equal(subtotalOfLines(snap)) {
			t.Fatalf("step %d: subtotal %s != line sum %s", i, snap.Subtotal, subtotalOfLines(snap))
		}
		totals := c.ComputeTotals()
		if !totals.Total.Equal(totals.Subtotal.Sub(totals.Discount)) {
			t.Fatalf("step %d: total %s != subtotal - discount", i, totals.Total)
		}
	}
}

// --- Combo quantity and customizations ---

func TestSetComboQuantityCreatesDefaultCustomizations(t *testing.T) {
	c := NewCart()

	if err := c.SetComboQuantity(enum.ComboVeg, 1, dec(t, "10.00")); err != nil {
		t.Fatalf("set combo: %v", err)
	}

	combo := c.Snapshot().Combos[enum.ComboVeg]
	if len(combo.Customizations) != 1 {
		t.Fatalf("customizations = %d, want 1", len(combo.Customizations))
	}
	want := PlatterChoice{
		Option1: enum.OptionPhuchka,
		Option2: enum.OptionHoneyChilliCauliflower,
		Option3: enum.OptionChanaPora,
	}
	if combo.Customizations[0] != want {
		t.Fatalf("customization = %+v, want %+v", combo.Customizations[0], want)
	}
}

func TestNonVegComboDefaultsToChicken65(t *testing.T) {
	c := NewCart()

	if err := c.SetComboQuantity(enum.ComboNonVeg, 2, dec(t, "10.00")); err != nil {
		t.Fatalf("set combo: %v", err)
	}

	for i, pc := range c.Snapshot().Combos[enum.ComboNonVeg].Customizations {
		if pc.Option2 != enum.OptionChicken65 {
			t.Fatalf("platter %d option2 = %q, want chicken-65", i, pc.Option2)
		}
	}
}

func TestComboResizePreservesChoicesByIndex(t *testing.T) {
	c := NewCart()
	price := dec(t, "10.00")

	if err := c.SetComboQuantity(enum.ComboNonVeg, 3, price); err != nil {
		t.Fatalf("set combo: %v", err)
	}
	c.SetPlatterOption(enum.ComboNonVeg, 0, enum.SlotOption1, enum.OptionPapriChat)
	c.SetPlatterOption(enum.ComboNonVeg, 1, enum.SlotOption2, enum.OptionChickenShamiKabab)
	c.SetPlatterOption(enum.ComboNonVeg, 2, enum.SlotOption3, enum.OptionNarkelNaru)

	// Shrink: first two platters keep their choices, third is dropped.
	if err := c.SetComboQuantity(enum.ComboNonVeg, 2, price); err != nil {
		t.Fatalf("shrink combo: %v", err)
	}
	combo := c.Snapshot().Combos[enum.ComboNonVeg]
	if len(combo.Customizations) != 2 {
		t.Fatalf("customizations = %d, want 2", len(combo.Customizations))
	}
	if combo.Customizations[0].Option1 != enum.OptionPapriChat {
		t.Fatal("platter 0 lost its choice on shrink")
	}
	if combo.Customizations[1].Option2 != enum.OptionChickenShamiKabab {
		t.Fatal("platter 1 lost its choice on shrink")
	}

	// Grow: the surviving platters stay put, new slots get defaults.
	if err := c.SetComboQuantity(enum.ComboNonVeg, 4, price); err != nil {
		t.Fatalf("grow combo: %v", err)
	}
	combo = c.Snapshot().Combos[enum.ComboNonVeg]
	if len(combo.Customizations) != 4 {
		t.Fatalf("customizations = %d, want 4", len(combo.Customizations))
	}
	if combo.Customizations[0].Option1 != enum.OptionPapriChat {
		t.Fatal("platter 0 lost its choice on grow")
	}
	for i := 2; i < 4; i++ {
		if combo.Customizations[i].Option2 != enum.OptionChicken65 {
			t.Fatalf("platter %d should have default option2", i)
		}
	}
}

func TestSetComboQuantityZeroDiscardsCustomizations(t *testing.T) {
	c := NewCart()
	price := dec(t, "10.00")

	if err := c.SetComboQuantity(enum.ComboVeg, 2, price); err != nil {
		t.Fatalf("set combo: %v", err)
	}
	c.SetPlatterOption(enum.ComboVeg, 0, enum.SlotOption1, enum.OptionPapriChat)

	if err := c.SetComboQuantity(enum.ComboVeg, 0, price); err != nil {
		t.Fatalf("remove combo: %v", err)
	}
	if _, ok := c.Snapshot().Combos[enum.ComboVeg]; ok {
		t.Fatal("combo should be removed entirely")
	}

	// Re-adding starts from defaults, not the discarded choices.
	if err := c.SetComboQuantity(enum.ComboVeg, 1, price); err != nil {
		t.Fatalf("re-add combo: %v", err)
	}
	if got := c.Snapshot().Combos[enum.ComboVeg].Customizations[0].Option1; got != enum.OptionPhuchka {
		t.Fatalf("option1 = %q, want default phuchka", got)
	}
}

func TestSetComboQuantityRejectsUnknownVariant(t *testing.T) {
	c := NewCart()
	if err := c.SetComboQuantity("mega", 1, decimal.NewFromInt(10)); err != ErrUnknownCombo {
		t.Fatalf("err = %v, want ErrUnknownCombo", err)
	}
}

// --- Platter options ---

func TestSetPlatterOptionStaleIndexIsNoOp(t *testing.T) {
	c := NewCart()

	if err := c.SetComboQuantity(enum.ComboVeg, 1, dec(t, "10.00")); err != nil {
		t.Fatalf("set combo: %v", err)
	}

	// Index 3 existed before a hypothetical quantity reduction; the event
	// arrives late and must be ignored.
	c.SetPlatterOption(enum.ComboVeg, 3, enum.SlotOption1, enum.OptionPapriChat)
	c.SetPlatterOption(enum.ComboNonVeg, 0, enum.SlotOption1, enum.OptionPapriChat)

	combo := c.Snapshot().Combos[enum.ComboVeg]
	if combo.Customizations[0].Option1 != enum.OptionPhuchka {
		t.Fatal("stale event should not have mutated anything")
	}
}

func TestVegOption2IsNotEditable(t *testing.T) {
	c := NewCart()

	if err := c.SetComboQuantity(enum.ComboVeg, 1, dec(t, "10.00")); err != nil {
		t.Fatalf("set combo: %v", err)
	}
	c.SetPlatterOption(enum.ComboVeg, 0, enum.SlotOption2, enum.OptionChicken65)
	c.SetBulkPlatterOption(enum.ComboVeg, enum.SlotOption2, enum.OptionChickenShamiKabab)

	if got := c.Snapshot().Combos[enum.ComboVeg].Customizations[0].Option2; got != enum.OptionHoneyChilliCauliflower {
		t.Fatalf("option2 = %q, want fixed honey-chilli-cauliflower", got)
	}
}

func TestSetBulkPlatterOptionAppliesToAllPlatters(t *testing.T) {
	c := NewCart()

	if err := c.SetComboQuantity(enum.ComboNonVeg, 3, dec(t, "10.00")); err != nil {
		t.Fatalf("set combo: %v", err)
	}
	c.SetBulkPlatterOption(enum.ComboNonVeg, enum.SlotOption2, enum.OptionChickenShamiKabab)

	for i, pc := range c.Snapshot().Combos[enum.ComboNonVeg].Customizations {
		if pc.Option2 != enum.OptionChickenShamiKabab {
			t.Fatalf("platter %d option2 = %q, want chicken-shami-kabab", i, pc.Option2)
		}
	}
}

// --- Customer info ---

func TestSwitchingAwayFromBizumClearsHandle(t *testing.T) {
	c := NewCart()

	c.SetCustomerInfo(CustomerInfo{
		Name:        "Asha",
		Mobile:      "600111222",
		PaymentType: enum.PaymentBizum,
		BizumHandle: "600111222",
	})
	if c.CustomerInfo().BizumHandle == "" {
		t.Fatal("bizum handle should be stored while bizum is selected")
	}

	c.SetCustomerInfo(CustomerInfo{
		Name:        "Asha",
		Mobile:      "600111222",
		PaymentType: enum.PaymentCash,
		BizumHandle: "600111222",
	})
	if got := c.CustomerInfo().BizumHandle; got != "" {
		t.Fatalf("bizum handle = %q, want cleared after switching to cash", got)
	}
}

// --- Validation ---

func TestValidateEmptyCart(t *testing.T) {
	c := NewCart()
	result := c.Validate()

	if result.Valid {
		t.Fatal("empty cart must not validate")
	}
	wantFields := []string{"name", "mobile", "payment_type", "items"}
	if len(result.Errors) != len(wantFields) {
		t.Fatalf("errors = %d, want %d: %+v", len(result.Errors), len(wantFields), result.Errors)
	}
	for i, f := range wantFields {
		if result.Errors[i].Field != f {
			t.Fatalf("errors[%d].Field = %q, want %q", i, result.Errors[i].Field, f)
		}
	}
}

func TestValidateRequiresItemsEvenWithCompleteCustomerInfo(t *testing.T) {
	c := NewCart()
	c.SetCustomerInfo(CustomerInfo{Name: "Asha", Mobile: "600111222", PaymentType: enum.PaymentCash})

	result := c.Validate()
	if result.Valid {
		t.Fatal("cart with no lines must not validate")
	}
	if len(result.Errors) != 1 || result.Errors[0].Message != "Please select at least one item" {
		t.Fatalf("errors = %+v, want single select-at-least-one-item error", result.Errors)
	}
}

func TestValidateBizumHandleRequiredOnlyForBizum(t *testing.T) {
	c := NewCart()
	if err := c.SetItemQuantity("phuchka-solo", 1, dec(t, "5.00")); err != nil {
		t.Fatalf("set item: %v", err)
	}

	c.SetCustomerInfo(CustomerInfo{Name: "Asha", Mobile: "600111222", PaymentType: enum.PaymentBizum})
	result := c.Validate()
	if result.Valid {
		t.Fatal("bizum without a handle must not validate")
	}
	if result.Errors[0].Field != "bizum_number" {
		t.Fatalf("errors[0].Field = %q, want bizum_number", result.Errors[0].Field)
	}

	c.SetCustomerInfo(CustomerInfo{Name: "Asha", Mobile: "600111222", PaymentType: enum.PaymentCash})
	if result := c.Validate(); !result.Valid {
		t.Fatalf("cash order should validate, got %+v", result.Errors)
	}
}

func TestValidateRejectsUnknownPaymentMethod(t *testing.T) {
	c := NewCart()
	if err := c.SetItemQuantity("phuchka-solo", 1, dec(t, "5.00")); err != nil {
		t.Fatalf("set item: %v", err)
	}
	c.SetCustomerInfo(CustomerInfo{Name: "Asha", Mobile: "600111222", PaymentType: "barter"})

	result := c.Validate()
	if result.Valid {
		t.Fatal("unknown payment method must not validate")
	}
	if result.Errors[0].Field != "payment_type" {
		t.Fatalf("errors[0].Field = %q, want payment_type", result.Errors[0].Field)
	}
}

// --- End-to-end totals scenario ---

func TestTotalsScenario(t *testing.T) {
	c := NewCart()

	if err := c.SetItemQuantity("phuchka-solo", 2, dec(t, "5.0")); err != nil {
		t.Fatalf("set item: %v", err)
	}
	assertMoney(t, c.Totals().Subtotal, "10.00")

	if err := c.SetComboQuantity(enum.ComboVeg, 1, dec(t, "10.0")); err != nil {
		t.Fatalf("set combo: %v", err)
	}
	totals := c.Totals()
	assertMoney(t, totals.Subtotal, "20.00")
	assertMoney(t, totals.Discount, "0.00")
	assertMoney(t, totals.Total, "20.00")

	combo := c.Snapshot().Combos[enum.ComboVeg]
	want := []PlatterChoice{{
		Option1: enum.OptionPhuchka,
		Option2: enum.OptionHoneyChilliCauliflower,
		Option3: enum.OptionChanaPora,
	}}
	if len(combo.Customizations) != 1 || combo.Customizations[0] != want[0] {
		t.Fatalf("customizations = %+v, want %+v", combo.Customizations, want)
	}
}

// --- Reset ---

func TestResetRestoresEmptyState(t *testing.T) {
	c := NewCart()
	if err := c.SetItemQuantity("phuchka-solo", 2, dec(t, "5.00")); err != nil {
		t.Fatalf("set item: %v", err)
	}
	c.SetCustomerInfo(CustomerInfo{Name: "Asha", Mobile: "600111222", PaymentType: enum.PaymentCash})

	c.Reset()

	snap := c.Snapshot()
	if len(snap.Items) != 0 || len(snap.Combos) != 0 {
		t.Fatal("reset cart should have no lines")
	}
	if snap.CustomerInfo != (CustomerInfo{}) {
		t.Fatal("reset cart should have no customer info")
	}
	assertMoney(t, snap.Total, "0.00")
	if !snap.IsPreorder {
		t.Fatal("cart stays pinned to pre-order pricing")
	}
}
