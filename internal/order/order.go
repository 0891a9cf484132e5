package order

import (
	"time"

	"github.com/dillkhus/order-api/internal/enum"
	"github.com/shopspring/decimal"
)

// LineItem is one à la carte entry in the cart.
type LineItem struct {
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"total"`
}

// PlatterChoice is the customization for one platter within a combo.
// For the veg variant Option2 is pinned to honey-chilli-cauliflower.
type PlatterChoice struct {
	Option1 string `json:"option1"`
	Option2 string `json:"option2"`
	Option3 string `json:"option3"`
}

// ComboSelection is one platter type in the cart with its per-platter
// customizations. len(Customizations) always equals Quantity.
type ComboSelection struct {
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"price"`
	LineTotal      decimal.Decimal `json:"total"`
	Customizations []PlatterChoice `json:"customizations"`
}

// CustomerInfo is the contact and payment block of the form.
type CustomerInfo struct {
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	PaymentType string `json:"paymentType"`
	BizumHandle string `json:"bizumNumber,omitempty"`
}

// Totals is the computed money summary of the cart.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Order is the serializable aggregate sent to the spreadsheet endpoint.
// Field names match the wire format the sheet script expects.
type Order struct {
	Items        map[string]LineItem       `json:"items"`
	Combos       map[string]ComboSelection `json:"combos"`
	CustomerInfo CustomerInfo              `json:"customerInfo"`
	IsPreorder   bool                      `json:"isPreorder"`
	Subtotal     decimal.Decimal           `json:"subtotal"`
	Discount     decimal.Decimal           `json:"discount"`
	Total        decimal.Decimal           `json:"total"`
}

// SubmissionPayload is the JSON body POSTed on checkout.
type SubmissionPayload struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Order     Order  `json:"order"`
}

// FieldError is one form-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of Cart.Validate.
type ValidationResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors"`
}

// BonusThreshold is the order total at which the lucky-draw bonus applies.
var BonusThreshold = decimal.NewFromInt(30)

// Confirmation is returned after a successful submission.
type Confirmation struct {
	OrderID       string          `json:"order_id"`
	PaymentID     string          `json:"payment_id"`
	Customer      CustomerInfo    `json:"customer"`
	Total         decimal.Decimal `json:"total"`
	BonusEligible bool            `json:"bonus_eligible"`
	PlacedAt      time.Time       `json:"placed_at"`
}

// defaultChoice returns the platter customization a fresh slot starts with.
func defaultChoice(variant string) PlatterChoice {
	option2 := enum.OptionChicken65
	if variant == enum.ComboVeg {
		option2 = enum.OptionHoneyChilliCauliflower
	}
	return PlatterChoice{
		Option1: enum.OptionPhuchka,
		Option2: option2,
		Option3: enum.OptionChanaPora,
	}
}

// ValidOption reports whether value is selectable for the given slot of the
// given combo variant. The veg variant's option2 is fixed, never selectable.
func ValidOption(variant, slot, value string) bool {
	switch slot {
	case enum.SlotOption1:
		return value == enum.OptionPhuchka || value == enum.OptionPapriChat
	case enum.SlotOption2:
		if variant == enum.ComboVeg {
			return false
		}
		return value == enum.OptionChicken65 || value == enum.OptionChickenShamiKabab
	case enum.SlotOption3:
		return value == enum.OptionChanaPora || value == enum.OptionNarkelNaru
	}
	return false
}
